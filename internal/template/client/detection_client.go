package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/warekit/warehouse-layout/pkg/logger"
)

// Confidence thresholds on the 0-100 scale. Below the low mark the
// caller should surface a warning; at or above the auto-accept mark the
// detected format can be applied without confirmation.
const (
	LowConfidenceThreshold = 80
	AutoAcceptThreshold    = 90

	minExamples = 2
)

// DetectionResult is a detected location-code format with its
// confidence, scaled to 0-100.
type DetectionResult struct {
	DetectedPattern   string   `json:"detected_pattern"`
	Confidence        int      `json:"confidence"`
	CanonicalExamples []string `json:"canonical_examples"`
}

// LowConfidence reports whether the detection is too weak to suggest
// without a warning.
func (r *DetectionResult) LowConfidence() bool {
	return r.Confidence < LowConfidenceThreshold
}

// AutoAcceptable reports whether the detection is strong enough to
// apply without user confirmation.
func (r *DetectionResult) AutoAcceptable() bool {
	return r.Confidence >= AutoAcceptThreshold
}

// DetectionClient calls the external format-detection service, which
// infers a location-code pattern from a handful of example codes.
type DetectionClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDetectionClient creates a new detection client
func NewDetectionClient(baseURL string) *DetectionClient {
	return &DetectionClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type detectRequest struct {
	Examples []string `json:"examples"`
}

type detectResponse struct {
	DetectionResult struct {
		DetectedPattern   string   `json:"detected_pattern"`
		Confidence        float64  `json:"confidence"`
		CanonicalExamples []string `json:"canonical_examples"`
	} `json:"detection_result"`
}

// Detect asks the detection service to infer a code format from the
// given examples. Fewer than two examples is not enough signal to
// detect anything, so no request is made and no result is returned.
func (c *DetectionClient) Detect(ctx context.Context, examples []string) (*DetectionResult, error) {
	if len(examples) < minExamples {
		return nil, nil
	}

	body, err := json.Marshal(detectRequest{Examples: examples})
	if err != nil {
		return nil, fmt.Errorf("failed to encode detection request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build detection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call detection service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("detection service returned status %d", resp.StatusCode)
	}

	var decoded detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode detection response: %w", err)
	}

	// Round, don't truncate. Fractions like 0.29 have no exact float
	// representation and would otherwise convert to 28.
	confidence := int(math.Round(decoded.DetectionResult.Confidence * 100))

	result := &DetectionResult{
		DetectedPattern:   decoded.DetectionResult.DetectedPattern,
		Confidence:        confidence,
		CanonicalExamples: decoded.DetectionResult.CanonicalExamples,
	}

	if result.LowConfidence() {
		logger.Logger.Warn().
			Str("pattern", result.DetectedPattern).
			Int("confidence", result.Confidence).
			Msg("Format detection returned low confidence")
	}

	return result, nil
}
