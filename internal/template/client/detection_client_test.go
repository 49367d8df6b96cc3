package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_TooFewExamples(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c := NewDetectionClient(server.URL)

	result, err := c.Detect(context.Background(), []string{"01-02-003A"})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.False(t, called, "no request should be made with fewer than two examples")
}

func TestDetect_ScalesConfidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Examples []string `json:"examples"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Examples, 3)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"detection_result":{"detected_pattern":"aisle-rack-position-level","confidence":0.85,"canonical_examples":["01-02-003A"]}}`))
	}))
	defer server.Close()

	c := NewDetectionClient(server.URL)

	result, err := c.Detect(context.Background(), []string{"01-02-003A", "02-01-001B", "03-02-014C"})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "aisle-rack-position-level", result.DetectedPattern)
	assert.Equal(t, 85, result.Confidence)
	assert.False(t, result.LowConfidence())
	assert.False(t, result.AutoAcceptable())
}

func TestDetect_RoundsConfidence(t *testing.T) {
	cases := []struct {
		confidence string
		want       int
	}{
		{"0.29", 29}, // 0.29*100 is 28.999... in binary floating point
		{"0.85", 85},
		{"0.999", 100},
		{"0.001", 0},
	}

	for _, tc := range cases {
		t.Run(tc.confidence, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"detection_result":{"detected_pattern":"numeric","confidence":` + tc.confidence + `}}`))
			}))
			defer server.Close()

			result, err := NewDetectionClient(server.URL).Detect(context.Background(), []string{"0101001", "0202014"})
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tc.want, result.Confidence)
		})
	}
}

func TestDetect_ConfidenceThresholds(t *testing.T) {
	cases := []struct {
		name       string
		confidence float64
		low        bool
		auto       bool
	}{
		{"weak", 0.60, true, false},
		{"borderline", 0.80, false, false},
		{"strong", 0.95, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"detection_result": map[string]interface{}{
						"detected_pattern": "numeric",
						"confidence":       tc.confidence,
					},
				})
			}))
			defer server.Close()

			result, err := NewDetectionClient(server.URL).Detect(context.Background(), []string{"0101001", "0202014"})
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Equal(t, tc.low, result.LowConfidence())
			assert.Equal(t, tc.auto, result.AutoAcceptable())
		})
	}
}

func TestDetect_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	result, err := NewDetectionClient(server.URL).Detect(context.Background(), []string{"A1", "A2"})
	assert.Error(t, err)
	assert.Nil(t, result)
}
