package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/pkg/apperror"
	"github.com/warekit/warehouse-layout/pkg/logger"
)

// ResolvedTemplate is the slice of a template the apply flow needs:
// identity, structure and the special-area snapshot.
type ResolvedTemplate struct {
	ID           uint
	TemplateCode string
	Name         string
	Structure    layout.Structure
	SpecialAreas []layout.SpecialArea
}

// TemplateServiceClient wraps the HTTP client for the template service
type TemplateServiceClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewTemplateServiceClient creates a new template service client
func NewTemplateServiceClient(baseURL string) *TemplateServiceClient {
	logger.Logger.Info().
		Str("address", baseURL).
		Msg("Using Template Service at address")

	return &TemplateServiceClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// templatePayload mirrors the template service's JSON representation.
type templatePayload struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	TemplateCode string `json:"template_code"`

	NumAisles             int    `json:"num_aisles"`
	RacksPerAisle         int    `json:"racks_per_aisle"`
	PositionsPerRack      int    `json:"positions_per_rack"`
	LevelsPerPosition     int    `json:"levels_per_position"`
	LevelNames            string `json:"level_names"`
	DefaultPalletCapacity int    `json:"default_pallet_capacity"`
	BidimensionalRacks    bool   `json:"bidimensional_racks"`

	ReceivingAreas []layout.SpecialArea `json:"receiving_areas_template"`
	StagingAreas   []layout.SpecialArea `json:"staging_areas_template"`
	DockAreas      []layout.SpecialArea `json:"dock_areas_template"`
}

type templateEnvelope struct {
	Success bool            `json:"success"`
	Data    templatePayload `json:"data"`
	Error   string          `json:"error"`
}

func (p templatePayload) resolved() *ResolvedTemplate {
	areas := make([]layout.SpecialArea, 0, len(p.ReceivingAreas)+len(p.StagingAreas)+len(p.DockAreas))
	areas = append(areas, p.ReceivingAreas...)
	areas = append(areas, p.StagingAreas...)
	areas = append(areas, p.DockAreas...)

	return &ResolvedTemplate{
		ID:           p.ID,
		TemplateCode: p.TemplateCode,
		Name:         p.Name,
		Structure: layout.Structure{
			NumAisles:             p.NumAisles,
			RacksPerAisle:         p.RacksPerAisle,
			PositionsPerRack:      p.PositionsPerRack,
			LevelsPerPosition:     p.LevelsPerPosition,
			LevelNames:            p.LevelNames,
			DefaultPalletCapacity: p.DefaultPalletCapacity,
			BidimensionalRacks:    p.BidimensionalRacks,
		},
		SpecialAreas: areas,
	}
}

// GetTemplate resolves a template by ID
func (c *TemplateServiceClient) GetTemplate(ctx context.Context, id uint) (*ResolvedTemplate, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/api/v1/templates/%d", c.baseURL, id))
}

// GetTemplateByCode resolves a template by share code
func (c *TemplateServiceClient) GetTemplateByCode(ctx context.Context, code string) (*ResolvedTemplate, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/api/v1/templates/by-code/%s", c.baseURL, code))
}

func (c *TemplateServiceClient) fetch(ctx context.Context, url string) (*ResolvedTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build template request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call template service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, apperror.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("template service returned status %d", resp.StatusCode)
	}

	var envelope templateEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode template response: %w", err)
	}
	if !envelope.Success {
		return nil, fmt.Errorf("template service error: %s", envelope.Error)
	}

	return envelope.Data.resolved(), nil
}

// SyncAreas pushes the live special areas of a warehouse back into the
// template's snapshot collections.
func (c *TemplateServiceClient) SyncAreas(ctx context.Context, templateID uint, areas []layout.SpecialArea) error {
	body, err := json.Marshal(map[string]interface{}{"areas": areas})
	if err != nil {
		return fmt.Errorf("failed to encode areas: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/api/v1/templates/%d/areas", c.baseURL, templateID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call template service: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return apperror.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("template service returned status %d", resp.StatusCode)
	}
	return nil
}
