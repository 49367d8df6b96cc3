package query

import (
	"github.com/warekit/warehouse-layout/internal/layout"
)

const previewSampleSize = 12

// PreviewConfigQuery computes what a structure would produce, without
// touching any state. It backs the as-you-type setup preview, so invalid
// intermediate values must come back as zeros rather than errors.
type PreviewConfigQuery struct {
	Structure    layout.Structure
	SpecialAreas []layout.SpecialArea
	Format       *layout.CodeFormat
}

// PreviewResult is the derived summary of a candidate structure.
type PreviewResult struct {
	StorageLocations int      `json:"storage_locations"`
	StorageCapacity  int      `json:"storage_capacity"`
	SpecialCapacity  int      `json:"special_capacity"`
	TotalCapacity    int      `json:"total_capacity"`
	SampleCodes      []string `json:"sample_codes"`
	FirstCode        string   `json:"first_code,omitempty"`
	LastCode         string   `json:"last_code,omitempty"`
}

// PreviewConfigHandler handles config previews
type PreviewConfigHandler struct{}

// NewPreviewConfigHandler creates a new preview config handler
func NewPreviewConfigHandler() *PreviewConfigHandler {
	return &PreviewConfigHandler{}
}

// Handle executes the preview query
func (h *PreviewConfigHandler) Handle(query PreviewConfigQuery) *PreviewResult {
	s := query.Structure

	format := layout.DefaultCodeFormat()
	if query.Format != nil {
		format = *query.Format
	}

	result := &PreviewResult{
		StorageLocations: layout.StorageLocations(s),
		StorageCapacity:  layout.StorageCapacity(s),
		SpecialCapacity:  layout.SpecialCapacity(query.SpecialAreas),
		TotalCapacity:    layout.TotalCapacity(s, query.SpecialAreas),
		SampleCodes:      []string{},
	}

	if result.StorageLocations == 0 {
		return result
	}

	codes := layout.GenerateCodes(s, format)
	sample := len(codes)
	if sample > previewSampleSize {
		sample = previewSampleSize
	}
	for _, c := range codes[:sample] {
		result.SampleCodes = append(result.SampleCodes, c.Code)
	}
	result.FirstCode = codes[0].Code
	result.LastCode = codes[len(codes)-1].Code

	return result
}
