package query

import (
	"fmt"

	"github.com/warekit/warehouse-layout/internal/layout"
)

// ValidateConfigQuery checks a candidate structure and area set without
// persisting anything.
type ValidateConfigQuery struct {
	Structure    layout.Structure
	SpecialAreas []layout.SpecialArea
}

// ValidationReport lists every problem found. An empty Problems map
// means the candidate is applyable.
type ValidationReport struct {
	Valid    bool              `json:"valid"`
	Problems map[string]string `json:"problems"`
}

// ValidateConfigHandler handles config validation
type ValidateConfigHandler struct{}

// NewValidateConfigHandler creates a new validate config handler
func NewValidateConfigHandler() *ValidateConfigHandler {
	return &ValidateConfigHandler{}
}

// Handle executes the validation query. Every violation is reported, not
// just the first.
func (h *ValidateConfigHandler) Handle(query ValidateConfigQuery) *ValidationReport {
	problems := make(map[string]string)
	s := query.Structure

	if s.NumAisles < 1 {
		problems["num_aisles"] = "must be a positive integer"
	}
	if s.RacksPerAisle < 1 {
		problems["racks_per_aisle"] = "must be a positive integer"
	}
	if s.PositionsPerRack < 1 {
		problems["positions_per_rack"] = "must be a positive integer"
	}
	if s.LevelsPerPosition < 1 {
		problems["levels_per_position"] = "must be a positive integer"
	}
	if s.LevelNames != "" && len([]rune(s.LevelNames)) < s.LevelsPerPosition {
		problems["level_names"] = "must name every level"
	}
	if s.DefaultPalletCapacity < 0 {
		problems["default_pallet_capacity"] = "must not be negative"
	}

	seen := make(map[string]bool, len(query.SpecialAreas))
	for i, area := range query.SpecialAreas {
		field := fmt.Sprintf("special_areas[%d]", i)
		if err := area.Validate(); err != nil {
			problems[field] = err.Error()
			continue
		}
		if seen[area.Code] {
			problems[field] = fmt.Sprintf("duplicate area code %q", area.Code)
		}
		seen[area.Code] = true
	}

	return &ValidationReport{
		Valid:    len(problems) == 0,
		Problems: problems,
	}
}
