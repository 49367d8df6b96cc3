package layout

import (
	"fmt"
	"strings"
)

// CodeFormat describes how the four coordinates of a storage slot are
// rendered into a location code. A segment with width 0 is omitted, so
// the same generator covers full "01-02-003A" codes and compact
// position+level codes like "010A". The level label is always appended
// to the last numeric segment.
type CodeFormat struct {
	PatternName   string `json:"pattern_name"`
	Separator     string `json:"separator"`
	AisleWidth    int    `json:"aisle_width"`
	RackWidth     int    `json:"rack_width"`
	PositionWidth int    `json:"position_width"`
}

// DefaultCodeFormat renders aisle-rack-position-level with zero padding,
// e.g. "01-02-003A".
func DefaultCodeFormat() CodeFormat {
	return CodeFormat{
		PatternName:   "aisle-rack-position-level",
		Separator:     "-",
		AisleWidth:    2,
		RackWidth:     2,
		PositionWidth: 3,
	}
}

// PositionLevelFormat renders compact position+level codes, e.g. "010A".
func PositionLevelFormat() CodeFormat {
	return CodeFormat{
		PatternName:   "position-level",
		PositionWidth: 3,
	}
}

// Code renders one location code. Level is appended without a separator.
func (f CodeFormat) Code(aisle, rack, position int, level string) string {
	var segments []string
	if f.AisleWidth > 0 {
		segments = append(segments, pad(aisle, f.AisleWidth))
	}
	if f.RackWidth > 0 {
		segments = append(segments, pad(rack, f.RackWidth))
	}
	if f.PositionWidth > 0 {
		segments = append(segments, pad(position, f.PositionWidth))
	}
	if len(segments) == 0 {
		segments = append(segments, fmt.Sprintf("%d", position))
	}
	return strings.Join(segments, f.Separator) + level
}

func pad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// GeneratedLocation is one enumerated storage slot with its hierarchy
// coordinates and rendered code.
type GeneratedLocation struct {
	Aisle    int
	Rack     int
	Position int
	Level    string
	Code     string
}

// GenerateCodes enumerates every storage slot of a structure in the
// canonical order: aisle-major, then rack, then position, then level.
// The ordering is stable across calls with identical input, which makes
// full regeneration reproducible. The slice length always equals
// StorageLocations(s).
func GenerateCodes(s Structure, f CodeFormat) []GeneratedLocation {
	count := StorageLocations(s)
	if count == 0 {
		return nil
	}

	out := make([]GeneratedLocation, 0, count)
	for aisle := 1; aisle <= s.NumAisles; aisle++ {
		for rack := 1; rack <= s.RacksPerAisle; rack++ {
			for posIdx := 0; posIdx < s.PositionsPerRack; posIdx++ {
				position := s.PositionNumber(posIdx)
				for levelIdx := 0; levelIdx < s.LevelsPerPosition; levelIdx++ {
					level := s.LevelName(levelIdx)
					out = append(out, GeneratedLocation{
						Aisle:    aisle,
						Rack:     rack,
						Position: position,
						Level:    level,
						Code:     f.Code(aisle, rack, position, level),
					})
				}
			}
		}
	}
	return out
}

// FullAddress renders the human-readable address of a storage slot.
func FullAddress(aisle, rack, position int, level string) string {
	return fmt.Sprintf("Aisle %d, Rack %d, Position %d, Level %s", aisle, rack, position, level)
}
