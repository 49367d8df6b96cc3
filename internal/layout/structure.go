// Package layout holds the pure structural model of a warehouse: the
// capacity calculator, the deterministic location code generator, share
// codes, and special-area projection. No I/O, no logging; everything in
// this package backs live previews and must stay side-effect free.
package layout

// Structure is a warehouse structural configuration: how many aisles,
// racks per aisle, positions per rack and levels per position, plus the
// naming and capacity knobs that drive code generation.
type Structure struct {
	NumAisles              int    `json:"num_aisles"`
	RacksPerAisle          int    `json:"racks_per_aisle"`
	PositionsPerRack       int    `json:"positions_per_rack"`
	LevelsPerPosition      int    `json:"levels_per_position"`
	LevelNames             string `json:"level_names"`
	DefaultPalletCapacity  int    `json:"default_pallet_capacity"`
	BidimensionalRacks     bool   `json:"bidimensional_racks"`
	PositionNumberingStart int    `json:"position_numbering_start"`
	PositionNumberingSplit bool   `json:"position_numbering_split"`
}

// Valid reports whether all four structural counts are positive.
func (s Structure) Valid() bool {
	return s.NumAisles >= 1 &&
		s.RacksPerAisle >= 1 &&
		s.PositionsPerRack >= 1 &&
		s.LevelsPerPosition >= 1
}

// LevelName returns the label for a zero-based level index. Each index
// maps to one character of LevelNames; indexes beyond the string fall
// back to consecutive letters so generation never fails on short names.
func (s Structure) LevelName(index int) string {
	runes := []rune(s.LevelNames)
	if index >= 0 && index < len(runes) {
		return string(runes[index])
	}
	return string(rune('A' + index%26))
}

// PositionNumber maps a zero-based position index to its display number,
// honoring the numbering start offset and the odd/even split option used
// by warehouses that number opposite rack sides separately.
func (s Structure) PositionNumber(index int) int {
	start := s.PositionNumberingStart
	if start <= 0 {
		start = 1
	}
	if s.PositionNumberingSplit {
		return start + index*2
	}
	return start + index
}

// SameShape reports whether two structures produce the identical set of
// locations and capacities. Used to treat re-applying an unchanged
// configuration as idempotent success.
func (s Structure) SameShape(o Structure) bool {
	return s.NumAisles == o.NumAisles &&
		s.RacksPerAisle == o.RacksPerAisle &&
		s.PositionsPerRack == o.PositionsPerRack &&
		s.LevelsPerPosition == o.LevelsPerPosition &&
		s.LevelNames == o.LevelNames &&
		s.DefaultPalletCapacity == o.DefaultPalletCapacity &&
		s.BidimensionalRacks == o.BidimensionalRacks &&
		s.PositionNumberingStart == o.PositionNumberingStart &&
		s.PositionNumberingSplit == o.PositionNumberingSplit
}
