package layout

// StorageLocations derives the storage slot count from a structure.
// Any non-positive structural field yields 0 rather than an error so
// that as-you-type previews never throw.
func StorageLocations(s Structure) int {
	if !s.Valid() {
		return 0
	}
	return s.NumAisles * s.RacksPerAisle * s.PositionsPerRack * s.LevelsPerPosition
}

// StorageCapacity derives total pallet capacity of the storage slots.
// Bidimensional racks hold two pallets per level, doubling the effective
// per-level capacity in every capacity total.
func StorageCapacity(s Structure) int {
	capacity := StorageLocations(s) * s.DefaultPalletCapacity
	if capacity < 0 {
		return 0
	}
	if s.BidimensionalRacks {
		capacity *= 2
	}
	return capacity
}

// SpecialCapacity sums pallet capacity over special-area entries.
func SpecialCapacity(areas []SpecialArea) int {
	total := 0
	for _, a := range areas {
		if a.Capacity > 0 {
			total += a.Capacity
		}
	}
	return total
}

// TotalCapacity is storage capacity plus all special-area capacity.
func TotalCapacity(s Structure, areas []SpecialArea) int {
	return StorageCapacity(s) + SpecialCapacity(areas)
}
