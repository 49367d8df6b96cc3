package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCodesCountMatchesFormula(t *testing.T) {
	s := validStructure()
	generated := GenerateCodes(s, DefaultCodeFormat())

	require.Len(t, generated, StorageLocations(s))

	seen := make(map[string]bool, len(generated))
	for _, g := range generated {
		assert.False(t, seen[g.Code], "duplicate code %s", g.Code)
		seen[g.Code] = true
	}
}

func TestGenerateCodesCanonicalOrder(t *testing.T) {
	s := Structure{
		NumAisles:             2,
		RacksPerAisle:         2,
		PositionsPerRack:      2,
		LevelsPerPosition:     2,
		LevelNames:            "AB",
		DefaultPalletCapacity: 1,
	}

	generated := GenerateCodes(s, DefaultCodeFormat())
	require.Len(t, generated, 16)

	// Aisle-major, then rack, then position, then level.
	assert.Equal(t, "01-01-001A", generated[0].Code)
	assert.Equal(t, "01-01-001B", generated[1].Code)
	assert.Equal(t, "01-01-002A", generated[2].Code)
	assert.Equal(t, "01-02-001A", generated[4].Code)
	assert.Equal(t, "02-01-001A", generated[8].Code)
	assert.Equal(t, "02-02-002B", generated[15].Code)
}

func TestGenerateCodesReproducible(t *testing.T) {
	s := validStructure()
	first := GenerateCodes(s, DefaultCodeFormat())
	second := GenerateCodes(s, DefaultCodeFormat())
	assert.Equal(t, first, second)
}

func TestGenerateCodesEmptyStructure(t *testing.T) {
	assert.Nil(t, GenerateCodes(Structure{}, DefaultCodeFormat()))
}

func TestPositionLevelFormat(t *testing.T) {
	f := PositionLevelFormat()
	assert.Equal(t, "010A", f.Code(1, 1, 10, "A"))
	assert.Equal(t, "325B", f.Code(3, 2, 325, "B"))
}

func TestPositionNumberingOptions(t *testing.T) {
	s := Structure{
		NumAisles:              1,
		RacksPerAisle:          1,
		PositionsPerRack:       3,
		LevelsPerPosition:      1,
		LevelNames:             "A",
		DefaultPalletCapacity:  1,
		PositionNumberingStart: 5,
	}

	generated := GenerateCodes(s, DefaultCodeFormat())
	require.Len(t, generated, 3)
	assert.Equal(t, 5, generated[0].Position)
	assert.Equal(t, 7, generated[2].Position)

	s.PositionNumberingSplit = true
	generated = GenerateCodes(s, DefaultCodeFormat())
	require.Len(t, generated, 3)
	assert.Equal(t, []int{5, 7, 9}, []int{generated[0].Position, generated[1].Position, generated[2].Position})
}

func TestLevelNameFallback(t *testing.T) {
	s := Structure{LevelNames: "AB"}
	assert.Equal(t, "A", s.LevelName(0))
	assert.Equal(t, "B", s.LevelName(1))
	// Index beyond LevelNames falls back to consecutive letters.
	assert.Equal(t, "C", s.LevelName(2))
}
