package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShareCode(t *testing.T) {
	s := validStructure()

	tpl := NewShareCode(TemplateCodePrefix, s)
	assert.True(t, strings.HasPrefix(tpl, "TPL-4A2R-"), "got %s", tpl)

	war := NewShareCode(WarehouseCodePrefix, s)
	assert.True(t, strings.HasPrefix(war, "WAR-4A2R-"), "got %s", war)

	parts := strings.Split(tpl, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], 4)
}

func TestUniqueShareCodeRetriesOnCollision(t *testing.T) {
	s := validStructure()

	collisions := 3
	var checked []string
	code, err := UniqueShareCode(TemplateCodePrefix, s, func(c string) (bool, error) {
		checked = append(checked, c)
		if collisions > 0 {
			collisions--
			return true, nil
		}
		return false, nil
	})

	require.NoError(t, err)
	assert.Len(t, checked, 4)
	assert.Equal(t, checked[len(checked)-1], code)
	// Never reuses a code that was reported taken.
	for _, taken := range checked[:3] {
		assert.NotEqual(t, taken, code)
	}
}

func TestUniqueShareCodeGivesUp(t *testing.T) {
	s := validStructure()
	_, err := UniqueShareCode(TemplateCodePrefix, s, func(string) (bool, error) {
		return true, nil
	})
	assert.Error(t, err)
}
