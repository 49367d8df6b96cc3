package layout

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Share code prefixes per entity type.
const (
	TemplateCodePrefix  = "TPL"
	WarehouseCodePrefix = "WAR"
)

const shareCodeMaxAttempts = 10

// NewShareCode builds a short, human-shareable code: prefix, a structure
// digest and a random suffix, e.g. "TPL-4A2R-9F3C".
func NewShareCode(prefix string, s Structure) string {
	return fmt.Sprintf("%s-%dA%dR-%s", prefix, s.NumAisles, s.RacksPerAisle, randomSuffix())
}

func randomSuffix() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return id[:4]
}

// UniqueShareCode generates a share code that does not collide with an
// existing one, regenerating and retrying on collision. It never reuses
// an existing code.
func UniqueShareCode(prefix string, s Structure, exists func(code string) (bool, error)) (string, error) {
	for attempt := 0; attempt < shareCodeMaxAttempts; attempt++ {
		code := NewShareCode(prefix, s)
		taken, err := exists(code)
		if err != nil {
			return "", fmt.Errorf("failed to check share code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique %s share code after %d attempts", prefix, shareCodeMaxAttempts)
}
