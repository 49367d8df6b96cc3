package layout

import (
	"fmt"
	"strings"
)

// AreaType classifies a non-storage area.
type AreaType string

const (
	AreaReceiving    AreaType = "RECEIVING"
	AreaStaging      AreaType = "STAGING"
	AreaDock         AreaType = "DOCK"
	AreaTransitional AreaType = "TRANSITIONAL"
)

// ValidAreaType reports whether t is a known special-area type.
func ValidAreaType(t AreaType) bool {
	switch t {
	case AreaReceiving, AreaStaging, AreaDock, AreaTransitional:
		return true
	}
	return false
}

// SpecialArea is one receiving/staging/dock/transitional area entry as
// recorded on templates and configurations. These entries are snapshots;
// the warehouse's Location rows are the source of truth after creation.
type SpecialArea struct {
	Code     string   `json:"code"`
	Type     AreaType `json:"type"`
	Capacity int      `json:"capacity"`
	Zone     string   `json:"zone"`
}

// Validate checks a single special-area entry.
func (a SpecialArea) Validate() error {
	if strings.TrimSpace(a.Code) == "" {
		return fmt.Errorf("special area code is required")
	}
	if !ValidAreaType(a.Type) {
		return fmt.Errorf("special area %s has unknown type %q", a.Code, a.Type)
	}
	if a.Capacity < 1 {
		return fmt.Errorf("special area %s capacity must be at least 1", a.Code)
	}
	return nil
}

// AreaRow is the projection input: the subset of a Location row needed
// to rebuild a special-area snapshot.
type AreaRow struct {
	Code      string
	Type      string
	Capacity  int
	Zone      string
	IsStorage bool
}

// LocationsToSpecialAreas projects live Location rows into special-area
// entries: exactly one entry per non-storage row, capacity and zone
// copied verbatim, input order preserved. This is how template and
// config snapshots are recomputed from the authoritative rows instead of
// being merged bidirectionally.
func LocationsToSpecialAreas(rows []AreaRow) []SpecialArea {
	areas := make([]SpecialArea, 0, len(rows))
	for _, row := range rows {
		if row.IsStorage {
			continue
		}
		areas = append(areas, SpecialArea{
			Code:     row.Code,
			Type:     AreaType(row.Type),
			Capacity: row.Capacity,
			Zone:     row.Zone,
		})
	}
	return areas
}

// GroupAreasByType splits a flat area list into per-type lists, used to
// populate the receiving/staging/dock collections on templates.
func GroupAreasByType(areas []SpecialArea) map[AreaType][]SpecialArea {
	grouped := make(map[AreaType][]SpecialArea)
	for _, a := range areas {
		grouped[a.Type] = append(grouped[a.Type], a)
	}
	return grouped
}
