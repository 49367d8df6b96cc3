package kafka

import "time"

// TemplateAppliedEvent is emitted after a template has been fully
// applied to a warehouse. The template service consumes it to bump the
// template's usage counter.
type TemplateAppliedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	TemplateID    uint      `json:"template_id"`
	TemplateCode  string    `json:"template_code"`
	WarehouseID   string    `json:"warehouse_id"`
	ConfigID      uint      `json:"config_id"`
	LocationCount int       `json:"location_count"`
	AppliedByID   uint      `json:"applied_by_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// LocationsGeneratedEvent is emitted after location rows have been
// regenerated for a warehouse.
type LocationsGeneratedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	WarehouseID   string    `json:"warehouse_id"`
	ConfigID      uint      `json:"config_id"`
	StorageCount  int       `json:"storage_count"`
	SpecialCount  int       `json:"special_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeTemplateApplied    = "template.applied"
	EventTypeLocationsGenerated = "locations.generated"
)

// Kafka topics
const (
	TopicTemplateApplied    = "template-applied"
	TopicLocationsGenerated = "locations-generated"
)
