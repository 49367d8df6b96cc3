package query

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/warekit/warehouse-layout/internal/location/domain"
)

// Export formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ExportLocationsQuery exports the full location set of a warehouse.
type ExportLocationsQuery struct {
	WarehouseID string
	Format      string
}

// ExportResult is the rendered export plus its content type.
type ExportResult struct {
	ContentType string
	Filename    string
	Data        []byte
}

// ExportLocationsHandler handles location exports
type ExportLocationsHandler struct {
	repo domain.LocationRepository
}

// NewExportLocationsHandler creates a new export locations handler
func NewExportLocationsHandler(repo domain.LocationRepository) *ExportLocationsHandler {
	return &ExportLocationsHandler{repo: repo}
}

// Handle executes the export query
func (h *ExportLocationsHandler) Handle(query ExportLocationsQuery) (*ExportResult, error) {
	if query.WarehouseID == "" {
		return nil, fmt.Errorf("warehouse id is required")
	}

	format := query.Format
	if format == "" {
		format = FormatJSON
	}

	locations, err := h.repo.FindAll(domain.ListFilter{WarehouseID: query.WarehouseID})
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(locations, "", "  ")
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			ContentType: "application/json",
			Filename:    fmt.Sprintf("locations-%s.json", query.WarehouseID),
			Data:        data,
		}, nil

	case FormatCSV:
		data, err := renderCSV(locations)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("locations-%s.csv", query.WarehouseID),
			Data:        data,
		}, nil

	default:
		return nil, fmt.Errorf("unknown export format %q", query.Format)
	}
}

func renderCSV(locations []domain.Location) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"code", "type", "zone", "aisle", "rack", "position", "level", "pallet_capacity", "full_address", "active"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, l := range locations {
		row := []string{
			l.Code,
			l.LocationType,
			l.Zone,
			intOrEmpty(l.Aisle),
			intOrEmpty(l.Rack),
			intOrEmpty(l.Position),
			strOrEmpty(l.Level),
			strconv.Itoa(l.PalletCapacity),
			l.FullAddress,
			strconv.FormatBool(l.IsActive),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func intOrEmpty(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
