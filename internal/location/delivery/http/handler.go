package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/warekit/warehouse-layout/internal/location/labels"
	"github.com/warekit/warehouse-layout/internal/location/usecase/command"
	"github.com/warekit/warehouse-layout/internal/location/usecase/query"
	"github.com/warekit/warehouse-layout/pkg/apperror"
	"github.com/warekit/warehouse-layout/pkg/logger"
)

// LocationHandler handles HTTP requests for locations using CQRS pattern
type LocationHandler struct {
	// Command handlers
	createHandler *command.CreateLocationHandler
	updateHandler *command.UpdateLocationHandler
	deleteHandler *command.DeleteLocationHandler
	bulkHandler   *command.BulkCreateHandler

	// Query handlers
	getHandler    *query.GetLocationHandler
	listHandler   *query.ListLocationsHandler
	exportHandler *query.ExportLocationsHandler
	areasHandler  *query.SpecialAreasHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewLocationHandlerWithDI creates a new location handler using dependency injection.
// This is used by Wire for automatic dependency injection.
func NewLocationHandlerWithDI(
	createHandler *command.CreateLocationHandler,
	updateHandler *command.UpdateLocationHandler,
	deleteHandler *command.DeleteLocationHandler,
	bulkHandler *command.BulkCreateHandler,
	getHandler *query.GetLocationHandler,
	listHandler *query.ListLocationsHandler,
	exportHandler *query.ExportLocationsHandler,
	areasHandler *query.SpecialAreasHandler,
) *LocationHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "location_service_requests_total",
			Help: "Total number of requests to location endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "location_service_request_duration_seconds",
			Help:    "Duration of location endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &LocationHandler{
		createHandler:  createHandler,
		updateHandler:  updateHandler,
		deleteHandler:  deleteHandler,
		bulkHandler:    bulkHandler,
		getHandler:     getHandler,
		listHandler:    listHandler,
		exportHandler:  exportHandler,
		areasHandler:   areasHandler,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *LocationHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *LocationHandler) RegisterRoutes(router *mux.Router) {
	// Warehouse-scoped routes. Static suffixes first, they would match
	// {warehouseId} otherwise.
	router.HandleFunc("/api/v1/warehouses/{warehouseId}/locations/bulk", h.metricsMiddleware("/api/v1/warehouses/{warehouseId}/locations/bulk", AuthMiddleware(h.BulkCreate))).Methods("POST")
	router.HandleFunc("/api/v1/warehouses/{warehouseId}/locations/export", h.metricsMiddleware("/api/v1/warehouses/{warehouseId}/locations/export", h.Export)).Methods("GET")
	router.HandleFunc("/api/v1/warehouses/{warehouseId}/locations/labels", h.metricsMiddleware("/api/v1/warehouses/{warehouseId}/locations/labels", h.Labels)).Methods("GET")
	router.HandleFunc("/api/v1/warehouses/{warehouseId}/locations", h.metricsMiddleware("/api/v1/warehouses/{warehouseId}/locations", h.ListLocations)).Methods("GET")
	router.HandleFunc("/api/v1/warehouses/{warehouseId}/locations", h.metricsMiddleware("/api/v1/warehouses/{warehouseId}/locations", AuthMiddleware(h.CreateLocation))).Methods("POST")
	router.HandleFunc("/api/v1/warehouses/{warehouseId}/special-areas", h.metricsMiddleware("/api/v1/warehouses/{warehouseId}/special-areas", h.SpecialAreas)).Methods("GET")

	// ID-scoped routes
	router.HandleFunc("/api/v1/locations/{id}", h.metricsMiddleware("/api/v1/locations/{id}", h.GetLocation)).Methods("GET")
	router.HandleFunc("/api/v1/locations/{id}", h.metricsMiddleware("/api/v1/locations/{id}", AuthMiddleware(h.UpdateLocation))).Methods("PUT")
	router.HandleFunc("/api/v1/locations/{id}", h.metricsMiddleware("/api/v1/locations/{id}", AuthMiddleware(h.DeleteLocation))).Methods("DELETE")
}

// locationRequest is the JSON shape for single and bulk creation.
type locationRequest struct {
	Code         string `json:"code"`
	LocationType string `json:"location_type"`
	Zone         string `json:"zone"`

	Aisle    *int    `json:"aisle"`
	Rack     *int    `json:"rack"`
	Position *int    `json:"position"`
	Level    *string `json:"level"`

	PalletCapacity int `json:"pallet_capacity"`
}

func (req locationRequest) toCommand(warehouseID string) command.CreateLocationCommand {
	return command.CreateLocationCommand{
		WarehouseID:    warehouseID,
		Code:           req.Code,
		LocationType:   req.LocationType,
		Zone:           req.Zone,
		Aisle:          req.Aisle,
		Rack:           req.Rack,
		Position:       req.Position,
		Level:          req.Level,
		PalletCapacity: req.PalletCapacity,
	}
}

// ListLocations handles GET /api/v1/warehouses/{warehouseId}/locations
func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	warehouseID := mux.Vars(r)["warehouseId"]
	q := r.URL.Query()

	listQuery := query.ListLocationsQuery{
		WarehouseID:  warehouseID,
		LocationType: q.Get("type"),
		Zone:         q.Get("zone"),
		Search:       q.Get("search"),
	}
	if v := q.Get("aisle"); v != "" {
		aisle, err := strconv.Atoi(v)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid aisle parameter",
			})
			return
		}
		listQuery.Aisle = &aisle
	}
	listQuery.Limit, _ = strconv.Atoi(q.Get("limit"))
	listQuery.Offset, _ = strconv.Atoi(q.Get("offset"))

	result, err := h.listHandler.Handle(listQuery)
	if err != nil {
		logger.Logger.Error().Err(err).Str("warehouse_id", warehouseID).Msg("Failed to list locations")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list locations",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetLocation handles GET /api/v1/locations/{id}
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid location ID",
		})
		return
	}

	location, err := h.getHandler.Handle(query.GetLocationQuery{ID: id})
	if err != nil {
		if apperror.IsNotFound(err) {
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Location not found",
			})
			return
		}
		logger.Logger.Error().Err(err).Uint("location_id", id).Msg("Failed to get location")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get location",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    location,
	})
}

// CreateLocation handles POST /api/v1/warehouses/{warehouseId}/locations
func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	warehouseID := mux.Vars(r)["warehouseId"]

	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	location, err := h.createHandler.Handle(req.toCommand(warehouseID))
	if err != nil {
		logger.Logger.Error().Err(err).Str("warehouse_id", warehouseID).Msg("Failed to create location")
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Location created successfully",
		Data:    location,
	})
}

// BulkCreate handles POST /api/v1/warehouses/{warehouseId}/locations/bulk
func (h *LocationHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	warehouseID := mux.Vars(r)["warehouseId"]

	var req struct {
		Locations []locationRequest `json:"locations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.BulkCreateCommand{WarehouseID: warehouseID}
	for _, item := range req.Locations {
		cmd.Locations = append(cmd.Locations, item.toCommand(warehouseID))
	}

	result, err := h.bulkHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Str("warehouse_id", warehouseID).Msg("Bulk location create failed")
		respondUsecaseError(w, err)
		return
	}

	status := http.StatusCreated
	if result.ErrorCount > 0 {
		status = http.StatusMultiStatus
	}
	respondJSON(w, status, Response{
		Success: result.ErrorCount == 0,
		Message: fmt.Sprintf("%d locations created, %d failed", result.CreatedCount, result.ErrorCount),
		Data:    result,
	})
}

// UpdateLocation handles PUT /api/v1/locations/{id}
func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid location ID",
		})
		return
	}

	var req struct {
		Zone           *string `json:"zone"`
		PalletCapacity *int    `json:"pallet_capacity"`
		IsActive       *bool   `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	location, err := h.updateHandler.Handle(command.UpdateLocationCommand{
		ID:             id,
		Zone:           req.Zone,
		PalletCapacity: req.PalletCapacity,
		IsActive:       req.IsActive,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("location_id", id).Msg("Failed to update location")
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Location updated successfully",
		Data:    location,
	})
}

// DeleteLocation handles DELETE /api/v1/locations/{id}
func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid location ID",
		})
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteLocationCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Uint("location_id", id).Msg("Failed to delete location")
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Location deleted successfully",
	})
}

// Export handles GET /api/v1/warehouses/{warehouseId}/locations/export
func (h *LocationHandler) Export(w http.ResponseWriter, r *http.Request) {
	warehouseID := mux.Vars(r)["warehouseId"]

	result, err := h.exportHandler.Handle(query.ExportLocationsQuery{
		WarehouseID: warehouseID,
		Format:      r.URL.Query().Get("format"),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Str("warehouse_id", warehouseID).Msg("Failed to export locations")
		respondUsecaseError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

// Labels handles GET /api/v1/warehouses/{warehouseId}/locations/labels
func (h *LocationHandler) Labels(w http.ResponseWriter, r *http.Request) {
	warehouseID := mux.Vars(r)["warehouseId"]
	q := r.URL.Query()

	listQuery := query.ListLocationsQuery{
		WarehouseID:  warehouseID,
		LocationType: q.Get("type"),
		Zone:         q.Get("zone"),
	}

	result, err := h.listHandler.Handle(listQuery)
	if err != nil {
		logger.Logger.Error().Err(err).Str("warehouse_id", warehouseID).Msg("Failed to load locations for labels")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to load locations",
		})
		return
	}
	if len(result.Locations) == 0 {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "No locations to print",
		})
		return
	}

	pdf, err := labels.GenerateSheet(result.Locations, labels.DefaultSheetConfig())
	if err != nil {
		logger.Logger.Error().Err(err).Str("warehouse_id", warehouseID).Msg("Failed to render label sheet")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to render label sheet",
		})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "labels-"+warehouseID+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// SpecialAreas handles GET /api/v1/warehouses/{warehouseId}/special-areas
func (h *LocationHandler) SpecialAreas(w http.ResponseWriter, r *http.Request) {
	warehouseID := mux.Vars(r)["warehouseId"]

	areas, err := h.areasHandler.Handle(query.SpecialAreasQuery{WarehouseID: warehouseID})
	if err != nil {
		logger.Logger.Error().Err(err).Str("warehouse_id", warehouseID).Msg("Failed to project special areas")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to load special areas",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"special_areas": areas,
			"count":         len(areas),
		},
	})
}

// respondUsecaseError maps usecase errors onto HTTP statuses.
func respondUsecaseError(w http.ResponseWriter, err error) {
	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusUnprocessableEntity, Response{
			Success: false,
			Error:   "Validation failed",
			Fields:  verr.Fields,
		})
		return
	}

	var cerr *apperror.ConflictError
	if errors.As(err, &cerr) {
		respondJSON(w, http.StatusConflict, Response{
			Success: false,
			Error:   cerr.Error(),
		})
		return
	}

	if apperror.IsNotFound(err) {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Location not found",
		})
		return
	}

	respondJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Error:   err.Error(),
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func parseID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
