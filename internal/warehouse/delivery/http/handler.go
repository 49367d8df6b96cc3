package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/warehouse/usecase/command"
	"github.com/warekit/warehouse-layout/internal/warehouse/usecase/query"
	"github.com/warekit/warehouse-layout/pkg/apperror"
	"github.com/warekit/warehouse-layout/pkg/logger"
)

// WarehouseHandler handles HTTP requests for warehouse configs using CQRS pattern
type WarehouseHandler struct {
	// Command handlers
	setupHandler     *command.SetupWarehouseHandler
	updateHandler    *command.UpdateConfigHandler
	applyHandler     *command.ApplyTemplateHandler
	syncAreasHandler *command.SyncTemplateAreasHandler

	// Query handlers
	getConfigHandler *query.GetConfigHandler
	previewHandler   *query.PreviewConfigHandler
	validateHandler  *query.ValidateConfigHandler
	listHandler      *query.ListWarehousesHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewWarehouseHandlerWithDI creates a new warehouse handler using dependency injection.
// This is used by Wire for automatic dependency injection.
func NewWarehouseHandlerWithDI(
	setupHandler *command.SetupWarehouseHandler,
	updateHandler *command.UpdateConfigHandler,
	applyHandler *command.ApplyTemplateHandler,
	syncAreasHandler *command.SyncTemplateAreasHandler,
	getConfigHandler *query.GetConfigHandler,
	previewHandler *query.PreviewConfigHandler,
	validateHandler *query.ValidateConfigHandler,
	listHandler *query.ListWarehousesHandler,
) *WarehouseHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warehouse_service_requests_total",
			Help: "Total number of requests to warehouse service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "warehouse_service_request_duration_seconds",
			Help:    "Duration of warehouse service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &WarehouseHandler{
		setupHandler:     setupHandler,
		updateHandler:    updateHandler,
		applyHandler:     applyHandler,
		syncAreasHandler: syncAreasHandler,
		getConfigHandler: getConfigHandler,
		previewHandler:   previewHandler,
		validateHandler:  validateHandler,
		listHandler:      listHandler,
		requestCounter:   requestCounter,
		requestLatency:   requestLatency,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
	Step    string      `json:"step,omitempty"`
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
func (h *WarehouseHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *WarehouseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/warehouses", h.metricsMiddleware("/api/v1/warehouses", h.ListWarehouses)).Methods("GET")
	router.HandleFunc("/api/v1/warehouses/preview", h.metricsMiddleware("/api/v1/warehouses/preview", h.PreviewConfig)).Methods("POST")
	router.HandleFunc("/api/v1/warehouses/validate", h.metricsMiddleware("/api/v1/warehouses/validate", h.ValidateConfig)).Methods("POST")

	router.HandleFunc("/api/v1/warehouses/{warehouseId}/config", h.metricsMiddleware("/api/v1/warehouses/{warehouseId}/config", h.GetConfig)).Methods("GET")
	router.HandleFunc("/api/v1/warehouses/{warehouseId}/config", h.metricsMiddleware("/api/v1/warehouses/{warehouseId}/config", AuthMiddleware(h.UpdateConfig))).Methods("PUT")
	router.HandleFunc("/api/v1/warehouses/{warehouseId}/setup", h.metricsMiddleware("/api/v1/warehouses/{warehouseId}/setup", AuthMiddleware(h.SetupWarehouse))).Methods("POST")
	router.HandleFunc("/api/v1/warehouses/{warehouseId}/apply", h.metricsMiddleware("/api/v1/warehouses/{warehouseId}/apply", AuthMiddleware(h.ApplyTemplate))).Methods("POST")
	router.HandleFunc("/api/v1/warehouses/{warehouseId}/sync-areas", h.metricsMiddleware("/api/v1/warehouses/{warehouseId}/sync-areas", AuthMiddleware(h.SyncTemplateAreas))).Methods("POST")
}

// ListWarehouses handles GET /api/v1/warehouses
func (h *WarehouseHandler) ListWarehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.listHandler.Handle(query.ListWarehousesQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list warehouses")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list warehouses",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"warehouses": warehouses,
			"count":      len(warehouses),
		},
	})
}

// GetConfig handles GET /api/v1/warehouses/{warehouseId}/config
func (h *WarehouseHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	warehouseID := mux.Vars(r)["warehouseId"]

	config, err := h.getConfigHandler.Handle(query.GetConfigQuery{WarehouseID: warehouseID})
	if err != nil {
		if apperror.IsNotFound(err) {
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Warehouse is not configured",
			})
			return
		}
		logger.Logger.Error().Err(err).Str("warehouse_id", warehouseID).Msg("Failed to get config")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get configuration",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    config,
	})
}

// setupRequest is the JSON shape for manual setup.
type setupRequest struct {
	Name        string `json:"name"`
	DefaultZone string `json:"default_zone"`

	layout.Structure
	SpecialAreas []layout.SpecialArea `json:"special_areas"`
}

// SetupWarehouse handles POST /api/v1/warehouses/{warehouseId}/setup
func (h *WarehouseHandler) SetupWarehouse(w http.ResponseWriter, r *http.Request) {
	warehouseID := mux.Vars(r)["warehouseId"]

	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	result, err := h.setupHandler.Handle(r.Context(), command.SetupWarehouseCommand{
		WarehouseID:  warehouseID,
		Name:         req.Name,
		DefaultZone:  req.DefaultZone,
		Structure:    req.Structure,
		SpecialAreas: req.SpecialAreas,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Str("warehouse_id", warehouseID).Msg("Failed to set up warehouse")
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Warehouse configured successfully",
		Data:    result,
	})
}

// updateRequest mirrors UpdateConfigCommand's optional fields.
type updateRequest struct {
	Name        *string `json:"name"`
	DefaultZone *string `json:"default_zone"`

	NumAisles             *int    `json:"num_aisles"`
	RacksPerAisle         *int    `json:"racks_per_aisle"`
	PositionsPerRack      *int    `json:"positions_per_rack"`
	LevelsPerPosition     *int    `json:"levels_per_position"`
	LevelNames            *string `json:"level_names"`
	DefaultPalletCapacity *int    `json:"default_pallet_capacity"`
	BidimensionalRacks    *bool   `json:"bidimensional_racks"`

	PositionNumberingStart *int  `json:"position_numbering_start"`
	PositionNumberingSplit *bool `json:"position_numbering_split"`

	SpecialAreas *[]layout.SpecialArea `json:"special_areas"`
}

// UpdateConfig handles PUT /api/v1/warehouses/{warehouseId}/config
func (h *WarehouseHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	warehouseID := mux.Vars(r)["warehouseId"]

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	config, err := h.updateHandler.Handle(r.Context(), command.UpdateConfigCommand{
		WarehouseID:            warehouseID,
		Name:                   req.Name,
		DefaultZone:            req.DefaultZone,
		NumAisles:              req.NumAisles,
		RacksPerAisle:          req.RacksPerAisle,
		PositionsPerRack:       req.PositionsPerRack,
		LevelsPerPosition:      req.LevelsPerPosition,
		LevelNames:             req.LevelNames,
		DefaultPalletCapacity:  req.DefaultPalletCapacity,
		BidimensionalRacks:     req.BidimensionalRacks,
		PositionNumberingStart: req.PositionNumberingStart,
		PositionNumberingSplit: req.PositionNumberingSplit,
		SpecialAreas:           req.SpecialAreas,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Str("warehouse_id", warehouseID).Msg("Failed to update config")
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Configuration updated successfully",
		Data:    config,
	})
}

// ApplyTemplate handles POST /api/v1/warehouses/{warehouseId}/apply
func (h *WarehouseHandler) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	warehouseID := mux.Vars(r)["warehouseId"]

	var req struct {
		TemplateID   uint   `json:"template_id"`
		TemplateCode string `json:"template_code"`
		Name         string `json:"name"`
		DefaultZone  string `json:"default_zone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	userID, _ := userFromContext(r)

	result, err := h.applyHandler.Handle(r.Context(), command.ApplyTemplateCommand{
		WarehouseID:  warehouseID,
		TemplateID:   req.TemplateID,
		TemplateCode: req.TemplateCode,
		Name:         req.Name,
		DefaultZone:  req.DefaultZone,
		AppliedByID:  userID,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Str("warehouse_id", warehouseID).Msg("Failed to apply template")
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Template applied successfully",
		Data:    result,
	})
}

// SyncTemplateAreas handles POST /api/v1/warehouses/{warehouseId}/sync-areas
func (h *WarehouseHandler) SyncTemplateAreas(w http.ResponseWriter, r *http.Request) {
	warehouseID := mux.Vars(r)["warehouseId"]

	count, err := h.syncAreasHandler.Handle(r.Context(), command.SyncTemplateAreasCommand{
		WarehouseID: warehouseID,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Str("warehouse_id", warehouseID).Msg("Failed to sync template areas")
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Template areas synchronized",
		Data: map[string]interface{}{
			"areas_synced": count,
		},
	})
}

// previewRequest is shared by preview and validate.
type previewRequest struct {
	layout.Structure
	SpecialAreas []layout.SpecialArea `json:"special_areas"`
	Format       *layout.CodeFormat   `json:"format"`
}

// PreviewConfig handles POST /api/v1/warehouses/preview
func (h *WarehouseHandler) PreviewConfig(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	result := h.previewHandler.Handle(query.PreviewConfigQuery{
		Structure:    req.Structure,
		SpecialAreas: req.SpecialAreas,
		Format:       req.Format,
	})

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// ValidateConfig handles POST /api/v1/warehouses/validate
func (h *WarehouseHandler) ValidateConfig(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	report := h.validateHandler.Handle(query.ValidateConfigQuery{
		Structure:    req.Structure,
		SpecialAreas: req.SpecialAreas,
	})

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    report,
	})
}

func (h *WarehouseHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Warehouse service is healthy",
		})
	}).Methods("GET")
}

// respondUsecaseError maps usecase errors onto HTTP statuses. Partial
// failures name the step that broke so the client can retry just that
// part.
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

	var perr *apperror.PartialError
	if errors.As(err, &perr) {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   perr.Error(),
			Step:    perr.Step,
		})
		return
	}

	if apperror.IsNotFound(err) {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Not found",
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
