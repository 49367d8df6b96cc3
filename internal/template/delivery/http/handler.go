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
	qrcode "github.com/skip2/go-qrcode"

	"github.com/warekit/warehouse-layout/internal/layout"
	"github.com/warekit/warehouse-layout/internal/template/client"
	"github.com/warekit/warehouse-layout/internal/template/domain"
	"github.com/warekit/warehouse-layout/internal/template/usecase/command"
	"github.com/warekit/warehouse-layout/internal/template/usecase/query"
	"github.com/warekit/warehouse-layout/pkg/apperror"
	"github.com/warekit/warehouse-layout/pkg/logger"
)

// TemplateHandler handles HTTP requests for warehouse templates using CQRS pattern
type TemplateHandler struct {
	// Command handlers
	createHandler     *command.CreateTemplateHandler
	updateHandler     *command.UpdateTemplateHandler
	deleteHandler     *command.DeleteTemplateHandler
	duplicateHandler  *command.DuplicateTemplateHandler
	fromConfigHandler *command.CreateFromConfigHandler
	syncAreasHandler  *command.SyncAreasHandler

	// Query handlers
	getHandler     *query.GetTemplateHandler
	byCodeHandler  *query.GetByCodeHandler
	listHandler    *query.ListTemplatesHandler
	popularHandler *query.PopularTemplatesHandler

	detector *client.DetectionClient

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewTemplateHandler creates a new template handler (manual DI)
func NewTemplateHandler(repo domain.TemplateRepository, detector *client.DetectionClient) *TemplateHandler {
	return NewTemplateHandlerWithDI(
		command.NewCreateTemplateHandler(repo),
		command.NewUpdateTemplateHandler(repo),
		command.NewDeleteTemplateHandler(repo),
		command.NewDuplicateTemplateHandler(repo),
		command.NewCreateFromConfigHandler(repo),
		command.NewSyncAreasHandler(repo),
		query.NewGetTemplateHandler(repo),
		query.NewGetByCodeHandler(repo),
		query.NewListTemplatesHandler(repo),
		query.NewPopularTemplatesHandler(repo),
		detector,
	)
}

// NewTemplateHandlerWithDI creates a new template handler using dependency injection.
// This is used by Wire for automatic dependency injection.
func NewTemplateHandlerWithDI(
	createHandler *command.CreateTemplateHandler,
	updateHandler *command.UpdateTemplateHandler,
	deleteHandler *command.DeleteTemplateHandler,
	duplicateHandler *command.DuplicateTemplateHandler,
	fromConfigHandler *command.CreateFromConfigHandler,
	syncAreasHandler *command.SyncAreasHandler,
	getHandler *query.GetTemplateHandler,
	byCodeHandler *query.GetByCodeHandler,
	listHandler *query.ListTemplatesHandler,
	popularHandler *query.PopularTemplatesHandler,
	detector *client.DetectionClient,
) *TemplateHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_service_requests_total",
			Help: "Total number of requests to template service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "template_service_request_duration_seconds",
			Help:    "Duration of template service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &TemplateHandler{
		createHandler:     createHandler,
		updateHandler:     updateHandler,
		deleteHandler:     deleteHandler,
		duplicateHandler:  duplicateHandler,
		fromConfigHandler: fromConfigHandler,
		syncAreasHandler:  syncAreasHandler,
		getHandler:        getHandler,
		byCodeHandler:     byCodeHandler,
		listHandler:       listHandler,
		popularHandler:    popularHandler,
		detector:          detector,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
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
func (h *TemplateHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *TemplateHandler) RegisterRoutes(router *mux.Router) {
	// Static paths before /{id} so mux never swallows them as IDs
	router.HandleFunc("/api/v1/templates/popular", h.metricsMiddleware("/api/v1/templates/popular", h.PopularTemplates)).Methods("GET")
	router.HandleFunc("/api/v1/templates/by-code/{code}", h.metricsMiddleware("/api/v1/templates/by-code/{code}", h.GetByCode)).Methods("GET")
	router.HandleFunc("/api/v1/templates/detect-format", h.metricsMiddleware("/api/v1/templates/detect-format", h.DetectFormat)).Methods("POST")
	router.HandleFunc("/api/v1/templates/from-config", h.metricsMiddleware("/api/v1/templates/from-config", AuthMiddleware(h.CreateFromConfig))).Methods("POST")

	router.HandleFunc("/api/v1/templates", h.metricsMiddleware("/api/v1/templates", OptionalAuthMiddleware(h.ListTemplates))).Methods("GET")
	router.HandleFunc("/api/v1/templates", h.metricsMiddleware("/api/v1/templates", AuthMiddleware(h.CreateTemplate))).Methods("POST")
	router.HandleFunc("/api/v1/templates/{id}", h.metricsMiddleware("/api/v1/templates/{id}", h.GetTemplate)).Methods("GET")
	router.HandleFunc("/api/v1/templates/{id}", h.metricsMiddleware("/api/v1/templates/{id}", AuthMiddleware(h.UpdateTemplate))).Methods("PUT")
	router.HandleFunc("/api/v1/templates/{id}", h.metricsMiddleware("/api/v1/templates/{id}", AuthMiddleware(h.DeleteTemplate))).Methods("DELETE")
	router.HandleFunc("/api/v1/templates/{id}/duplicate", h.metricsMiddleware("/api/v1/templates/{id}/duplicate", AuthMiddleware(h.DuplicateTemplate))).Methods("POST")
	router.HandleFunc("/api/v1/templates/{id}/areas", h.metricsMiddleware("/api/v1/templates/{id}/areas", h.SyncAreas)).Methods("PUT")
	router.HandleFunc("/api/v1/templates/{id}/qr", h.metricsMiddleware("/api/v1/templates/{id}/qr", h.TemplateQR)).Methods("GET")
}

// templateRequest is the JSON shape shared by create and update.
type templateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`

	NumAisles             *int    `json:"num_aisles"`
	RacksPerAisle         *int    `json:"racks_per_aisle"`
	PositionsPerRack      *int    `json:"positions_per_rack"`
	LevelsPerPosition     *int    `json:"levels_per_position"`
	LevelNames            *string `json:"level_names"`
	DefaultPalletCapacity *int    `json:"default_pallet_capacity"`
	BidimensionalRacks    *bool   `json:"bidimensional_racks"`

	ReceivingAreas *[]layout.SpecialArea `json:"receiving_areas_template"`
	StagingAreas   *[]layout.SpecialArea `json:"staging_areas_template"`
	DockAreas      *[]layout.SpecialArea `json:"dock_areas_template"`

	Visibility *string   `json:"visibility"`
	Category   *string   `json:"category"`
	Industry   *string   `json:"industry"`
	Tags       *[]string `json:"tags"`

	PatternName       *string   `json:"pattern_name"`
	CanonicalExamples *[]string `json:"canonical_examples"`
	IsActive          *bool     `json:"is_active"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// CreateTemplate handles POST /api/v1/templates
func (h *TemplateHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	userID, username := userFromContext(r)

	cmd := command.CreateTemplateCommand{
		Name:                  deref(req.Name),
		Description:           deref(req.Description),
		NumAisles:             deref(req.NumAisles),
		RacksPerAisle:         deref(req.RacksPerAisle),
		PositionsPerRack:      deref(req.PositionsPerRack),
		LevelsPerPosition:     deref(req.LevelsPerPosition),
		LevelNames:            deref(req.LevelNames),
		DefaultPalletCapacity: deref(req.DefaultPalletCapacity),
		BidimensionalRacks:    deref(req.BidimensionalRacks),
		ReceivingAreas:        deref(req.ReceivingAreas),
		StagingAreas:          deref(req.StagingAreas),
		DockAreas:             deref(req.DockAreas),
		Visibility:            deref(req.Visibility),
		Category:              deref(req.Category),
		Industry:              deref(req.Industry),
		Tags:                  deref(req.Tags),
		PatternName:           deref(req.PatternName),
		CanonicalExamples:     deref(req.CanonicalExamples),
		CreatedByID:           userID,
		CreatedByName:         username,
	}

	template, err := h.createHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create template")
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Template created successfully",
		Data:    template,
	})
}

// ListTemplates handles GET /api/v1/templates
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	userID, _ := userFromContext(r)

	q := query.ListTemplatesQuery{
		Scope:  r.URL.Query().Get("scope"),
		Search: r.URL.Query().Get("search"),
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	}

	templates, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list templates")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"templates": templates,
			"count":     len(templates),
			"offset":    offset,
		},
	})
}

// GetTemplate handles GET /api/v1/templates/{id}
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	template, err := h.getHandler.Handle(query.GetTemplateQuery{ID: id})
	if err != nil {
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    template,
	})
}

// GetByCode handles GET /api/v1/templates/by-code/{code}
func (h *TemplateHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	template, err := h.byCodeHandler.Handle(query.GetByCodeQuery{Code: code})
	if err != nil {
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    template,
	})
}

// UpdateTemplate handles PUT /api/v1/templates/{id}
func (h *TemplateHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	userID, _ := userFromContext(r)

	cmd := command.UpdateTemplateCommand{
		ID:                    id,
		RequestedBy:           userID,
		Name:                  req.Name,
		Description:           req.Description,
		NumAisles:             req.NumAisles,
		RacksPerAisle:         req.RacksPerAisle,
		PositionsPerRack:      req.PositionsPerRack,
		LevelsPerPosition:     req.LevelsPerPosition,
		LevelNames:            req.LevelNames,
		DefaultPalletCapacity: req.DefaultPalletCapacity,
		BidimensionalRacks:    req.BidimensionalRacks,
		ReceivingAreas:        req.ReceivingAreas,
		StagingAreas:          req.StagingAreas,
		DockAreas:             req.DockAreas,
		Visibility:            req.Visibility,
		Category:              req.Category,
		Industry:              req.Industry,
		Tags:                  req.Tags,
		PatternName:           req.PatternName,
		CanonicalExamples:     req.CanonicalExamples,
		IsActive:              req.IsActive,
	}

	template, err := h.updateHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update template")
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Template updated successfully",
		Data:    template,
	})
}

// DeleteTemplate handles DELETE /api/v1/templates/{id}
func (h *TemplateHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	userID, _ := userFromContext(r)

	if err := h.deleteHandler.Handle(command.DeleteTemplateCommand{ID: id, RequestedBy: userID}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete template")
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Template deleted successfully",
	})
}

// DuplicateTemplate handles POST /api/v1/templates/{id}/duplicate
func (h *TemplateHandler) DuplicateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	userID, username := userFromContext(r)

	template, err := h.duplicateHandler.Handle(command.DuplicateTemplateCommand{
		SourceID:      id,
		NewName:       req.Name,
		RequestedBy:   userID,
		RequestedName: username,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to duplicate template")
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Template duplicated successfully",
		Data:    template,
	})
}

// CreateFromConfig handles POST /api/v1/templates/from-config
func (h *TemplateHandler) CreateFromConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID    uint   `json:"config_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Visibility  string `json:"visibility"`

		Structure    layout.Structure     `json:"structure"`
		SpecialAreas []layout.SpecialArea `json:"special_areas"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	userID, username := userFromContext(r)

	template, err := h.fromConfigHandler.Handle(command.CreateFromConfigCommand{
		ConfigID:      req.ConfigID,
		Name:          req.Name,
		Description:   req.Description,
		Visibility:    req.Visibility,
		Structure:     req.Structure,
		SpecialAreas:  req.SpecialAreas,
		CreatedByID:   userID,
		CreatedByName: username,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create template from config")
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Template created from configuration",
		Data:    template,
	})
}

// SyncAreas handles PUT /api/v1/templates/{id}/areas
func (h *TemplateHandler) SyncAreas(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req struct {
		Areas []layout.SpecialArea `json:"areas"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	template, err := h.syncAreasHandler.Handle(command.SyncAreasCommand{
		TemplateID: id,
		Areas:      req.Areas,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to sync template areas")
		respondUsecaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Special areas synchronized",
		Data:    template,
	})
}

// PopularTemplates handles GET /api/v1/templates/popular
func (h *TemplateHandler) PopularTemplates(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	templates, err := h.popularHandler.Handle(query.PopularTemplatesQuery{Limit: limit})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list popular templates")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list popular templates",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    templates,
	})
}

// DetectFormat handles POST /api/v1/templates/detect-format
func (h *TemplateHandler) DetectFormat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Examples []string `json:"examples"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	result, err := h.detector.Detect(r.Context(), req.Examples)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Format detection failed")
		respondJSON(w, http.StatusBadGateway, Response{
			Success: false,
			Error:   "Format detection service unavailable",
		})
		return
	}

	if result == nil {
		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Not enough examples to detect a format",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// TemplateQR handles GET /api/v1/templates/{id}/qr. The PNG encodes the
// share code so another warehouse can import the template by scanning it.
func (h *TemplateHandler) TemplateQR(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	template, err := h.getHandler.Handle(query.GetTemplateQuery{ID: id})
	if err != nil {
		respondUsecaseError(w, err)
		return
	}

	png, err := qrcode.Encode(template.TemplateCode, qrcode.Medium, 256)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to render QR code")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to render QR code",
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *TemplateHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
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
			Message: "Template service is healthy",
		})
	}).Methods("GET")
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid template ID",
		})
		return 0, false
	}
	return uint(id), true
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
			Error:   "Template not found",
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
