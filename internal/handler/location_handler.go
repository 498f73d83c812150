package handler

import (
	"encoding/json"
	"net/http"

	"solesnaps-api/internal/model"
	"solesnaps-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LocationHandler handles delivery location HTTP requests.
type LocationHandler struct {
	service service.LocationService
	logger  zerolog.Logger
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(service service.LocationService, logger zerolog.Logger) *LocationHandler {
	return &LocationHandler{
		service: service,
		logger:  logger.With().Str("handler", "location").Logger(),
	}
}

// List handles GET /api/locations requests. Admins see every location;
// everyone else sees active ones only.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := false
	if actor, ok := actorFrom(r); ok && actor.Admin() {
		includeInactive = true
	}

	locations, err := h.service.List(r.Context(), includeInactive)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"locations": locations})
}

// GetByID handles GET /api/locations/{id} requests.
func (h *LocationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	locationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "invalid location ID format", h.logger)
		return
	}

	location, err := h.service.GetByID(r.Context(), locationID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if location == nil {
		writeNotFound(w, model.ErrCodeLocationNotFound, "delivery location not found")
		return
	}

	writeJSON(w, http.StatusOK, location)
}

// Create handles POST /api/locations requests. Admin only.
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	location, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, location)
}

// Update handles PUT /api/locations/{id} requests. Admin only.
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	locationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "invalid location ID format", h.logger)
		return
	}

	var req model.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	location, err := h.service.Update(r.Context(), locationID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, location)
}
