package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"solesnaps-api/internal/model"
	"solesnaps-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeError(w, model.ErrForbidden, h.logger)
		return
	}

	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	order, err := h.service.Checkout(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeError(w, model.ErrForbidden, h.logger)
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), actor, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if order == nil {
		writeNotFound(w, model.ErrCodeOrderNotFound, "order not found")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// List handles GET /api/orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeError(w, model.ErrForbidden, h.logger)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	status := r.URL.Query().Get("status")

	orders, err := h.service.List(r.Context(), actor, status, page, limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeError(w, model.ErrForbidden, h.logger)
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "invalid order ID format", h.logger)
		return
	}

	var req model.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), actor, orderID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if order == nil {
		writeNotFound(w, model.ErrCodeOrderNotFound, "order not found")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Cancel handles POST /api/orders/{id}/cancel requests.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeError(w, model.ErrForbidden, h.logger)
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.Cancel(r.Context(), actor, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if order == nil {
		writeNotFound(w, model.ErrCodeOrderNotFound, "order not found")
		return
	}

	writeJSON(w, http.StatusOK, order)
}
