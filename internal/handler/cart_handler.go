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

// CartHandler handles cart-related HTTP requests. All routes require an
// authenticated user; the cart is always the caller's own.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeError(w, model.ErrForbidden, h.logger)
		return
	}

	cart, err := h.service.Get(r.Context(), actor.UserID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Add handles POST /api/cart/items requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeError(w, model.ErrForbidden, h.logger)
		return
	}

	var req model.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	cart, err := h.service.Add(r.Context(), actor.UserID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, cart)
}

// UpdateQuantity handles PUT /api/cart/items/{id} requests.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeError(w, model.ErrForbidden, h.logger)
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "invalid cart item ID format", h.logger)
		return
	}

	var req model.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), actor.UserID, itemID, req.Quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Remove handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeError(w, model.ErrForbidden, h.logger)
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "invalid cart item ID format", h.logger)
		return
	}

	if err := h.service.Remove(r.Context(), actor.UserID, itemID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeError(w, model.ErrForbidden, h.logger)
		return
	}

	if err := h.service.Clear(r.Context(), actor.UserID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
