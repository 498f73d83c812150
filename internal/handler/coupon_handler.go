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

// CouponHandler handles coupon HTTP requests.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// Validate handles POST /api/coupons/validate requests.
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req model.CouponValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Validate(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// List handles GET /api/coupons requests. Admin only.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	coupons, pagination, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"coupons":    coupons,
		"pagination": pagination,
	})
}

// Create handles POST /api/coupons requests. Admin only.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	coupon, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, coupon)
}

// Update handles PUT /api/coupons/{id} requests. Admin only.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	couponID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "invalid coupon ID format", h.logger)
		return
	}

	var req model.CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	coupon, err := h.service.Update(r.Context(), couponID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupon)
}

// Import handles POST /api/coupons/import requests. Admin only.
func (h *CouponHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req model.CouponImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Import(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
