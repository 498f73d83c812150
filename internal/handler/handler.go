package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"solesnaps-api/internal/middleware"
	"solesnaps-api/internal/model"
	"solesnaps-api/internal/service"

	"github.com/rs/zerolog"
)

// actorFrom extracts the authenticated actor placed on the context by the
// authentication middleware.
func actorFrom(r *http.Request) (service.Actor, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: claims.UserID, Role: claims.Role}, true
}

// statusForCode maps domain error codes to HTTP status codes. Validation and
// business-rule failures are 400s, missing resources 404s, duplicates 409s.
var statusForCode = map[string]int{
	model.ErrCodeInvalidJSON:        http.StatusBadRequest,
	model.ErrCodeValidation:         http.StatusBadRequest,
	model.ErrCodeInvalidQuantity:    http.StatusBadRequest,
	model.ErrCodeInvalidProduct:     http.StatusBadRequest,
	model.ErrCodeInsufficientStock:  http.StatusBadRequest,
	model.ErrCodeInvalidLocation:    http.StatusBadRequest,
	model.ErrCodeInvalidStatus:      http.StatusBadRequest,
	model.ErrCodeInvalidTransition:  http.StatusBadRequest,
	model.ErrCodeCannotCancel:       http.StatusBadRequest,
	model.ErrCodeInvalidCoupon:      http.StatusBadRequest,
	model.ErrCodeProductNotFound:    http.StatusNotFound,
	model.ErrCodeLocationNotFound:   http.StatusNotFound,
	model.ErrCodeOrderNotFound:      http.StatusNotFound,
	model.ErrCodeCartItemNotFound:   http.StatusNotFound,
	model.ErrCodeCouponNotFound:     http.StatusNotFound,
	model.ErrCodeUserNotFound:       http.StatusNotFound,
	model.ErrCodeEmailTaken:         http.StatusConflict,
	model.ErrCodeDuplicateCoupon:    http.StatusConflict,
	model.ErrCodeInvalidCredentials: http.StatusUnauthorized,
	model.ErrCodeUnauthorised:       http.StatusUnauthorized,
	model.ErrCodeForbidden:          http.StatusForbidden,
}

// writeJSON writes a JSON response with the given status code. An encode
// failure cannot be reported to the client since the status line is already
// written.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps an error to the standard error body. Domain errors carry
// their own code, message and details; anything else is a 500 with a generic
// message so infrastructure detail never leaks to clients. When the logger
// runs at debug level (server debug mode) the 500 body carries the underlying
// error string for diagnosis.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusForCode[domainErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		logger.Warn().
			Str("code", domainErr.Code).
			Int("status", status).
			Msg(domainErr.Message)
		writeJSON(w, status, model.ErrorResponse{
			Error:   domainErr.Code,
			Message: domainErr.Message,
			Details: domainErr.Details,
		})
		return
	}

	logger.Error().Err(err).Msg("internal error")
	resp := model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "something went wrong",
	}
	if logger.GetLevel() <= zerolog.DebugLevel {
		resp.Details = map[string]interface{}{"detail": err.Error()}
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

// writeBadRequest writes a 400 with the invalid-JSON code.
func writeBadRequest(w http.ResponseWriter, message string, logger zerolog.Logger) {
	logger.Warn().Str("error", message).Msg("bad request")
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
		Error:   model.ErrCodeInvalidJSON,
		Message: message,
	})
}

// writeNotFound writes a 404 with the given error code.
func writeNotFound(w http.ResponseWriter, code, message string) {
	writeJSON(w, http.StatusNotFound, model.ErrorResponse{
		Error:   code,
		Message: message,
	})
}
