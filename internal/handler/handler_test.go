package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"solesnaps-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_UnknownErrorHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(rec, errors.New("pq: connection refused"), zerolog.Nop())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeInternalError, resp.Error)
	assert.Equal(t, "something went wrong", resp.Message)
	assert.Nil(t, resp.Details)
}

func TestWriteError_DebugLoggerIncludesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	logger := zerolog.New(io.Discard).Level(zerolog.DebugLevel)

	writeError(rec, errors.New("pq: connection refused"), logger)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeInternalError, resp.Error)
	assert.Equal(t, "pq: connection refused", resp.Details["detail"])
}

func TestWriteError_DomainErrorKeepsOwnDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	logger := zerolog.New(io.Discard).Level(zerolog.DebugLevel)

	writeError(rec, model.NewInvalidProductError("abc"), logger)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeInvalidProduct, resp.Error)
	assert.Equal(t, "abc", resp.Details["product_id"])
}
