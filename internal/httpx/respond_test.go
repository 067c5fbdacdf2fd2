package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/intloko-backend/internal/domain"
	"github.com/georgemunganga/intloko-backend/internal/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", domain.NewValidationError("title", "is required"), http.StatusUnprocessableEntity, "validation failed"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"not found", fmt.Errorf("vendor v1: %w", domain.ErrNotFound), http.StatusNotFound, "not found"},
		{"confirm", domain.ErrConfirmationRequired, http.StatusConflict, "confirmation required"},
		{"upload verbatim", &domain.UploadError{Slot: "food", Err: errors.New("Payload too large")}, http.StatusBadGateway, "Payload too large"},
		{"write verbatim", &domain.WriteError{Entity: "vendor", Err: errors.New("permission denied for table vendors")}, http.StatusBadGateway, "permission denied for table vendors"},
		{"check violation", &domain.WriteError{Entity: "vendor", Err: fmt.Errorf("vendor Mama's Pot: vendors_rating_check: %w", domain.ErrValidation)}, http.StatusUnprocessableEntity, "vendors_rating_check"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors", nil)
			Error(rec, req, discardLogger(), tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var body ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Contains(t, body.Error, tt.message)
		})
	}
}

func TestError_ValidationFields(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vendors", nil)
	Error(rec, req, discardLogger(), domain.NewValidationErrors([]domain.FieldError{
		{Field: "title", Message: "is required"},
		{Field: "rating", Message: "must be at most 5"},
	}))

	var body ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Fields, 2)
	assert.Equal(t, "rating", body.Fields[1].Field)
}

func TestDecodeJSON_UnknownField(t *testing.T) {
	t.Parallel()

	var v struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))

	err := DecodeJSON(req, &v)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAccessLog_RecordsStatusAndUser(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	userID := uuid.New()

	h := middleware.RequestID(AccessLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RecordSession(r, session.Session{UserID: userID})
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/vendors", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http.request", entry["msg"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.Equal(t, userID.String(), entry["user_id"])
	assert.NotEmpty(t, entry["request_id"])
}
