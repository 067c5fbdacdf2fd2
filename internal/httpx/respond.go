// Package httpx holds the JSON response helpers and middleware shared by all
// module handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/georgemunganga/intloko-backend/internal/domain"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// Respond writes body as JSON with the given status.
func Respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}

// Error maps err to a status code and writes it. Remote stage failures keep
// the remote message verbatim. Unexpected errors are logged and hidden.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	Respond(w, status, body)
}

func classify(err error) (int, ErrorBody) {
	var (
		ve  *domain.ValidationError
		ue  *domain.UploadError
		we  *domain.WriteError
		de  *domain.DeleteError
		re  *domain.ReadError
		dec *domain.DecodeError
	)

	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, ErrorBody{Error: "validation failed", Fields: ve.Errors}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, ErrorBody{Error: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorBody{Error: "unauthorized"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Error: "not found"}
	case errors.Is(err, domain.ErrConfirmationRequired):
		return http.StatusConflict, ErrorBody{Error: "confirmation required: repeat the request with confirm=true"}
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrorBody{Error: err.Error()}
	case errors.As(err, &ue):
		return http.StatusBadGateway, ErrorBody{Error: ue.Error()}
	case errors.As(err, &dec):
		return http.StatusInternalServerError, ErrorBody{Error: "stored record is malformed"}
	case errors.As(err, &we):
		return http.StatusBadGateway, ErrorBody{Error: we.Error()}
	case errors.As(err, &de):
		return http.StatusBadGateway, ErrorBody{Error: de.Error()}
	case errors.As(err, &re):
		return http.StatusBadGateway, ErrorBody{Error: re.Error()}
	default:
		return http.StatusInternalServerError, ErrorBody{Error: "internal server error"}
	}
}
