package location

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/intloko-backend/internal/domain"
	"github.com/georgemunganga/intloko-backend/internal/httpx"
	"github.com/georgemunganga/intloko-backend/internal/session"
)

// Handler exposes the address autocomplete endpoints used by the vendor form.
type Handler struct {
	resolver *Resolver
	log      *slog.Logger
}

func NewHandler(resolver *Resolver, logger *slog.Logger) *Handler {
	return &Handler{resolver: resolver, log: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/places", func(r chi.Router) {
		r.Get("/suggest", h.suggest)
		r.Get("/reverse", h.reverse)
		r.Get("/{placeId}", h.details)
	})
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httpx.Error(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	q := r.URL.Query()
	res, err := h.resolver.Suggest(r.Context(), sess, q.Get("session"), q.Get("q"))
	if err != nil {
		// Client went away; nobody is listening.
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}

func (h *Handler) details(w http.ResponseWriter, r *http.Request) {
	res, err := h.resolver.Select(r.Context(), chi.URLParam(r, "placeId"))
	if err != nil {
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}

func (h *Handler) reverse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pos := CurrentPosition{Denied: q.Get("denied") == "true"}

	var errs []domain.FieldError
	if v := q.Get("lat"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "lat", Message: "must be a number"})
		} else {
			pos.Lat = &lat
		}
	}
	if v := q.Get("lng"); v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "lng", Message: "must be a number"})
		} else {
			pos.Lng = &lng
		}
	}
	if len(errs) > 0 {
		httpx.Error(w, r, h.log, &domain.ValidationError{Errors: errs})
		return
	}

	res, err := h.resolver.Current(r.Context(), pos)
	if err != nil {
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}
