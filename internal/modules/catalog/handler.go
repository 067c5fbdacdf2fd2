package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/georgemunganga/intloko-backend/internal/domain"
	"github.com/georgemunganga/intloko-backend/internal/httpx"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service Service
	log     *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, log: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/categories", h.listCategories)
		r.Post("/categories", h.addCategory)
		r.Put("/categories/{id}", h.setCategoryActive)
	})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") != "false"
	categories, err := h.service.ListCategories(r.Context(), activeOnly)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, categories)
}

func (h *Handler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	c, err := h.service.AddCategory(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, c)
}

func (h *Handler) setCategoryActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, r, h.log, domain.NewValidationError("id", "must be a valid UUID"))
		return
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	if req.IsActive == nil {
		httpx.Error(w, r, h.log, domain.NewValidationError("is_active", "is required"))
		return
	}

	c, err := h.service.SetCategoryActive(r.Context(), id, *req.IsActive)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}
