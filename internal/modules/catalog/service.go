package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/intloko-backend/internal/domain"
	"github.com/georgemunganga/intloko-backend/internal/validation"
)

// Service defines vendor category business logic.
type Service interface {
	AddCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]*Category, error)
	SetCategoryActive(ctx context.Context, id uuid.UUID, active bool) (*Category, error)
	SeedDefaults(ctx context.Context) (int, error)
}

// CreateCategoryRequest holds the data for adding a category.
type CreateCategoryRequest struct {
	Label string `json:"label" validate:"required,max=64"`
}

type service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, log: logger.With("service", "catalog")}
}

func (s *service) AddCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	req.Label = strings.TrimSpace(req.Label)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	c := &Category{
		ID:       uuid.New(),
		Label:    req.Label,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "category added", slog.String("label", c.Label))
	return c, nil
}

func (s *service) ListCategories(ctx context.Context, activeOnly bool) ([]*Category, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) SetCategoryActive(ctx context.Context, id uuid.UUID, active bool) (*Category, error) {
	return s.repo.SetActive(ctx, id, active)
}

// SeedDefaults adds every default label that is not stored yet and returns
// how many were added. Deactivated defaults stay deactivated.
func (s *service) SeedDefaults(ctx context.Context) (int, error) {
	existing, err := s.repo.List(ctx, false)
	if err != nil {
		return 0, err
	}
	have := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		have[strings.ToLower(c.Label)] = struct{}{}
	}

	added := 0
	for _, label := range DefaultLabels {
		if _, ok := have[strings.ToLower(label)]; ok {
			continue
		}
		c := &Category{ID: uuid.New(), Label: label, IsActive: true}
		if err := s.repo.Create(ctx, c); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				continue
			}
			return added, err
		}
		added++
	}

	if added > 0 {
		s.log.InfoContext(ctx, "default categories seeded", slog.Int("added", added))
	}
	return added, nil
}
