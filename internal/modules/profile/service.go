package profile

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/georgemunganga/intloko-backend/internal/domain"
	"github.com/georgemunganga/intloko-backend/internal/session"
	"github.com/georgemunganga/intloko-backend/internal/validation"
)

// Service manages staff profiles.
type Service interface {
	Create(ctx context.Context, id uuid.UUID, in Input) (*Profile, error)
	Get(ctx context.Context, id uuid.UUID) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	Update(ctx context.Context, sess session.Session, id uuid.UUID, in Input) (*Profile, error)
	Delete(ctx context.Context, sess session.Session, id uuid.UUID, confirmed bool) error
}

type service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, log: logger.With("service", "profile")}
}

// Validate normalizes and checks a profile input.
func Validate(in Input) (Input, error) {
	in = in.normalize()
	if err := validation.Struct(in); err != nil {
		return Input{}, err
	}
	return in, nil
}

func (s *service) Create(ctx context.Context, id uuid.UUID, in Input) (*Profile, error) {
	in, err := Validate(in)
	if err != nil {
		return nil, err
	}

	p := &Profile{ID: id}
	p.apply(in)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, writeFailure(err)
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, readFailure(err)
	}
	return p, nil
}

func (s *service) List(ctx context.Context) ([]*Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "list profiles failed", slog.String("error", err.Error()))
		return nil, readFailure(err)
	}
	return profiles, nil
}

func (s *service) Update(ctx context.Context, sess session.Session, id uuid.UUID, in Input) (*Profile, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	in, err := Validate(in)
	if err != nil {
		return nil, err
	}

	p := &Profile{ID: id}
	p.apply(in)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, writeFailure(err)
	}

	s.log.InfoContext(ctx, "profile updated",
		slog.String("profile_id", id.String()),
		slog.String("user_id", sess.UserID.String()),
	)
	return p, nil
}

// Delete removes the profile row only. The login principal is kept.
func (s *service) Delete(ctx context.Context, sess session.Session, id uuid.UUID, confirmed bool) error {
	if !sess.Valid() {
		return domain.ErrUnauthorized
	}
	if !confirmed {
		return domain.ErrConfirmationRequired
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) || ctx.Err() != nil {
			return err
		}
		return &domain.DeleteError{Entity: "profile", Err: err}
	}

	s.log.InfoContext(ctx, "profile deleted",
		slog.String("profile_id", id.String()),
		slog.String("user_id", sess.UserID.String()),
	)
	return nil
}

func writeFailure(err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrAlreadyExists) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &domain.WriteError{Entity: "profile", Err: err}
}

func readFailure(err error) error {
	var de *domain.DecodeError
	if errors.Is(err, domain.ErrNotFound) || errors.As(err, &de) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &domain.ReadError{Entity: "profile", Err: err}
}
