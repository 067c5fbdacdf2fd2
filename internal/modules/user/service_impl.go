package user

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/intloko-backend/internal/validation"
)

type credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, log: logger.With("service", "user")}
}

func (s *service) RegisterUser(ctx context.Context, email, password string) (*User, error) {
	creds := credentials{Email: strings.ToLower(strings.TrimSpace(email)), Password: password}
	if err := validation.Struct(creds); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Email:        creds.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}
