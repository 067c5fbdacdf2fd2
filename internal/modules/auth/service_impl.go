package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/intloko-backend/internal/config"
	"github.com/georgemunganga/intloko-backend/internal/domain"
	"github.com/georgemunganga/intloko-backend/internal/modules/profile"
	"github.com/georgemunganga/intloko-backend/internal/modules/user"
	"github.com/georgemunganga/intloko-backend/internal/session"
)

type claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

type service struct {
	users    user.Service
	userRepo user.Repository
	profiles profile.Service
	secret   []byte
	issuer   string
	ttl      time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new auth service.
func NewService(users user.Service, userRepo user.Repository, profiles profile.Service, cfg config.AuthConfig, logger *slog.Logger) Service {
	return &service{
		users:    users,
		userRepo: userRepo,
		profiles: profiles,
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		ttl:      cfg.TokenTTL,
		now:      time.Now,
		log:      logger.With("service", "auth"),
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*Token, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.log.WarnContext(ctx, "login rejected", slog.String("user_id", u.ID.String()))
		return nil, domain.ErrUnauthorized
	}

	return s.issue(u)
}

// Register creates the login principal and its profile. The profile input is
// checked before the principal is written.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*Token, error) {
	in, err := profile.Validate(req.Input)
	if err != nil {
		return nil, err
	}

	u, err := s.users.RegisterUser(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if _, err := s.profiles.Create(ctx, u.ID, in); err != nil {
		s.log.ErrorContext(ctx, "create profile for new user failed",
			slog.String("user_id", u.ID.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return s.issue(u)
}

func (s *service) issue(u *user.User) (*Token, error) {
	expirationTime := s.now().Add(s.ttl)
	c := &claims{
		Email: u.Email,
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  s.now().Unix(),
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Token{AccessToken: tokenString, TokenType: "Bearer", ExpiresAt: c.ExpiresAt}, nil
}

func (s *service) ValidateToken(tokenString string) (session.Session, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return session.Session{}, domain.ErrUnauthorized
	}
	if s.issuer != "" && !c.VerifyIssuer(s.issuer, true) {
		return session.Session{}, domain.ErrUnauthorized
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return session.Session{}, domain.ErrUnauthorized
	}
	return session.Session{UserID: id, Email: c.Email}, nil
}
