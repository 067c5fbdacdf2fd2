// Package session defines the acting staff identity. Middleware stores it on
// the request context once; handlers read it there and hand it to services as
// an explicit argument.
package session

import (
	"context"

	"github.com/google/uuid"
)

// Session is an established, authenticated staff session.
type Session struct {
	UserID uuid.UUID
	Email  string
}

// Valid reports whether the session carries a principal.
func (s Session) Valid() bool { return s.UserID != uuid.Nil }

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored on ctx, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok || !s.Valid() {
		return Session{}, false
	}
	return s, true
}
