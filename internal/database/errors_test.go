package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/georgemunganga/intloko-backend/internal/domain"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, domain.ErrNotFound},
		{"unique", &pq.Error{Code: "23505"}, domain.ErrAlreadyExists},
		{"foreign key", &pq.Error{Code: "23503"}, domain.ErrNotFound},
		{"check", &pq.Error{Code: "23514", Message: "vendors_rating_check"}, domain.ErrValidation},
		{"deadline", context.DeadlineExceeded, context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.err, "vendor", "v1")
			assert.ErrorIs(t, got, tt.want)
			assert.Contains(t, got.Error(), "vendor v1")
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, MapError(nil, "vendor", "v1"))
}

func TestMapError_Unknown(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	got := MapError(cause, "profile", 7)

	assert.ErrorIs(t, got, cause)
	assert.NotErrorIs(t, got, domain.ErrNotFound)
}
