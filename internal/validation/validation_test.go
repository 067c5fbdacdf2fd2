package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/intloko-backend/internal/domain"
)

type sample struct {
	Title    string   `json:"title"    validate:"required"`
	Category []string `json:"category" validate:"min=1,dive,required"`
	Rating   float64  `json:"rating"   validate:"gte=0,lte=5"`
	Email    string   `json:"email"    validate:"omitempty,email"`
}

func TestStruct_Valid(t *testing.T) {
	t.Parallel()

	err := Struct(sample{Title: "Mama's Pot", Category: []string{"Mogodu"}, Rating: 4.5})
	assert.NoError(t, err)
}

func TestStruct_FieldErrors(t *testing.T) {
	t.Parallel()

	err := Struct(sample{Rating: 7, Email: "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))

	got := map[string]string{}
	for _, fe := range ve.Errors {
		got[fe.Field] = fe.Message
	}
	assert.Equal(t, "is required", got["title"])
	assert.Equal(t, "select at least 1", got["category"])
	assert.Equal(t, "must be at most 5", got["rating"])
	assert.Equal(t, "must be a valid email address", got["email"])
}

func TestStruct_DiveUsesIndexedPath(t *testing.T) {
	t.Parallel()

	err := Struct(sample{Title: "x", Category: []string{"Mogodu", ""}, Rating: 1})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, "category[1]", ve.Errors[0].Field)
}
