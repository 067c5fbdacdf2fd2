package catalog

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/intloko-backend/internal/domain"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestPostgres_List_ActiveOnly(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, label, is_active, created_at FROM vendor_categories WHERE is_active = $1 ORDER BY created_at, label")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label", "is_active", "created_at"}).
			AddRow(uuid.NewString(), "Mogodu", true, time.Now()))

	got, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mogodu", got[0].Label)
}

func TestPostgres_Create_DuplicateLabel(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery("INSERT INTO vendor_categories").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(context.Background(), &Category{ID: uuid.New(), Label: "Mogodu", IsActive: true})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}
