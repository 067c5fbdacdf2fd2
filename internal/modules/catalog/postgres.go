package catalog

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/georgemunganga/intloko-backend/internal/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Category) error {
	query, args, err := database.Builder.
		Insert("vendor_categories").
		Columns("id", "label", "is_active").
		Values(c.ID, c.Label, c.IsActive).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert category: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&c.CreatedAt); err != nil {
		return database.MapError(err, "category", c.Label)
	}
	return nil
}

func scanCategory(scan func(...any) error) (*Category, error) {
	c := &Category{}
	if err := scan(&c.ID, &c.Label, &c.IsActive, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) List(ctx context.Context, activeOnly bool) ([]*Category, error) {
	q := database.Builder.
		Select("id", "label", "is_active", "created_at").
		From("vendor_categories").
		OrderBy("created_at", "label")
	if activeOnly {
		q = q.Where(sq.Eq{"is_active": true})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.MapError(err, "categories", "list")
	}
	defer rows.Close()

	out := []*Category{}
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, database.MapError(err, "categories", "list")
		}
		out = append(out, c)
	}
	return out, database.MapError(rows.Err(), "categories", "list")
}

func (r *postgresRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) (*Category, error) {
	query, args, err := database.Builder.
		Update("vendor_categories").
		Set("is_active", active).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, label, is_active, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update category: %w", err)
	}

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		return nil, database.MapError(err, "category", id)
	}
	return c, nil
}
