package profile

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/georgemunganga/intloko-backend/internal/database"
	"github.com/georgemunganga/intloko-backend/internal/domain"
)

const table = "profiles"

var columns = []string{"id", "first_name", "last_name", "full_name", "username", "avatar_url", "updated_at"}

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL profile repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, p *Profile) error {
	query, args, err := database.Builder.
		Insert(table).
		Columns("id", "first_name", "last_name", "full_name", "username", "avatar_url").
		Values(p.ID, p.FirstName, p.LastName, p.FullName, p.Username, p.AvatarURL).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert profile: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.UpdatedAt); err != nil {
		return database.MapError(err, "profile", p.ID)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	query, args, err := database.Builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select profile: %w", err)
	}

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, database.MapError(err, "profile", id)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*Profile, error) {
	query, args, err := database.Builder.
		Select(columns...).
		From(table).
		OrderBy("updated_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list profiles: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.MapError(err, "profiles", "list")
	}
	defer rows.Close()

	profiles := []*Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, database.MapError(err, "profiles", "list")
	}
	return profiles, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *Profile) error {
	query, args, err := database.Builder.
		Update(table).
		Set("first_name", p.FirstName).
		Set("last_name", p.LastName).
		Set("full_name", p.FullName).
		Set("username", p.Username).
		Set("avatar_url", p.AvatarURL).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": p.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update profile: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.UpdatedAt); err != nil {
		return database.MapError(err, "profile", p.ID)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := database.Builder.
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete profile: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return database.MapError(err, "profile", id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return database.MapError(sql.ErrNoRows, "profile", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(s scanner) (*Profile, error) {
	var (
		p                           Profile
		first, last, full, username sql.NullString
		avatar                      sql.NullString
	)
	if err := s.Scan(&p.ID, &first, &last, &full, &username, &avatar, &p.UpdatedAt); err != nil {
		return nil, err
	}

	required := []struct {
		column string
		value  sql.NullString
	}{{"first_name", first}, {"last_name", last}, {"username", username}}
	for _, c := range required {
		if !c.value.Valid {
			return nil, &domain.DecodeError{Entity: "profile", Column: c.column, Err: fmt.Errorf("is null")}
		}
	}

	p.FirstName = first.String
	p.LastName = last.String
	p.FullName = full.String
	p.Username = username.String
	if avatar.Valid {
		a := avatar.String
		p.AvatarURL = &a
	}
	return &p, nil
}
