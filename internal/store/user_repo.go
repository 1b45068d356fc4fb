package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type userRepo struct {
	db      *sql.DB
	dialect string
}

func (r *userRepo) CreateUser(ctx context.Context, u User) error {
	created := u.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	query, args := entsql.Dialect(r.dialect).
		Insert(tableUsers).
		Columns("id", "email", "password_hash", "created_at").
		Values(u.ID, normalizeEmail(u.Email), u.PasswordHash, created.UnixMilli()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", u.Email, ErrDuplicate)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepo) UserByEmail(ctx context.Context, email string) (*User, error) {
	return r.one(ctx, entsql.EQ("email", normalizeEmail(email)))
}

func (r *userRepo) UserByID(ctx context.Context, id string) (*User, error) {
	return r.one(ctx, entsql.EQ("id", id))
}

func (r *userRepo) one(ctx context.Context, where *entsql.Predicate) (*User, error) {
	query, args := entsql.Dialect(r.dialect).
		Select("id", "email", "password_hash", "created_at").
		From(entsql.Table(tableUsers)).
		Where(where).
		Query()

	var (
		u       User
		created int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Email, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.CreatedAt = time.UnixMilli(created).UTC()
	return &u, nil
}

// normalizeEmail makes email lookups case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
