package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lingocalm/internal/progress"
)

// progressRepo stores each user's state as one JSON document.
type progressRepo struct {
	db      *sql.DB
	dialect string
}

func (r *progressRepo) Load(ctx context.Context, userID string) (progress.State, error) {
	query, args := entsql.Dialect(r.dialect).
		Select("doc").
		From(entsql.Table(tableProgress)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var doc []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		st := progress.DefaultState()
		if err := r.Save(ctx, userID, st); err != nil {
			return st, err
		}
		return st, nil
	}
	if err != nil {
		return progress.DefaultState(), &PersistenceError{Op: "load", UserID: userID, Err: err}
	}

	var st progress.State
	if err := json.Unmarshal(doc, &st); err != nil {
		return progress.DefaultState(), &PersistenceError{
			Op:     "load",
			UserID: userID,
			Err:    fmt.Errorf("decode progress document: %w", err),
		}
	}
	return st, nil
}

func (r *progressRepo) Save(ctx context.Context, userID string, s progress.State) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return &PersistenceError{Op: "save", UserID: userID, Err: fmt.Errorf("encode progress document: %w", err)}
	}

	query, args := upsertProgress(r.dialect, userID, doc, time.Now())
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return &PersistenceError{Op: "save", UserID: userID, Err: err}
	}
	return nil
}

// upsertProgress builds the insert-or-replace for one progress document.
func upsertProgress(dialect, userID string, doc []byte, at time.Time) (string, []any) {
	return entsql.Dialect(dialect).
		Insert(tableProgress).
		Columns("user_id", "doc", "updated_at").
		Values(userID, string(doc), at.UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
}
