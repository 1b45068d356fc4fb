package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lingocalm/internal/progress"
)

type historyRepo struct {
	db       *sql.DB
	dialect  string
	progress ProgressRepo
}

func (r *historyRepo) AppendLesson(ctx context.Context, userID string, rec LessonRecord) error {
	words, err := json.Marshal(rec.Words)
	if err != nil {
		return fmt.Errorf("encode lesson words: %w", err)
	}
	completed := rec.CompletedAt
	if completed.IsZero() {
		completed = time.Now()
	}

	query, args := entsql.Dialect(r.dialect).
		Insert(tableHistory).
		Columns("user_id", "lesson_id", "language", "word_count", "words", "streak", "completed_at").
		Values(userID, rec.LessonID, string(rec.Language), len(rec.Words), string(words), rec.Streak, completed.UnixMilli()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append lesson %s: %w", rec.LessonID, err)
	}
	return nil
}

func (r *historyRepo) History(ctx context.Context, userID string, limit int) ([]LessonRecord, error) {
	sel := entsql.Dialect(r.dialect).
		Select("lesson_id", "language", "words", "streak", "completed_at").
		From(entsql.Table(tableHistory)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("completed_at"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lesson history: %w", err)
	}
	defer rows.Close()

	var out []LessonRecord
	for rows.Next() {
		var (
			rec       LessonRecord
			language  string
			words     []byte
			completed int64
		)
		if err := rows.Scan(&rec.LessonID, &language, &words, &rec.Streak, &completed); err != nil {
			return nil, fmt.Errorf("scan lesson history: %w", err)
		}
		if err := json.Unmarshal(words, &rec.Words); err != nil {
			return nil, fmt.Errorf("decode lesson words: %w", err)
		}
		rec.Language = progress.Language(language)
		rec.CompletedAt = time.UnixMilli(completed).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *historyRepo) Stats(ctx context.Context, userID string) (Stats, error) {
	query, args := entsql.Dialect(r.dialect).
		Select("COUNT(*)", "COALESCE(SUM(word_count), 0)", "COALESCE(MAX(completed_at), 0)").
		From(entsql.Table(tableHistory)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var (
		stats Stats
		last  int64
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&stats.TotalLessons, &stats.TotalWords, &last); err != nil {
		return Stats{}, fmt.Errorf("aggregate lesson history: %w", err)
	}
	if last > 0 {
		t := time.UnixMilli(last).UTC()
		stats.LastCompleted = &t
	}

	st, err := r.progress.Load(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	stats.CurrentStreak = st.Streak
	stats.PreferredLanguage = st.Language
	return stats, nil
}
