package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingocalm/internal/progress"
)

func TestHistoryRepo_AppendAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	day1 := time.Date(2026, 1, 29, 9, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	require.NoError(t, repo.AppendLesson(ctx, "user-1", LessonRecord{
		LessonID: "2026-01-29", Language: progress.Spanish,
		Words: []string{"Hola", "Gracias"}, Streak: 1, CompletedAt: day1,
	}))
	require.NoError(t, repo.AppendLesson(ctx, "user-1", LessonRecord{
		LessonID: "2026-01-30", Language: progress.Spanish,
		Words: []string{"Agua", "Casa", "Sol"}, Streak: 2, CompletedAt: day2,
	}))
	require.NoError(t, repo.AppendLesson(ctx, "user-2", LessonRecord{
		LessonID: "2026-01-30", Language: progress.German, Words: []string{"Hallo"}, CompletedAt: day2,
	}))

	recs, err := repo.History(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "2026-01-30", recs[0].LessonID, "newest first")
	assert.Equal(t, []string{"Agua", "Casa", "Sol"}, recs[0].Words)
	assert.Equal(t, day2, recs[0].CompletedAt)
	assert.Equal(t, progress.Spanish, recs[1].Language)

	limited, err := repo.History(ctx, "user-1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestHistoryRepo_SameDayLessonsAreKept(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	morning := time.Date(2026, 1, 29, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AppendLesson(ctx, "user-1", LessonRecord{
		LessonID: "2026-01-29", Language: progress.Italian, Words: []string{"Ciao", "Grazie"}, Streak: 1, CompletedAt: morning,
	}))
	require.NoError(t, repo.AppendLesson(ctx, "user-1", LessonRecord{
		LessonID: "2026-01-29", Language: progress.German, Words: []string{"Hallo", "Danke", "Ja"}, Streak: 2, CompletedAt: morning.Add(time.Hour),
	}))

	recs, err := repo.History(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, progress.German, recs[0].Language)
	assert.Equal(t, progress.Italian, recs[1].Language)

	stats, err := repo.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalLessons)
	assert.Equal(t, 5, stats.TotalWords)
}

func TestHistoryRepo_Stats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.HistoryRepo()

	empty, err := repo.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalLessons)
	assert.Nil(t, empty.PreferredLanguage)
	assert.Nil(t, empty.LastCompleted)

	require.NoError(t, s.ProgressRepo().Save(ctx, "user-1", sampleState()))
	done := time.Date(2026, 1, 29, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AppendLesson(ctx, "user-1", LessonRecord{
		LessonID: "2026-01-28", Language: progress.French, Words: []string{"a", "b", "c", "d", "e"}, CompletedAt: done.Add(-24 * time.Hour),
	}))
	require.NoError(t, repo.AppendLesson(ctx, "user-1", LessonRecord{
		LessonID: "2026-01-29", Language: progress.French, Words: []string{"f", "g", "h", "i", "j"}, CompletedAt: done,
	}))

	stats, err := repo.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalLessons)
	assert.Equal(t, 10, stats.TotalWords)
	assert.Equal(t, 3, stats.CurrentStreak)
	require.NotNil(t, stats.PreferredLanguage)
	assert.Equal(t, progress.French, *stats.PreferredLanguage)
	require.NotNil(t, stats.LastCompleted)
	assert.Equal(t, done, *stats.LastCompleted)
}
