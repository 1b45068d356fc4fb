package store

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"entgo.io/ent/dialect"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The remote backend runs against a real server when
// LINGOCALM_TEST_POSTGRES_URL is set.
func openRemoteTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("LINGOCALM_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("LINGOCALM_TEST_POSTGRES_URL not set")
	}
	s, err := OpenRemote(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProgressRepo_RoundTripPerBackend(t *testing.T) {
	backends := []struct {
		name string
		open func(t *testing.T) *Store
	}{
		{"local", openTestStore},
		{"remote", openRemoteTestStore},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			repo := s.ProgressRepo()
			ctx := context.Background()
			user := uuid.NewString()

			fresh, err := repo.Load(ctx, user)
			require.NoError(t, err)
			assert.Nil(t, fresh.Language)

			want := sampleState()
			require.NoError(t, repo.Save(ctx, user, want))
			want.Streak = 7
			require.NoError(t, repo.Save(ctx, user, want))

			got, err := repo.Load(ctx, user)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestUpsertProgress_Dialects(t *testing.T) {
	doc := []byte(`{"streak":1}`)
	at := time.Date(2026, 1, 29, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		dialect     string
		placeholder string
		absent      string
	}{
		{dialect.SQLite, "?", "$1"},
		{dialect.Postgres, "$3", "?"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			query, args := upsertProgress(tt.dialect, "user-1", doc, at)
			assert.Contains(t, query, "ON CONFLICT")
			assert.Contains(t, query, "DO UPDATE SET")
			assert.Contains(t, query, tt.placeholder)
			assert.NotContains(t, query, tt.absent)
			require.Len(t, args, 3)
			assert.Equal(t, "user-1", args[0])
			assert.Equal(t, string(doc), args[1])
			assert.Equal(t, at.UnixMilli(), args[2])
		})
	}
}

func TestSchemaStatements_Dialects(t *testing.T) {
	local := strings.Join(schemaStatements(dialect.SQLite), "\n")
	assert.Contains(t, local, "AUTOINCREMENT")
	assert.NotContains(t, local, "JSONB")
	assert.NotContains(t, local, "{{")

	remote := strings.Join(schemaStatements(dialect.Postgres), "\n")
	assert.Contains(t, remote, "doc JSONB NOT NULL")
	assert.Contains(t, remote, "BIGSERIAL PRIMARY KEY")
	assert.NotContains(t, remote, "AUTOINCREMENT")
	assert.NotContains(t, remote, "{{")
}

func TestRemoteStore_ProgressDocument(t *testing.T) {
	s := openRemoteTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()
	user := uuid.NewString()

	want := sampleState()
	require.NoError(t, repo.Save(ctx, user, want))
	got, err := repo.Load(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	var lang string
	require.NoError(t, s.DB().QueryRow("SELECT doc->>'language' FROM progress WHERE user_id = $1", user).Scan(&lang))
	assert.Equal(t, "French", lang)
}

func TestRemoteStore_UsersAndEvents(t *testing.T) {
	s := openRemoteTestStore(t)
	ctx := context.Background()
	id := uuid.NewString()

	require.NoError(t, s.UserRepo().CreateUser(ctx, User{ID: id, Email: id + "@example.com", PasswordHash: "h"}))
	err := s.UserRepo().CreateUser(ctx, User{ID: uuid.NewString(), Email: id + "@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Model: "m", Purpose: id, Success: true}))
	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{Purpose: id})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
