package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepo_AppendQueryGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "lesson:French", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, RequestBody: "[user]\nfive words", ResponseBody: `{"words":[]}`},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "lesson", LatencyMs: 100, ErrorMessage: "rate limited"},
		{Provider: "mock", Model: "mock", Purpose: "probe", InputTokens: 1, OutputTokens: 1, LatencyMs: 1, Success: true},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "probe", all[0].Purpose, "newest first")
	assert.False(t, all[0].Timestamp.IsZero())

	lessons, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "lesson", Limit: 1})
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "rate limited", lessons[0].ErrorMessage)

	lessons, err = repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "lesson"})
	require.NoError(t, err)
	assert.Len(t, lessons, 2, "language variants match their purpose")

	french, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "lesson:French"})
	require.NoError(t, err)
	assert.Len(t, french, 1)

	older, err := repo.QueryLLMEvents(ctx, QueryOpts{Before: all[0].ID})
	require.NoError(t, err)
	assert.Len(t, older, 2)

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	require.NoError(t, err)
	assert.Equal(t, `{"words":[]}`, got.ResponseBody)
	assert.True(t, got.Success)

	_, err = repo.GetLLMEvent(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepo_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "gemini-2.5-flash", Purpose: "lesson", InputTokens: 100, OutputTokens: 300, LatencyMs: 800, Success: true},
		{Model: "gemini-2.5-flash", Purpose: "lesson", InputTokens: 100, OutputTokens: 100, LatencyMs: 400, Success: false},
		{Model: "gpt-4o-mini", Purpose: "probe", InputTokens: 5, OutputTokens: 5, LatencyMs: 10, Success: true},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsage{
		Key: "lesson", Requests: 2, Failures: 1, InputTokens: 200, OutputTokens: 400, AvgLatencyMs: 600,
	}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "gpt-4o-mini", byModel[1].Key)
	assert.Equal(t, 1, byModel[1].Requests)
}
