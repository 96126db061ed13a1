package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLLMEvents(t *testing.T, repo EventRepo) {
	t.Helper()
	ctx := context.Background()
	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "lesson-plan", InputTokens: 100, OutputTokens: 400, LatencyMs: 1000, Success: true, RequestBody: "[user]\nצור מערך שיעור", ResponseBody: `{"lessonTitle":"x"}`},
		{Provider: "gemini", Model: "gemini-2.5-flash-image", Purpose: "image", LatencyMs: 3000, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash-image", Purpose: "image", LatencyMs: 1000, Success: false, ErrorMessage: "quota"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "suggest", InputTokens: 20, OutputTokens: 30, LatencyMs: 200, Success: true},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}
}

func TestQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedLLMEvents(t, repo)
	ctx := context.Background()

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "suggest", all[0].Purpose, "newest first")
	assert.Greater(t, all[0].Sequence, all[1].Sequence)

	images, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "image", Limit: 1})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.False(t, images[0].Success)
	assert.Equal(t, "quota", images[0].ErrorMessage)
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedLLMEvents(t, repo)
	ctx := context.Background()

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "lesson-plan"})
	require.NoError(t, err)
	require.Len(t, all, 1)

	e, err := repo.GetLLMEvent(ctx, all[0].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Contains(t, e.RequestBody, "צור מערך שיעור")
	assert.Equal(t, `{"lessonTitle":"x"}`, e.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedLLMEvents(t, repo)
	ctx := context.Background()

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 3)
	assert.Equal(t, PurposeUsage{Purpose: "image", Calls: 2, Failures: 1, AvgLatencyMs: 2000}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, ModelUsage{Model: "gemini-2.5-flash", Calls: 2, InputTokens: 120, OutputTokens: 430}, byModel[0])
}
