// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChloeZhou1997/booktrack/internal/storage"
)

func TestTrackInteractionAggregates(t *testing.T) {
	a := NewAnalytics(storage.NewMemory())

	a.TrackInteraction("memory-widget", "chapter-1", "opened", nil)
	a.TrackInteraction("memory-widget", "chapter-1", ActionCompleted, nil)
	a.TrackInteraction("memory-widget", "chapter-1", "opened", map[string]any{"step": 2})

	usage := a.Usage("chapter-1", "memory-widget")
	assert.Equal(t, 3, usage.Interactions)
	assert.Equal(t, 1, usage.Completions)
	assert.False(t, usage.FirstUsed.IsZero())
	assert.Len(t, a.Events(), 3)
}

func TestCompletionsNeverExceedInteractions(t *testing.T) {
	a := NewAnalytics(storage.NewMemory())
	for i := 0; i < 10; i++ {
		a.TrackInteraction("quiz-widget", "chapter-2", ActionCompleted, nil)
	}
	usage := a.Usage("chapter-2", "quiz-widget")
	assert.LessOrEqual(t, usage.Completions, usage.Interactions)

	summary := a.Summary()
	require.Len(t, summary.ComponentStats, 1)
	assert.InDelta(t, 100, summary.ComponentStats[0].CompletionRate, 1e-9)
}

func TestTrackComponentTime(t *testing.T) {
	a := NewAnalytics(storage.NewMemory())

	a.TrackComponentTime("diagram", "chapter-3", 45)
	a.TrackComponentTime("diagram", "chapter-3", 15)
	a.TrackComponentTime("diagram", "chapter-3", 0)

	usage := a.Usage("chapter-3", "diagram")
	assert.Equal(t, 60, usage.TimeSpentSeconds)
	assert.Equal(t, 0, usage.Interactions)
}

func TestDifficultyBounds(t *testing.T) {
	tests := []struct {
		name    string
		minutes float64
		score   float64
	}{
		{"zero both", 0, 0},
		{"perfect fast", 1, 100},
		{"slow and failing", 500, 0},
		{"slow and perfect", 500, 100},
		{"typical", 12, 65},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAnalytics(storage.NewMemory())
			a.TrackConceptDifficulty("chapter-1", tc.minutes, tc.score)
			got := a.Difficulty("chapter-1").DifficultyScore
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestDifficultyFormula(t *testing.T) {
	a := NewAnalytics(storage.NewMemory())

	// 15 minutes, 70%: 100 * (0.4*0.5 + 0.6*0.3) = 38.
	a.TrackConceptDifficulty("chapter-1", 15, 70)
	assert.InDelta(t, 38, a.Difficulty("chapter-1").DifficultyScore, 1e-9)
}

func TestDifficultyRunningMean(t *testing.T) {
	a := NewAnalytics(storage.NewMemory())

	a.TrackConceptDifficulty("chapter-1", 5, 40)
	a.TrackConceptDifficulty("chapter-1", 5, 80)
	a.TrackConceptDifficulty("chapter-1", 5, 90)

	entry := a.Difficulty("chapter-1")
	assert.Equal(t, 3, entry.Attempts)
	assert.InDelta(t, 70, entry.AverageScore, 1e-9)
	assert.InDelta(t, 15, entry.TotalTimeMinutes, 1e-9)
}

func TestSessions(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	now := start
	a := NewAnalytics(storage.NewMemory(), WithClock(func() time.Time { return now }))

	id := a.StartSession()
	require.NotEmpty(t, id)
	_, active := a.CurrentSession()
	assert.True(t, active)

	now = start.Add(25*time.Minute + 40*time.Second)
	minutes, ok := a.EndSession(id)
	require.True(t, ok)
	assert.Equal(t, 25, minutes)

	_, active = a.CurrentSession()
	assert.False(t, active)
	assert.InDelta(t, 25, a.Summary().AverageSessionMinutes, 1e-9)
}

func TestEndSessionUnknownIDIsNoop(t *testing.T) {
	a := NewAnalytics(storage.NewMemory())

	_, ok := a.EndSession("never-started")
	assert.False(t, ok)

	id := a.StartSession()
	_, ok = a.EndSession("some-other-id")
	assert.False(t, ok)
	_, active := a.CurrentSession()
	assert.True(t, active)

	_, ok = a.EndSession(id)
	assert.True(t, ok)
}

func TestStartSessionReplacesCurrentPointer(t *testing.T) {
	a := NewAnalytics(storage.NewMemory())

	first := a.StartSession()
	second := a.StartSession()

	_, ok := a.EndSession(first)
	assert.False(t, ok)
	_, ok = a.EndSession(second)
	assert.True(t, ok)
	// Only the second session recorded a duration.
	assert.Len(t, a.doc.value.Patterns.SessionDurationsMinutes, 1)
}

func TestSummary(t *testing.T) {
	monday := time.Date(2026, 3, 9, 14, 30, 0, 0, time.Local)
	now := monday
	a := NewAnalytics(storage.NewMemory(), WithClock(func() time.Time { return now }))

	a.TrackInteraction("memory-widget", "chapter-1", "opened", nil)
	a.TrackInteraction("memory-widget", "chapter-1", ActionCompleted, nil)
	now = monday.Add(time.Hour)
	a.TrackInteraction("quiz-widget", "chapter-2", "opened", nil)

	a.TrackConceptDifficulty("chapter-1", 20, 30)
	a.TrackConceptDifficulty("chapter-2", 2, 95)

	summary := a.Summary()
	assert.Equal(t, 3, summary.TotalInteractions)
	assert.Equal(t, 2, summary.ComponentsUsed)
	assert.Equal(t, HourCount{Hour: 14, Count: 2}, summary.MostActiveHour)
	assert.Equal(t, DayCount{Day: "Monday", Count: 3}, summary.MostActiveDay)

	require.Len(t, summary.ComponentStats, 2)
	assert.Equal(t, "memory-widget", summary.ComponentStats[0].Component)
	assert.Equal(t, 2, summary.ComponentStats[0].Interactions)
	assert.InDelta(t, 50, summary.ComponentStats[0].CompletionRate, 1e-9)

	require.Len(t, summary.DifficultChapters, 2)
	assert.Equal(t, "chapter-1", summary.DifficultChapters[0].ChapterID)
}

func TestSummaryKeepsSeparatorBearingChapterID(t *testing.T) {
	a := NewAnalytics(storage.NewMemory())
	a.TrackInteraction("quiz-widget", "part-1::chapter-2", "opened", nil)

	summary := a.Summary()
	require.Len(t, summary.ComponentStats, 1)
	assert.Equal(t, "part-1::chapter-2", summary.ComponentStats[0].ChapterID)
	assert.Equal(t, "quiz-widget", summary.ComponentStats[0].Component)
}

func TestSummaryEmpty(t *testing.T) {
	summary := NewAnalytics(storage.NewMemory()).Summary()
	assert.Zero(t, summary.TotalInteractions)
	assert.Zero(t, summary.AverageSessionMinutes)
	assert.Empty(t, summary.ComponentStats)
	assert.Empty(t, summary.DifficultChapters)
}

func TestAnalyticsPersistsAcrossInstances(t *testing.T) {
	backend := storage.NewMemory()

	a1 := NewAnalytics(backend)
	a1.TrackInteraction("memory-widget", "chapter-1", ActionCompleted, nil)
	id := a1.StartSession()

	a2 := NewAnalytics(backend)
	assert.Equal(t, 1, a2.Usage("chapter-1", "memory-widget").Interactions)
	session, active := a2.CurrentSession()
	require.True(t, active)
	assert.Equal(t, id, session.ID)
}
