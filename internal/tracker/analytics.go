// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package tracker

import (
	"sort"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/ChloeZhou1997/booktrack/internal/storage"
)

// ActionCompleted is the interaction action that counts toward a
// component's completion rate.
const ActionCompleted = "completed"

// difficultyTimeCapMinutes caps the time term of the difficulty
// formula; anything past half an hour on one concept saturates it.
const difficultyTimeCapMinutes = 30

// Analytics logs granular interaction events and derives usage,
// pattern, session and difficulty aggregates from them on read.
type Analytics struct {
	doc *document[analyticsDocument]
	now func() time.Time
}

func newAnalyticsDocument() analyticsDocument {
	return analyticsDocument{
		Usage:      make(map[string]*ComponentUsage),
		Difficulty: make(map[string]*ConceptDifficulty),
		Patterns: LearningPatterns{
			TimeOfDay: make(map[int]int),
			DayOfWeek: make(map[string]int),
		},
	}
}

// NewAnalytics loads the analytics document from the backend.
func NewAnalytics(backend storage.Backend, opts ...Option) *Analytics {
	o := applyOptions(opts)
	a := &Analytics{
		doc: loadDocument(backend, analyticsSlot, newAnalyticsDocument, o.log),
		now: o.nowFn,
	}
	// Imported documents may predate one of the maps.
	if a.doc.value.Usage == nil {
		a.doc.value.Usage = make(map[string]*ComponentUsage)
	}
	if a.doc.value.Difficulty == nil {
		a.doc.value.Difficulty = make(map[string]*ConceptDifficulty)
	}
	if a.doc.value.Patterns.TimeOfDay == nil {
		a.doc.value.Patterns.TimeOfDay = make(map[int]int)
	}
	if a.doc.value.Patterns.DayOfWeek == nil {
		a.doc.value.Patterns.DayOfWeek = make(map[string]int)
	}
	// Usage records written before the pair was stored on the record
	// itself carry it only in the map key.
	for key, usage := range a.doc.value.Usage {
		if usage.ChapterID == "" && usage.Component == "" {
			usage.ChapterID, usage.Component = splitUsageKey(key)
		}
	}
	return a
}

func usageKey(chapterID, component string) string {
	return chapterID + "::" + component
}

// TrackInteraction appends an interaction event, upserts the usage
// aggregate for the (chapter, component) pair, and bumps the
// time-of-day and day-of-week histograms for "now".
func (a *Analytics) TrackInteraction(component, chapterID, action string, metadata map[string]any) {
	now := a.now()
	a.doc.value.Events = append(a.doc.value.Events, InteractionEvent{
		Timestamp: now,
		Component: component,
		ChapterID: chapterID,
		Action:    action,
		Metadata:  metadata,
	})

	usage := a.usage(chapterID, component, now)
	usage.Interactions++
	if action == ActionCompleted {
		usage.Completions++
	}
	usage.LastUsed = now

	// Histogram buckets follow the clock's location, like the streak
	// day walk.
	a.doc.value.Patterns.TimeOfDay[now.Hour()]++
	a.doc.value.Patterns.DayOfWeek[now.Weekday().String()]++

	a.doc.persist()
}

// TrackComponentTime adds seconds of active use to the usage aggregate
// for the (chapter, component) pair, creating it if absent.
func (a *Analytics) TrackComponentTime(component, chapterID string, seconds int) {
	if seconds <= 0 {
		return
	}
	now := a.now()
	usage := a.usage(chapterID, component, now)
	usage.TimeSpentSeconds += seconds
	usage.LastUsed = now
	a.doc.persist()
}

func (a *Analytics) usage(chapterID, component string, now time.Time) *ComponentUsage {
	key := usageKey(chapterID, component)
	usage, ok := a.doc.value.Usage[key]
	if !ok {
		usage = &ComponentUsage{ChapterID: chapterID, Component: component, FirstUsed: now}
		a.doc.value.Usage[key] = usage
	}
	return usage
}

// TrackConceptDifficulty folds one study observation into the chapter's
// difficulty record: time accumulates, the average score is an
// attempt-weighted running mean, and the difficulty score is
// recomputed.
func (a *Analytics) TrackConceptDifficulty(chapterID string, timeSpentMinutes, quizScorePercent float64) {
	if timeSpentMinutes < 0 {
		timeSpentMinutes = 0
	}
	if quizScorePercent < 0 {
		quizScorePercent = 0
	}
	if quizScorePercent > 100 {
		quizScorePercent = 100
	}

	entry, ok := a.doc.value.Difficulty[chapterID]
	if !ok {
		entry = &ConceptDifficulty{}
		a.doc.value.Difficulty[chapterID] = entry
	}
	entry.AverageScore = (entry.AverageScore*float64(entry.Attempts) + quizScorePercent) / float64(entry.Attempts+1)
	entry.Attempts++
	entry.TotalTimeMinutes += timeSpentMinutes
	entry.DifficultyScore = difficultyScore(entry.TotalTimeMinutes, entry.AverageScore)
	a.doc.persist()
}

// difficultyScore weighs normalized time-on-task (40%) against the
// inverted average score (60%). Both terms live in [0,1], so the result
// is bounded to [0,100] by construction.
func difficultyScore(totalTimeMinutes, averageScore float64) float64 {
	normalizedTime := totalTimeMinutes / difficultyTimeCapMinutes
	if normalizedTime > 1 {
		normalizedTime = 1
	}
	return 100 * (0.4*normalizedTime + 0.6*(1-averageScore/100))
}

// StartSession opens a study session and returns its id. Sessions do
// not nest: starting while one is active abandons the previous pointer
// without recording a duration.
func (a *Analytics) StartSession() string {
	session := &StudySession{
		ID:        shortuuid.New(),
		StartedAt: a.now(),
	}
	a.doc.value.Session = session
	a.doc.persist()
	return session.ID
}

// EndSession closes the current session and appends its whole-minute
// duration to the session history. Ending a session that is not the
// current one is a no-op reporting false.
func (a *Analytics) EndSession(sessionID string) (minutes int, ok bool) {
	session := a.doc.value.Session
	if session == nil || session.ID != sessionID {
		return 0, false
	}
	minutes = int(a.now().Sub(session.StartedAt).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	a.doc.value.Patterns.SessionDurationsMinutes = append(a.doc.value.Patterns.SessionDurationsMinutes, minutes)
	a.doc.value.Session = nil
	a.doc.persist()
	return minutes, true
}

// CurrentSession returns a copy of the active session, if any.
func (a *Analytics) CurrentSession() (StudySession, bool) {
	if a.doc.value.Session == nil {
		return StudySession{}, false
	}
	return *a.doc.value.Session, true
}

// Summary recomputes the derived analytics view from the current
// in-memory state.
func (a *Analytics) Summary() AnalyticsSummary {
	doc := &a.doc.value
	out := AnalyticsSummary{
		TotalInteractions: len(doc.Events),
	}

	components := make(map[string]struct{})
	for _, event := range doc.Events {
		components[event.Component] = struct{}{}
	}
	out.ComponentsUsed = len(components)

	if n := len(doc.Patterns.SessionDurationsMinutes); n > 0 {
		var sum int
		for _, m := range doc.Patterns.SessionDurationsMinutes {
			sum += m
		}
		out.AverageSessionMinutes = float64(sum) / float64(n)
	}

	// Peak buckets; ties resolve in map iteration order.
	for hour, count := range doc.Patterns.TimeOfDay {
		if count > out.MostActiveHour.Count {
			out.MostActiveHour = HourCount{Hour: hour, Count: count}
		}
	}
	for day, count := range doc.Patterns.DayOfWeek {
		if count > out.MostActiveDay.Count {
			out.MostActiveDay = DayCount{Day: day, Count: count}
		}
	}

	for _, usage := range doc.Usage {
		stat := ComponentStat{
			ChapterID:        usage.ChapterID,
			Component:        usage.Component,
			Interactions:     usage.Interactions,
			Completions:      usage.Completions,
			TimeSpentSeconds: usage.TimeSpentSeconds,
		}
		if usage.Interactions > 0 {
			stat.CompletionRate = float64(usage.Completions) / float64(usage.Interactions) * 100
		}
		out.ComponentStats = append(out.ComponentStats, stat)
	}
	sort.SliceStable(out.ComponentStats, func(i, j int) bool {
		return out.ComponentStats[i].Interactions > out.ComponentStats[j].Interactions
	})

	for chapterID, entry := range doc.Difficulty {
		out.DifficultChapters = append(out.DifficultChapters, ChapterDifficulty{
			ChapterID:        chapterID,
			DifficultyScore:  entry.DifficultyScore,
			AverageScore:     entry.AverageScore,
			TotalTimeMinutes: entry.TotalTimeMinutes,
			Attempts:         entry.Attempts,
		})
	}
	sort.SliceStable(out.DifficultChapters, func(i, j int) bool {
		return out.DifficultChapters[i].DifficultyScore > out.DifficultChapters[j].DifficultyScore
	})

	return out
}

// splitUsageKey recovers the pair from a legacy map key. It is only a
// best effort: a chapter id containing the separator splits wrong,
// which is why new records store the pair explicitly.
func splitUsageKey(key string) (chapterID, component string) {
	for i := 0; i+1 < len(key); i++ {
		if key[i] == ':' && key[i+1] == ':' {
			return key[:i], key[i+2:]
		}
	}
	return key, ""
}

// Events returns a copy of the raw interaction log.
func (a *Analytics) Events() []InteractionEvent {
	out := make([]InteractionEvent, len(a.doc.value.Events))
	copy(out, a.doc.value.Events)
	return out
}

// Usage returns the usage aggregate for one (chapter, component) pair,
// or the zero shape when the pair was never used.
func (a *Analytics) Usage(chapterID, component string) ComponentUsage {
	if usage, ok := a.doc.value.Usage[usageKey(chapterID, component)]; ok {
		return *usage
	}
	return ComponentUsage{}
}

// Difficulty returns the difficulty record for a chapter, or the zero
// shape when nothing has been tracked for it.
func (a *Analytics) Difficulty(chapterID string) ConceptDifficulty {
	if entry, ok := a.doc.value.Difficulty[chapterID]; ok {
		return *entry
	}
	return ConceptDifficulty{}
}
