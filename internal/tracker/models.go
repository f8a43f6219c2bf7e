// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package tracker

import (
	"time"
)

// JSON tags are camelCase throughout: the persisted documents and the
// import/export files must stay readable by the e-book's own exports.

// ChapterProgress records how far a chapter has been read. PercentageRead
// never decreases; chapters are only removed by a full progress reset.
type ChapterProgress struct {
	PercentageRead   float64   `json:"percentageRead"`
	LastRead         time.Time `json:"lastRead"`
	TimeSpentMinutes int       `json:"timeSpentMinutes"`
}

// QuizAttempt aggregates every submission of one quiz. BestScore never
// decreases; Attempts increments by exactly one per submission.
type QuizAttempt struct {
	Attempts       int       `json:"attempts"`
	BestScore      int       `json:"bestScore"`
	LastScore      int       `json:"lastScore"`
	TotalQuestions int       `json:"totalQuestions"`
	LastAttempt    time.Time `json:"lastAttempt"`
}

// progressDocument is the persisted shape of the progress store.
type progressDocument struct {
	Chapters map[string]*ChapterProgress       `json:"chapters"`
	Quizzes  map[string]map[string]*QuizAttempt `json:"quizzes"`
}

// OverallProgress is the derived view computed by Progress.Overall.
type OverallProgress struct {
	TotalChapters      int     `json:"totalChapters"`
	ChaptersCompleted  int     `json:"chaptersCompleted"`
	PercentageComplete float64 `json:"percentageComplete"`
	AverageQuizScore   float64 `json:"averageQuizScore"`
	CurrentStreak      int     `json:"currentStreak"`
	TotalTimeMinutes   int     `json:"totalTimeMinutes"`
}

// InteractionEvent is one append-only log entry. Events are never
// mutated or removed individually.
type InteractionEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Component string         `json:"component"`
	ChapterID string         `json:"chapterId"`
	Action    string         `json:"action"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// ComponentUsage is the incremental aggregate per (chapter, component)
// pair. Completions never exceeds Interactions.
type ComponentUsage struct {
	ChapterID        string    `json:"chapterId"`
	Component        string    `json:"component"`
	Interactions     int       `json:"interactions"`
	Completions      int       `json:"completions"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	FirstUsed        time.Time `json:"firstUsed"`
	LastUsed         time.Time `json:"lastUsed"`
}

// LearningPatterns holds append-only usage histograms and the list of
// completed session durations.
type LearningPatterns struct {
	TimeOfDay               map[int]int    `json:"timeOfDay"`
	DayOfWeek               map[string]int `json:"dayOfWeek"`
	SessionDurationsMinutes []int          `json:"sessionDurations"`
}

// ConceptDifficulty tracks how hard a chapter is proving to be.
// AverageScore is an attempt-count weighted running mean.
type ConceptDifficulty struct {
	TotalTimeMinutes float64 `json:"totalTimeMinutes"`
	Attempts         int     `json:"attempts"`
	AverageScore     float64 `json:"averageScore"`
	DifficultyScore  float64 `json:"difficultyScore"`
}

// StudySession is the single current-session pointer. A nil pointer in
// the document means no session is active.
type StudySession struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"startedAt"`
}

// analyticsDocument is the persisted shape of the analytics store.
type analyticsDocument struct {
	Events     []InteractionEvent            `json:"events"`
	Usage      map[string]*ComponentUsage    `json:"usage"`
	Patterns   LearningPatterns              `json:"patterns"`
	Difficulty map[string]*ConceptDifficulty `json:"difficulty"`
	Session    *StudySession                 `json:"currentSession,omitempty"`
}

// HourCount is an hour-of-day histogram peak.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// DayCount is a day-of-week histogram peak.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// ComponentStat is the per-component row of the analytics summary.
type ComponentStat struct {
	ChapterID        string  `json:"chapterId"`
	Component        string  `json:"component"`
	Interactions     int     `json:"interactions"`
	Completions      int     `json:"completions"`
	CompletionRate   float64 `json:"completionRate"`
	TimeSpentSeconds int     `json:"timeSpentSeconds"`
}

// ChapterDifficulty is the per-chapter row of the analytics summary.
type ChapterDifficulty struct {
	ChapterID        string  `json:"chapterId"`
	DifficultyScore  float64 `json:"difficultyScore"`
	AverageScore     float64 `json:"averageScore"`
	TotalTimeMinutes float64 `json:"totalTimeMinutes"`
	Attempts         int     `json:"attempts"`
}

// AnalyticsSummary is the derived read over the whole analytics
// document. MostActiveHour and MostActiveDay tie-break in map iteration
// order, which is implementation-defined and not guaranteed stable.
type AnalyticsSummary struct {
	TotalInteractions     int                 `json:"totalInteractions"`
	ComponentsUsed        int                 `json:"componentsUsed"`
	AverageSessionMinutes float64             `json:"averageSessionMinutes"`
	MostActiveHour        HourCount           `json:"mostActiveHour"`
	MostActiveDay         DayCount            `json:"mostActiveDay"`
	ComponentStats        []ComponentStat     `json:"componentStats"`
	DifficultChapters     []ChapterDifficulty `json:"difficultChapters"`
}

// Bookmark marks a place in the book. SectionID may be empty, which is
// its own match class for Toggle and IsBookmarked.
type Bookmark struct {
	ID        string     `json:"id"`
	ChapterID string     `json:"chapterId"`
	SectionID string     `json:"sectionId,omitempty"`
	Title     string     `json:"title"`
	Label     string     `json:"label,omitempty"`
	Category  string     `json:"category"`
	Tags      []string   `json:"tags,omitempty"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Note is a free-text note attached to a chapter and optionally a
// section. Tags is always non-nil.
type Note struct {
	ID        string    `json:"id"`
	ChapterID string    `json:"chapterId"`
	SectionID string    `json:"sectionId,omitempty"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteStatistics is the derived view computed by Notes.Statistics.
type NoteStatistics struct {
	Total           int            `json:"total"`
	ByCategory      map[string]int `json:"byCategory"`
	ByChapter       map[string]int `json:"byChapter"`
	RecentlyUpdated []*Note        `json:"recentlyUpdated"`
}

// SortDirection orders query results.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortField selects the key for sorted listings.
type SortField string

const (
	SortByCreated SortField = "createdAt"
	SortByUpdated SortField = "updatedAt"
	SortByTitle   SortField = "title"
	SortByChapter SortField = "chapterId"
)
