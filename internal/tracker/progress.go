// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package tracker

import (
	"sort"
	"time"

	"github.com/ChloeZhou1997/booktrack/internal/storage"
)

const (
	// completionThreshold is the percentage at which a chapter counts
	// as completed.
	completionThreshold = 80
	// readTickMinutes is the time credited per MarkChapterRead call:
	// each call models one observation tick from the reading view.
	readTickMinutes = 1
)

// Progress tracks per-chapter read percentage, time spent, and quiz
// attempt history, and derives overall completion and the study streak.
type Progress struct {
	doc           *document[progressDocument]
	totalChapters int
	now           func() time.Time
	// visited holds the chapters seen during this process lifetime.
	// It is session state and is never persisted.
	visited map[string]struct{}
}

func newProgressDocument() progressDocument {
	return progressDocument{
		Chapters: make(map[string]*ChapterProgress),
		Quizzes:  make(map[string]map[string]*QuizAttempt),
	}
}

// NewProgress loads the progress document from the backend.
func NewProgress(backend storage.Backend, totalChapters int, opts ...Option) *Progress {
	o := applyOptions(opts)
	return &Progress{
		doc:           loadDocument(backend, progressSlot, newProgressDocument, o.log),
		totalChapters: totalChapters,
		now:           o.nowFn,
		visited:       make(map[string]struct{}),
	}
}

// MarkChapterRead records a reading observation for a chapter. The
// stored percentage never decreases: callers report the intersection
// ratio they saw, and the maximum wins. Each call credits one
// observation tick of reading time.
func (p *Progress) MarkChapterRead(chapterID string, percentage float64) {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	ch, ok := p.doc.value.Chapters[chapterID]
	if !ok {
		ch = &ChapterProgress{}
		p.doc.value.Chapters[chapterID] = ch
	}
	if percentage > ch.PercentageRead {
		ch.PercentageRead = percentage
	}
	ch.TimeSpentMinutes += readTickMinutes
	ch.LastRead = p.now()
	p.visited[chapterID] = struct{}{}
	p.doc.persist()
}

// UpdateQuizScore records a quiz submission. BestScore is monotonic;
// LastScore and LastAttempt always reflect the newest submission.
func (p *Progress) UpdateQuizScore(chapterID, quizID string, score, totalQuestions int) {
	quizzes, ok := p.doc.value.Quizzes[chapterID]
	if !ok {
		quizzes = make(map[string]*QuizAttempt)
		p.doc.value.Quizzes[chapterID] = quizzes
	}
	attempt, ok := quizzes[quizID]
	if !ok {
		attempt = &QuizAttempt{}
		quizzes[quizID] = attempt
	}
	attempt.Attempts++
	if score > attempt.BestScore {
		attempt.BestScore = score
	}
	attempt.LastScore = score
	attempt.TotalQuestions = totalQuestions
	attempt.LastAttempt = p.now()
	p.doc.persist()
}

// ChapterProgress returns the stored progress for a chapter, or the
// zero shape when the chapter has never been read.
func (p *Progress) ChapterProgress(chapterID string) ChapterProgress {
	if ch, ok := p.doc.value.Chapters[chapterID]; ok {
		return *ch
	}
	return ChapterProgress{}
}

// QuizProgress returns the stored attempt record for a quiz, or the
// zero shape when the quiz has never been taken.
func (p *Progress) QuizProgress(chapterID, quizID string) QuizAttempt {
	if quizzes, ok := p.doc.value.Quizzes[chapterID]; ok {
		if attempt, ok := quizzes[quizID]; ok {
			return *attempt
		}
	}
	return QuizAttempt{}
}

// Chapters returns a copy of every chapter's progress record, keyed by
// chapter id.
func (p *Progress) Chapters() map[string]ChapterProgress {
	out := make(map[string]ChapterProgress, len(p.doc.value.Chapters))
	for id, ch := range p.doc.value.Chapters {
		out[id] = *ch
	}
	return out
}

// VisitedThisSession reports whether a chapter has been read during
// this process lifetime.
func (p *Progress) VisitedThisSession(chapterID string) bool {
	_, ok := p.visited[chapterID]
	return ok
}

// Overall computes the derived progress view: completion against the
// configured chapter total, mean best quiz score, and the current
// study streak.
func (p *Progress) Overall() OverallProgress {
	out := OverallProgress{TotalChapters: p.totalChapters}

	for _, ch := range p.doc.value.Chapters {
		if ch.PercentageRead >= completionThreshold {
			out.ChaptersCompleted++
		}
		out.TotalTimeMinutes += ch.TimeSpentMinutes
	}
	if p.totalChapters > 0 {
		out.PercentageComplete = float64(out.ChaptersCompleted) / float64(p.totalChapters) * 100
	}

	var scoreSum float64
	var scoreCount int
	for _, quizzes := range p.doc.value.Quizzes {
		for _, attempt := range quizzes {
			if attempt.TotalQuestions > 0 {
				scoreSum += float64(attempt.BestScore) / float64(attempt.TotalQuestions) * 100
				scoreCount++
			}
		}
	}
	if scoreCount > 0 {
		out.AverageQuizScore = scoreSum / float64(scoreCount)
	}

	out.CurrentStreak = p.streak()
	return out
}

// streak counts consecutive calendar days, ending today or yesterday,
// with at least one chapter-read event. Days are local to the clock's
// location.
func (p *Progress) streak() int {
	// All day boundaries use the clock's location so persisted
	// timestamps, whatever zone they deserialized with, bucket
	// consistently.
	loc := p.now().Location()

	seen := make(map[time.Time]struct{})
	for _, ch := range p.doc.value.Chapters {
		if ch.LastRead.IsZero() {
			continue
		}
		seen[dayOf(ch.LastRead, loc)] = struct{}{}
	}
	if len(seen) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := dayOf(p.now(), loc)
	yesterday := today.AddDate(0, 0, -1)
	if !days[0].Equal(today) && !days[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			streak++
			continue
		}
		break
	}
	return streak
}

// dayOf truncates a timestamp to its calendar day in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Reset replaces the whole progress document with the empty shape.
// The confirmer is part of the contract: without an affirmative answer
// nothing happens and Reset reports false.
func (p *Progress) Reset(confirm Confirmer) bool {
	if confirm == nil || !confirm("Reset all reading progress? This cannot be undone.") {
		return false
	}
	p.doc.reset()
	p.visited = make(map[string]struct{})
	return true
}
