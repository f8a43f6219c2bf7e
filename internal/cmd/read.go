// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChloeZhou1997/booktrack/internal/tracker"
)

func newReadCmd(trk *tracker.Tracker) *cobra.Command {
	var percent float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "read <chapter-id>",
		Short: "Record reading progress for a chapter",
		Long: `Record how far a chapter has been read. Progress is monotonic:
reporting a lower percentage than before leaves the stored value
untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chapterID := args[0]
			trk.Progress.MarkChapterRead(chapterID, percent)

			progress := trk.Progress.ChapterProgress(chapterID)
			if asJSON {
				return printJSON(progress)
			}
			fmt.Printf("Chapter %s: %.0f%% read\n", chapterID, progress.PercentageRead)
			fmt.Printf("Time spent: %d min\n", progress.TimeSpentMinutes)
			fmt.Printf("Last read:  %s\n", progress.LastRead.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&percent, "percent", "p", 100, "Percentage of the chapter read (0-100)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newQuizCmd(trk *tracker.Tracker) *cobra.Command {
	var score, total int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "quiz <chapter-id> <quiz-id>",
		Short: "Record a quiz submission",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if total <= 0 {
				return fmt.Errorf("--total must be positive")
			}
			chapterID, quizID := args[0], args[1]
			trk.Progress.UpdateQuizScore(chapterID, quizID, score, total)

			attempt := trk.Progress.QuizProgress(chapterID, quizID)
			if asJSON {
				return printJSON(attempt)
			}
			fmt.Printf("Quiz %s/%s: %d/%d (best %d, attempt %d)\n",
				chapterID, quizID, attempt.LastScore, attempt.TotalQuestions,
				attempt.BestScore, attempt.Attempts)
			return nil
		},
	}

	cmd.Flags().IntVarP(&score, "score", "s", 0, "Questions answered correctly")
	cmd.Flags().IntVarP(&total, "total", "t", 0, "Total questions in the quiz")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("total")
	return cmd
}
