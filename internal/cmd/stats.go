// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChloeZhou1997/booktrack/internal/tracker"
)

func newStatsCmd(trk *tracker.Tracker) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show overall progress and analytics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overall := trk.Progress.Overall()
			summary := trk.Analytics.Summary()

			if asJSON {
				return printJSON(map[string]any{
					"progress":  overall,
					"analytics": summary,
				})
			}

			fmt.Println("Reading Progress")
			fmt.Println("----------------")
			fmt.Printf("Chapters completed: %d/%d (%.1f%%)\n",
				overall.ChaptersCompleted, overall.TotalChapters, overall.PercentageComplete)
			fmt.Printf("Average quiz score: %.1f%%\n", overall.AverageQuizScore)
			fmt.Printf("Current streak:     %d day(s)\n", overall.CurrentStreak)
			fmt.Printf("Total reading time: %d min\n", overall.TotalTimeMinutes)
			fmt.Println()

			fmt.Println("Study Analytics")
			fmt.Println("---------------")
			fmt.Printf("Interactions:    %d\n", summary.TotalInteractions)
			fmt.Printf("Components used: %d\n", summary.ComponentsUsed)
			fmt.Printf("Avg session:     %.1f min\n", summary.AverageSessionMinutes)
			if summary.MostActiveHour.Count > 0 {
				fmt.Printf("Most active:     %02d:00 on %ss\n",
					summary.MostActiveHour.Hour, summary.MostActiveDay.Day)
			}

			if len(summary.ComponentStats) > 0 {
				fmt.Println()
				fmt.Println("Components")
				for _, stat := range summary.ComponentStats {
					fmt.Printf("  %-20s %4d interactions, %5.1f%% completed\n",
						stat.Component, stat.Interactions, stat.CompletionRate)
				}
			}

			if len(summary.DifficultChapters) > 0 {
				fmt.Println()
				fmt.Println("Difficult Chapters")
				for _, ch := range summary.DifficultChapters {
					fmt.Printf("  %-20s difficulty %.1f (avg score %.1f%%)\n",
						ch.ChapterID, ch.DifficultyScore, ch.AverageScore)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
