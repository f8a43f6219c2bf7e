// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChloeZhou1997/booktrack/internal/tracker"
)

func newTrackCmd(trk *tracker.Tracker) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Log interaction analytics",
		Long:  "Record widget interactions, active time, and concept difficulty observations.",
	}

	cmd.AddCommand(newTrackInteractionCmd(trk))
	cmd.AddCommand(newTrackTimeCmd(trk))
	cmd.AddCommand(newTrackDifficultyCmd(trk))

	return cmd
}

func newTrackInteractionCmd(trk *tracker.Tracker) *cobra.Command {
	var meta []string

	cmd := &cobra.Command{
		Use:   "interaction <component> <chapter-id> <action>",
		Short: "Log one widget interaction",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			metadata, err := parseMetadata(meta)
			if err != nil {
				return err
			}
			trk.Analytics.TrackInteraction(args[0], args[1], args[2], metadata)

			usage := trk.Analytics.Usage(args[1], args[0])
			fmt.Printf("%s on %s: %d interactions, %d completions\n",
				args[0], args[1], usage.Interactions, usage.Completions)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&meta, "meta", "m", nil, "Metadata as key=value (can be repeated)")
	return cmd
}

func newTrackTimeCmd(trk *tracker.Tracker) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time <component> <chapter-id> <seconds>",
		Short: "Add active time to a widget",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid seconds: %q", args[2])
			}
			trk.Analytics.TrackComponentTime(args[0], args[1], seconds)

			usage := trk.Analytics.Usage(args[1], args[0])
			fmt.Printf("%s on %s: %ds total\n", args[0], args[1], usage.TimeSpentSeconds)
			return nil
		},
	}
	return cmd
}

func newTrackDifficultyCmd(trk *tracker.Tracker) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "difficulty <chapter-id> <minutes> <score-percent>",
		Short: "Record a concept difficulty observation",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid minutes: %q", args[1])
			}
			score, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid score: %q", args[2])
			}
			trk.Analytics.TrackConceptDifficulty(args[0], minutes, score)

			entry := trk.Analytics.Difficulty(args[0])
			fmt.Printf("%s: difficulty %.1f (avg score %.1f over %d attempts)\n",
				args[0], entry.DifficultyScore, entry.AverageScore, entry.Attempts)
			return nil
		},
	}
	return cmd
}

func parseMetadata(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata %q, expected key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}
