// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChloeZhou1997/booktrack/internal/tracker"
)

func newSessionCmd(trk *tracker.Tracker) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage study sessions",
		Long:  "Track time spent in bounded study sessions",
	}

	cmd.AddCommand(newSessionStartCmd(trk))
	cmd.AddCommand(newSessionEndCmd(trk))
	cmd.AddCommand(newSessionCurrentCmd(trk))

	return cmd
}

func newSessionStartCmd(trk *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a study session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := trk.Analytics.StartSession()
			session, _ := trk.Analytics.CurrentSession()
			fmt.Printf("Session started: %s\n", id)
			fmt.Printf("Started at: %s\n", session.StartedAt.Format(time.RFC3339))
			return nil
		},
	}
}

func newSessionEndCmd(trk *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:   "end <session-id>",
		Short: "End the current study session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, ok := trk.Analytics.EndSession(args[0])
			if !ok {
				fmt.Printf("No active session with id %s\n", args[0])
				return nil
			}
			fmt.Printf("Session ended: %s\n", args[0])
			fmt.Printf("Duration: %d min\n", minutes)
			return nil
		},
	}
}

func newSessionCurrentCmd(trk *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the active session, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, ok := trk.Analytics.CurrentSession()
			if !ok {
				fmt.Println("No active session.")
				return nil
			}
			fmt.Printf("Session %s, started %s\n", session.ID, session.StartedAt.Format(time.RFC3339))
			return nil
		},
	}
}
