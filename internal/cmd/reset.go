// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChloeZhou1997/booktrack/internal/tracker"
)

func newResetCmd(trk *tracker.Tracker) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset <progress|bookmarks|notes|all>",
		Short: "Clear stored data",
		Long: `Clear one store, or all of them. Each store asks for
confirmation separately unless --yes is given.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"progress", "bookmarks", "notes", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm := confirmStdin
			if yes {
				confirm = func(string) bool { return true }
			}

			target := args[0]
			if target == "progress" || target == "all" {
				if trk.Progress.Reset(confirm) {
					fmt.Println("Progress cleared.")
				}
			}
			if target == "bookmarks" || target == "all" {
				if trk.Bookmarks.ClearAll(confirm) {
					fmt.Println("Bookmarks cleared.")
				}
			}
			if target == "notes" || target == "all" {
				if trk.Notes.ClearAll(confirm) {
					fmt.Println("Notes cleared.")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompts")
	return cmd
}
