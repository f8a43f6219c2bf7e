// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

// Package cmd wires the tracker stores to the booktrack command line.
// The commands here are the in-process callers the e-book UI would
// otherwise be: every store operation is reachable from one of them.
package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChloeZhou1997/booktrack/internal/config"
	"github.com/ChloeZhou1997/booktrack/internal/tracker"
)

// NewRootCmd creates the root command for booktrack.
func NewRootCmd(cfg *config.Config, trk *tracker.Tracker) *cobra.Command {
	root := &cobra.Command{
		Use:   "booktrack",
		Short: "Track your progress through the book",
		Long: `Track reading progress, study analytics, bookmarks and notes
for the interactive book.

booktrack provides tools to:
- Record chapter reading progress and quiz scores
- Log widget interactions and study sessions
- Bookmark chapters and sections
- Keep and export study notes`,
		SilenceUsage: true,
	}

	root.AddCommand(newReadCmd(trk))
	root.AddCommand(newQuizCmd(trk))
	root.AddCommand(newTrackCmd(trk))
	root.AddCommand(newSessionCmd(trk))
	root.AddCommand(newStatsCmd(trk))
	root.AddCommand(newBookmarkCmd(trk))
	root.AddCommand(newNoteCmd(trk))
	root.AddCommand(newExportCmd(trk))
	root.AddCommand(newImportCmd(trk))
	root.AddCommand(newResetCmd(trk))
	root.AddCommand(newOutlineCmd())

	return root
}

// printJSON writes v to stdout, pretty-printed.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// confirmStdin asks a y/N question on the terminal. It is the
// Confirmer the destructive commands hand to the stores.
func confirmStdin(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// writeOutput writes data to path, or stdout when path is "-" or
// empty.
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(path, data, 0o644)
}
