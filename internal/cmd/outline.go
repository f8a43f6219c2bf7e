// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChloeZhou1997/booktrack/internal/tracker"
)

func newOutlineCmd() *cobra.Command {
	var concepts, asJSON bool

	cmd := &cobra.Command{
		Use:   "outline <lesson.html>",
		Short: "Extract headings or key concepts from lesson HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			content := string(data)

			if concepts {
				found := tracker.ExtractKeyConcepts(content)
				if asJSON {
					return printJSON(found)
				}
				if len(found) == 0 {
					fmt.Println("No concepts found.")
					return nil
				}
				for _, c := range found {
					fmt.Printf("%s: %s\n", c.Term, c.Definition)
				}
				return nil
			}

			headings := tracker.ExtractOutline(content)
			if asJSON {
				return printJSON(headings)
			}
			if len(headings) == 0 {
				fmt.Println("No headings found.")
				return nil
			}
			for _, h := range headings {
				fmt.Printf("%s%s\n", strings.Repeat("  ", h.Level-1), h.Text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&concepts, "concepts", false, "Extract key concepts instead of headings")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
