// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChloeZhou1997/booktrack/internal/tracker"
)

func newExportCmd(trk *tracker.Tracker) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export bookmarks or notes",
	}

	cmd.AddCommand(newExportBookmarksCmd(trk))
	cmd.AddCommand(newExportNotesCmd(trk))

	return cmd
}

func newExportBookmarksCmd(trk *tracker.Tracker) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Export all bookmarks as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, filename, err := trk.Bookmarks.ExportJSON()
			if err != nil {
				return err
			}
			if output == "" {
				output = filename
			}
			if err := writeOutput(output, data); err != nil {
				return err
			}
			if output != "-" {
				fmt.Printf("Exported %d bookmark(s) to %s\n", len(trk.Bookmarks.All()), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default suggested name, \"-\" for stdout)")
	return cmd
}

func newExportNotesCmd(trk *tracker.Tracker) *cobra.Command {
	var format, chapter, output string

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Export notes as JSON, Markdown or HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var filename string
			var err error

			switch format {
			case "json":
				data, filename, err = trk.Notes.ExportJSON()
			case "markdown", "md":
				data = trk.Notes.ExportMarkdown(chapter)
				filename = "-"
			case "html":
				data, err = trk.Notes.ExportHTML(chapter)
				filename = "-"
			default:
				return fmt.Errorf("unknown format %q, expected json, markdown or html", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				output = filename
			}
			if err := writeOutput(output, data); err != nil {
				return err
			}
			if output != "-" {
				fmt.Printf("Exported notes to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Export format (json, markdown, html)")
	cmd.Flags().StringVar(&chapter, "chapter", "", "Limit to one chapter")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (\"-\" for stdout)")
	return cmd
}

func newImportCmd(trk *tracker.Tracker) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import bookmarks or notes from a JSON export",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "bookmarks <file>",
		Short: "Import bookmarks from a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if !trk.Bookmarks.ImportJSON(data) {
				return fmt.Errorf("%s is not a valid bookmark export", args[0])
			}
			fmt.Printf("Imported bookmarks, %d total\n", len(trk.Bookmarks.All()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "notes <file>",
		Short: "Import notes from a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if !trk.Notes.ImportJSON(data) {
				return fmt.Errorf("%s is not a valid note export", args[0])
			}
			fmt.Printf("Imported notes, %d total\n", len(trk.Notes.All()))
			return nil
		},
	})

	return cmd
}
