// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChloeZhou1997/booktrack/internal/tracker"
)

func newNoteCmd(trk *tracker.Tracker) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage study notes",
	}

	cmd.AddCommand(newNoteAddCmd(trk))
	cmd.AddCommand(newNoteEditCmd(trk))
	cmd.AddCommand(newNoteRemoveCmd(trk))
	cmd.AddCommand(newNoteListCmd(trk))
	cmd.AddCommand(newNoteSearchCmd(trk))
	cmd.AddCommand(newNoteTagCmd(trk))
	cmd.AddCommand(newNoteUntagCmd(trk))
	cmd.AddCommand(newNoteStatsCmd(trk))

	return cmd
}

func newNoteAddCmd(trk *tracker.Tracker) *cobra.Command {
	var section, title, category string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add <chapter-id> <content>",
		Short: "Add a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note := trk.Notes.Add(&tracker.Note{
				ChapterID: args[0],
				SectionID: section,
				Title:     title,
				Content:   args[1],
				Category:  category,
				Tags:      tags,
			})
			fmt.Printf("Note added: %s\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Section within the chapter")
	cmd.Flags().StringVarP(&title, "title", "T", "", "Note title")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default \"general\")")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag (can be repeated)")
	return cmd
}

func newNoteEditCmd(trk *tracker.Tracker) *cobra.Command {
	var title, content, category string
	var tags []string

	cmd := &cobra.Command{
		Use:   "edit <note-id>",
		Short: "Edit note fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := tracker.NoteUpdate{}
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("content") {
				update.Content = &content
			}
			if cmd.Flags().Changed("category") {
				update.Category = &category
			}
			if cmd.Flags().Changed("tag") {
				update.Tags = &tags
			}

			note := trk.Notes.Update(args[0], update)
			if note == nil {
				fmt.Printf("No note with id %s\n", args[0])
				return nil
			}
			printNote(note)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "T", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Replacement tags (can be repeated)")
	return cmd
}

func newNoteRemoveCmd(trk *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <note-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a note by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !trk.Notes.Remove(args[0]) {
				fmt.Printf("No note with id %s\n", args[0])
				return nil
			}
			fmt.Println("Note removed.")
			return nil
		},
	}
}

func newNoteListCmd(trk *tracker.Tracker) *cobra.Command {
	var chapter, category, sortBy, direction string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var notes []*tracker.Note
			switch {
			case chapter != "":
				notes = trk.Notes.ByChapter(chapter)
			case category != "":
				notes = trk.Notes.ByCategory(category)
			default:
				notes = trk.Notes.Sorted(
					tracker.SortField(sortBy), tracker.SortDirection(direction))
			}

			if asJSON {
				return printJSON(notes)
			}
			if len(notes) == 0 {
				fmt.Println("No notes.")
				return nil
			}
			for _, note := range notes {
				printNote(note)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&chapter, "chapter", "", "Filter by chapter")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category")
	cmd.Flags().StringVar(&sortBy, "sort", string(tracker.SortByUpdated), "Sort field (createdAt, updatedAt, title, chapterId)")
	cmd.Flags().StringVar(&direction, "direction", string(tracker.SortDesc), "Sort direction (asc, desc)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newNoteSearchCmd(trk *tracker.Tracker) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes by content or tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches := trk.Notes.Search(args[0])
			if asJSON {
				return printJSON(matches)
			}
			if len(matches) == 0 {
				fmt.Println("No matches.")
				return nil
			}
			for _, note := range matches {
				printNote(note)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newNoteTagCmd(trk *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <note-id> <tag>...",
		Short: "Add tags to a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note := trk.Notes.AddTags(args[0], args[1:])
			if note == nil {
				fmt.Printf("No note with id %s\n", args[0])
				return nil
			}
			fmt.Printf("Tags: %s\n", strings.Join(note.Tags, ", "))
			return nil
		},
	}
}

func newNoteUntagCmd(trk *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:   "untag <note-id> <tag>",
		Short: "Remove a tag from a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note := trk.Notes.RemoveTag(args[0], args[1])
			if note == nil {
				fmt.Printf("No note with id %s\n", args[0])
				return nil
			}
			fmt.Printf("Tags: %s\n", strings.Join(note.Tags, ", "))
			return nil
		},
	}
}

func newNoteStatsCmd(trk *tracker.Tracker) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show note statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := trk.Notes.Statistics()
			if asJSON {
				return printJSON(stats)
			}

			fmt.Printf("Total notes: %d\n", stats.Total)
			if len(stats.ByCategory) > 0 {
				fmt.Println("By category:")
				for _, category := range sortedCountKeys(stats.ByCategory) {
					fmt.Printf("  %-16s %d\n", category, stats.ByCategory[category])
				}
			}
			if len(stats.ByChapter) > 0 {
				fmt.Println("By chapter:")
				for _, chapter := range sortedCountKeys(stats.ByChapter) {
					fmt.Printf("  %-16s %d\n", chapter, stats.ByChapter[chapter])
				}
			}
			if len(stats.RecentlyUpdated) > 0 {
				fmt.Println("Recently updated:")
				for _, note := range stats.RecentlyUpdated {
					fmt.Printf("  %s  %s\n", note.UpdatedAt.Format(time.DateOnly), noteTitle(note))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printNote(note *tracker.Note) {
	fmt.Printf("%s  %-30s %s [%s]\n", note.ID, noteTitle(note), note.ChapterID, note.Category)
	if len(note.Tags) > 0 {
		fmt.Printf("    tags: %s\n", strings.Join(note.Tags, ", "))
	}
	fmt.Printf("    %s\n", firstLine(note.Content))
}

func noteTitle(note *tracker.Note) string {
	if note.Title != "" {
		return note.Title
	}
	return "Untitled note"
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func sortedCountKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
