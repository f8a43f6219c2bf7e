// Copyright (c) 2026 Booktrack Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChloeZhou1997/booktrack/internal/tracker"
)

func newBookmarkCmd(trk *tracker.Tracker) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmark",
		Aliases: []string{"bm"},
		Short:   "Manage bookmarks",
	}

	cmd.AddCommand(newBookmarkAddCmd(trk))
	cmd.AddCommand(newBookmarkToggleCmd(trk))
	cmd.AddCommand(newBookmarkRemoveCmd(trk))
	cmd.AddCommand(newBookmarkListCmd(trk))
	cmd.AddCommand(newBookmarkSearchCmd(trk))
	cmd.AddCommand(newBookmarkUpdateCmd(trk))

	return cmd
}

func newBookmarkAddCmd(trk *tracker.Tracker) *cobra.Command {
	var section, label, category, note string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add <chapter-id> <title>",
		Short: "Add a bookmark",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bm := trk.Bookmarks.Add(&tracker.Bookmark{
				ChapterID: args[0],
				SectionID: section,
				Title:     args[1],
				Label:     label,
				Category:  category,
				Tags:      tags,
				Note:      note,
			})
			fmt.Printf("Bookmarked %s (%s)\n", bm.Title, bm.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Section within the chapter")
	cmd.Flags().StringVarP(&label, "label", "l", "", "Short label")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default \"general\")")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Attached note text")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag (can be repeated)")
	return cmd
}

func newBookmarkToggleCmd(trk *tracker.Tracker) *cobra.Command {
	var section, title string

	cmd := &cobra.Command{
		Use:   "toggle <chapter-id>",
		Short: "Toggle a bookmark on a chapter or section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if trk.Bookmarks.Toggle(args[0], section, title) {
				fmt.Println("Bookmark added.")
			} else {
				fmt.Println("Bookmark removed.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Section within the chapter")
	cmd.Flags().StringVarP(&title, "title", "T", "", "Title when adding")
	return cmd
}

func newBookmarkRemoveCmd(trk *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <bookmark-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a bookmark by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !trk.Bookmarks.Remove(args[0]) {
				fmt.Printf("No bookmark with id %s\n", args[0])
				return nil
			}
			fmt.Println("Bookmark removed.")
			return nil
		},
	}
}

func newBookmarkListCmd(trk *tracker.Tracker) *cobra.Command {
	var category, sortBy, direction string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bookmarks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var bookmarks []*tracker.Bookmark
			if category != "" {
				bookmarks = trk.Bookmarks.ByCategory(category)
			} else {
				bookmarks = trk.Bookmarks.Sorted(
					tracker.SortField(sortBy), tracker.SortDirection(direction))
			}

			if asJSON {
				return printJSON(bookmarks)
			}
			if len(bookmarks) == 0 {
				fmt.Println("No bookmarks.")
				return nil
			}
			for _, bm := range bookmarks {
				printBookmark(bm)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category")
	cmd.Flags().StringVar(&sortBy, "sort", string(tracker.SortByCreated), "Sort field (createdAt, updatedAt, title, chapterId)")
	cmd.Flags().StringVar(&direction, "direction", string(tracker.SortDesc), "Sort direction (asc, desc)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newBookmarkSearchCmd(trk *tracker.Tracker) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search bookmarks by title, label or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches := trk.Bookmarks.Search(args[0])
			if asJSON {
				return printJSON(matches)
			}
			if len(matches) == 0 {
				fmt.Println("No matches.")
				return nil
			}
			for _, bm := range matches {
				printBookmark(bm)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newBookmarkUpdateCmd(trk *tracker.Tracker) *cobra.Command {
	var title, label, category, note string
	var tags []string

	cmd := &cobra.Command{
		Use:   "update <bookmark-id>",
		Short: "Update bookmark fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := tracker.BookmarkUpdate{}
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("label") {
				update.Label = &label
			}
			if cmd.Flags().Changed("category") {
				update.Category = &category
			}
			if cmd.Flags().Changed("note") {
				update.Note = &note
			}
			if cmd.Flags().Changed("tag") {
				update.Tags = &tags
			}

			bm := trk.Bookmarks.Update(args[0], update)
			if bm == nil {
				fmt.Printf("No bookmark with id %s\n", args[0])
				return nil
			}
			printBookmark(bm)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "T", "", "New title")
	cmd.Flags().StringVarP(&label, "label", "l", "", "New label")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().StringVarP(&note, "note", "n", "", "New note text")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Replacement tags (can be repeated)")
	return cmd
}

func printBookmark(bm *tracker.Bookmark) {
	location := bm.ChapterID
	if bm.SectionID != "" {
		location += "/" + bm.SectionID
	}
	fmt.Printf("%s  %-30s %s [%s]\n",
		bm.ID, bm.Title, location, bm.Category)
	if bm.Note != "" {
		fmt.Printf("    %s\n", bm.Note)
	}
	fmt.Printf("    created %s\n", bm.CreatedAt.Format(time.DateOnly))
}
