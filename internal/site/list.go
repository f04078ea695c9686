package site

import (
	"sort"
	"strings"

	"bookreview/internal/model"
)

// Sort options of the collection page.
const (
	SortNewest = "Terbaru"
	SortRating = "Rating"
)

var SortOptions = []string{SortNewest, SortRating}

// FilterAndSort orders finished by sortKey and keeps the books whose name or
// author contains query, ignoring case. Unknown sort keys sort by date.
func FilterAndSort(finished []model.Book, sortKey, query string) []model.Book {
	out := make([]model.Book, len(finished))
	copy(out, finished)

	if sortKey == SortRating {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Time().After(out[j].Time()) })
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return out
	}
	matches := out[:0]
	for _, b := range out {
		if strings.Contains(strings.ToLower(b.Name), q) || strings.Contains(strings.ToLower(b.Author), q) {
			matches = append(matches, b)
		}
	}
	return matches
}

// Empty state kinds, highest priority first.
const (
	EmptyConfig     = "config"
	EmptyNoBooks    = "no-books"
	EmptyNoMatches  = "no-matches"
	EmptyNoFinished = "no-finished"
)

// EmptyState is the banner shown in place of the book grid.
type EmptyState struct {
	Kind    string   `json:"kind"`
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Hints   []string `json:"hints,omitempty"`
}

// Empty picks the banner for the list page, or nil when the grid has books
// to show. matches is the number of books left after filtering by query.
func Empty(props ListPageProps, query string, matches int) *EmptyState {
	switch {
	case props.HasConfigError:
		return &EmptyState{
			Kind:    EmptyConfig,
			Title:   props.ErrorMessage,
			Message: "Please check your .env file and ensure:",
			Hints: []string{
				"NOTION_API_KEY is set correctly",
				"NOTION_BOOKS database ID is correct",
				"Your Notion integration has access to the database",
				`The database has entries with status="Finished"`,
			},
		}
	case props.TotalBookCount == 0:
		return &EmptyState{
			Kind:    EmptyNoBooks,
			Title:   "No books in your database yet",
			Message: "Start adding books to your Notion database to see them here!",
		}
	case strings.TrimSpace(query) != "" && matches == 0:
		return &EmptyState{
			Kind:    EmptyNoMatches,
			Title:   `No books found matching "` + query + `"`,
			Message: "Try adjusting your search terms or browse all books below.",
		}
	case len(props.FinishedBooks) == 0:
		return &EmptyState{
			Kind:    EmptyNoFinished,
			Title:   "No finished books in your collection yet",
			Message: `Books with status="Finished" will appear here automatically.`,
		}
	}
	return nil
}
