// Package site assembles the props of every page from normalized content.
package site

import (
	"context"
	"log"
	"sort"

	"bookreview/internal/fallback"
	"bookreview/internal/model"
	"bookreview/internal/slug"
)

// Fetcher is the content the page builders read.
type Fetcher interface {
	Books(ctx context.Context) []model.Book
	Bookmarks(ctx context.Context) []model.Bookmark
	PageBlocks(ctx context.Context, pageID string) *model.BlockMap
	Configured() bool
}

// ConfigErrorMessage is shown when the list is built from the fallback sentinel.
const ConfigErrorMessage = "Using sample data - Notion database not configured"

// ListPageProps feeds the collection page.
type ListPageProps struct {
	AllBooks       []model.Book `json:"allBooks"`
	FinishedBooks  []model.Book `json:"finishedBooks"`
	HasConfigError bool         `json:"hasConfigError"`
	ErrorMessage   string       `json:"errorMessage"`
	TotalBookCount int          `json:"totalBookCount"`
}

// DetailPageProps feeds one review page. Book is nil when the slug does not
// resolve; Page is nil when the review body could not be read.
type DetailPageProps struct {
	Book      *model.Book     `json:"book"`
	Page      *model.BlockMap `json:"page"`
	MoreBooks []model.Book    `json:"moreBooks"`
}

// SlugOf returns the route key of b.
func SlugOf(b model.Book) string {
	return slug.Make(b.Name)
}

// StaticPaths returns one route per publishable book, in collection order.
// Books whose title yields no usable slug get no route.
func StaticPaths(books []model.Book) []string {
	paths := []string{}
	for i := range books {
		if !books[i].Publishable() {
			continue
		}
		s := SlugOf(books[i])
		if s == slug.Untitled {
			log.Printf("[PAGE] Skipping %q (id=%s): title yields no slug", books[i].Name, books[i].ID)
			continue
		}
		paths = append(paths, "/"+s)
	}
	return paths
}

// Published returns the publishable books, newest first. Equal dates keep
// collection order.
func Published(books []model.Book) []model.Book {
	out := make([]model.Book, 0, len(books))
	for i := range books {
		if books[i].Publishable() {
			out = append(out, books[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time().After(out[j].Time())
	})
	return out
}

// moreBooks returns the two books following index i, treating published as
// a cycle. In lists shorter than three the book at i can come back around.
func moreBooks(published []model.Book, i int) []model.Book {
	doubled := append(append([]model.Book{}, published...), published...)
	end := min(i+3, len(doubled))
	return append([]model.Book{}, doubled[i+1:end]...)
}

// DetailProps builds the props of the review page for slugKey.
func DetailProps(ctx context.Context, f Fetcher, slugKey string) DetailPageProps {
	published := Published(f.Books(ctx))

	idx := -1
	for i := range published {
		if SlugOf(published[i]) == slugKey {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Printf("[WARN] Book not found for slug: %s", slugKey)
		return DetailPageProps{MoreBooks: []model.Book{}}
	}

	book := published[idx]
	props := DetailPageProps{
		Book:      &book,
		MoreBooks: moreBooks(published, idx),
	}
	props.Page = f.PageBlocks(ctx, book.ID)
	if props.Page == nil {
		log.Printf("[WARN] No page blocks found for book: %s", book.Name)
	}
	return props
}

// ListProps partitions books for the collection page. The fallback sentinel
// is reported as a configuration error and not counted as a book.
func ListProps(books []model.Book) ListPageProps {
	if fallback.IsSentinel(books) {
		return ListPageProps{
			AllBooks:       []model.Book{},
			FinishedBooks:  []model.Book{},
			HasConfigError: true,
			ErrorMessage:   ConfigErrorMessage,
		}
	}

	props := ListPageProps{
		AllBooks:       append([]model.Book{}, books...),
		FinishedBooks:  []model.Book{},
		TotalBookCount: len(books),
	}
	for i := range books {
		if books[i].Status == model.StatusFinished {
			props.FinishedBooks = append(props.FinishedBooks, books[i])
		}
	}
	log.Printf("[BOOKS] List page: %d books, %d finished", props.TotalBookCount, len(props.FinishedBooks))
	return props
}

// BookmarkPageProps feeds the bookmarks page.
type BookmarkPageProps struct {
	Bookmarks   []model.Bookmark `json:"bookmarks"`
	UsingSample bool             `json:"usingSample"`
}

// BookmarkProps keeps the published bookmarks, newest first. An unconfigured
// source shows the sample bookmarks instead.
func BookmarkProps(bookmarks []model.Bookmark, configured bool) BookmarkPageProps {
	if !configured {
		return BookmarkPageProps{Bookmarks: fallback.SampleBookmarks(), UsingSample: true}
	}
	out := []model.Bookmark{}
	for _, bm := range bookmarks {
		if bm.Published {
			out = append(out, bm)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return model.ParseDate(out[i].Date).After(model.ParseDate(out[j].Date))
	})
	return BookmarkPageProps{Bookmarks: out}
}
