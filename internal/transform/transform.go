// Package transform turns raw content-source records into normalized
// records. A missing or mistyped field takes its default; a record whose
// structure cannot be read at all is dropped from the collection.
package transform

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"bookreview/internal/model"
)

// ErrMalformed marks a record that cannot be normalized.
var ErrMalformed = errors.New("malformed record")

// now is swapped in tests.
var now = time.Now

func timestamp() string {
	return now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// Book normalizes one raw page of the books database.
func Book(raw any) (book model.Book, err error) {
	defer func() {
		if r := recover(); r != nil {
			book, err = model.Book{}, fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	page, p, err := split(raw)
	if err != nil {
		return model.Book{}, err
	}

	book = model.Book{
		ID:        page["id"].(string),
		Name:      DefaultName,
		Author:    DefaultAuthor,
		Status:    DefaultStatus,
		Thumbnail: []model.Image{{URL: PlaceholderThumbnail}},
		Notes:     p.checkbox(bookSchema.Notes),
	}
	if s, ok := p.text(bookSchema.Name); ok {
		book.Name = s
	}
	if s, ok := p.text(bookSchema.Author); ok {
		book.Author = s
	}
	if s, ok := p.text(bookSchema.Status); ok {
		book.Status = s
	}
	if s, ok := p.text(bookSchema.Date); ok {
		book.Date = s
	} else {
		book.Date = timestamp()
	}
	if s, ok := p.text(bookSchema.LastUpdated); ok {
		book.LastUpdated = s
	} else if s, ok := page["last_edited_time"].(string); ok && s != "" {
		book.LastUpdated = s
	} else {
		book.LastUpdated = timestamp()
	}
	if n, ok := p.number(bookSchema.Rating); ok {
		book.Rating = clampRating(n)
	}
	if s, ok := p.text(bookSchema.Link); ok {
		book.Link = s
	}
	if urls, ok := p.files(bookSchema.Thumbnail); ok {
		book.Thumbnail = make([]model.Image, len(urls))
		for i, u := range urls {
			book.Thumbnail[i] = model.Image{URL: u}
		}
	}
	return book, nil
}

// Books normalizes a query result. Order is preserved; malformed records are
// dropped and logged.
func Books(raw []any) []model.Book {
	books := make([]model.Book, 0, len(raw))
	for i, r := range raw {
		b, err := Book(r)
		if err != nil {
			log.Printf("[BOOKS] Dropping record %d: %v", i, err)
			continue
		}
		books = append(books, b)
	}
	return books
}

// Bookmark normalizes one raw page of the bookmarks database.
func Bookmark(raw any) (bm model.Bookmark, err error) {
	defer func() {
		if r := recover(); r != nil {
			bm, err = model.Bookmark{}, fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	page, p, err := split(raw)
	if err != nil {
		return model.Bookmark{}, err
	}

	bm = model.Bookmark{
		ID:        page["id"].(string),
		Title:     DefaultName,
		Published: p.checkbox(bookmarkSchema.Published),
	}
	if s, ok := p.text(bookmarkSchema.Title); ok {
		bm.Title = s
	}
	if s, ok := p.text(bookmarkSchema.URL); ok {
		bm.URL = s
	}
	if s, ok := p.text(bookmarkSchema.Description); ok {
		bm.Description = s
	}
	if s, ok := p.text(bookmarkSchema.Date); ok {
		bm.Date = s
	} else {
		bm.Date = timestamp()
	}
	return bm, nil
}

// Bookmarks normalizes a query result, dropping malformed records.
func Bookmarks(raw []any) []model.Bookmark {
	out := make([]model.Bookmark, 0, len(raw))
	for i, r := range raw {
		bm, err := Bookmark(r)
		if err != nil {
			log.Printf("[BOOKMARKS] Dropping record %d: %v", i, err)
			continue
		}
		out = append(out, bm)
	}
	return out
}

// Blocks wraps each raw block under its id. Blocks without an id are skipped.
func Blocks(pageID string, raw []any) *model.BlockMap {
	m := model.NewBlockMap()
	for i, r := range raw {
		block, ok := r.(map[string]any)
		if !ok {
			log.Printf("[BLOCKS] Skipping block %d of page %s: not an object", i, pageID)
			continue
		}
		id, _ := block["id"].(string)
		if id == "" {
			log.Printf("[BLOCKS] Skipping block %d of page %s: no id", i, pageID)
			continue
		}
		m.Set(id, block)
	}
	return m
}

// split checks record structure and returns the page and its properties.
func split(raw any) (map[string]any, props, error) {
	page, ok := raw.(map[string]any)
	if !ok || page == nil {
		return nil, nil, fmt.Errorf("%w: record is %T, not an object", ErrMalformed, raw)
	}
	id, ok := page["id"].(string)
	if !ok || id == "" {
		return nil, nil, fmt.Errorf("%w: record has no id", ErrMalformed)
	}

	rawProps, present := page["properties"]
	if !present || rawProps == nil {
		return page, props{}, nil
	}
	p, ok := rawProps.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("%w: record %s has properties of type %T", ErrMalformed, id, rawProps)
	}
	return page, props(p), nil
}

// clampRating rounds n into 0..5 before converting, so huge values stay in range.
func clampRating(n float64) int {
	if math.IsNaN(n) {
		return 0
	}
	return int(math.Min(5, math.Max(0, math.Round(n))))
}
