package model

import (
	"strings"
	"time"
)

const (
	StatusFinished = "Finished"
	StatusReading  = "Reading"
)

// Image is one entry of a book's thumbnail files
type Image struct {
	URL string `json:"url"`
}

type Book struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	Status      string  `json:"status" validate:"required"`
	Date        string  `json:"date"`
	LastUpdated string  `json:"last_updated"`
	Rating      int     `json:"rating"`
	Notes       bool    `json:"notes"` // a review page exists for this book
	Link        string  `json:"link"`
	Thumbnail   []Image `json:"thumbnail"`
}

// BookResponse is the public JSON shape served by the API
type BookResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Author    string `json:"author"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	Rating    int    `json:"rating"`
	Notes     bool   `json:"notes"`
	Link      string `json:"link"`
	Thumbnail string `json:"thumbnail"`
	Slug      string `json:"slug,omitempty"`
}

func (b *Book) ToResponse() BookResponse {
	thumb := ""
	if len(b.Thumbnail) > 0 {
		thumb = b.Thumbnail[0].URL
	}
	return BookResponse{
		ID:        b.ID,
		Name:      b.Name,
		Author:    b.Author,
		Status:    b.Status,
		Date:      b.Date,
		Rating:    b.Rating,
		Notes:     b.Notes,
		Link:      b.Link,
		Thumbnail: thumb,
	}
}

// Publishable reports whether the book gets its own review page.
func (b *Book) Publishable() bool {
	return b.Status == StatusFinished && b.Notes
}

// Time parses Date. Unparsable or empty dates yield the zero time.
func (b *Book) Time() time.Time {
	return ParseDate(b.Date)
}

// Updated parses LastUpdated, falling back to Date.
func (b *Book) Updated() time.Time {
	if t := ParseDate(b.LastUpdated); !t.IsZero() {
		return t
	}
	return b.Time()
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseDate accepts the date and date-time forms the content source emits.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
