// Package content reads books, bookmarks and review bodies from the content
// source. Every operation returns a safe value: failures are logged and
// replaced by the fallback for that collection.
package content

import (
	"context"
	"errors"
	"log"
	"strings"

	"bookreview/internal/config"
	"bookreview/internal/fallback"
	"bookreview/internal/model"
	"bookreview/internal/notion"
	"bookreview/internal/transform"
)

// Client is the subset of the content source API the site reads from.
type Client interface {
	QueryDatabase(ctx context.Context, databaseID string, pageSize int) ([]any, error)
	ListBlockChildren(ctx context.Context, blockID string, pageSize int) ([]any, error)
	Ping(ctx context.Context, databaseID string) error
}

// Source fetches normalized content. A Source built with a nil Client
// behaves as an unreachable content source.
type Source struct {
	cfg    config.Config
	client Client
}

func New(cfg config.Config, client Client) *Source {
	return &Source{cfg: cfg, client: client}
}

// Configured reports whether every required setting is present.
func (s *Source) Configured() bool {
	return s.cfg.Configured()
}

// Available reports whether fetches can reach the content source at all.
func (s *Source) Available() bool {
	return s.Configured() && s.client != nil
}

func (s *Source) ready(area string) bool {
	if missing := s.cfg.Missing(); len(missing) > 0 {
		log.Printf("[CONFIG] Missing required environment variables: %s", strings.Join(missing, ", "))
		log.Printf("[CONFIG] Check your .env file and ensure all variables are set")
		return false
	}
	if s.client == nil {
		log.Printf("[%s] Notion client not initialized. Check %s", area, config.KeyAPIKey)
		return false
	}
	return true
}

// Books returns the normalized books database. Any collection-level failure,
// including a database with no usable records, yields fallback.FallbackBooks.
func (s *Source) Books(ctx context.Context) []model.Book {
	if !s.ready("BOOKS") {
		log.Printf("[BOOKS] Returning fallback books due to missing configuration")
		return fallback.FallbackBooks()
	}

	log.Printf("[BOOKS] Fetching books from database %s", s.cfg.BooksDB)
	raw, err := s.client.QueryDatabase(ctx, s.cfg.BooksDB, notion.DefaultPageSize)
	if err != nil {
		log.Printf("[ERROR] Fetching books failed: %v", err)
		s.hint(err)
		return fallback.FallbackBooks()
	}

	books := transform.Books(raw)
	if len(books) == 0 {
		log.Printf("[WARN] No books found in database %s", s.cfg.BooksDB)
		log.Printf("[WARN] Ensure the database has entries with status=%q or %q", model.StatusFinished, model.StatusReading)
		return fallback.FallbackBooks()
	}

	log.Printf("[BOOKS] Fetched %d books", len(books))
	return books
}

func (s *Source) hint(err error) {
	switch {
	case errors.Is(err, notion.ErrNotFound):
		log.Printf("[BOOKS] Database not found. Check %s (current value: %s)", config.KeyBooksDB, s.cfg.BooksDB)
	case errors.Is(err, notion.ErrUnauthorized):
		log.Printf("[BOOKS] Authentication failed. Check %s", config.KeyAPIKey)
	case errors.Is(err, notion.ErrRestricted):
		log.Printf("[BOOKS] Integration has no access to this database. Share the database with your integration")
	case errors.Is(err, notion.ErrInvalidResponse):
		log.Printf("[BOOKS] Invalid response from the Notion API")
	}
}

// Bookmarks returns the normalized bookmarks database, or an empty
// collection on any failure.
func (s *Source) Bookmarks(ctx context.Context) []model.Bookmark {
	if !s.ready("BOOKMARKS") {
		log.Printf("[BOOKMARKS] Returning empty bookmarks due to missing configuration")
		return []model.Bookmark{}
	}

	raw, err := s.client.QueryDatabase(ctx, s.cfg.BookmarksDB, notion.DefaultPageSize)
	if err != nil {
		log.Printf("[ERROR] Fetching bookmarks failed: %v", err)
		if errors.Is(err, notion.ErrNotFound) {
			log.Printf("[BOOKMARKS] Database not found. Check %s", config.KeyBookmarksDB)
		}
		return []model.Bookmark{}
	}

	bookmarks := transform.Bookmarks(raw)
	log.Printf("[BOOKMARKS] Fetched %d bookmarks", len(bookmarks))
	return bookmarks
}

// PageBlocks returns the review body of a page, or nil when it cannot be
// read. It does not require the database settings, only a client.
func (s *Source) PageBlocks(ctx context.Context, pageID string) *model.BlockMap {
	if s.client == nil {
		log.Printf("[PAGE] Notion client not initialized for page blocks")
		return nil
	}
	if pageID == "" {
		log.Printf("[PAGE] No page id provided")
		return nil
	}

	raw, err := s.client.ListBlockChildren(ctx, pageID, notion.DefaultPageSize)
	if err != nil {
		log.Printf("[ERROR] Fetching page blocks for %s failed: %v", pageID, err)
		if errors.Is(err, notion.ErrNotFound) {
			log.Printf("[PAGE] Page not found: %s", pageID)
		}
		return nil
	}

	blocks := transform.Blocks(pageID, raw)
	log.Printf("[PAGE] Fetched %d blocks for %s", blocks.Len(), pageID)
	return blocks
}

// ConnectionStatus is the outcome of a connectivity probe.
type ConnectionStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// CheckConnection probes the books database with a one-record query.
func (s *Source) CheckConnection(ctx context.Context) ConnectionStatus {
	if !s.Configured() {
		return ConnectionStatus{Message: "Missing required environment variables: " + strings.Join(s.cfg.Missing(), ", ")}
	}
	if s.client == nil {
		return ConnectionStatus{Message: "Notion client not initialized"}
	}
	if err := s.client.Ping(ctx, s.cfg.BooksDB); err != nil {
		return ConnectionStatus{Message: err.Error(), Code: notion.CodeOf(err)}
	}
	return ConnectionStatus{Success: true, Message: "Notion connection successful"}
}
