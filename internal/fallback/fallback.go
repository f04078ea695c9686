// Package fallback supplies the placeholder data served when the content
// source is unusable, plus helpers to validate collections and to detect
// that a collection is placeholder data.
package fallback

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"bookreview/internal/model"
)

// Identifiers of every record this package hands out.
const (
	SentinelID    = "sample-1"
	ConfigErrorID = "config-error"
	SentinelName  = "Sample Book - Configuration Needed"
)

const placeholderThumbnail = "/static/images/placeholder-book.jpg"

var sampleIDs = func() map[string]bool {
	ids := map[string]bool{ConfigErrorID: true, SentinelID: true}
	for _, b := range SampleBooks() {
		ids[b.ID] = true
	}
	return ids
}()

// PlaceholderImage builds a placeholder service URL of the given size with
// text printed on it.
func PlaceholderImage(width, height int, text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return fmt.Sprintf("https://via.placeholder.com/%dx%d/6366f1/ffffff?text=%s", width, height, escaped)
}

// DefaultPlaceholder is the generic book cover placeholder.
func DefaultPlaceholder() string {
	return PlaceholderImage(300, 450, "Book")
}

func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// FallbackBooks returns the collection substituted for the books database
// when it cannot be read: one sentinel record.
func FallbackBooks() []model.Book {
	ts := nowISO()
	return []model.Book{{
		ID:          SentinelID,
		Name:        SentinelName,
		Author:      "System",
		Status:      model.StatusFinished,
		Date:        ts,
		LastUpdated: ts,
		Rating:      5,
		Thumbnail:   []model.Image{{URL: placeholderThumbnail}},
	}}
}

// SampleBooks returns demo records shaped like real ones.
func SampleBooks() []model.Book {
	return []model.Book{
		{
			ID:          "sample-book-1",
			Name:        "The Pragmatic Programmer",
			Author:      "Sample Author",
			Status:      model.StatusFinished,
			Date:        "2024-01-15",
			LastUpdated: "2024-01-15T10:00:00.000Z",
			Rating:      5,
			Thumbnail:   []model.Image{{URL: PlaceholderImage(300, 450, "Sample+Book+1")}},
		},
		{
			ID:          "sample-book-2",
			Name:        "Clean Code",
			Author:      "Sample Author",
			Status:      model.StatusFinished,
			Date:        "2024-01-10",
			LastUpdated: "2024-01-10T10:00:00.000Z",
			Rating:      4,
			Thumbnail:   []model.Image{{URL: PlaceholderImage(300, 450, "Sample+Book+2")}},
		},
		{
			ID:          "sample-book-3",
			Name:        "Design Patterns",
			Author:      "Sample Author",
			Status:      model.StatusReading,
			Date:        "2024-01-01",
			LastUpdated: "2024-01-20T10:00:00.000Z",
			Rating:      0,
			Thumbnail:   []model.Image{{URL: PlaceholderImage(300, 450, "Sample+Book+3")}},
		},
	}
}

// ConfigErrorBook is a card telling the owner to configure the source.
func ConfigErrorBook() model.Book {
	ts := nowISO()
	return model.Book{
		ID:          ConfigErrorID,
		Name:        "⚙️ Configuration Needed",
		Author:      "System Message",
		Status:      model.StatusFinished,
		Date:        ts,
		LastUpdated: ts,
		Thumbnail:   []model.Image{{URL: PlaceholderImage(300, 450, "Configure+Notion")}},
	}
}

func SampleBookmarks() []model.Bookmark {
	return []model.Bookmark{{
		ID:          "sample-bookmark-1",
		Title:       "Sample Bookmark",
		URL:         "https://example.com",
		Description: "This is sample data. Configure your Notion database to see real bookmarks.",
		Published:   true,
		Date:        nowISO(),
	}}
}

// IsSentinel reports whether books is exactly the FallbackBooks collection.
func IsSentinel(books []model.Book) bool {
	return len(books) == 1 && books[0].ID == SentinelID && books[0].Name == SentinelName
}

// IsUsingFallbackData reports whether books is empty or holds nothing but
// records from this package.
func IsUsingFallbackData(books []model.Book) bool {
	for _, b := range books {
		if !sampleIDs[b.ID] {
			return false
		}
	}
	return true
}

// SafeThumbnailURL returns the first thumbnail URL of b, or a placeholder
// labelled with the start of its name.
func SafeThumbnailURL(b *model.Book) string {
	if b == nil {
		return DefaultPlaceholder()
	}
	if len(b.Thumbnail) > 0 && b.Thumbnail[0].URL != "" {
		return b.Thumbnail[0].URL
	}
	name := b.Name
	if name == "" {
		name = "Book"
	}
	if r := []rune(name); len(r) > 20 {
		name = string(r[:20])
	}
	return PlaceholderImage(300, 450, name)
}

const (
	StateError   = "error"
	StateWarning = "warning"
	StateSuccess = "success"
)

// StateMessage describes how trustworthy a loaded collection is.
type StateMessage struct {
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

func DataState(books []model.Book) StateMessage {
	if len(books) == 0 {
		return StateMessage{
			Type:    StateError,
			Title:   "No Data Available",
			Message: "Unable to load books from Notion. Please check your configuration.",
			Details: []string{
				"Verify NOTION_API_KEY is set correctly",
				"Ensure NOTION_BOOKS database ID is valid",
				"Check that your integration has access to the database",
			},
		}
	}
	if IsUsingFallbackData(books) {
		return StateMessage{
			Type:    StateWarning,
			Title:   "Using Sample Data",
			Message: "Notion database is not configured. Showing sample data.",
			Details: []string{
				"Configure your .env file with valid Notion credentials",
				"Share your Notion databases with the integration",
				"Add books to your Notion database",
			},
		}
	}
	return StateMessage{
		Type:    StateSuccess,
		Title:   "Data Loaded Successfully",
		Message: fmt.Sprintf("Loaded %d books from Notion.", len(books)),
		Details: []string{},
	}
}
