package transform

import (
	"math"
	"strings"
)

// kind names the property shape a field is read from.
type kind int

const (
	kindTitle kind = iota
	kindRichText
	kindSelect
	kindDate
	kindNumber
	kindCheckbox
	kindURL
	kindFiles
	kindLastEdited
)

// field lists the property keys tried for one target field, in priority order.
type field struct {
	keys []string
	kind kind
}

var bookSchema = struct {
	Name, Author, Status, Date, LastUpdated, Rating, Notes, Link, Thumbnail field
}{
	Name:        field{keys: []string{"name", "Name"}, kind: kindTitle},
	Author:      field{keys: []string{"author", "Author"}, kind: kindRichText},
	Status:      field{keys: []string{"status", "Status"}, kind: kindSelect},
	Date:        field{keys: []string{"date", "Date"}, kind: kindDate},
	LastUpdated: field{keys: []string{"last_updated", "Last_updated"}, kind: kindLastEdited},
	Rating:      field{keys: []string{"rating", "Rating"}, kind: kindNumber},
	Notes:       field{keys: []string{"notes", "Notes"}, kind: kindCheckbox},
	Link:        field{keys: []string{"link", "Link"}, kind: kindURL},
	Thumbnail:   field{keys: []string{"thumbnail", "Thumbnail"}, kind: kindFiles},
}

var bookmarkSchema = struct {
	Title, URL, Description, Published, Date field
}{
	Title:       field{keys: []string{"title", "Title"}, kind: kindTitle},
	URL:         field{keys: []string{"url", "URL"}, kind: kindURL},
	Description: field{keys: []string{"description", "Description"}, kind: kindRichText},
	Published:   field{keys: []string{"published", "Published"}, kind: kindCheckbox},
	Date:        field{keys: []string{"date", "Date"}, kind: kindDate},
}

// Defaults for absent fields.
const (
	DefaultName          = "Untitled"
	DefaultAuthor        = "Unknown"
	DefaultStatus        = "Unknown"
	PlaceholderThumbnail = "/static/images/placeholder-book.jpg"
)

type props map[string]any

// text resolves a string-valued field. Empty strings fall through to the next key.
func (p props) text(f field) (string, bool) {
	for _, key := range f.keys {
		prop, ok := p[key].(map[string]any)
		if !ok {
			continue
		}
		var s string
		switch f.kind {
		case kindTitle:
			s = plainText(prop["title"])
		case kindRichText:
			s = plainText(prop["rich_text"])
		case kindSelect:
			if sel, ok := prop["select"].(map[string]any); ok {
				s, _ = sel["name"].(string)
			}
		case kindDate:
			if d, ok := prop["date"].(map[string]any); ok {
				s, _ = d["start"].(string)
			}
		case kindURL:
			s, _ = prop["url"].(string)
		case kindLastEdited:
			s, _ = prop["last_edited_time"].(string)
		}
		if s != "" {
			return s, true
		}
	}
	return "", false
}

// number resolves a numeric field. Zero falls through.
func (p props) number(f field) (float64, bool) {
	for _, key := range f.keys {
		prop, ok := p[key].(map[string]any)
		if !ok {
			continue
		}
		if n, ok := prop["number"].(float64); ok && n != 0 && !math.IsNaN(n) {
			return n, true
		}
	}
	return 0, false
}

// checkbox resolves a boolean field. false falls through.
func (p props) checkbox(f field) bool {
	for _, key := range f.keys {
		prop, ok := p[key].(map[string]any)
		if !ok {
			continue
		}
		if v, ok := prop["checkbox"].(bool); ok && v {
			return true
		}
	}
	return false
}

// files resolves a files field to its URLs. An empty list falls through.
func (p props) files(f field) ([]string, bool) {
	for _, key := range f.keys {
		prop, ok := p[key].(map[string]any)
		if !ok {
			continue
		}
		list, _ := prop["files"].([]any)
		var urls []string
		for _, item := range list {
			if u := fileURL(item); u != "" {
				urls = append(urls, u)
			}
		}
		if len(urls) > 0 {
			return urls, true
		}
	}
	return nil, false
}

// plainText joins the plain_text of every rich text segment.
func plainText(v any) string {
	segments, ok := v.([]any)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, seg := range segments {
		m, ok := seg.(map[string]any)
		if !ok {
			continue
		}
		if s, ok := m["plain_text"].(string); ok {
			b.WriteString(s)
		}
	}
	return strings.TrimSpace(b.String())
}

func fileURL(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	for _, nested := range []string{"file", "external"} {
		if inner, ok := m[nested].(map[string]any); ok {
			if u, ok := inner["url"].(string); ok && u != "" {
				return u
			}
		}
	}
	u, _ := m["url"].(string)
	return u
}
