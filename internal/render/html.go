package render

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"bookreview/internal/model"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders a review body. Raw HTML inside the source text is not passed
// through. A nil body yields "".
func HTML(m *model.BlockMap) template.HTML {
	if m == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(m)), &buf); err != nil {
		log.Printf("[ERROR] Rendering review body: %v", err)
		return ""
	}
	return template.HTML(buf.String())
}

// Terminal renders a review body for a terminal of the given width. An empty
// style picks one from the terminal background.
func Terminal(m *model.BlockMap, width int, style string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	out, err := r.Render(Markdown(m))
	if err != nil {
		return "", fmt.Errorf("failed to render review: %w", err)
	}
	return out, nil
}
