// Package export writes the whole site as static files.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"

	"bookreview/internal/model"
	"bookreview/internal/profile"
	"bookreview/internal/render"
	"bookreview/internal/site"
)

type Options struct {
	OutDir    string
	StaticDir string // copied to OutDir/static when set and present
	Profile   profile.Profile
	Templates *template.Template
}

// snapshot serves one fetch of the books collection to every page of a build.
type snapshot struct {
	site.Fetcher
	books []model.Book
}

func (s snapshot) Books(context.Context) []model.Book {
	return s.books
}

// Build renders every page into opts.OutDir and returns the written paths
// relative to it.
func Build(ctx context.Context, src site.Fetcher, opts Options) ([]string, error) {
	if opts.OutDir == "" {
		return nil, fmt.Errorf("export: no output directory")
	}
	if opts.Templates == nil {
		t, err := render.Templates()
		if err != nil {
			return nil, err
		}
		opts.Templates = t
	}

	b := &builder{out: opts.OutDir, tmpl: opts.Templates}
	snap := snapshot{Fetcher: src, books: src.Books(ctx)}

	listProps := site.ListProps(snap.books)
	b.page("all/index.html", render.ListTemplate, render.NewListView(opts.Profile, listProps, site.SortNewest, ""))

	bookmarks := site.BookmarkProps(src.Bookmarks(ctx), src.Configured())
	b.page("bookmarks/index.html", render.BookmarksTemplate, render.BookmarksView{Profile: opts.Profile, Props: bookmarks})

	for _, path := range site.StaticPaths(snap.books) {
		slugKey := strings.TrimPrefix(path, "/")
		props := site.DetailProps(ctx, snap, slugKey)
		b.page(slugKey+"/index.html", render.DetailTemplate, render.NewDetailView(opts.Profile, props))
	}

	b.page("404.html", render.NotFoundTemplate, render.NotFoundView{Profile: opts.Profile})
	b.json("data/books.json", listProps)

	if b.err == nil && opts.StaticDir != "" {
		b.copyStatic(opts.StaticDir)
	}
	if b.err != nil {
		return b.written, b.err
	}
	log.Printf("[INFO] Exported %d files to %s", len(b.written), opts.OutDir)
	return b.written, nil
}

// builder stops writing after the first error.
type builder struct {
	out     string
	tmpl    *template.Template
	written []string
	err     error
}

func (b *builder) page(rel, name string, data any) {
	if b.err != nil {
		return
	}
	var buf bytes.Buffer
	if err := render.Page(b.tmpl, &buf, name, data); err != nil {
		b.err = err
		return
	}
	b.write(rel, buf.Bytes())
}

func (b *builder) json(rel string, v any) {
	if b.err != nil {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		b.err = fmt.Errorf("failed to encode %s: %w", rel, err)
		return
	}
	b.write(rel, append(data, '\n'))
}

func (b *builder) write(rel string, data []byte) {
	path := filepath.Join(b.out, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		b.err = fmt.Errorf("failed to create directory for %s: %w", rel, err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		b.err = fmt.Errorf("failed to write %s: %w", rel, err)
		return
	}
	b.written = append(b.written, rel)
}

func (b *builder) copyStatic(dir string) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Printf("[WARN] Static directory %s not found, skipping", dir)
		return
	}
	dst := filepath.Join(b.out, "static")
	if err := os.RemoveAll(dst); err != nil {
		b.err = fmt.Errorf("failed to clear %s: %w", dst, err)
		return
	}
	if err := os.CopyFS(dst, os.DirFS(dir)); err != nil {
		b.err = fmt.Errorf("failed to copy static files: %w", err)
		return
	}
	b.written = append(b.written, "static/")
}
