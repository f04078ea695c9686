package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"bookreview/internal/fallback"
	"bookreview/internal/model"
	"bookreview/internal/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	books      []model.Book
	bookCalls  int
	pageCalls  []string
	configured bool
}

func (f *fakeSource) Books(context.Context) []model.Book {
	f.bookCalls++
	return f.books
}

func (f *fakeSource) Bookmarks(context.Context) []model.Bookmark {
	return []model.Bookmark{{ID: "bm", Title: "Go", URL: "https://go.dev", Published: true}}
}

func (f *fakeSource) PageBlocks(_ context.Context, id string) *model.BlockMap {
	f.pageCalls = append(f.pageCalls, id)
	return model.NewBlockMap()
}

func (f *fakeSource) Configured() bool {
	return f.configured
}

func read(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	return string(data)
}

func TestBuild(t *testing.T) {
	out := t.TempDir()
	src := &fakeSource{configured: true, books: []model.Book{
		{ID: "1", Name: "Dune", Author: "Frank Herbert", Status: model.StatusFinished, Date: "2024-02-01", Notes: true},
		{ID: "2", Name: "Emma", Author: "Jane Austen", Status: model.StatusFinished, Date: "2024-01-01", Notes: true},
		{ID: "3", Name: "Drafts", Author: "Me", Status: model.StatusFinished, Date: "2024-01-01"},
	}}

	written, err := Build(context.Background(), src, Options{OutDir: out, Profile: profile.Default()})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"all/index.html",
		"bookmarks/index.html",
		"dune/index.html",
		"emma/index.html",
		"404.html",
		"data/books.json",
	}, written)
	assert.Equal(t, 1, src.bookCalls, "one fetch serves every page")
	assert.ElementsMatch(t, []string{"1", "2"}, src.pageCalls)

	assert.Contains(t, read(t, out, "dune/index.html"), "Resensi Buku Dune Karya Frank Herbert")
	assert.Contains(t, read(t, out, "all/index.html"), "Jane Austen")
	assert.Contains(t, read(t, out, "bookmarks/index.html"), "https://go.dev")
	assert.Contains(t, read(t, out, "404.html"), "Page Not Found")

	var props struct {
		AllBooks       []model.Book `json:"allBooks"`
		TotalBookCount int          `json:"totalBookCount"`
	}
	require.NoError(t, json.Unmarshal([]byte(read(t, out, "data/books.json")), &props))
	assert.Equal(t, 3, props.TotalBookCount)
}

func TestBuild_FallbackData(t *testing.T) {
	out := t.TempDir()
	written, err := Build(context.Background(), &fakeSource{books: fallback.FallbackBooks()}, Options{OutDir: out})
	require.NoError(t, err)

	assert.NotContains(t, written, "sample-book-configuration-needed/index.html")
	assert.Contains(t, read(t, out, "all/index.html"), "empty-config")
	assert.Contains(t, read(t, out, "bookmarks/index.html"), "Sample Bookmark")
}

func TestBuild_CopiesStatic(t *testing.T) {
	static := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(static, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(static, "css", "site.css"), []byte("body{}"), 0o644))

	out := t.TempDir()
	_, err := Build(context.Background(), &fakeSource{}, Options{OutDir: out, StaticDir: static})
	require.NoError(t, err)
	assert.Equal(t, "body{}", read(t, out, "static/css/site.css"))

	_, err = Build(context.Background(), &fakeSource{}, Options{OutDir: out, StaticDir: static})
	require.NoError(t, err, "a second build replaces the copied files")
}

func TestBuild_NoOutDir(t *testing.T) {
	_, err := Build(context.Background(), &fakeSource{}, Options{})
	assert.Error(t, err)
}
