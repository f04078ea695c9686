package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"bookreview/internal/fallback"
	"bookreview/internal/model"
	"bookreview/internal/profile"
	"bookreview/internal/render"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSource struct {
	mu         sync.Mutex
	books      []model.Book
	bookmarks  []model.Bookmark
	configured bool
	bookCalls  int
}

func (f *fakeSource) Books(context.Context) []model.Book {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookCalls++
	return f.books
}

func (f *fakeSource) Bookmarks(context.Context) []model.Bookmark {
	return f.bookmarks
}

func (f *fakeSource) PageBlocks(_ context.Context, id string) *model.BlockMap {
	m := model.NewBlockMap()
	m.Set(id+"-p", map[string]any{"type": "paragraph", "paragraph": map[string]any{
		"rich_text": []any{map[string]any{"plain_text": "Review of " + id}},
	}})
	return m
}

func (f *fakeSource) Configured() bool {
	return f.configured
}

func (f *fakeSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookCalls
}

var owner = profile.Profile{
	About:  profile.About{Name: "Reader", Tagline: "Reviews"},
	Social: []profile.SocialLink{{Name: "Blog", Link: "https://blog.example"}},
}

func configuredSource() *fakeSource {
	return &fakeSource{
		configured: true,
		books: []model.Book{
			{ID: "dune", Name: "Dune", Author: "Frank Herbert", Status: model.StatusFinished, Date: "2024-02-01", Notes: true, Rating: 5},
			{ID: "emma", Name: "Emma", Author: "Jane Austen", Status: model.StatusFinished, Date: "2024-01-01", Notes: true, Rating: 4},
			{ID: "now", Name: "Now Reading", Author: "Someone", Status: model.StatusReading, Date: "2024-03-01"},
		},
		bookmarks: []model.Bookmark{{ID: "bm", Title: "Go", URL: "https://go.dev", Published: true, Date: "2024-01-01"}},
	}
}

func newTestRouter(t *testing.T, src *fakeSource) *gin.Engine {
	t.Helper()
	tmpl, err := render.Templates()
	require.NoError(t, err)
	r := gin.New()
	New(src, tmpl, owner, time.Minute).Routes(r)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRootRedirects(t *testing.T) {
	w := get(newTestRouter(t, configuredSource()), "/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/all", w.Header().Get("Location"))
}

func TestListPage(t *testing.T) {
	src := configuredSource()
	r := newTestRouter(t, src)

	w := get(r, "/all")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Frank Herbert")
	assert.Contains(t, w.Body.String(), `href="/dune"`)
	assert.NotContains(t, w.Body.String(), "Now Reading")

	w = get(r, "/all?sort=Rating&q=austen")
	assert.Contains(t, w.Body.String(), "Jane Austen")
	assert.NotContains(t, w.Body.String(), "Frank Herbert")

	assert.Equal(t, 1, src.calls(), "list props are cached within the interval")
}

func TestListPage_Unconfigured(t *testing.T) {
	src := &fakeSource{books: fallback.FallbackBooks()}
	w := get(newTestRouter(t, src), "/all")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "empty-config")
}

func TestDetailPage(t *testing.T) {
	r := newTestRouter(t, configuredSource())

	w := get(r, "/dune")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Review of dune")
	assert.Contains(t, w.Body.String(), `href="/emma"`)

	w = get(r, "/no-such-book")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Book Not Found")
}

func TestDetailPage_UnknownSlugsStayLocal(t *testing.T) {
	src := configuredSource()
	tmpl, err := render.Templates()
	require.NoError(t, err)
	h := New(src, tmpl, owner, time.Minute)
	r := gin.New()
	h.Routes(r)

	for _, path := range []string{"/aaaa", "/aaab", "/now-reading", "/api/books/aaac"} {
		assert.Equal(t, http.StatusNotFound, get(r, path).Code, path)
	}
	assert.Equal(t, 1, src.calls(), "only the list load reads the source")
	assert.Equal(t, 0, size(h.details))

	assert.Equal(t, http.StatusOK, get(r, "/dune").Code)
	assert.Equal(t, 1, size(h.details))
	assert.Equal(t, 2, src.calls())
}

func TestBookmarksPage(t *testing.T) {
	w := get(newTestRouter(t, configuredSource()), "/bookmarks")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://go.dev")
}

func TestNoRoute(t *testing.T) {
	w := get(newTestRouter(t, configuredSource()), "/a/b/c")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page Not Found")
}

func TestAPIBooks(t *testing.T) {
	r := newTestRouter(t, configuredSource())

	var body struct {
		Books          []model.BookResponse `json:"books"`
		HasConfigError bool                 `json:"hasConfigError"`
		TotalBookCount int                  `json:"totalBookCount"`
	}
	w := get(r, "/api/books")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Books, 3)
	assert.Equal(t, 3, body.TotalBookCount)
	assert.Equal(t, "dune", body.Books[0].Slug)
	assert.False(t, body.HasConfigError)

	w = get(r, "/api/books?status=Reading")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Books, 1)
	assert.Equal(t, "now", body.Books[0].ID)
}

func TestAPIBook(t *testing.T) {
	r := newTestRouter(t, configuredSource())

	w := get(r, "/api/books/emma")
	require.Equal(t, http.StatusOK, w.Code)
	var props struct {
		Book      model.Book     `json:"book"`
		Page      map[string]any `json:"page"`
		MoreBooks []model.Book   `json:"moreBooks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &props))
	assert.Equal(t, "Emma", props.Book.Name)
	assert.Contains(t, props.Page, "emma-p")
	require.Len(t, props.MoreBooks, 2)
	assert.Equal(t, "dune", props.MoreBooks[0].ID)
	assert.Equal(t, "emma", props.MoreBooks[1].ID)

	w = get(r, "/api/books/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Book not found"}`, w.Body.String())
}

func TestAPIBookmarksAndOwner(t *testing.T) {
	r := newTestRouter(t, configuredSource())

	w := get(r, "/api/bookmarks")
	assert.JSONEq(t, `{"bookmarks":[{"id":"bm","title":"Go","url":"https://go.dev","description":"","published":true,"date":"2024-01-01"}],"usingSample":false}`, w.Body.String())

	w = get(r, "/api/owner")
	assert.JSONEq(t, `{"name":"Reader","tagline":"Reviews","social":[{"name":"Blog","url":"https://blog.example"}]}`, w.Body.String())
}

func TestHealthAndReady(t *testing.T) {
	r := newTestRouter(t, configuredSource())

	var health HealthResponse
	w := get(r, "/health")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, http.StatusOK, get(r, "/ready").Code)

	r = newTestRouter(t, &fakeSource{})
	w = get(r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "unconfigured", health.Content)

	w = get(r, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"not_ready","reason":"content_source_not_configured"}`, w.Body.String())
}
