package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"bookreview/internal/fallback"
	"bookreview/internal/model"
	"bookreview/internal/profile"
	"bookreview/internal/site"
	"bookreview/internal/slug"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	ListTemplate      = "list.html"
	DetailTemplate    = "detail.html"
	BookmarksTemplate = "bookmarks.html"
	NotFoundTemplate  = "notfound.html"
)

var Funcs = template.FuncMap{
	"formatDate": FormatDate,
	"thumb":      thumb,
	"slug":       slug.Make,
	"bookPath":   BookPath,
	"stars":      Stars,
}

func thumb(b model.Book) string {
	return fallback.SafeThumbnailURL(&b)
}

// Stars prints a 0-5 rating as filled and empty stars.
func Stars(n int) string {
	n = max(0, min(n, 5))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	t, err := template.New("").Funcs(Funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return t, nil
}

// MustTemplates is Templates for program start-up.
func MustTemplates() *template.Template {
	t, err := Templates()
	if err != nil {
		panic(err)
	}
	return t
}

// FormatDate prints a source date as "2 January 2006"; unparsable dates are
// returned unchanged.
func FormatDate(s string) string {
	t := model.ParseDate(s)
	if t.IsZero() {
		return s
	}
	return t.Format("2 January 2006")
}

func BookPath(b model.Book) string {
	return "/" + site.SlugOf(b)
}

// ListView is the data of the collection page.
type ListView struct {
	Profile     profile.Profile
	Props       site.ListPageProps
	Books       []model.Book
	Sort        string
	Query       string
	SortOptions []string
	Empty       *site.EmptyState
	Notice      *model.Book // card shown in place of the grid when unconfigured
}

func NewListView(p profile.Profile, props site.ListPageProps, sortKey, query string) ListView {
	if sortKey == "" {
		sortKey = site.SortNewest
	}
	books := site.FilterAndSort(props.FinishedBooks, sortKey, query)
	v := ListView{
		Profile:     p,
		Props:       props,
		Books:       books,
		Sort:        sortKey,
		Query:       query,
		SortOptions: site.SortOptions,
		Empty:       site.Empty(props, query, len(books)),
	}
	if v.Empty != nil && v.Empty.Kind == site.EmptyConfig {
		notice := fallback.ConfigErrorBook()
		v.Notice = &notice
	}
	return v
}

// DetailView is the data of a review page.
type DetailView struct {
	Profile profile.Profile
	Props   site.DetailPageProps
	Body    template.HTML
	Title   string
	Summary string
	Image   string
}

func NewDetailView(p profile.Profile, props site.DetailPageProps) DetailView {
	v := DetailView{Profile: p, Props: props, Body: HTML(props.Page)}
	if b := props.Book; b != nil {
		v.Title = fmt.Sprintf("Resensi Buku %s Karya %s", b.Name, b.Author)
		v.Summary = fmt.Sprintf("Catatan dan ulasan dari buku %s karya %s", b.Name, b.Author)
		v.Image = fallback.SafeThumbnailURL(b)
	}
	return v
}

type BookmarksView struct {
	Profile profile.Profile
	Props   site.BookmarkPageProps
}

type NotFoundView struct {
	Profile profile.Profile
}

// Page executes the named template into w.
func Page(t *template.Template, w io.Writer, name string, data any) error {
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

func (v ListView) PageTitle() string {
	return "Koleksi Buku - " + v.Profile.About.Name
}

func (v ListView) Description() string {
	return "Halaman ini berisi resensi, catatan, dan ulasan terhadap buku yang sudah saya baca."
}

func (v DetailView) PageTitle() string {
	if v.Title == "" {
		return "Book Not Found"
	}
	return v.Title
}

func (v DetailView) Description() string {
	if v.Summary == "" {
		return "The requested book could not be found"
	}
	return v.Summary
}

func (v BookmarksView) PageTitle() string {
	return "Bookmarks - " + v.Profile.About.Name
}

func (v BookmarksView) Description() string {
	return v.Profile.About.Tagline
}

func (v NotFoundView) PageTitle() string {
	return "Page Not Found"
}

func (v NotFoundView) Description() string {
	return v.Profile.About.Tagline
}
