// Package handler serves the site pages and the JSON API over gin.
package handler

import (
	"context"
	"html/template"
	"net/http"
	"slices"
	"time"

	"bookreview/internal/model"
	"bookreview/internal/profile"
	"bookreview/internal/render"
	"bookreview/internal/site"

	"github.com/gin-gonic/gin"
)

const (
	listKey      = "list"
	bookmarksKey = "bookmarks"
	detailPrefix = "detail:"
)

// Handler owns the page caches. Every page is rebuilt from the content
// source at most once per revalidation interval.
type Handler struct {
	src       site.Fetcher
	tmpl      *template.Template
	owner     profile.Profile
	lists     *Cache[site.ListPageProps]
	details   *Cache[site.DetailPageProps]
	bookmarks *Cache[site.BookmarkPageProps]
}

func New(src site.Fetcher, tmpl *template.Template, owner profile.Profile, revalidate time.Duration) *Handler {
	return &Handler{
		src:       src,
		tmpl:      tmpl,
		owner:     owner,
		lists:     NewCache[site.ListPageProps](revalidate),
		details:   NewCache[site.DetailPageProps](revalidate),
		bookmarks: NewCache[site.BookmarkPageProps](revalidate),
	}
}

// Cleanup prunes detail pages nobody asked for within threshold.
func (h *Handler) Cleanup(ctx context.Context, period, threshold time.Duration) {
	h.details.Cleanup(ctx, period, threshold)
}

// Routes registers every page and API route on r. api middleware applies
// to the /api group only.
func (h *Handler) Routes(r *gin.Engine, api ...gin.HandlerFunc) {
	r.SetHTMLTemplate(h.tmpl)
	r.Static("/static", "./static")

	r.GET("/health", HandleHealth(h.src))
	r.GET("/ready", HandleReadiness(h.src))

	g := r.Group("/api", api...)
	{
		g.GET("/books", h.HandleGetBooks)
		g.GET("/books/:slug", h.HandleGetBook)
		g.GET("/bookmarks", h.HandleGetBookmarks)
		g.GET("/owner", HandleGetOwner(h.owner))
	}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/all")
	})
	r.GET("/all", h.HandleListPage)
	r.GET("/bookmarks", h.HandleBookmarksPage)
	r.GET("/:slug", h.HandleDetailPage)
	r.NoRoute(h.HandleNotFound)
}

func (h *Handler) listProps(ctx context.Context) site.ListPageProps {
	return h.lists.Get(ctx, listKey, func(ctx context.Context) site.ListPageProps {
		return site.ListProps(h.src.Books(ctx))
	})
}

// detailProps answers slugs outside the cached list's routes with empty props
// and leaves them out of the cache, so unknown paths never reach the source.
func (h *Handler) detailProps(ctx context.Context, slugKey string) site.DetailPageProps {
	paths := site.StaticPaths(h.listProps(ctx).AllBooks)
	if !slices.Contains(paths, "/"+slugKey) {
		return site.DetailPageProps{MoreBooks: []model.Book{}}
	}
	return h.details.Get(ctx, detailPrefix+slugKey, func(ctx context.Context) site.DetailPageProps {
		return site.DetailProps(ctx, h.src, slugKey)
	})
}

func (h *Handler) bookmarkProps(ctx context.Context) site.BookmarkPageProps {
	return h.bookmarks.Get(ctx, bookmarksKey, func(ctx context.Context) site.BookmarkPageProps {
		return site.BookmarkProps(h.src.Bookmarks(ctx), h.src.Configured())
	})
}

func (h *Handler) HandleListPage(c *gin.Context) {
	props := h.listProps(c.Request.Context())
	c.HTML(http.StatusOK, render.ListTemplate, render.NewListView(h.owner, props, c.Query("sort"), c.Query("q")))
}

func (h *Handler) HandleDetailPage(c *gin.Context) {
	props := h.detailProps(c.Request.Context(), c.Param("slug"))
	status := http.StatusOK
	if props.Book == nil {
		status = http.StatusNotFound
	}
	c.HTML(status, render.DetailTemplate, render.NewDetailView(h.owner, props))
}

func (h *Handler) HandleBookmarksPage(c *gin.Context) {
	props := h.bookmarkProps(c.Request.Context())
	c.HTML(http.StatusOK, render.BookmarksTemplate, render.BookmarksView{Profile: h.owner, Props: props})
}

func (h *Handler) HandleNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, render.NotFoundTemplate, render.NotFoundView{Profile: h.owner})
}
