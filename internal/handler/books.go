package handler

import (
	"net/http"

	"bookreview/internal/model"
	"bookreview/internal/site"

	"github.com/gin-gonic/gin"
)

func toResponses(books []model.Book) []model.BookResponse {
	responses := make([]model.BookResponse, len(books))
	for i := range books {
		responses[i] = books[i].ToResponse()
		responses[i].Slug = site.SlugOf(books[i])
	}
	return responses
}

// HandleGetBooks lists every book. ?status= keeps one status only.
func (h *Handler) HandleGetBooks(c *gin.Context) {
	props := h.listProps(c.Request.Context())

	books := props.AllBooks
	if status := c.Query("status"); status != "" {
		filtered := make([]model.Book, 0, len(books))
		for _, b := range books {
			if b.Status == status {
				filtered = append(filtered, b)
			}
		}
		books = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"books":          toResponses(books),
		"hasConfigError": props.HasConfigError,
		"errorMessage":   props.ErrorMessage,
		"totalBookCount": props.TotalBookCount,
	})
}

func (h *Handler) HandleGetBook(c *gin.Context) {
	props := h.detailProps(c.Request.Context(), c.Param("slug"))
	if props.Book == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}
	c.JSON(http.StatusOK, props)
}

func (h *Handler) HandleGetBookmarks(c *gin.Context) {
	c.JSON(http.StatusOK, h.bookmarkProps(c.Request.Context()))
}
