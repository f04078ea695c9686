package model

type Bookmark struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
	Date        string `json:"date"`
}
