package handler

import (
	"net/http"

	"bookreview/internal/profile"

	"github.com/gin-gonic/gin"
)

type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type OwnerInfo struct {
	Name    string       `json:"name"`
	Tagline string       `json:"tagline"`
	Social  []SocialLink `json:"social,omitempty"`
}

func ownerInfo(p profile.Profile) OwnerInfo {
	social := make([]SocialLink, 0, len(p.Social))
	for _, s := range p.Social {
		social = append(social, SocialLink{
			Name: s.Name,
			URL:  s.Href(),
		})
	}
	return OwnerInfo{
		Name:    p.About.Name,
		Tagline: p.About.Tagline,
		Social:  social,
	}
}

func HandleGetOwner(p profile.Profile) gin.HandlerFunc {
	info := ownerInfo(p)
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	}
}
