// Package profile loads the site owner's details shown in page headers.
package profile

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

type Profile struct {
	About  About        `json:"about"`
	Social []SocialLink `json:"social"`
}

type About struct {
	Name    string   `json:"name"`
	Tagline string   `json:"tagline"`
	Intro   []string `json:"intro"`
}

type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Link string `json:"link"`
}

// Href returns the link target, preferring URL.
func (s SocialLink) Href() string {
	if s.URL != "" {
		return s.URL
	}
	return s.Link
}

// Default is used when no profile file is available.
func Default() Profile {
	return Profile{
		About: About{
			Name:    "Book Reviews",
			Tagline: "Notes and reviews of the books I have read.",
		},
		Social: []SocialLink{},
	}
}

func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile file: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	if p.About.Name == "" {
		p.About.Name = Default().About.Name
	}
	if p.Social == nil {
		p.Social = []SocialLink{}
	}
	return p, nil
}

// LoadOrDefault loads path, falling back to Default with a warning.
func LoadOrDefault(path string) Profile {
	p, err := Load(path)
	if err != nil {
		log.Printf("[WARN] Using default profile: %v", err)
		return Default()
	}
	return p
}
