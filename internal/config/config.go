package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyAPIKey        = "NOTION_API_KEY"
	KeyBooksDB       = "NOTION_BOOKS"
	KeyBookmarksDB   = "NOTION_BOOKMARKS"
	KeyBaseURL       = "NOTION_BASE_URL"
	KeyVersion       = "NOTION_VERSION"
	KeyRPS           = "NOTION_RPS"
	KeyPort          = "PORT"
	KeyEnv           = "ENV"
	KeyRevalidate    = "REVALIDATE_SECONDS"
	KeyAllowedOrigin = "ALLOWED_ORIGINS"
	KeyProfilePath   = "PROFILE_PATH"
	KeyOutDir        = "OUT_DIR"
)

// DefaultRevalidate is how long generated page props stay fresh.
const DefaultRevalidate = 10 * time.Second

type Config struct {
	APIKey         string
	BooksDB        string
	BookmarksDB    string
	BaseURL        string
	APIVersion     string
	RequestsPerSec float64
	Port           string
	Env            string
	Revalidate     time.Duration
	AllowedOrigins []string
	ProfilePath    string
	OutDir         string
}

// LoadEnvFiles reads .env and .env.local. Variables already present in the
// process environment win.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// New returns a viper instance wired to the environment with defaults.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBaseURL, "https://api.notion.com/v1")
	v.SetDefault(KeyVersion, "2022-06-28")
	v.SetDefault(KeyRPS, 3)
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyRevalidate, int(DefaultRevalidate/time.Second))
	v.SetDefault(KeyProfilePath, "data/profile.json")
	v.SetDefault(KeyOutDir, "dist")
	for _, key := range []string{KeyAPIKey, KeyBooksDB, KeyBookmarksDB, KeyEnv, KeyAllowedOrigin} {
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()
	return v
}

// Load builds a Config from v.
func Load(v *viper.Viper) Config {
	revalidate := time.Duration(v.GetInt(KeyRevalidate)) * time.Second
	if revalidate <= 0 {
		revalidate = DefaultRevalidate
	}
	rps := v.GetFloat64(KeyRPS)
	if rps <= 0 {
		rps = 3
	}

	return Config{
		APIKey:         strings.TrimSpace(v.GetString(KeyAPIKey)),
		BooksDB:        strings.TrimSpace(v.GetString(KeyBooksDB)),
		BookmarksDB:    strings.TrimSpace(v.GetString(KeyBookmarksDB)),
		BaseURL:        strings.TrimRight(v.GetString(KeyBaseURL), "/"),
		APIVersion:     v.GetString(KeyVersion),
		RequestsPerSec: rps,
		Port:           v.GetString(KeyPort),
		Env:            v.GetString(KeyEnv),
		Revalidate:     revalidate,
		AllowedOrigins: splitList(v.GetString(KeyAllowedOrigin)),
		ProfilePath:    v.GetString(KeyProfilePath),
		OutDir:         v.GetString(KeyOutDir),
	}
}

// Missing lists the required keys that are not set.
func (c Config) Missing() []string {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, KeyAPIKey)
	}
	if c.BooksDB == "" {
		missing = append(missing, KeyBooksDB)
	}
	if c.BookmarksDB == "" {
		missing = append(missing, KeyBookmarksDB)
	}
	return missing
}

// Configured reports whether every required key is present.
func (c Config) Configured() bool {
	return len(c.Missing()) == 0
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
