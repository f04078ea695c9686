package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `{
		"about": {"name": "Kholis", "tagline": "Reader", "intro": ["Hi."]},
		"social": [{"name": "GitHub", "url": "https://github.com/x"}, {"name": "Blog", "link": "https://blog.example"}]
	}`)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Kholis", p.About.Name)
	assert.Equal(t, []string{"Hi."}, p.About.Intro)
	require.Len(t, p.Social, 2)
	assert.Equal(t, "https://github.com/x", p.Social[0].Href())
	assert.Equal(t, "https://blog.example", p.Social[1].Href())
}

func TestLoad_FillsBlanks(t *testing.T) {
	p, err := Load(writeFile(t, `{"about": {"tagline": "t"}}`))
	require.NoError(t, err)
	assert.Equal(t, Default().About.Name, p.About.Name)
	assert.NotNil(t, p.Social)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read profile file")

	_, err = Load(writeFile(t, `{not json`))
	assert.ErrorContains(t, err, "failed to parse profile JSON")
}

func TestLoadOrDefault(t *testing.T) {
	assert.Equal(t, Default(), LoadOrDefault(filepath.Join(t.TempDir(), "missing.json")))
}
