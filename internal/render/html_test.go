package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	m := blocks(
		b("1", "heading_2", textBody(seg("Notes"))),
		b("2", "paragraph", textBody(seg("Hello "), seg("world", "bold"), seg(" <script>alert(1)</script>"))),
		b("3", "to_do", map[string]any{"rich_text": []any{seg("todo")}}),
	)

	out := string(HTML(m))

	assert.Contains(t, out, "<h2>Notes</h2>")
	assert.Contains(t, out, "<strong>world</strong>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `type="checkbox"`)
}

func TestHTML_Nil(t *testing.T) {
	assert.Empty(t, HTML(nil))
}

func TestTerminal(t *testing.T) {
	m := blocks(b("1", "paragraph", textBody(seg("Hello terminal"))))

	out, err := Terminal(m, 60, "notty")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello terminal")
}

func TestHTML_LinkWithParentheses(t *testing.T) {
	m := blocks(b("1", "paragraph", textBody(link("wiki", "https://en.wikipedia.org/wiki/Dune_(novel)"))))
	assert.Contains(t, string(HTML(m)), `<a href="https://en.wikipedia.org/wiki/Dune_%28novel%29">wiki</a>`)
}
