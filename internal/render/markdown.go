// Package render turns review bodies and page props into HTML, and review
// bodies into terminal output.
package render

import (
	"strings"

	"bookreview/internal/model"
)

const mdSpecial = "\\`*_[]()#+-!|~<>"

// escape backslash-escapes markdown punctuation in plain text.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(mdSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func codeSpan(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

// wrap applies a markdown delimiter around the non-space core of s.
func wrap(s, delim string) string {
	core := strings.TrimSpace(s)
	if core == "" {
		return s
	}
	i := strings.Index(s, core)
	return s[:i] + delim + core + delim + s[i+len(core):]
}

// richText renders a rich text array with annotations and links.
func richText(v any) string {
	segments, _ := v.([]any)
	var b strings.Builder
	for _, seg := range segments {
		m, ok := seg.(map[string]any)
		if !ok {
			continue
		}
		text, _ := m["plain_text"].(string)
		if text == "" {
			continue
		}
		ann, _ := m["annotations"].(map[string]any)
		flag := func(name string) bool {
			v, _ := ann[name].(bool)
			return v
		}

		var out string
		if flag("code") {
			out = codeSpan(text)
		} else {
			out = escape(text)
		}
		if flag("bold") {
			out = wrap(out, "**")
		}
		if flag("italic") {
			out = wrap(out, "*")
		}
		if flag("strikethrough") {
			out = wrap(out, "~~")
		}
		if href, _ := m["href"].(string); href != "" {
			out = "[" + out + "](" + destination(href) + ")"
		}
		b.WriteString(out)
	}
	return strings.ReplaceAll(b.String(), "\n", "  \n")
}

func plain(v any) string {
	segments, _ := v.([]any)
	var b strings.Builder
	for _, seg := range segments {
		if m, ok := seg.(map[string]any); ok {
			s, _ := m["plain_text"].(string)
			b.WriteString(s)
		}
	}
	return b.String()
}

func prefixLines(s, prefix string) string {
	lines := strings.Split(strings.ReplaceAll(s, "  \n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

var destEscaper = strings.NewReplacer(
	" ", "%20",
	"(", "%28",
	")", "%29",
	"<", "%3C",
	">", "%3E",
	"\n", "",
	"\r", "",
)

// destination percent-escapes the characters that end a link destination early.
func destination(u string) string {
	return destEscaper.Replace(strings.TrimSpace(u))
}

func mediaURL(v map[string]any) string {
	for _, key := range []string{"file", "external"} {
		if inner, ok := v[key].(map[string]any); ok {
			if u, _ := inner["url"].(string); u != "" {
				return u
			}
		}
	}
	u, _ := v["url"].(string)
	return u
}

var listKinds = map[string]bool{
	"bulleted_list_item": true,
	"numbered_list_item": true,
	"to_do":              true,
}

// block renders one block. ok is false for types that produce no output.
func block(b model.Block) (string, bool) {
	typ := b.Type()
	body, _ := b.Value[typ].(map[string]any)
	text := richText(body["rich_text"])

	switch typ {
	case "paragraph":
		return text, text != ""
	case "heading_1":
		return "# " + text, true
	case "heading_2":
		return "## " + text, true
	case "heading_3":
		return "### " + text, true
	case "bulleted_list_item":
		return "- " + text, true
	case "numbered_list_item":
		return "1. " + text, true
	case "to_do":
		if checked, _ := body["checked"].(bool); checked {
			return "- [x] " + text, true
		}
		return "- [ ] " + text, true
	case "quote":
		return prefixLines(text, "> "), true
	case "callout":
		if icon, ok := body["icon"].(map[string]any); ok {
			if emoji, _ := icon["emoji"].(string); emoji != "" {
				text = emoji + " " + text
			}
		}
		return prefixLines(text, "> "), true
	case "code":
		lang, _ := body["language"].(string)
		if lang == "plain text" {
			lang = ""
		}
		code := plain(body["rich_text"])
		fence := "```"
		for strings.Contains(code, fence) {
			fence += "`"
		}
		return fence + lang + "\n" + code + "\n" + fence, true
	case "divider":
		return "---", true
	case "image":
		u := mediaURL(body)
		if u == "" {
			return "", false
		}
		return "![" + escape(plain(body["caption"])) + "](" + destination(u) + ")", true
	case "bookmark":
		u, _ := body["url"].(string)
		if u == "" {
			return "", false
		}
		label := richText(body["caption"])
		if label == "" {
			label = escape(u)
		}
		return "[" + label + "](" + destination(u) + ")", true
	}
	return "", false
}

// Markdown converts a review body to markdown in block order. Unsupported
// block types are skipped; a nil body yields "".
func Markdown(m *model.BlockMap) string {
	var b strings.Builder
	prev := ""
	for _, blk := range m.Blocks() {
		out, ok := block(blk)
		if !ok {
			continue
		}
		typ := blk.Type()
		if b.Len() > 0 {
			if listKinds[typ] && typ == prev {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(out)
		prev = typ
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}
