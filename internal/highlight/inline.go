package highlight

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Inline patterns. Captured groups exclude their own delimiters so matching
// stays linear and markers are never shared between two replacements.
var (
	boldStars       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldUnderscores = regexp.MustCompile(`__([^_]+)__`)
	italicStar      = regexp.MustCompile(`\*([^*]+)\*`)
	italicUnderline = regexp.MustCompile(`_([^_]+)_`)
	inlineCode      = regexp.MustCompile("`([^`]+)`")

	// [text](url), where url may hold one level of balanced parentheses.
	inlineLink = regexp.MustCompile(`\[([^\]]+)\]\(((?:[^()]|\([^()]*\))+)\)`)
)

// unsafeRunes removes characters that have no business in rendered text.
var unsafeRunes = runes.Remove(runes.Predicate(isUnsafeRune))

func isUnsafeRune(r rune) bool {
	switch {
	case r < 0x20:
		return r != '\t' && r != '\n' && r != '\r'
	case r == 0x7f:
		return true
	case r >= 0x200b && r <= 0x200d, r == 0xfeff:
		return true
	case r >= 0xfdd0 && r <= 0xfdef, r == 0xfffe, r == 0xffff:
		return true
	}
	return false
}

// renderInline rewrites the restricted inline grammar inside a span into
// HTML tags. The result is not yet safe and must go through escapeFragment.
func renderInline(s string) string {
	s = stripUnsafe(s)
	s = boldStars.ReplaceAllString(s, "<strong>${1}</strong>")
	s = boldUnderscores.ReplaceAllString(s, "<strong>${1}</strong>")
	s = italicStar.ReplaceAllString(s, "<em>${1}</em>")
	s = italicUnderline.ReplaceAllString(s, "<em>${1}</em>")
	s = inlineCode.ReplaceAllString(s, "<code>${1}</code>")
	s = inlineLink.ReplaceAllStringFunc(s, renderLink)
	return s
}

// stripUnsafe drops invalid UTF-8 and the runes rejected by isUnsafeRune.
func stripUnsafe(s string) string {
	s = strings.ToValidUTF8(s, "")
	out, _, err := transform.String(unsafeRunes, s)
	if err != nil {
		return s
	}
	return out
}

func renderLink(match string) string {
	m := inlineLink.FindStringSubmatch(match)
	if m == nil {
		return match
	}
	return `<a href="` + linkHref(m[2]) + `">` + m[1] + `</a>`
}

// linkHref returns an attribute-safe href for url, or "#" when the scheme
// is dangerous. Authored entities are decoded first so they are not
// escaped twice.
func linkHref(url string) string {
	url = strings.TrimSpace(decodeString(url))
	if url == "" || IsDangerousURL(url) {
		return "#"
	}
	return html.EscapeString(url)
}
