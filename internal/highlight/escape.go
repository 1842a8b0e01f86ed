package highlight

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder delimiters live in the Unicode Private Use Area. They are
// stripped from the input before protection so authored text cannot forge
// a token.
const (
	placeholderOpen  = "\uE000"
	placeholderClose = "\uE001"
	tagMarker        = "T"
	entityMarker     = "E"
)

var (
	// allowedTag matches the tags renderInline generates.
	allowedTag = regexp.MustCompile(`</?(?:strong|em|code)>|<a href="([^"<>]*)">|</a>`)

	// protectedEntity matches well-formed character references, named,
	// decimal or hex. Authored references are emitted as written.
	protectedEntity = regexp.MustCompile(`&(?:[A-Za-z][A-Za-z0-9]{1,31}|#[0-9]{1,7}|#[xX][0-9A-Fa-f]{1,6});`)

	scriptScheme   = regexp.MustCompile(`(?i)(javascript|vbscript):`)
	dataHTMLScheme = regexp.MustCompile(`(?i)(data):(text/html)`)
	eventHandler   = regexp.MustCompile(`(?i)\b(on\w+\s*)=`)
	dangerousTag   = regexp.MustCompile(`(?i)<(/?(?:script|iframe|object|embed))`)

	placeholderToken = regexp.MustCompile(placeholderOpen + `([` + tagMarker + entityMarker + `])(\d+)` + placeholderClose)
)

var baseEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// escapeFragment makes a rendered fragment safe to emit as raw markup.
// Only strong, em, code and a (with a safe href) stay live; everything else
// is entity-escaped, and authored entities are not escaped twice.
func escapeFragment(fragment string) string {
	fragment = strings.NewReplacer(placeholderOpen, "", placeholderClose, "").Replace(fragment)

	var tags, entities []string

	out := allowedTag.ReplaceAllStringFunc(fragment, func(tag string) string {
		tags = append(tags, sanitizeAnchor(tag))
		return placeholder(tagMarker, len(tags)-1)
	})

	out = protectedEntity.ReplaceAllStringFunc(out, func(ref string) string {
		entities = append(entities, ref)
		return placeholder(entityMarker, len(entities)-1)
	})

	out = baseEscaper.Replace(out)

	out = scriptScheme.ReplaceAllString(out, "${1}&colon;")
	out = dataHTMLScheme.ReplaceAllString(out, "${1}&colon;${2}")
	out = eventHandler.ReplaceAllString(out, "${1}&equals;")

	out = dangerousTag.ReplaceAllString(out, "&lt;${1}")

	out = restorePlaceholders(out, entityMarker, entities)
	out = restorePlaceholders(out, tagMarker, tags)
	return out
}

// sanitizeAnchor rewrites a dangerous href on an opening anchor tag.
func sanitizeAnchor(tag string) string {
	m := allowedTag.FindStringSubmatch(tag)
	if m == nil || !strings.HasPrefix(tag, "<a ") {
		return tag
	}
	if IsDangerousURL(decodeString(m[1])) {
		return `<a href="#">`
	}
	return tag
}

func placeholder(marker string, i int) string {
	return placeholderOpen + marker + strconv.Itoa(i) + placeholderClose
}

func restorePlaceholders(s, marker string, saved []string) string {
	if len(saved) == 0 {
		return s
	}
	return placeholderToken.ReplaceAllStringFunc(s, func(tok string) string {
		m := placeholderToken.FindStringSubmatch(tok)
		if m[1] != marker {
			return tok
		}
		i, err := strconv.Atoi(m[2])
		if err != nil || i >= len(saved) {
			return tok
		}
		return saved[i]
	})
}
