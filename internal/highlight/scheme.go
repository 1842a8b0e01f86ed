package highlight

import (
	"regexp"
	"strings"
)

// dangerousScheme matches URLs that must never become a live href.
var dangerousScheme = regexp.MustCompile(`(?i)^(?:javascript|data|vbscript):`)

// IsDangerousURL reports whether url starts with a javascript:, data: or
// vbscript: scheme. ASCII whitespace and control characters are removed
// before matching since browsers ignore them inside a scheme.
func IsDangerousURL(url string) bool {
	return dangerousScheme.MatchString(stripSchemeNoise(url))
}

func stripSchemeNoise(url string) string {
	return strings.Map(func(r rune) rune {
		if r <= 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, url)
}
