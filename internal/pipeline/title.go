package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// headingAtoms lists the elements considered when deriving a title.
var headingAtoms = map[atom.Atom]bool{
	atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true,
}

// ExtractTitle returns the text of the first heading in an HTML body,
// with whitespace collapsed. Markup inside the heading (marks, emphasis,
// links) contributes its text only. Returns "" if there is no heading.
func ExtractTitle(body string) string {
	z := html.NewTokenizer(strings.NewReader(body))

	depth := 0
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapseSpace(sb.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if headingAtoms[atom.Lookup(name)] {
				depth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if depth > 0 && headingAtoms[atom.Lookup(name)] {
				if title := collapseSpace(sb.String()); title != "" {
					return title
				}
				depth--
			}
		case html.TextToken:
			if depth > 0 {
				sb.Write(z.Text())
			}
		}
	}
}

// collapseSpace trims s and folds internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
