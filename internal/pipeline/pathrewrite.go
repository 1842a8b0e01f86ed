package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrInvalidBaseURL indicates the base URL cannot anchor relative links.
var ErrInvalidBaseURL = errors.New("invalid base URL")

// RewriteRelativeURLs resolves relative image and link URLs against baseURL.
// If baseURL is empty, returns the HTML unchanged.
//
// Rewrites:
//   - img[src]: relative image references
//   - a[href]: relative links (not anchors, not URLs with a scheme)
//
// Does NOT rewrite:
//   - srcset attributes
//   - CSS url() references
//   - Absolute or protocol-relative URLs
func RewriteRelativeURLs(htmlContent, baseURL string) (string, error) {
	if baseURL == "" {
		return htmlContent, nil
	}

	base, err := ParseBaseURL(baseURL)
	if err != nil {
		return "", err
	}

	// Parse HTML - detect if full document or fragment
	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, base)

	return renderHTML(doc, isFragment)
}

// ParseBaseURL parses and validates a base URL.
// Only absolute http, https and file URLs are accepted.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return nil, fmt.Errorf("%w: %q has no host", ErrInvalidBaseURL, raw)
		}
	case "file":
	default:
		return nil, fmt.Errorf("%w: %q must use http, https or file", ErrInvalidBaseURL, raw)
	}

	// Resolve "docs/guide" + "img.png" as "docs/guide/img.png"
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteNode traverses the DOM and resolves relative URLs.
func rewriteNode(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", base)
		case atom.A:
			rewriteAttr(n, "href", base)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, base)
	}
}

// rewriteAttr rewrites a single attribute if it holds a relative URL.
func rewriteAttr(n *html.Node, attrName string, base *url.URL) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativeURL(attr.Val) {
			continue
		}
		ref, err := url.Parse(attr.Val)
		if err != nil {
			continue // Leave malformed references as authored
		}
		n.Attr[i].Val = base.ResolveReference(ref).String()
	}
}

// isRelativeURL returns true if the reference should be resolved.
func isRelativeURL(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}

	// Skip anchors, absolute paths and protocol-relative URLs
	if strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "/") {
		return false
	}

	// Skip anything with a scheme (http:, mailto:, data:, ...)
	if u, err := url.Parse(ref); err != nil || u.Scheme != "" {
		return false
	}

	return true
}
