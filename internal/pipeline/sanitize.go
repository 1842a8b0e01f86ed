package pipeline

import (
	"context"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer defines the contract for sanitizing a rendered HTML body.
type HTMLSanitizer interface {
	Sanitize(ctx context.Context, body string) string
}

// PolicySanitizer sanitizes rendered HTML with a bluemonday policy.
// Use it when the Markdown source is not trusted; the highlight pass only
// guarantees safety of the marks it generates.
type PolicySanitizer struct {
	policy *bluemonday.Policy
}

// NewPolicySanitizer creates a PolicySanitizer based on bluemonday's UGC
// policy, extended with what the renderer emits: highlight marks, chroma
// classes and heading IDs.
func NewPolicySanitizer() *PolicySanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowElements("mark")
	p.AllowAttrs("class").OnElements("code", "pre", "span", "div", "a", "sup", "li", "hr", "section")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup", "div")
	p.AllowAttrs("role").OnElements("a", "div", "section")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	p.RequireNoReferrerOnLinks(true)
	return &PolicySanitizer{policy: p}
}

// Sanitize returns body with everything outside the policy removed.
// On cancellation it returns an empty string; callers check ctx.Err().
func (s *PolicySanitizer) Sanitize(ctx context.Context, body string) string {
	if ctx.Err() != nil {
		return ""
	}
	return s.policy.Sanitize(body)
}
