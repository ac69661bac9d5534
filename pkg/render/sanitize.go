package render

import (
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans author-supplied HTML before it is emitted unescaped.
// *bluemonday.Policy satisfies it.
type Sanitizer interface {
	Sanitize(string) string
}

// SanitizerFunc adapts a plain function to Sanitizer.
type SanitizerFunc func(string) string

func (fn SanitizerFunc) Sanitize(s string) string { return fn(s) }

var (
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy
)

// DefaultSanitizer returns the shared policy for rich text blocks: the
// bluemonday user generated content policy with scripts, event handlers and
// inline styles stripped.
func DefaultSanitizer() Sanitizer {
	contentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		policy.RequireNoReferrerOnLinks(true)
		contentPolicy = policy
	})
	return contentPolicy
}

var allowedSchemes = map[string]struct{}{
	"http":   {},
	"https":  {},
	"mailto": {},
	"tel":    {},
}

// SafeURL returns the trimmed URL when it is relative or uses an allowed
// scheme (http, https, mailto, tel), and "" otherwise.
func SafeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.ContainsFunc(trimmed, func(r rune) bool { return r < 0x20 || r == 0x7f }) {
		return ""
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	if parsed.Scheme == "" {
		return trimmed
	}
	if _, ok := allowedSchemes[strings.ToLower(parsed.Scheme)]; !ok {
		return ""
	}
	return trimmed
}

// BackgroundImageCSS returns a background-image declaration for a safe URL.
// URLs carrying characters that could terminate the url() token are refused.
func BackgroundImageCSS(raw string) string {
	safe := SafeURL(raw)
	if safe == "" || strings.ContainsAny(safe, "\"'()\\ ") {
		return ""
	}
	return `background-image: url("` + safe + `")`
}
