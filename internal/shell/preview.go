package shell

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxPreview caps the textual page preview, in runes.
const maxPreview = 2048

var previewPolicy = bluemonday.StrictPolicy()

// Preview reduces a fetched body to a plain-text snippet for display: all
// markup stripped, entities decoded, whitespace collapsed, truncated to
// maxPreview runes.
func Preview(body string) string {
	text := html.UnescapeString(previewPolicy.Sanitize(body))
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= maxPreview {
		return text
	}
	return string(runes[:maxPreview]) + "…"
}

// ParseUserURL turns free-form toolbar input into a URL, defaulting to https
// when the user omitted a scheme.
func ParseUserURL(input string) (*url.URL, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, fmt.Errorf("empty url")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" {
		parsed, err = url.Parse("https://" + trimmed)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", trimmed, err)
	}
	return parsed, nil
}
