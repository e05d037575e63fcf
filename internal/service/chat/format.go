package chat

import (
	"regexp"
	"strings"
)

var (
	headingPattern  = regexp.MustCompile(`#{1,6}\s+`)
	boldPattern     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern   = regexp.MustCompile(`\*(.+?)\*`)
	boldUnderscore  = regexp.MustCompile(`__(.+?)__`)
	underscore      = regexp.MustCompile(`_(.+?)_`)
	inlineCode      = regexp.MustCompile("`(.+?)`")
	bulletPattern   = regexp.MustCompile(`(?m)^\s*[-*]\s+`)
	numberedPattern = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)

	optionsPattern = regexp.MustCompile(`\[OPTIONS:\s*(.+?)\]\s*$`)
)

// stripMarkdown removes formatting the model still emits despite being
// told not to: headings, emphasis, inline code, and list markers
// (converted to a plain bullet glyph).
func stripMarkdown(text string) string {
	text = headingPattern.ReplaceAllString(text, "")
	text = boldPattern.ReplaceAllString(text, "$1")
	text = italicPattern.ReplaceAllString(text, "$1")
	text = boldUnderscore.ReplaceAllString(text, "$1")
	text = underscore.ReplaceAllString(text, "$1")
	text = inlineCode.ReplaceAllString(text, "$1")
	text = bulletPattern.ReplaceAllString(text, "• ")
	text = numberedPattern.ReplaceAllString(text, "• ")
	return strings.TrimSpace(text)
}

// parseOptions extracts a trailing [OPTIONS: a | b | c] directive into
// discrete suggestion chips and strips it from the content. A missing
// or empty directive yields nil options.
func parseOptions(text string) (string, []string) {
	loc := optionsPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return stripMarkdown(text), nil
	}

	rawList := text[loc[2]:loc[3]]
	options := make([]string, 0, 3)
	for _, o := range strings.Split(rawList, "|") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			options = append(options, trimmed)
		}
	}

	content := stripMarkdown(strings.TrimSpace(text[:loc[0]]))
	if len(options) == 0 {
		return content, nil
	}
	return content, options
}
