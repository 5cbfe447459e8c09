package renderer

import (
	"fmt"
	"strings"
)

// SuggestionMarkdown renders an AI-suggested journal entry: the user's
// request and the entry as a fenced journal block.
func SuggestionMarkdown(description, block string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Suggested entry\n\n")
	fmt.Fprintf(&b, "> %s\n\n", description)
	fmt.Fprintf(&b, "```journal\n%s\n```\n", block)
	return b.String()
}
