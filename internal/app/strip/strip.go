// Package strip removes comments and blank lines from TypeScript declaration text.
//
// It is a line/regex transform, not a lexer: comment openers inside string
// literals are stripped like any other.
package strip

import (
	"regexp"
	"strings"
	"unicode"
)

// Passes run in this order; doc comments go before generic block comments.
var passes = []*regexp.Regexp{
	regexp.MustCompile(`/\*\*[\s\S]*?\*/`),
	regexp.MustCompile(`/\*[\s\S]*?\*/`),
	regexp.MustCompile(`(?m)//.*$`),
	// Leftover JSDoc tags such as @internal or @deprecated.
	regexp.MustCompile(`(?m)@\w+.*$`),
}

// Comments returns content without comments, annotation remnants or blank
// lines. Every kept line is right-trimmed. The result is "" when nothing but
// comments and whitespace was given.
func Comments(content string) string {
	for _, re := range passes {
		content = re.ReplaceAllLiteralString(content, "")
	}
	return dropBlankLines(content)
}

func dropBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, strings.TrimRightFunc(line, unicode.IsSpace))
	}
	return strings.Join(kept, "\n")
}
