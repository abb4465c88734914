// Package markers replaces the generated region of a document delimited by a
// pair of sentinel lines.
package markers

import (
	"regexp"
	"strings"
)

// Region is a start/end marker pair. Everything between the markers is owned
// by the generator; everything outside them is left as-is.
type Region struct {
	Start string
	End   string

	re *regexp.Regexp
}

func NewRegion(start, end string) Region {
	return Region{
		Start: start,
		End:   end,
		re:    regexp.MustCompile(regexp.QuoteMeta(start) + `(?s:.*?)` + regexp.QuoteMeta(end)),
	}
}

// Contains reports whether doc opts in to injection, i.e. carries the start marker.
func (r Region) Contains(doc string) bool {
	return strings.Contains(doc, r.Start)
}

// Block renders the replacement for one region: both markers with content
// between them, separated by blank lines.
func (r Region) Block(content string) string {
	return r.Start + "\n\n" + strings.TrimSpace(content) + "\n\n" + r.End
}

// Replace substitutes every start..end span of doc with Block(content). Spans
// are matched non-greedily so each start pairs with the nearest following end.
// matched is false when no complete span exists, in which case doc is
// returned unchanged.
func (r Region) Replace(doc, content string) (out string, matched bool) {
	re := r.re
	if re == nil {
		re = NewRegion(r.Start, r.End).re
	}
	if !re.MatchString(doc) {
		return doc, false
	}
	return re.ReplaceAllLiteralString(doc, r.Block(content)), true
}
