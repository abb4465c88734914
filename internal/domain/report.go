package domain

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// TemplateRef points at one template directory and the document typesync keeps in sync.
type TemplateRef struct {
	Name    string
	Dir     string
	DocPath string
}

// InjectResult describes what happened to a single target document.
type InjectResult struct {
	Path    string
	Lines   int
	Changed bool

	// EndMarkerMissing is set when the start marker exists but no end marker
	// follows it. The document is left untouched and the injection still counts
	// as a success.
	EndMarkerMissing bool
}

// GenerateStats summarizes one pass over the declaration files.
type GenerateStats struct {
	Scanned  int
	Included int
	Excluded int
	Empty    int
}

// TemplateOutcome is the per-template entry of a Report.
type TemplateOutcome struct {
	Template TemplateRef
	Result   InjectResult
	Err      error
}

func (o TemplateOutcome) Succeeded() bool {
	return o.Err == nil
}

// Report is the run tally accumulated while walking templates.
type Report struct {
	Outcomes []TemplateOutcome
}

func (r *Report) Add(o TemplateOutcome) {
	r.Outcomes = append(r.Outcomes, o)
}

func (r Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			n++
		}
	}
	return n
}

func (r Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// OK reports whether every template was updated.
func (r Report) OK() bool {
	return r.Failed() == 0
}

// Err aggregates the per-template failures, or returns nil when all succeeded.
func (r Report) Err() error {
	var merr *multierror.Error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", o.Template.Name, o.Err))
		}
	}
	return merr.ErrorOrNil()
}
