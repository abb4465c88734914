package mdinject

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"

	"github.com/andrii-bodnar/vibesdk-templates/internal/app/markers"
	"github.com/andrii-bodnar/vibesdk-templates/internal/domain"
	"github.com/andrii-bodnar/vibesdk-templates/internal/ports"
)

// Injector rewrites the marked region of markdown documents in place.
type Injector struct {
	region markers.Region
	log    zerolog.Logger
	diff   io.Writer
}

type Option func(*Injector)

func WithMarkers(start, end string) Option {
	return func(i *Injector) { i.region = markers.NewRegion(start, end) }
}

func WithLogger(l zerolog.Logger) Option {
	return func(i *Injector) { i.log = l }
}

// WithDryRun leaves documents untouched and writes a unified diff of every
// pending change to w instead.
func WithDryRun(w io.Writer) Option {
	return func(i *Injector) { i.diff = w }
}

func NewInjector(opts ...Option) *Injector {
	i := &Injector{
		region: markers.NewRegion(domain.DefaultStartMarker, domain.DefaultEndMarker),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

var _ ports.DocInjector = (*Injector)(nil)

func (i *Injector) Inject(path string, content string) (domain.InjectResult, error) {
	res := domain.InjectResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		i.log.Error().Str("path", path).Msg("document not found")
		return res, &domain.OpError{
			Op:   "mdinject.inject",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return res, &domain.OpError{
			Op:   "mdinject.read",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	doc := string(b)

	if !i.region.Contains(doc) {
		i.log.Warn().Str("path", path).Str("marker", i.region.Start).Msg("start placeholder not found")
		return res, &domain.OpError{
			Op:   "mdinject.inject",
			Kind: domain.KindMissingMarker,
			Path: path,
			Err:  domain.ErrMarkerMissing,
		}
	}

	updated, matched := i.region.Replace(doc, content)
	if !matched {
		// Start without end: nothing is replaced but the document still counts as handled.
		i.log.Warn().Str("path", path).Str("marker", i.region.End).Msg("end placeholder not found, document left unchanged")
		res.EndMarkerMissing = true
	}
	res.Changed = updated != doc
	res.Lines = countLines(updated)

	if i.diff != nil {
		return res, i.writeDiff(path, doc, updated)
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return res, &domain.OpError{
			Op:   "mdinject.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return res, nil
}

func (i *Injector) writeDiff(path, before, after string) error {
	if before == after {
		_, err := fmt.Fprintf(i.diff, "%s: no changes\n", path)
		return err
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (updated)",
		Context:  3,
	})
	if err != nil {
		return &domain.OpError{
			Op:   "mdinject.diff",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	_, err = io.WriteString(i.diff, text)
	return err
}

// countLines matches splitlines semantics: a trailing newline does not start a new line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
