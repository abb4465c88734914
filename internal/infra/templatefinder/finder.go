package templatefinder

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/andrii-bodnar/vibesdk-templates/internal/domain"
	"github.com/andrii-bodnar/vibesdk-templates/internal/ports"
)

// Finder lists the template directories that carry a synced document.
type Finder struct {
	prefix string
	doc    string
}

type Option func(*Finder)

// WithPrefix selects directories by name prefix. An empty prefix matches all.
func WithPrefix(prefix string) Option {
	return func(f *Finder) { f.prefix = prefix }
}

// WithDoc sets the document path relative to each template directory.
func WithDoc(rel string) Option {
	return func(f *Finder) { f.doc = rel }
}

func NewFinder(opts ...Option) *Finder {
	def := domain.DefaultConfig()
	f := &Finder{
		prefix: def.Templates.Prefix,
		doc:    def.Templates.Doc,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ ports.TemplateLocator = (*Finder)(nil)

func (f *Finder) ListTemplates(definitionsDir string) ([]domain.TemplateRef, error) {
	entries, err := os.ReadDir(definitionsDir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "templatefinder.list",
			Kind: domain.KindNotFound,
			Path: definitionsDir,
			Err:  err,
		}
	}

	dirs := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		return e.IsDir() && strings.HasPrefix(e.Name(), f.prefix)
	})
	if len(dirs) == 0 {
		return nil, &domain.OpError{
			Op:   "templatefinder.list",
			Kind: domain.KindNotFound,
			Path: definitionsDir,
			Err:  domain.ErrNoTemplates,
		}
	}

	refs := lo.Map(dirs, func(e os.DirEntry, _ int) domain.TemplateRef {
		dir := filepath.Join(definitionsDir, e.Name())
		return domain.TemplateRef{
			Name:    e.Name(),
			Dir:     dir,
			DocPath: filepath.Join(dir, f.doc),
		}
	})

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}
