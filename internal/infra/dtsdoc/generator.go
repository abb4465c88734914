package dtsdoc

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/andrii-bodnar/vibesdk-templates/internal/app/strip"
	"github.com/andrii-bodnar/vibesdk-templates/internal/domain"
	"github.com/andrii-bodnar/vibesdk-templates/internal/ports"
)

const declSuffix = ".d.ts"

// Generator renders the declaration files shipped in an installed npm package
// as a markdown document: one heading plus fenced block per file.
type Generator struct {
	pkg      string
	outDir   string
	exclude  []string
	language string
	log      zerolog.Logger
}

type Option func(*Generator)

func WithPackage(name, outDir string) Option {
	return func(g *Generator) {
		g.pkg = name
		g.outDir = outDir
	}
}

// WithExclude replaces the substrings that disqualify a relative path.
func WithExclude(patterns []string) Option {
	return func(g *Generator) { g.exclude = patterns }
}

func WithLanguage(lang string) Option {
	return func(g *Generator) { g.language = lang }
}

func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

func NewGenerator(opts ...Option) *Generator {
	def := domain.DefaultConfig()
	g := &Generator{
		pkg:      def.Package.Name,
		outDir:   def.Package.OutDir,
		exclude:  def.Generator.Exclude,
		language: def.Generator.Language,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ ports.TypeDocGenerator = (*Generator)(nil)

// OutputDir is where the package keeps its declaration files under root.
func (g *Generator) OutputDir(root string) string {
	return filepath.Join(root, "node_modules", filepath.FromSlash(g.pkg), g.outDir)
}

// Generate walks OutputDir(root) and returns the combined markdown with
// trailing whitespace trimmed.
func (g *Generator) Generate(root string) (string, domain.GenerateStats, error) {
	var stats domain.GenerateStats

	dir := g.OutputDir(root)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		g.log.Error().Str("path", dir).Msg("declaration output directory not found")
		g.log.Error().Str("root", root).Msg("make sure node_modules is installed")
		if err == nil {
			err = fs.ErrNotExist
		}
		return "", stats, &domain.OpError{
			Op:   "dtsdoc.generate",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	files, err := listDeclarations(dir)
	if err != nil {
		return "", stats, &domain.OpError{
			Op:   "dtsdoc.walk",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	var md strings.Builder
	for _, rel := range files {
		stats.Scanned++

		if g.excluded(rel) {
			stats.Excluded++
			g.log.Debug().Str("file", rel).Msg("excluded")
			continue
		}

		b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return "", stats, &domain.OpError{
				Op:   "dtsdoc.read",
				Kind: domain.KindExecution,
				Path: rel,
				Err:  err,
			}
		}

		clean := strip.Comments(string(b))
		if strings.TrimSpace(clean) == "" {
			stats.Empty++
			continue
		}

		stats.Included++
		writeSection(&md, rel, g.language, clean)
	}

	g.log.Debug().
		Int("scanned", stats.Scanned).
		Int("included", stats.Included).
		Int("excluded", stats.Excluded).
		Int("empty", stats.Empty).
		Msg("dtsdoc.generated")

	return strings.TrimRightFunc(md.String(), unicode.IsSpace), stats, nil
}

func (g *Generator) excluded(rel string) bool {
	return lo.SomeBy(g.exclude, func(p string) bool {
		return p != "" && strings.Contains(rel, p)
	})
}

func writeSection(md *strings.Builder, rel, lang, content string) {
	md.WriteString("##### ")
	md.WriteString(rel)
	md.WriteString("\n\n```")
	md.WriteString(lang)
	md.WriteString("\n")
	md.WriteString(content)
	md.WriteString("\n```\n\n")
}

// listDeclarations returns slash-separated paths relative to dir, sorted.
func listDeclarations(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), declSuffix) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, comparePaths)
	return out, nil
}

// comparePaths orders slash-separated paths component by component, so
// "a/x.d.ts" sorts before "a-b.d.ts".
func comparePaths(a, b string) int {
	return slices.Compare(strings.Split(a, "/"), strings.Split(b, "/"))
}
