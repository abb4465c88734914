package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/andrii-bodnar/vibesdk-templates/internal/domain"
	"github.com/andrii-bodnar/vibesdk-templates/internal/infra/dtsdoc"
	"github.com/andrii-bodnar/vibesdk-templates/internal/infra/installer"
	"github.com/andrii-bodnar/vibesdk-templates/internal/infra/logger"
	"github.com/andrii-bodnar/vibesdk-templates/internal/infra/mdinject"
	"github.com/andrii-bodnar/vibesdk-templates/internal/infra/templatefinder"
	"github.com/andrii-bodnar/vibesdk-templates/internal/infra/workspacefinder"
	"github.com/andrii-bodnar/vibesdk-templates/internal/ui/console"
)

type workspaceCtx struct {
	cfg    domain.Config
	layout domain.Layout

	provisioner *installer.Provisioner
	generator   *dtsdoc.Generator
	templates   *templatefinder.Finder
	printer     *console.Printer

	closeLog func() error
}

func loadWorkspace(g globalOpts, stdout, stderr io.Writer) (*workspaceCtx, error) {
	root, err := resolveRoot(g.root)
	if err != nil {
		return nil, err
	}

	closeLog, _ := logger.Setup(logger.Config{Root: root, Debug: g.debug, Stderr: stderr})
	log := logger.L()

	cfg, err := loadConfig(root, g.config)
	if err != nil {
		log.Error().Err(err).Msg("load config")
		closeQuietly(closeLog)
		return nil, err
	}

	layout, err := cfg.ResolveLayout(root)
	if err != nil {
		closeQuietly(closeLog)
		return nil, err
	}
	log.Debug().Str("root", layout.Root).Str("reference", layout.Reference).Str("definitions", layout.Definitions).Msg("layout resolved")

	theme := console.PlainTheme()
	if isTerminal(stdout) {
		theme = console.DefaultTheme()
	}

	printer := console.NewPrinter(stdout, theme)

	return &workspaceCtx{
		cfg:    cfg,
		layout: layout,
		provisioner: installer.New(
			installer.WithPackage(cfg.Package.Name),
			installer.WithCommand(cfg.Installer.Command),
			installer.WithTimeout(cfg.Installer.Timeout),
			installer.WithLogger(log),
			installer.WithProgress(printer),
		),
		generator: dtsdoc.NewGenerator(
			dtsdoc.WithPackage(cfg.Package.Name, cfg.Package.OutDir),
			dtsdoc.WithExclude(cfg.Generator.Exclude),
			dtsdoc.WithLanguage(cfg.Generator.Language),
			dtsdoc.WithLogger(log),
		),
		templates: templatefinder.NewFinder(
			templatefinder.WithPrefix(cfg.Templates.Prefix),
			templatefinder.WithDoc(cfg.Templates.Doc),
		),
		printer:  printer,
		closeLog: closeLog,
	}, nil
}

func (ws *workspaceCtx) injector(extra ...mdinject.Option) *mdinject.Injector {
	opts := []mdinject.Option{
		mdinject.WithMarkers(ws.cfg.Markers.Start, ws.cfg.Markers.End),
		mdinject.WithLogger(logger.L()),
	}
	return mdinject.NewInjector(append(opts, extra...)...)
}

func (ws *workspaceCtx) close() {
	closeQuietly(ws.closeLog)
}

func resolveRoot(rootFlag string) (string, error) {
	r := strings.TrimSpace(rootFlag)
	if r != "" {
		abs, err := filepath.Abs(r)
		if err != nil {
			return "", fmt.Errorf("invalid root path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return workspacefinder.NewFinder().ResolveRoot(wd)
}

func loadConfig(root, configFlag string) (domain.Config, error) {
	c := strings.TrimSpace(configFlag)
	if c == "" {
		return workspacefinder.LoadConfig(root)
	}
	if !filepath.IsAbs(c) {
		c = filepath.Join(root, c)
	}
	return workspacefinder.LoadConfigFile(c, false)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func closeQuietly(fn func() error) {
	if fn != nil {
		_ = fn()
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
