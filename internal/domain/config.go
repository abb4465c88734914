package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultStartMarker = "<!-- CROWDIN_API_CLIENT_TYPES_START -->"
	DefaultEndMarker   = "<!-- CROWDIN_API_CLIENT_TYPES_END -->"
)

// Config represents the typesync configuration loaded from typesync.yaml.
type Config struct {
	Paths     PathsConfig
	Package   PackageConfig
	Generator GeneratorConfig
	Templates TemplatesConfig
	Markers   MarkersConfig
	Installer InstallerConfig

	// Cleanup removes node_modules from the reference root after a run.
	Cleanup bool
}

type PathsConfig struct {
	Reference   string
	Definitions string
}

type PackageConfig struct {
	Name   string
	OutDir string
}

type GeneratorConfig struct {
	Exclude  []string
	Language string
}

type TemplatesConfig struct {
	Prefix string
	Doc    string
}

type MarkersConfig struct {
	Start string
	End   string
}

type InstallerConfig struct {
	Command string
	Timeout time.Duration
}

// DefaultConfig mirrors the repository layout the tool was written for.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			Reference:   filepath.Join("reference", "crowdin-reference"),
			Definitions: "definitions",
		},
		Package: PackageConfig{
			Name:   "@crowdin/crowdin-api-client",
			OutDir: "out",
		},
		Generator: GeneratorConfig{
			Exclude:  []string{"internal", "test", "__"},
			Language: "typescript",
		},
		Templates: TemplatesConfig{
			Prefix: "crowdin-",
			Doc:    filepath.Join("prompts", "usage.md"),
		},
		Markers: MarkersConfig{
			Start: DefaultStartMarker,
			End:   DefaultEndMarker,
		},
		Installer: InstallerConfig{
			Command: "bun install",
			Timeout: 5 * time.Minute,
		},
		Cleanup: true,
	}
}

// Validate reports the first inconsistency found in cfg.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Markers.Start) == "" {
		problems = append(problems, "markers.start is empty")
	}
	if strings.TrimSpace(c.Markers.End) == "" {
		problems = append(problems, "markers.end is empty")
	}
	if c.Markers.Start != "" && c.Markers.Start == c.Markers.End {
		problems = append(problems, "markers.start and markers.end must differ")
	}
	if strings.TrimSpace(c.Package.Name) == "" {
		problems = append(problems, "package.name is empty")
	}
	if strings.TrimSpace(c.Installer.Command) == "" {
		problems = append(problems, "installer.command is empty")
	}
	if c.Installer.Timeout <= 0 {
		problems = append(problems, "installer.timeout must be positive")
	}
	if strings.TrimSpace(c.Templates.Doc) == "" {
		problems = append(problems, "templates.doc is empty")
	}

	if len(problems) == 0 {
		return nil
	}
	return &OpError{
		Op:   "config.validate",
		Kind: KindInvalidConfig,
		Err:  fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; ")),
	}
}

// Layout is the set of absolute paths a run works on.
type Layout struct {
	Root        string
	Reference   string
	Definitions string
}

// ResolveLayout joins the configured relative paths onto root.
func (c Config) ResolveLayout(root string) (Layout, error) {
	if strings.TrimSpace(root) == "" {
		return Layout{}, &OpError{
			Op:   "config.layout",
			Kind: KindInvalidConfig,
			Err:  errors.New("root is empty"),
		}
	}

	return Layout{
		Root:        root,
		Reference:   resolve(root, c.Paths.Reference),
		Definitions: resolve(root, c.Paths.Definitions),
	}, nil
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
