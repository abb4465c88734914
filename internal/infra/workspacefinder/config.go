package workspacefinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andrii-bodnar/vibesdk-templates/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads typesync.yaml from root and applies defaults. A missing
// file is not an error: the defaults describe the standard repository layout.
func LoadConfig(root string) (domain.Config, error) {
	return LoadConfigFile(filepath.Join(root, ConfigFile), true)
}

// LoadConfigFile loads an explicit config path. With optional set, a missing
// file yields the defaults.
func LoadConfigFile(path string, optional bool) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if err := apply(&cfg, y.Typesync); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Apply parsed values on top of defaults.
func apply(cfg *domain.Config, y yamlTypesync) error {
	if y.Paths.Reference != "" {
		cfg.Paths.Reference = y.Paths.Reference
	}
	if y.Paths.Definitions != "" {
		cfg.Paths.Definitions = y.Paths.Definitions
	}
	if y.Package.Name != "" {
		cfg.Package.Name = y.Package.Name
	}
	if y.Package.OutDir != "" {
		cfg.Package.OutDir = y.Package.OutDir
	}
	if y.Generator.Exclude != nil {
		cfg.Generator.Exclude = *y.Generator.Exclude
	}
	if y.Generator.Language != "" {
		cfg.Generator.Language = y.Generator.Language
	}
	if y.Templates.Prefix != nil {
		cfg.Templates.Prefix = *y.Templates.Prefix
	}
	if y.Templates.Doc != "" {
		cfg.Templates.Doc = y.Templates.Doc
	}
	if y.Markers.Start != "" {
		cfg.Markers.Start = y.Markers.Start
	}
	if y.Markers.End != "" {
		cfg.Markers.End = y.Markers.End
	}
	if y.Installer.Command != "" {
		cfg.Installer.Command = y.Installer.Command
	}
	if y.Installer.Timeout != "" {
		d, err := time.ParseDuration(y.Installer.Timeout)
		if err != nil {
			return fmt.Errorf("installer.timeout: %w", err)
		}
		cfg.Installer.Timeout = d
	}
	if y.Cleanup != nil {
		cfg.Cleanup = *y.Cleanup
	}
	return nil
}

type yamlConfig struct {
	Typesync yamlTypesync `yaml:"typesync"`
}

type yamlTypesync struct {
	Paths struct {
		Reference   string `yaml:"reference"`
		Definitions string `yaml:"definitions"`
	} `yaml:"paths"`

	Package struct {
		Name   string `yaml:"name"`
		OutDir string `yaml:"out_dir"`
	} `yaml:"package"`

	Generator struct {
		Exclude  *[]string `yaml:"exclude"`
		Language string    `yaml:"language"`
	} `yaml:"generator"`

	Templates struct {
		Prefix *string `yaml:"prefix"`
		Doc    string  `yaml:"doc"`
	} `yaml:"templates"`

	Markers struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"markers"`

	Installer struct {
		Command string `yaml:"command"`
		Timeout string `yaml:"timeout"`
	} `yaml:"installer"`

	Cleanup *bool `yaml:"cleanup"`
}
