package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrii-bodnar/vibesdk-templates/internal/domain"
)

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, "typesync.yaml"), []byte(content), 0o644))
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := t.TempDir()
	// Partial config (only cleanup + timeout)
	writeConfig(t, root, "typesync:\n  cleanup: false\n  installer:\n    timeout: 90s\n")

	cfg, err := LoadConfig(root)
	require.NoError(t, err)

	assert.False(t, cfg.Cleanup)
	assert.Equal(t, 90*time.Second, cfg.Installer.Timeout)
	assert.Equal(t, "bun install", cfg.Installer.Command)
	assert.Equal(t, domain.DefaultStartMarker, cfg.Markers.Start)
	assert.Equal(t, filepath.Join("reference", "crowdin-reference"), cfg.Paths.Reference)
	assert.Equal(t, []string{"internal", "test", "__"}, cfg.Generator.Exclude)
}

func TestLoadConfig_OverridesEverything(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `typesync:
  paths:
    reference: ref
    definitions: defs
  package:
    name: "@acme/client"
    out_dir: dist
  generator:
    exclude: []
    language: ts
  templates:
    prefix: ""
    doc: docs/usage.md
  markers:
    start: "<!-- A -->"
    end: "<!-- B -->"
  installer:
    command: npm ci --silent
`)

	cfg, err := LoadConfig(root)
	require.NoError(t, err)

	assert.Equal(t, "ref", cfg.Paths.Reference)
	assert.Equal(t, "defs", cfg.Paths.Definitions)
	assert.Equal(t, "@acme/client", cfg.Package.Name)
	assert.Equal(t, "dist", cfg.Package.OutDir)
	assert.Empty(t, cfg.Generator.Exclude)
	assert.Equal(t, "ts", cfg.Generator.Language)
	assert.Equal(t, "", cfg.Templates.Prefix)
	assert.Equal(t, "docs/usage.md", cfg.Templates.Doc)
	assert.Equal(t, "<!-- A -->", cfg.Markers.Start)
	assert.Equal(t, "<!-- B -->", cfg.Markers.End)
	assert.Equal(t, "npm ci --silent", cfg.Installer.Command)
	assert.True(t, cfg.Cleanup)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "typesync: [\n")

	_, err := LoadConfig(root)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig))
}

func TestLoadConfig_BadTimeout(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "typesync:\n  installer:\n    timeout: soon\n")

	_, err := LoadConfig(root)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig))
}

func TestLoadConfig_RejectsIdenticalMarkers(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "typesync:\n  markers:\n    start: X\n    end: X\n")

	_, err := LoadConfig(root)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig))
}

func TestLoadConfigFile_ExplicitMissingFile(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"), false)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
