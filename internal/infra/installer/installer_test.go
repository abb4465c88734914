package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrii-bodnar/vibesdk-templates/internal/domain"
)

const manifest = `{
  "name": "crowdin-reference",
  "dependencies": {
    "@crowdin/crowdin-api-client": "^1.41.2",
    "hono": "^4.0.0"
  }
}`

func referenceRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(manifest), 0o644))
	return root
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell utilities")
	}
}

func TestEnsure_MissingManifest(t *testing.T) {
	err := New().Ensure(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestEnsure_AlreadyInstalledIsNoop(t *testing.T) {
	root := referenceRoot(t)
	p := New(WithCommand("definitely-not-an-installer-xyz"))
	require.NoError(t, os.MkdirAll(p.PackageDir(root), 0o755))

	require.NoError(t, p.Ensure(context.Background(), root))
}

func TestEnsure_RunsInstallerInRoot(t *testing.T) {
	skipOnWindows(t)
	root := referenceRoot(t)

	p := New(WithCommand("mkdir -p node_modules/@crowdin/crowdin-api-client/out"))
	require.NoError(t, p.Ensure(context.Background(), root))

	_, err := os.Stat(filepath.Join(root, "node_modules", "@crowdin", "crowdin-api-client", "out"))
	assert.NoError(t, err)
}

func TestEnsure_InstallerNotFound(t *testing.T) {
	root := referenceRoot(t)
	var logs bytes.Buffer

	p := New(WithCommand("definitely-not-an-installer-xyz install"), WithLogger(zerolog.New(&logs)))
	err := p.Ensure(context.Background(), root)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInstallerNotFound))
	assert.True(t, domain.IsKind(err, domain.KindInstall))
	assert.Contains(t, logs.String(), "definitely-not-an-installer-xyz not found")
}

func TestEnsure_NonZeroExit(t *testing.T) {
	skipOnWindows(t)
	root := referenceRoot(t)
	var logs bytes.Buffer

	p := New(WithCommand(`sh -c "echo lockfile broken >&2; exit 3"`), WithLogger(zerolog.New(&logs)))
	err := p.Ensure(context.Background(), root)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInstallFailed))
	assert.Contains(t, err.Error(), "exit 3")
	assert.Contains(t, logs.String(), "lockfile broken")
}

func TestEnsure_Timeout(t *testing.T) {
	skipOnWindows(t)
	root := referenceRoot(t)

	p := New(WithCommand("sleep 5"), WithTimeout(50*time.Millisecond))

	started := time.Now()
	err := p.Ensure(context.Background(), root)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInstallTimeout))
	assert.Less(t, time.Since(started), 4*time.Second)
}

func TestEnsure_TimeoutKillsChildProcesses(t *testing.T) {
	skipOnWindows(t)
	root := referenceRoot(t)

	// The shell forks sleep, which inherits the stderr pipe.
	p := New(WithCommand(`sh -c "sleep 5; true"`), WithTimeout(100*time.Millisecond))

	started := time.Now()
	err := p.Ensure(context.Background(), root)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInstallTimeout))
	assert.Less(t, time.Since(started), 3*time.Second)
}

type recordedSteps []string

func (r *recordedSteps) Step(format string, args ...any) {
	*r = append(*r, fmt.Sprintf(format, args...))
}

func TestEnsure_ReportsSteps(t *testing.T) {
	skipOnWindows(t)
	root := referenceRoot(t)
	var steps recordedSteps

	p := New(WithCommand("mkdir -p node_modules/@crowdin/crowdin-api-client"), WithProgress(&steps))
	require.NoError(t, p.Ensure(context.Background(), root))
	require.NoError(t, p.Ensure(context.Background(), root))
	p.Cleanup(root)

	require.Len(t, steps, 4)
	assert.Contains(t, steps[0], "running mkdir -p")
	assert.Contains(t, steps[1], "completed successfully")
	assert.Contains(t, steps[2], "node_modules already installed")
	assert.Equal(t, "✅ Removed "+filepath.Join(root, "node_modules"), steps[3])
}

func TestEnsure_UnparsableCommand(t *testing.T) {
	root := referenceRoot(t)

	err := New(WithCommand(`bun "install`)).Ensure(context.Background(), root)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig))
}

func TestCleanup_RemovesNodeModules(t *testing.T) {
	root := referenceRoot(t)
	p := New()
	require.NoError(t, os.MkdirAll(filepath.Join(p.PackageDir(root), "out"), 0o755))

	p.Cleanup(root)

	_, err := os.Stat(filepath.Join(root, "node_modules"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "package.json"))
	assert.NoError(t, err)
}

func TestCleanup_MissingDirIsNoop(t *testing.T) {
	var logs bytes.Buffer
	New(WithLogger(zerolog.New(&logs))).Cleanup(t.TempDir())
	assert.Empty(t, logs.String())
}

func TestDeclaredVersion(t *testing.T) {
	root := referenceRoot(t)
	path := filepath.Join(root, "package.json")

	v, err := DeclaredVersion(path, "@crowdin/crowdin-api-client")
	require.NoError(t, err)
	assert.Equal(t, "^1.41.2", v)

	_, err = DeclaredVersion(path, "left-pad")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeclaredVersion_DevDependencies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"devDependencies":{"@crowdin/crowdin-api-client":"1.0.0"}}`), 0o644))

	v, err := DeclaredVersion(path, "@crowdin/crowdin-api-client")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v)
}
