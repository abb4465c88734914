package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/andrii-bodnar/vibesdk-templates/internal/domain"
	"github.com/andrii-bodnar/vibesdk-templates/internal/ports"
)

// ConfigFile marks the repository root.
const ConfigFile = "typesync.yaml"

// Finder locates the repository root by searching for typesync.yaml upward.
type Finder struct {
	ConfigFile string // defaults to "typesync.yaml"
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFile}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// If user passes a file path, use its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		cfgPath := filepath.Join(cur, f.ConfigFile)
		if _, err := os.Stat(cfgPath); err == nil {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root.
			return "", &domain.OpError{
				Op:   "workspacefinder.findroot",
				Kind: domain.KindNotFound,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}

// ResolveRoot returns the nearest root above startDir, or startDir itself when
// no typesync.yaml exists anywhere above it.
func (f *Finder) ResolveRoot(startDir string) (string, error) {
	root, err := f.FindRoot(startDir)
	if err == nil {
		return root, nil
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		return "", err
	}
	return filepath.Abs(startDir)
}
