package installer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/shlex"
	"github.com/rs/zerolog"

	"github.com/andrii-bodnar/vibesdk-templates/internal/domain"
	"github.com/andrii-bodnar/vibesdk-templates/internal/ports"
)

const (
	manifestFile = "package.json"
	modulesDir   = "node_modules"

	// waitDelay bounds how long Run waits for output pipes after the
	// installer is killed.
	waitDelay = 2 * time.Second
)

// Provisioner installs the reference project's node_modules on demand and
// removes them afterwards.
type Provisioner struct {
	pkg     string
	command string
	timeout time.Duration
	log     zerolog.Logger
	step    func(format string, args ...any)
}

type Option func(*Provisioner)

// WithPackage names the package whose presence means "already installed".
func WithPackage(name string) Option {
	return func(p *Provisioner) { p.pkg = name }
}

// WithCommand sets the installer command line, e.g. "bun install".
func WithCommand(cmd string) Option {
	return func(p *Provisioner) { p.command = cmd }
}

func WithTimeout(d time.Duration) Option {
	return func(p *Provisioner) { p.timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(p *Provisioner) { p.log = l }
}

// StepReporter receives user-facing install and cleanup steps.
// ports.Progress satisfies it.
type StepReporter interface {
	Step(format string, args ...any)
}

// WithProgress reports install and cleanup steps to the user.
func WithProgress(pr StepReporter) Option {
	return func(p *Provisioner) {
		if pr != nil {
			p.step = pr.Step
		}
	}
}

func New(opts ...Option) *Provisioner {
	def := domain.DefaultConfig()
	p := &Provisioner{
		pkg:     def.Package.Name,
		command: def.Installer.Command,
		timeout: def.Installer.Timeout,
		log:     zerolog.Nop(),
		step:    func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ ports.Provisioner = (*Provisioner)(nil)

// PackageDir is where the package lands once installed under root.
func (p *Provisioner) PackageDir(root string) string {
	return filepath.Join(root, modulesDir, filepath.FromSlash(p.pkg))
}

// Ensure is a no-op when the package is already installed; otherwise it runs
// the installer in root and waits at most the configured timeout.
func (p *Provisioner) Ensure(ctx context.Context, root string) error {
	manifest := filepath.Join(root, manifestFile)
	if _, err := os.Stat(manifest); err != nil {
		p.log.Error().Str("root", root).Msg("package.json not found")
		return &domain.OpError{
			Op:   "installer.ensure",
			Kind: domain.KindNotFound,
			Path: manifest,
			Err:  err,
		}
	}

	p.logDeclaredVersion(manifest)

	if _, err := os.Stat(p.PackageDir(root)); err == nil {
		p.log.Debug().Str("root", root).Msg("node_modules already installed")
		p.step("✅ node_modules already installed in %s", root)
		return nil
	}

	return p.install(ctx, root)
}

func (p *Provisioner) install(ctx context.Context, root string) error {
	argv, err := shlex.Split(p.command)
	if err != nil || len(argv) == 0 {
		if err == nil {
			err = errors.New("empty installer command")
		}
		return &domain.OpError{
			Op:   "installer.install",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("parse %q: %w", p.command, err),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = root
	cmd.Stderr = &stderr
	killProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	p.log.Debug().Strs("args", argv).Str("dir", root).Dur("timeout", p.timeout).Msg("running installer")
	p.step("📦 node_modules not found, running %s in %s...", p.command, root)

	err = cmd.Run()
	switch {
	case err == nil:
		p.step("✅ %s completed successfully", p.command)
		return nil

	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		p.log.Error().Str("command", p.command).Dur("timeout", p.timeout).Msg("installer timed out")
		return installErr(root, domain.ErrInstallTimeout)

	case errors.Is(err, exec.ErrNotFound):
		p.log.Error().Str("executable", argv[0]).Msgf("%s not found, please install it", argv[0])
		return installErr(root, fmt.Errorf("%w: %s", domain.ErrInstallerNotFound, argv[0]))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		p.log.Error().
			Str("command", p.command).
			Int("exit_code", exitErr.ExitCode()).
			Str("stderr", strings.TrimSpace(stderr.String())).
			Msg("installer failed")
		return installErr(root, fmt.Errorf("%w (exit %d)", domain.ErrInstallFailed, exitErr.ExitCode()))
	}

	p.log.Error().Err(err).Str("command", p.command).Msg("error running installer")
	return &domain.OpError{
		Op:   "installer.install",
		Kind: domain.KindExecution,
		Path: root,
		Err:  err,
	}
}

func installErr(root string, err error) error {
	return &domain.OpError{
		Op:   "installer.install",
		Kind: domain.KindInstall,
		Path: root,
		Err:  err,
	}
}

// Cleanup removes root/node_modules. Failures are only logged so they never
// mask the outcome of the run.
func (p *Provisioner) Cleanup(root string) {
	dir := filepath.Join(root, modulesDir)
	if _, err := os.Stat(dir); err != nil {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		p.log.Warn().Err(err).Str("path", dir).Msg("failed to remove node_modules")
		return
	}
	p.log.Debug().Str("path", dir).Msg("removed node_modules")
	p.step("✅ Removed %s", dir)
}

// DeclaredVersion returns the version range package.json declares for the
// package, looking at dependencies first and devDependencies second.
func DeclaredVersion(manifest, pkg string) (string, error) {
	b, err := os.ReadFile(manifest)
	if err != nil {
		return "", err
	}

	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return "", err
	}

	for _, section := range []string{"dependencies", "devDependencies"} {
		v, err := jsonpath.Get(fmt.Sprintf("$.%s[%q]", section, pkg), doc)
		if err != nil {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			return s, nil
		}
	}
	return "", domain.ErrNotFound
}

func (p *Provisioner) logDeclaredVersion(manifest string) {
	v, err := DeclaredVersion(manifest, p.pkg)
	if err != nil {
		p.log.Warn().Err(err).Str("package", p.pkg).Str("path", manifest).Msg("package not declared in package.json")
		return
	}
	p.log.Debug().Str("package", p.pkg).Str("version", v).Msg("declared dependency")
}
