package usecase

import (
	"context"
	"os"
	"strings"

	"github.com/andrii-bodnar/vibesdk-templates/internal/domain"
	"github.com/andrii-bodnar/vibesdk-templates/internal/ports"
)

type SyncTypes struct {
	provisioner ports.Provisioner
	generator   ports.TypeDocGenerator
	inject      *InjectTemplates
	progress    ports.Progress
	cleanup     bool
}

type SyncOption func(*SyncTypes)

// WithCleanup controls whether the provisioned dependencies are removed at
// the end of the run. Enabled by default.
func WithCleanup(enabled bool) SyncOption {
	return func(uc *SyncTypes) { uc.cleanup = enabled }
}

func WithProgress(p ports.Progress) SyncOption {
	return func(uc *SyncTypes) {
		if p != nil {
			uc.progress = p
		}
	}
}

func NewSyncTypes(pr ports.Provisioner, gen ports.TypeDocGenerator, tl ports.TemplateLocator, di ports.DocInjector, opts ...SyncOption) *SyncTypes {
	uc := &SyncTypes{
		provisioner: pr,
		generator:   gen,
		progress:    nopProgress{},
		cleanup:     true,
	}
	for _, opt := range opts {
		opt(uc)
	}
	uc.inject = NewInjectTemplates(tl, di, uc.progress)
	return uc
}

// Execute runs one full sync: validate layout, provision, generate, inject
// into every template, clean up. When any template fails the report is
// returned together with ErrSyncFailed. Cleanup runs on every path once
// provisioning succeeded.
func (uc *SyncTypes) Execute(ctx context.Context, layout domain.Layout) (domain.Report, error) {
	var report domain.Report

	if err := requireDir("usecase.sync", layout.Reference); err != nil {
		return report, err
	}
	if err := requireDir("usecase.sync", layout.Definitions); err != nil {
		return report, err
	}

	if err := uc.provisioner.Ensure(ctx, layout.Reference); err != nil {
		return report, err
	}
	if uc.cleanup {
		defer func() {
			uc.progress.Step("🧹 Cleaning up...")
			uc.provisioner.Cleanup(layout.Reference)
		}()
	}

	uc.progress.Step("Generating API types from %s...", layout.Reference)
	content, err := renderTypes(uc.generator, layout.Reference)
	if err != nil {
		return report, err
	}
	uc.progress.Generated(content)

	report, err = uc.inject.Execute(ctx, content, layout.Definitions)
	if err != nil {
		return report, err
	}
	if !report.OK() {
		return report, &domain.OpError{
			Op:   "usecase.sync",
			Kind: domain.KindExecution,
			Err:  domain.ErrSyncFailed,
		}
	}
	return report, nil
}

// renderTypes fails with ErrEmptyOutput when no declarations survive filtering.
func renderTypes(gen ports.TypeDocGenerator, referenceDir string) (string, error) {
	content, _, err := gen.Generate(referenceDir)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", &domain.OpError{
			Op:   "usecase.generate",
			Kind: domain.KindExecution,
			Path: referenceDir,
			Err:  domain.ErrEmptyOutput,
		}
	}
	return content, nil
}

func requireDir(op, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindNotFound, Path: path, Err: err}
	}
	if !info.IsDir() {
		return &domain.OpError{Op: op, Kind: domain.KindNotFound, Path: path, Err: domain.ErrNotFound}
	}
	return nil
}
