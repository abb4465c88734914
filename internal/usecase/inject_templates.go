package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/andrii-bodnar/vibesdk-templates/internal/domain"
	"github.com/andrii-bodnar/vibesdk-templates/internal/ports"
)

type InjectTemplates struct {
	templates ports.TemplateLocator
	injector  ports.DocInjector
	progress  ports.Progress
}

func NewInjectTemplates(tl ports.TemplateLocator, di ports.DocInjector, p ports.Progress) *InjectTemplates {
	if p == nil {
		p = nopProgress{}
	}
	return &InjectTemplates{
		templates: tl,
		injector:  di,
		progress:  p,
	}
}

// Execute injects content into the document of every template under
// definitionsDir. One template failing never stops the others; the returned
// report carries the tally. An error is returned only when no template could
// be listed at all.
func (uc *InjectTemplates) Execute(ctx context.Context, content string, definitionsDir string) (domain.Report, error) {
	var report domain.Report

	refs, err := uc.templates.ListTemplates(definitionsDir)
	if err != nil {
		return report, err
	}

	uc.progress.TemplatesFound(len(refs))

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if _, statErr := os.Stat(ref.DocPath); statErr != nil {
			uc.progress.TemplateSkipped(ref, filepath.Base(ref.DocPath)+" not found")
			report.Add(domain.TemplateOutcome{
				Template: ref,
				Err: &domain.OpError{
					Op:   "usecase.injecttemplates",
					Kind: domain.KindNotFound,
					Path: ref.DocPath,
					Err:  errors.Join(domain.ErrNotFound, statErr),
				},
			})
			continue
		}

		uc.progress.Step("Processing %s...", ref.Name)

		res, injErr := uc.injector.Inject(ref.DocPath, content)
		report.Add(domain.TemplateOutcome{Template: ref, Result: res, Err: injErr})
		if injErr != nil {
			uc.progress.TemplateFailed(ref, injErr)
			continue
		}
		uc.progress.TemplateUpdated(ref, res)
	}

	uc.progress.Summary(report)
	return report, nil
}
