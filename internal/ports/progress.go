package ports

import "github.com/andrii-bodnar/vibesdk-templates/internal/domain"

// Progress receives human-facing status updates while a sync runs.
type Progress interface {
	Step(format string, args ...any)
	Generated(content string)
	TemplatesFound(n int)
	TemplateSkipped(t domain.TemplateRef, reason string)
	TemplateUpdated(t domain.TemplateRef, res domain.InjectResult)
	TemplateFailed(t domain.TemplateRef, err error)
	Summary(r domain.Report)
}
