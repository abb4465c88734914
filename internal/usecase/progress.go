package usecase

import "github.com/andrii-bodnar/vibesdk-templates/internal/domain"

type nopProgress struct{}

func (nopProgress) Step(string, ...any) {}
func (nopProgress) Generated(string) {}
func (nopProgress) TemplatesFound(int) {}
func (nopProgress) TemplateSkipped(domain.TemplateRef, string) {}
func (nopProgress) TemplateUpdated(domain.TemplateRef, domain.InjectResult) {}
func (nopProgress) TemplateFailed(domain.TemplateRef, error) {}
func (nopProgress) Summary(domain.Report) {}
