package ports

import "github.com/andrii-bodnar/vibesdk-templates/internal/domain"

// TemplateLocator lists the template directories below a definitions root.
type TemplateLocator interface {
	ListTemplates(definitionsDir string) ([]domain.TemplateRef, error)
}
