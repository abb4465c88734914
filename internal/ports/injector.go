package ports

import "github.com/andrii-bodnar/vibesdk-templates/internal/domain"

// DocInjector writes content into the marked region of the document at path.
type DocInjector interface {
	Inject(path string, content string) (domain.InjectResult, error)
}
