package ports

import "github.com/andrii-bodnar/vibesdk-templates/internal/domain"

// TypeDocGenerator renders the declaration files found under root as one markdown block.
type TypeDocGenerator interface {
	Generate(root string) (string, domain.GenerateStats, error)
}
