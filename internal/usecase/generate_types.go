package usecase

import (
	"context"

	"github.com/andrii-bodnar/vibesdk-templates/internal/ports"
)

// GenerateTypes provisions the reference project, renders the declaration
// markdown and cleans up, without touching any template.
type GenerateTypes struct {
	provisioner ports.Provisioner
	generator   ports.TypeDocGenerator
	cleanup     bool
}

func NewGenerateTypes(pr ports.Provisioner, gen ports.TypeDocGenerator, cleanup bool) *GenerateTypes {
	return &GenerateTypes{provisioner: pr, generator: gen, cleanup: cleanup}
}

func (uc *GenerateTypes) Execute(ctx context.Context, referenceDir string) (string, error) {
	if err := requireDir("usecase.generatetypes", referenceDir); err != nil {
		return "", err
	}
	if err := uc.provisioner.Ensure(ctx, referenceDir); err != nil {
		return "", err
	}
	if uc.cleanup {
		defer uc.provisioner.Cleanup(referenceDir)
	}

	return renderTypes(uc.generator, referenceDir)
}
