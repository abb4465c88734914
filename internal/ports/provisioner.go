package ports

import "context"

// Provisioner makes sure the package that carries the declaration files is
// installed under root, and removes it again when the run is over.
type Provisioner interface {
	Ensure(ctx context.Context, root string) error
	Cleanup(root string)
}
