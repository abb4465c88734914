package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/andrii-bodnar/vibesdk-templates/internal/usecase"
)

func generateCmd(g *globalOpts) *cobra.Command {
	var output string

	c := &cobra.Command{
		Use:   "generate",
		Short: "Print the generated type markdown without touching any template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(*g, cmd.ErrOrStderr(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			uc := usecase.NewGenerateTypes(ws.provisioner, ws.generator, ws.cfg.Cleanup && !g.keepDeps)
			content, err := uc.Execute(cmd.Context(), ws.layout.Reference)
			if err != nil {
				return err
			}

			if output == "" {
				fprintln(cmd.OutOrStdout(), content)
				return nil
			}

			p := output
			if !filepath.IsAbs(p) {
				p = filepath.Join(ws.layout.Root, p)
			}
			if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(p, []byte(content+"\n"), 0o644); err != nil {
				return err
			}
			ws.printer.Step("Wrote %s", p)
			return nil
		},
	}

	c.Flags().StringVarP(&output, "output", "o", "", "Write the markdown to this file instead of stdout")
	return c
}
