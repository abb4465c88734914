package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/andrii-bodnar/vibesdk-templates/internal/app/markers"
)

func templatesCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List templates and whether their document is ready for injection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(*g, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			refs, err := ws.templates.ListTemplates(ws.layout.Definitions)
			if err != nil {
				return err
			}

			region := markers.NewRegion(ws.cfg.Markers.Start, ws.cfg.Markers.End)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Definitions: %s\n\n", ws.layout.Definitions)
			for _, r := range refs {
				rel, _ := filepath.Rel(ws.layout.Definitions, r.DocPath)
				fmt.Fprintf(out, "- %s  (%s) %s\n", r.Name, rel, docStatus(region, r.DocPath))
			}
			return nil
		},
	}
}

func docStatus(region markers.Region, path string) string {
	if !fileExists(path) {
		return "missing"
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "unreadable"
	}
	if !region.Contains(string(b)) {
		return "no markers"
	}
	if _, ok := region.Replace(string(b), ""); !ok {
		return "no end marker"
	}
	return "ready"
}
