package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrii-bodnar/vibesdk-templates/internal/infra/logger"
	"github.com/andrii-bodnar/vibesdk-templates/internal/infra/mdinject"
	"github.com/andrii-bodnar/vibesdk-templates/internal/usecase"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type globalOpts struct {
	root     string
	config   string
	debug    bool
	keepDeps bool
}

func newRootCmd() *cobra.Command {
	var g globalOpts
	var dryRun bool

	cmd := &cobra.Command{
		Use:          "typesync",
		Short:        "Inject @crowdin/crowdin-api-client type declarations into template docs",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			opts := []usecase.SyncOption{
				usecase.WithCleanup(ws.cfg.Cleanup && !g.keepDeps),
				usecase.WithProgress(ws.printer),
			}

			injector := ws.injector()
			if dryRun {
				injector = ws.injector(mdinject.WithDryRun(cmd.OutOrStdout()))
			}

			uc := usecase.NewSyncTypes(ws.provisioner, ws.generator, ws.templates, injector, opts...)
			report, err := uc.Execute(cmd.Context(), ws.layout)
			if err != nil {
				if rerr := report.Err(); rerr != nil {
					l := logger.L()
					l.Debug().Err(rerr).Msg("template failures")
				}
				return err
			}
			return nil
		},
	}

	cmd.SetErrPrefix("typesync:")

	cmd.PersistentFlags().StringVarP(&g.root, "root", "r", "", "Repository root (default: nearest parent directory with typesync.yaml, else the current working directory)")
	cmd.PersistentFlags().StringVarP(&g.config, "config", "c", "", "Config file (optional; defaults to <root>/typesync.yaml)")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging to stderr and .typesync/logs/typesync.log")
	cmd.PersistentFlags().BoolVar(&g.keepDeps, "keep-deps", false, "Do not remove node_modules from the reference project afterwards")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print a diff of every pending change instead of writing")

	cmd.AddCommand(generateCmd(&g))
	cmd.AddCommand(templatesCmd(&g))
	cmd.AddCommand(versionCmd())
	return cmd
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
