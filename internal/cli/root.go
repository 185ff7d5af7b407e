package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// skipBootstrap lists commands that must not open the store.
var skipBootstrap = map[string]bool{
	"help":       true,
	"completion": true,
	"version":    true,
}

// Version is stamped at build time with -ldflags.
var Version = "dev"

// NewRootCommand builds the full ledger command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "ledger",
		Short: "Personal income and expense ledger",
		Long: `ledger records expenses and income in a local SQLite file and
answers monthly, per-category and month-range questions about them.

Example:
  ledger add expense 1200 food lunch with Sam
  ledger report month 2024-01
  ledger report category --both
  ledger export --format xlsx --from 2024-01 --to 2024-03 -o q1.xlsx`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipBootstrap[cmd.Name()] {
				return nil
			}
			return app.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}

	root.SetOut(app.Out)
	root.SetErr(app.Err)

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "YAML config file (environment variables still apply)")
	root.PersistentFlags().StringVar(&app.dbPath, "db", "", "ledger database file (overrides LEDGER_DB_PATH)")
	root.PersistentFlags().BoolVar(&app.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newAddCommand(app),
		newListCommand(app),
		newDeleteCommand(app),
		newReportCommand(app),
		newExportCommand(app),
		newServeCommand(app),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ledger version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

// Execute runs the command tree with args and always releases the store,
// including when the command itself fails.
func Execute(app *App, args []string) error {
	defer app.close()

	root := NewRootCommand(app)
	root.SetArgs(args)
	return root.Execute()
}
