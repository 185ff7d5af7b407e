package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ledger/internal/core"
	"ledger/internal/export"
	"ledger/internal/log"
)

func newExportCommand(app *App) *cobra.Command {
	var format, month, from, to, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as CSV or XLSX",
		Long: `Export entries as CSV or XLSX with the columns
id, kind, amount, category, note, created_at.

Without --month, --from or --to every entry is exported. CSV goes to stdout
unless -o is given; XLSX always goes to a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			var (
				entries []core.Entry
				label   string
			)
			switch {
			case month != "":
				ym, perr := core.ParseYearMonth(month)
				if perr != nil {
					return perr
				}
				entries, err = app.entries.EntriesInMonth(cmd.Context(), ym)
				label = ym.String()
			case from != "" || to != "":
				start, end, rerr := app.rangeFlags(from, to)
				if rerr != nil {
					return rerr
				}
				entries, err = app.entries.EntriesInRange(cmd.Context(), start, end)
				label = periodLabel(start, end)
			default:
				entries, err = app.entries.ListEntries(cmd.Context())
			}
			if err != nil {
				return err
			}

			if output == "" && f == export.FormatXLSX {
				output = f.FileName(label)
			}

			if output != "" && output != "-" {
				err = writeExportFile(output, f, entries)
			} else {
				err = export.Write(cmd.OutOrStdout(), f, entries)
			}
			if err != nil {
				return err
			}

			app.logger.WithComponent(log.ComponentExport).InfoContext(cmd.Context(), "Entries exported",
				log.FieldFormat, string(f),
				log.FieldRows, len(entries),
				log.FieldOperation, log.OpExport)
			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d entries to %s\n", len(entries), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatCSV), "csv or xlsx")
	cmd.Flags().StringVar(&month, "month", "", "only entries created in YYYY-MM")
	cmd.Flags().StringVar(&from, "from", "", "first month of the range (YYYY-MM)")
	cmd.Flags().StringVar(&to, "to", "", "last month of the range (YYYY-MM)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (- for stdout)")
	cmd.MarkFlagsMutuallyExclusive("month", "from")
	cmd.MarkFlagsMutuallyExclusive("month", "to")
	return cmd
}

// writeExportFile writes entries to path. A failed write or close removes the
// file so a truncated export is never left behind.
func writeExportFile(path string, f export.Format, entries []core.Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.Write(file, f, entries); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
