package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ledger/internal/core"
)

func newAddCommand(app *App) *cobra.Command {
	var major bool

	cmd := &cobra.Command{
		Use:   "add <expense|income> <amount> <category> [note...]",
		Short: "Record an expense or income",
		Long: `Record an expense or income.

Amount is an integer in the smallest currency unit (cents for EUR) unless
--major is given, in which case it is a decimal in the configured currency.
Any words after the category are joined into the note.

Flags must come before the kind: everything after it is positional, so a
negative amount such as -500 is read as an amount and rejected.`,
		Example: `  ledger add expense 1200 food lunch
  ledger add --major income 2500.00 salary`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := core.ParseKind(args[0])
			if err != nil {
				return err
			}

			var amount int64
			if major {
				amount, err = core.ParseMajorAmount(args[1], app.cfg.Currency)
			} else {
				amount, err = core.ParseAmount(args[1])
			}
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			_, err = app.entries.AddEntry(cmd.Context(), core.NewEntry{
				Kind:     kind,
				Amount:   amount,
				Category: strings.TrimSpace(args[2]),
				Note:     core.NotePtr(strings.Join(args[3:], " ")),
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Entry added successfully.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&major, "major", false, "parse amount as a decimal in the configured currency")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newListCommand(app *App) *cobra.Command {
	var month, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				entries []core.Entry
				err     error
			)
			switch {
			case month != "":
				entries, err = app.entries.EntriesInMonth(cmd.Context(), core.YearMonth(month))
			case from != "" || to != "":
				var start, end core.YearMonth
				start, end, err = app.rangeFlags(from, to)
				if err == nil {
					entries, err = app.entries.EntriesInRange(cmd.Context(), start, end)
				}
			default:
				entries, err = app.entries.ListEntries(cmd.Context())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "%s: %s %d %s %s [%d]\n",
					e.CreatedAt, e.Kind.Title(), e.Amount, e.Category, e.NoteText(), e.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only entries created in YYYY-MM")
	cmd.Flags().StringVar(&from, "from", "", "first month of the range (YYYY-MM)")
	cmd.Flags().StringVar(&to, "to", "", "last month of the range (YYYY-MM)")
	cmd.MarkFlagsMutuallyExclusive("month", "from")
	cmd.MarkFlagsMutuallyExclusive("month", "to")
	return cmd
}

func newDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ID: %s", args[0])
			}

			removed, err := app.entries.DeleteEntry(cmd.Context(), id)
			if err != nil {
				return err
			}

			if removed > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Entry deleted successfully.")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry found with ID: %d\n", id)
			}
			return nil
		},
	}
}

// rangeFlags resolves --from/--to. A missing bound takes the other one, and
// both missing means the current month.
func (a *App) rangeFlags(from, to string) (core.YearMonth, core.YearMonth, error) {
	if from == "" && to == "" {
		ym := a.currentMonth()
		return ym, ym, nil
	}
	if from == "" {
		from = to
	}
	if to == "" {
		to = from
	}
	start, err := core.ParseYearMonth(from)
	if err != nil {
		return "", "", err
	}
	end, err := core.ParseYearMonth(to)
	if err != nil {
		return "", "", err
	}
	if err := core.ValidateRange(start, end); err != nil {
		return "", "", err
	}
	return start, end, nil
}
