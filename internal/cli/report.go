package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ledger/internal/core"
	"ledger/internal/log"
	"ledger/internal/report"
)

type reportOptions struct {
	markdown bool
	style    string
	width    int
}

func newReportCommand(app *App) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summaries and category breakdowns",
		Long: `Summaries and category breakdowns.

Output is markdown styled for the terminal; pass --markdown=false for the
plain text layout.`,
	}

	cmd.PersistentFlags().BoolVar(&opts.markdown, "markdown", true, "render markdown (false prints plain text)")
	cmd.PersistentFlags().StringVar(&opts.style, "style", "", "glamour style: dark, light, notty (default picks from the terminal)")
	cmd.PersistentFlags().IntVar(&opts.width, "width", report.DefaultWidth, "word wrap column for markdown output")

	cmd.AddCommand(
		newReportMonthCommand(app, opts),
		newReportRangeCommand(app, opts),
		newReportCategoryCommand(app, opts),
		newReportChartCommand(app),
	)
	return cmd
}

func newReportMonthCommand(app *App, opts *reportOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Income, expense and balance for one month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ym, err := app.monthArg(args, 0)
			if err != nil {
				return err
			}
			s, err := app.aggregator.MonthSummary(cmd.Context(), ym)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(),
				func(w io.Writer) error { return report.MonthText(w, s) },
				func() string { return report.MonthMarkdown(s, app.cfg.Currency) })
		},
	}
}

func newReportRangeCommand(app *App, opts *reportOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "range <start YYYY-MM> <end YYYY-MM>",
		Short: "Income, expense and balance over an inclusive month range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.aggregator.RangeSummary(cmd.Context(), core.YearMonth(args[0]), core.YearMonth(args[1]))
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(),
				func(w io.Writer) error { return report.RangeText(w, s) },
				func() string { return report.RangeMarkdown(s, app.cfg.Currency) })
		},
	}
}

func newReportCategoryCommand(app *App, opts *reportOptions) *cobra.Command {
	var (
		income, expense, both bool
		to                    string
	)

	cmd := &cobra.Command{
		Use:   "category [YYYY-MM]",
		Short: "Totals per category, largest first",
		Long: `Totals per category, largest first.

Expenses are shown by default; --income shows income and --both shows
expenses followed by income. --to extends the month into a range.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := app.monthArg(args, 0)
			if err != nil {
				return err
			}
			end := start
			if to != "" {
				if end, err = core.ParseYearMonth(to); err != nil {
					return err
				}
			}

			kinds := []core.Kind{core.Expense}
			switch {
			case both:
				kinds = core.Kinds
			case income:
				kinds = []core.Kind{core.Income}
			}

			totals, err := app.aggregator.CategoryReport(cmd.Context(), start, end, kinds...)
			if err != nil {
				return err
			}

			period := periodLabel(start, end)
			return opts.print(cmd.OutOrStdout(),
				func(w io.Writer) error { return report.CategoryText(w, period, totals) },
				func() string { return report.CategoryMarkdown(period, totals, app.cfg.Currency) })
		},
	}

	cmd.Flags().BoolVar(&income, "income", false, "show income categories")
	cmd.Flags().BoolVar(&expense, "expense", false, "show expense categories (default)")
	cmd.Flags().BoolVar(&both, "both", false, "show expense then income categories")
	cmd.Flags().StringVar(&to, "to", "", "last month of the range (YYYY-MM)")
	cmd.MarkFlagsMutuallyExclusive("income", "expense", "both")
	return cmd
}

func newReportChartCommand(app *App) *cobra.Command {
	var (
		income bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "chart [YYYY-MM]",
		Short: "Write a PNG bar chart of category totals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ym, err := app.monthArg(args, 0)
			if err != nil {
				return err
			}
			kind := core.Expense
			if income {
				kind = core.Income
			}

			totals, err := app.aggregator.CategoryTotals(cmd.Context(), ym, kind)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			title := fmt.Sprintf("%s by category %s", kind.Title(), ym)
			if err := report.CategoryChart(&buf, title, totals); err != nil {
				return err
			}

			if output == "" {
				output = fmt.Sprintf("categories_%s_%s.png", kind, ym)
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}

			app.logger.InfoContext(cmd.Context(), "Chart written",
				log.FieldMonth, ym.String(),
				log.FieldKind, kind.String(),
				"file", output)
			fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&income, "income", false, "chart income instead of expenses")
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file to write")
	return cmd
}

// print writes the plain layout or the rendered markdown depending on flags.
func (o *reportOptions) print(w io.Writer, plain func(io.Writer) error, markdown func() string) error {
	if !o.markdown {
		return plain(w)
	}
	out, err := report.RenderTerminal(markdown(), o.style, o.width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func periodLabel(start, end core.YearMonth) string {
	if start == end {
		return start.String()
	}
	return fmt.Sprintf("%s..%s", start, end)
}
