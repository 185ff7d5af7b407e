// Package report renders summaries and category totals for people: plain
// text, markdown (optionally styled for a terminal) and PNG bar charts.
package report

import (
	"fmt"
	"io"

	"ledger/internal/core"
)

// NoData is printed in place of an empty category table.
const NoData = "(no data)"

func MonthText(w io.Writer, s core.MonthSummary) error {
	_, err := fmt.Fprintf(w, "== Summary %s ==\nIncome : %d\nExpense: %d\nBalance: %d\n",
		s.Month, s.Income, s.Expense, s.Balance)
	return err
}

func RangeText(w io.Writer, s core.RangeSummary) error {
	_, err := fmt.Fprintf(w, "== Summary %s..%s ==\nIncome : %d\nExpense: %d\nBalance: %d\n",
		s.StartMonth, s.EndMonth, s.Income, s.Expense, s.Balance)
	return err
}

// CategoryText prints one block per kind, separated by a blank line.
func CategoryText(w io.Writer, period string, report []core.KindTotals) error {
	for i, kt := range report {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "== Category Totals (%s) %s ==\n", kt.Kind.Title(), period); err != nil {
			return err
		}
		if len(kt.Totals) == 0 {
			if _, err := fmt.Fprintln(w, NoData); err != nil {
				return err
			}
			continue
		}
		for _, ct := range kt.Totals {
			if _, err := fmt.Fprintf(w, "%-12s %d\n", ct.Category, ct.Total); err != nil {
				return err
			}
		}
	}
	return nil
}
