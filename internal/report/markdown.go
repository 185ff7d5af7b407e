package report

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"

	"ledger/internal/core"
)

func MonthMarkdown(s core.MonthSummary, currency string) string {
	return summaryMarkdown(fmt.Sprintf("Summary %s", s.Month), s.Income, s.Expense, s.Balance, currency)
}

func RangeMarkdown(s core.RangeSummary, currency string) string {
	return summaryMarkdown(fmt.Sprintf("Summary %s to %s", s.StartMonth, s.EndMonth), s.Income, s.Expense, s.Balance, currency)
}

func summaryMarkdown(title string, income, expense, balance int64, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", "Amount"},
		Rows: [][]string{
			{"Income", display(income, currency)},
			{"Expense", display(expense, currency)},
			{md.Bold("Balance"), md.Bold(display(balance, currency))},
		},
	})

	return doc.String()
}

// CategoryMarkdown renders one section per kind. Empty kinds get a
// "(no data)" line instead of an empty table.
func CategoryMarkdown(period string, report []core.KindTotals, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Category Totals %s", period))
	for _, kt := range report {
		doc.H2(kt.Kind.Title())
		if len(kt.Totals) == 0 {
			doc.PlainText(NoData)
			continue
		}

		var sum int64
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Category", "Total"},
		}
		for _, ct := range kt.Totals {
			sum += ct.Total
			table.Rows = append(table.Rows, []string{tableCell(ct.Category), display(ct.Total, currency)})
		}
		table.Rows = append(table.Rows, []string{md.Bold("Total"), md.Bold(display(sum, currency))})
		doc.Table(table)
	}

	return doc.String()
}

// tableCell keeps user text on one row of a pipe table.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func display(amount int64, currency string) string {
	return core.Money{Cents: amount, Currency: currency}.String()
}
