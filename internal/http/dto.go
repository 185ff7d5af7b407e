package http

import "ledger/internal/core"

// EntryJSON is the wire form of an entry. Note is null when absent.
type EntryJSON struct {
	ID            int64   `json:"id"`
	Kind          string  `json:"kind"`
	Amount        int64   `json:"amount"`
	AmountDisplay string  `json:"amount_display,omitempty"`
	Category      string  `json:"category"`
	Note          *string `json:"note"`
	CreatedAt     string  `json:"created_at"`
}

type MonthSummaryJSON struct {
	Month   string `json:"month"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Balance int64  `json:"balance"`
}

type RangeSummaryJSON struct {
	StartMonth string `json:"start_month"`
	EndMonth   string `json:"end_month"`
	Income     int64  `json:"income"`
	Expense    int64  `json:"expense"`
	Balance    int64  `json:"balance"`
}

type CategoryTotalJSON struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

type KindTotalsJSON struct {
	Kind   string              `json:"kind"`
	Totals []CategoryTotalJSON `json:"totals"`
}

type CategoryReportJSON struct {
	StartMonth string           `json:"start_month"`
	EndMonth   string           `json:"end_month"`
	Report     []KindTotalsJSON `json:"report"`
}

func toEntryJSON(e core.Entry, currency string) EntryJSON {
	out := EntryJSON{
		ID:        e.ID,
		Kind:      e.Kind.String(),
		Amount:    e.Amount,
		Category:  e.Category,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
	if currency != "" {
		out.AmountDisplay = core.Money{Cents: e.Amount, Currency: currency}.String()
	}
	return out
}

func toEntriesJSON(entries []core.Entry, currency string) []EntryJSON {
	out := make([]EntryJSON, len(entries))
	for i, e := range entries {
		out[i] = toEntryJSON(e, currency)
	}
	return out
}

func toCategoryReportJSON(start, end core.YearMonth, report []core.KindTotals) CategoryReportJSON {
	out := CategoryReportJSON{
		StartMonth: start.String(),
		EndMonth:   end.String(),
		Report:     make([]KindTotalsJSON, len(report)),
	}
	for i, kt := range report {
		totals := make([]CategoryTotalJSON, len(kt.Totals))
		for j, ct := range kt.Totals {
			totals[j] = CategoryTotalJSON{Category: ct.Category, Total: ct.Total}
		}
		out.Report[i] = KindTotalsJSON{Kind: kt.Kind.String(), Totals: totals}
	}
	return out
}
