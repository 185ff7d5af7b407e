package services

import (
	"context"
	"fmt"

	"ledger/internal/core"
	"ledger/internal/log"
)

// AggregateReader answers the grouped queries summaries are built from.
// Month queries are expressed as the single-month range [ym, ym].
type AggregateReader interface {
	SumByKind(ctx context.Context, start, end core.YearMonth) (income, expense int64, err error)
	CategoryTotals(ctx context.Context, start, end core.YearMonth, kind core.Kind) ([]core.CategoryTotal, error)
}

// Aggregator derives read-only summaries from the entry store. It keeps no
// state between calls: every query re-reads persisted entries.
type Aggregator struct {
	reader AggregateReader
	logger *log.Logger
}

func NewAggregator(reader AggregateReader, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Aggregator{
		reader: reader,
		logger: logger.WithComponent(log.ComponentAggregator),
	}
}

// MonthSummary totals income and expense for one month.
func (a *Aggregator) MonthSummary(ctx context.Context, ym core.YearMonth) (core.MonthSummary, error) {
	if _, err := core.ParseYearMonth(ym.String()); err != nil {
		return core.MonthSummary{}, err
	}
	income, expense, err := a.reader.SumByKind(ctx, ym, ym)
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("month summary %s: %w", ym, err)
	}
	a.logger.DebugContext(ctx, "Month summary computed",
		log.FieldMonth, ym.String(),
		log.FieldOperation, log.OpSummary)
	return core.NewMonthSummary(ym, income, expense), nil
}

// RangeSummary totals income and expense over the inclusive range [start, end].
func (a *Aggregator) RangeSummary(ctx context.Context, start, end core.YearMonth) (core.RangeSummary, error) {
	if err := core.ValidateRange(start, end); err != nil {
		return core.RangeSummary{}, err
	}
	income, expense, err := a.reader.SumByKind(ctx, start, end)
	if err != nil {
		return core.RangeSummary{}, fmt.Errorf("range summary %s..%s: %w", start, end, err)
	}
	a.logger.DebugContext(ctx, "Range summary computed",
		log.NewFields().WithRange(start.String(), end.String()).WithOperation(log.OpSummary).ToSlice()...)
	return core.NewRangeSummary(start, end, income, expense), nil
}

// CategoryTotals returns one row per category of the given kind in ym,
// largest total first, ties in ascending category order.
func (a *Aggregator) CategoryTotals(ctx context.Context, ym core.YearMonth, kind core.Kind) ([]core.CategoryTotal, error) {
	return a.CategoryTotalsInRange(ctx, ym, ym, kind)
}

func (a *Aggregator) CategoryTotalsInRange(ctx context.Context, start, end core.YearMonth, kind core.Kind) ([]core.CategoryTotal, error) {
	if err := core.ValidateRange(start, end); err != nil {
		return nil, err
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	totals, err := a.reader.CategoryTotals(ctx, start, end, kind)
	if err != nil {
		return nil, fmt.Errorf("category totals %s..%s: %w", start, end, err)
	}
	if totals == nil {
		totals = []core.CategoryTotal{}
	}
	return totals, nil
}

// CategoryReport computes category totals for each requested kind over
// [start, end], in the order the kinds were given.
func (a *Aggregator) CategoryReport(ctx context.Context, start, end core.YearMonth, kinds ...core.Kind) ([]core.KindTotals, error) {
	if len(kinds) == 0 {
		kinds = []core.Kind{core.Expense}
	}
	report := make([]core.KindTotals, 0, len(kinds))
	for _, kind := range kinds {
		totals, err := a.CategoryTotalsInRange(ctx, start, end, kind)
		if err != nil {
			return nil, err
		}
		report = append(report, core.KindTotals{Kind: kind, Totals: totals})
	}
	return report, nil
}
