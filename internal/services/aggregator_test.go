package services

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"ledger/internal/core"
	"ledger/internal/log"
	"ledger/internal/storage"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func (c *fixedClock) Set(year int, month time.Month, day int) {
	c.t = time.Date(year, month, day, 8, 0, 0, 0, time.UTC)
}

func quietLogger() *log.Logger {
	return log.New(log.Config{Component: log.ComponentApp, Output: &bytes.Buffer{}})
}

func newServices(t *testing.T) (*EntryService, *Aggregator, *fixedClock) {
	t.Helper()
	clock := &fixedClock{t: time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)}
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"),
		storage.WithClock(clock.Now),
		storage.WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	logger := quietLogger()
	return NewEntryService(repo, logger), NewAggregator(repo, logger), clock
}

func add(t *testing.T, svc *EntryService, kind core.Kind, amount int64, category string) core.Entry {
	t.Helper()
	e, err := svc.AddEntry(context.Background(), core.NewEntry{Kind: kind, Amount: amount, Category: category})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	return e
}

func TestEndToEndMonthSummary(t *testing.T) {
	svc, agg, clock := newServices(t)
	ctx := context.Background()

	note := "lunch"
	if _, err := svc.AddEntry(ctx, core.NewEntry{Kind: core.Expense, Amount: 1200, Category: "food", Note: &note}); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	add(t, svc, core.Income, 5000, "salary")

	ym := core.CurrentYearMonth(clock.Now())
	s, err := agg.MonthSummary(ctx, ym)
	if err != nil {
		t.Fatalf("month summary: %v", err)
	}
	want := core.MonthSummary{Month: ym, Income: 5000, Expense: 1200, Balance: 3800}
	if s != want {
		t.Fatalf("expected %+v, got %+v", want, s)
	}
}

func TestMonthSummaryEmptyMonthIsZero(t *testing.T) {
	_, agg, _ := newServices(t)
	s, err := agg.MonthSummary(context.Background(), "1999-01")
	if err != nil {
		t.Fatalf("month summary: %v", err)
	}
	if s.Income != 0 || s.Expense != 0 || s.Balance != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestMonthSummaryMonotonicIncome(t *testing.T) {
	svc, agg, clock := newServices(t)
	ctx := context.Background()
	ym := core.CurrentYearMonth(clock.Now())

	add(t, svc, core.Expense, 700, "rent")
	before, err := agg.MonthSummary(ctx, ym)
	if err != nil {
		t.Fatalf("before: %v", err)
	}
	add(t, svc, core.Income, 250, "gift")
	after, err := agg.MonthSummary(ctx, ym)
	if err != nil {
		t.Fatalf("after: %v", err)
	}
	if after.Income-before.Income != 250 || after.Expense != before.Expense {
		t.Fatalf("unexpected change: before=%+v after=%+v", before, after)
	}
	if after.Income-after.Expense != after.Balance {
		t.Fatalf("balance mismatch %+v", after)
	}
}

func TestRangeSummaryInclusive(t *testing.T) {
	svc, agg, clock := newServices(t)
	ctx := context.Background()

	clock.Set(2023, time.December, 31)
	add(t, svc, core.Income, 1, "dec")
	clock.Set(2024, time.January, 1)
	add(t, svc, core.Income, 10, "jan")
	clock.Set(2024, time.February, 15)
	add(t, svc, core.Expense, 4, "feb")
	clock.Set(2024, time.March, 31)
	add(t, svc, core.Income, 100, "mar")
	clock.Set(2024, time.April, 1)
	add(t, svc, core.Expense, 1000, "apr")

	r, err := agg.RangeSummary(ctx, "2024-01", "2024-03")
	if err != nil {
		t.Fatalf("range summary: %v", err)
	}
	want := core.RangeSummary{StartMonth: "2024-01", EndMonth: "2024-03", Income: 110, Expense: 4, Balance: 106}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}

	if _, err := agg.RangeSummary(ctx, "2024-03", "2024-01"); !errors.Is(err, core.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := agg.RangeSummary(ctx, "2024-3", "2024-04"); !errors.Is(err, core.ErrInvalidYearMonth) {
		t.Fatalf("expected ErrInvalidYearMonth, got %v", err)
	}
}

func TestCategoryTotalsOrdering(t *testing.T) {
	svc, agg, clock := newServices(t)
	ctx := context.Background()
	ym := core.CurrentYearMonth(clock.Now())

	add(t, svc, core.Expense, 500, "food")
	add(t, svc, core.Expense, 300, "food")
	add(t, svc, core.Expense, 800, "rent")
	add(t, svc, core.Expense, 900, "travel")
	add(t, svc, core.Income, 5000, "salary")

	totals, err := agg.CategoryTotals(ctx, ym, core.Expense)
	if err != nil {
		t.Fatalf("category totals: %v", err)
	}
	want := []core.CategoryTotal{
		{Category: "travel", Total: 900},
		{Category: "food", Total: 800},
		{Category: "rent", Total: 800},
	}
	if len(totals) != len(want) {
		t.Fatalf("expected %v, got %v", want, totals)
	}
	for i := range want {
		if totals[i] != want[i] {
			t.Fatalf("position %d: expected %v, got %v", i, want[i], totals[i])
		}
	}

	income, err := agg.CategoryTotals(ctx, ym, core.Income)
	if err != nil || len(income) != 1 || income[0].Total != 5000 {
		t.Fatalf("unexpected income totals %v (err=%v)", income, err)
	}
}

func TestCategoryTotalsEmptyIsNotError(t *testing.T) {
	_, agg, _ := newServices(t)
	totals, err := agg.CategoryTotals(context.Background(), "2001-01", core.Income)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if totals == nil || len(totals) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", totals)
	}
}

func TestCategoryTotalsInRangeAndReport(t *testing.T) {
	svc, agg, clock := newServices(t)
	ctx := context.Background()

	clock.Set(2024, time.January, 5)
	add(t, svc, core.Expense, 100, "food")
	clock.Set(2024, time.February, 5)
	add(t, svc, core.Expense, 150, "food")
	add(t, svc, core.Income, 999, "salary")
	clock.Set(2024, time.March, 5)
	add(t, svc, core.Expense, 10, "fun")

	totals, err := agg.CategoryTotalsInRange(ctx, "2024-01", "2024-02", core.Expense)
	if err != nil {
		t.Fatalf("range totals: %v", err)
	}
	if len(totals) != 1 || totals[0] != (core.CategoryTotal{Category: "food", Total: 250}) {
		t.Fatalf("unexpected range totals %v", totals)
	}

	report, err := agg.CategoryReport(ctx, "2024-01", "2024-03", core.Expense, core.Income)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(report) != 2 || report[0].Kind != core.Expense || report[1].Kind != core.Income {
		t.Fatalf("unexpected report kinds %+v", report)
	}
	if len(report[0].Totals) != 2 || report[1].Totals[0].Total != 999 {
		t.Fatalf("unexpected report totals %+v", report)
	}

	if _, err := agg.CategoryTotals(ctx, "2024-01", core.Kind(9)); !errors.Is(err, core.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

type failingReader struct{ err error }

func (f failingReader) SumByKind(context.Context, core.YearMonth, core.YearMonth) (int64, int64, error) {
	return 0, 0, f.err
}

func (f failingReader) CategoryTotals(context.Context, core.YearMonth, core.YearMonth, core.Kind) ([]core.CategoryTotal, error) {
	return nil, f.err
}

func TestAggregatorPropagatesStorageErrors(t *testing.T) {
	storageErr := core.NewStorageError("sum by kind", errors.New("disk I/O error"))
	agg := NewAggregator(failingReader{err: storageErr}, quietLogger())
	ctx := context.Background()

	var se *core.StorageError
	if _, err := agg.MonthSummary(ctx, "2024-01"); !errors.As(err, &se) {
		t.Fatalf("expected StorageError from MonthSummary, got %v", err)
	}
	if _, err := agg.CategoryTotals(ctx, "2024-01", core.Expense); !errors.As(err, &se) {
		t.Fatalf("expected StorageError from CategoryTotals, got %v", err)
	}
}
