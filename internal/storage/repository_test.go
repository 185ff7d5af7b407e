package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"ledger/internal/core"
)

// testClock hands out the time it is currently set to.
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Set(year int, month time.Month, day int) {
	c.t = time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func newTestRepo(t *testing.T) (*SQLiteRepository, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)}
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"),
		WithClock(clock.Now),
		WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo, clock
}

func mustAdd(t *testing.T, repo *SQLiteRepository, kind core.Kind, amount int64, category string) core.Entry {
	t.Helper()
	e, err := repo.Add(context.Background(), core.NewEntry{Kind: kind, Amount: amount, Category: category})
	if err != nil {
		t.Fatalf("add %s %d %s: %v", kind, amount, category, err)
	}
	return e
}

func TestAddAssignsIDAndTimestamp(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	note := "lunch"
	e, err := repo.Add(ctx, core.NewEntry{Kind: core.Expense, Amount: 1200, Category: "food", Note: &note})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.ID <= 0 {
		t.Fatalf("expected positive id, got %d", e.ID)
	}
	if e.CreatedAt != "2024-01-15 09:30:00" {
		t.Fatalf("unexpected created_at %q", e.CreatedAt)
	}
	if e.Note == nil || *e.Note != "lunch" {
		t.Fatalf("unexpected note %v", e.Note)
	}

	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.ID != e.ID || got.Kind != core.Expense || got.Amount != 1200 || got.Category != "food" {
		t.Fatalf("unexpected listed entry %+v", got)
	}

	income := mustAdd(t, repo, core.Income, 5000, "salary")
	if income.ID <= e.ID {
		t.Fatalf("ids must increase: %d then %d", e.ID, income.ID)
	}
	if income.Note != nil {
		t.Fatalf("absent note must stay nil, got %q", *income.Note)
	}
}

func TestAddRejectsInvalidWithoutWriting(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		entry core.NewEntry
		want  error
	}{
		{"zero amount", core.NewEntry{Kind: core.Expense, Amount: 0, Category: "food"}, core.ErrInvalidAmount},
		{"negative amount", core.NewEntry{Kind: core.Income, Amount: -100, Category: "salary"}, core.ErrInvalidAmount},
		{"empty category", core.NewEntry{Kind: core.Expense, Amount: 10, Category: ""}, core.ErrInvalidCategory},
		{"bad kind", core.NewEntry{Kind: core.Kind(2), Amount: 10, Category: "x"}, core.ErrInvalidKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := repo.Add(ctx, tc.entry); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no rows persisted, got %d", len(entries))
	}
}

func TestSchemaRejectsNonPositiveAmount(t *testing.T) {
	repo, _ := newTestRepo(t)
	_, err := repo.queries.CreateEntry(context.Background(), CreateEntryParams{
		Kind:      kindExpenseDB,
		Amount:    0,
		Category:  "food",
		CreatedAt: "2024-01-01 00:00:00",
	})
	if err == nil {
		t.Fatalf("expected CHECK constraint failure for zero amount")
	}
	_, err = repo.queries.CreateEntry(context.Background(), CreateEntryParams{
		Kind:      5,
		Amount:    10,
		Category:  "food",
		CreatedAt: "2024-01-01 00:00:00",
	})
	if err == nil {
		t.Fatalf("expected CHECK constraint failure for kind 5")
	}
}

func TestListOrdering(t *testing.T) {
	repo, clock := newTestRepo(t)
	ctx := context.Background()

	clock.Set(2024, time.January, 10)
	first := mustAdd(t, repo, core.Expense, 100, "a")
	clock.Set(2024, time.February, 1)
	second := mustAdd(t, repo, core.Expense, 200, "b")
	// Same timestamp as second: id breaks the tie.
	third := mustAdd(t, repo, core.Income, 300, "c")

	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []int64{third.ID, second.ID, first.ID}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, id := range want {
		if entries[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d", i, id, entries[i].ID)
		}
	}
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	e := mustAdd(t, repo, core.Expense, 100, "food")

	n, err := repo.Delete(ctx, e.ID+100)
	if err != nil || n != 0 {
		t.Fatalf("missing id: expected 0, nil; got %d, %v", n, err)
	}
	if entries, _ := repo.List(ctx); len(entries) != 1 {
		t.Fatalf("store changed after deleting missing id")
	}

	n, err = repo.Delete(ctx, e.ID)
	if err != nil || n != 1 {
		t.Fatalf("existing id: expected 1, nil; got %d, %v", n, err)
	}
	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected entry gone, got %+v", entries)
	}

	if _, err := repo.Get(ctx, e.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Ids are never reused after deletion.
	next := mustAdd(t, repo, core.Expense, 100, "food")
	if next.ID <= e.ID {
		t.Fatalf("id reused: deleted %d, new %d", e.ID, next.ID)
	}
}

func TestInitializeIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.db")
	ctx := context.Background()

	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if repo.Path() != path {
		t.Fatalf("unexpected path %q", repo.Path())
	}
	e, err := repo.Add(ctx, core.NewEntry{Kind: core.Income, Amount: 5000, Category: "salary"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.Initialize(ctx); err != nil {
		t.Fatalf("second initialize: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Amount != 5000 || got.Category != "salary" || got.Kind != core.Income {
		t.Fatalf("entry altered by re-initialisation: %+v", got)
	}
}

func TestRunMigrationsReportsVersion(t *testing.T) {
	dsn := DSN(filepath.Join(t.TempDir(), "ledger.db"))
	for i := 0; i < 2; i++ {
		version, err := RunMigrations(dsn)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if version != schemaVersion {
			t.Fatalf("run %d: expected version %d, got %d", i, schemaVersion, version)
		}
	}
}

func TestEntriesInRange(t *testing.T) {
	repo, clock := newTestRepo(t)
	ctx := context.Background()

	clock.Set(2023, time.December, 31)
	mustAdd(t, repo, core.Expense, 1, "dec")
	clock.Set(2024, time.January, 1)
	jan := mustAdd(t, repo, core.Expense, 2, "jan")
	clock.Set(2024, time.February, 29)
	feb := mustAdd(t, repo, core.Expense, 3, "feb")
	clock.Set(2024, time.March, 31)
	mar := mustAdd(t, repo, core.Income, 4, "mar")
	clock.Set(2024, time.April, 1)
	mustAdd(t, repo, core.Expense, 5, "apr")

	entries, err := repo.EntriesInRange(ctx, "2024-01", "2024-03")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	want := []int64{mar.ID, feb.ID, jan.ID}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), entries)
	}
	for i, id := range want {
		if entries[i].ID != id {
			t.Fatalf("position %d: expected %d, got %d", i, id, entries[i].ID)
		}
	}

	month, err := repo.EntriesInMonth(ctx, "2024-02")
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	if len(month) != 1 || month[0].ID != feb.ID {
		t.Fatalf("unexpected month entries %+v", month)
	}

	if _, err := repo.EntriesInRange(ctx, "2024-03", "2024-01"); !errors.Is(err, core.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestSumByKindAndCategoryTotals(t *testing.T) {
	repo, clock := newTestRepo(t)
	ctx := context.Background()

	clock.Set(2024, time.May, 3)
	mustAdd(t, repo, core.Expense, 500, "food")
	mustAdd(t, repo, core.Expense, 300, "food")
	mustAdd(t, repo, core.Expense, 800, "rent")
	mustAdd(t, repo, core.Expense, 50, "coffee")
	mustAdd(t, repo, core.Income, 5000, "salary")

	income, expense, err := repo.SumByKind(ctx, "2024-05", "2024-05")
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if income != 5000 || expense != 1650 {
		t.Fatalf("unexpected sums income=%d expense=%d", income, expense)
	}

	income, expense, err = repo.SumByKind(ctx, "2030-01", "2030-01")
	if err != nil || income != 0 || expense != 0 {
		t.Fatalf("empty month: expected zeros, got %d %d %v", income, expense, err)
	}

	totals, err := repo.CategoryTotals(ctx, "2024-05", "2024-05", core.Expense)
	if err != nil {
		t.Fatalf("category totals: %v", err)
	}
	want := []core.CategoryTotal{
		{Category: "food", Total: 800},
		{Category: "rent", Total: 800},
		{Category: "coffee", Total: 50},
	}
	if len(totals) != len(want) {
		t.Fatalf("expected %v, got %v", want, totals)
	}
	for i := range want {
		if totals[i] != want[i] {
			t.Fatalf("position %d: expected %v, got %v", i, want[i], totals[i])
		}
	}

	none, err := repo.CategoryTotals(ctx, "2024-06", "2024-06", core.Expense)
	if err != nil {
		t.Fatalf("empty totals: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty totals, got %v", none)
	}
}

func TestKindConversion(t *testing.T) {
	for _, k := range core.Kinds {
		back, err := kindFromDB(kindToDB(k))
		if err != nil || back != k {
			t.Fatalf("kind %v round trip gave %v, %v", k, back, err)
		}
	}
	if kindToDB(core.Expense) != 0 || kindToDB(core.Income) != 1 {
		t.Fatalf("unexpected discriminants")
	}
	if _, err := kindFromDB(2); err == nil {
		t.Fatalf("expected error for unknown discriminant")
	}
}

func TestCorruptKindIsStorageError(t *testing.T) {
	_, err := toCoreEntry(Entry{ID: 1, Kind: 9, Amount: 1, Category: "x", CreatedAt: "2024-01-01 00:00:00"})
	var se *core.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}
