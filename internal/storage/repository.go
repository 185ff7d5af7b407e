package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ledger/internal/core"
	"ledger/internal/log"

	_ "modernc.org/sqlite"
)

const (
	driverName = "sqlite"

	// createdAtLayout is fixed-width and zero-padded so that string order
	// equals chronological order and the first 7 bytes are YYYY-MM.
	createdAtLayout = "2006-01-02 15:04:05"

	busyTimeoutMillis = 5000
)

// Kind discriminants as stored in the entries.kind column.
const (
	kindExpenseDB int64 = 0
	kindIncomeDB  int64 = 1
)

// SQLiteRepository is the durable entry store. Every query reads the
// database directly; nothing is cached between calls.
type SQLiteRepository struct {
	db       *sql.DB
	queries  *Queries
	path     string
	now      func() time.Time
	location *time.Location
}

// Option customises a repository.
type Option func(*SQLiteRepository)

// WithClock sets the source of insertion timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *SQLiteRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLocation sets the time zone creation timestamps are recorded in.
func WithLocation(loc *time.Location) Option {
	return func(r *SQLiteRepository) {
		if loc != nil {
			r.location = loc
		}
	}
}

// DSN returns the driver connection string for dbPath. A busy timeout lets
// several processes share the file; SQLite serialises their writes.
func DSN(dbPath string) string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", dbPath, busyTimeoutMillis)
}

func NewSQLiteRepository(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	if dbPath == "" {
		return nil, errors.New("database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open(driverName, DSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &SQLiteRepository{
		db:       db,
		queries:  New(db),
		path:     dbPath,
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(repo)
	}

	if err := repo.Initialize(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

// Initialize ensures the schema exists. It never drops or rewrites data.
func (r *SQLiteRepository) Initialize(ctx context.Context) error {
	version, err := RunMigrations(DSN(r.path))
	if err != nil {
		return core.NewStorageError("initialize", err)
	}
	slog.DebugContext(ctx, "Ledger schema ready",
		log.FieldComponent, log.ComponentStorage,
		log.FieldDBPath, r.path,
		"schema_version", version)
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks that the database file is still reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return core.NewStorageError("ping", err)
	}
	return nil
}

// Path returns the database file location.
func (r *SQLiteRepository) Path() string {
	return r.path
}

// Add validates e, then appends it with a fresh id and the current local time.
func (r *SQLiteRepository) Add(ctx context.Context, e core.NewEntry) (core.Entry, error) {
	if err := e.Validate(); err != nil {
		return core.Entry{}, err
	}

	var note sql.NullString
	if e.Note != nil {
		note = sql.NullString{String: *e.Note, Valid: true}
	}

	row, err := r.queries.CreateEntry(ctx, CreateEntryParams{
		Kind:      kindToDB(e.Kind),
		Amount:    e.Amount,
		Category:  e.Category,
		Note:      note,
		CreatedAt: r.timestamp(),
	})
	if err != nil {
		return core.Entry{}, core.NewStorageError("add entry", err)
	}

	entry, err := toCoreEntry(row)
	if err != nil {
		return core.Entry{}, err
	}

	slog.DebugContext(ctx, "Entry saved to SQLite",
		append([]any{log.FieldComponent, log.ComponentStorage, "created_at", entry.CreatedAt},
			log.NewFields().WithEntry(entry.ID, entry.Kind.String(), entry.Amount, entry.Category).ToSlice()...)...)

	return entry, nil
}

// Get returns a single entry or core.ErrNotFound.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.Entry, error) {
	row, err := r.queries.GetEntry(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Entry{}, fmt.Errorf("get entry %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Entry{}, core.NewStorageError("get entry", err)
	}
	return toCoreEntry(row)
}

// List returns every entry, newest first; equal timestamps fall back to id.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Entry, error) {
	rows, err := r.queries.ListEntries(ctx)
	if err != nil {
		return nil, core.NewStorageError("list entries", err)
	}
	return toCoreEntries(rows)
}

// Delete removes the entry with id and reports how many rows went away.
// A missing id is not an error: the count is simply 0.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := r.queries.DeleteEntry(ctx, id)
	if err != nil {
		return 0, core.NewStorageError("delete entry", err)
	}
	return n, nil
}

func (r *SQLiteRepository) EntriesInMonth(ctx context.Context, ym core.YearMonth) ([]core.Entry, error) {
	return r.EntriesInRange(ctx, ym, ym)
}

// EntriesInRange returns entries whose creation month lies in [start, end].
func (r *SQLiteRepository) EntriesInRange(ctx context.Context, start, end core.YearMonth) ([]core.Entry, error) {
	if err := core.ValidateRange(start, end); err != nil {
		return nil, err
	}
	rows, err := r.queries.ListEntriesInRange(ctx, ListEntriesInRangeParams{
		StartMonth: start.String(),
		EndMonth:   end.String(),
	})
	if err != nil {
		return nil, core.NewStorageError("list entries in range", err)
	}
	return toCoreEntries(rows)
}

// SumByKind returns the income and expense totals over [start, end].
// Both are 0 when no rows match.
func (r *SQLiteRepository) SumByKind(ctx context.Context, start, end core.YearMonth) (income, expense int64, err error) {
	row, err := r.queries.SumByKindInRange(ctx, SumByKindInRangeParams{
		StartMonth: start.String(),
		EndMonth:   end.String(),
	})
	if err != nil {
		return 0, 0, core.NewStorageError("sum by kind", err)
	}
	return row.Income, row.Expense, nil
}

// CategoryTotals groups one kind's entries in [start, end] by category,
// ordered by total descending then category ascending.
func (r *SQLiteRepository) CategoryTotals(ctx context.Context, start, end core.YearMonth, kind core.Kind) ([]core.CategoryTotal, error) {
	rows, err := r.queries.CategoryTotalsInRange(ctx, CategoryTotalsInRangeParams{
		Kind:       kindToDB(kind),
		StartMonth: start.String(),
		EndMonth:   end.String(),
	})
	if err != nil {
		return nil, core.NewStorageError("category totals", err)
	}

	totals := make([]core.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = core.CategoryTotal{Category: row.Category, Total: row.Total}
	}
	return totals, nil
}

func (r *SQLiteRepository) timestamp() string {
	return r.now().In(r.location).Format(createdAtLayout)
}

func kindToDB(k core.Kind) int64 {
	if k == core.Income {
		return kindIncomeDB
	}
	return kindExpenseDB
}

func kindFromDB(v int64) (core.Kind, error) {
	switch v {
	case kindExpenseDB:
		return core.Expense, nil
	case kindIncomeDB:
		return core.Income, nil
	default:
		return 0, fmt.Errorf("unknown kind discriminant %d", v)
	}
}

func toCoreEntry(row Entry) (core.Entry, error) {
	kind, err := kindFromDB(row.Kind)
	if err != nil {
		return core.Entry{}, core.NewStorageError("decode entry", fmt.Errorf("entry %d: %w", row.ID, err))
	}
	e := core.Entry{
		ID:        row.ID,
		Kind:      kind,
		Amount:    row.Amount,
		Category:  row.Category,
		CreatedAt: row.CreatedAt,
	}
	if row.Note.Valid {
		note := row.Note.String
		e.Note = &note
	}
	return e, nil
}

func toCoreEntries(rows []Entry) ([]core.Entry, error) {
	entries := make([]core.Entry, 0, len(rows))
	for _, row := range rows {
		e, err := toCoreEntry(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
