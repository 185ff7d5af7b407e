package services

import (
	"context"
	"fmt"

	"ledger/internal/core"
	"ledger/internal/log"
)

// EntryStore is the write/read surface of the persistent entry store.
type EntryStore interface {
	Add(ctx context.Context, e core.NewEntry) (core.Entry, error)
	Get(ctx context.Context, id int64) (core.Entry, error)
	List(ctx context.Context) ([]core.Entry, error)
	Delete(ctx context.Context, id int64) (int64, error)
	EntriesInMonth(ctx context.Context, ym core.YearMonth) ([]core.Entry, error)
	EntriesInRange(ctx context.Context, start, end core.YearMonth) ([]core.Entry, error)
}

// EntryService validates requests before they reach the store and logs
// every mutation. It adds no state of its own.
type EntryService struct {
	store  EntryStore
	logger *log.Logger
}

func NewEntryService(store EntryStore, logger *log.Logger) *EntryService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &EntryService{
		store:  store,
		logger: logger.WithComponent(log.ComponentEntries),
	}
}

// AddEntry records a new entry. Invalid input is rejected before any write.
func (s *EntryService) AddEntry(ctx context.Context, e core.NewEntry) (core.Entry, error) {
	if err := e.Validate(); err != nil {
		s.logger.WarnContext(ctx, "Rejected entry",
			log.NewFields().
				WithEntry(0, e.Kind.String(), e.Amount, e.Category).
				WithOperation(log.OpAdd).
				WithError(err).
				ToSlice()...)
		return core.Entry{}, err
	}

	entry, err := s.store.Add(ctx, e)
	if err != nil {
		return core.Entry{}, fmt.Errorf("add entry: %w", err)
	}

	s.logger.InfoContext(ctx, "Entry added",
		log.NewFields().
			WithEntry(entry.ID, entry.Kind.String(), entry.Amount, entry.Category).
			WithOperation(log.OpAdd).
			ToSlice()...)

	return entry, nil
}

func (s *EntryService) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	return s.store.Get(ctx, id)
}

func (s *EntryService) ListEntries(ctx context.Context) ([]core.Entry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// DeleteEntry removes an entry and returns the number of rows removed.
// Zero means there was nothing to delete.
func (s *EntryService) DeleteEntry(ctx context.Context, id int64) (int64, error) {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete entry %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "Entry delete processed",
		log.FieldEntryID, id,
		log.FieldRemoved, removed,
		log.FieldOperation, log.OpDelete)

	return removed, nil
}

func (s *EntryService) EntriesInMonth(ctx context.Context, ym core.YearMonth) ([]core.Entry, error) {
	if _, err := core.ParseYearMonth(ym.String()); err != nil {
		return nil, err
	}
	return s.store.EntriesInMonth(ctx, ym)
}

func (s *EntryService) EntriesInRange(ctx context.Context, start, end core.YearMonth) ([]core.Entry, error) {
	if err := core.ValidateRange(start, end); err != nil {
		return nil, err
	}
	return s.store.EntriesInRange(ctx, start, end)
}
