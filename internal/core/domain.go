package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Expense Kind = iota
	Income
)

type (
	// Kind classifies an entry as money going out or coming in.
	// The sign of an entry is carried by its Kind, never by its amount.
	Kind int

	// Entry is one recorded monetary event as persisted by the store.
	Entry struct {
		ID        int64
		Kind      Kind
		Amount    int64 // smallest currency unit, always > 0
		Category  string
		Note      *string
		CreatedAt string // YYYY-MM-DD HH:MM:SS, store local time
	}

	// NewEntry holds the caller-owned fields of an entry about to be added.
	// Identity and timestamp are assigned by the store.
	NewEntry struct {
		Kind     Kind
		Amount   int64
		Category string
		Note     *string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidKind      = errors.New("invalid kind")
	ErrInvalidCategory  = errors.New("empty category")
	ErrInvalidYearMonth = errors.New("invalid year-month")
	ErrInvalidRange     = errors.New("end month before start month")
	ErrNotFound         = errors.New("entry not found")
)

// Kinds lists every valid kind in persistence order. It is also the order
// in which a report covering both kinds presents them. Callers must not modify it.
var Kinds = []Kind{Expense, Income}

// ParseKind maps the textual kind used at the boundaries ("expense", "income")
// to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense":
		return Expense, nil
	case "income":
		return Income, nil
	default:
		return 0, fmt.Errorf("%w: %q (use 'expense' or 'income')", ErrInvalidKind, s)
	}
}

func (k Kind) String() string {
	switch k {
	case Expense:
		return "expense"
	case Income:
		return "income"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Title returns the capitalised label used in listings and report headings.
func (k Kind) Title() string {
	switch k {
	case Expense:
		return "Expense"
	case Income:
		return "Income"
	default:
		return k.String()
	}
}

func (k Kind) Validate() error {
	if k != Expense && k != Income {
		return fmt.Errorf("%w: %d", ErrInvalidKind, int(k))
	}
	return nil
}

func (e NewEntry) Validate() error {
	if err := e.Kind.Validate(); err != nil {
		return err
	}
	if err := (Money{Cents: e.Amount}).Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrInvalidCategory
	}
	return nil
}

// NoteText returns the note or an empty string when absent.
func (e Entry) NoteText() string {
	if e.Note == nil {
		return ""
	}
	return *e.Note
}

// NotePtr returns nil for an empty note so that "no note" is stored as NULL.
func NotePtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
