package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"ledger/internal/core"
)

const maxBodyBytes = 1 << 20

var errMalformed = errors.New("malformed request")

// CreateEntryRequest is the body of POST /api/entries. Exactly one of Amount
// (minor units) or AmountMajor (decimal string in the server currency) is set.
type CreateEntryRequest struct {
	Kind        string  `json:"kind"`
	Amount      int64   `json:"amount,omitempty"`
	AmountMajor string  `json:"amount_major,omitempty"`
	Category    string  `json:"category"`
	Note        *string `json:"note,omitempty"`
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return nil
}

// toNewEntry converts a request into a domain entry. Validation of the result
// is left to the service so every caller gets the same rules.
func (req CreateEntryRequest) toNewEntry(currency string) (core.NewEntry, error) {
	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		return core.NewEntry{}, err
	}

	amount := req.Amount
	if major := strings.TrimSpace(req.AmountMajor); major != "" {
		if req.Amount != 0 {
			return core.NewEntry{}, fmt.Errorf("%w: give amount or amount_major, not both", errMalformed)
		}
		if currency == "" {
			return core.NewEntry{}, fmt.Errorf("%w: amount_major needs a configured currency", errMalformed)
		}
		amount, err = core.ParseMajorAmount(major, currency)
		if err != nil {
			return core.NewEntry{}, err
		}
	}

	var note *string
	if req.Note != nil {
		note = core.NotePtr(*req.Note)
	}

	return core.NewEntry{
		Kind:     kind,
		Amount:   amount,
		Category: strings.TrimSpace(req.Category),
		Note:     note,
	}, nil
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid entry id %q", errMalformed, chi.URLParam(r, "id"))
	}
	return id, nil
}

func parseMonthParam(r *http.Request) (core.YearMonth, error) {
	return core.ParseYearMonth(chi.URLParam(r, "month"))
}

// parseRangeQuery reads ?start=&end=. A missing end defaults to start and a
// missing start to the current month.
func (s *Server) parseRangeQuery(r *http.Request) (core.YearMonth, core.YearMonth, error) {
	q := r.URL.Query()
	start := s.currentMonth()
	if v := strings.TrimSpace(q.Get("start")); v != "" {
		ym, err := core.ParseYearMonth(v)
		if err != nil {
			return "", "", err
		}
		start = ym
	}
	end := start
	if v := strings.TrimSpace(q.Get("end")); v != "" {
		ym, err := core.ParseYearMonth(v)
		if err != nil {
			return "", "", err
		}
		end = ym
	}
	if err := core.ValidateRange(start, end); err != nil {
		return "", "", err
	}
	return start, end, nil
}

// parseKinds reads ?kind=expense|income|both, defaulting to expense.
func parseKinds(r *http.Request) ([]core.Kind, error) {
	v := strings.TrimSpace(r.URL.Query().Get("kind"))
	switch strings.ToLower(v) {
	case "":
		return []core.Kind{core.Expense}, nil
	case "both":
		return core.Kinds, nil
	}
	k, err := core.ParseKind(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	return []core.Kind{k}, nil
}
