package http

import (
	"net/http"

	"ledger/internal/log"
)

// handleListEntries serves GET /api/entries. With ?start= (and optionally
// ?end=) the list is restricted to that month range.
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("start") != "" || q.Get("end") != "" {
		start, end, err := s.parseRangeQuery(r)
		if err != nil {
			s.writeServiceError(w, r, log.OpList, err)
			return
		}
		entries, err := s.entries.EntriesInRange(r.Context(), start, end)
		if err != nil {
			s.writeServiceError(w, r, log.OpList, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntriesJSON(entries, s.opts.Currency))
		return
	}

	entries, err := s.entries.ListEntries(r.Context())
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntriesJSON(entries, s.opts.Currency))
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, log.OpAdd, err)
		return
	}

	ne, err := req.toNewEntry(s.opts.Currency)
	if err != nil {
		s.writeServiceError(w, r, log.OpAdd, err)
		return
	}

	entry, err := s.entries.AddEntry(r.Context(), ne)
	if err != nil {
		s.writeServiceError(w, r, log.OpAdd, err)
		return
	}

	w.Header().Set("Location", "/api/entries/"+formatID(entry.ID))
	writeJSON(w, http.StatusCreated, toEntryJSON(entry, s.opts.Currency))
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}
	entry, err := s.entries.GetEntry(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryJSON(entry, s.opts.Currency))
}

// handleDeleteEntry always answers 200; deleted is false when the id did not exist.
func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}
	removed, err := s.entries.DeleteEntry(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": removed > 0})
}
