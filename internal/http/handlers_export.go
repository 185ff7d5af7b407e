package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"ledger/internal/core"
	"ledger/internal/export"
	"ledger/internal/log"
)

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, export.FormatCSV)
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, export.FormatXLSX)
}

// handleExport writes every entry, or only those in ?start=&end= when given.
// The file is built in memory so a failure can still produce a JSON error.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, format export.Format) {
	var (
		entries []core.Entry
		label   string
		err     error
	)

	q := r.URL.Query()
	if q.Get("start") != "" || q.Get("end") != "" {
		var start, end core.YearMonth
		start, end, err = s.parseRangeQuery(r)
		if err != nil {
			s.writeServiceError(w, r, log.OpExport, err)
			return
		}
		entries, err = s.entries.EntriesInRange(r.Context(), start, end)
		label = start.String()
		if end != start {
			label += "_" + end.String()
		}
	} else {
		entries, err = s.entries.ListEntries(r.Context())
	}
	if err != nil {
		s.writeServiceError(w, r, log.OpExport, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, entries); err != nil {
		s.writeServiceError(w, r, log.OpExport, err)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Entries exported",
		log.FieldFormat, string(format),
		log.FieldRows, len(entries),
		log.FieldOperation, log.OpExport)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName(label)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
