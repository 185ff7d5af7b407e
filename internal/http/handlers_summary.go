package http

import (
	"net/http"

	"ledger/internal/core"
	"ledger/internal/log"
)

func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	ym, err := parseMonthParam(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpSummary, err)
		return
	}
	sum, err := s.summary.MonthSummary(r.Context(), ym)
	if err != nil {
		s.writeServiceError(w, r, log.OpSummary, err)
		return
	}
	writeJSON(w, http.StatusOK, MonthSummaryJSON{
		Month:   sum.Month.String(),
		Income:  sum.Income,
		Expense: sum.Expense,
		Balance: sum.Balance,
	})
}

func (s *Server) handleRangeSummary(w http.ResponseWriter, r *http.Request) {
	start, end, err := s.parseRangeQuery(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpSummary, err)
		return
	}
	sum, err := s.summary.RangeSummary(r.Context(), start, end)
	if err != nil {
		s.writeServiceError(w, r, log.OpSummary, err)
		return
	}
	writeJSON(w, http.StatusOK, RangeSummaryJSON{
		StartMonth: sum.StartMonth.String(),
		EndMonth:   sum.EndMonth.String(),
		Income:     sum.Income,
		Expense:    sum.Expense,
		Balance:    sum.Balance,
	})
}

func (s *Server) handleCategoryMonth(w http.ResponseWriter, r *http.Request) {
	ym, err := parseMonthParam(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpTotals, err)
		return
	}
	s.writeCategoryReport(w, r, ym, ym)
}

func (s *Server) handleCategoryRange(w http.ResponseWriter, r *http.Request) {
	start, end, err := s.parseRangeQuery(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpTotals, err)
		return
	}
	s.writeCategoryReport(w, r, start, end)
}

func (s *Server) writeCategoryReport(w http.ResponseWriter, r *http.Request, start, end core.YearMonth) {
	kinds, err := parseKinds(r)
	if err != nil {
		s.writeServiceError(w, r, log.OpTotals, err)
		return
	}
	report, err := s.summary.CategoryReport(r.Context(), start, end, kinds...)
	if err != nil {
		s.writeServiceError(w, r, log.OpTotals, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryReportJSON(start, end, report))
}
