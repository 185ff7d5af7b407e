// Package http exposes the ledger as a JSON API for a desktop or web front end.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ledger/internal/core"
	"ledger/internal/log"
)

const requestTimeout = 30 * time.Second

// EntryAPI is the entry surface the handlers need.
type EntryAPI interface {
	AddEntry(ctx context.Context, e core.NewEntry) (core.Entry, error)
	GetEntry(ctx context.Context, id int64) (core.Entry, error)
	ListEntries(ctx context.Context) ([]core.Entry, error)
	DeleteEntry(ctx context.Context, id int64) (int64, error)
	EntriesInRange(ctx context.Context, start, end core.YearMonth) ([]core.Entry, error)
}

// SummaryAPI is the aggregate surface the handlers need.
type SummaryAPI interface {
	MonthSummary(ctx context.Context, ym core.YearMonth) (core.MonthSummary, error)
	RangeSummary(ctx context.Context, start, end core.YearMonth) (core.RangeSummary, error)
	CategoryReport(ctx context.Context, start, end core.YearMonth, kinds ...core.Kind) ([]core.KindTotals, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures presentation details of the API.
type Options struct {
	// Currency is the ISO code used to parse major-unit amounts and to
	// render amount_display. Empty disables both.
	Currency string
	// Location decides the default month when a request omits one.
	Location *time.Location
	// Now is the clock used for default months; nil means time.Now.
	Now func() time.Time
}

type Server struct {
	http.Server
	entries EntryAPI
	summary SummaryAPI
	pinger  Pinger
	logger  *log.Logger
	opts    Options
	started time.Time

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, entries EntryAPI, summary SummaryAPI, pinger Pinger, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		entries: entries,
		summary: summary,
		pinger:  pinger,
		logger:  logger.WithComponent(log.ComponentHTTP),
		opts:    opts,
		started: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(log.Middleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(securityHeaders)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", s.handleListEntries)
			r.Post("/", s.handleCreateEntry)
			r.Get("/{id}", s.handleGetEntry)
			r.Delete("/{id}", s.handleDeleteEntry)
		})
		r.Get("/summary", s.handleRangeSummary)
		r.Get("/summary/{month}", s.handleMonthSummary)
		r.Get("/categories", s.handleCategoryRange)
		r.Get("/categories/{month}", s.handleCategoryMonth)
		r.Get("/export.csv", s.handleExportCSV)
		r.Get("/export.xlsx", s.handleExportXLSX)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not_found", "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" not allowed on "+r.URL.Path)
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.logger.InfoContext(ctx, "HTTP server shutting down", log.FieldOperation, log.OpShutdown)
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// currentMonth is the month requests default to.
func (s *Server) currentMonth() core.YearMonth {
	return core.CurrentYearMonth(s.opts.Now().In(s.opts.Location))
}

// securityHeaders sets the response headers every API reply carries.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
