package cli

import (
	"io"
	"os"
	"time"

	"ledger/internal/config"
	"ledger/internal/core"
	"ledger/internal/log"
	"ledger/internal/services"
	"ledger/internal/storage"
)

// App carries the state one command invocation needs. The store is opened
// before the command runs and closed after it, never shared across runs.
type App struct {
	Out       io.Writer
	Err       io.Writer
	LogOutput io.Writer

	// Now is the clock for default months and entry timestamps.
	Now func() time.Time

	configPath string
	dbPath     string
	debug      bool

	cfg        *config.Config
	logger     *log.Logger
	location   *time.Location
	store      *storage.SQLiteRepository
	entries    *services.EntryService
	aggregator *services.Aggregator
}

// NewApp returns an App writing results to stdout and logs to stderr.
func NewApp() *App {
	return &App{
		Out:       os.Stdout,
		Err:       os.Stderr,
		LogOutput: os.Stderr,
		Now:       time.Now,
	}
}

// open loads configuration and opens the store. Flags given on the command
// line win over the config file and the environment.
func (a *App) open() error {
	LoadEnvFile()

	cfg, err := LoadAndValidateConfig(a.configPath, func(c *config.Config) {
		if a.dbPath != "" {
			c.DBPath = a.dbPath
		}
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = SetupLogger(cfg, a.debug, a.LogOutput).WithComponent(log.ComponentCLI)

	a.location, err = cfg.Location()
	if err != nil {
		return err
	}

	store, err := InitSQLite(a.logger, cfg, storage.WithClock(a.Now))
	if err != nil {
		return err
	}
	a.store = store
	a.entries = services.NewEntryService(store, a.logger)
	a.aggregator = services.NewAggregator(store, a.logger)
	return nil
}

func (a *App) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// currentMonth is the month report commands default to.
func (a *App) currentMonth() core.YearMonth {
	return core.CurrentYearMonth(a.Now().In(a.location))
}

// monthArg returns args[i] parsed as YYYY-MM, or the current month when absent.
func (a *App) monthArg(args []string, i int) (core.YearMonth, error) {
	if len(args) > i {
		return core.ParseYearMonth(args[i])
	}
	return a.currentMonth(), nil
}
