package utils

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"sync"
	"time"

	"calendarcorp/src-server/ical"
	"calendarcorp/src-server/model"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type AppState struct {
	Config *Config
	RawDB  *sql.DB
	BunDB  *bun.DB
	When   *when.Parser

	Events   *model.EventStore
	Exporter *ical.Exporter

	MetricChans *Metric

	startTime time.Time

	// closed on shutdown, one per background worker
	gracefulShutdownChans []*chan struct{}
	gracefulShutdownMu    sync.Mutex
	shuttingDown          bool

	AppCloseSignalChan chan os.Signal
}

func NewAppState() *AppState {
	as := &AppState{
		startTime:          time.Now(),
		AppCloseSignalChan: make(chan os.Signal, 1),
		MetricChans:        NewMetric(),
	}

	// date parser
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	// env
	as.Config = NewConfig()

	// database
	var err error
	databasePath := as.Config.GetDatabasePath()
	dsn := databasePath
	if databasePath != ":memory:" {
		dsn = "file:" + databasePath + "?mode=rwc"
	}
	as.RawDB, err = sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		slog.Error("cannot open sqlite database", "error", err)
		os.Exit(1)
	}
	if databasePath == ":memory:" {
		// every pooled connection would get its own in-memory database
		as.RawDB.SetMaxOpenConns(1)
	}
	as.RawDB.SetMaxIdleConns(8)

	as.BunDB = bun.NewDB(as.RawDB, sqlitedialect.New())
	as.BunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(true),
		bundebug.FromEnv("BUNDEBUG"),
	))

	if err := model.CreateSchema(context.Background(), as.BunDB); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}

	// calendar
	as.Events = model.NewEventStore(as.BunDB, as.Config.GetLocation())
	as.Events.OnRead = func(d time.Duration) { Observe(as.MetricChans.DatabaseRead, d) }
	as.Events.OnWrite = func(d time.Duration) { Observe(as.MetricChans.DatabaseWrite, d) }
	as.Exporter = ical.NewExporter(as.Config.GetIcsProdID(), as.Config.GetIcsUIDDomain())

	return as
}

// Now returns the current time in the configured location.
func (as *AppState) Now() time.Time {
	return time.Now().In(as.Config.GetLocation())
}

func (as *AppState) GetUptime() time.Duration {
	return time.Since(as.startTime).Round(time.Second)
}

// CreateGracefulShutdownChan hands out a channel closed by GracefulShutdown.
// Once shutdown has begun the channel comes back already closed.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.gracefulShutdownMu.Lock()
	defer as.gracefulShutdownMu.Unlock()
	ch := make(chan struct{})
	if as.shuttingDown {
		close(ch)
		return &ch
	}
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, &ch)
	return &ch
}

// GracefulShutdown stops the background workers and closes the database.
func (as *AppState) GracefulShutdown() {
	as.gracefulShutdownMu.Lock()
	as.shuttingDown = true
	for _, ch := range as.gracefulShutdownChans {
		close(*ch)
	}
	as.gracefulShutdownChans = nil
	as.gracefulShutdownMu.Unlock()

	if err := as.BunDB.Close(); err != nil {
		slog.Warn("can't close database", "error", err)
	}
}
