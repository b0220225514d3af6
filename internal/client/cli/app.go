package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/spabook/internal/client/client"
	"github.com/dmitrijs2005/spabook/internal/client/config"
	"github.com/dmitrijs2005/spabook/internal/client/events"
	"github.com/dmitrijs2005/spabook/internal/client/nav"
	"github.com/dmitrijs2005/spabook/internal/client/repositories/session"
	"github.com/dmitrijs2005/spabook/internal/client/services"
	"github.com/dmitrijs2005/spabook/internal/client/timer"
	"github.com/dmitrijs2005/spabook/internal/common"
	"github.com/dmitrijs2005/spabook/internal/filex"
	"github.com/dmitrijs2005/spabook/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// page is a mounted view. Close tears it down.
type page interface {
	Close()
}

type App struct {
	config    *config.Config
	db        *sql.DB
	api       client.Client
	bus       *events.Bus
	session   *services.SessionService
	catalog   *services.CatalogService
	history   *nav.History
	scheduler timer.Scheduler
	log       logging.Logger
	logCloser io.Closer
	reader    *bufio.Reader
	out       io.Writer
	stopWatch func()

	mu      sync.Mutex
	mode    Mode
	current page
	route   string
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	for _, p := range []string{c.DatabasePath, c.LogFile} {
		if err := filex.EnsureParentDir(p); err != nil {
			return nil, err
		}
	}

	log, logCloser := logging.NewFileLogger(logging.FileOptions{
		Path:       c.LogFile,
		MaxSizeMB:  10,
		MaxBackups: 3,
	})

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		_ = logCloser.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}

	api, err := client.NewHTTPClient(client.HTTPOptions{
		BaseURL:    c.APIBaseURL,
		Timeout:    c.RequestTimeout,
		MaxRetries: c.MaxRetries,
		Logger:     log,
	})
	if err != nil {
		_ = db.Close()
		_ = logCloser.Close()
		return nil, err
	}

	a := newApp(c, db, api, log, bufio.NewReader(os.Stdin), os.Stdout)
	a.logCloser = logCloser
	return a, nil
}

// newApp wires the services around already opened resources.
func newApp(c *config.Config, db *sql.DB, api client.Client, log logging.Logger, r *bufio.Reader, w io.Writer) *App {
	a := &App{
		config:    c,
		db:        db,
		api:       api,
		bus:       events.NewBus(),
		session:   services.NewSessionService(db, session.NewSQLiteRepository(db), log),
		catalog:   services.NewCatalogService(api, c.CatalogTTL, log),
		scheduler: timer.Real{},
		log:       log,
		reader:    r,
		out:       w,
		route:     common.RouteHome,
	}
	a.history = nav.NewHistory(a.onNavigate)

	stopCatalog := a.catalog.Watch(a.bus)
	stopUser := a.bus.Subscribe(events.TopicUserVerified, a.onUserVerified)
	stopRefresh := a.bus.Subscribe(events.TopicDataRefresh, a.onDataRefresh)
	a.stopWatch = func() {
		stopCatalog()
		stopUser()
		stopRefresh()
	}
	return a
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Run restores the stored session, starts the connectivity watcher and
// blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.reload(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to spabook (type 'help' for commands)")
	promptFn := a.prompt
	if !isTerminal(int(os.Stdin.Fd())) {
		promptFn = func() string { return "" }
	}
	runREPL(ctx, a, promptFn, a.reader)
}

// Close tears down the current page and releases every resource. It is
// safe to call more than once.
func (a *App) Close() {
	a.unmount()

	a.mu.Lock()
	stop := a.stopWatch
	a.stopWatch = nil
	a.mu.Unlock()
	if stop == nil {
		return
	}
	stop()
	a.bus.Close()

	if err := a.api.Close(); err != nil {
		a.log.Warn(context.Background(), "closing api client", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}

// StartOnlineStatusWatcher pings the API every interval and flips the mode
// shown in the prompt. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.api.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
