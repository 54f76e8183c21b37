package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/tardis/internal/client/api"
	"github.com/dmitrijs2005/tardis/internal/client/config"
	"github.com/dmitrijs2005/tardis/internal/client/storage"
	"github.com/dmitrijs2005/tardis/internal/filex"
	"github.com/dmitrijs2005/tardis/internal/logging"
	"github.com/dmitrijs2005/tardis/internal/session"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

// apiClient is the REST client plus the refresh-token hook of *api.HTTPClient.
type apiClient interface {
	api.Client
	SetRefreshToken(token string)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	api     apiClient
	health  pinger
	session *session.Store
	reader  *bufio.Reader
	out     io.Writer
	closers []io.Closer

	modeMu sync.RWMutex
	mode   Mode
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	logger := logging.NewText(os.Stderr, slog.LevelInfo)

	if err := filex.EnsureParentDir(c.StorageFile); err != nil {
		return nil, err
	}

	db, err := storage.OpenDatabase(ctx, c.StorageFile)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.New(storage.NewLocal(db, logger))

	hc, err := api.NewHealthChecker(c.HealthEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := newApp(c, logger, api.NewHTTPClient(c.APIBaseURL, store), hc, store, os.Stdin, os.Stdout)
	app.closers = []io.Closer{hc, dbCloser{db}}
	return app, nil
}

func newApp(c *config.Config, l logging.Logger, client apiClient, health pinger, store *session.Store, in io.Reader, out io.Writer) *App {
	a := &App{
		config:  c,
		logger:  l.With("module", "cli"),
		api:     client,
		health:  health,
		session: store,
		reader:  bufio.NewReader(in),
		out:     out,
	}
	store.Subscribe(func(s session.State) {
		a.logger.Debug(context.Background(), "session changed", "authenticated", s.Authenticated())
	})
	return a
}

type dbCloser struct{ db *sql.DB }

func (d dbCloser) Close() error { return d.db.Close() }

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "Switched mode", "mode", mode)
	}
}

// Run restores the session, starts the online watcher and blocks in the REPL.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		for _, c := range a.closers {
			_ = c.Close()
		}
	}()

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) checkOnline() {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	err := a.health.Ping(ctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline()
		case <-ctx.Done():
			return
		}
	}
}
