package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/dmitrijs2005/hopekeeper/internal/chat"
	"github.com/dmitrijs2005/hopekeeper/internal/client/client"
	"github.com/dmitrijs2005/hopekeeper/internal/client/config"
	"github.com/dmitrijs2005/hopekeeper/internal/client/services"
	"github.com/dmitrijs2005/hopekeeper/internal/client/settings"
	"github.com/dmitrijs2005/hopekeeper/internal/client/store"
	"github.com/dmitrijs2005/hopekeeper/internal/client/syncqueue"
	"github.com/dmitrijs2005/hopekeeper/internal/content"
	"github.com/dmitrijs2005/hopekeeper/internal/filex"
	"github.com/dmitrijs2005/hopekeeper/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	closers     []io.Closer
	authService services.AuthService
	store       *store.Store
	queue       *syncqueue.Queue
	prefs       settings.Repository
	catalog     *content.Catalog
	renderer    *glamour.TermRenderer

	mu       sync.RWMutex
	mode     Mode
	identity *services.Identity
	settings settings.Settings

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
	// pause replaces the real wait of timed exercises when set.
	pause func(ctx context.Context, d time.Duration) error
}

// NewApp wires local storage, the API client and the services. Logs go to
// a rotating file because the REPL owns the terminal.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}
	c.DataDir = dir

	logFile := logging.RotatingFile(c.LogPath())
	logger := logging.NewJSONSlogLogger(logFile, slog.LevelInfo)

	db, err := client.InitDatabase(ctx, c.DatabasePath())
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewHopeKeeperClient(c.ServerEndpointAddr, c.PublicKey)
	if err != nil {
		db.Close()
		logFile.Close()
		return nil, err
	}

	repos := client.NewRepositories(db)
	entityStore := store.New(apiClient, logger.With("component", "store"))
	queue := syncqueue.New(repos.Queue, syncqueue.StoreReplayer{Store: entityStore}, logger.With("component", "syncqueue"))

	a := &App{
		config:      c,
		logger:      logger,
		closers:     []io.Closer{db, logFile},
		authService: services.NewAuthService(apiClient, db),
		store:       entityStore,
		queue:       queue,
		prefs:       repos.Metadata,
		catalog:     content.MustLoad(),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		now:         time.Now,
	}

	a.settings, err = settings.Load(ctx, a.prefs)
	if err != nil {
		logger.Warn(ctx, "settings partially loaded", "error", err)
	}

	a.renderer, err = glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		logger.Warn(ctx, "markdown renderer unavailable", "error", err)
	}

	return a, nil
}

// Run starts the background loops and blocks in the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()
	go func() {
		defer wg.Done()
		a.StartReminder(ctx)
	}()

	a.Root(ctx)

	cancel()
	wg.Wait()
}

func (a *App) Close() {
	if err := a.authService.Close(); err != nil {
		a.logger.Warn(context.Background(), "close client", "error", err)
	}
	for _, c := range a.closers {
		c.Close()
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "switched mode", "mode", string(mode))
	}
}

func (a *App) Identity() *services.Identity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.identity
}

// setIdentity updates the signed-in user and scopes the entity store to it.
// A nil id signs out.
func (a *App) setIdentity(id *services.Identity) {
	a.mu.Lock()
	a.identity = id
	a.mu.Unlock()

	if id == nil {
		a.store.SetIdentity("")
		return
	}
	a.store.SetIdentity(id.UserID)
}

func (a *App) isLoggedIn() bool {
	return a.Identity() != nil
}

// userID is the signed-in user's id, or "" when nobody is signed in. It
// owns everything the offline queue holds for this session.
func (a *App) userID() string {
	if id := a.Identity(); id != nil {
		return id.UserID
	}
	return ""
}

func (a *App) Settings() settings.Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings
}

// updateSettings applies fn and persists the result.
func (a *App) updateSettings(ctx context.Context, fn func(settings.Settings) settings.Settings) error {
	a.mu.Lock()
	s := fn(a.settings)
	a.settings = s
	a.mu.Unlock()

	return settings.Save(ctx, a.prefs, s)
}

func (a *App) chatDelay() chat.Delay {
	d := chat.Delay{Base: a.config.ThinkingDelayBase, Jitter: a.config.ThinkingDelayJitter}
	return a.Settings().Accessibility.Delay(d)
}

// render formats markdown for the terminal unless screen-reader mode asks
// for plain text.
func (a *App) render(md string) string {
	if a.renderer == nil || !a.Settings().Accessibility.Markdown() {
		return md
	}
	out, err := a.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
