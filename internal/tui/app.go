package tui

import (
	"context"
	"io"
	"log"
	"os"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"golang.org/x/sync/errgroup"

	"github.com/prismmail/prism-tui/internal/api"
	"github.com/prismmail/prism-tui/internal/config"
	"github.com/prismmail/prism-tui/internal/db"
	"github.com/prismmail/prism-tui/internal/render"
	"github.com/prismmail/prism-tui/internal/services"
)

// App encapsulates the terminal UI and the PrismMail backend client.
type App struct {
	*tview.Application
	Pages  *tview.Pages
	Config *config.Config
	Client *api.Client
	Keys   config.KeyBindings

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex
	views  map[string]tview.Primitive

	// Layout management
	resolver     *BreakpointResolver
	breakpoint   BreakpointState
	panels       *PanelManager
	screenWidth  int
	screenHeight int

	// Navigation and list state
	nav          *NavModel
	list         *ListState
	sidebarModel *SidebarModel
	sidebar      *Sidebar

	// Email renderer and theme
	emailRenderer *render.EmailRenderer
	currentTheme  *config.Theme

	// Gesture state (mouse-capable terminals only)
	pull  *PullToRefresh
	swipe *EdgeSwipe

	// Overlay flags
	messageOpen  bool // mobile-only full-screen message page
	drawerOpen   bool
	composeOpen  bool
	settingsOpen bool
	showHelp     bool

	// Panels
	composePanel  *ComposePanel
	settingsPanel *SettingsPanel

	// Accounts cache for the status line
	accounts []api.AccountConnection

	// Local list filter
	filterOpen  bool
	localFilter string

	refreshing bool // guards overlapping manual refreshes

	// Database store (SQLite)
	dbStore *db.Store

	// Services
	mailService    services.MailService
	accountService services.AccountService
	countsService  services.CountsService
	prefService    services.PreferenceService
	syncService    services.SyncService
	draftService   services.DraftService

	// Push channel (WebSocket)
	push *api.PushChannel

	// Debug logging
	logger  *log.Logger
	logFile *os.File

	errorHandler *ErrorHandler
	uiReady      bool
}

// NewApp creates the terminal application, wired to a backend client
// but not yet to a local store; call RegisterDBStore before Run.
func NewApp(client *api.Client, cfg *config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		Application:   tview.NewApplication(),
		Config:        cfg,
		Client:        client,
		Keys:          cfg.Keys,
		ctx:           ctx,
		cancel:        cancel,
		views:         make(map[string]tview.Primitive),
		resolver:      NewBreakpointResolver(cfg.Layout),
		nav:           NewNavModel(),
		list:          NewListState(),
		sidebarModel:  NewSidebarModel(),
		emailRenderer: render.NewEmailRenderer(),
		pull:          &PullToRefresh{},
		swipe:         &EdgeSwipe{},
		screenWidth:   80,
		screenHeight:  25,
		logger:        log.New(io.Discard, "[prism] ", log.LstdFlags|log.Lmicroseconds),
	}
	app.breakpoint = BreakpointState{Class: app.resolver.Resolve(0)}
	app.panels = NewPanelManager(nil, cfg.Layout, cfg.PersistDebounce(), app.logger)

	// File logger (logging.go)
	app.initLogger()

	// Theme, then components that pick their colors from it
	app.loadTheme(cfg.Layout.CurrentTheme)

	app.Pages = tview.NewPages()
	app.initComponents()
	app.initServices()
	app.bindKeys()
	app.rebuildLayout()

	// Resize handling: reclassify on every size change, rebuilding the
	// layout only when the breakpoint actually moves.
	app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		if !app.uiReady {
			app.uiReady = true
		}
		w, h := screen.Size()
		if w != app.screenWidth || h != app.screenHeight {
			app.onResize(w, h)
		}
		return false
	})

	return app
}

// RegisterDBStore wires a db.Store into the App for layout persistence and
// local drafts.
func (a *App) RegisterDBStore(store *db.Store) {
	a.dbStore = store
	a.panels.SetStore(db.NewLayoutStore(store))
	a.draftService = services.NewDraftService(db.NewDraftStore(store))
	a.logger.Printf("RegisterDBStore: store registered")
}

// initServices builds the service layer on top of the REST client.
func (a *App) initServices() {
	a.mailService = services.NewMailService(a.Client)
	a.accountService = services.NewAccountService(a.Client)
	a.countsService = services.NewCountsService(a.Client)
	a.prefService = services.NewPreferenceService(a.Client)
	a.syncService = services.NewSyncService(a.Client, a.accountService, a.logger)
}

// Run starts the UI event loop and the background loaders.
func (a *App) Run() error {
	defer a.shutdown()

	a.EnableMouse(true)
	a.SetMouseCapture(a.handleMouse)

	go a.bootstrap()

	return a.Application.SetRoot(a.Pages, true).Run()
}

// bootstrap performs the initial data load once the event loop is running.
// The independent fetches run concurrently; a failure in one never blocks
// the others.
func (a *App) bootstrap() {
	var g errgroup.Group

	g.Go(func() error {
		accounts, err := a.accountService.ListAccounts(a.ctx)
		if err != nil {
			a.logger.Printf("bootstrap: account load failed: %v", err)
			a.errorHandler.ShowWarning(a.ctx, "Could not load accounts, retry with refresh")
			return err
		}
		a.mu.Lock()
		a.accounts = accounts
		a.mu.Unlock()
		a.sidebarModel.SetAccounts(accounts)
		a.QueueUpdateDraw(func() { a.sidebar.Reload() })
		return nil
	})

	g.Go(func() error {
		a.reloadMessages()
		a.refreshCounts()
		return nil
	})

	g.Go(func() error {
		prefs, err := a.prefService.Get(a.ctx)
		if err != nil {
			a.logger.Printf("bootstrap: preference load failed: %v", err)
			return err
		}
		if prefs.AutoSync {
			a.syncService.Start(a.ctx, *prefs)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		a.logger.Printf("bootstrap: finished with errors: %v", err)
	}

	if wsURL := a.Config.Server.WebSocketURL; wsURL != "" {
		a.push = api.NewPushChannel(wsURL, a.onPushEvent, a.logger)
		a.push.Start(a.ctx)
	}
}

// onResize reclassifies the new width and rebuilds the layout when the
// classification changed. Runs inside BeforeDraw, so no network calls here.
func (a *App) onResize(w, h int) {
	a.screenWidth, a.screenHeight = w, h
	a.breakpoint.Width, a.breakpoint.Height = w, h

	class := a.resolver.Resolve(w)
	if class != a.breakpoint.Class {
		a.logger.Printf("breakpoint: %s -> %s (width=%d)", a.breakpoint.Class, class, w)
		a.breakpoint.Class = class
		a.rebuildLayout()
	}
	a.renderList()
}

// shutdown releases background resources after the event loop exits.
func (a *App) shutdown() {
	if a.push != nil {
		a.push.Stop()
	}
	if a.syncService != nil {
		a.syncService.Stop()
	}
	a.panels.Flush(context.Background())
	a.cancel()
	a.closeLogger()
}

// GetComponentColors returns the theme colors for a named component.
func (a *App) GetComponentColors(name string) config.ComponentColors {
	return a.currentTheme.Component(name)
}

// getStatusColor maps a status level to its theme color.
func (a *App) getStatusColor(level string) tcell.Color {
	if a.currentTheme == nil {
		return tcell.ColorWhite
	}
	switch level {
	case "error":
		return a.currentTheme.Status.Error.Color()
	case "warning":
		return a.currentTheme.Status.Warning.Color()
	case "success":
		return a.currentTheme.Status.Success.Color()
	default:
		return a.currentTheme.Status.Info.Color()
	}
}
