package app

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"lucky-draw/internal/command"
	"lucky-draw/internal/config"
	"lucky-draw/internal/logger"
	"lucky-draw/internal/lottery"
	"lucky-draw/internal/plugin"
	"lucky-draw/internal/plugin/devlog"
	"lucky-draw/internal/plugin/dialog"
	"lucky-draw/internal/shutdown"
	"lucky-draw/internal/status"
	"lucky-draw/internal/views"
)

const (
	AppName    = "Lucky Draw"
	AppID      = "com.luckydraw.desk"
	AppVersion = "1.0.0"

	statusBufferSize = 64
)

type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	config  config.Config

	host     *plugin.Host
	plugins  *plugin.Registry
	dialogs  *dialog.Plugin
	commands *command.Table

	engine    *lottery.Engine
	statusBus *status.Bus
	view      *views.MainView
	handlers  *Handlers
	shutdown  *shutdown.Manager

	// content builds the window content when Run starts.
	content func() fyne.CanvasObject
}

// New builds the shell on a native Fyne app.
func New(cfg config.Config) (*Application, error) {
	return NewWithApp(fyneapp.NewWithID(AppID), cfg)
}

// NewWithApp installs the plugins and the command table into fyneApp and
// wires the frontend to them. Any plugin install failure aborts startup.
func NewWithApp(fyneApp fyne.App, cfg config.Config) (*Application, error) {
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	host := plugin.NewHost(fyneApp, window, logger.NewConsoleLogger(zerolog.ErrorLevel))
	plugins := plugin.NewRegistry(host)

	dialogs := dialog.New()
	if err := plugins.Register(dialogs); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	if err := devlog.Register(plugins, cfg.LogDir); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}

	log := host.Logger()

	commands, err := NewCommandTable()
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}

	engine := lottery.NewEngine(lottery.WithExcludeWinners(cfg.ExcludeWinners))
	statusBus := status.NewBus(statusBufferSize, cfg.StatusTTL)
	view := views.NewMainView(window)
	handlers := NewHandlers(engine, dialogs, commands, statusBus, view, log)

	shutdownMgr := shutdown.NewManager(log)
	shutdownMgr.Register("plugins", func() {
		if err := plugins.Shutdown(); err != nil {
			log.Error("Application", err, nil)
		}
	})
	shutdownMgr.Register("status", statusBus.Shutdown)
	shutdownMgr.Register("draw", engine.CancelBatch)

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version":  AppVersion,
		"plugins":  plugins.Names(),
		"commands": commands.Names(),
		"devlog":   devlog.Enabled(),
	})

	return &Application{
		fyneApp:   fyneApp,
		window:    window,
		config:    cfg,
		host:      host,
		plugins:   plugins,
		dialogs:   dialogs,
		commands:  commands,
		engine:    engine,
		statusBus: statusBus,
		view:      view,
		handlers:  handlers,
		shutdown:  shutdownMgr,
		content:   view.Content,
	}, nil
}

// NewCommandTable returns the frontend command surface: save_binary_file only.
func NewCommandTable() (*command.Table, error) {
	table := command.NewTable()
	if err := table.Register(command.SaveBinaryFileName, command.NewFileWriter()); err != nil {
		return nil, err
	}
	return table, nil
}

func (a *Application) Commands() *command.Table {
	return a.commands
}

func (a *Application) Plugins() *plugin.Registry {
	return a.plugins
}

func (a *Application) Logger() logger.Logger {
	return a.host.Logger()
}

// Run shows the window and blocks in the event loop until the app quits. A
// panic raised while the loop starts or runs is returned as an error.
func (a *Application) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event loop: %v", r)
		}
	}()
	defer a.shutdown.Shutdown()

	a.shutdown.Listen(func(os.Signal) {
		fyne.Do(a.fyneApp.Quit)
	})

	a.window.SetContent(a.content())
	a.window.SetCloseIntercept(a.confirmClose)
	a.handlers.Refresh()

	a.host.Logger().Info("Application", "GUI displayed", nil)
	a.window.ShowAndRun()
	return nil
}

// confirmClose asks before discarding drawn winners.
func (a *Application) confirmClose() {
	if len(a.engine.Results()) == 0 {
		a.window.Close()
		return
	}
	a.dialogs.ShowConfirm("Exit", "Winners have been drawn. Exit anyway?", func(ok bool) {
		if ok {
			a.window.Close()
		}
	})
}
