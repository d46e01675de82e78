// Package plugin hosts the capability modules installed into the shell at
// startup.
package plugin

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"fyne.io/fyne/v2"

	"lucky-draw/internal/logger"
)

var ErrAlreadyInstalled = errors.New("plugin already installed")

// Plugin is installed once into a Host. Plugins that hold resources also
// implement io.Closer and are closed by Registry.Shutdown.
type Plugin interface {
	Name() string
	Install(host *Host) error
}

// Host is what a plugin can reach: the app, its main window and the shared
// logger slot.
type Host struct {
	app    fyne.App
	window fyne.Window

	mu     sync.RWMutex
	logger logger.Logger
}

func NewHost(app fyne.App, window fyne.Window, log logger.Logger) *Host {
	if log == nil {
		log = logger.NoOp{}
	}
	return &Host{app: app, window: window, logger: log}
}

func (h *Host) App() fyne.App {
	return h.app
}

func (h *Host) Window() fyne.Window {
	return h.window
}

func (h *Host) Logger() logger.Logger {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.logger
}

func (h *Host) SetLogger(log logger.Logger) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logger = log
}

type Registry struct {
	mu      sync.Mutex
	host    *Host
	plugins []Plugin
	names   map[string]bool
}

func NewRegistry(host *Host) *Registry {
	return &Registry{host: host, names: make(map[string]bool)}
}

// Register installs p. A name that is already installed is a conflict.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if r.names[name] {
		return fmt.Errorf("install plugin %q: %w", name, ErrAlreadyInstalled)
	}
	if err := p.Install(r.host); err != nil {
		return fmt.Errorf("install plugin %q: %w", name, err)
	}

	r.names[name] = true
	r.plugins = append(r.plugins, p)
	r.host.Logger().Debug("PluginRegistry", "plugin installed", map[string]interface{}{
		"plugin": name,
	})
	return nil
}

func (r *Registry) Installed(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.names[name]
}

// Names lists plugins in install order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, len(r.plugins))
	for i, p := range r.plugins {
		names[i] = p.Name()
	}
	return names
}

// Shutdown closes plugins in reverse install order and returns the joined
// close errors.
func (r *Registry) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.plugins) - 1; i >= 0; i-- {
		closer, ok := r.plugins[i].(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close plugin %q: %w", r.plugins[i].Name(), err))
		}
	}
	return errors.Join(errs...)
}
