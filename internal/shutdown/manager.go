package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"lucky-draw/internal/logger"
)

const defaultStepTimeout = 5 * time.Second

// Step is one named cleanup action.
type Step struct {
	Name string
	Fn   func()
}

// Manager runs registered cleanup steps once, in reverse registration order.
type Manager struct {
	steps       []Step
	logger      logger.Logger
	stepTimeout time.Duration
	mu          sync.Mutex
	done        chan struct{}
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewManager(log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		logger:      log,
		stepTimeout: defaultStepTimeout,
		done:        make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (m *Manager) SetStepTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stepTimeout = d
}

func (m *Manager) Register(name string, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.steps = append(m.steps, Step{Name: name, Fn: fn})
}

// Listen calls onSignal when SIGINT or SIGTERM arrives. The listener exits
// when the manager shuts down.
func (m *Manager) Listen(onSignal func(os.Signal)) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			onSignal(sig)
		case <-m.ctx.Done():
		}
	}()
}

func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"steps": len(m.steps),
	})

	m.cancel()

	for i := len(m.steps) - 1; i >= 0; i-- {
		step := m.steps[i]

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			step.Fn()
		}()

		select {
		case <-finished:
			m.logger.Debug("ShutdownManager", "step completed", map[string]interface{}{
				"step": step.Name,
			})
		case <-time.After(m.stepTimeout):
			m.logger.Warning("ShutdownManager", "step timeout", map[string]interface{}{
				"step": step.Name,
			})
		}
	}

	m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
}

func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
