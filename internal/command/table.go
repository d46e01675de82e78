// Package command implements the host side of the frontend command boundary:
// a table of named handlers that take a serialized payload and return a
// serialized result or an error text.
package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrDuplicateCommand = errors.New("command already registered")
)

// Handler executes one named command.
type Handler interface {
	Handle(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
}

type HandlerFunc func(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)

func (f HandlerFunc) Handle(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return f(ctx, payload)
}

// Invoker is the frontend's view of the command table.
type Invoker interface {
	Invoke(ctx context.Context, name string, payload json.RawMessage) Result
}

// Result is what crosses back over the boundary. Error is set only when OK is false.
type Result struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// Err turns a failed result back into an error for Go callers.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return errors.New(r.Error)
}

type Table struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewTable() *Table {
	return &Table{handlers: make(map[string]Handler)}
}

func (t *Table) Register(name string, handler Handler) error {
	if name == "" {
		return fmt.Errorf("register command: empty name")
	}
	if handler == nil {
		return fmt.Errorf("register command %q: nil handler", name)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.handlers[name]; exists {
		return fmt.Errorf("register command %q: %w", name, ErrDuplicateCommand)
	}
	t.handlers[name] = handler
	return nil
}

func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.handlers))
	for name := range t.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke routes a call to its handler. Every failure, including a panic in
// the handler, is reported through Result rather than returned.
func (t *Table) Invoke(ctx context.Context, name string, payload json.RawMessage) (result Result) {
	t.mu.RLock()
	handler, ok := t.handlers[name]
	t.mu.RUnlock()

	if !ok {
		return Result{Error: fmt.Sprintf("command %s: %v", name, ErrUnknownCommand)}
	}

	defer func() {
		if r := recover(); r != nil {
			result = Result{Error: fmt.Sprintf("command %s panicked: %v", name, r)}
		}
	}()

	data, err := handler.Handle(ctx, payload)
	if err != nil {
		return Result{Error: err.Error()}
	}
	return Result{OK: true, Data: data}
}
