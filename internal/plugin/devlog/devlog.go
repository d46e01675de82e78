// Package devlog is the development logging plugin. Its registration is
// compiled in only with the "debug" build tag; release builds keep the
// host's default error-only logger.
package devlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"lucky-draw/internal/logger"
	"lucky-draw/internal/plugin"
)

const (
	Name     = "devlog"
	fileName = "lucky-draw.log"
)

type Options struct {
	Level zerolog.Level
	// Dir receives a JSON log file when set.
	Dir string
	// Console defaults to stderr.
	Console io.Writer
}

type Plugin struct {
	opts Options
	file *os.File
}

func New(opts Options) *Plugin {
	if opts.Console == nil {
		opts.Console = os.Stderr
	}
	return &Plugin{opts: opts}
}

func (p *Plugin) Name() string {
	return Name
}

func (p *Plugin) Install(host *plugin.Host) error {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: p.opts.Console, TimeFormat: "15:04:05"}}

	if p.opts.Dir != "" {
		if err := os.MkdirAll(p.opts.Dir, 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		path := filepath.Join(p.opts.Dir, fileName)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		p.file = f
		writers = append(writers, f)
	}

	log := logger.NewZerolog(zerolog.MultiLevelWriter(writers...), p.opts.Level)
	host.SetLogger(log)

	log.Info("DevLog", "development logging enabled", map[string]interface{}{
		"level": p.opts.Level.String(),
		"dir":   p.opts.Dir,
	})
	return nil
}

func (p *Plugin) Close() error {
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}
