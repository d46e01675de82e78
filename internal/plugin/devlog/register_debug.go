//go:build debug

package devlog

import (
	"github.com/rs/zerolog"

	"lucky-draw/internal/plugin"
)

// Enabled reports whether this build carries the development logger.
func Enabled() bool {
	return true
}

// Register installs the development logger at info level and above.
func Register(reg *plugin.Registry, dir string) error {
	return reg.Register(New(Options{Level: zerolog.InfoLevel, Dir: dir}))
}
