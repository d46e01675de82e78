//go:build !debug

package devlog

import "lucky-draw/internal/plugin"

func Enabled() bool {
	return false
}

func Register(*plugin.Registry, string) error {
	return nil
}
