//go:build debug

package devlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugBuildRegistersLogger(t *testing.T) {
	reg, _ := newRegistry(t)

	require.NoError(t, Register(reg, t.TempDir()))
	t.Cleanup(func() { _ = reg.Shutdown() })
	assert.True(t, Enabled())
	assert.True(t, reg.Installed(Name))
}
