//go:build !debug

package devlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseBuildSkipsRegistration(t *testing.T) {
	reg, _ := newRegistry(t)

	require.NoError(t, Register(reg, t.TempDir()))
	assert.False(t, Enabled())
	assert.False(t, reg.Installed(Name))
}
