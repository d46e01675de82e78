//go:build debug

package app

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithAppFailsWhenLogDirUnusable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfg := testConfig(t)
	cfg.LogDir = blocker

	application, err := NewWithApp(test.NewTempApp(t), cfg)
	require.Error(t, err)
	assert.Nil(t, application)
	assert.ErrorContains(t, err, "setup:")
	assert.ErrorContains(t, err, "devlog")
}
