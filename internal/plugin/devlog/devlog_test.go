package devlog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lucky-draw/internal/logger"
	"lucky-draw/internal/plugin"
)

func newRegistry(t *testing.T) (*plugin.Registry, *plugin.Host) {
	t.Helper()
	a := test.NewTempApp(t)
	host := plugin.NewHost(a, a.NewWindow("main"), logger.NoOp{})
	return plugin.NewRegistry(host), host
}

func TestInstallReplacesHostLogger(t *testing.T) {
	reg, host := newRegistry(t)
	var console bytes.Buffer
	dir := filepath.Join(t.TempDir(), "logs")

	p := New(Options{Level: zerolog.InfoLevel, Dir: dir, Console: &console})
	require.NoError(t, reg.Register(p))

	log, ok := host.Logger().(*logger.ZerologAdapter)
	require.True(t, ok)
	assert.Equal(t, zerolog.InfoLevel, log.Level())

	log.Debug("Test", "below threshold", nil)
	log.Info("Test", "above threshold", nil)
	require.NoError(t, reg.Shutdown())

	assert.Contains(t, console.String(), "development logging enabled")
	assert.NotContains(t, console.String(), "below threshold")

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"above threshold"`)
}

func TestInstallTwiceConflicts(t *testing.T) {
	reg, _ := newRegistry(t)

	require.NoError(t, reg.Register(New(Options{Console: &bytes.Buffer{}})))
	err := reg.Register(New(Options{Console: &bytes.Buffer{}}))
	assert.ErrorIs(t, err, plugin.ErrAlreadyInstalled)
}

func TestInstallFailsOnUnusableDir(t *testing.T) {
	reg, _ := newRegistry(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := reg.Register(New(Options{Dir: filepath.Join(blocker, "logs"), Console: &bytes.Buffer{}}))
	assert.Error(t, err)
	assert.False(t, reg.Installed(Name))
}
