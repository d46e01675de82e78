package dialog

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lucky-draw/internal/plugin"
)

func TestInstallAttachesToWindow(t *testing.T) {
	a := test.NewTempApp(t)
	w := a.NewWindow("main")
	reg := plugin.NewRegistry(plugin.NewHost(a, w, nil))

	p := New()
	require.NoError(t, reg.Register(p))
	assert.True(t, reg.Installed(Name))
	assert.Equal(t, w, p.window)
}

func TestInstallWithoutWindowFails(t *testing.T) {
	a := test.NewTempApp(t)
	reg := plugin.NewRegistry(plugin.NewHost(a, nil, nil))

	assert.Error(t, reg.Register(New()))
	assert.False(t, reg.Installed(Name))
}

func TestUninstalledPluginReportsError(t *testing.T) {
	p := New()

	var saveErr error
	p.SaveFile(SaveOptions{}, func(_ string, err error) { saveErr = err })
	assert.ErrorIs(t, saveErr, ErrNotInstalled)

	var openErr error
	p.OpenFile(OpenOptions{}, func(_ []byte, _ string, err error) { openErr = err })
	assert.ErrorIs(t, openErr, ErrNotInstalled)

	confirmed := true
	p.ShowConfirm("Reset", "Clear all results?", func(ok bool) { confirmed = ok })
	assert.False(t, confirmed)
}
