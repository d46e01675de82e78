package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lucky-draw/internal/command"
	"lucky-draw/internal/config"
	"lucky-draw/internal/plugin/devlog"
	"lucky-draw/internal/plugin/dialog"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		WindowWidth:    800,
		WindowHeight:   600,
		LogDir:         t.TempDir(),
		StatusTTL:      time.Second,
		ExcludeWinners: true,
	}
}

func TestNewWithAppRegistersPluginsAndCommands(t *testing.T) {
	application, err := NewWithApp(test.NewTempApp(t), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(application.shutdown.Shutdown)

	assert.Equal(t, []string{command.SaveBinaryFileName}, application.Commands().Names())
	assert.True(t, application.Plugins().Installed(dialog.Name))
	assert.Equal(t, devlog.Enabled(), application.Plugins().Installed(devlog.Name))
	assert.NotNil(t, application.Logger())
}

func TestCommandTableWritesThroughBoundary(t *testing.T) {
	application, err := NewWithApp(test.NewTempApp(t), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(application.shutdown.Shutdown)

	path := filepath.Join(t.TempDir(), "out.bin")
	payload := []byte(`{"path":` + quote(path) + `,"bytes":[1,2,3]}`)

	res := application.Commands().Invoke(context.Background(), command.SaveBinaryFileName, payload)
	require.True(t, res.OK, res.Error)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	res = application.Commands().Invoke(context.Background(), command.SaveBinaryFileName,
		[]byte(`{"path":`+quote(filepath.Join(path, "nested"))+`,"bytes":[]}`))
	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Error)
}

func TestConfirmCloseWithoutResultsCloses(t *testing.T) {
	application, err := NewWithApp(test.NewTempApp(t), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(application.shutdown.Shutdown)

	assert.NotPanics(t, application.confirmClose)
}

func TestRunReturnsAndShutsDown(t *testing.T) {
	application, err := NewWithApp(test.NewTempApp(t), testConfig(t))
	require.NoError(t, err)

	require.NoError(t, application.engine.ImportPeople([]string{"Ann"}))
	_, err = application.engine.PrepareBatch()
	require.NoError(t, err)

	var ran bool
	application.shutdown.Register("extra", func() { ran = true })

	require.NoError(t, application.Run())

	select {
	case <-application.shutdown.Done():
	default:
		t.Fatal("shutdown did not run")
	}
	assert.True(t, ran)
	assert.False(t, application.engine.Busy(), "pending draw is dropped on exit")
	assert.Empty(t, application.engine.Results())
}

func TestRunTurnsEventLoopPanicIntoError(t *testing.T) {
	application, err := NewWithApp(test.NewTempApp(t), testConfig(t))
	require.NoError(t, err)

	application.content = func() fyne.CanvasObject {
		panic("driver lost")
	}

	err = application.Run()
	require.Error(t, err)
	assert.Equal(t, "event loop: driver lost", err.Error())

	select {
	case <-application.shutdown.Done():
	default:
		t.Fatal("shutdown did not run after the panic")
	}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
