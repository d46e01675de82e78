// Package dialog is the native file dialog plugin. It gives the frontend OS
// file pickers; it never writes file contents itself.
package dialog

import (
	"errors"
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	fynedialog "fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"lucky-draw/internal/plugin"
)

const Name = "dialog"

var ErrNotInstalled = errors.New("dialog plugin not installed")

type SaveOptions struct {
	ConfirmText string
	DefaultName string
	Extensions  []string
}

type OpenOptions struct {
	ConfirmText string
	Extensions  []string
}

type Plugin struct {
	window fyne.Window
}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return Name
}

func (p *Plugin) Install(host *plugin.Host) error {
	if host.Window() == nil {
		return fmt.Errorf("no window to attach dialogs to")
	}
	p.window = host.Window()
	return nil
}

// SaveFile asks for a destination path. cb receives "" when the user cancels.
func (p *Plugin) SaveFile(opts SaveOptions, cb func(path string, err error)) {
	if p.window == nil {
		cb("", ErrNotInstalled)
		return
	}

	d := fynedialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			cb("", err)
			return
		}
		if writer == nil {
			cb("", nil)
			return
		}
		// The picker opens the target for writing; only the path is handed
		// back, the contents are written by the caller.
		path := writer.URI().Path()
		if closeErr := writer.Close(); closeErr != nil {
			cb("", closeErr)
			return
		}
		cb(path, nil)
	}, p.window)

	if opts.ConfirmText != "" {
		d.SetConfirmText(opts.ConfirmText)
	}
	if opts.DefaultName != "" {
		d.SetFileName(opts.DefaultName)
	}
	if len(opts.Extensions) > 0 {
		d.SetFilter(storage.NewExtensionFileFilter(opts.Extensions))
	}
	d.Show()
}

// OpenFile lets the user pick a file and reads it fully. cb receives nil data
// and a nil error when the user cancels.
func (p *Plugin) OpenFile(opts OpenOptions, cb func(data []byte, name string, err error)) {
	if p.window == nil {
		cb(nil, "", ErrNotInstalled)
		return
	}

	d := fynedialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			cb(nil, "", err)
			return
		}
		if reader == nil {
			cb(nil, "", nil)
			return
		}
		defer reader.Close()

		data, readErr := io.ReadAll(reader)
		if readErr != nil {
			cb(nil, reader.URI().Name(), fmt.Errorf("read %s: %w", reader.URI().Name(), readErr))
			return
		}
		cb(data, reader.URI().Name(), nil)
	}, p.window)

	if opts.ConfirmText != "" {
		d.SetConfirmText(opts.ConfirmText)
	}
	if len(opts.Extensions) > 0 {
		d.SetFilter(storage.NewExtensionFileFilter(opts.Extensions))
	}
	d.Show()
}

func (p *Plugin) ShowError(err error) {
	if p.window == nil || err == nil {
		return
	}
	fynedialog.ShowError(err, p.window)
}

func (p *Plugin) ShowConfirm(title, message string, cb func(bool)) {
	if p.window == nil {
		cb(false)
		return
	}
	fynedialog.ShowConfirm(title, message, cb, p.window)
}
