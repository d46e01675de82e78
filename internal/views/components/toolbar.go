package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the roster import, export and reset actions
type Toolbar struct {
	container *fyne.Container

	ImportPeopleButton *widget.Button
	ImportPrizesButton *widget.Button
	ImportRosterButton *widget.Button
	ExportButton       *widget.Button
	ResetButton        *widget.Button

	importPeopleHandler func()
	importPrizesHandler func()
	importRosterHandler func()
	exportHandler       func()
	resetHandler        func()
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

// createComponents initializes all toolbar buttons
func (t *Toolbar) createComponents() {
	t.ImportPeopleButton = widget.NewButtonWithIcon("Import people", theme.FolderOpenIcon(), nil)
	t.ImportPrizesButton = widget.NewButtonWithIcon("Import prizes", theme.FolderOpenIcon(), nil)
	t.ImportRosterButton = widget.NewButtonWithIcon("Import roster", theme.FolderOpenIcon(), nil)

	t.ExportButton = widget.NewButtonWithIcon("Export winners", theme.DocumentSaveIcon(), nil)
	t.ExportButton.Importance = widget.HighImportance
	t.ExportButton.Disable()

	t.ResetButton = widget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), nil)
	t.ResetButton.Importance = widget.MediumImportance
}

// buildLayout constructs the toolbar layout
func (t *Toolbar) buildLayout() {
	importSection := container.NewHBox(
		t.ImportPeopleButton,
		t.ImportPrizesButton,
		t.ImportRosterButton,
	)

	t.container = container.NewHBox(
		importSection,
		widget.NewSeparator(),
		t.ExportButton,
		t.ResetButton,
	)
}

// setupEventHandlers connects button events
func (t *Toolbar) setupEventHandlers() {
	t.ImportPeopleButton.OnTapped = func() { invoke(t.importPeopleHandler) }
	t.ImportPrizesButton.OnTapped = func() { invoke(t.importPrizesHandler) }
	t.ImportRosterButton.OnTapped = func() { invoke(t.importRosterHandler) }
	t.ExportButton.OnTapped = func() { invoke(t.exportHandler) }
	t.ResetButton.OnTapped = func() { invoke(t.resetHandler) }
}

func invoke(handler func()) {
	if handler != nil {
		handler()
	}
}

// SetImportHandlers sets the callbacks for the three import buttons
func (t *Toolbar) SetImportHandlers(people, prizes, roster func()) {
	t.importPeopleHandler = people
	t.importPrizesHandler = prizes
	t.importRosterHandler = roster
}

// SetExportHandler sets the callback for the export button
func (t *Toolbar) SetExportHandler(handler func()) {
	t.exportHandler = handler
}

// SetResetHandler sets the callback for the reset button
func (t *Toolbar) SetResetHandler(handler func()) {
	t.resetHandler = handler
}

// SetExportEnabled toggles export availability; there is nothing to export
// before the first winner is drawn
func (t *Toolbar) SetExportEnabled(enabled bool) {
	if enabled {
		t.ExportButton.Enable()
	} else {
		t.ExportButton.Disable()
	}
}

// SetBusy blocks reset while a draw is being committed
func (t *Toolbar) SetBusy(busy bool) {
	if busy {
		t.ResetButton.Disable()
	} else {
		t.ResetButton.Enable()
	}
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
