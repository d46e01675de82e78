package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const noPeopleText = "No people imported"

// StatusBar displays the transient status notice and the pool summary
type StatusBar struct {
	container    *fyne.Container
	statusLabel  *widget.Label
	summaryLabel *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

// createComponents initializes status bar components
func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("")
	sb.summaryLabel = widget.NewLabel(noPeopleText)
}

// buildLayout constructs the status bar layout
func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(
		nil, nil,
		sb.statusLabel,
		sb.summaryLabel,
	)
}

// SetStatus updates the status notice. Must run on the UI goroutine.
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status notice
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetSummary updates the pool summary. Empty text restores the placeholder.
func (sb *StatusBar) SetSummary(text string) {
	if text == "" {
		text = noPeopleText
	}
	sb.summaryLabel.SetText(text)
}

// GetSummary returns the pool summary text
func (sb *StatusBar) GetSummary() string {
	return sb.summaryLabel.Text
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
