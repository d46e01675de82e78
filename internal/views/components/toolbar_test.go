package components

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestToolbarHandlers(t *testing.T) {
	test.NewTempApp(t)
	tb := NewToolbar()

	var tapped []string
	tb.SetImportHandlers(
		func() { tapped = append(tapped, "people") },
		func() { tapped = append(tapped, "prizes") },
		func() { tapped = append(tapped, "roster") },
	)
	tb.SetExportHandler(func() { tapped = append(tapped, "export") })
	tb.SetResetHandler(func() { tapped = append(tapped, "reset") })

	test.Tap(tb.ImportPeopleButton)
	test.Tap(tb.ImportPrizesButton)
	test.Tap(tb.ImportRosterButton)
	test.Tap(tb.ExportButton) // disabled until there are results
	test.Tap(tb.ResetButton)

	tb.SetExportEnabled(true)
	test.Tap(tb.ExportButton)

	assert.Equal(t, []string{"people", "prizes", "roster", "reset", "export"}, tapped)
}

func TestToolbarBusyBlocksReset(t *testing.T) {
	test.NewTempApp(t)
	tb := NewToolbar()

	tb.SetBusy(true)
	assert.True(t, tb.ResetButton.Disabled())
	tb.SetBusy(false)
	assert.False(t, tb.ResetButton.Disabled())
}

func TestStatusBar(t *testing.T) {
	test.NewTempApp(t)
	sb := NewStatusBar()

	assert.Equal(t, noPeopleText, sb.GetSummary())
	sb.SetSummary("3 people, 3 eligible, next draw picks 1")
	assert.Equal(t, "3 people, 3 eligible, next draw picks 1", sb.GetSummary())
	sb.SetSummary("")
	assert.Equal(t, noPeopleText, sb.GetSummary())

	sb.SetStatus("Imported 3 people")
	assert.Equal(t, "Imported 3 people", sb.GetStatus())
}
