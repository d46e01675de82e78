package views

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lucky-draw/internal/lottery"
)

func newTestView(t *testing.T) *MainView {
	t.Helper()
	a := test.NewTempApp(t)
	w := a.NewWindow("test")
	v := NewMainView(w)
	w.SetContent(v.Content())
	return v
}

func sampleSnapshot() Snapshot {
	at := time.Date(2026, 10, 18, 20, 15, 0, 0, time.UTC)
	return Snapshot{
		People:          3,
		RemainingPeople: 2,
		Prizes: []lottery.Prize{
			{ID: "p1", Name: "Gold", Total: 1, Remaining: 0},
			{ID: "p2", Name: "Silver", Total: 2, Remaining: 2},
		},
		SelectedPrizeID: "p2",
		Results:         []lottery.Result{{ID: "r1", PersonName: "Ann", PrizeName: "Gold", Timestamp: at}},
		DrawCount:       "1",
		ResolvedCount:   1,
		ExcludeWinners:  true,
	}
}

func TestRenderShowsSnapshot(t *testing.T) {
	v := newTestView(t)
	v.Render(sampleSnapshot())

	assert.Equal(t, []string{"1. Gold (0/1 left)", "2. Silver (2/2 left)"}, v.prizeSelect.Options)
	assert.Equal(t, "2. Silver (2/2 left)", v.prizeSelect.Selected)
	assert.Equal(t, "2", v.prizeTotal.Text)
	assert.Equal(t, "1", v.drawCount.Text)
	assert.True(t, v.exclude.Checked)
	assert.Equal(t, "3 people, 2 eligible, next draw picks 1", v.statusBar.GetSummary())
	assert.Equal(t, "Winners (1)", v.winnersHeader.Text)
	assert.Equal(t, 1, v.winnersList.Length())
	assert.False(t, v.toolbar.ExportButton.Disabled())
}

func TestRenderDoesNotEchoActions(t *testing.T) {
	v := newTestView(t)
	selected, excluded := 0, 0
	v.SetActions(Actions{
		SelectPrize:    func(string) { selected++ },
		ExcludeWinners: func(bool) { excluded++ },
	})

	v.Render(sampleSnapshot())

	assert.Zero(t, selected)
	assert.Zero(t, excluded)
}

func TestRenderBusyAndEmpty(t *testing.T) {
	v := newTestView(t)
	v.Render(Snapshot{Busy: true, DrawCount: "1"})

	assert.True(t, v.drawButton.Disabled())
	assert.False(t, v.cancelButton.Disabled())
	assert.True(t, v.toolbar.ResetButton.Disabled())
	assert.True(t, v.toolbar.ExportButton.Disabled())
	assert.Equal(t, "No people imported", v.statusBar.GetSummary())
	assert.Empty(t, v.prizeSelect.Selected)
}

func TestButtonsTriggerActions(t *testing.T) {
	v := newTestView(t)
	v.Render(sampleSnapshot())

	var calls []string
	v.SetActions(Actions{
		ImportPeople: func() { calls = append(calls, "people") },
		ImportPrizes: func() { calls = append(calls, "prizes") },
		ImportRoster: func() { calls = append(calls, "roster") },
		Export:       func() { calls = append(calls, "export") },
		Reset:        func() { calls = append(calls, "reset") },
		SetDrawCount: func(text string) { calls = append(calls, "count:"+text) },
		Draw:         func() { calls = append(calls, "draw") },
		SetPrizeTotal: func(id, total string) {
			calls = append(calls, "total:"+id+"="+total)
		},
		SelectPrize: func(id string) { calls = append(calls, "select:"+id) },
	})

	test.Tap(v.toolbar.ImportPeopleButton)
	test.Tap(v.toolbar.ImportPrizesButton)
	test.Tap(v.toolbar.ImportRosterButton)
	test.Tap(v.toolbar.ExportButton)
	test.Tap(v.toolbar.ResetButton)

	v.drawCount.SetText("all")
	test.Tap(v.drawButton)

	v.prizeTotal.SetText("5")
	test.Tap(v.applyTotal)

	v.prizeSelect.SetSelected("1. Gold (0/1 left)")

	require.Equal(t, []string{
		"people", "prizes", "roster", "export", "reset",
		"count:all", "draw",
		"total:p2=5",
		"select:p1",
	}, calls)
}

func TestSetStatus(t *testing.T) {
	v := newTestView(t)
	v.SetStatus("Imported 3 people")
	assert.Equal(t, "Imported 3 people", v.statusBar.GetStatus())
}

func TestStopButtonCancelsPendingDraw(t *testing.T) {
	v := newTestView(t)
	cancelled := 0
	v.SetActions(Actions{CancelDraw: func() { cancelled++ }})

	v.Render(sampleSnapshot())
	assert.True(t, v.cancelButton.Disabled())
	test.Tap(v.cancelButton)
	assert.Zero(t, cancelled)

	busy := sampleSnapshot()
	busy.Busy = true
	v.Render(busy)
	test.Tap(v.cancelButton)
	assert.Equal(t, 1, cancelled)

	v.Render(sampleSnapshot())
	assert.True(t, v.cancelButton.Disabled())
	assert.False(t, v.drawButton.Disabled())
}
