package views

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"lucky-draw/internal/lottery"
	"lucky-draw/internal/views/components"
)

const resultTimeLayout = "15:04:05"

// Actions are the user intents the view forwards. Nil entries are ignored.
type Actions struct {
	ImportPeople   func()
	ImportPrizes   func()
	ImportRoster   func()
	Export         func()
	Reset          func()
	Draw           func()
	CancelDraw     func()
	SelectPrize    func(prizeID string)
	SetPrizeTotal  func(prizeID, total string)
	SetDrawCount   func(text string)
	ExcludeWinners func(bool)
}

// Snapshot is everything the view renders.
type Snapshot struct {
	People          int
	RemainingPeople int
	Prizes          []lottery.Prize
	SelectedPrizeID string
	Results         []lottery.Result
	DrawCount       string
	ResolvedCount   int
	ExcludeWinners  bool
	Busy            bool
}

type MainView struct {
	window  fyne.Window
	actions Actions

	toolbar   *components.Toolbar
	statusBar *components.StatusBar

	prizeSelect   *widget.Select
	prizeTotal    *widget.Entry
	applyTotal    *widget.Button
	drawCount     *widget.Entry
	exclude       *widget.Check
	drawButton    *widget.Button
	cancelButton  *widget.Button
	winnersList   *widget.List
	winnersHeader *widget.Label

	prizeIDs  map[string]string
	selected  string
	results   []lottery.Result
	rendering bool
}

func NewMainView(window fyne.Window) *MainView {
	v := &MainView{
		window:   window,
		prizeIDs: make(map[string]string),
	}

	v.toolbar = components.NewToolbar()
	v.toolbar.SetImportHandlers(
		func() { call(v.actions.ImportPeople) },
		func() { call(v.actions.ImportPrizes) },
		func() { call(v.actions.ImportRoster) },
	)
	v.toolbar.SetExportHandler(func() { call(v.actions.Export) })
	v.toolbar.SetResetHandler(func() { call(v.actions.Reset) })
	v.statusBar = components.NewStatusBar()

	v.prizeSelect = widget.NewSelect(nil, v.onPrizeSelected)
	v.prizeSelect.PlaceHolder = "Select a prize"

	v.prizeTotal = widget.NewEntry()
	v.prizeTotal.SetPlaceHolder("Total")
	v.applyTotal = widget.NewButton("Apply", func() {
		if v.actions.SetPrizeTotal != nil && v.selected != "" {
			v.actions.SetPrizeTotal(v.selected, v.prizeTotal.Text)
		}
	})

	v.drawCount = widget.NewEntry()
	v.drawCount.SetPlaceHolder("1 or all")
	v.drawCount.OnSubmitted = func(text string) {
		if v.actions.SetDrawCount != nil {
			v.actions.SetDrawCount(text)
		}
	}

	v.exclude = widget.NewCheck("Exclude previous winners", func(checked bool) {
		if v.rendering || v.actions.ExcludeWinners == nil {
			return
		}
		v.actions.ExcludeWinners(checked)
	})

	v.drawButton = widget.NewButtonWithIcon("Draw", theme.MediaPlayIcon(), func() {
		if v.actions.SetDrawCount != nil {
			v.actions.SetDrawCount(v.drawCount.Text)
		}
		call(v.actions.Draw)
	})
	v.drawButton.Importance = widget.HighImportance

	v.cancelButton = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		call(v.actions.CancelDraw)
	})
	v.cancelButton.Disable()

	v.winnersHeader = widget.NewLabelWithStyle("Winners", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	v.winnersList = widget.NewList(
		func() int { return len(v.results) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(v.results) {
				return
			}
			obj.(*widget.Label).SetText(formatResult(len(v.results)-id, v.results[id]))
		},
	)

	return v
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func (v *MainView) SetActions(actions Actions) {
	v.actions = actions
}

func (v *MainView) Window() fyne.Window {
	return v.window
}

func (v *MainView) Content() fyne.CanvasObject {
	prizeRow := container.NewBorder(nil, nil, widget.NewLabel("Prize"),
		container.NewHBox(container.NewGridWrap(fyne.NewSize(80, v.prizeTotal.MinSize().Height), v.prizeTotal), v.applyTotal),
		v.prizeSelect)

	drawRow := container.NewBorder(nil, nil, widget.NewLabel("Winners per draw"), container.NewHBox(v.drawButton, v.cancelButton), v.drawCount)

	controls := container.NewVBox(
		prizeRow,
		drawRow,
		v.exclude,
	)

	return container.NewBorder(
		container.NewVBox(v.toolbar.GetContainer(), widget.NewSeparator(), controls, widget.NewSeparator(), v.winnersHeader),
		v.statusBar.GetContainer(),
		nil, nil,
		v.winnersList,
	)
}

// Render replaces the displayed state. Must run on the UI goroutine.
func (v *MainView) Render(s Snapshot) {
	v.rendering = true
	defer func() { v.rendering = false }()

	options := make([]string, 0, len(s.Prizes))
	v.prizeIDs = make(map[string]string, len(s.Prizes))
	selectedLabel := ""
	for i, p := range s.Prizes {
		label := prizeLabel(i, p)
		options = append(options, label)
		v.prizeIDs[label] = p.ID
		if p.ID == s.SelectedPrizeID {
			selectedLabel = label
			v.prizeTotal.SetText(strconv.Itoa(p.Total))
		}
	}
	v.selected = s.SelectedPrizeID
	v.prizeSelect.SetOptions(options)
	if selectedLabel != "" {
		v.prizeSelect.SetSelected(selectedLabel)
	} else {
		v.prizeSelect.ClearSelected()
	}

	if v.drawCount.Text != s.DrawCount {
		v.drawCount.SetText(s.DrawCount)
	}
	v.exclude.SetChecked(s.ExcludeWinners)

	v.statusBar.SetSummary(summary(s))

	v.results = s.Results
	v.winnersHeader.SetText(fmt.Sprintf("Winners (%d)", len(s.Results)))
	v.winnersList.Refresh()

	if s.Busy {
		v.drawButton.Disable()
		v.cancelButton.Enable()
	} else {
		v.drawButton.Enable()
		v.cancelButton.Disable()
	}
	v.toolbar.SetBusy(s.Busy)
	v.toolbar.SetExportEnabled(len(s.Results) > 0)
}

// SetStatus must run on the UI goroutine.
func (v *MainView) SetStatus(message string) {
	v.statusBar.SetStatus(message)
}

func (v *MainView) onPrizeSelected(label string) {
	if v.rendering {
		return
	}
	id, ok := v.prizeIDs[label]
	if !ok {
		return
	}
	v.selected = id
	if v.actions.SelectPrize != nil {
		v.actions.SelectPrize(id)
	}
}

// prizeLabel is numbered so that prizes with the same name stay distinct.
func prizeLabel(i int, p lottery.Prize) string {
	return fmt.Sprintf("%d. %s (%d/%d left)", i+1, p.Name, p.Remaining, p.Total)
}

func summary(s Snapshot) string {
	if s.People == 0 {
		return ""
	}
	return fmt.Sprintf("%d people, %d eligible, next draw picks %d", s.People, s.RemainingPeople, s.ResolvedCount)
}

func formatResult(n int, r lottery.Result) string {
	return fmt.Sprintf("%d. %s  -  %s  (%s)", n, r.PersonName, r.PrizeName, r.Timestamp.Format(resultTimeLayout))
}
