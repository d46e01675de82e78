package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"lucky-draw/internal/command"
	"lucky-draw/internal/logger"
	"lucky-draw/internal/lottery"
	"lucky-draw/internal/plugin/dialog"
	"lucky-draw/internal/sheet"
	"lucky-draw/internal/status"
	"lucky-draw/internal/views"
)

var spreadsheetExtensions = []string{".xlsx", ".xlsm"}

// revealDelay is how long drawn names stay pending before they are recorded.
const revealDelay = 1500 * time.Millisecond

// FileDialogs is the part of the dialog plugin the handlers use.
type FileDialogs interface {
	SaveFile(opts dialog.SaveOptions, cb func(path string, err error))
	OpenFile(opts dialog.OpenOptions, cb func(data []byte, name string, err error))
	ShowError(err error)
}

type View interface {
	Render(s views.Snapshot)
	SetStatus(message string)
	SetActions(actions views.Actions)
}

// Handlers turn view actions into engine updates, spreadsheet work and
// command invocations.
type Handlers struct {
	engine   *lottery.Engine
	dialogs  FileDialogs
	commands command.Invoker
	status   *status.Bus
	view     View
	logger   logger.Logger
	now      func() time.Time
	workbook func([]lottery.Result) ([]byte, error)

	// async runs slow work off the UI goroutine; onUI brings results back.
	async func(func())
	onUI  func(func())
	after func(time.Duration, func())

	// drawSeq identifies the pending batch so a stale reveal timer cannot
	// commit a batch started after a cancel. UI goroutine only.
	drawSeq uint64
}

func NewHandlers(engine *lottery.Engine, dialogs FileDialogs, commands command.Invoker, bus *status.Bus, view View, log logger.Logger) *Handlers {
	h := &Handlers{
		engine:   engine,
		dialogs:  dialogs,
		commands: commands,
		status:   bus,
		view:     view,
		logger:   log,
		now:      time.Now,
		workbook: sheet.BuildResults,
		async:    func(fn func()) { go fn() },
		onUI:     fyne.Do,
		after:    func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}

	view.SetActions(views.Actions{
		ImportPeople:   h.ImportPeople,
		ImportPrizes:   h.ImportPrizes,
		ImportRoster:   h.ImportRoster,
		Export:         h.Export,
		Reset:          h.Reset,
		Draw:           h.Draw,
		CancelDraw:     h.CancelDraw,
		SelectPrize:    h.SelectPrize,
		SetPrizeTotal:  h.SetPrizeTotal,
		SetDrawCount:   h.SetDrawCount,
		ExcludeWinners: h.SetExcludeWinners,
	})
	bus.Subscribe(func(n status.Notice) {
		h.onUI(func() { h.view.SetStatus(n.Message) })
	})

	return h
}

// Refresh renders the engine state. Must run on the UI goroutine.
func (h *Handlers) Refresh() {
	prize, _ := h.engine.SelectedPrize()
	h.view.Render(views.Snapshot{
		People:          len(h.engine.People()),
		RemainingPeople: len(h.engine.RemainingPeople()),
		Prizes:          h.engine.Prizes(),
		SelectedPrizeID: prize.ID,
		Results:         h.engine.Results(),
		DrawCount:       h.engine.DrawCount(),
		ResolvedCount:   h.engine.ResolveDrawCount(),
		ExcludeWinners:  h.engine.ExcludeWinners(),
		Busy:            h.engine.Busy(),
	})
}

func (h *Handlers) ImportPeople() {
	h.importSheet("people", func(data []byte) (string, error) {
		names, err := sheet.ParsePeople(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		if err := h.engine.ImportPeople(names); err != nil {
			if errors.Is(err, lottery.ErrNoPeople) {
				return "No names found (first column of the first sheet)", nil
			}
			return "", err
		}
		return fmt.Sprintf("Imported %d people", len(names)), nil
	})
}

func (h *Handlers) ImportPrizes() {
	h.importSheet("prizes", func(data []byte) (string, error) {
		specs, err := sheet.ParsePrizes(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		if err := h.engine.ImportPrizes(specs); err != nil {
			if errors.Is(err, lottery.ErrNoPrizes) {
				return "No prizes found (first two columns of the first sheet: prize, count)", nil
			}
			return "", err
		}
		return fmt.Sprintf("Imported %d prizes", len(specs)), nil
	})
}

func (h *Handlers) ImportRoster() {
	h.importSheet("roster", func(data []byte) (string, error) {
		names, specs, err := sheet.ParseRoster(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		if err := h.engine.ImportRoster(names, specs); err != nil {
			if errors.Is(err, lottery.ErrNoPeople) {
				return "No names found (first column of sheet 1)", nil
			}
			return "", err
		}
		return fmt.Sprintf("Imported %d people and %d prizes", len(names), len(h.engine.Prizes())), nil
	})
}

// importSheet picks a workbook and hands its bytes to apply off the UI goroutine.
func (h *Handlers) importSheet(kind string, apply func(data []byte) (string, error)) {
	if h.engine.Busy() {
		return
	}

	h.dialogs.OpenFile(dialog.OpenOptions{ConfirmText: "Import", Extensions: spreadsheetExtensions}, func(data []byte, name string, err error) {
		if err != nil {
			h.fail("import "+kind, err)
			return
		}
		if data == nil {
			return
		}

		h.async(func() {
			message, applyErr := apply(data)
			h.onUI(func() {
				if applyErr != nil {
					h.fail("import "+kind, fmt.Errorf("%s: %w", name, applyErr))
					return
				}
				h.logger.Info("Handlers", "roster imported", map[string]interface{}{
					"kind": kind,
					"file": name,
				})
				h.status.Publish(message)
				h.Refresh()
			})
		})
	})
}

// Export writes the winners workbook to a path chosen in the save dialog via
// the save_binary_file command.
func (h *Handlers) Export() {
	results := h.engine.ResultsChronological()
	if len(results) == 0 {
		h.status.Publish("No winners to export")
		return
	}

	// The save dialog creates the target file, so the workbook is built first
	// and a build failure never touches the user's file.
	data, err := h.workbook(results)
	if err != nil {
		h.fail("export", err)
		return
	}

	opts := dialog.SaveOptions{
		ConfirmText: "Export",
		DefaultName: sheet.DefaultExportName(h.now()),
		Extensions:  []string{".xlsx"},
	}
	h.dialogs.SaveFile(opts, func(path string, err error) {
		if err != nil {
			h.fail("export", err)
			return
		}
		if path == "" {
			return
		}

		h.async(func() {
			writeErr := command.SaveBinaryFile(context.Background(), h.commands, path, data)
			h.onUI(func() {
				if writeErr != nil {
					h.fail("export", writeErr)
					return
				}
				h.logger.Info("Handlers", "winners exported", map[string]interface{}{
					"path":    path,
					"winners": len(results),
				})
				h.status.Publish("Exported winners to " + filepath.Base(path))
			})
		})
	})
}

func (h *Handlers) Reset() {
	if err := h.engine.Reset(); err != nil {
		return
	}
	h.status.Publish("Draw state reset")
	h.Refresh()
}

// Draw picks winners for the selected prize and shows them as pending. They
// are recorded after revealDelay unless CancelDraw runs first.
func (h *Handlers) Draw() {
	prize, _ := h.engine.SelectedPrize()
	pending, err := h.engine.PrepareBatch()
	if err != nil {
		if message := drawErrorMessage(err); message != "" {
			h.status.Publish(message)
		}
		return
	}

	h.drawSeq++
	seq := h.drawSeq
	h.status.Publish(fmt.Sprintf("Drawing %d for %s...", len(pending), prize.Name))
	h.Refresh()

	h.after(revealDelay, func() {
		h.onUI(func() { h.finishDraw(seq, prize) })
	})
}

func (h *Handlers) finishDraw(seq uint64, prize lottery.Prize) {
	if seq != h.drawSeq || !h.engine.Busy() {
		return
	}

	results := h.engine.FinalizeBatch()
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.PersonName
	}
	h.logger.Info("Handlers", "draw completed", map[string]interface{}{
		"prize":   prize.Name,
		"winners": len(results),
	})
	h.status.Publish(fmt.Sprintf("%s: %s", prize.Name, strings.Join(names, ", ")))
	h.Refresh()
}

// CancelDraw drops a pending draw without recording anyone.
func (h *Handlers) CancelDraw() {
	if !h.engine.Busy() {
		return
	}
	h.drawSeq++
	h.engine.CancelBatch()
	h.status.Publish("Draw cancelled")
	h.Refresh()
}

func (h *Handlers) SelectPrize(prizeID string) {
	h.engine.SelectPrize(prizeID)
	h.Refresh()
}

func (h *Handlers) SetPrizeTotal(prizeID, total string) {
	h.engine.UpdatePrizeTotal(prizeID, total)
	h.Refresh()
}

func (h *Handlers) SetDrawCount(text string) {
	h.engine.SetDrawCount(text)
	h.Refresh()
}

func (h *Handlers) SetExcludeWinners(exclude bool) {
	h.engine.SetExcludeWinners(exclude)
	h.Refresh()
}

func (h *Handlers) fail(operation string, err error) {
	h.logger.Error("Handlers", err, map[string]interface{}{
		"operation": operation,
	})
	h.dialogs.ShowError(err)
	h.status.Publish(fmt.Sprintf("%s failed: %v", operation, err))
}

func drawErrorMessage(err error) string {
	switch {
	case errors.Is(err, lottery.ErrNoPeople):
		return "Import a list of people first"
	case errors.Is(err, lottery.ErrNoPrize):
		return "Select a prize first"
	case errors.Is(err, lottery.ErrPrizeExhausted):
		return "The selected prize has none left"
	default:
		return ""
	}
}
