package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// CellMapper converts terminal cells to arena coordinates
type CellMapper interface {
	ToArena(col, row int) (x, y float64)
}

// TerminalInput feeds tcell events into a Pointer. Mouse reports carry
// the whole button state, so presses and releases are found by
// comparing against the previous report.
type TerminalInput struct {
	pointer *Pointer
	cells   CellMapper

	buttonDown bool
	col, row   int
	seen       bool
}

// NewTerminalInput creates a translator feeding pointer
func NewTerminalInput(pointer *Pointer, cells CellMapper) *TerminalInput {
	return &TerminalInput{pointer: pointer, cells: cells}
}

// Handle applies ev at time now. It returns false when the user asked
// to quit.
func (t *TerminalInput) Handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}
	case *tcell.EventMouse:
		t.handleMouse(ev, now)
	}
	return true
}

func (t *TerminalInput) handleMouse(ev *tcell.EventMouse, now time.Time) {
	col, row := ev.Position()
	x, y := t.cells.ToArena(col, row)

	if !t.seen || col != t.col || row != t.row {
		t.pointer.Move(x, y, now)
	}
	t.col, t.row, t.seen = col, row, true

	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !t.buttonDown:
		t.pointer.Down(x, y, now)
	case !down && t.buttonDown:
		t.pointer.Up(x, y, now)
	}
	t.buttonDown = down
}
