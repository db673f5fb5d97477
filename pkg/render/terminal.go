package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-ballpit/pkg/physics"
)

const (
	// DefaultTerminalScale is the number of arena units per column
	DefaultTerminalScale = 10.0
	// cellAspect is the height of a terminal cell relative to its width
	cellAspect = 2.0
)

type cell struct {
	ch    rune
	style tcell.Style
}

// TerminalSurface draws the arena into a tcell screen. Each cell covers
// scale arena units horizontally and twice that vertically. Drawing goes
// to a buffer that Present copies to the screen.
type TerminalSurface struct {
	screen tcell.Screen
	scale  float64
	cols   int
	rows   int
	buffer []cell
}

// NewTerminalSurface creates a surface for arena on screen
func NewTerminalSurface(screen tcell.Screen, arena physics.Bounds, scale float64) *TerminalSurface {
	if scale <= 0 {
		scale = DefaultTerminalScale
	}
	cols := int(math.Ceil(arena.Width / scale))
	rows := int(math.Ceil(arena.Height / (scale * cellAspect)))

	t := &TerminalSurface{
		screen: screen,
		scale:  scale,
		cols:   cols,
		rows:   rows,
		buffer: make([]cell, cols*rows),
	}
	t.ClearRect(0, 0, arena.Width, arena.Height)
	return t
}

// Size returns the surface size in cells
func (t *TerminalSurface) Size() (cols, rows int) {
	return t.cols, t.rows
}

// ToArena converts a cell position to the arena point at its center
func (t *TerminalSurface) ToArena(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * t.scale, (float64(row) + 0.5) * t.scale * cellAspect
}

// cellRange returns the clipped, half-open cell range covering a rect
func (t *TerminalSurface) cellRange(x, y, w, h float64) (c0, r0, c1, r1 int) {
	c0 = clampInt(int(math.Floor(x/t.scale)), 0, t.cols)
	r0 = clampInt(int(math.Floor(y/(t.scale*cellAspect))), 0, t.rows)
	c1 = clampInt(int(math.Ceil((x+w)/t.scale)), 0, t.cols)
	r1 = clampInt(int(math.Ceil((y+h)/(t.scale*cellAspect))), 0, t.rows)
	return
}

func (t *TerminalSurface) at(col, row int) *cell {
	return &t.buffer[row*t.cols+col]
}

// ClearRect implements entity.Surface
func (t *TerminalSurface) ClearRect(x, y, w, h float64) {
	c0, r0, c1, r1 := t.cellRange(x, y, w, h)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			*t.at(col, row) = cell{ch: ' ', style: tcell.StyleDefault}
		}
	}
}

// FillRect implements entity.Surface
func (t *TerminalSurface) FillRect(x, y, w, h float64, fill string) {
	bg := tcellColor(fill)
	c0, r0, c1, r1 := t.cellRange(x, y, w, h)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			c := t.at(col, row)
			c.ch = ' '
			c.style = c.style.Background(bg)
		}
	}
}

// StrokeRect implements entity.Surface. The outline is drawn with box
// characters on the outermost covered cells.
func (t *TerminalSurface) StrokeRect(x, y, w, h float64, stroke string, lineWidth float64) {
	fg := tcellColor(stroke)
	c0, r0, c1, r1 := t.cellRange(x, y, w, h)
	if c1-c0 < 2 || r1-r0 < 2 {
		return
	}
	last, bottom := c1-1, r1-1

	for col := c0; col <= last; col++ {
		t.stroke(col, r0, tcell.RuneHLine, fg)
		t.stroke(col, bottom, tcell.RuneHLine, fg)
	}
	for row := r0; row <= bottom; row++ {
		t.stroke(c0, row, tcell.RuneVLine, fg)
		t.stroke(last, row, tcell.RuneVLine, fg)
	}
	t.stroke(c0, r0, tcell.RuneULCorner, fg)
	t.stroke(last, r0, tcell.RuneURCorner, fg)
	t.stroke(c0, bottom, tcell.RuneLLCorner, fg)
	t.stroke(last, bottom, tcell.RuneLRCorner, fg)
}

func (t *TerminalSurface) stroke(col, row int, ch rune, fg tcell.Color) {
	c := t.at(col, row)
	c.ch = ch
	c.style = c.style.Foreground(fg)
}

// circleSpans returns, per covered row, the first and last column whose
// center lies inside the circle. A circle smaller than a cell covers the
// cell holding its center.
func (t *TerminalSurface) circleSpans(cx, cy, r float64) map[int][2]int {
	spans := make(map[int][2]int)
	c0, r0, c1, r1 := t.cellRange(cx-r, cy-r, 2*r, 2*r)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			x, y := t.ToArena(col, row)
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy >= r*r {
				continue
			}
			span, ok := spans[row]
			if !ok {
				span = [2]int{col, col}
			}
			span[1] = col
			spans[row] = span
		}
	}

	if len(spans) == 0 {
		col := int(math.Floor(cx / t.scale))
		row := int(math.Floor(cy / (t.scale * cellAspect)))
		if col >= 0 && col < t.cols && row >= 0 && row < t.rows {
			spans[row] = [2]int{col, col}
		}
	}
	return spans
}

// FillCircle implements entity.Surface
func (t *TerminalSurface) FillCircle(cx, cy, r float64, fill string) {
	bg := tcellColor(fill)
	for row, span := range t.circleSpans(cx, cy, r) {
		for col := span[0]; col <= span[1]; col++ {
			c := t.at(col, row)
			c.ch = ' '
			c.style = c.style.Background(bg)
		}
	}
}

// StrokeCircle implements entity.Surface. Each covered row is bracketed
// with parentheses; a single cell circle is drawn as a dot.
func (t *TerminalSurface) StrokeCircle(cx, cy, r float64, stroke string, lineWidth float64) {
	fg := tcellColor(stroke)
	for row, span := range t.circleSpans(cx, cy, r) {
		if span[0] == span[1] {
			t.stroke(span[0], row, '●', fg)
			continue
		}
		t.stroke(span[0], row, '(', fg)
		t.stroke(span[1], row, ')', fg)
	}
}

// Present copies the buffer to the screen and shows it
func (t *TerminalSurface) Present() {
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			c := t.at(col, row)
			t.screen.SetContent(col, row, c.ch, nil, c.style)
		}
	}
	t.screen.Show()
}

func tcellColor(fill string) tcell.Color {
	c := ParseFill(fill)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
