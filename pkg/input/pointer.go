// pkg/input/pointer.go
package input

import (
	"time"

	"github.com/opd-ai/go-ballpit/pkg/entity"
	"github.com/opd-ai/go-ballpit/pkg/physics"
)

const (
	// DefaultIdleDelay is how long the pointer must rest before the drag
	// segment restarts
	DefaultIdleDelay = 50 * time.Millisecond
	// DefaultDoubleClickWindow is the longest gap between two presses of
	// a double click
	DefaultDoubleClickWindow = 300 * time.Millisecond
	// doubleClickSlop is how far apart, in arena units, two presses of a
	// double click may land
	doubleClickSlop = 5.0
)

// Target receives gestures in arena coordinates
type Target interface {
	GrabBall(x, y float64)
	MoveCaughtBall(x, y float64)
	MoveStop()
	ReleaseBall()
	GetBallAtPoint(x, y float64) *entity.Ball
}

// Pointer turns raw pointer events into gestures. It filters events to
// the arena, releases the held ball when the pointer leaves, detects the
// idle pause between drag segments and recognises double clicks.
type Pointer struct {
	target Target
	arena  physics.Bounds

	IdleDelay         time.Duration
	DoubleClickWindow time.Duration
	// OnDoubleClick receives the ball under a double click
	OnDoubleClick func(*entity.Ball)

	lastMove  time.Time
	idleArmed bool

	lastPress    time.Time
	lastPressPos physics.Vector2D
	pressed      bool
}

// NewPointer creates a pointer adapter for target over arena
func NewPointer(target Target, arena physics.Bounds) *Pointer {
	return &Pointer{
		target:            target,
		arena:             arena,
		IdleDelay:         DefaultIdleDelay,
		DoubleClickWindow: DefaultDoubleClickWindow,
	}
}

// Down handles a button press at (x, y)
func (p *Pointer) Down(x, y float64, now time.Time) {
	if !p.arena.Contains(x, y) {
		return
	}
	p.target.GrabBall(x, y)

	pos := physics.Vector2D{X: x, Y: y}
	if p.pressed && now.Sub(p.lastPress) <= p.DoubleClickWindow && pos.Distance(p.lastPressPos) <= doubleClickSlop {
		p.pressed = false
		p.DoubleClick(x, y)
		return
	}
	p.pressed = true
	p.lastPress = now
	p.lastPressPos = pos
}

// Move handles pointer motion to (x, y). Leaving the arena releases the
// held ball.
func (p *Pointer) Move(x, y float64, now time.Time) {
	if !p.arena.Contains(x, y) {
		p.idleArmed = false
		p.target.ReleaseBall()
		return
	}
	p.target.MoveCaughtBall(x, y)
	p.lastMove = now
	p.idleArmed = true
}

// Up handles a button release at (x, y)
func (p *Pointer) Up(x, y float64, now time.Time) {
	if !p.arena.Contains(x, y) {
		return
	}
	p.target.ReleaseBall()
}

// Poll fires the idle gesture once the pointer has rested for IdleDelay.
// It fires at most once per pause.
func (p *Pointer) Poll(now time.Time) {
	if !p.idleArmed || now.Sub(p.lastMove) < p.IdleDelay {
		return
	}
	p.idleArmed = false
	p.target.MoveStop()
}

// DoubleClick returns the ball under (x, y) and hands it to
// OnDoubleClick. Points outside the arena return nil.
func (p *Pointer) DoubleClick(x, y float64) *entity.Ball {
	if !p.arena.Contains(x, y) {
		return nil
	}
	b := p.target.GetBallAtPoint(x, y)
	if b != nil && p.OnDoubleClick != nil {
		p.OnDoubleClick(b)
	}
	return b
}
