// pkg/render/engo/input.go
package engo

import (
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ballpit/pkg/input"
)

// MouseState is the part of the engo mouse this package reads
type MouseState struct {
	X, Y   float32
	Action engo.Action
}

// MouseSystem feeds the engo mouse into a Pointer
type MouseSystem struct {
	pointer *input.Pointer
	now     func() time.Time

	// read returns the current mouse and scale maps window pixels to
	// arena units; both are swapped out in tests
	read  func() MouseState
	scale func() (sx, sy float32)

	lastX, lastY float32
	seen         bool
}

// NewMouseSystem creates a mouse system driving pointer. now supplies
// gesture timestamps.
func NewMouseSystem(pointer *input.Pointer, now func() time.Time) *MouseSystem {
	return &MouseSystem{
		pointer: pointer,
		now:     now,
		read:    readEngoMouse,
		scale:   canvasScale,
	}
}

// canvasScale is the ratio of game size to canvas size, 1 when the
// window shows the arena unscaled
func canvasScale() (float32, float32) {
	cw, ch := engo.CanvasWidth(), engo.CanvasHeight()
	if cw <= 0 || ch <= 0 {
		return 1, 1
	}
	return engo.GameWidth() / cw, engo.GameHeight() / ch
}

func readEngoMouse() MouseState {
	m := engo.Input.Mouse
	return MouseState{X: m.X, Y: m.Y, Action: m.Action}
}

// Add satisfies the ecs.System interface
func (ms *MouseSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (ms *MouseSystem) Remove(basic ecs.BasicEntity) {
}

// Update translates this frame's mouse state into gestures
func (ms *MouseSystem) Update(dt float32) {
	m := ms.read()
	now := ms.now()
	sx, sy := ms.scale()
	x, y := float64(m.X*sx), float64(m.Y*sy)

	if !ms.seen || m.X != ms.lastX || m.Y != ms.lastY {
		ms.pointer.Move(x, y, now)
	}
	ms.lastX, ms.lastY, ms.seen = m.X, m.Y, true

	switch m.Action {
	case engo.Press:
		ms.pointer.Down(x, y, now)
	case engo.Release:
		ms.pointer.Up(x, y, now)
	}
	ms.pointer.Poll(now)
}
