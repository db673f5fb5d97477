// pkg/render/engo/scene.go
package engo

import (
	"image/color"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ballpit/pkg/engine"
	"github.com/opd-ai/go-ballpit/pkg/input"
)

// maxStepsPerFrame bounds the ticks run for one slow frame; leftover
// frame time is dropped.
const maxStepsPerFrame = 5

// BallScene runs a simulation inside an engo window
type BallScene struct {
	world *ecs.World

	sim      *engine.Simulation
	pointer  *input.Pointer
	clock    *engine.ManualClock
	interval time.Duration

	surface *Surface
	mouse   *MouseSystem
}

// NewBallScene creates a scene for sim. pointer receives mouse
// gestures. clock must be the clock sim was built with; the scene steps
// it by interval for every tick so frame time is split into fixed ticks.
func NewBallScene(sim *engine.Simulation, pointer *input.Pointer, clock *engine.ManualClock, interval time.Duration) *BallScene {
	return &BallScene{
		sim:      sim,
		pointer:  pointer,
		clock:    clock,
		interval: interval,
		world:    &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *BallScene) Type() string {
	return "BallScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *BallScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *BallScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		world = &ecs.World{}
	}
	scene.world = world

	common.SetBackground(color.White)

	renderSystem := &common.RenderSystem{}
	scene.world.AddSystem(renderSystem)

	scene.surface = NewSurface(renderSystem)
	scene.mouse = NewMouseSystem(scene.pointer, scene.clock.Now)
	scene.world.AddSystem(scene.mouse)
	scene.world.AddSystem(NewSimulationSystem(scene.sim, scene.surface, scene.clock, scene.interval))

	scene.sim.Start()
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *BallScene) Exit() {
	scene.sim.Stop()
}

// SimulationSystem advances the simulation in fixed ticks, carrying the
// remainder of each frame over to the next
type SimulationSystem struct {
	sim      *engine.Simulation
	surface  *Surface
	clock    *engine.ManualClock
	interval time.Duration
	pending  time.Duration
}

// NewSimulationSystem creates a system ticking sim every interval of
// frame time. A non-positive interval ticks once per frame.
func NewSimulationSystem(sim *engine.Simulation, surface *Surface, clock *engine.ManualClock, interval time.Duration) *SimulationSystem {
	return &SimulationSystem{
		sim:      sim,
		surface:  surface,
		clock:    clock,
		interval: interval,
	}
}

// Add satisfies the ecs.System interface
func (ss *SimulationSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (ss *SimulationSystem) Remove(basic ecs.BasicEntity) {
}

// Update runs the ticks that fit into dt seconds
func (ss *SimulationSystem) Update(dt float32) {
	frame := time.Duration(float64(dt) * float64(time.Second))
	if ss.interval <= 0 {
		ss.clock.Advance(frame)
		ss.sim.AdvanceAndRender(ss.surface)
		return
	}

	ss.pending += frame
	for steps := 0; ss.pending >= ss.interval; steps++ {
		if steps == maxStepsPerFrame {
			ss.pending = 0
			break
		}
		ss.clock.Advance(ss.interval)
		ss.sim.AdvanceAndRender(ss.surface)
		ss.pending -= ss.interval
	}
}

// RunOptions returns window options sized to the arena. The arena is
// scaled to the window when the two differ, as in fullscreen mode.
func RunOptions(title string, sim *engine.Simulation, fullscreen bool) engo.RunOptions {
	return engo.RunOptions{
		Title:         title,
		Width:         int(sim.Arena.Width),
		Height:        int(sim.Arena.Height),
		Fullscreen:    fullscreen,
		ScaleOnResize: true,
		VSync:         true,
	}
}

// Run opens the window and blocks until it closes. sim must have been
// built on clock.
func Run(title string, sim *engine.Simulation, pointer *input.Pointer, clock *engine.ManualClock, interval time.Duration, fullscreen bool) {
	engo.Run(RunOptions(title, sim, fullscreen), NewBallScene(sim, pointer, clock, interval))
}
