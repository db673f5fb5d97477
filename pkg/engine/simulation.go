// pkg/engine/simulation.go
package engine

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/opd-ai/go-ballpit/pkg/config"
	"github.com/opd-ai/go-ballpit/pkg/entity"
	"github.com/opd-ai/go-ballpit/pkg/event"
	"github.com/opd-ai/go-ballpit/pkg/logging"
	"github.com/opd-ai/go-ballpit/pkg/physics"
)

const (
	// strikeEpsilon is the speed a ball needs to count as a striker
	strikeEpsilon = 0.001

	backgroundFill = "#eeeeee"
	borderStroke   = "#000000"
	borderWidth    = 3.0
)

// Options carries the collaborators of a Simulation. Zero values are
// replaced with defaults: the system clock, a time-seeded random source,
// a discarding logger and a fresh event bus.
type Options struct {
	Clock    Clock
	Rand     *rand.Rand
	Logger   *logging.Logger
	EventBus *event.Bus
	// Context is used for log entries, typically carrying a session ID
	Context context.Context
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = SystemClock{}
	}
	if o.Rand == nil {
		o.Rand = NewRand(uint64(time.Now().UnixNano()))
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.EventBus == nil {
		o.EventBus = event.NewEventBus()
	}
	if o.Context == nil {
		o.Context = context.Background()
	}
	return o
}

// Simulation owns every ball in the arena, the one ball held by the
// pointer, and the tick that advances them. It is not safe for
// concurrent use; run it from a single goroutine such as a Loop.
type Simulation struct {
	Balls    []*entity.Ball
	Arena    physics.Bounds
	EventBus *event.Bus
	Running  bool
	// Tick counts completed AdvanceAndRender calls
	Tick uint64
	// MaxSpeed bounds release speeds; zero disables the bound
	MaxSpeed float64

	caught   *entity.CaughtBall
	lastTick time.Time

	clock  Clock
	logger *logging.Logger
	ctx    context.Context
}

// NewSimulation creates a simulation from configuration, spawning
// cfg.BallCount balls at random integer positions inside the arena
func NewSimulation(cfg *config.Config, opts Options) *Simulation {
	if opts.Rand == nil && cfg.Seed != 0 {
		opts.Rand = NewRand(cfg.Seed)
	}
	opts = opts.withDefaults()
	arena := physics.Bounds{Width: cfg.ArenaWidth, Height: cfg.ArenaHeight}

	balls := make([]*entity.Ball, cfg.BallCount)
	for i := range balls {
		x := math.Floor(opts.Rand.Float64() * arena.Width)
		y := math.Floor(opts.Rand.Float64() * arena.Height)
		balls[i] = entity.NewBall(entity.ID(i), x, y)
		if cfg.DefaultFill != "" {
			balls[i].Fill = cfg.DefaultFill
		}
	}

	sim := NewSimulationWithBalls(arena, balls, opts)
	sim.MaxSpeed = cfg.MaxSpeed
	return sim
}

// NewRand creates the deterministic random source used for ball placement
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// NewSimulationWithBalls creates a simulation over an explicit ball set.
// Ball order is kept and used as the collision tie-break.
func NewSimulationWithBalls(arena physics.Bounds, balls []*entity.Ball, opts Options) *Simulation {
	opts = opts.withDefaults()
	return &Simulation{
		Balls:    balls,
		Arena:    arena,
		EventBus: opts.EventBus,
		clock:    opts.Clock,
		logger:   opts.Logger,
		ctx:      opts.Context,
		lastTick: opts.Clock.Now(),
	}
}

// Start marks the simulation running and restarts the tick timer so the
// first tick does not integrate the time spent before it
func (s *Simulation) Start() {
	s.Running = true
	s.lastTick = s.clock.Now()
	s.logger.Info(s.ctx, "simulation started",
		"balls", len(s.Balls),
		"width", s.Arena.Width,
		"height", s.Arena.Height,
	)
	s.EventBus.Publish(&event.BaseEvent{EventType: event.SimulationStarted, Source: s})
}

// Stop marks the simulation stopped
func (s *Simulation) Stop() {
	s.Running = false
	s.logger.Info(s.ctx, "simulation stopped", "ticks", s.Tick)
	s.EventBus.Publish(&event.BaseEvent{EventType: event.SimulationStopped, Source: s})
}

// GetBallAtPoint returns the first ball, in list order, containing (x, y)
func (s *Simulation) GetBallAtPoint(x, y float64) *entity.Ball {
	for _, b := range s.Balls {
		if b.IsInside(x, y) {
			return b
		}
	}
	return nil
}

// Caught returns the ball held by the pointer, or nil
func (s *Simulation) Caught() *entity.Ball {
	if s.caught == nil {
		return nil
	}
	return s.caught.Ball
}

// HasCaught reports whether a ball is held
func (s *Simulation) HasCaught() bool {
	return s.caught != nil
}

// GrabBall catches the first ball under (x, y). It does nothing while
// another ball is held or when no ball is under the point.
func (s *Simulation) GrabBall(x, y float64) {
	if s.caught != nil {
		return
	}

	b := s.GetBallAtPoint(x, y)
	if b == nil {
		return
	}

	s.caught = entity.NewCaughtBall(b, s.clock.Now())
	s.caught.MaxSpeed = s.MaxSpeed

	s.logger.Debug(s.ctx, "ball grabbed", "ball_id", b.ID, "x", x, "y", y)
	s.EventBus.Publish(event.NewBallEvent(event.BallGrabbed, s, uint64(b.ID), b.Center.X, b.Center.Y, 0))
}

// MoveCaughtBall teleports the held ball to (x, y)
func (s *Simulation) MoveCaughtBall(x, y float64) {
	if s.caught == nil {
		return
	}
	s.caught.MoveTo(x, y)
}

// MoveStop restarts velocity measurement for the held ball. Shells call
// it when the pointer has been still for the idle delay.
func (s *Simulation) MoveStop() {
	if s.caught == nil {
		return
	}
	s.caught.ResetMove(s.clock.Now())
}

// ReleaseBall lets go of the held ball, launching it with the velocity
// of the last drag segment
func (s *Simulation) ReleaseBall() {
	if s.caught == nil {
		return
	}

	now := s.clock.Now()
	c := s.caught
	s.caught = nil
	held := c.Elapsed(now)
	c.Release(now)

	b := c.Ball
	s.logger.Debug(s.ctx, "ball released",
		"ball_id", b.ID,
		"speed", b.Speed,
		"segment_ms", Milliseconds(held),
	)
	s.EventBus.Publish(event.NewBallEvent(event.BallReleased, s, uint64(b.ID), b.Center.X, b.Center.Y, b.Speed))
}

// AdvanceAndRender runs one tick: draw the arena, integrate and draw
// every ball, then resolve ball and wall collisions. The clock is read
// once so every ball integrates the same elapsed time.
func (s *Simulation) AdvanceAndRender(surface entity.Surface) {
	now := s.clock.Now()
	elapsed := Milliseconds(now.Sub(s.lastTick))

	s.drawArena(surface)
	for _, b := range s.Balls {
		if !b.Update(elapsed) {
			s.logger.Warn(s.ctx, "ball stopped after non-finite step",
				"ball_id", b.ID,
				"x", b.Center.X,
				"y", b.Center.Y,
				"elapsed_ms", elapsed,
			)
			s.EventBus.Publish(event.NewBallEvent(event.BallHalted, s, uint64(b.ID), b.Center.X, b.Center.Y, 0))
		}
		b.Render(surface)
	}

	s.checkBallCollisions()
	s.checkWallCollisions()

	if s.caught != nil {
		s.caught.Hold()
	}

	s.lastTick = now
	s.Tick++

	if p, ok := surface.(entity.Presenter); ok {
		p.Present()
	}
}

func (s *Simulation) drawArena(surface entity.Surface) {
	w, h := s.Arena.Width, s.Arena.Height
	surface.ClearRect(0, 0, w, h)
	surface.FillRect(0, 0, w, h, backgroundFill)
	surface.StrokeRect(0, 0, w, h, borderStroke, borderWidth)
}

// checkBallCollisions scans pairs in index order. Each ball resolves at
// most one contact per tick, against its first overlapping successor.
func (s *Simulation) checkBallCollisions() {
	for i := 0; i < len(s.Balls); i++ {
		a := s.Balls[i]
		for j := i + 1; j < len(s.Balls); j++ {
			b := s.Balls[j]
			if !a.CheckCollision(b) {
				continue
			}
			s.resolveHit(a, b)
			break
		}
	}
}

// resolveHit lets the faster ball strike the other. On equal speeds the
// later ball in the list strikes. The held ball never strikes, and it is
// pinned again as soon as it has been struck.
func (s *Simulation) resolveHit(a, b *entity.Ball) {
	speedA, speedB := s.strikeSpeed(a), s.strikeSpeed(b)

	var striker, target *entity.Ball
	switch {
	case speedB > strikeEpsilon && speedB >= speedA:
		striker, target = b, a
	case speedA > strikeEpsilon:
		striker, target = a, b
	default:
		return
	}

	impact := striker.Speed
	target.GotHit(striker)
	if s.caught != nil && s.caught.Ball == target {
		s.caught.Hold()
	}
	s.EventBus.Publish(event.NewCollisionEvent(s, uint64(striker.ID), uint64(target.ID), impact))
}

func (s *Simulation) strikeSpeed(b *entity.Ball) float64 {
	if s.caught != nil && s.caught.Ball == b {
		return 0
	}
	return math.Abs(b.Speed)
}

func (s *Simulation) checkWallCollisions() {
	for _, b := range s.Balls {
		collider := b.GetCollider()
		if s.Arena.OutX(collider) && b.IsMoving() {
			b.BounceOffX()
			s.EventBus.Publish(event.NewWallEvent(s, uint64(b.ID), event.AxisX, b.Speed))
		}
		if s.Arena.OutY(collider) && b.IsMoving() {
			b.BounceOffY()
			s.EventBus.Publish(event.NewWallEvent(s, uint64(b.ID), event.AxisY, b.Speed))
		}
	}
}

// BallState is a copy of one ball's state
type BallState struct {
	ID        entity.ID
	X, Y      float64
	Speed     float64
	Direction *physics.Vector2D
	Fill      string
	Caught    bool
}

// Snapshot copies the state of every ball in list order
func (s *Simulation) Snapshot() []BallState {
	states := make([]BallState, len(s.Balls))
	held := s.Caught()
	for i, b := range s.Balls {
		states[i] = BallState{
			ID:     b.ID,
			X:      b.Center.X,
			Y:      b.Center.Y,
			Speed:  b.Speed,
			Fill:   b.Fill,
			Caught: b == held,
		}
		if b.Direction != nil {
			d := *b.Direction
			states[i].Direction = &d
		}
	}
	return states
}
