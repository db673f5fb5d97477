package engine

import (
	"context"
	"errors"
	"time"

	"github.com/opd-ai/go-ballpit/pkg/entity"
)

// ErrLoopClosed is returned by Submit once the loop has exited
var ErrLoopClosed = errors.New("simulation loop is not running")

// Intent is a mutation applied to the simulation on the loop goroutine
type Intent func(*Simulation)

// Loop drives a Simulation from a ticker. Pointer intents submitted from
// other goroutines are applied between ticks, so the simulation itself
// never needs locking.
type Loop struct {
	sim      *Simulation
	surface  entity.Surface
	interval time.Duration
	intents  chan Intent
	done     chan struct{}

	// MaxTicks stops the loop after that many ticks. Zero runs until the
	// context is canceled.
	MaxTicks uint64
	// OnTick runs on the loop goroutine after every tick
	OnTick func()
}

// NewLoop creates a loop that advances sim every interval and draws it
// to surface
func NewLoop(sim *Simulation, surface entity.Surface, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	return &Loop{
		sim:      sim,
		surface:  surface,
		interval: interval,
		intents:  make(chan Intent, 64),
		done:     make(chan struct{}),
	}
}

// Submit queues an intent for the loop goroutine. It blocks while the
// queue is full and fails once the loop has exited.
func (l *Loop) Submit(ctx context.Context, intent Intent) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}

	select {
	case l.intents <- intent:
		return nil
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run ticks the simulation until ctx is canceled or MaxTicks is reached.
// It returns nil when MaxTicks ends the run and the context error
// otherwise.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	l.sim.Start()
	defer l.sim.Stop()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	var ticks uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case intent := <-l.intents:
			intent(l.sim)
		case <-ticker.C:
			l.sim.AdvanceAndRender(l.surface)
			if l.OnTick != nil {
				l.OnTick()
			}
			ticks++
			if l.MaxTicks > 0 && ticks >= l.MaxTicks {
				return nil
			}
		}
	}
}
