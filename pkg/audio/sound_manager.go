package audio

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-ballpit/pkg/event"
	"github.com/opd-ai/go-ballpit/pkg/logging"
)

const (
	sampleRate = beep.SampleRate(48000)

	// fullImpact is the impact speed, in arena units per millisecond,
	// that plays at the highest pitch and gain
	fullImpact = 2.0

	plinkDuration = 60 * time.Millisecond
	lowPitch      = 220.0
	highPitch     = 880.0
)

// SoundManager plays a short tone for every ball and wall collision
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	triggered   uint64

	subs   []*event.Subscription
	logger *logging.Logger
}

// NewSoundManager creates a sound manager at volume in [0, 1]
func NewSoundManager(volume float64, logger *logging.Logger) *SoundManager {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: math.Max(0, math.Min(1, volume)),
		logger: logger,
	}
}

// Initialize opens the speaker. Until it succeeds collisions are
// counted but silent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return logging.WrapError(err, "initialize speaker", "sample_rate", int(sampleRate))
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Attach subscribes the manager to collision events on bus
func (sm *SoundManager) Attach(bus *event.Bus) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.subs = append(sm.subs,
		bus.Subscribe(event.BallCollision, func(e event.Event) {
			if hit, ok := e.(*event.CollisionEvent); ok {
				sm.PlayImpact(hit.Impact, 1)
			}
		}),
		bus.Subscribe(event.WallBounce, func(e event.Event) {
			if bounce, ok := e.(*event.WallEvent); ok {
				sm.PlayImpact(bounce.Speed, 0.5)
			}
		}),
	)
}

// Detach removes every subscription made by Attach
func (sm *SoundManager) Detach() {
	sm.mu.Lock()
	subs := sm.subs
	sm.subs = nil
	sm.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
}

// Cleanup detaches and stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.Detach()

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Triggered returns how many impacts were reported
func (sm *SoundManager) Triggered() uint64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.triggered
}

// PlayImpact plays a tone for an impact at speed. pitchScale shifts the
// tone, letting walls sound lower than balls.
func (sm *SoundManager) PlayImpact(speed, pitchScale float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.triggered++
	if !sm.initialized || sm.volume == 0 {
		return
	}

	s := NewPlinkGenerator(sampleRate, pitchFor(speed)*pitchScale, plinkDuration)
	vol := &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(sm.volume * gainFor(speed)),
	}

	speaker.Lock()
	sm.mixer.Add(vol)
	speaker.Unlock()

	sm.logger.Debug(context.Background(), "impact tone", "speed", speed, "pitch", pitchFor(speed)*pitchScale)
}

// impactLevel maps speed onto [0, 1]
func impactLevel(speed float64) float64 {
	speed = math.Abs(speed)
	if math.IsNaN(speed) {
		return 0
	}
	return math.Min(speed/fullImpact, 1)
}

// pitchFor returns the tone frequency for an impact at speed
func pitchFor(speed float64) float64 {
	return lowPitch + (highPitch-lowPitch)*impactLevel(speed)
}

// gainFor returns the tone gain for an impact at speed
func gainFor(speed float64) float64 {
	return 0.2 + 0.8*impactLevel(speed)
}

// PlinkGenerator is a sine tone with an exponential decay
type PlinkGenerator struct {
	sr    beep.SampleRate
	freq  float64
	total int
	pos   int
}

// NewPlinkGenerator creates a tone at freq lasting duration
func NewPlinkGenerator(sr beep.SampleRate, freq float64, duration time.Duration) *PlinkGenerator {
	return &PlinkGenerator{
		sr:    sr,
		freq:  freq,
		total: sr.N(duration),
	}
}

// Stream implements beep.Streamer
func (g *PlinkGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			break
		}
		t := float64(g.pos) / float64(g.sr)
		progress := float64(g.pos) / float64(g.total)

		sample := 0.5 * math.Sin(2*math.Pi*g.freq*t) * math.Exp(-5*progress)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
		n++
	}
	return n, true
}

// Err implements beep.Streamer
func (g *PlinkGenerator) Err() error {
	return nil
}
