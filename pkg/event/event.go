// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	BallGrabbed       Type = "ball_grabbed"
	BallReleased      Type = "ball_released"
	BallCollision     Type = "ball_collision"
	WallBounce        Type = "wall_bounce"
	BallHalted        Type = "ball_halted"
	SimulationStarted Type = "simulation_started"
	SimulationStopped Type = "simulation_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is returned by Subscribe; calling Cancel removes the handler
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching.
// Handlers run synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes the handler behind sub. Nil subscriptions are ignored.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil || sub.Cancel == nil {
		return
	}
	sub.Cancel()
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// Specific event implementations

// BallEvent carries a single ball's state at the time of the event
type BallEvent struct {
	BaseEvent
	BallID uint64
	X, Y   float64
	Speed  float64
}

// NewBallEvent creates a new ball event
func NewBallEvent(eventType Type, source interface{}, ballID uint64, x, y, speed float64) *BallEvent {
	return &BallEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BallID: ballID,
		X:      x,
		Y:      y,
		Speed:  speed,
	}
}

// CollisionEvent describes a strike of one ball on another
type CollisionEvent struct {
	BaseEvent
	StrikerID uint64
	TargetID  uint64
	// Impact is the striker's speed before the hit
	Impact float64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, strikerID, targetID uint64, impact float64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: BallCollision,
			Source:    source,
		},
		StrikerID: strikerID,
		TargetID:  targetID,
		Impact:    impact,
	}
}

// Axis names the wall axis of a bounce
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// WallEvent describes a ball bouncing off a wall
type WallEvent struct {
	BaseEvent
	BallID uint64
	Axis   Axis
	Speed  float64
}

// NewWallEvent creates a new wall bounce event
func NewWallEvent(source interface{}, ballID uint64, axis Axis, speed float64) *WallEvent {
	return &WallEvent{
		BaseEvent: BaseEvent{
			EventType: WallBounce,
			Source:    source,
		},
		BallID: ballID,
		Axis:   axis,
		Speed:  speed,
	}
}
