// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"
)

// TestNewEventBus tests the creation of a new event bus
func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}
	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}
	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{name: "BallGrabbed event", eventType: BallGrabbed, source: "test_source"},
		{name: "WallBounce event", eventType: WallBounce, source: 123},
		{name: "Empty source", eventType: SimulationStarted, source: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{EventType: tt.eventType, Source: tt.source}

			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}
			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

func TestBusSubscribe_MultipleHandlers_UniqueIDs(t *testing.T) {
	bus := NewEventBus()

	sub1 := bus.Subscribe(BallCollision, func(e Event) {})
	sub2 := bus.Subscribe(BallCollision, func(e Event) {})
	_ = bus.Subscribe(WallBounce, func(e Event) {})

	if sub1.ID == 0 || sub1.ID == sub2.ID {
		t.Errorf("expected unique non-zero IDs, got %d and %d", sub1.ID, sub2.ID)
	}

	bus.mu.RLock()
	defer bus.mu.RUnlock()
	if len(bus.handlers[BallCollision]) != 2 {
		t.Errorf("expected 2 collision handlers, got %d", len(bus.handlers[BallCollision]))
	}
	if len(bus.handlers[WallBounce]) != 1 {
		t.Errorf("expected 1 wall handler, got %d", len(bus.handlers[WallBounce]))
	}
}

func TestBusPublish_WithSubscribers_CallsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int

	bus.Subscribe(BallReleased, func(e Event) { order = append(order, 1) })
	bus.Subscribe(BallReleased, func(e Event) { order = append(order, 2) })
	bus.Subscribe(BallGrabbed, func(e Event) { order = append(order, 3) })

	bus.Publish(NewBallEvent(BallReleased, "test", 4, 10, 20, 0.5))

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected handlers [1 2], got %v", order)
	}
}

func TestBusPublish_NoSubscribers_NoPanic(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(&BaseEvent{EventType: BallHalted})
}

func TestBusUnsubscribe_RemovesOnlyThatHandler(t *testing.T) {
	bus := NewEventBus()
	var first, second int

	sub := bus.Subscribe(WallBounce, func(e Event) { first++ })
	bus.Subscribe(WallBounce, func(e Event) { second++ })

	bus.Unsubscribe(sub)
	bus.Publish(NewWallEvent("test", 1, AxisX, 1))

	if first != 0 {
		t.Errorf("expected unsubscribed handler not to run, ran %d times", first)
	}
	if second != 1 {
		t.Errorf("expected remaining handler to run once, ran %d times", second)
	}

	// double cancel and nil are harmless
	sub.Cancel()
	bus.Unsubscribe(nil)
}

func TestBusUnsubscribe_LastHandler_DeletesType(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(BallHalted, func(e Event) {})
	sub.Cancel()

	bus.mu.RLock()
	defer bus.mu.RUnlock()
	if _, ok := bus.handlers[BallHalted]; ok {
		t.Error("expected handler slice to be removed")
	}
}

func TestBus_ConcurrentSubscribeAndPublish_NoRace(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Subscribe(BallCollision, func(e Event) {})
		}()
		go func() {
			defer wg.Done()
			bus.Publish(NewCollisionEvent("test", 1, 2, 0.3))
		}()
	}
	wg.Wait()
}

func TestEventConstructors_PopulateFields(t *testing.T) {
	c := NewCollisionEvent("src", 1, 2, 0.7)
	if c.GetType() != BallCollision || c.StrikerID != 1 || c.TargetID != 2 || c.Impact != 0.7 {
		t.Errorf("unexpected collision event %+v", c)
	}

	w := NewWallEvent("src", 3, AxisY, 0.2)
	if w.GetType() != WallBounce || w.BallID != 3 || w.Axis != AxisY {
		t.Errorf("unexpected wall event %+v", w)
	}

	b := NewBallEvent(BallGrabbed, "src", 5, 1, 2, 0)
	if b.GetType() != BallGrabbed || b.BallID != 5 || b.X != 1 || b.Y != 2 {
		t.Errorf("unexpected ball event %+v", b)
	}
}
