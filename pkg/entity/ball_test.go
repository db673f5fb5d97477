package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-ballpit/pkg/physics"
)

// drawCall records one Surface method invocation
type drawCall struct {
	Op        string
	X, Y      float64
	Size      float64
	Color     string
	LineWidth float64
}

// recordingSurface is a test Surface that keeps every call
type recordingSurface struct {
	calls []drawCall
}

func (r *recordingSurface) ClearRect(x, y, w, h float64) {
	r.calls = append(r.calls, drawCall{Op: "clear", X: x, Y: y, Size: w})
}

func (r *recordingSurface) FillRect(x, y, w, h float64, fill string) {
	r.calls = append(r.calls, drawCall{Op: "fillRect", X: x, Y: y, Size: w, Color: fill})
}

func (r *recordingSurface) StrokeRect(x, y, w, h float64, stroke string, lineWidth float64) {
	r.calls = append(r.calls, drawCall{Op: "strokeRect", X: x, Y: y, Size: w, Color: stroke, LineWidth: lineWidth})
}

func (r *recordingSurface) FillCircle(cx, cy, radius float64, fill string) {
	r.calls = append(r.calls, drawCall{Op: "fillCircle", X: cx, Y: cy, Size: radius, Color: fill})
}

func (r *recordingSurface) StrokeCircle(cx, cy, radius float64, stroke string, lineWidth float64) {
	r.calls = append(r.calls, drawCall{Op: "strokeCircle", X: cx, Y: cy, Size: radius, Color: stroke, LineWidth: lineWidth})
}

func movingBall(x, y, dx, dy, speed float64) *Ball {
	b := NewBall(0, x, y)
	b.Speed = speed
	b.setDirection(physics.Vector2D{X: dx, Y: dy}.Normalize())
	return b
}

func TestNewBall_Defaults(t *testing.T) {
	b := NewBall(3, 10, 20)

	if b.ID != 3 {
		t.Errorf("Expected ID 3, got %d", b.ID)
	}
	if b.Center != (physics.Vector2D{X: 10, Y: 20}) {
		t.Errorf("Expected center (10, 20), got %v", b.Center)
	}
	if b.Fill != DefaultFill {
		t.Errorf("Expected fill %q, got %q", DefaultFill, b.Fill)
	}
	if b.IsMoving() || b.Speed != 0 {
		t.Errorf("Expected a stationary ball, got speed %v direction %v", b.Speed, b.Direction)
	}
}

func TestBall_IsInside(t *testing.T) {
	b := NewBall(0, 100, 100)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"center", 100, 100, true},
		{"near_edge", 114, 100, true},
		{"exact_radius", 115, 100, false},
		{"diagonal_outside", 111, 111, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distSq := (tt.x-100)*(tt.x-100) + (tt.y-100)*(tt.y-100)
			if want := distSq < BallRadius*BallRadius; want != tt.expected {
				t.Fatalf("bad fixture: squared distance %v", distSq)
			}
			if got := b.IsInside(tt.x, tt.y); got != tt.expected {
				t.Errorf("IsInside(%v, %v) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestBall_CheckCollision_Symmetric(t *testing.T) {
	positions := []physics.Vector2D{
		{X: 0, Y: 0}, {X: 29, Y: 0}, {X: 30, Y: 0}, {X: 20, Y: 20}, {X: 300, Y: 10}, {X: 21, Y: 21},
	}

	for i, p := range positions {
		for j, q := range positions {
			a := NewBall(ID(i), p.X, p.Y)
			b := NewBall(ID(j), q.X, q.Y)
			if a.CheckCollision(b) != b.CheckCollision(a) {
				t.Errorf("CheckCollision not symmetric for %v and %v", p, q)
			}
		}
	}

	if NewBall(0, 0, 0).CheckCollision(NewBall(1, 30, 0)) {
		t.Error("Expected exact tangency to not collide")
	}
	if !NewBall(0, 0, 0).CheckCollision(NewBall(1, 29.9, 0)) {
		t.Error("Expected overlapping balls to collide")
	}
}

func TestBall_Stop(t *testing.T) {
	b := movingBall(50, 50, 1, 1, 2)
	b.Stop()

	if b.Direction != nil || b.Speed != 0 {
		t.Errorf("Expected stopped ball, got speed %v direction %v", b.Speed, b.Direction)
	}
}

func TestBall_GotHit(t *testing.T) {
	t.Run("stationary_striker_is_noop", func(t *testing.T) {
		target := NewBall(0, 129, 100)
		striker := NewBall(1, 100, 100)

		target.GotHit(striker)

		if target.IsMoving() || striker.IsMoving() {
			t.Error("Expected neither ball to move")
		}
		if target.Center != (physics.Vector2D{X: 129, Y: 100}) {
			t.Errorf("Expected target to stay in place, got %v", target.Center)
		}
	})

	t.Run("head_on", func(t *testing.T) {
		striker := movingBall(100, 100, 1, 0, 0.1)
		target := NewBall(1, 129, 100)

		target.GotHit(striker)

		if !target.IsMoving() {
			t.Fatal("Expected target to acquire a direction")
		}
		if math.Abs(target.Speed-0.1*MomentumLoss) > 1e-9 {
			t.Errorf("Expected target speed %v, got %v", 0.1*MomentumLoss, target.Speed)
		}
		if math.Abs(target.Direction.X-1) > 1e-9 || math.Abs(target.Direction.Y) > 1e-9 {
			t.Errorf("Expected target direction (1, 0), got %v", *target.Direction)
		}
		if striker.Speed != 0 || striker.Direction != nil {
			t.Errorf("Expected striker stopped, got speed %v direction %v", striker.Speed, striker.Direction)
		}
		if striker.IsMoving() {
			t.Error("Expected head-on striker to report not moving")
		}
		// separation step of 20ms at the new speed
		expectedX := 129 + 0.1*MomentumLoss*separationStep
		if math.Abs(target.Center.X-expectedX) > 1e-9 {
			t.Errorf("Expected target x %v after separation, got %v", expectedX, target.Center.X)
		}
	})

	t.Run("glancing", func(t *testing.T) {
		striker := movingBall(100, 100, 1, 1, 1)
		target := NewBall(1, 120, 100)

		normal := physics.Vector2D{X: 1, Y: 0}
		cos := striker.Direction.Cos(normal)
		sin := math.Sqrt(1 - cos*cos)
		deflected := striker.Direction.Sub(normal).Normalize()

		target.GotHit(striker)

		if math.Abs(target.Speed-cos*MomentumLoss) > 1e-9 {
			t.Errorf("Expected target speed %v, got %v", cos*MomentumLoss, target.Speed)
		}
		if math.Abs(striker.Speed-sin*MomentumLoss) > 1e-9 {
			t.Errorf("Expected striker speed %v, got %v", sin*MomentumLoss, striker.Speed)
		}
		if math.Abs(striker.Direction.X-deflected.X) > 1e-9 || math.Abs(striker.Direction.Y-deflected.Y) > 1e-9 {
			t.Errorf("Expected striker direction %v, got %v", deflected, *striker.Direction)
		}
	})

	t.Run("moving_away_does_not_push", func(t *testing.T) {
		striker := movingBall(100, 100, -1, 0, 1)
		target := NewBall(1, 120, 100)

		target.GotHit(striker)

		if target.IsMoving() {
			t.Errorf("Expected target to stay stopped, got direction %v", *target.Direction)
		}
		if target.Center.X != 120 {
			t.Errorf("Expected target to stay at x=120, got %v", target.Center.X)
		}
	})
}

func TestBall_IsMoving(t *testing.T) {
	zero := physics.Vector2D{}
	unit := physics.Vector2D{X: 1}

	tests := []struct {
		name      string
		direction *physics.Vector2D
		speed     float64
		want      bool
	}{
		{name: "stopped", want: false},
		{name: "direction without speed", direction: &zero, want: false},
		{name: "moving", direction: &unit, speed: 0.5, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBall(0, 10, 10)
			b.Direction = tt.direction
			b.Speed = tt.speed
			if got := b.IsMoving(); got != tt.want {
				t.Errorf("IsMoving() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBall_Bounce(t *testing.T) {
	t.Run("x_axis", func(t *testing.T) {
		b := movingBall(BallRadius-1, 250, -1, 0, 1)
		b.BounceOffX()

		if b.Direction.X <= 0 {
			t.Errorf("Expected direction.x to become positive, got %v", b.Direction.X)
		}
		if b.Center.X != BallRadius-1+wallNudge {
			t.Errorf("Expected nudge to x=%v, got %v", BallRadius-1+wallNudge, b.Center.X)
		}
		if b.Speed != MomentumLoss {
			t.Errorf("Expected speed %v, got %v", MomentumLoss, b.Speed)
		}
	})

	t.Run("y_axis", func(t *testing.T) {
		b := movingBall(400, 490, 0, 1, 0.5)
		b.BounceOffY()

		if b.Direction.Y >= 0 {
			t.Errorf("Expected direction.y to become negative, got %v", b.Direction.Y)
		}
		if b.Center.Y != 480 {
			t.Errorf("Expected nudge to y=480, got %v", b.Center.Y)
		}
	})

	t.Run("stopped_ball_is_noop", func(t *testing.T) {
		b := NewBall(0, 5, 5)
		b.BounceOffX()
		b.BounceOffY()

		if b.IsMoving() || b.Center != (physics.Vector2D{X: 5, Y: 5}) {
			t.Errorf("Expected untouched ball, got %v", b)
		}
	})
}

func TestBall_Update(t *testing.T) {
	t.Run("stopped_ball_stays", func(t *testing.T) {
		b := NewBall(0, 400, 250)
		for i := 0; i < 100; i++ {
			if !b.Update(10) {
				t.Fatal("Update() reported a non-finite step for a stopped ball")
			}
		}
		if b.Center != (physics.Vector2D{X: 400, Y: 250}) {
			t.Errorf("Expected ball to stay at (400, 250), got %v", b.Center)
		}
	})

	t.Run("integrates_direction_times_speed", func(t *testing.T) {
		b := movingBall(100, 100, 0, 1, 0.25)
		b.Update(8)
		if b.Center != (physics.Vector2D{X: 100, Y: 102}) {
			t.Errorf("Expected (100, 102), got %v", b.Center)
		}
	})

	t.Run("non_finite_step_stops_ball", func(t *testing.T) {
		b := movingBall(100, 100, 1, 0, math.Inf(1))
		if b.Update(10) {
			t.Error("Expected Update() to report a non-finite step")
		}
		if b.IsMoving() || b.Speed != 0 {
			t.Errorf("Expected ball to be stopped, got speed %v", b.Speed)
		}
		if b.Center != (physics.Vector2D{X: 100, Y: 100}) {
			t.Errorf("Expected center to stay finite at (100, 100), got %v", b.Center)
		}
	})
}

func TestBall_Render(t *testing.T) {
	s := &recordingSurface{}
	b := NewBall(0, 40, 60)
	b.Fill = "#ff0000"

	b.Render(s)

	if len(s.calls) != 2 {
		t.Fatalf("Expected 2 draw calls, got %d", len(s.calls))
	}
	if s.calls[0].Op != "fillCircle" || s.calls[0].Color != "#ff0000" || s.calls[0].Size != BallRadius {
		t.Errorf("Unexpected fill call %+v", s.calls[0])
	}
	if s.calls[1].Op != "strokeCircle" || s.calls[1].LineWidth != outlineWidth {
		t.Errorf("Unexpected stroke call %+v", s.calls[1])
	}
}

var _ Entity = (*Ball)(nil)
