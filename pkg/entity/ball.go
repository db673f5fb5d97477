// pkg/entity/ball.go
package entity

import (
	"math"

	"github.com/opd-ai/go-ballpit/pkg/physics"
)

const (
	// BallRadius is shared by every ball
	BallRadius = 15.0
	// MomentumLoss is multiplied into speed on every bounce and hit
	MomentumLoss = 0.8
	// DefaultFill is the color of a freshly spawned ball
	DefaultFill = "green"

	// hitThreshold is the minimum normal component for a strike to push the target
	hitThreshold = 0.001
	// separationStep is the integration time applied to both balls after a hit
	separationStep = 20.0
	// wallNudge scales the direction component added to the center on a bounce
	wallNudge = 10.0

	outlineColor = "#000000"
	outlineWidth = 3.0
)

// Ball is a circular body drifting inside the arena.
// A nil Direction is the stopped state and always pairs with Speed == 0.
type Ball struct {
	ID        ID
	Center    physics.Vector2D
	Fill      string
	Speed     float64
	Direction *physics.Vector2D
}

// NewBall creates a stationary ball at (x, y)
func NewBall(id ID, x, y float64) *Ball {
	return &Ball{
		ID:     id,
		Center: physics.Vector2D{X: x, Y: y},
		Fill:   DefaultFill,
	}
}

// GetID returns the ball's identifier
func (b *Ball) GetID() ID {
	return b.ID
}

// GetPosition returns the ball's center
func (b *Ball) GetPosition() physics.Vector2D {
	return b.Center
}

// GetCollider returns the ball's collision shape
func (b *Ball) GetCollider() physics.Circle {
	return physics.Circle{Center: b.Center, Radius: BallRadius}
}

// IsMoving reports whether the ball has a direction of travel and a
// non-zero speed along it
func (b *Ball) IsMoving() bool {
	return b.Direction != nil && b.Speed > 0
}

// IsInside reports whether (x, y) lies strictly inside the ball
func (b *Ball) IsInside(x, y float64) bool {
	return b.GetCollider().Contains(x, y)
}

// CheckCollision reports whether two balls overlap
func (b *Ball) CheckCollision(other *Ball) bool {
	return b.GetCollider().Collides(other.GetCollider())
}

// Stop clears direction and speed together
func (b *Ball) Stop() {
	b.Direction = nil
	b.Speed = 0
}

func (b *Ball) setDirection(d physics.Vector2D) {
	b.Direction = &d
}

// GotHit applies the response of b being struck by striker. Nothing
// happens when the striker is not moving. The striker keeps the
// tangential share of its speed and is deflected away from the normal;
// b takes the normal share when the striker actually moves toward it.
// Both balls are then advanced a fixed step so they separate.
func (b *Ball) GotHit(striker *Ball) {
	if striker.Direction == nil {
		return
	}

	normal := b.Center.Sub(striker.Center).Normalize()
	cos := striker.Direction.Cos(normal)
	sin := math.Sqrt(1 - cos*cos)

	if cos > hitThreshold {
		b.Speed = striker.Speed * cos * MomentumLoss
		b.setDirection(normal)
	}
	striker.Speed = striker.Speed * sin * MomentumLoss
	deflected := striker.Direction.Sub(normal)
	if striker.Speed == 0 || deflected.LengthSquared() == 0 {
		striker.Stop()
	} else {
		striker.setDirection(deflected.Normalize())
	}

	striker.Update(separationStep)
	b.Update(separationStep)
}

// BounceOffX reflects the horizontal component of travel
func (b *Ball) BounceOffX() {
	if b.Direction == nil {
		return
	}
	d := *b.Direction
	d.X = -d.X
	b.setDirection(d)
	b.Center.X += d.X * wallNudge
	b.Speed *= MomentumLoss
}

// BounceOffY reflects the vertical component of travel
func (b *Ball) BounceOffY() {
	if b.Direction == nil {
		return
	}
	d := *b.Direction
	d.Y = -d.Y
	b.setDirection(d)
	b.Center.Y += d.Y * wallNudge
	b.Speed *= MomentumLoss
}

// Update moves the ball along its direction for deltaTime milliseconds.
// When the step would leave the ball at a non-finite position the ball
// is stopped where it is and false is returned.
func (b *Ball) Update(deltaTime float64) bool {
	if b.Direction == nil {
		return true
	}

	next := physics.Advance(b.Center, *b.Direction, b.Speed, deltaTime)
	if !next.IsFinite() {
		b.Stop()
		return false
	}
	b.Center = next
	return true
}

// Render draws the ball as a filled, outlined circle
func (b *Ball) Render(s Surface) {
	s.FillCircle(b.Center.X, b.Center.Y, BallRadius, b.Fill)
	s.StrokeCircle(b.Center.X, b.Center.Y, BallRadius, outlineColor, outlineWidth)
}
