package entity

import (
	"time"

	"github.com/opd-ai/go-ballpit/pkg/physics"
)

// releaseThreshold is the minimum drag duration, in milliseconds, that
// imparts velocity on release
const releaseThreshold = 0.01

// CaughtBall is a ball held by the pointer. The ball stays owned by the
// simulation; CaughtBall only tracks where and when the current drag
// segment began.
type CaughtBall struct {
	Ball *Ball

	// MaxSpeed bounds the release speed. Zero disables the bound.
	MaxSpeed float64

	startTime   time.Time
	startCenter physics.Vector2D
	pinned      physics.Vector2D
}

// NewCaughtBall grabs ball at time now and stops it
func NewCaughtBall(ball *Ball, now time.Time) *CaughtBall {
	c := &CaughtBall{
		Ball:        ball,
		startTime:   now,
		startCenter: ball.Center,
		pinned:      ball.Center,
	}
	ball.Stop()
	return c
}

// MoveTo teleports the held ball to the pointer position
func (c *CaughtBall) MoveTo(x, y float64) {
	c.pinned = physics.Vector2D{X: x, Y: y}
	c.Ball.Center = c.pinned
}

// Hold restores the held state after anything else touched the ball
func (c *CaughtBall) Hold() {
	c.Ball.Stop()
	c.Ball.Center = c.pinned
}

// ResetMove starts a new drag segment from the ball's current position
func (c *CaughtBall) ResetMove(now time.Time) {
	c.startCenter = c.Ball.Center
	c.startTime = now
}

// Release lets go of the ball, launching it with the velocity of the
// last drag segment
func (c *CaughtBall) Release(now time.Time) {
	elapsed := float64(now.Sub(c.startTime)) / float64(time.Millisecond)
	displacement := c.Ball.Center.Sub(c.startCenter)
	length := displacement.Length()

	if elapsed <= releaseThreshold || length == 0 {
		c.Ball.Stop()
		return
	}

	speed := length / elapsed
	if c.MaxSpeed > 0 && speed > c.MaxSpeed {
		speed = c.MaxSpeed
	}
	c.Ball.Speed = speed
	c.Ball.setDirection(displacement.NormalizeWith(length))
}

// Elapsed returns the duration of the current drag segment
func (c *CaughtBall) Elapsed(now time.Time) time.Duration {
	return now.Sub(c.startTime)
}
