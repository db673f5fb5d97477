// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-ballpit/pkg/physics"
)

// ID identifies a body within a simulation. Balls are numbered by their
// position in the simulation's ball list.
type ID uint64

// Entity is the base interface for simulated bodies
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	GetCollider() physics.Circle
	Update(deltaTime float64) bool
	Render(s Surface)
}
