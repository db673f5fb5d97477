// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Contains reports whether (x, y) lies strictly inside the circle.
// Points on the boundary are outside.
func (c Circle) Contains(x, y float64) bool {
	return Vector2D{X: x, Y: y}.Sub(c.Center).LengthSquared() < c.Radius*c.Radius
}

// Collides checks if two circles overlap. Exact tangency is not a collision.
func (c Circle) Collides(other Circle) bool {
	reach := c.Radius + other.Radius
	return other.Center.Sub(c.Center).LengthSquared() < reach*reach
}

// Bounds is the rectangular arena anchored at the origin
type Bounds struct {
	Width  float64
	Height float64
}

// Contains reports whether (x, y) lies strictly inside the arena.
// Pointer coordinates on the border are treated as outside.
func (b Bounds) Contains(x, y float64) bool {
	return x > 0 && x < b.Width && y > 0 && y < b.Height
}

// OutX reports whether a circle touches or crosses the left or right wall
func (b Bounds) OutX(c Circle) bool {
	return c.Center.X-c.Radius <= 0 || c.Center.X+c.Radius >= b.Width
}

// OutY reports whether a circle touches or crosses the top or bottom wall
func (b Bounds) OutY(c Circle) bool {
	return c.Center.Y-c.Radius <= 0 || c.Center.Y+c.Radius >= b.Height
}
