package physics

// Advance integrates a constant-speed motion along a unit direction
// over deltaTime and returns the new position.
func Advance(position, direction Vector2D, speed, deltaTime float64) Vector2D {
	return position.Add(direction.Scale(speed * deltaTime))
}
