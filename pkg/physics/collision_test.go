// pkg/physics/collision_test.go
package physics

import (
	"testing"
)

func TestCircle_Collides(t *testing.T) {
	tests := []struct {
		name     string
		circle1  Circle
		circle2  Circle
		expected bool
	}{
		{
			name:     "circles_touching",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 15},
			circle2:  Circle{Center: Vector2D{X: 30, Y: 0}, Radius: 15},
			expected: false, // tangency uses strict <
		},
		{
			name:     "circles_overlapping",
			circle1:  Circle{Center: Vector2D{X: 100, Y: 100}, Radius: 15},
			circle2:  Circle{Center: Vector2D{X: 129, Y: 100}, Radius: 15},
			expected: true,
		},
		{
			name:     "circles_apart",
			circle1:  Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 15},
			circle2:  Circle{Center: Vector2D{X: 40, Y: 0}, Radius: 15},
			expected: false,
		},
		{
			name:     "circles_same_position",
			circle1:  Circle{Center: Vector2D{X: 5, Y: 5}, Radius: 15},
			circle2:  Circle{Center: Vector2D{X: 5, Y: 5}, Radius: 15},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.circle1.Collides(tt.circle2); got != tt.expected {
				t.Errorf("Circle.Collides() = %v, expected %v", got, tt.expected)
			}
			if got := tt.circle2.Collides(tt.circle1); got != tt.expected {
				t.Errorf("Circle.Collides() reversed = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCircle_Contains(t *testing.T) {
	c := Circle{Center: Vector2D{X: 50, Y: 50}, Radius: 15}

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"center", 50, 50, true},
		{"inside", 60, 55, true},
		{"boundary_is_outside", 65, 50, false},
		{"outside", 70, 70, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestBounds_Contains(t *testing.T) {
	b := Bounds{Width: 800, Height: 500}

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 400, 250, true},
		{"left_edge", 0, 250, false},
		{"bottom_edge", 400, 500, false},
		{"outside", 900, 250, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.x, tt.y); got != tt.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestBounds_Walls(t *testing.T) {
	b := Bounds{Width: 800, Height: 500}

	tests := []struct {
		name       string
		center     Vector2D
		outX, outY bool
	}{
		{"middle", Vector2D{X: 400, Y: 250}, false, false},
		{"left_wall", Vector2D{X: 14, Y: 250}, true, false},
		{"touching_right_wall", Vector2D{X: 785, Y: 250}, true, false},
		{"top_wall", Vector2D{X: 400, Y: 3}, false, true},
		{"corner", Vector2D{X: 790, Y: 495}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Circle{Center: tt.center, Radius: 15}
			if got := b.OutX(c); got != tt.outX {
				t.Errorf("OutX() = %v, expected %v", got, tt.outX)
			}
			if got := b.OutY(c); got != tt.outY {
				t.Errorf("OutY() = %v, expected %v", got, tt.outY)
			}
		})
	}
}
