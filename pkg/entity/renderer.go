package entity

// Surface is the drawing target a simulation renders onto.
// Coordinates are arena-local; colors are CSS-style strings.
type Surface interface {
	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64, fill string)
	StrokeRect(x, y, w, h float64, stroke string, lineWidth float64)
	FillCircle(cx, cy, r float64, fill string)
	StrokeCircle(cx, cy, r float64, stroke string, lineWidth float64)
}

// Presenter is implemented by surfaces that buffer a frame and need an
// explicit flush once all draw calls for a tick are issued.
type Presenter interface {
	Present()
}
