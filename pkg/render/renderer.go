// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-ballpit/pkg/entity"
	"github.com/opd-ai/go-ballpit/pkg/logging"
)

// NullSurface is an entity.Surface that draws nothing. It logs draw
// calls at debug level and counts presented frames, which makes it the
// surface of headless runs.
type NullSurface struct {
	logger *logging.Logger
	ctx    context.Context

	frames  uint64
	circles int
}

// NewNullSurface creates a NullSurface logging to logger. A nil logger
// discards everything.
func NewNullSurface(logger *logging.Logger) *NullSurface {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullSurface{
		logger: logger,
		ctx:    context.Background(),
	}
}

// ClearRect implements entity.Surface
func (s *NullSurface) ClearRect(x, y, w, h float64) {
	s.circles = 0
	s.logger.Debug(s.ctx, "ClearRect called", "x", x, "y", y, "w", w, "h", h)
}

// FillRect implements entity.Surface
func (s *NullSurface) FillRect(x, y, w, h float64, fill string) {
	s.logger.Debug(s.ctx, "FillRect called", "fill", fill)
}

// StrokeRect implements entity.Surface
func (s *NullSurface) StrokeRect(x, y, w, h float64, stroke string, lineWidth float64) {
	s.logger.Debug(s.ctx, "StrokeRect called", "stroke", stroke, "line_width", lineWidth)
}

// FillCircle implements entity.Surface
func (s *NullSurface) FillCircle(cx, cy, r float64, fill string) {
	s.circles++
	s.logger.Debug(s.ctx, "FillCircle called", "cx", cx, "cy", cy, "fill", fill)
}

// StrokeCircle implements entity.Surface
func (s *NullSurface) StrokeCircle(cx, cy, r float64, stroke string, lineWidth float64) {
	s.logger.Debug(s.ctx, "StrokeCircle called", "cx", cx, "cy", cy)
}

// Present implements entity.Presenter
func (s *NullSurface) Present() {
	s.frames++
	s.logger.Debug(s.ctx, "Present called", "frame", s.frames, "circles", s.circles)
}

// Frames returns the number of presented frames
func (s *NullSurface) Frames() uint64 {
	return s.frames
}

// Circles returns the number of circles filled since the last clear
func (s *NullSurface) Circles() int {
	return s.circles
}

var (
	_ entity.Surface   = (*NullSurface)(nil)
	_ entity.Presenter = (*NullSurface)(nil)
)
