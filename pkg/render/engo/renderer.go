// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ballpit/pkg/entity"
	"github.com/opd-ai/go-ballpit/pkg/render"
)

type shapeKind int

const (
	shapeRect shapeKind = iota
	shapeCircle
)

// shape is one primitive of the frame being drawn. Position is the top
// left corner, as engo places entities.
type shape struct {
	kind      shapeKind
	x, y      float32
	w, h      float32
	fill      color.Color
	stroke    color.Color
	lineWidth float32
}

// shapeEntity is a pooled engo entity showing one shape
type shapeEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// Surface implements entity.Surface on top of the engo render system.
// Draw calls collect shapes for the frame; Present maps them onto a pool
// of entities that grows to the largest frame seen and hides whatever a
// smaller frame leaves unused.
type Surface struct {
	renderSystem *common.RenderSystem

	shapes []shape
	pool   []*shapeEntity
}

// NewSurface creates a surface drawing through renderSystem. A nil
// render system keeps entities off screen, which tests rely on.
func NewSurface(renderSystem *common.RenderSystem) *Surface {
	return &Surface{renderSystem: renderSystem}
}

// ClearRect implements entity.Surface. Shapes lying entirely inside the
// cleared rect are dropped from the frame.
func (s *Surface) ClearRect(x, y, w, h float64) {
	x0, y0 := float32(x), float32(y)
	x1, y1 := float32(x+w), float32(y+h)

	kept := s.shapes[:0]
	for _, sh := range s.shapes {
		if sh.x >= x0 && sh.y >= y0 && sh.x+sh.w <= x1 && sh.y+sh.h <= y1 {
			continue
		}
		kept = append(kept, sh)
	}
	s.shapes = kept
}

// FillRect implements entity.Surface
func (s *Surface) FillRect(x, y, w, h float64, fill string) {
	s.shapes = append(s.shapes, shape{
		kind: shapeRect,
		x:    float32(x), y: float32(y),
		w: float32(w), h: float32(h),
		fill: render.ParseFill(fill),
	})
}

// StrokeRect implements entity.Surface
func (s *Surface) StrokeRect(x, y, w, h float64, stroke string, lineWidth float64) {
	s.addStroke(shape{
		kind: shapeRect,
		x:    float32(x), y: float32(y),
		w: float32(w), h: float32(h),
	}, stroke, lineWidth)
}

// FillCircle implements entity.Surface
func (s *Surface) FillCircle(cx, cy, r float64, fill string) {
	s.shapes = append(s.shapes, circleShape(cx, cy, r, render.ParseFill(fill)))
}

// StrokeCircle implements entity.Surface
func (s *Surface) StrokeCircle(cx, cy, r float64, stroke string, lineWidth float64) {
	s.addStroke(circleShape(cx, cy, r, nil), stroke, lineWidth)
}

func circleShape(cx, cy, r float64, fill color.Color) shape {
	return shape{
		kind: shapeCircle,
		x:    float32(cx - r), y: float32(cy - r),
		w: float32(2 * r), h: float32(2 * r),
		fill: fill,
	}
}

// addStroke outlines the previous shape when it has the same geometry,
// otherwise it adds an unfilled outline
func (s *Surface) addStroke(outline shape, stroke string, lineWidth float64) {
	c := render.ParseFill(stroke)
	if n := len(s.shapes); n > 0 {
		last := &s.shapes[n-1]
		if last.kind == outline.kind && last.x == outline.x && last.y == outline.y && last.w == outline.w && last.h == outline.h {
			last.stroke = c
			last.lineWidth = float32(lineWidth)
			return
		}
	}
	outline.fill = color.Transparent
	outline.stroke = c
	outline.lineWidth = float32(lineWidth)
	s.shapes = append(s.shapes, outline)
}

// Present implements entity.Presenter
func (s *Surface) Present() {
	for i, sh := range s.shapes {
		e := s.entity(i)
		e.Drawable = drawable(sh)
		e.Color = sh.fill
		e.Hidden = false
		e.Position = engo.Point{X: sh.x, Y: sh.y}
		e.Width = sh.w
		e.Height = sh.h
	}
	for _, e := range s.pool[len(s.shapes):] {
		e.Hidden = true
	}
	s.shapes = s.shapes[:0]
}

// Visible returns the number of pooled entities currently shown
func (s *Surface) Visible() int {
	n := 0
	for _, e := range s.pool {
		if !e.Hidden {
			n++
		}
	}
	return n
}

func (s *Surface) entity(i int) *shapeEntity {
	for len(s.pool) <= i {
		e := &shapeEntity{BasicEntity: ecs.NewBasic()}
		if s.renderSystem != nil {
			// Pool slots keep their draw order across frames
			e.SetZIndex(float32(len(s.pool)))
			s.renderSystem.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
		}
		s.pool = append(s.pool, e)
	}
	return s.pool[i]
}

func drawable(sh shape) common.Drawable {
	var border color.Color = color.Transparent
	if sh.stroke != nil {
		border = sh.stroke
	}
	if sh.kind == shapeCircle {
		return common.Circle{BorderWidth: sh.lineWidth, BorderColor: border, Arc: 360}
	}
	return common.Rectangle{BorderWidth: sh.lineWidth, BorderColor: border}
}

var (
	_ entity.Surface   = (*Surface)(nil)
	_ entity.Presenter = (*Surface)(nil)
)
