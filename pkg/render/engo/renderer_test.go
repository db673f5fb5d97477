package engo

import (
	"image/color"
	"testing"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ballpit/pkg/entity"
)

func TestSurface_MergesFillAndStroke(t *testing.T) {
	s := NewSurface(nil)

	s.FillRect(0, 0, 800, 500, "#eeeeee")
	s.StrokeRect(0, 0, 800, 500, "#000000", 3)
	entity.NewBall(0, 100, 100).Render(s)

	if len(s.shapes) != 2 {
		t.Fatalf("shapes = %d, want background and ball", len(s.shapes))
	}

	bg := s.shapes[0]
	if bg.kind != shapeRect || bg.fill != (color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}) || bg.lineWidth != 3 {
		t.Errorf("background shape = %+v", bg)
	}

	ball := s.shapes[1]
	if ball.kind != shapeCircle {
		t.Fatalf("ball shape kind = %v", ball.kind)
	}
	if ball.x != 85 || ball.y != 85 || ball.w != 30 || ball.h != 30 {
		t.Errorf("ball bounds = (%v,%v %vx%v), want (85,85 30x30)", ball.x, ball.y, ball.w, ball.h)
	}
	if ball.stroke != (color.RGBA{A: 0xff}) {
		t.Errorf("ball stroke = %v, want black", ball.stroke)
	}
}

func TestSurface_UnmatchedStrokeAddsOutline(t *testing.T) {
	s := NewSurface(nil)

	s.FillCircle(100, 100, 15, "red")
	s.StrokeCircle(200, 100, 15, "#000000", 3)

	if len(s.shapes) != 2 {
		t.Fatalf("shapes = %d, want 2", len(s.shapes))
	}
	if s.shapes[1].fill != color.Transparent {
		t.Errorf("outline fill = %v, want transparent", s.shapes[1].fill)
	}
}

func TestSurface_ClearRectDropsContainedShapes(t *testing.T) {
	s := NewSurface(nil)

	s.FillCircle(100, 100, 15, "red")
	s.FillCircle(5, 5, 15, "blue")
	s.ClearRect(0, 0, 800, 500)

	if len(s.shapes) != 1 {
		t.Fatalf("shapes = %d, want the circle poking out of the rect", len(s.shapes))
	}
	if s.shapes[0].x != -10 {
		t.Errorf("kept shape at x=%v, want -10", s.shapes[0].x)
	}
}

func TestSurface_PresentPoolsEntities(t *testing.T) {
	s := NewSurface(nil)

	for i := 0; i < 5; i++ {
		s.FillCircle(float64(100+40*i), 100, 15, "green")
	}
	s.Present()
	if len(s.pool) != 5 || s.Visible() != 5 {
		t.Fatalf("pool = %d, visible = %d, want 5/5", len(s.pool), s.Visible())
	}
	if len(s.shapes) != 0 {
		t.Errorf("shapes not reset after Present")
	}

	first := s.pool[0]
	if first.Position.X != 85 || first.Width != 30 {
		t.Errorf("entity space = %+v", first.SpaceComponent)
	}
	if _, ok := first.Drawable.(common.Circle); !ok {
		t.Errorf("entity drawable = %T, want common.Circle", first.Drawable)
	}

	s.FillCircle(100, 100, 15, "green")
	s.FillCircle(140, 100, 15, "green")
	s.Present()
	if len(s.pool) != 5 {
		t.Errorf("pool shrank to %d", len(s.pool))
	}
	if s.Visible() != 2 {
		t.Errorf("visible = %d, want 2", s.Visible())
	}
	if s.pool[0] != first {
		t.Error("pooled entity was replaced")
	}
}
