package render

import (
	"image/color"
	"reflect"
	"testing"

	"github.com/opd-ai/go-ballpit/pkg/entity"
)

func TestNewPalette_SkipsInvalid(t *testing.T) {
	p := NewPalette("Red", "nope", "#00F", "")
	want := []string{"red", "#0000ff"}
	if got := p.Colors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Colors() = %v, want %v", got, want)
	}

	empty := NewPalette()
	if got := empty.Colors(); !reflect.DeepEqual(got, []string{entity.DefaultFill}) {
		t.Errorf("empty palette Colors() = %v", got)
	}
}

func TestPalette_NextCycles(t *testing.T) {
	p := NewPalette("green", "red", "blue")
	ball := entity.NewBall(0, 0, 0)

	for _, want := range []string{"red", "blue", "green", "red"} {
		if got := p.Next(ball); got != want {
			t.Fatalf("Next() = %q, want %q", got, want)
		}
		if ball.Fill != want {
			t.Fatalf("ball fill = %q, want %q", ball.Fill, want)
		}
	}
}

func TestPalette_NextFromUnknownFill(t *testing.T) {
	p := NewPalette("green", "red")
	ball := entity.NewBall(0, 0, 0)
	ball.Fill = "#123456"

	if got := p.Next(ball); got != "green" {
		t.Errorf("Next() = %q, want the first palette entry", got)
	}
}

func TestParseFill(t *testing.T) {
	tests := []struct {
		fill string
		want color.RGBA
	}{
		{"green", color.RGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff}},
		{"#eeeeee", color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}},
		{"#000", color.RGBA{A: 0xff}},
		{"not a color", fallbackColor},
	}

	for _, tt := range tests {
		t.Run(tt.fill, func(t *testing.T) {
			if got := ParseFill(tt.fill); got != tt.want {
				t.Errorf("ParseFill(%q) = %v, want %v", tt.fill, got, tt.want)
			}
		})
	}
}
