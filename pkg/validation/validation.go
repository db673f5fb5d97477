// Package validation sanitizes color strings supplied from outside the
// simulation (configuration files, environment, color picker input).
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxFillLen bounds the length of an accepted fill string
const MaxFillLen = 32

// namedColors maps the CSS color keywords the palette uses to hex.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"gray":    "#808080",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"navy":    "#000080",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"magenta": "#ff00ff",
	"cyan":    "#00ffff",
	"teal":    "#008080",
	"pink":    "#ffc0cb",
	"brown":   "#a52a2a",
}

// ValidateFill checks a fill string and returns its canonical form:
// lowercase for color keywords, lowercase #rrggbb for hex colors.
// Three digit hex (#abc) is expanded.
func ValidateFill(fill string) (string, error) {
	fill = strings.TrimSpace(fill)
	if fill == "" {
		return "", fmt.Errorf("fill color cannot be empty")
	}
	if !utf8.ValidString(fill) {
		return "", fmt.Errorf("fill color contains invalid UTF-8")
	}
	if len(fill) > MaxFillLen {
		return "", fmt.Errorf("fill color too long: %d characters (max %d)", len(fill), MaxFillLen)
	}

	lower := strings.ToLower(fill)
	if _, ok := namedColors[lower]; ok {
		return lower, nil
	}

	c, err := parseHex(lower)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// ResolveFill converts a fill string to a color
func ResolveFill(fill string) (colorful.Color, error) {
	canonical, err := ValidateFill(fill)
	if err != nil {
		return colorful.Color{}, err
	}
	if hex, ok := namedColors[canonical]; ok {
		canonical = hex
	}
	return colorful.Hex(canonical)
}

// IsNamedColor reports whether fill is a supported color keyword
func IsNamedColor(fill string) bool {
	_, ok := namedColors[strings.ToLower(strings.TrimSpace(fill))]
	return ok
}

func parseHex(s string) (colorful.Color, error) {
	if !strings.HasPrefix(s, "#") {
		return colorful.Color{}, fmt.Errorf("unknown color %q", s)
	}
	if len(s) == 4 {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	if len(s) != 7 {
		return colorful.Color{}, fmt.Errorf("invalid hex color %q: expected #rgb or #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return c, nil
}
