package config

import "sort"

// Preset is a named arena layout applied over a base configuration
type Preset struct {
	Name        string
	ArenaWidth  float64
	ArenaHeight float64
	BallCount   int
}

var presets = map[string]Preset{
	"classic": {Name: "classic", ArenaWidth: 800, ArenaHeight: 500, BallCount: 16},
	"crowded": {Name: "crowded", ArenaWidth: 800, ArenaHeight: 500, BallCount: 64},
	"sparse":  {Name: "sparse", ArenaWidth: 1200, ArenaHeight: 800, BallCount: 6},
	"pocket":  {Name: "pocket", ArenaWidth: 320, ArenaHeight: 240, BallCount: 4},
}

// GetPreset returns the named preset, or nil if it does not exist
func GetPreset(name string) *Preset {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	return &p
}

// ListPresets returns the preset names in alphabetical order
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's arena and population onto c
func (p *Preset) Apply(c *Config) {
	c.ArenaWidth = p.ArenaWidth
	c.ArenaHeight = p.ArenaHeight
	c.BallCount = p.BallCount
}
