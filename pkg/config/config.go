// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/opd-ai/go-ballpit/pkg/validation"
)

// Renderer names accepted by Config.Renderer
const (
	RendererEngo     = "engo"
	RendererTerminal = "terminal"
	RendererHeadless = "headless"
)

// Duration is a time.Duration that reads and writes as a string ("10ms")
type Duration time.Duration

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts either a duration string or integer nanoseconds
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration must be a string or integer: %s", data)
	}
	*d = Duration(n)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config contains configuration for a ball pit session
type Config struct {
	ArenaWidth  float64 `json:"arenaWidth"`
	ArenaHeight float64 `json:"arenaHeight"`
	BallCount   int     `json:"ballCount"`
	// Seed for ball placement. Zero picks a time-based seed.
	Seed uint64 `json:"seed"`
	// MaxSpeed bounds the launch speed of a released ball in arena units
	// per millisecond. Zero disables the bound.
	MaxSpeed float64 `json:"maxSpeed"`

	DefaultFill string   `json:"defaultFill"`
	Palette     []string `json:"palette"`

	TickInterval      Duration `json:"tickInterval"`
	IdleDelay         Duration `json:"idleDelay"`
	DoubleClickWindow Duration `json:"doubleClickWindow"`

	Renderer      string  `json:"renderer"`
	TerminalScale float64 `json:"terminalScale"`
	Fullscreen    bool    `json:"fullscreen"`

	Audio       bool    `json:"audio"`
	AudioVolume float64 `json:"audioVolume"`

	LogFile string `json:"logFile"`
}

// LoadConfig loads a configuration from a file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the classic 800x500 arena with 16 balls
func DefaultConfig() *Config {
	return &Config{
		ArenaWidth:        800,
		ArenaHeight:       500,
		BallCount:         16,
		MaxSpeed:          5,
		DefaultFill:       "green",
		Palette:           []string{"green", "red", "blue", "orange", "purple", "#ffffff"},
		TickInterval:      Duration(10 * time.Millisecond),
		IdleDelay:         Duration(50 * time.Millisecond),
		DoubleClickWindow: Duration(300 * time.Millisecond),
		Renderer:          RendererEngo,
		TerminalScale:     10,
		AudioVolume:       0.5,
	}
}

// Validate checks every field and reports all problems at once.
// Colors are replaced by their canonical form.
func (c *Config) Validate() error {
	var errs []error

	if !isFinite(c.ArenaWidth) || c.ArenaWidth <= 0 {
		errs = append(errs, fmt.Errorf("arenaWidth must be positive, got %v", c.ArenaWidth))
	}
	if !isFinite(c.ArenaHeight) || c.ArenaHeight <= 0 {
		errs = append(errs, fmt.Errorf("arenaHeight must be positive, got %v", c.ArenaHeight))
	}
	if c.BallCount < 0 {
		errs = append(errs, fmt.Errorf("ballCount must not be negative, got %d", c.BallCount))
	}
	if !isFinite(c.MaxSpeed) || c.MaxSpeed < 0 {
		errs = append(errs, fmt.Errorf("maxSpeed must be finite and not negative, got %v", c.MaxSpeed))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tickInterval must be positive, got %v", c.TickInterval.Std()))
	}
	if c.IdleDelay <= 0 {
		errs = append(errs, fmt.Errorf("idleDelay must be positive, got %v", c.IdleDelay.Std()))
	}
	if c.DoubleClickWindow <= 0 {
		errs = append(errs, fmt.Errorf("doubleClickWindow must be positive, got %v", c.DoubleClickWindow.Std()))
	}
	if !isFinite(c.TerminalScale) || c.TerminalScale <= 0 {
		errs = append(errs, fmt.Errorf("terminalScale must be positive, got %v", c.TerminalScale))
	}
	if !isFinite(c.AudioVolume) || c.AudioVolume < 0 || c.AudioVolume > 1 {
		errs = append(errs, fmt.Errorf("audioVolume must be within [0, 1], got %v", c.AudioVolume))
	}

	switch c.Renderer {
	case RendererEngo, RendererTerminal, RendererHeadless:
	default:
		errs = append(errs, fmt.Errorf("unknown renderer %q", c.Renderer))
	}

	if fill, err := validation.ValidateFill(c.DefaultFill); err != nil {
		errs = append(errs, fmt.Errorf("defaultFill: %w", err))
	} else {
		c.DefaultFill = fill
	}

	if len(c.Palette) == 0 {
		errs = append(errs, errors.New("palette must contain at least one color"))
	}
	for i, p := range c.Palette {
		fill, err := validation.ValidateFill(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("palette[%d]: %w", i, err))
			continue
		}
		c.Palette[i] = fill
	}

	return errors.Join(errs...)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
