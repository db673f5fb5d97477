package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "BALLPIT_"

// LoadDotEnv loads variables from .env files into the process environment
// without overriding variables that are already set. Missing files are
// skipped. With no paths, ".env" in the working directory is tried.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides config fields from BALLPIT_* environment variables.
// Every malformed variable is reported; well-formed ones still apply.
func ApplyEnv(c *Config) error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	collect(envFloat("ARENA_WIDTH", &c.ArenaWidth))
	collect(envFloat("ARENA_HEIGHT", &c.ArenaHeight))
	collect(envInt("BALL_COUNT", &c.BallCount))
	collect(envUint("SEED", &c.Seed))
	collect(envFloat("MAX_SPEED", &c.MaxSpeed))
	envString("DEFAULT_FILL", &c.DefaultFill)
	envList("PALETTE", &c.Palette)
	collect(envDuration("TICK_INTERVAL", &c.TickInterval))
	collect(envDuration("IDLE_DELAY", &c.IdleDelay))
	collect(envDuration("DOUBLE_CLICK_WINDOW", &c.DoubleClickWindow))
	envString("RENDERER", &c.Renderer)
	collect(envFloat("TERMINAL_SCALE", &c.TerminalScale))
	collect(envBool("FULLSCREEN", &c.Fullscreen))
	collect(envBool("AUDIO", &c.Audio))
	collect(envFloat("AUDIO_VOLUME", &c.AudioVolume))
	envString("LOG_FILE", &c.LogFile)

	return errors.Join(errs...)
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func envString(name string, dst *string) {
	if v, ok := lookup(name); ok {
		*dst = v
	}
}

func envList(name string, dst *[]string) {
	v, ok := lookup(name)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

func envFloat(name string, dst *float64) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
	}
	*dst = f
	return nil
}

func envInt(name string, dst *int) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
	}
	*dst = n
	return nil
}

func envUint(name string, dst *uint64) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
	}
	*dst = n
	return nil
}

func envBool(name string, dst *bool) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
	}
	*dst = b
	return nil
}

func envDuration(name string, dst *Duration) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
	}
	*dst = Duration(d)
	return nil
}
