package sir

import (
	"fmt"
	"strconv"
	"strings"
)

// Boundary selects how neighbours beyond the lattice edge are treated.
type Boundary uint8

const (
	// BoundaryFill treats out-of-range neighbours as absent (zero padding).
	BoundaryFill Boundary = iota
	// BoundaryWrap joins opposite edges into a torus.
	BoundaryWrap
)

func (b Boundary) String() string {
	switch b {
	case BoundaryWrap:
		return "wrap"
	default:
		return "fill"
	}
}

// ParseBoundary converts "fill" or "wrap" into a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fill", "zero", "":
		return BoundaryFill, nil
	case "wrap", "torus", "toroidal":
		return BoundaryWrap, nil
	}
	return BoundaryFill, fmt.Errorf("sir: unknown boundary %q", s)
}

// Params holds the epidemic rates and the run horizon.
type Params struct {
	// Beta is the per-step infection probability of a susceptible cell with
	// at least one infected neighbour.
	Beta float64
	// Gamma is the per-step recovery probability of an infected cell.
	Gamma float64
	// MaxSteps bounds the number of recorded steps of a single run.
	MaxSteps int

	Boundary Boundary
}

// Config controls the lattice size, seeding and epidemic parameters.
type Config struct {
	Size int
	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size: 200,
		Seed: 42,
		Params: Params{
			Beta:     0.25,
			Gamma:    0.2,
			MaxSteps: 500,
			Boundary: BoundaryFill,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	ApplyMap(&c, cfg)
	return c
}

// ApplyMap overlays recognised keys from cfg onto c.
func ApplyMap(c *Config, cfg map[string]string) {
	if v, ok := cfg["l"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Size = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["beta"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.Beta = parsed
		}
	}
	if v, ok := cfg["gamma"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.Gamma = parsed
		}
	}
	if v, ok := cfg["max_steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.MaxSteps = parsed
		}
	}
	if v, ok := cfg["boundary"]; ok {
		if parsed, err := ParseBoundary(v); err == nil {
			c.Params.Boundary = parsed
		}
	}
}
