// Package config loads the hexapod's calibration files and environment
// settings, and hands the core pre-validated values: an angle-offset
// function and pan/tilt clamp bounds. A missing or malformed file is never
// fatal; the loader logs a warning and falls back to defaults so the robot
// always comes up.
package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/log"
)

// Default file locations, next to the binary like the on-robot install.
const (
	DefaultOffsetsFile = "servo_offsets.json"
	DefaultLimitsFile  = "pan_tilt_limits.json"
)

// Bounds are the pan/tilt clamp limits in degrees.
type Bounds struct {
	PanMin  int `json:"PAN_MIN"`
	PanMax  int `json:"PAN_MAX"`
	TiltMin int `json:"TILT_MIN"`
	TiltMax int `json:"TILT_MAX"`
}

// DefaultBounds returns the full servo range.
func DefaultBounds() Bounds {
	return Bounds{PanMin: 0, PanMax: 180, TiltMin: 0, TiltMax: 180}
}

// OffsetFunc applies the per-port calibration offset to an angle and clamps
// the result into the physical 0..180 servo range.
type OffsetFunc func(port, angle int) int

// LoadBounds reads pan/tilt limits from path. Any load fault returns
// DefaultBounds.
func LoadBounds(path string) Bounds {
	b := DefaultBounds()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("pan/tilt limits unreadable, using defaults", "path", path, "error", err)
		}
		return b
	}
	if err := json.Unmarshal(data, &b); err != nil {
		log.Warn("pan/tilt limits malformed, using defaults", "path", path, "error", err)
		return DefaultBounds()
	}
	return b
}

// LoadOffsets reads the per-port servo offset table from path and returns
// an OffsetFunc over it. The file maps port numbers (as JSON object keys)
// to signed degree offsets. Any load fault returns a zero-offset function.
func LoadOffsets(path string) OffsetFunc {
	offsets := map[int]int{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("servo offsets unreadable, using zero offsets", "path", path, "error", err)
		}
		return offsetFunc(offsets)
	}

	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn("servo offsets malformed, using zero offsets", "path", path, "error", err)
		return offsetFunc(offsets)
	}
	for k, v := range raw {
		port, err := strconv.Atoi(k)
		if err != nil {
			log.Warn("servo offsets: skipping non-numeric port", "port", k)
			continue
		}
		offsets[port] = v
	}
	return offsetFunc(offsets)
}

func offsetFunc(offsets map[int]int) OffsetFunc {
	return func(port, angle int) int {
		a := angle + offsets[port]
		if a < 0 {
			a = 0
		}
		if a > 180 {
			a = 180
		}
		return a
	}
}

// Env returns the environment variable value or a default.
func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
