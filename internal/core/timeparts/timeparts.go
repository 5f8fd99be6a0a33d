// Package timeparts splits a duration into labeled, zero-padded units for
// display.
package timeparts

import (
	"fmt"
	"strings"
	"time"
)

// Unit describes one display unit.
type Unit struct {
	// Label is the key the part is stored under, e.g. "ms".
	Label string
	// Size is the length of a single unit.
	Size time.Duration
	// Next is how many of this unit make the next one. Values <= 1 leave
	// the unit unbounded.
	Next int64
	// Width is the minimum number of digits, padded with zeros.
	Width int
}

// DefaultUnits are ordered from smallest to largest.
var DefaultUnits = []Unit{
	{Label: "ms", Size: time.Millisecond, Next: 1000, Width: 3},
	{Label: "s", Size: time.Second, Next: 60, Width: 2},
	{Label: "m", Size: time.Minute, Next: 60, Width: 2},
	{Label: "h", Size: time.Hour, Next: 24, Width: 2},
	{Label: "d", Size: 24 * time.Hour, Next: 1, Width: 2},
}

// Part is a formatted unit value.
type Part struct {
	Label string
	Value string
}

// Parts keeps the unit order it was split with.
type Parts []Part

// Split breaks d into units, DefaultUnits when none are given. Negative
// durations are split by magnitude.
func Split(d time.Duration, units ...Unit) Parts {
	if len(units) == 0 {
		units = DefaultUnits
	}
	magnitude := uint64(d)
	if d < 0 {
		// -(d+1) stays in range for math.MinInt64.
		magnitude = uint64(-(d + 1)) + 1
	}

	parts := make(Parts, 0, len(units))
	for _, unit := range units {
		value := uint64(0)
		if unit.Size > 0 {
			value = magnitude / uint64(unit.Size)
		}
		if unit.Next > 1 {
			value %= uint64(unit.Next)
		}
		parts = append(parts, Part{
			Label: unit.Label,
			Value: fmt.Sprintf("%0*d", unit.Width, value),
		})
	}
	return parts
}

// Get returns the value stored under label, or "" when absent.
func (parts Parts) Get(label string) string {
	for _, part := range parts {
		if part.Label == label {
			return part.Value
		}
	}
	return ""
}

// Map returns the parts keyed by label.
func (parts Parts) Map() map[string]string {
	values := make(map[string]string, len(parts))
	for _, part := range parts {
		values[part.Label] = part.Value
	}
	return values
}

// Clock renders hours, minutes, seconds and milliseconds as hh:mm:ss:ms.
func (parts Parts) Clock() string {
	return strings.Join([]string{
		parts.Get("h"),
		parts.Get("m"),
		parts.Get("s"),
		parts.Get("ms"),
	}, ":")
}

// ParseUnits selects units from DefaultUnits by label, e.g. "h,m,s".
func ParseUnits(labels string) ([]Unit, error) {
	if strings.TrimSpace(labels) == "" {
		return append([]Unit(nil), DefaultUnits...), nil
	}

	selected := make(map[string]bool)
	for _, label := range strings.Split(labels, ",") {
		label = strings.TrimSpace(label)
		if !knownUnit(label) {
			return nil, fmt.Errorf("unknown unit %q", label)
		}
		selected[label] = true
	}

	units := make([]Unit, 0, len(selected))
	for _, unit := range DefaultUnits {
		if selected[unit.Label] {
			units = append(units, unit)
		}
	}
	// The largest selected unit absorbs everything above it.
	units[len(units)-1].Next = 1
	return units, nil
}

func knownUnit(label string) bool {
	for _, unit := range DefaultUnits {
		if unit.Label == label {
			return true
		}
	}
	return false
}
