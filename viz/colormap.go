// Package viz carries the visualization host's value types consumed by
// layer adapters. Only the colormap type is modeled; the host itself is
// out of scope.
package viz

import (
	"fmt"
	"strings"
)

// Color is an RGBA color with components in [0, 1].
type Color [4]float32

// Colormap is the host's colormap value type: a sequence of control
// colors interpolated linearly over [0, 1].
type Colormap struct {
	Name   string
	Colors []Color
}

// New constructs a colormap from a raw color ramp.
func New(colors ...Color) *Colormap {
	return &Colormap{Colors: colors}
}

// Spec is either an already-constructed colormap or a raw color ramp
// still to be constructed. Normalizing through Resolve never re-wraps
// an existing instance.
type Spec struct {
	wrapped *Colormap
	raw     []Color
}

// Wrapped returns a spec holding an existing colormap instance.
func Wrapped(cm *Colormap) Spec {
	return Spec{wrapped: cm}
}

// Ramp returns a spec holding a raw color ramp.
func Ramp(colors ...Color) Spec {
	return Spec{raw: colors}
}

// RampFromHex returns a spec ramping from black to the given hex color
// (e.g. "FF0000" or "#00ff00").
func RampFromHex(hex string) (Spec, error) {
	c, err := ParseHexColor(hex)
	if err != nil {
		return Spec{}, err
	}
	return Ramp(Color{0, 0, 0, 1}, c), nil
}

// IsWrapped reports whether the spec already holds a constructed colormap.
func (s Spec) IsWrapped() bool {
	return s.wrapped != nil
}

// Resolve returns the spec's colormap, constructing one from the raw
// ramp only when the spec is not already wrapped.
func (s Spec) Resolve() *Colormap {
	if s.wrapped != nil {
		return s.wrapped
	}
	return New(s.raw...)
}

// ParseHexColor parses an RGB hex string such as "FF0000" or "#8000ff"
// into a fully opaque color.
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(s[i*2])
		lo, ok2 := hexNibble(s[i*2+1])
		if !ok1 || !ok2 {
			return Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		rgb[i] = hi<<4 | lo
	}

	return Color{
		float32(rgb[0]) / 255,
		float32(rgb[1]) / 255,
		float32(rgb[2]) / 255,
		1,
	}, nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
