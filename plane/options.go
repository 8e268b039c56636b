// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package plane

import (
	"fmt"
	"math/rand/v2"
)

// Mode selects how a plane boundary is turned into a mesh.
type Mode uint8

const (
	// ModeFeathered builds an opaque inner cap plus a transparent-edged
	// feather band. This is the default.
	ModeFeathered Mode = iota

	// ModeFan builds a plain triangle fan around the plane center with no
	// vertex colors.
	ModeFan
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFeathered:
		return "feathered"
	case ModeFan:
		return "fan"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses a mode name as returned by String.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "feathered", "":
		return ModeFeathered, nil
	case "fan":
		return ModeFan, nil
	default:
		return ModeFeathered, fmt.Errorf("plane: unknown mode %q", name)
	}
}

// Option configures a Visualizer or Generator during creation.
//
// Example:
//
//	gen := plane.NewGenerator(
//		plane.WithMode(plane.ModeFan),
//		plane.WithRand(rand.New(rand.NewPCG(1, 2))),
//	)
type Option func(*options)

// options holds optional configuration shared by Visualizer and Generator.
type options struct {
	mode    Mode
	rng     *rand.Rand
	palette *Palette
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		mode:    ModeFeathered,
		rng:     nil, // package-level source
		palette: nil, // DefaultPalette for generators
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMode selects the triangulation mode.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithRand sets the random source used for the per-plane UV rotation.
// Pass a seeded source for reproducible output.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithPalette sets the palette a Generator assigns grid colors from.
// Generators sharing a palette continue each other's color sequence.
// Ignored by NewVisualizer, which takes its palette explicitly.
func WithPalette(p *Palette) Option {
	return func(o *options) {
		o.palette = p
	}
}

// uvRotation draws a rotation in degrees from [0, 360).
func (o *options) uvRotation() float32 {
	if o.rng != nil {
		return o.rng.Float32() * 360
	}
	return rand.Float32() * 360 //nolint:gosec // visual jitter, not security
}
