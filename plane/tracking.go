// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package plane

import (
	"fmt"

	"github.com/gogpu/arplane"
)

// ID identifies a tracked plane for the lifetime of a tracking session.
type ID uint64

// TrackingState is the per-frame state of a tracked plane as reported by
// the tracking source.
type TrackingState uint8

const (
	// NotTracking means the plane is temporarily lost. It is hidden but kept.
	NotTracking TrackingState = iota

	// Tracking means the plane's boundary and pose are current.
	Tracking

	// Subsumed means the plane was merged into another one and will never
	// be reported again. Its visualization is destroyed.
	Subsumed
)

var trackingStateNames = [...]string{
	NotTracking: "not-tracking",
	Tracking:    "tracking",
	Subsumed:    "subsumed",
}

// String returns the state name.
func (s TrackingState) String() string {
	if int(s) < len(trackingStateNames) {
		return trackingStateNames[s]
	}
	return fmt.Sprintf("TrackingState(%d)", uint8(s))
}

// ParseTrackingState parses a state name as returned by String.
func ParseTrackingState(name string) (TrackingState, error) {
	for i, n := range trackingStateNames {
		if n == name {
			return TrackingState(i), nil //nolint:gosec // index bounded by names table
		}
	}
	return NotTracking, fmt.Errorf("plane: unknown tracking state %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s TrackingState) MarshalText() ([]byte, error) {
	if int(s) >= len(trackingStateNames) {
		return nil, fmt.Errorf("plane: invalid tracking state %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *TrackingState) UnmarshalText(text []byte) error {
	v, err := ParseTrackingState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// SessionStatus is the state of the tracking session as a whole.
type SessionStatus uint8

const (
	// SessionNotTracking means motion tracking is unavailable; no new planes
	// are accepted.
	SessionNotTracking SessionStatus = iota

	// SessionTracking means motion tracking is running.
	SessionTracking
)

// String returns the status name.
func (s SessionStatus) String() string {
	switch s {
	case SessionNotTracking:
		return "not-tracking"
	case SessionTracking:
		return "tracking"
	default:
		return fmt.Sprintf("SessionStatus(%d)", uint8(s))
	}
}

// Plane is a tracked planar surface as exposed by the tracking source.
type Plane interface {
	// ID returns the plane's stable identifier.
	ID() ID

	// State returns the plane's tracking state for the current frame.
	State() TrackingState

	// Boundary appends the current boundary polygon to dst[:0] and returns
	// the result. Implementations must report bit-identical points for a
	// boundary that did not change.
	Boundary(dst []arplane.Vec3) []arplane.Vec3

	// CenterPose returns the pose of the plane center.
	CenterPose() arplane.Pose
}

// Input is everything a Visualizer needs for one tick.
type Input struct {
	State    TrackingState
	Boundary []arplane.Vec3
	Center   arplane.Pose
}

// InputOf reads the current frame of p. The boundary is written into
// scratch, which may be reused across frames. Boundary and pose are only
// read while p is tracking.
func InputOf(p Plane, scratch []arplane.Vec3) Input {
	in := Input{State: p.State()}
	if in.State == Tracking {
		in.Boundary = p.Boundary(scratch)
		in.Center = p.CenterPose()
	}
	return in
}
