package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/arplane"
	"github.com/gogpu/arplane/plane"
)

var (
	// ErrNoFrames is returned for a plane track without keyframes.
	ErrNoFrames = errors.New("scenario: plane has no frames")

	// ErrDuplicatePlane is returned when two tracks share an id.
	ErrDuplicatePlane = errors.New("scenario: duplicate plane id")

	// ErrAfterSubsumed is returned for keyframes following a subsumed one.
	ErrAfterSubsumed = errors.New("scenario: frame after subsumed")

	// ErrNegative is returned for negative frame numbers or durations.
	ErrNegative = errors.New("scenario: negative frame value")
)

// Scenario is a recorded tracking session.
type Scenario struct {
	Name string `toml:"name"`

	// Session lists the frames in which the session itself was not
	// tracking. No new planes are reported in those frames.
	Session []int `toml:"session,omitempty"`

	// Frames is the minimum scenario length. A replay always runs at least
	// until the last keyframe of every track has begun.
	Frames int `toml:"frames,omitempty"`

	// Palette optionally overrides the grid colors, as "#RRGGBB".
	Palette []string `toml:"palette,omitempty"`

	Planes []Track `toml:"plane"`
}

// Track is the history of one plane.
type Track struct {
	ID     uint64     `toml:"id"`
	Appear int        `toml:"appear"`
	Frames []Keyframe `toml:"frame"`
}

// Keyframe is the state of a plane from one frame on.
type Keyframe struct {
	State plane.TrackingState `toml:"state"`

	// Hold is the number of frames the keyframe lasts. Zero means one.
	Hold int `toml:"hold,omitempty"`

	Center [3]float32 `toml:"center"`

	// Rotation is a quaternion (x, y, z, w). All zeros means identity.
	Rotation [4]float32 `toml:"rotation"`

	Boundary [][3]float32 `toml:"boundary,omitempty"`
}

// Pose returns the center pose of the keyframe.
func (k *Keyframe) Pose() arplane.Pose {
	q := arplane.Quat{X: k.Rotation[0], Y: k.Rotation[1], Z: k.Rotation[2], W: k.Rotation[3]}
	if q == (arplane.Quat{}) {
		q = arplane.QuatIdent
	}
	return arplane.NewPose(arplane.V3(k.Center[0], k.Center[1], k.Center[2]), q.Normalize())
}

// Points returns the boundary as vectors.
func (k *Keyframe) Points() []arplane.Vec3 {
	if len(k.Boundary) == 0 {
		return nil
	}
	pts := make([]arplane.Vec3, len(k.Boundary))
	for i, p := range k.Boundary {
		pts[i] = arplane.V3(p[0], p[1], p[2])
	}
	return pts
}

func (k *Keyframe) hold() int {
	return max(k.Hold, 1)
}

// Length returns the number of frames of the track from its first appearance
// until its last keyframe begins, plus one.
func (t *Track) Length() int {
	n := 0
	for i := range t.Frames[:len(t.Frames)-1] {
		n += t.Frames[i].hold()
	}
	return n + 1
}

// Parse decodes and validates a scenario. Unknown fields are errors.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user input by design of the tools
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	arplane.Logger().Info("scenario: loaded", "path", path, "name", s.Name, "planes", len(s.Planes))
	return s, nil
}

// Encode returns the TOML form of the scenario.
func (s *Scenario) Encode() ([]byte, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("scenario: encode: %w", err)
	}
	return data, nil
}

// Save writes the TOML form of the scenario to path.
func (s *Scenario) Save(path string) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // scenario files are not secret
		return fmt.Errorf("scenario: %w", err)
	}
	return nil
}

// Validate checks the scenario for structural errors.
func (s *Scenario) Validate() error {
	if s.Frames < 0 {
		return fmt.Errorf("%w: frames = %d", ErrNegative, s.Frames)
	}
	for _, f := range s.Session {
		if f < 0 {
			return fmt.Errorf("%w: session frame %d", ErrNegative, f)
		}
	}
	if len(s.Palette) > 0 {
		if _, err := plane.ParsePalette(s.Palette...); err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
	}

	seen := make(map[uint64]bool, len(s.Planes))
	for i := range s.Planes {
		t := &s.Planes[i]
		if seen[t.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicatePlane, t.ID)
		}
		seen[t.ID] = true
		if err := t.validate(); err != nil {
			return fmt.Errorf("scenario: plane %d: %w", t.ID, err)
		}
	}
	return nil
}

func (t *Track) validate() error {
	if t.Appear < 0 {
		return fmt.Errorf("%w: appear = %d", ErrNegative, t.Appear)
	}
	if len(t.Frames) == 0 {
		return ErrNoFrames
	}
	for i := range t.Frames {
		k := &t.Frames[i]
		if i > 0 && t.Frames[i-1].State == plane.Subsumed {
			return fmt.Errorf("frame %d: %w", i, ErrAfterSubsumed)
		}
		if k.Hold < 0 {
			return fmt.Errorf("frame %d: %w: hold = %d", i, ErrNegative, k.Hold)
		}
		if _, err := k.State.MarshalText(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if k.State != plane.Tracking {
			continue
		}
		b := arplane.Boundary(k.Points())
		if err := b.Validate(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if !k.Pose().Position.IsFinite() {
			return fmt.Errorf("frame %d: center is not finite", i)
		}
	}
	return nil
}

// Len returns the number of frames a replay of s runs for.
func (s *Scenario) Len() int {
	n := s.Frames
	for i := range s.Planes {
		n = max(n, s.Planes[i].Appear+s.Planes[i].Length())
	}
	if len(s.Session) > 0 {
		n = max(n, slices.Max(s.Session)+1)
	}
	return n
}

// GridPalette returns the palette configured by the scenario, or nil for
// the default one.
func (s *Scenario) GridPalette() *plane.Palette {
	if len(s.Palette) == 0 {
		return nil
	}
	p, err := plane.ParsePalette(s.Palette...)
	if err != nil {
		return nil
	}
	return p
}
