package scenario

import (
	"github.com/gogpu/arplane"
	"github.com/gogpu/arplane/plane"
)

// Replay plays a scenario back as a tracking source, one frame per Step.
//
//	r := scenario.NewReplay(sc)
//	for r.Step() {
//		frames := gen.Update(r.Status(), r.NewPlanes())
//		...
//	}
type Replay struct {
	sc       *Scenario
	length   int
	frame    int
	lost     map[int]bool
	planes   []*replayPlane
	newThis  []plane.Plane
	reported []bool
}

// NewReplay prepares a replay of sc positioned before the first frame.
// sc must be valid.
func NewReplay(sc *Scenario) *Replay {
	r := &Replay{
		sc:       sc,
		length:   sc.Len(),
		frame:    -1,
		lost:     make(map[int]bool, len(sc.Session)),
		planes:   make([]*replayPlane, len(sc.Planes)),
		reported: make([]bool, len(sc.Planes)),
	}
	for _, f := range sc.Session {
		r.lost[f] = true
	}
	for i := range sc.Planes {
		r.planes[i] = newReplayPlane(&sc.Planes[i], r)
	}
	return r
}

// Step advances to the next frame and reports whether there was one.
func (r *Replay) Step() bool {
	if r.frame+1 >= r.length {
		r.frame = r.length
		r.newThis = r.newThis[:0]
		return false
	}
	r.frame++

	r.newThis = r.newThis[:0]
	if r.Status() != plane.SessionTracking {
		return true
	}
	for i, p := range r.planes {
		if !r.reported[i] && r.frame >= p.track.Appear {
			r.reported[i] = true
			r.newThis = append(r.newThis, p)
		}
	}
	return true
}

// Frame returns the current frame number, -1 before the first Step.
func (r *Replay) Frame() int { return r.frame }

// Len returns the number of frames.
func (r *Replay) Len() int { return r.length }

// Done reports whether the replay has run past its last frame.
func (r *Replay) Done() bool { return r.frame >= r.length }

// Status returns the session status of the current frame.
func (r *Replay) Status() plane.SessionStatus {
	if r.lost[r.frame] {
		return plane.SessionNotTracking
	}
	return plane.SessionTracking
}

// NewPlanes returns the planes first reported in the current frame. A plane
// that appears while the session is lost is reported at the next tracking
// frame. The slice is reused by the next Step.
func (r *Replay) NewPlanes() []plane.Plane { return r.newThis }

// Reset rewinds to before the first frame.
func (r *Replay) Reset() {
	r.frame = -1
	r.newThis = r.newThis[:0]
	clear(r.reported)
}

// Scenario returns the scenario being replayed.
func (r *Replay) Scenario() *Scenario { return r.sc }

// replayPlane is one track seen through the replay's current frame.
type replayPlane struct {
	track  *Track
	replay *Replay
	starts []int            // first frame of each keyframe
	points [][]arplane.Vec3 // boundary of each keyframe, converted once
	poses  []arplane.Pose
}

func newReplayPlane(t *Track, r *Replay) *replayPlane {
	p := &replayPlane{
		track:  t,
		replay: r,
		starts: make([]int, len(t.Frames)),
		points: make([][]arplane.Vec3, len(t.Frames)),
		poses:  make([]arplane.Pose, len(t.Frames)),
	}
	at := t.Appear
	for i := range t.Frames {
		k := &t.Frames[i]
		p.starts[i] = at
		p.points[i] = k.Points()
		p.poses[i] = k.Pose()
		at += k.hold()
	}
	return p
}

// keyframe returns the index of the keyframe active at the replay's frame,
// or -1 before the plane appears.
func (p *replayPlane) keyframe() int {
	f := p.replay.frame
	k := -1
	for i, s := range p.starts {
		if s > f {
			break
		}
		k = i
	}
	return k
}

func (p *replayPlane) ID() plane.ID { return plane.ID(p.track.ID) }

func (p *replayPlane) State() plane.TrackingState {
	k := p.keyframe()
	if k < 0 {
		return plane.NotTracking
	}
	st := p.track.Frames[k].State
	if st == plane.Tracking && p.replay.Status() != plane.SessionTracking {
		return plane.NotTracking
	}
	return st
}

func (p *replayPlane) Boundary(dst []arplane.Vec3) []arplane.Vec3 {
	k := p.keyframe()
	if k < 0 {
		return dst[:0]
	}
	return append(dst[:0], p.points[k]...)
}

func (p *replayPlane) CenterPose() arplane.Pose {
	k := p.keyframe()
	if k < 0 {
		return arplane.Pose{}
	}
	return p.poses[k]
}
