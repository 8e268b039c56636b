package scenario

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gogpu/arplane"
	"github.com/gogpu/arplane/plane"
)

// SyntheticOptions controls Synthetic.
type SyntheticOptions struct {
	Planes int    // number of planes, default 4
	Frames int    // scenario length, default 120
	Points int    // boundary points per plane, default 8
	Step   int    // frames between boundary updates, default 10
	Seed   uint64 // random seed

	// SessionLoss drops session tracking for a few frames mid-run.
	SessionLoss bool
}

func (o *SyntheticOptions) defaults() {
	if o.Planes <= 0 {
		o.Planes = 4
	}
	if o.Frames <= 0 {
		o.Frames = 120
	}
	if o.Points < arplane.MinBoundaryPoints {
		o.Points = 8
	}
	if o.Step <= 0 {
		o.Step = 10
	}
}

// Synthetic builds a deterministic scenario of convex planes laid out on a
// grid on the floor. Each plane grows and turns a little every Step frames
// and holds its boundary in between. Every fourth plane briefly loses
// tracking and every third one is subsumed three quarters of the way in.
func Synthetic(opts SyntheticOptions) *Scenario {
	opts.defaults()
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)) //nolint:gosec // deterministic fixture data

	s := &Scenario{
		Name:   fmt.Sprintf("synthetic-%d", opts.Seed),
		Frames: opts.Frames,
	}
	if opts.SessionLoss {
		mid := opts.Frames / 2
		s.Session = []int{mid, mid + 1, mid + 2}
	}

	cols := int(math.Ceil(math.Sqrt(float64(opts.Planes))))
	for i := range opts.Planes {
		center := arplane.V3(float32(i%cols)*2.5, 0, -float32(i/cols)*2.5)
		appear := i * opts.Frames / (2 * opts.Planes)
		t := Track{ID: uint64(i + 1), Appear: appear} //nolint:gosec // i is non-negative

		radius := 0.3 + 0.2*rng.Float32()
		yaw := rng.Float32() * 2 * math.Pi
		jitter := make([]float32, opts.Points)
		for j := range jitter {
			jitter[j] = 1 + 0.1*(rng.Float32()-0.5)
		}

		subsumeAt := -1
		if i%3 == 2 {
			subsumeAt = opts.Frames * 3 / 4
		}
		lostAt := -1
		if i%4 == 1 {
			lostAt = appear + opts.Step
		}

		for f, k := appear, 0; f < opts.Frames; f, k = f+opts.Step, k+1 {
			if subsumeAt >= 0 && f >= subsumeAt {
				t.Frames = append(t.Frames, Keyframe{State: plane.Subsumed})
				break
			}
			if f == lostAt {
				t.Frames = append(t.Frames, Keyframe{State: plane.NotTracking, Hold: opts.Step})
				continue
			}
			r := radius * (1 + 0.15*float32(k))
			a := yaw + 0.05*float32(k)
			t.Frames = append(t.Frames, polygonKeyframe(center, r, a, jitter, opts.Step))
		}
		s.Planes = append(s.Planes, t)
	}
	return s
}

// polygonKeyframe returns a tracking keyframe whose boundary is a jittered
// regular polygon of radius r around center, turned by yaw about +Y.
func polygonKeyframe(center arplane.Vec3, r, yaw float32, jitter []float32, hold int) Keyframe {
	rot := arplane.QuatFromAxisAngle(arplane.Up, yaw)
	k := Keyframe{
		State:    plane.Tracking,
		Hold:     hold,
		Center:   center.Array(),
		Rotation: [4]float32{rot.X, rot.Y, rot.Z, rot.W},
		Boundary: make([][3]float32, len(jitter)),
	}
	n := len(jitter)
	for j := range n {
		a := 2 * math.Pi * float64(j) / float64(n)
		local := arplane.V3(float32(math.Cos(a)), 0, float32(math.Sin(a))).Mul(r * jitter[j])
		k.Boundary[j] = center.Add(rot.Rotate(local)).Array()
	}
	return k
}
