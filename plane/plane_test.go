package plane

import (
	"github.com/gogpu/arplane"
)

// fakePlane is a scripted tracking source for a single plane.
type fakePlane struct {
	id       ID
	state    TrackingState
	boundary []arplane.Vec3
	pose     arplane.Pose
	reads    int
}

func (p *fakePlane) ID() ID                   { return p.id }
func (p *fakePlane) State() TrackingState     { return p.state }
func (p *fakePlane) CenterPose() arplane.Pose { return p.pose }

func (p *fakePlane) Boundary(dst []arplane.Vec3) []arplane.Vec3 {
	p.reads++
	return append(dst[:0], p.boundary...)
}

func square(half float32) []arplane.Vec3 {
	return []arplane.Vec3{
		arplane.V3(-half, 0, -half),
		arplane.V3(half, 0, -half),
		arplane.V3(half, 0, half),
		arplane.V3(-half, 0, half),
	}
}

func tracking(boundary []arplane.Vec3) Input {
	return Input{State: Tracking, Boundary: boundary}
}
