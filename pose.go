package arplane

import "github.com/chewxy/math32"

// Quat is a unit quaternion describing a rotation. W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdent is the identity rotation.
var QuatIdent = Quat{W: 1}

// QuatFromAxisAngle returns the rotation of angle radians around axis.
// The axis does not need to be normalized.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	axis = axis.Normalize()
	s, c := math32.Sincos(angle / 2)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: c}
}

// Mul returns the composition q*r (apply r first, then q).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Normalize returns q scaled to unit length.
// A zero quaternion normalizes to the identity.
func (q Quat) Normalize() Quat {
	n := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if n == 0 {
		return QuatIdent
	}
	return Quat{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// Rotate applies the rotation to v.
//
// Uses v' = v + 2w(u x v) + 2u x (u x v), where u is the vector part.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// Pose is a rigid transform: a position and an orientation in world space.
// A tracked plane's center pose places its origin at the plane center with
// the rotated +Y axis as the plane normal.
type Pose struct {
	Position Vec3
	Rotation Quat
}

// NewPose creates a pose at position with the given rotation.
func NewPose(position Vec3, rotation Quat) Pose {
	return Pose{Position: position, Rotation: rotation}
}

// Up returns the pose's +Y axis in world space, the normal of the plane.
func (p Pose) Up() Vec3 {
	return p.Rotation.Rotate(Up).Normalize()
}
