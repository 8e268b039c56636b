package arplane

import (
	"errors"
	"fmt"
	"slices"
)

// MinBoundaryPoints is the smallest boundary that can be triangulated.
const MinBoundaryPoints = 3

// ErrDegenerateBoundary is returned by Boundary.Validate when a boundary has
// fewer than MinBoundaryPoints points or contains non-finite coordinates.
var ErrDegenerateBoundary = errors.New("arplane: degenerate boundary")

// Boundary is the ordered outline of a tracked plane, implicitly closed from
// the last point back to the first. The order defines the winding of every
// triangle built from it.
type Boundary []Vec3

// Validate reports whether the boundary satisfies the triangulation
// precondition. Callers at a trust boundary (file loaders, network input)
// should call it; the triangulators themselves panic instead.
func (b Boundary) Validate() error {
	if len(b) < MinBoundaryPoints {
		return fmt.Errorf("%w: %d points, need at least %d", ErrDegenerateBoundary, len(b), MinBoundaryPoints)
	}
	for i, p := range b {
		if !p.IsFinite() {
			return fmt.Errorf("%w: point %d is not finite: %v", ErrDegenerateBoundary, i, p)
		}
	}
	return nil
}

// Clone returns a copy of the boundary that shares no memory with b.
func (b Boundary) Clone() Boundary {
	return slices.Clone(b)
}

// Equal reports whether b and other have the same length and exactly equal
// points in the same order.
func (b Boundary) Equal(other Boundary) bool {
	return slices.Equal(b, other)
}

// Centroid returns the arithmetic mean of the boundary points.
// The zero vector is returned for an empty boundary.
func (b Boundary) Centroid() Vec3 {
	if len(b) == 0 {
		return Vec3{}
	}
	var sum Vec3
	for _, p := range b {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float32(len(b)))
}

// BoundaryChanged reports whether cur differs from prev.
//
// The comparison is exact: lengths must match and every point must be equal
// component for component, with no epsilon. Tracking sources report
// bit-identical boundaries for frames in which a plane did not change, so an
// unchanged result means the previously built mesh can be reused as is.
func BoundaryChanged(prev, cur []Vec3) bool {
	return !slices.Equal(prev, cur)
}

// mustTriangulable panics when the boundary violates the triangulation
// precondition. A short boundary is a caller bug, not a runtime condition.
func mustTriangulable(op string, boundary []Vec3) {
	if len(boundary) < MinBoundaryPoints {
		panic(fmt.Sprintf("arplane: %s: boundary has %d points, need at least %d",
			op, len(boundary), MinBoundaryPoints))
	}
}
