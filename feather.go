package arplane

import "github.com/chewxy/math32"

// Feather parameters. They are fixed for the whole library: every plane is
// feathered the same way.
const (
	// FeatherLength is the absolute inset of the inner ring, in meters.
	FeatherLength float32 = 0.2

	// FeatherScale caps the inset as a fraction of the distance from a
	// boundary vertex to the plane center, so small planes keep a visible
	// opaque interior.
	FeatherScale float32 = 0.2
)

// InsetScale returns the factor s that places an inner-ring vertex at
// center + s*d, where d is the displacement from the center to the outer
// vertex.
//
//	s = 1 - min(FeatherLength/|d|, FeatherScale)
//
// The result lies in [1-FeatherScale, 1). A zero displacement (the boundary
// vertex coincides with the center) returns 1, leaving the vertex in place
// instead of dividing by zero.
func InsetScale(d Vec3) float32 {
	dist := d.Length()
	if dist == 0 {
		return 1
	}
	return 1 - math32.Min(FeatherLength/dist, FeatherScale)
}

// Triangulate converts a plane boundary into a feathered two-ring mesh.
//
// The outer ring is the boundary as given (vertices 0..N-1, transparent),
// the inner ring is the boundary pulled toward center by InsetScale
// (vertices N..2N-1, opaque white). Indices describe
//   - N-2 inner cap triangles, fanned from the first inner vertex
//   - 2N feather band triangles, two per boundary edge
//
// for (N-2)+2N triangles in total. All triangles keep the boundary's winding.
//
// Illustrated for a square (indices as emitted):
//
//	0_______________1
//	|4___________5|
//	| |         | |
//	| |         | |
//	|7-----------6|
//	3---------------2
//
//	cap:  (4,5,6) (4,6,7)
//	band: (0,1,4) (4,1,5) (1,2,5) (5,2,6) (2,3,6) (6,3,7) (3,0,7) (7,0,4)
//
// Triangulate panics if boundary has fewer than 3 points. The input slice is
// only read.
func Triangulate(boundary []Vec3, center Vec3) *Mesh {
	m := &Mesh{}
	TriangulateInto(m, boundary, center)
	return m
}

// TriangulateInto is like Triangulate but writes into dst, reusing its
// buffers. All of dst's previous contents are replaced; dst.Normals is
// cleared.
func TriangulateInto(dst *Mesh, boundary []Vec3, center Vec3) {
	mustTriangulable("Triangulate", boundary)

	n := len(boundary)
	dst.Vertices = resize(dst.Vertices, 2*n)
	dst.Colors = resize(dst.Colors, 2*n)
	dst.Normals = dst.Normals[:0]
	dst.Indices = resize(dst.Indices, 3*((n-2)+2*n))

	// Outer ring: the boundary itself, fully transparent.
	copy(dst.Vertices, boundary)
	for i := range n {
		dst.Colors[i] = Clear
	}

	// Inner ring: same cyclic order, pulled toward the center, opaque.
	for i, v := range boundary {
		d := v.Sub(center)
		dst.Vertices[n+i] = center.Add(d.Mul(InsetScale(d)))
		dst.Colors[n+i] = White
	}

	firstOuter := uint32(0)
	firstInner := uint32(n) //nolint:gosec // boundary size fits uint32
	count := uint32(n)      //nolint:gosec // boundary size fits uint32
	idx := dst.Indices[:0]

	// Inner cap.
	for i := uint32(0); i+2 < count; i++ {
		idx = append(idx, firstInner, firstInner+i+1, firstInner+i+2)
	}

	// Feather band: stitch each outer edge to its inner edge.
	for i := uint32(0); i < count; i++ {
		next := (i + 1) % count
		outer1, outer2 := firstOuter+i, firstOuter+next
		inner1, inner2 := firstInner+i, firstInner+next

		idx = append(idx,
			outer1, outer2, inner1,
			inner1, outer2, inner2,
		)
	}

	dst.Indices = idx
}
