package arplane

// FanTriangulate builds the lightweight, unfeathered plane mesh: the raw
// boundary fanned around its center.
//
// Vertices are the boundary points followed by the center (index N). For
// every boundary edge i there is one triangle (N, i, (i+1) mod N), so the
// mesh has exactly N triangles, the first using boundary[0] and boundary[1]
// and the last wrapping back to boundary[0]. The mesh has no colors;
// smooth normals are computed for lit rendering.
//
// FanTriangulate panics if boundary has fewer than 3 points.
func FanTriangulate(boundary []Vec3, center Vec3) *Mesh {
	m := &Mesh{}
	FanTriangulateInto(m, boundary, center)
	return m
}

// FanTriangulateInto is like FanTriangulate but writes into dst, reusing its
// buffers.
func FanTriangulateInto(dst *Mesh, boundary []Vec3, center Vec3) {
	mustTriangulable("FanTriangulate", boundary)

	n := len(boundary)
	dst.Vertices = resize(dst.Vertices, n+1)
	copy(dst.Vertices, boundary)
	dst.Vertices[n] = center
	dst.Colors = dst.Colors[:0]

	apex := uint32(n)  //nolint:gosec // boundary size fits uint32
	count := uint32(n) //nolint:gosec // boundary size fits uint32
	idx := resize(dst.Indices, 3*n)[:0]
	for i := uint32(0); i < count; i++ {
		idx = append(idx, apex, i, (i+1)%count)
	}
	dst.Indices = idx

	dst.ComputeNormals()
}
