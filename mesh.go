package arplane

import (
	"errors"
	"fmt"
)

// ErrInvalidMesh is returned by Mesh.Validate for inconsistent buffers.
var ErrInvalidMesh = errors.New("arplane: invalid mesh")

// Mesh holds the renderable buffers produced by a triangulation pass.
//
// Vertices, Colors and Normals are parallel arrays: Colors and Normals are
// either empty or have one entry per vertex. Indices is a triangle list;
// every three consecutive indices form one triangle and address Vertices
// directly.
//
// A Mesh is rebuilt in place by TriangulateInto and FanTriangulateInto so
// that a plane redrawn every frame reuses its buffers.
type Mesh struct {
	Vertices []Vec3
	Colors   []RGBA
	Normals  []Vec3
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// HasColor reports whether the mesh carries per-vertex colors.
func (m *Mesh) HasColor() bool {
	return len(m.Colors) > 0
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]uint32 {
	j := i * 3
	return [3]uint32{m.Indices[j], m.Indices[j+1], m.Indices[j+2]}
}

// Reset clears the mesh without releasing memory.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Colors = m.Colors[:0]
	m.Normals = m.Normals[:0]
	m.Indices = m.Indices[:0]
}

// Release drops all buffers so their memory can be collected.
func (m *Mesh) Release() {
	*m = Mesh{}
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{}
	c.Vertices = append(c.Vertices, m.Vertices...)
	c.Colors = append(c.Colors, m.Colors...)
	c.Normals = append(c.Normals, m.Normals...)
	c.Indices = append(c.Indices, m.Indices...)
	return c
}

// Bounds returns the axis-aligned bounding box of all vertices.
// Returns zero vectors if the mesh is empty.
func (m *Mesh) Bounds() (lo, hi Vec3) {
	if len(m.Vertices) == 0 {
		return Vec3{}, Vec3{}
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo.X, hi.X = min(lo.X, v.X), max(hi.X, v.X)
		lo.Y, hi.Y = min(lo.Y, v.Y), max(hi.Y, v.Y)
		lo.Z, hi.Z = min(lo.Z, v.Z), max(hi.Z, v.Z)
	}
	return lo, hi
}

// ComputeNormals recalculates smooth per-vertex normals by accumulating
// area-weighted face normals of every triangle that uses the vertex.
func (m *Mesh) ComputeNormals() {
	m.Normals = resize(m.Normals, len(m.Vertices))
	for i := range m.Normals {
		m.Normals[i] = Vec3{}
	}
	for t := range m.TriangleCount() {
		tri := m.Triangle(t)
		a, b, c := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		for _, idx := range tri {
			m.Normals[idx] = m.Normals[idx].Add(n)
		}
	}
	for i := range m.Normals {
		m.Normals[i] = m.Normals[i].Normalize()
	}
}

// Validate checks that the buffers are consistent: indices form whole
// triangles and stay in range, and optional attribute arrays match the
// vertex count.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a whole number of triangles", ErrInvalidMesh, len(m.Indices))
	}
	if len(m.Colors) != 0 && len(m.Colors) != len(m.Vertices) {
		return fmt.Errorf("%w: %d colors for %d vertices", ErrInvalidMesh, len(m.Colors), len(m.Vertices))
	}
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidMesh, len(m.Normals), len(m.Vertices))
	}
	n := uint32(len(m.Vertices)) //nolint:gosec // vertex count fits uint32
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d = %d out of range [0, %d)", ErrInvalidMesh, i, idx, n)
		}
	}
	return nil
}

// resize returns s with length n, reusing its backing array when possible.
func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
