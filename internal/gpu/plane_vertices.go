//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/arplane"
	"github.com/gogpu/arplane/plane"
)

// planeVertexStride is the byte stride per vertex in the plane pipeline.
const planeVertexStride = 28

// planeUniformSize is the byte size of the per-plane uniform block.
const planeUniformSize = 96

// planeVertexLayout returns the vertex buffer layout for the plane pipeline.
func planeVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: planeVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, // color
			},
		},
	}
}

// BuildPlaneVertices packs the mesh vertices into the plane vertex layout.
// Meshes without vertex colors are packed opaque white.
func BuildPlaneVertices(m *arplane.Mesh) []byte {
	_, data := buildPlaneVerticesReuse(m, nil)
	return data
}

// buildPlaneVerticesReuse packs into staging, growing it if necessary.
// Returns the (possibly reallocated) staging buffer and the valid data.
func buildPlaneVerticesReuse(m *arplane.Mesh, staging []byte) ([]byte, []byte) {
	n := len(m.Vertices)
	if n == 0 {
		return staging, nil
	}
	staging = grow(staging, n*planeVertexStride)

	colored := m.HasColor()
	offset := 0
	for i, v := range m.Vertices {
		c := arplane.White
		if colored {
			c = m.Colors[i]
		}
		writePlaneVertex(staging[offset:], v, c)
		offset += planeVertexStride
	}
	return staging, staging[:offset]
}

// writePlaneVertex writes a single vertex into buf.
func writePlaneVertex(buf []byte, p arplane.Vec3, c arplane.RGBA) {
	putFloats(buf, p.X, p.Y, p.Z, c.R, c.G, c.B, c.A)
}

// BuildPlaneIndices packs the mesh indices as little-endian uint32.
func BuildPlaneIndices(m *arplane.Mesh) []byte {
	_, data := buildPlaneIndicesReuse(m, nil)
	return data
}

func buildPlaneIndicesReuse(m *arplane.Mesh, staging []byte) ([]byte, []byte) {
	n := len(m.Indices)
	if n == 0 {
		return staging, nil
	}
	staging = grow(staging, n*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(staging[i*4:], idx)
	}
	return staging, staging[:n*4]
}

// makePlaneUniform packs the per-plane uniform block.
func makePlaneUniform(buf []byte, viewProj arplane.Mat4, mat plane.Material) []byte {
	buf = grow(buf, planeUniformSize)

	normal := mat.PlaneNormal
	if normal.IsZero() {
		normal = arplane.Up
	}
	rotation := mat.UVRotation * math.Pi / 180

	putFloats(buf[0:64], viewProj[:]...)
	c := mat.GridColor
	putFloats(buf[64:80], c.R, c.G, c.B, c.A)
	putFloats(buf[80:96], normal.X, normal.Y, normal.Z, rotation)
	return buf[:planeUniformSize]
}

func putFloats(buf []byte, vs ...float32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}

// grow returns buf resliced to n bytes, reallocating if its capacity is short.
func grow(buf []byte, n int) []byte {
	if cap(buf) < n {
		return make([]byte, n)
	}
	return buf[:n]
}
