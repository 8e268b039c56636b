//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/arplane"
	"github.com/gogpu/arplane/plane"
)

func readFloat(buf []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
}

func testBoundary() []arplane.Vec3 {
	return []arplane.Vec3{
		arplane.V3(-1, 0, -1),
		arplane.V3(1, 0, -1),
		arplane.V3(1, 0, 1),
		arplane.V3(-1, 0, 1),
	}
}

func TestPlaneVertexLayout(t *testing.T) {
	layout := planeVertexLayout()
	if len(layout) != 1 {
		t.Fatalf("expected 1 buffer layout, got %d", len(layout))
	}
	l := layout[0]
	if l.ArrayStride != planeVertexStride {
		t.Errorf("ArrayStride = %d, want %d", l.ArrayStride, planeVertexStride)
	}
	if len(l.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(l.Attributes))
	}
	if l.Attributes[0].Format != gputypes.VertexFormatFloat32x3 || l.Attributes[0].Offset != 0 {
		t.Errorf("position attribute = %+v", l.Attributes[0])
	}
	if l.Attributes[1].Format != gputypes.VertexFormatFloat32x4 || l.Attributes[1].Offset != 12 {
		t.Errorf("color attribute = %+v", l.Attributes[1])
	}
}

func TestBuildPlaneVerticesFeathered(t *testing.T) {
	m := arplane.Triangulate(testBoundary(), arplane.Vec3{})
	data := BuildPlaneVertices(m)

	if got, want := len(data), 8*planeVertexStride; got != want {
		t.Fatalf("len = %d, want %d", got, want)
	}
	// Vertex 0: outer ring, transparent.
	if readFloat(data, 0) != -1 || readFloat(data, 2) != -1 {
		t.Errorf("vertex 0 position = (%v, %v, %v)", readFloat(data, 0), readFloat(data, 1), readFloat(data, 2))
	}
	if a := readFloat(data, 6); a != 0 {
		t.Errorf("outer alpha = %v, want 0", a)
	}
	// Vertex 4: inner ring, opaque.
	base := 4 * planeVertexStride / 4
	if a := readFloat(data, base+6); a != 1 {
		t.Errorf("inner alpha = %v, want 1", a)
	}
}

func TestBuildPlaneVerticesFanIsOpaqueWhite(t *testing.T) {
	m := arplane.FanTriangulate(testBoundary(), arplane.Vec3{})
	data := BuildPlaneVertices(m)
	if got, want := len(data), 5*planeVertexStride; got != want {
		t.Fatalf("len = %d, want %d", got, want)
	}
	for v := range 5 {
		base := v * planeVertexStride / 4
		for c := 3; c < 7; c++ {
			if got := readFloat(data, base+c); got != 1 {
				t.Errorf("vertex %d color[%d] = %v, want 1", v, c-3, got)
			}
		}
	}
}

func TestBuildPlaneVerticesEmpty(t *testing.T) {
	if data := BuildPlaneVertices(&arplane.Mesh{}); data != nil {
		t.Errorf("expected nil for empty mesh, got %d bytes", len(data))
	}
}

func TestBuildPlaneVerticesReuse(t *testing.T) {
	m := arplane.Triangulate(testBoundary(), arplane.Vec3{})
	staging := make([]byte, 0, 4096)
	staging, data := buildPlaneVerticesReuse(m, staging)
	if cap(staging) != 4096 {
		t.Error("staging buffer reallocated despite enough capacity")
	}
	if &data[0] != &staging[0] {
		t.Error("data does not alias staging")
	}
}

func TestBuildPlaneIndices(t *testing.T) {
	m := arplane.Triangulate(testBoundary(), arplane.Vec3{})
	data := BuildPlaneIndices(m)
	if len(data) != 4*len(m.Indices) {
		t.Fatalf("len = %d, want %d", len(data), 4*len(m.Indices))
	}
	for i, want := range m.Indices {
		if got := binary.LittleEndian.Uint32(data[i*4:]); got != want {
			t.Errorf("index %d = %d, want %d", i, got, want)
		}
	}
}

func TestMakePlaneUniform(t *testing.T) {
	mat := plane.Material{
		GridColor:   arplane.RGB(0.5, 0.25, 1),
		UVRotation:  180,
		PlaneNormal: arplane.V3(0, 0, 1),
	}
	buf := makePlaneUniform(nil, arplane.Mat4Ident, mat)
	if len(buf) != planeUniformSize {
		t.Fatalf("len = %d, want %d", len(buf), planeUniformSize)
	}
	for i := range 16 {
		if got := readFloat(buf, i); got != arplane.Mat4Ident[i] {
			t.Errorf("view_proj[%d] = %v", i, got)
		}
	}
	if readFloat(buf, 16) != 0.5 || readFloat(buf, 17) != 0.25 || readFloat(buf, 19) != 1 {
		t.Error("grid color not packed")
	}
	if readFloat(buf, 22) != 1 {
		t.Errorf("normal.z = %v, want 1", readFloat(buf, 22))
	}
	if got := readFloat(buf, 23); math.Abs(float64(got)-math.Pi) > 1e-6 {
		t.Errorf("rotation = %v, want pi", got)
	}
}

func TestMakePlaneUniformZeroNormal(t *testing.T) {
	buf := makePlaneUniform(nil, arplane.Mat4Ident, plane.Material{})
	if readFloat(buf, 21) != 1 {
		t.Errorf("zero normal not replaced by up: y = %v", readFloat(buf, 21))
	}
}

func TestBufferCapacity(t *testing.T) {
	tests := []struct{ n, want uint64 }{
		{0, 256}, {1, 256}, {256, 256}, {257, 512}, {1000, 1024}, {4096, 4096},
	}
	for _, tt := range tests {
		if got := bufferCapacity(tt.n); got != tt.want {
			t.Errorf("bufferCapacity(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
