package arplane

import (
	"errors"
	"testing"
)

func TestMeshBounds(t *testing.T) {
	m := Triangulate(makeSquare(2), V3(0, 1, 0))
	lo, hi := m.Bounds()
	if lo.X != -2 || lo.Z != -2 || hi.X != 2 || hi.Z != 2 {
		t.Errorf("Bounds() = %v, %v, want x/z in [-2, 2]", lo, hi)
	}

	var empty Mesh
	lo, hi = empty.Bounds()
	if lo != (Vec3{}) || hi != (Vec3{}) {
		t.Errorf("empty Bounds() = %v, %v, want zeros", lo, hi)
	}
}

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       Mesh
		wantErr bool
	}{
		{"empty", Mesh{}, false},
		{"one triangle", Mesh{Vertices: make([]Vec3, 3), Indices: []uint32{0, 1, 2}}, false},
		{"partial triangle", Mesh{Vertices: make([]Vec3, 3), Indices: []uint32{0, 1}}, true},
		{"index out of range", Mesh{Vertices: make([]Vec3, 3), Indices: []uint32{0, 1, 3}}, true},
		{"color count", Mesh{Vertices: make([]Vec3, 3), Colors: make([]RGBA, 2)}, true},
		{"normal count", Mesh{Vertices: make([]Vec3, 3), Normals: make([]Vec3, 4)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("Validate() = %v, want ErrInvalidMesh", err)
			}
		})
	}
}

func TestMeshResetAndRelease(t *testing.T) {
	m := Triangulate(makeSquare(1), Vec3{})
	m.Reset()
	if m.VertexCount() != 0 || m.TriangleCount() != 0 || m.HasColor() {
		t.Errorf("Reset() left data: %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	}
	if cap(m.Vertices) == 0 {
		t.Error("Reset() released vertex memory")
	}

	m.Release()
	if m.Vertices != nil || m.Indices != nil {
		t.Error("Release() kept buffers")
	}
}

func TestMeshClone(t *testing.T) {
	m := Triangulate(makeSquare(1), Vec3{})
	c := m.Clone()
	c.Vertices[0] = V3(9, 9, 9)
	c.Indices[0] = 7
	if m.Vertices[0] == c.Vertices[0] || m.Indices[0] == 7 {
		t.Error("Clone() shares memory with the original")
	}
}
