package arplane

import (
	"slices"
	"testing"
)

func TestFanTriangulateCounts(t *testing.T) {
	for _, n := range []int{3, 4, 6, 25} {
		boundary := makeRegularPolygon(n, 1, Vec3{})
		m := FanTriangulate(boundary, Vec3{})

		if got := m.TriangleCount(); got != n {
			t.Errorf("n=%d: TriangleCount() = %d, want %d", n, got, n)
		}
		if got := m.VertexCount(); got != n+1 {
			t.Errorf("n=%d: VertexCount() = %d, want %d", n, got, n+1)
		}
		if m.HasColor() {
			t.Errorf("n=%d: fan mesh should not carry colors", n)
		}
		if err := m.Validate(); err != nil {
			t.Errorf("n=%d: Validate() = %v", n, err)
		}
	}
}

func TestFanTriangulateOrder(t *testing.T) {
	boundary := makeSquare(1)
	center := V3(0, 0.5, 0)
	m := FanTriangulate(boundary, center)

	if got := m.Vertices[4]; got != center {
		t.Errorf("apex vertex = %v, want center %v", got, center)
	}
	if !slices.Equal(m.Vertices[:4], boundary) {
		t.Errorf("boundary vertices = %v, want %v", m.Vertices[:4], boundary)
	}

	if got := m.Triangle(0); got != [3]uint32{4, 0, 1} {
		t.Errorf("first triangle = %v, want [4 0 1]", got)
	}
	if got := m.Triangle(3); got != [3]uint32{4, 3, 0} {
		t.Errorf("last triangle = %v, want [4 3 0] (wraps to boundary[0])", got)
	}
}

func TestFanTriangulateNormals(t *testing.T) {
	m := FanTriangulate(makeSquare(1), Vec3{})
	if len(m.Normals) != m.VertexCount() {
		t.Fatalf("len(Normals) = %d, want %d", len(m.Normals), m.VertexCount())
	}
	for i, n := range m.Normals {
		if !n.Approx(V3(0, -1, 0), 1e-6) && !n.Approx(V3(0, 1, 0), 1e-6) {
			t.Errorf("Normals[%d] = %v, want a vertical unit vector", i, n)
		}
	}
}

func TestFanTriangulateIntoClearsColors(t *testing.T) {
	m := Triangulate(makeSquare(1), Vec3{})
	FanTriangulateInto(m, makeSquare(1), Vec3{})
	if m.HasColor() {
		t.Error("FanTriangulateInto left feather colors behind")
	}
	if got := m.TriangleCount(); got != 4 {
		t.Errorf("TriangleCount() = %d, want 4", got)
	}
}

func TestFanTriangulatePanicsOnDegenerateBoundary(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FanTriangulate with 2 points did not panic")
		}
	}()
	FanTriangulate([]Vec3{V3(0, 0, 0), V3(1, 0, 0)}, Vec3{})
}
