//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/arplane"
	"github.com/gogpu/arplane/plane"
)

func drawCommand(m *arplane.Mesh, changed bool) plane.RenderCommand {
	return plane.RenderCommand{
		Action:      plane.ActionDraw,
		Visible:     true,
		MeshChanged: changed,
		Mesh:        m,
		Material:    plane.Material{GridColor: arplane.White, PlaneNormal: arplane.Up},
	}
}

func TestPlaneRendererNew(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	pr := NewPlaneRenderer(device, queue, gputypes.TextureFormatUndefined)
	defer pr.Destroy()

	if pr.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format = %v, want BGRA8Unorm default", pr.Format())
	}
	if pr.pipeline != nil {
		t.Error("pipeline created eagerly")
	}
	if pr.Len() != 0 {
		t.Errorf("Len = %d", pr.Len())
	}
}

func TestPlaneRendererEnsurePipeline(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	pr := NewPlaneRenderer(device, queue, gputypes.TextureFormatRGBA8Unorm)
	defer pr.Destroy()

	if err := pr.ensurePipeline(); err != nil {
		t.Fatalf("ensurePipeline failed: %v", err)
	}
	if pr.shader == nil || pr.uniformLayout == nil || pr.pipeLayout == nil || pr.pipeline == nil {
		t.Fatal("pipeline objects missing after ensurePipeline")
	}

	pipeline := pr.pipeline
	if err := pr.ensurePipeline(); err != nil {
		t.Fatalf("second ensurePipeline failed: %v", err)
	}
	if pr.pipeline != pipeline {
		t.Error("pipeline recreated")
	}
}

func TestPlaneRendererNilDevice(t *testing.T) {
	pr := NewPlaneRenderer(nil, nil, gputypes.TextureFormatBGRA8Unorm)
	m := arplane.Triangulate(testBoundary(), arplane.Vec3{})
	if err := pr.Upload(1, drawCommand(m, true)); !errors.Is(err, ErrNilDevice) {
		t.Errorf("Upload err = %v, want ErrNilDevice", err)
	}
	pr.Destroy()
}

func TestPlaneRendererUploadLifecycle(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	pr := NewPlaneRenderer(device, queue, gputypes.TextureFormatBGRA8Unorm)
	defer pr.Destroy()

	m := arplane.Triangulate(testBoundary(), arplane.Vec3{})
	if err := pr.Upload(7, drawCommand(m, true)); err != nil {
		t.Fatalf("Upload draw: %v", err)
	}
	res := pr.planes[7]
	if res == nil || res.vertBuf == nil || res.idxBuf == nil || res.bindGroup == nil {
		t.Fatal("resources not created")
	}
	if res.indexCount != uint32(len(m.Indices)) {
		t.Errorf("indexCount = %d, want %d", res.indexCount, len(m.Indices))
	}
	if !pr.Visible(7) {
		t.Error("plane not visible after draw")
	}

	vertBuf := res.vertBuf
	if err := pr.Upload(7, drawCommand(m, false)); err != nil {
		t.Fatalf("Upload unchanged: %v", err)
	}
	if pr.planes[7].vertBuf != vertBuf {
		t.Error("vertex buffer replaced for unchanged mesh")
	}

	if err := pr.Upload(7, plane.RenderCommand{Action: plane.ActionHide, Mesh: m}); err != nil {
		t.Fatalf("Upload hide: %v", err)
	}
	if pr.Visible(7) {
		t.Error("plane visible after hide")
	}
	if pr.planes[7].vertBuf != vertBuf {
		t.Error("hide dropped buffers")
	}

	if err := pr.Upload(7, plane.RenderCommand{Action: plane.ActionDestroy}); err != nil {
		t.Fatalf("Upload destroy: %v", err)
	}
	if pr.Len() != 0 || pr.planes[7] != nil {
		t.Error("plane still held after destroy")
	}
	if err := pr.Upload(7, plane.RenderCommand{Action: plane.ActionNone}); err != nil {
		t.Errorf("Upload none: %v", err)
	}
}

func TestPlaneRendererGrowsBuffers(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	pr := NewPlaneRenderer(device, queue, gputypes.TextureFormatBGRA8Unorm)
	defer pr.Destroy()

	small := arplane.Triangulate(testBoundary(), arplane.Vec3{})
	if err := pr.Upload(1, drawCommand(small, true)); err != nil {
		t.Fatal(err)
	}
	firstCap := pr.planes[1].vertCap

	big := make([]arplane.Vec3, 64)
	for i := range big {
		big[i] = arplane.V3(float32(i), 0, float32(i%2))
	}
	if err := pr.Upload(1, drawCommand(arplane.Triangulate(big, arplane.Vec3{}), true)); err != nil {
		t.Fatal(err)
	}
	if pr.planes[1].vertCap <= firstCap {
		t.Errorf("vertCap = %d, want > %d", pr.planes[1].vertCap, firstCap)
	}
	if pr.planes[1].vertCap < uint64(2*64*planeVertexStride) {
		t.Errorf("vertCap = %d too small", pr.planes[1].vertCap)
	}

	// Shrinking keeps the allocation.
	grown := pr.planes[1].vertBuf
	if err := pr.Upload(1, drawCommand(small, true)); err != nil {
		t.Fatal(err)
	}
	if pr.planes[1].vertBuf != grown {
		t.Error("buffer reallocated for a smaller mesh")
	}
}

func TestPlaneRendererDrawWithoutMesh(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	pr := NewPlaneRenderer(device, queue, gputypes.TextureFormatBGRA8Unorm)
	defer pr.Destroy()

	if err := pr.Upload(1, plane.RenderCommand{Action: plane.ActionDraw, Visible: true}); err == nil {
		t.Error("expected error for draw without mesh")
	}
}

func TestPlaneRendererRelease(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	pr := NewPlaneRenderer(device, queue, gputypes.TextureFormatBGRA8Unorm)
	defer pr.Destroy()

	m := arplane.FanTriangulate(testBoundary(), arplane.Vec3{})
	for id := plane.ID(1); id <= 3; id++ {
		if err := pr.Upload(id, drawCommand(m, true)); err != nil {
			t.Fatal(err)
		}
	}
	pr.Release(2)
	pr.Release(99)
	if pr.Len() != 2 {
		t.Fatalf("Len = %d, want 2", pr.Len())
	}
	if pr.order[0] != 1 || pr.order[1] != 3 {
		t.Errorf("order = %v, want [1 3]", pr.order)
	}
}

func TestPlaneRendererRecordDrawsBeforePipeline(t *testing.T) {
	pr := NewPlaneRenderer(nil, nil, gputypes.TextureFormatBGRA8Unorm)
	if n := pr.RecordDraws(nil, arplane.Mat4Ident); n != 0 {
		t.Errorf("RecordDraws = %d, want 0", n)
	}
}

func TestPlaneRendererRenderOffscreen(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	pr := NewPlaneRenderer(device, queue, gputypes.TextureFormatBGRA8Unorm)
	defer pr.Destroy()

	gen := plane.NewGenerator()
	p := &staticPlane{id: 1, boundary: testBoundary()}
	for _, f := range gen.Update(plane.SessionTracking, []plane.Plane{p}) {
		if err := pr.Upload(f.ID, f.Command); err != nil {
			t.Fatal(err)
		}
	}

	viewProj := arplane.Perspective(1, 1, 0.1, 10).Mul(
		arplane.LookAt(arplane.V3(0, 3, 0.01), arplane.Vec3{}, arplane.Up))
	img, err := pr.RenderOffscreen(64, 48, viewProj)
	if err != nil {
		t.Fatalf("RenderOffscreen: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("bounds = %v", b)
	}
	if pr.textures.width != 64 || pr.textures.height != 48 {
		t.Errorf("texture size = %dx%d", pr.textures.width, pr.textures.height)
	}

	if _, err := pr.RenderOffscreen(0, 10, viewProj); err == nil {
		t.Error("expected error for empty size")
	}
}

func TestPlaneRendererDestroy(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	pr := NewPlaneRenderer(device, queue, gputypes.TextureFormatBGRA8Unorm)
	m := arplane.Triangulate(testBoundary(), arplane.Vec3{})
	if err := pr.Upload(1, drawCommand(m, true)); err != nil {
		t.Fatal(err)
	}

	pr.Destroy()
	pr.Destroy()

	if pr.pipeline != nil || pr.shader != nil || pr.Len() != 0 {
		t.Error("resources left after Destroy")
	}
	if err := pr.Upload(1, drawCommand(m, true)); !errors.Is(err, ErrRendererDestroyed) {
		t.Errorf("Upload after Destroy err = %v", err)
	}
	if _, err := pr.RenderOffscreen(8, 8, arplane.Mat4Ident); !errors.Is(err, ErrRendererDestroyed) {
		t.Errorf("RenderOffscreen after Destroy err = %v", err)
	}
}

func TestCopyPixels(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]byte, 8)
	copyPixels(dst, src, true)
	want := []byte{3, 2, 1, 4, 7, 6, 5, 8}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("swapped = %v, want %v", dst, want)
		}
	}
	copyPixels(dst, src, false)
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("copied = %v, want %v", dst, src)
		}
	}
}

// staticPlane is a plane that is always tracking with a fixed boundary.
type staticPlane struct {
	id       plane.ID
	boundary []arplane.Vec3
}

func (p *staticPlane) ID() plane.ID               { return p.id }
func (p *staticPlane) State() plane.TrackingState { return plane.Tracking }
func (p *staticPlane) CenterPose() arplane.Pose   { return arplane.Pose{} }
func (p *staticPlane) Boundary(dst []arplane.Vec3) []arplane.Vec3 {
	return append(dst[:0], p.boundary...)
}

func TestPlaneRendererSRGBTarget(t *testing.T) {
	tests := []struct {
		format gputypes.TextureFormat
		srgb   bool
		bgra   bool
	}{
		{gputypes.TextureFormatBGRA8Unorm, false, true},
		{gputypes.TextureFormatRGBA8Unorm, false, false},
		{gputypes.TextureFormatBGRA8UnormSrgb, true, true},
		{gputypes.TextureFormatRGBA8UnormSrgb, true, false},
	}
	for _, tt := range tests {
		pr := NewPlaneRenderer(nil, nil, tt.format)
		if pr.srgb != tt.srgb {
			t.Errorf("format %v: srgb = %v, want %v", tt.format, pr.srgb, tt.srgb)
		}
		if got := isBGRA(tt.format); got != tt.bgra {
			t.Errorf("format %v: isBGRA = %v, want %v", tt.format, got, tt.bgra)
		}

		src := []byte{10, 20, 30, 255}
		dst := make([]byte, 4)
		copyPixels(dst, src, isBGRA(tt.format))
		want := []byte{10, 20, 30, 255}
		if tt.bgra {
			want = []byte{30, 20, 10, 255}
		}
		for i := range want {
			if dst[i] != want[i] {
				t.Errorf("format %v: pixel = %v, want %v", tt.format, dst, want)
				break
			}
		}
	}
}
