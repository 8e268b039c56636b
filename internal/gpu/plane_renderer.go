//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/arplane"
	"github.com/gogpu/arplane/plane"
)

// sampleCount is the MSAA sample count of the plane pipeline.
const sampleCount = 4

var (
	// ErrNilDevice is returned when a renderer is used without a device.
	ErrNilDevice = errors.New("gpu: nil device")

	// ErrRendererDestroyed is returned when a destroyed renderer is used.
	ErrRendererDestroyed = errors.New("gpu: renderer destroyed")
)

// planeResources holds the GPU buffers of one plane. They live until the
// plane is released.
type planeResources struct {
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	vertCap    uint64 // vertBuf size in bytes
	idxCap     uint64 // idxBuf size in bytes
	indexCount uint32

	visible  bool
	material plane.Material
}

func (r *planeResources) destroy(device hal.Device) {
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
	}
	if r.idxBuf != nil {
		device.DestroyBuffer(r.idxBuf)
	}
	if r.vertBuf != nil {
		device.DestroyBuffer(r.vertBuf)
	}
}

// PlaneRenderer draws plane meshes with a grid shader, one indexed draw per
// visible plane. It consumes the render commands produced by the plane
// package: meshes are re-uploaded only when they changed, hidden planes keep
// their buffers and destroyed planes free them.
//
// PlaneRenderer is not safe for concurrent use.
type PlaneRenderer struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	srgb   bool // target encodes sRGB, grid colors are uploaded linear

	// GPU objects for the render pipeline.
	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	planes map[plane.ID]*planeResources
	order  []plane.ID

	// Staging buffers reused across uploads.
	vertStaging    []byte
	idxStaging     []byte
	uniformStaging []byte

	// Offscreen targets, created on first RenderOffscreen.
	textures textureSet

	reallocations uint64

	destroyed bool
}

// NewPlaneRenderer creates a renderer drawing into targets of the given
// format. TextureFormatUndefined selects BGRA8Unorm. The pipeline is created
// on first use.
func NewPlaneRenderer(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) *PlaneRenderer {
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return &PlaneRenderer{
		device: device,
		queue:  queue,
		format: format,
		srgb:   isSRGB(format),
		planes: make(map[plane.ID]*planeResources),
	}
}

func isSRGB(format gputypes.TextureFormat) bool {
	return format == gputypes.TextureFormatBGRA8UnormSrgb || format == gputypes.TextureFormatRGBA8UnormSrgb
}

func isBGRA(format gputypes.TextureFormat) bool {
	return format == gputypes.TextureFormatBGRA8Unorm || format == gputypes.TextureFormatBGRA8UnormSrgb
}

// Format returns the color target format.
func (pr *PlaneRenderer) Format() gputypes.TextureFormat { return pr.format }

// Len returns the number of planes holding GPU buffers.
func (pr *PlaneRenderer) Len() int { return len(pr.order) }

// Visible reports whether plane id is currently drawn.
func (pr *PlaneRenderer) Visible(id plane.ID) bool {
	res, ok := pr.planes[id]
	return ok && res.visible && res.indexCount > 0
}

// Upload applies one render command to plane id.
func (pr *PlaneRenderer) Upload(id plane.ID, cmd plane.RenderCommand) error {
	if pr.destroyed {
		return ErrRendererDestroyed
	}
	switch cmd.Action {
	case plane.ActionNone:
		return nil
	case plane.ActionDestroy:
		pr.Release(id)
		return nil
	case plane.ActionHide:
		if res, ok := pr.planes[id]; ok {
			res.visible = false
			res.material = cmd.Material
		}
		return nil
	}

	if err := pr.ensurePipeline(); err != nil {
		return err
	}
	res, ok := pr.planes[id]
	if !ok {
		var err error
		if res, err = pr.createResources(id); err != nil {
			return err
		}
	}
	if cmd.MeshChanged || res.vertBuf == nil {
		if cmd.Mesh == nil {
			return fmt.Errorf("gpu: plane %d: draw command without mesh", id)
		}
		if err := pr.uploadMesh(id, res, cmd.Mesh); err != nil {
			return err
		}
	}
	res.visible = cmd.Visible
	res.material = cmd.Material
	return nil
}

// createResources allocates the uniform buffer and bind group of a new plane.
func (pr *PlaneRenderer) createResources(id plane.ID) (*planeResources, error) {
	uniformBuf, err := pr.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("plane_%d_uniform", id),
		Size:  planeUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create plane uniform buffer: %w", err)
	}

	bindGroup, err := pr.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  fmt.Sprintf("plane_%d_bind", id),
		Layout: pr.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: planeUniformSize,
			}},
		},
	})
	if err != nil {
		pr.device.DestroyBuffer(uniformBuf)
		return nil, fmt.Errorf("gpu: create plane bind group: %w", err)
	}

	res := &planeResources{uniformBuf: uniformBuf, bindGroup: bindGroup}
	pr.planes[id] = res
	pr.order = append(pr.order, id)
	return res, nil
}

// uploadMesh writes the mesh into the plane's vertex and index buffers,
// replacing a buffer only when it is too small.
func (pr *PlaneRenderer) uploadMesh(id plane.ID, res *planeResources, m *arplane.Mesh) error {
	var verts, indices []byte
	pr.vertStaging, verts = buildPlaneVerticesReuse(m, pr.vertStaging)
	pr.idxStaging, indices = buildPlaneIndicesReuse(m, pr.idxStaging)
	if len(verts) == 0 || len(indices) == 0 {
		res.indexCount = 0
		return nil
	}

	var err error
	res.vertBuf, res.vertCap, err = pr.writeBuffer(res.vertBuf, res.vertCap, verts,
		fmt.Sprintf("plane_%d_verts", id), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	res.idxBuf, res.idxCap, err = pr.writeBuffer(res.idxBuf, res.idxCap, indices,
		fmt.Sprintf("plane_%d_indices", id), gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	res.indexCount = uint32(len(m.Indices)) //nolint:gosec // index count fits uint32

	slogger().Debug("gpu: plane mesh uploaded",
		slog.Uint64("id", uint64(id)),
		slog.Int("vertices", len(m.Vertices)),
		slog.Int("indices", len(m.Indices)))
	return nil
}

// writeBuffer uploads data into buf, recreating it with power-of-two
// capacity if it is missing or too small.
func (pr *PlaneRenderer) writeBuffer(buf hal.Buffer, capacity uint64, data []byte, label string, usage gputypes.BufferUsage) (hal.Buffer, uint64, error) {
	need := uint64(len(data))
	if buf == nil || capacity < need {
		if buf != nil {
			pr.device.DestroyBuffer(buf)
			pr.reallocations++
		}
		capacity = bufferCapacity(need)
		var err error
		buf, err = pr.device.CreateBuffer(&hal.BufferDescriptor{
			Label: label,
			Size:  capacity,
			Usage: usage,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("gpu: create %s: %w", label, err)
		}
	}
	pr.queue.WriteBuffer(buf, 0, data)
	return buf, capacity, nil
}

// bufferCapacity rounds n up to a power of two, minimum 256 bytes.
func bufferCapacity(n uint64) uint64 {
	c := uint64(256)
	for c < n {
		c <<= 1
	}
	return c
}

// Release frees the buffers of plane id. Unknown ids are ignored.
func (pr *PlaneRenderer) Release(id plane.ID) {
	res, ok := pr.planes[id]
	if !ok {
		return
	}
	res.destroy(pr.device)
	delete(pr.planes, id)
	pr.order = slices.DeleteFunc(pr.order, func(x plane.ID) bool { return x == id })
}

// RecordDraws records one indexed draw per visible plane into rp, in the
// order planes were first uploaded, and returns the number of draws. The
// per-plane uniforms are written with viewProj before recording.
func (pr *PlaneRenderer) RecordDraws(rp hal.RenderPassEncoder, viewProj arplane.Mat4) int {
	if pr.destroyed || pr.pipeline == nil {
		return 0
	}
	draws := 0
	for _, id := range pr.order {
		res := pr.planes[id]
		if !res.visible || res.indexCount == 0 {
			continue
		}
		mat := res.material
		if pr.srgb {
			mat.GridColor = mat.GridColor.Linear()
		}
		pr.uniformStaging = makePlaneUniform(pr.uniformStaging, viewProj, mat)
		pr.queue.WriteBuffer(res.uniformBuf, 0, pr.uniformStaging)

		rp.SetPipeline(pr.pipeline)
		rp.SetBindGroup(0, res.bindGroup, nil)
		rp.SetVertexBuffer(0, res.vertBuf, 0)
		rp.SetIndexBuffer(res.idxBuf, gputypes.IndexFormatUint32, 0)
		rp.DrawIndexed(res.indexCount, 1, 0, 0, 0)
		draws++
	}
	return draws
}

// ensurePipeline creates the shader, layouts, and render pipeline if they
// don't already exist.
func (pr *PlaneRenderer) ensurePipeline() error {
	if pr.pipeline != nil {
		return nil
	}
	if pr.device == nil {
		return ErrNilDevice
	}
	return pr.createPipeline()
}

// createPipeline compiles the plane shader and creates the render pipeline
// with premultiplied alpha blending and MSAA.
func (pr *PlaneRenderer) createPipeline() error {
	if planeShaderSource == "" {
		return fmt.Errorf("gpu: plane shader source is empty")
	}

	shader, err := pr.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "plane_shader",
		Source: hal.ShaderSource{WGSL: planeShaderSource},
	})
	if err != nil {
		return fmt.Errorf("gpu: compile plane shader: %w", err)
	}
	pr.shader = shader

	uniformLayout, err := pr.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "plane_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		pr.destroyPipeline()
		return fmt.Errorf("gpu: create plane uniform layout: %w", err)
	}
	pr.uniformLayout = uniformLayout

	pipeLayout, err := pr.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "plane_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{pr.uniformLayout},
	})
	if err != nil {
		pr.destroyPipeline()
		return fmt.Errorf("gpu: create plane pipeline layout: %w", err)
	}
	pr.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := pr.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "plane_pipeline",
		Layout: pr.pipeLayout,
		Vertex: hal.VertexState{
			Module:     pr.shader,
			EntryPoint: "vs_main",
			Buffers:    planeVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     pr.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    pr.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		// Boundaries arrive in either winding.
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		pr.destroyPipeline()
		return fmt.Errorf("gpu: create plane pipeline: %w", err)
	}
	pr.pipeline = pipeline

	slogger().Debug("gpu: plane pipeline created", slog.String("format", fmt.Sprint(pr.format)))
	return nil
}

// destroyPipeline releases all pipeline resources in reverse creation order.
func (pr *PlaneRenderer) destroyPipeline() {
	if pr.device == nil {
		return
	}
	if pr.pipeline != nil {
		pr.device.DestroyRenderPipeline(pr.pipeline)
		pr.pipeline = nil
	}
	if pr.pipeLayout != nil {
		pr.device.DestroyPipelineLayout(pr.pipeLayout)
		pr.pipeLayout = nil
	}
	if pr.uniformLayout != nil {
		pr.device.DestroyBindGroupLayout(pr.uniformLayout)
		pr.uniformLayout = nil
	}
	if pr.shader != nil {
		pr.device.DestroyShaderModule(pr.shader)
		pr.shader = nil
	}
}

// Destroy releases all GPU resources held by the renderer. Safe to call
// multiple times.
func (pr *PlaneRenderer) Destroy() {
	if pr.destroyed {
		return
	}
	for _, id := range slices.Clone(pr.order) {
		pr.Release(id)
	}
	if pr.device != nil {
		pr.textures.destroyTextures(pr.device)
	}
	pr.destroyPipeline()
	pr.destroyed = true
}
