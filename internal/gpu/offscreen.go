//go:build !nogpu

package gpu

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/arplane"
)

// copyPitchAlignment is the BytesPerRow alignment required for texture to
// buffer copies.
const copyPitchAlignment = 256

// RenderOffscreen draws all visible planes into a w x h offscreen target
// cleared to transparent, waits for the GPU and returns the pixels. Only
// 4-byte BGRA and RGBA formats can be read back.
func (pr *PlaneRenderer) RenderOffscreen(w, h uint32, viewProj arplane.Mat4) (*image.RGBA, error) {
	if pr.destroyed {
		return nil, ErrRendererDestroyed
	}
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("gpu: offscreen size %dx%d", w, h)
	}
	if err := pr.ensurePipeline(); err != nil {
		return nil, err
	}
	if err := pr.textures.ensureTextures(pr.device, w, h, pr.format); err != nil {
		return nil, fmt.Errorf("gpu: %w", err)
	}

	encoder, err := pr.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "plane_offscreen_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("plane_offscreen_frame"); err != nil {
		return nil, fmt.Errorf("gpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "plane_offscreen_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:          pr.textures.msaaView,
			ResolveTarget: pr.textures.resolveView,
			LoadOp:        gputypes.LoadOpClear,
			StoreOp:       gputypes.StoreOpStore,
			ClearValue:    gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})
	draws := pr.RecordDraws(rp, viewProj)
	rp.End()

	// After the MSAA resolve the texture is a color attachment; the copy
	// needs it as a transfer source.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: pr.textures.resolveTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingBufSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := pr.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "plane_offscreen_staging",
		Size:  stagingBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("gpu: create staging buffer: %w", err)
	}
	defer pr.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(pr.textures.resolveTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: pr.textures.resolveTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: pr.textures.resolveTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer pr.device.FreeCommandBuffer(cmdBuf)

	fence, err := pr.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("gpu: create fence: %w", err)
	}
	defer pr.device.DestroyFence(fence)

	if err := pr.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("gpu: submit: %w", err)
	}
	fenceOK, err := pr.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("gpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingBufSize)
	if err := pr.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("gpu: readback: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	swap := isBGRA(pr.format)
	for row := range int(h) {
		src := readback[row*int(alignedBytesPerRow) : row*int(alignedBytesPerRow)+int(bytesPerRow)]
		dst := img.Pix[row*img.Stride : row*img.Stride+int(bytesPerRow)]
		copyPixels(dst, src, swap)
	}

	slogger().Debug("gpu: offscreen frame", "width", w, "height", h, "draws", draws)
	return img, nil
}

// copyPixels copies 4-byte pixels from src to dst, swapping red and blue
// when swap is set.
func copyPixels(dst, src []byte, swap bool) {
	if !swap {
		copy(dst, src)
		return
	}
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}
