// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/arplane"
	"github.com/gogpu/arplane/internal/gpu"
	"github.com/gogpu/arplane/plane"
)

// PlaneRenderer draws the planes managed by a plane.Generator.
//
// Submit feeds it the frames of one generator tick; Record draws every
// visible plane into a render pass owned by the host.
type PlaneRenderer struct {
	handle DeviceHandle
	gpu    *gpu.PlaneRenderer
}

// NewPlaneRenderer creates a renderer on the host's device. The color target
// format is the handle's surface format.
func NewPlaneRenderer(handle DeviceHandle) (*PlaneRenderer, error) {
	if handle == nil {
		return nil, errors.New("render: nil device handle")
	}
	device, queue, err := halDevice(handle)
	if err != nil {
		return nil, err
	}
	return &PlaneRenderer{
		handle: handle,
		gpu:    gpu.NewPlaneRenderer(device, queue, handle.SurfaceFormat()),
	}, nil
}

// Submit applies the render commands of one generator tick. Every frame is
// applied; the errors of failed ones are joined.
func (r *PlaneRenderer) Submit(frames []plane.Frame) error {
	var errs []error
	for _, f := range frames {
		if err := r.gpu.Upload(f.ID, f.Command); err != nil {
			errs = append(errs, fmt.Errorf("render: plane %d: %w", f.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Record draws all visible planes into rp and returns the number of draws.
func (r *PlaneRenderer) Record(rp hal.RenderPassEncoder, viewProj arplane.Mat4) int {
	return r.gpu.RecordDraws(rp, viewProj)
}

// Snapshot renders all visible planes offscreen and reads the result back.
func (r *PlaneRenderer) Snapshot(width, height uint32, viewProj arplane.Mat4) (*image.RGBA, error) {
	img, err := r.gpu.RenderOffscreen(width, height, viewProj)
	if err != nil {
		return nil, fmt.Errorf("render: snapshot: %w", err)
	}
	return img, nil
}

// Visible reports whether plane id is currently drawn.
func (r *PlaneRenderer) Visible(id plane.ID) bool { return r.gpu.Visible(id) }

// Len returns the number of planes holding GPU buffers.
func (r *PlaneRenderer) Len() int { return r.gpu.Len() }

// BufferBytes returns the size of the GPU buffers held for planes.
func (r *PlaneRenderer) BufferBytes() uint64 { return r.gpu.MemoryStats().UsedBytes }

// Close releases all GPU resources. The device itself belongs to the host
// and is left alone.
func (r *PlaneRenderer) Close() {
	r.gpu.Destroy()
}

// SetLogger sets the logger for GPU rendering. Passing nil disables logging.
func SetLogger(l *slog.Logger) {
	gpu.SetLogger(l)
}
