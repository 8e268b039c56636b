// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package plane

import (
	"log/slog"

	"github.com/gogpu/arplane"
)

// Visualizer turns the per-frame tracking data of one plane into render
// commands.
//
// The mesh is rebuilt only when the boundary differs from the one last
// triangulated; otherwise the previous buffers are reported unchanged so the
// renderer can skip the upload. Mesh buffers are reused across rebuilds.
//
// Visualizer is not safe for concurrent use.
type Visualizer struct {
	mode      Mode
	material  Material
	mesh      arplane.Mesh
	previous  []arplane.Vec3 // boundary the mesh was built from
	visible   bool
	destroyed bool
	rebuilds  int
}

// NewVisualizer creates a visualizer whose grid color is the next color of
// palette. A nil palette gives a white grid.
func NewVisualizer(palette *Palette, opts ...Option) *Visualizer {
	o := applyOptions(opts)
	color := arplane.White
	if palette != nil {
		color = palette.Next()
	}
	return &Visualizer{
		mode: o.mode,
		material: Material{
			GridColor:  color,
			UVRotation: o.uvRotation(),
		},
	}
}

// Update advances the visualizer by one frame.
func (v *Visualizer) Update(in Input) RenderCommand {
	if v.destroyed {
		return RenderCommand{Action: ActionNone}
	}

	switch in.State {
	case Subsumed:
		v.Destroy()
		return RenderCommand{Action: ActionDestroy}
	case Tracking:
	default:
		return v.hide()
	}

	if len(in.Boundary) < arplane.MinBoundaryPoints {
		arplane.Logger().Warn("plane: boundary too short, hiding",
			slog.Int("points", len(in.Boundary)))
		return v.hide()
	}

	changed := v.rebuildIfChanged(in.Boundary, in.Center)
	v.visible = true
	return RenderCommand{
		Action:      ActionDraw,
		Visible:     true,
		MeshChanged: changed,
		Mesh:        &v.mesh,
		Material:    v.material,
	}
}

func (v *Visualizer) hide() RenderCommand {
	v.visible = false
	return RenderCommand{
		Action:   ActionHide,
		Mesh:     &v.mesh,
		Material: v.material,
	}
}

// rebuildIfChanged retriangulates the mesh when boundary differs from the
// previous one and reports whether it did.
func (v *Visualizer) rebuildIfChanged(boundary []arplane.Vec3, center arplane.Pose) bool {
	if !arplane.BoundaryChanged(v.previous, boundary) {
		return false
	}
	v.previous = append(v.previous[:0], boundary...)
	v.material.PlaneNormal = center.Up()

	switch v.mode {
	case ModeFan:
		arplane.FanTriangulateInto(&v.mesh, boundary, center.Position)
	default:
		arplane.TriangulateInto(&v.mesh, boundary, center.Position)
	}
	v.rebuilds++

	arplane.Logger().Debug("plane: mesh rebuilt",
		slog.String("mode", v.mode.String()),
		slog.Int("points", len(boundary)),
		slog.Int("triangles", v.mesh.TriangleCount()))
	return true
}

// Destroy releases the mesh buffers. Further updates return ActionNone.
func (v *Visualizer) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	v.visible = false
	v.mesh.Release()
	v.previous = nil
}

// Destroyed reports whether the visualizer has been destroyed.
func (v *Visualizer) Destroyed() bool { return v.destroyed }

// Visible reports whether the last update enabled rendering.
func (v *Visualizer) Visible() bool { return v.visible }

// Mesh returns the current mesh. It is owned by the visualizer.
func (v *Visualizer) Mesh() *arplane.Mesh { return &v.mesh }

// Material returns the current material parameters.
func (v *Visualizer) Material() Material { return v.material }

// Mode returns the triangulation mode.
func (v *Visualizer) Mode() Mode { return v.mode }

// Rebuilds returns how many times the mesh has been triangulated.
func (v *Visualizer) Rebuilds() int { return v.rebuilds }
