// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package plane

import (
	"fmt"

	"github.com/gogpu/arplane"
)

// Action tells the renderer what to do with a plane this frame.
type Action uint8

const (
	// ActionNone means the visualizer was already destroyed; nothing to do.
	ActionNone Action = iota

	// ActionHide disables rendering but keeps the uploaded mesh.
	ActionHide

	// ActionDraw enables rendering. If RenderCommand.MeshChanged is set the
	// mesh buffers must be re-uploaded first.
	ActionDraw

	// ActionDestroy means the plane is gone; release everything held for it.
	ActionDestroy
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionHide:
		return "hide"
	case ActionDraw:
		return "draw"
	case ActionDestroy:
		return "destroy"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Material holds the per-plane shader parameters.
type Material struct {
	// GridColor tints the plane grid. Assigned once from a Palette.
	GridColor arplane.RGBA

	// UVRotation rotates the grid texture, in degrees [0, 360).
	// Randomized once per plane so neighbouring planes don't line up.
	UVRotation float32

	// PlaneNormal is the world-space normal taken from the center pose,
	// refreshed whenever the mesh is rebuilt.
	PlaneNormal arplane.Vec3
}

// RenderCommand is the result of one Visualizer tick.
type RenderCommand struct {
	Action Action

	// Visible is the render-enabled flag.
	Visible bool

	// MeshChanged is set when Mesh was rebuilt this tick.
	MeshChanged bool

	// Mesh points at the visualizer's buffers. It is owned by the
	// visualizer and only valid until its next Update. Nil for
	// ActionNone and ActionDestroy.
	Mesh *arplane.Mesh

	Material Material
}
