// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package plane drives the visualization of tracked AR planes frame by frame.
//
// A [Visualizer] owns the state of one tracked plane: the boundary it last
// triangulated, the mesh buffers built from it and the material parameters
// handed to the renderer. Each tick it receives an [Input] from the tracking
// source and answers with a [RenderCommand]:
//
//	subsumed      -> ActionDestroy (buffers released)
//	not tracking  -> ActionHide    (buffers kept, rendering disabled)
//	tracking      -> ActionDraw    (mesh rebuilt only if the boundary changed)
//
// A [Generator] keeps one Visualizer per plane reported by a tracking
// session and ticks them all, assigning grid colors from a shared [Palette].
//
// Everything here is single-threaded: call Update from the one goroutine that
// runs the frame loop.
package plane
