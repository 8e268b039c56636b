// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu renders plane meshes with wgpu HAL.
//
// Each plane owns a vertex buffer, an index buffer and a uniform buffer bound
// through a single bind group. Vertex and index buffers are rewritten only
// when the plane's mesh changed and are grown, never shrunk, so a plane whose
// boundary keeps growing settles into a stable allocation.
//
// Vertex layout (28 bytes):
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
//
// Uniform layout (96 bytes):
//
//	view_proj       (mat4x4<f32>) = 64 bytes
//	grid_color      (vec4<f32>)   = 16 bytes
//	normal_rotation (vec4<f32>)   = 16 bytes (plane normal, uv rotation in radians)
//
// The device and queue are always provided by the host; this package never
// creates one except in tests, where the noop HAL backend stands in.
package gpu
