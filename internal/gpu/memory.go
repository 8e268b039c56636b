// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import "fmt"

// MemoryStats contains GPU buffer usage of a PlaneRenderer.
type MemoryStats struct {
	// UsedBytes is the total size of all plane buffers in bytes.
	UsedBytes uint64

	// BufferCount is the number of live vertex, index and uniform buffers.
	BufferCount int

	// PlaneCount is the number of planes holding buffers.
	PlaneCount int

	// Reallocations counts buffers replaced because a mesh outgrew them.
	Reallocations uint64
}

// String returns a human-readable string of memory stats.
func (s MemoryStats) String() string {
	return fmt.Sprintf("Memory[%d KB, %d buffers, %d planes, %d reallocations]",
		s.UsedBytes/1024,
		s.BufferCount,
		s.PlaneCount,
		s.Reallocations)
}

// MemoryStats reports the buffers currently held by the renderer.
func (pr *PlaneRenderer) MemoryStats() MemoryStats {
	s := MemoryStats{PlaneCount: len(pr.planes), Reallocations: pr.reallocations}
	for _, res := range pr.planes {
		if res.uniformBuf != nil {
			s.UsedBytes += planeUniformSize
			s.BufferCount++
		}
		if res.vertBuf != nil {
			s.UsedBytes += res.vertCap
			s.BufferCount++
		}
		if res.idxBuf != nil {
			s.UsedBytes += res.idxCap
			s.BufferCount++
		}
	}
	return s
}
