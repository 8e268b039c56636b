// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package plane

import (
	"log/slog"

	"github.com/gogpu/arplane"
)

// Frame is the render command for one plane in one tick.
type Frame struct {
	ID      ID
	Command RenderCommand
}

// Stats counts what a Generator has done since creation.
type Stats struct {
	Ticks     int // Update calls
	Created   int // visualizers created
	Destroyed int // visualizers destroyed
	Rebuilds  int // meshes triangulated
	Reused    int // draws that reused the previous mesh
	Hidden    int // hide commands issued
}

type entry struct {
	plane   Plane
	vis     *Visualizer
	scratch []arplane.Vec3
}

// Generator keeps one Visualizer per tracked plane.
//
// Generator is not safe for concurrent use.
type Generator struct {
	opts    options
	palette *Palette
	entries map[ID]*entry
	order   []ID // creation order, for deterministic output
	frames  []Frame
	stats   Stats
}

// NewGenerator creates an empty generator. Without WithPalette it draws from
// a fresh DefaultPalette.
func NewGenerator(opts ...Option) *Generator {
	o := applyOptions(opts)
	p := o.palette
	if p == nil {
		p = DefaultPalette()
	}
	return &Generator{
		opts:    o,
		palette: p,
		entries: make(map[ID]*entry),
	}
}

// Update runs one frame.
//
// While the session is tracking, a visualizer is created for every plane in
// newPlanes that is not already known. Then every live visualizer is ticked
// in creation order and its command returned. A plane whose command is
// ActionDestroy is forgotten afterwards.
//
// The returned slice is reused by the next call.
func (g *Generator) Update(status SessionStatus, newPlanes []Plane) []Frame {
	g.stats.Ticks++
	if status == SessionTracking {
		for _, p := range newPlanes {
			g.add(p)
		}
	}

	g.frames = g.frames[:0]
	live := g.order[:0]
	for _, id := range g.order {
		e := g.entries[id]
		in := InputOf(e.plane, e.scratch)
		if in.Boundary != nil {
			e.scratch = in.Boundary[:0]
		}
		cmd := e.vis.Update(in)
		g.count(cmd)
		g.frames = append(g.frames, Frame{ID: id, Command: cmd})

		switch cmd.Action {
		case ActionDestroy:
			delete(g.entries, id)
			arplane.Logger().Info("plane: destroyed", slog.Uint64("id", uint64(id)))
			continue
		case ActionNone:
			// Destroyed through Visualizer(id).Destroy, already reported.
			delete(g.entries, id)
			continue
		}
		live = append(live, id)
	}
	clear(g.order[len(live):])
	g.order = live
	return g.frames
}

func (g *Generator) add(p Plane) {
	id := p.ID()
	if _, ok := g.entries[id]; ok {
		return
	}
	vis := NewVisualizer(g.palette, WithMode(g.opts.mode), WithRand(g.opts.rng))
	g.entries[id] = &entry{plane: p, vis: vis}
	g.order = append(g.order, id)
	g.stats.Created++
	arplane.Logger().Info("plane: created",
		slog.Uint64("id", uint64(id)),
		slog.String("color", vis.Material().GridColor.Hex()))
}

func (g *Generator) count(cmd RenderCommand) {
	switch cmd.Action {
	case ActionDestroy:
		g.stats.Destroyed++
	case ActionHide:
		g.stats.Hidden++
	case ActionDraw:
		if cmd.MeshChanged {
			g.stats.Rebuilds++
		} else {
			g.stats.Reused++
		}
	}
}

// Len returns the number of live visualizers.
func (g *Generator) Len() int { return len(g.order) }

// Visualizer returns the visualizer of plane id, or nil if none is live.
func (g *Generator) Visualizer(id ID) *Visualizer {
	if e, ok := g.entries[id]; ok {
		return e.vis
	}
	return nil
}

// IDs returns the live plane ids in creation order.
func (g *Generator) IDs() []ID {
	return append([]ID(nil), g.order...)
}

// Stats returns the counters accumulated so far.
func (g *Generator) Stats() Stats { return g.stats }

// Palette returns the palette grid colors are drawn from.
func (g *Generator) Palette() *Palette { return g.palette }
