package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/arplane"
	"github.com/gogpu/arplane/plane"
	"github.com/gogpu/arplane/scenario"
)

var background = color.NRGBA{R: 26, G: 26, B: 31, A: 255}

// game replays a scenario one frame per tick and loops at the end.
type game struct {
	mode   plane.Mode
	scale  float32
	width  int
	height int

	replay *scenario.Replay
	gen    *plane.Generator
	pipe   chan *scenario.Scenario

	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func newGame(sc *scenario.Scenario, mode plane.Mode, scale float32, w, h int) *game {
	base := ebiten.NewImage(3, 3)
	base.Fill(color.White)
	g := &game{
		mode:   mode,
		scale:  scale,
		width:  w,
		height: h,
		pipe:   make(chan *scenario.Scenario, 1),
		white:  base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
	g.start(sc)
	return g
}

func (g *game) start(sc *scenario.Scenario) {
	opts := []plane.Option{plane.WithMode(g.mode)}
	if p := sc.GridPalette(); p != nil {
		opts = append(opts, plane.WithPalette(p))
	}
	g.gen = plane.NewGenerator(opts...)
	g.replay = scenario.NewReplay(sc)
}

// reload hands a new scenario to the game loop. Only the latest one is kept.
func (g *game) reload(sc *scenario.Scenario) {
	select {
	case <-g.pipe:
	default:
	}
	g.pipe <- sc
}

func (g *game) Update() error {
	select {
	case sc := <-g.pipe:
		g.start(sc)
		ebiten.SetWindowTitle("planeview: " + sc.Name)
	default:
	}
	if !g.replay.Step() {
		g.start(g.replay.Scenario())
		g.replay.Step()
	}
	g.gen.Update(g.replay.Status(), g.replay.NewPlanes())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	opts := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	for _, id := range g.gen.IDs() {
		v := g.gen.Visualizer(id)
		if !v.Visible() {
			continue
		}
		if !g.appendMesh(v.Mesh(), v.Material().GridColor) {
			continue
		}
		screen.DrawTriangles(g.vertices, g.indices, g.white, opts)
	}
}

// appendMesh converts m to screen space in a top-down view. It reports false
// when the mesh does not fit 16-bit indices.
func (g *game) appendMesh(m *arplane.Mesh, c arplane.RGBA) bool {
	if m.VertexCount() > 1<<16 {
		return false
	}
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	cx, cy := float32(g.width)/2, float32(g.height)/2
	for i, p := range m.Vertices {
		a := c.A
		if m.HasColor() {
			a *= m.Colors[i].A
		}
		g.vertices = append(g.vertices, ebiten.Vertex{
			DstX:   cx + p.X*g.scale,
			DstY:   cy + p.Z*g.scale,
			SrcX:   1,
			SrcY:   1,
			ColorR: c.R,
			ColorG: c.G,
			ColorB: c.B,
			ColorA: a,
		})
	}
	for _, i := range m.Indices {
		g.indices = append(g.indices, uint16(i))
	}
	return true
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
