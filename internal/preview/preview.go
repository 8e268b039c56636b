// Package preview rasterizes plane meshes seen from above into images.
//
// The view looks down the -Y axis: world X maps to image x and world Z to
// image y. Per-vertex alpha is honored by subdividing blended triangles and
// quantizing their alpha into a fixed number of levels, which renders the
// feather band as a stack of alpha-stepped strips.
package preview

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/vector"

	"github.com/gogpu/arplane"
)

// Item is one mesh to draw.
type Item struct {
	Mesh  *arplane.Mesh
	Color arplane.RGBA
}

// Options controls Render.
type Options struct {
	Width, Height int // image size, default 512x512

	// Scale is in pixels per meter. Zero fits all meshes into the image.
	Scale float32

	// Center is the world point at the image center when Scale is set.
	Center arplane.Vec3

	// Margin is the fraction of the image left empty around fitted meshes.
	Margin float32

	// Steps is the number of alpha levels, default 8.
	Steps int

	Background arplane.RGBA
}

func (o *Options) defaults() {
	if o.Width <= 0 {
		o.Width = 512
	}
	if o.Height <= 0 {
		o.Height = 512
	}
	if o.Steps <= 0 {
		o.Steps = 8
	}
	if o.Margin <= 0 || o.Margin >= 1 {
		o.Margin = 0.1
	}
}

// Render draws items in order over the background.
func Render(items []Item, opts Options) *image.RGBA {
	opts.defaults()
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background.NRGBA()), image.Point{}, draw.Src)

	v := newView(items, &opts)
	r := &renderer{
		img:    img,
		ras:    vector.NewRasterizer(opts.Width, opts.Height),
		view:   v,
		steps:  opts.Steps,
		levels: make([][][3]point, opts.Steps+1),
	}
	for _, it := range items {
		if it.Mesh == nil || it.Mesh.TriangleCount() == 0 {
			continue
		}
		r.drawMesh(it.Mesh, it.Color)
	}
	return img
}

type point struct{ x, y float32 }

// view maps world XZ to pixels.
type view struct {
	scale  float32
	cx, cz float32
	w, h   float32
}

func newView(items []Item, opts *Options) view {
	v := view{
		scale: opts.Scale,
		cx:    opts.Center.X,
		cz:    opts.Center.Z,
		w:     float32(opts.Width),
		h:     float32(opts.Height),
	}
	if opts.Scale > 0 {
		return v
	}

	first := true
	var lo, hi arplane.Vec3
	for _, it := range items {
		if it.Mesh == nil || it.Mesh.VertexCount() == 0 {
			continue
		}
		l, h := it.Mesh.Bounds()
		if first {
			lo, hi, first = l, h, false
			continue
		}
		lo = arplane.V3(min(lo.X, l.X), min(lo.Y, l.Y), min(lo.Z, l.Z))
		hi = arplane.V3(max(hi.X, h.X), max(hi.Y, h.Y), max(hi.Z, h.Z))
	}
	if first {
		v.scale = 1
		return v
	}
	v.cx = (lo.X + hi.X) / 2
	v.cz = (lo.Z + hi.Z) / 2
	extent := max(hi.X-lo.X, hi.Z-lo.Z)
	if extent <= 0 {
		extent = 1
	}
	v.scale = min(v.w, v.h) * (1 - opts.Margin) / extent
	return v
}

func (v view) project(p arplane.Vec3) point {
	return point{
		x: (p.X-v.cx)*v.scale + v.w/2,
		y: (p.Z-v.cz)*v.scale + v.h/2,
	}
}

type renderer struct {
	img    *image.RGBA
	ras    *vector.Rasterizer
	view   view
	steps  int
	levels [][][3]point // triangles per alpha level
}

func (r *renderer) drawMesh(m *arplane.Mesh, c arplane.RGBA) {
	for i := range r.levels {
		r.levels[i] = r.levels[i][:0]
	}

	colored := m.HasColor()
	for t := range m.TriangleCount() {
		idx := m.Triangle(t)
		var p [3]point
		var a [3]float32
		for k, vi := range idx {
			p[k] = r.view.project(m.Vertices[vi])
			a[k] = 1
			if colored {
				a[k] = m.Colors[vi].A
			}
		}
		if a[0] == a[1] && a[1] == a[2] {
			r.add(p, a[0])
			continue
		}
		r.subdivide(p, a)
	}

	for level := 1; level <= r.steps; level++ {
		tris := r.levels[level]
		if len(tris) == 0 {
			continue
		}
		r.ras.Reset(r.img.Bounds().Dx(), r.img.Bounds().Dy())
		r.ras.DrawOp = draw.Over
		for _, tri := range tris {
			r.ras.MoveTo(tri[0].x, tri[0].y)
			r.ras.LineTo(tri[1].x, tri[1].y)
			r.ras.LineTo(tri[2].x, tri[2].y)
			r.ras.ClosePath()
		}
		alpha := float32(level) / float32(r.steps)
		src := image.NewUniform(c.WithAlpha(c.A * alpha).NRGBA())
		r.ras.Draw(r.img, r.img.Bounds(), src, image.Point{})
	}
}

// subdivide splits a triangle with varying alpha into a grid of smaller
// triangles, each taking the alpha at its centroid.
func (r *renderer) subdivide(p [3]point, a [3]float32) {
	n := r.steps
	at := func(i, j int) (point, float32) {
		u := float32(i) / float32(n)
		w := float32(j) / float32(n)
		pt := point{
			x: p[0].x + (p[1].x-p[0].x)*u + (p[2].x-p[0].x)*w,
			y: p[0].y + (p[1].y-p[0].y)*u + (p[2].y-p[0].y)*w,
		}
		return pt, a[0] + (a[1]-a[0])*u + (a[2]-a[0])*w
	}
	emit := func(i0, j0, i1, j1, i2, j2 int) {
		q0, b0 := at(i0, j0)
		q1, b1 := at(i1, j1)
		q2, b2 := at(i2, j2)
		r.add([3]point{q0, q1, q2}, (b0+b1+b2)/3)
	}
	for i := 0; i < n; i++ {
		for j := 0; i+j < n; j++ {
			emit(i, j, i+1, j, i, j+1)
			if i+j < n-1 {
				emit(i+1, j, i+1, j+1, i, j+1)
			}
		}
	}
}

// add queues a triangle at the alpha level nearest to alpha. Triangles are
// stored with a consistent winding so shared edges add up to full coverage.
func (r *renderer) add(p [3]point, alpha float32) {
	level := int(alpha*float32(r.steps) + 0.5)
	if level <= 0 {
		return
	}
	level = min(level, r.steps)
	area := (p[1].x-p[0].x)*(p[2].y-p[0].y) - (p[2].x-p[0].x)*(p[1].y-p[0].y)
	if area < 0 {
		p[1], p[2] = p[2], p[1]
	}
	r.levels[level] = append(r.levels[level], p)
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("preview: encode png: %w", err)
	}
	return nil
}

// WritePNG writes img as a PNG file at path.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path) //nolint:gosec // output path is chosen by the user
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("preview: %w", cerr)
		}
	}()
	return Encode(f, img)
}
