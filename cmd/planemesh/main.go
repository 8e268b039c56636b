// Command planemesh replays a plane tracking scenario through the plane
// visualizer and writes a top-down preview of the final frame.
//
// Usage:
//
//	planemesh -scenario table.toml -out table.png
//	planemesh -synthetic 6 -mode fan -out fan.png -v
//	planemesh -spirv plane.spv
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/arplane"
	"github.com/gogpu/arplane/internal/gpu"
	"github.com/gogpu/arplane/internal/preview"
	"github.com/gogpu/arplane/plane"
	"github.com/gogpu/arplane/scenario"
)

type config struct {
	scenario  string
	synthetic int
	seed      uint64
	mode      string
	out       string
	size      int
	spirv     string
	save      string
	verbose   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.scenario, "scenario", "", "scenario TOML file to replay")
	flag.IntVar(&cfg.synthetic, "synthetic", 0, "replay a synthetic scenario with this many planes")
	flag.Uint64Var(&cfg.seed, "seed", 1, "seed for -synthetic")
	flag.StringVar(&cfg.mode, "mode", "feathered", "mesh mode: feathered or fan")
	flag.StringVar(&cfg.out, "out", "planes.png", "preview output file, empty to skip")
	flag.IntVar(&cfg.size, "size", 512, "preview size in pixels")
	flag.StringVar(&cfg.spirv, "spirv", "", "write the compiled plane shader (SPIR-V) to this file")
	flag.StringVar(&cfg.save, "save", "", "write the replayed scenario as TOML to this file")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	flag.Parse()

	if cfg.verbose {
		l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		arplane.SetLogger(l)
		gpu.SetLogger(l)
	}

	if err := run(&cfg); err != nil {
		log.Fatalf("planemesh: %v", err)
	}
}

func run(cfg *config) error {
	if cfg.spirv != "" {
		if err := writeSPIRV(cfg.spirv); err != nil {
			return err
		}
		if cfg.scenario == "" && cfg.synthetic == 0 {
			return nil
		}
	}

	sc, err := loadScenario(cfg)
	if err != nil {
		return err
	}
	if cfg.save != "" {
		if err := sc.Save(cfg.save); err != nil {
			return err
		}
	}
	mode, err := plane.ParseMode(cfg.mode)
	if err != nil {
		return err
	}

	opts := []plane.Option{plane.WithMode(mode)}
	if p := sc.GridPalette(); p != nil {
		opts = append(opts, plane.WithPalette(p))
	}
	gen := plane.NewGenerator(opts...)

	var sum summary
	replay := scenario.NewReplay(sc)
	for replay.Step() {
		if replay.Status() != plane.SessionTracking {
			sum.lostFrames++
		}
		for _, f := range gen.Update(replay.Status(), replay.NewPlanes()) {
			if f.Command.Action == plane.ActionDraw && f.Command.MeshChanged {
				sum.triangles += f.Command.Mesh.TriangleCount()
			}
		}
	}
	sum.frames = replay.Len()
	sum.stats = gen.Stats()
	sum.live = gen.Len()
	sum.print(sc.Name)

	if cfg.out == "" {
		return nil
	}
	var items []preview.Item
	for _, id := range gen.IDs() {
		v := gen.Visualizer(id)
		if !v.Visible() {
			continue
		}
		items = append(items, preview.Item{Mesh: v.Mesh(), Color: v.Material().GridColor})
	}
	img := preview.Render(items, preview.Options{Width: cfg.size, Height: cfg.size, Background: arplane.RGB(0.1, 0.1, 0.12)})
	if err := preview.WritePNG(cfg.out, img); err != nil {
		return err
	}
	log.Printf("preview of %d planes saved to %s (%dx%d)", len(items), cfg.out, cfg.size, cfg.size)
	return nil
}

func loadScenario(cfg *config) (*scenario.Scenario, error) {
	switch {
	case cfg.scenario != "" && cfg.synthetic > 0:
		return nil, fmt.Errorf("-scenario and -synthetic are mutually exclusive")
	case cfg.scenario != "":
		return scenario.Load(cfg.scenario)
	case cfg.synthetic > 0:
		return scenario.Synthetic(scenario.SyntheticOptions{
			Planes:      cfg.synthetic,
			Seed:        cfg.seed,
			SessionLoss: true,
		}), nil
	default:
		return nil, fmt.Errorf("one of -scenario or -synthetic is required")
	}
}

func writeSPIRV(path string) error {
	words, err := gpu.CompilePlaneShader()
	if err != nil {
		return err
	}
	buf := make([]byte, 0, len(words)*4)
	for _, w := range words {
		buf = append(buf, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil { //nolint:gosec // shader binaries are not secret
		return err
	}
	log.Printf("plane shader: %d SPIR-V words written to %s", len(words), path)
	return nil
}

type summary struct {
	frames     int
	lostFrames int
	live       int
	triangles  int
	stats      plane.Stats
}

func (s *summary) print(name string) {
	p := message.NewPrinter(language.English)
	p.Printf("scenario %q: %d frames (%d without session tracking)\n", name, s.frames, s.lostFrames)
	p.Printf("  planes:    %d created, %d destroyed, %d live\n", s.stats.Created, s.stats.Destroyed, s.live)
	p.Printf("  meshes:    %d rebuilt, %d reused, %d hidden\n", s.stats.Rebuilds, s.stats.Reused, s.stats.Hidden)
	p.Printf("  triangles: %d generated\n", s.triangles)
}
