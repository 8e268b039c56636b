// Command planeview replays a plane tracking scenario in a window.
//
// Usage:
//
//	planeview -scenario table.toml -watch
//	planeview -synthetic 6 -mode fan
package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/arplane/plane"
	"github.com/gogpu/arplane/scenario"
)

func main() {
	var (
		path      = flag.String("scenario", "", "scenario TOML file to replay")
		synthetic = flag.Int("synthetic", 4, "synthetic plane count when -scenario is empty")
		watch     = flag.Bool("watch", false, "reload the scenario file when it changes")
		modeName  = flag.String("mode", "feathered", "mesh mode: feathered or fan")
		scale     = flag.Float64("scale", 80, "pixels per meter")
		width     = flag.Int("width", 960, "window width")
		height    = flag.Int("height", 720, "window height")
	)
	flag.Parse()

	mode, err := plane.ParseMode(*modeName)
	if err != nil {
		log.Fatalf("planeview: %v", err)
	}

	var sc *scenario.Scenario
	if *path != "" {
		sc, err = scenario.Load(*path)
		if err != nil {
			log.Fatalf("planeview: %v", err)
		}
	} else {
		sc = scenario.Synthetic(scenario.SyntheticOptions{Planes: *synthetic, SessionLoss: true})
	}

	g := newGame(sc, mode, float32(*scale), *width, *height)

	if *watch && *path != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			err := scenario.Watch(ctx, *path, func(sc *scenario.Scenario, err error) {
				if err != nil {
					log.Printf("planeview: reload %s: %v", *path, err)
					return
				}
				g.reload(sc)
			})
			if err != nil {
				log.Printf("planeview: watch: %v", err)
			}
		}()
	}

	ebiten.SetWindowTitle("planeview: " + sc.Name)
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetTPS(30)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("planeview: %v", err)
	}
}
