package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"gridsnake/ai"
	"gridsnake/game"
	"gridsnake/spectate"
	"gridsnake/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/glog"
)

func main() {
	cfg := game.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	autopilot := flag.Bool("autopilot", false, "let the learning agent steer")
	spectateAddr := flag.String("spectate", "", "serve a websocket spectator feed on this address")
	flag.Parse()
	defer glog.Flush()

	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	g, err := game.NewGame(cfg)
	if err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(2)
	}
	glog.Infof("starting game, seed %d", cfg.Seed)

	width, height := ui.WindowSize(cfg.Grid)
	rl.InitWindow(width, height, "Snake")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	renderer := ui.NewRenderer(cfg.Grid)
	g.SetScoreSink(renderer)

	var hub *spectate.Hub
	if *spectateAddr != "" {
		hub = spectate.NewHub()
		go func() {
			glog.Infof("spectator feed on %s", *spectateAddr)
			if err := http.ListenAndServe(*spectateAddr, hub); err != nil {
				glog.Errorf("spectator feed: %v", err)
			}
		}()
	}

	var pilot *ai.Autopilot
	if *autopilot {
		pilot = ai.NewAutopilot(cfg.Seed)
	}

	for !rl.WindowShouldClose() {
		keys := ui.ReadKeys()
		if pilot != nil {
			keys = pilot.Keys(g.Snapshot())
		}

		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		out, err := g.Frame(dt, keys)
		if err != nil {
			glog.Errorf("frame: %v", err)
			break
		}
		snap := g.Snapshot()
		if pilot != nil {
			pilot.Observe(out, snap)
		}
		renderer.Render(snap)
		if hub != nil && out.Ticked {
			hub.Render(snap)
		}
	}

	stats := g.Stats()
	glog.Infof("games %d, best %d, average %.2f", stats.GamesPlayed(), stats.GetHighScore(), stats.GetAverageScore())
}
