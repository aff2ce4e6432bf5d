// Command snake-term plays the game in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"gridsnake/ai"
	"gridsnake/game"
	"gridsnake/spectate"
	"gridsnake/ui/term"

	"github.com/gdamore/tcell/v2"
	"github.com/golang/glog"
)

const frameInterval = 16 * time.Millisecond

func main() {
	cfg := game.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	autopilot := flag.Bool("autopilot", false, "let the learning agent steer")
	spectateAddr := flag.String("spectate", "", "serve a websocket spectator feed on this address")
	hold := flag.Duration("hold", term.DefaultHold, "how long a key press counts as held")
	flag.Parse()

	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	err := run(context.Background(), cfg, *autopilot, *spectateAddr, *hold)
	glog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg game.Config, autopilot bool, spectateAddr string, hold time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, err := game.NewGame(cfg)
	if err != nil {
		return err
	}
	glog.Infof("starting game, seed %d", cfg.Seed)

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("problem creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("init problem: %w", err)
	}
	defer s.Fini()

	screen := term.NewScreen(s, cfg.Grid)
	g.SetScoreSink(screen)
	sinks := game.Renderers{screen}

	if spectateAddr != "" {
		hub := spectate.NewHub()
		sinks = append(sinks, hub)
		srv := &http.Server{Addr: spectateAddr, Handler: hub}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				glog.Errorf("spectator feed: %v", err)
			}
		}()
		defer srv.Close()
	}

	var pilot *ai.Autopilot
	if autopilot {
		pilot = ai.NewAutopilot(cfg.Seed)
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	keys := term.NewKeyState(hold)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()
	sinks.Render(g.Snapshot())

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					logStats(g)
					return nil
				}
				keys.Handle(ev, time.Now())
			case *tcell.EventResize:
				s.Sync()
			}
		case now := <-ticker.C:
			held := keys.Keys(now)
			if pilot != nil {
				held = pilot.Keys(g.Snapshot())
			}
			out, err := g.Frame(now.Sub(last), held)
			last = now
			if err != nil {
				return fmt.Errorf("frame: %w", err)
			}
			if !out.Ticked {
				continue
			}
			snap := g.Snapshot()
			if pilot != nil {
				pilot.Observe(out, snap)
			}
			sinks.Render(snap)
		}
	}
}

func logStats(g *game.Game) {
	stats := g.Stats()
	glog.Infof("games %d, best %d, average %.2f", stats.GamesPlayed(), stats.GetHighScore(), stats.GetAverageScore())
}
