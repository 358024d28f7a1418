package main

import (
	"context"
	"flag"
	"log"

	"colorbook/internal/config"
	mirrornet "colorbook/internal/net"
	"colorbook/internal/render"
	"colorbook/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		sinks  []ui.SnapshotSink
		status string
	)
	if cfg.Mirror.Enabled {
		mirror := mirrornet.NewMirror(&render.Compositor{
			Width:       cfg.Canvas.Width,
			Height:      cfg.Canvas.Height,
			StrokeWidth: float64(cfg.Canvas.StrokeWidth),
		})
		go func() {
			if err := mirror.ListenAndServe(ctx, cfg.Mirror.Port, cfg.Mirror.Advertise); err != nil {
				log.Printf("[MIRROR] stopped: %v", err)
			}
		}()
		sinks = append(sinks, mirror)
		status = "mirroring at " + mirrornet.ShareURL(cfg.Mirror.Port)
	}

	log.Println("Starting coloring book")
	ui.RunApp(cfg, status, sinks...)
}
