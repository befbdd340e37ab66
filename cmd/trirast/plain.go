package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"trirast/internal/config"
	"trirast/internal/display"
	"trirast/internal/raster"
	"trirast/internal/scene"
)

// runPlain animates the scene straight to stdout until interrupted:
// clear, draw, present, wait.
func runPlain(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := display.NewRenderer(cfg.Display, os.Stdout)
	// one row is left for the newline after each frame
	size := func() (int, int, error) {
		cols, rows, err := display.StdoutSize()
		return cols, rows - 1, err
	}
	fb, err := display.NewFrameBuffer(r, cfg.Width, cfg.Height, size, cfg.RasterOptions()...)
	if err != nil {
		return err
	}
	c, _ := scene.LookupColorer(cfg.Colorer)
	s, err := scene.New(cfg.Scene, fb.Width(), fb.Height(), cfg.Rotation, c, cfg.Rand())
	if err != nil {
		return err
	}
	raster.Logger().Info("plain loop", "width", fb.Width(), "height", fb.Height(), "scene", cfg.Scene)

	out := r.Output()
	out.HideCursor()
	defer out.ShowCursor()

	ticker := time.NewTicker(cfg.FrameInterval())
	defer ticker.Stop()
	for {
		out.ClearScreen()
		s.Render(fb)
		if err := fb.DrawBuffer(r); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		s.Step()
	}
}
