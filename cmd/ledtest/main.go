// Package main shows test patterns on the LED matrix.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/fkcurrie/sensehat-golang/internal/config"
	"github.com/fkcurrie/sensehat-golang/internal/icon"
	"github.com/fkcurrie/sensehat-golang/pkg/ledmatrix"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

// hi spells "HI", 1 = on
var hi = [ledmatrix.Height][ledmatrix.Width]uint8{
	{1, 0, 1, 0, 0, 0, 0, 1},
	{1, 0, 1, 0, 0, 0, 0, 1},
	{1, 0, 1, 0, 0, 0, 0, 1},
	{1, 1, 1, 0, 0, 0, 0, 1},
	{1, 0, 1, 0, 0, 0, 0, 1},
	{1, 0, 1, 0, 0, 0, 0, 1},
	{1, 0, 1, 0, 0, 0, 0, 1},
	{1, 0, 1, 0, 0, 0, 0, 1},
}

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	iconPath := flag.String("icon", "", "SVG icon to show after the test patterns")
	delay := flag.Duration("delay", 2*time.Second, "time each pattern is shown")
	flag.Parse()

	cfg, loadErr := config.LoadOrDefault(*configPath)
	logger := cfg.Logger()
	if loadErr != nil {
		logger.Info("Using default configuration",
			log.String("config", *configPath), log.Err(loadErr))
	}

	matrix, err := ledmatrix.Open(cfg.Matrix.Device, ledmatrix.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to open matrix", log.Err(err))
		os.Exit(1)
	}
	defer matrix.Close()

	if err := showPatterns(app.Context(), matrix, logger, *iconPath, *delay); err != nil {
		logger.Error("Test pattern failed", log.Err(err))
	}

	if err := matrix.Clear(); err != nil {
		logger.Error("Failed to clear matrix", log.Err(err))
	}
}

func showPatterns(ctx context.Context, matrix *ledmatrix.Matrix, logger *log.Logger, iconPath string, delay time.Duration) error {
	fills := []struct {
		name    string
		r, g, b uint8
	}{
		{"red", 255, 0, 0},
		{"green", 0, 255, 0},
		{"blue", 0, 0, 255},
	}
	for _, f := range fills {
		logger.Info("Setting all pixels", log.String("color", f.name))
		if err := fill(matrix, func(x, y int) (uint8, uint8, uint8) { return f.r, f.g, f.b }); err != nil {
			return err
		}
		if err := wait(ctx, delay); err != nil {
			return err
		}
	}

	logger.Info("Setting alternating pixels")
	err := fill(matrix, func(x, y int) (uint8, uint8, uint8) {
		if (x+y)%2 == 0 {
			return 255, 255, 255
		}
		return 0, 0, 0
	})
	if err != nil {
		return err
	}
	if err := wait(ctx, delay); err != nil {
		return err
	}

	logger.Info("Showing HI")
	if err := matrix.Clear(); err != nil {
		return err
	}
	for y, row := range hi {
		for x, on := range row {
			if on == 1 {
				if err := matrix.SetPixel(x, y, 0, 255, 0); err != nil {
					return err
				}
			}
		}
	}
	if err := wait(ctx, delay); err != nil {
		return err
	}

	logger.Info("Blinking top-left pixel")
	for i := 0; i < 5; i++ {
		if err := matrix.SetPixel(0, 0, 255, 0, 0); err != nil {
			return err
		}
		if err := wait(ctx, delay/4); err != nil {
			return err
		}
		if err := matrix.SetPixel(0, 0, 0, 0, 0); err != nil {
			return err
		}
		if err := wait(ctx, delay/4); err != nil {
			return err
		}
	}

	if iconPath == "" {
		return nil
	}
	logger.Info("Showing icon", log.String("icon", iconPath))
	img, err := icon.Load(iconPath)
	if err != nil {
		return err
	}
	if err := matrix.DrawImage(img); err != nil {
		return err
	}
	return wait(ctx, delay)
}

func fill(matrix *ledmatrix.Matrix, colorAt func(x, y int) (uint8, uint8, uint8)) error {
	for y := 0; y < ledmatrix.Height; y++ {
		for x := 0; x < ledmatrix.Width; x++ {
			r, g, b := colorAt(x, y)
			if err := matrix.SetPixel(x, y, r, g, b); err != nil {
				return err
			}
		}
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
