// Package main logs joystick events and shows the cursor on the LED matrix.
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/fkcurrie/sensehat-golang/internal/config"
	"github.com/fkcurrie/sensehat-golang/internal/input"
	"github.com/fkcurrie/sensehat-golang/pkg/joystick"
	"github.com/fkcurrie/sensehat-golang/pkg/ledmatrix"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	mode := flag.String("mode", "", "movement mode, wrap or clamp (overrides config)")
	quiet := flag.Bool("quiet", false, "log errors only")
	flag.Parse()

	cfg, loadErr := config.LoadOrDefault(*configPath)
	if *mode != "" {
		cfg.Joystick.Mode = *mode
	}
	if *quiet {
		cfg.Quiet = true
	}

	logger := cfg.Logger()
	if loadErr != nil {
		logger.Info("Using default configuration",
			log.String("config", *configPath), log.Err(loadErr))
	}

	if err := run(app.Context(), cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Joystick test failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	matrix, err := ledmatrix.Open(cfg.Matrix.Device, ledmatrix.WithLogger(logger))
	if err != nil {
		return err
	}
	defer matrix.Close()

	joy, err := input.OpenJoystick(cfg, logger)
	if err != nil {
		return err
	}
	defer joy.Close()

	if err := matrix.Clear(); err != nil {
		return err
	}

	return joy.Run(ctx, func(ev joystick.Event) error {
		x, y := ev.Position()
		switch ev.(type) {
		case joystick.Move:
			logger.Info("Moved", log.Int("x", x), log.Int("y", y))
			if err := matrix.Clear(); err != nil {
				return err
			}
			return matrix.SetPixel(x, y, 0, 0, 255)
		case joystick.Enter:
			logger.Info("Enter", log.Int("x", x), log.Int("y", y))
		}
		return nil
	})
}
