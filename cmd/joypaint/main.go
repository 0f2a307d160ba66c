// Package main implements an LED painter: move the cursor with the joystick,
// press it to toggle the LED under the cursor.
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/fkcurrie/sensehat-golang/internal/config"
	"github.com/fkcurrie/sensehat-golang/internal/input"
	"github.com/fkcurrie/sensehat-golang/internal/paint"
	"github.com/fkcurrie/sensehat-golang/pkg/ledmatrix"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, loadErr := config.LoadOrDefault(*configPath)
	if *debug {
		cfg.Debug = true
	}

	logger := cfg.Logger()
	if loadErr != nil {
		logger.Info("Using default configuration",
			log.String("config", *configPath), log.Err(loadErr))
	}

	if err := run(app.Context(), cfg, logger); err != nil {
		logger.Error("Painter failed", log.Err(err))
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

	canvas := paint.New(matrix, paint.WithLogger(logger))
	x, y := joy.Position()
	if err := canvas.Draw(x, y); err != nil {
		return err
	}

	logger.Info("Painter started", log.String("mode", joy.Mode().String()))
	err = joy.Run(ctx, canvas.Handle)
	if errors.Is(err, context.Canceled) {
		logger.Info("Shutting down...")
		return matrix.Clear()
	}
	return err
}
