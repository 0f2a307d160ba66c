// Package input opens the joystick controller described by the configuration,
// backed either by the input event device or by a GPIO keypad.
package input

import (
	"github.com/fkcurrie/sensehat-golang/internal/config"
	"github.com/fkcurrie/sensehat-golang/pkg/gpiokeys"
	"github.com/fkcurrie/sensehat-golang/pkg/joystick"
	"github.com/retroenv/retrogolib/log"
)

// OpenJoystick opens the configured key source and wraps it in a controller.
func OpenJoystick(cfg *config.Config, logger *log.Logger) (*joystick.Controller, error) {
	mode, err := cfg.MovementMode()
	if err != nil {
		return nil, err
	}

	if !cfg.Keypad.Enabled {
		return joystick.Open(cfg.Joystick.Device, mode,
			joystick.WithLogger(logger),
			joystick.WithGrab(cfg.Joystick.Grab))
	}

	keypad, err := gpiokeys.Open(cfg.KeypadConfig(logger))
	if err != nil {
		return nil, err
	}

	joy, err := joystick.New(keypad, mode, joystick.WithLogger(logger))
	if err != nil {
		keypad.Close()
		return nil, err
	}
	return joy, nil
}
