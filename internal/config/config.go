// Package config handles application configuration and setup
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fkcurrie/sensehat-golang/internal/types"
	"github.com/fkcurrie/sensehat-golang/pkg/gpiokeys"
	"github.com/fkcurrie/sensehat-golang/pkg/joystick"
	"github.com/retroenv/retrogolib/log"
)

// Config represents the application configuration
type Config struct {
	Matrix   types.MatrixConfig   `json:"matrix"`
	Joystick types.JoystickConfig `json:"joystick"`
	Keypad   types.KeypadConfig   `json:"keypad"`
	Debug    bool                 `json:"debug"`
	Quiet    bool                 `json:"quiet"`
}

// LoadConfig loads the configuration from a file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return config, nil
}

// LoadOrDefault loads the configuration from path. If that fails the
// defaults are returned together with the load error, so the caller can
// report it once its logger exists.
func LoadOrDefault(path string) (*Config, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig(), err
	}
	return config, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Matrix: types.MatrixConfig{
			Device: "/dev/fb1",
		},
		Joystick: types.JoystickConfig{
			Device: "/dev/input/event0",
			Mode:   joystick.Wrap.String(),
		},
		Keypad: types.KeypadConfig{
			Chip:      "gpiochip0",
			Up:        5,
			Down:      6,
			Left:      13,
			Right:     19,
			Enter:     26,
			ActiveLow: true,
		},
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	var errs []error

	if c.Matrix.Device == "" {
		errs = append(errs, errors.New("matrix device path is empty"))
	}
	if _, err := joystick.ParseMode(c.Joystick.Mode); err != nil {
		errs = append(errs, err)
	}

	if c.Keypad.Enabled {
		if c.Keypad.Chip == "" {
			errs = append(errs, errors.New("keypad chip is empty"))
		}
		seen := map[int]bool{}
		for _, offset := range []int{c.Keypad.Up, c.Keypad.Down, c.Keypad.Left, c.Keypad.Right, c.Keypad.Enter} {
			if offset < 0 {
				errs = append(errs, fmt.Errorf("keypad line offset %d is negative", offset))
			}
			if seen[offset] {
				errs = append(errs, fmt.Errorf("keypad line offset %d is used twice", offset))
			}
			seen[offset] = true
		}
	} else if c.Joystick.Device == "" {
		errs = append(errs, errors.New("joystick device path is empty"))
	}

	return errors.Join(errs...)
}

// MovementMode returns the parsed joystick movement mode
func (c *Config) MovementMode() (joystick.MovementMode, error) {
	return joystick.ParseMode(c.Joystick.Mode)
}

// KeypadConfig returns the GPIO keypad settings
func (c *Config) KeypadConfig(logger *log.Logger) gpiokeys.Config {
	return gpiokeys.Config{
		Chip:      c.Keypad.Chip,
		Up:        c.Keypad.Up,
		Down:      c.Keypad.Down,
		Left:      c.Keypad.Left,
		Right:     c.Keypad.Right,
		Enter:     c.Keypad.Enter,
		ActiveLow: c.Keypad.ActiveLow,
		Logger:    logger,
	}
}

// Logger creates a logger for the configured verbosity
func (c *Config) Logger() *log.Logger {
	return CreateLogger(c.Debug, c.Quiet)
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
