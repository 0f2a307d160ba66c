package input

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fkcurrie/sensehat-golang/internal/config"
	"github.com/fkcurrie/sensehat-golang/pkg/device"
	"github.com/fkcurrie/sensehat-golang/pkg/joystick"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestOpenJoystickNotEventDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event0")
	assert.NoError(t, os.WriteFile(path, make([]byte, 24), 0o600))

	cfg := config.DefaultConfig()
	cfg.Joystick.Device = path
	cfg.Joystick.Mode = "clamp"

	_, err := OpenJoystick(cfg, log.NewTestLogger(t))
	assert.True(t, errors.Is(err, device.ErrFormat))
}

func TestOpenJoystickErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Joystick.Device = filepath.Join(t.TempDir(), "missing")

	_, err := OpenJoystick(cfg, log.NewTestLogger(t))
	assert.True(t, errors.Is(err, device.ErrNotFound))

	cfg.Joystick.Mode = "bounce"
	_, err = OpenJoystick(cfg, log.NewTestLogger(t))
	assert.True(t, errors.Is(err, joystick.ErrInvalidMode))
}

func TestOpenJoystickKeypadMissingChip(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keypad.Enabled = true
	cfg.Keypad.Chip = filepath.Join(t.TempDir(), "gpiochip9")

	_, err := OpenJoystick(cfg, log.NewTestLogger(t))
	assert.Error(t, err)
}
