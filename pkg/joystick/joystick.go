// Package joystick turns the key events of the Sense HAT joystick into cursor
// movements on the 8x8 LED grid.
//
// The controller keeps a cursor that starts at (0, 0). Up, Down, Left and
// Right move it by one cell under the MovementMode chosen at construction,
// Enter confirms the current position. Releases, autorepeats and every other
// input event are discarded.
package joystick

import (
	"context"
	"errors"

	"github.com/fkcurrie/sensehat-golang/pkg/device"
	"github.com/fkcurrie/sensehat-golang/pkg/evdev"
	"github.com/retroenv/retrogolib/log"
)

// GridSize is the number of cells per axis.
const GridSize = 8

var (
	// ErrStop may be returned by a Handler to end Run without an error.
	ErrStop = errors.New("stop dispatching")
	// ErrInvalidMode is returned for an unknown movement mode.
	ErrInvalidMode = errors.New("invalid movement mode")
)

// Source delivers batches of raw input events. ReadEvents blocks until at
// least one event is available; Close must make a blocked ReadEvents return.
type Source interface {
	ReadEvents() ([]evdev.Event, error)
	Close() error
}

// Handler is called synchronously for every dispatched event. Returning a
// non-nil error ends Run.
type Handler func(Event) error

type delta struct {
	dx, dy int
}

var directions = map[evdev.Code]delta{
	evdev.KeyUp:    {0, -1},
	evdev.KeyDown:  {0, 1},
	evdev.KeyLeft:  {-1, 0},
	evdev.KeyRight: {1, 0},
}

// Controller tracks the cursor driven by a joystick.
// It is not safe for concurrent use.
type Controller struct {
	src    Source
	name   string
	mode   MovementMode
	step   stepFunc
	x, y   int
	logger *log.Logger
}

type options struct {
	logger *log.Logger
	grab   bool
}

// Option configures a Controller.
type Option func(*options)

// WithLogger sets the logger used by the controller.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithGrab grabs the input device exclusively when opened with Open.
func WithGrab(grab bool) Option {
	return func(o *options) {
		o.grab = grab
	}
}

// Open opens the joystick input device at path.
func Open(path string, mode MovementMode, opts ...Option) (*Controller, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := mode.step(); err != nil {
		return nil, err
	}

	dev, err := evdev.Open(path, o.grab)
	if err != nil {
		return nil, err
	}

	c, err := New(dev, mode, opts...)
	if err != nil {
		dev.Close()
		return nil, err
	}
	c.name = path
	c.logger.Debug("Opened joystick",
		log.String("device", path),
		log.String("name", dev.Name()),
		log.String("mode", mode.String()))
	return c, nil
}

// New creates a controller reading key events from src. The cursor starts
// at (0, 0).
func New(src Source, mode MovementMode, opts ...Option) (*Controller, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewWithConfig(log.DefaultConfig())
	}

	step, err := mode.step()
	if err != nil {
		return nil, err
	}

	return &Controller{
		src:    src,
		name:   "joystick",
		mode:   mode,
		step:   step,
		logger: o.logger,
	}, nil
}

// Position returns the current cursor position.
func (c *Controller) Position() (x, y int) {
	return c.x, c.y
}

// Mode returns the movement mode.
func (c *Controller) Mode() MovementMode {
	return c.mode
}

// Close closes the underlying source.
func (c *Controller) Close() error {
	return c.src.Close()
}

// Run reads input events and dispatches Move and Enter events to handler
// until one of the following happens:
//   - ctx is cancelled: the source is closed to unblock the pending read and
//     ctx.Err() is returned.
//   - handler returns an error: ErrStop yields nil, any other error is
//     returned as is.
//   - reading fails: the error has kind device.ErrRead.
//
// A saturated press in Clamp mode does not change the cursor and dispatches
// nothing.
func (c *Controller) Run(ctx context.Context, handler Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() {
		_ = c.src.Close()
	})
	defer stop()

	for {
		events, err := c.src.ReadEvents()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if !errors.Is(err, device.ErrRead) {
				err = device.Wrap("read", c.name, device.ErrRead, err)
			}
			c.logger.Error("Reading joystick events failed", log.Err(err))
			return err
		}

		for _, raw := range events {
			ev, ok := c.next(raw)
			if !ok {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			c.commit(ev)
			if err := handler(ev); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
		}
	}
}

// next returns the semantic event a raw event produces, if any, without
// moving the cursor.
func (c *Controller) next(raw evdev.Event) (Event, bool) {
	if !raw.IsKeyPress() {
		return nil, false
	}

	if raw.Code == evdev.KeyEnter {
		return Enter{X: c.x, Y: c.y}, true
	}

	d, ok := directions[raw.Code]
	if !ok {
		return nil, false
	}

	x, y := c.step(c.x, d.dx), c.step(c.y, d.dy)
	if x == c.x && y == c.y {
		return nil, false
	}
	return Move{X: x, Y: y}, true
}

// commit applies an event returned by next to the cursor.
func (c *Controller) commit(ev Event) {
	switch ev := ev.(type) {
	case Move:
		c.x, c.y = ev.X, ev.Y
		c.logger.Debug("Joystick move", log.Int("x", ev.X), log.Int("y", ev.Y))
	case Enter:
		c.logger.Debug("Joystick enter", log.Int("x", ev.X), log.Int("y", ev.Y))
	}
}
