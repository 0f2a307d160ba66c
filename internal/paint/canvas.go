// Package paint implements a joystick driven LED painter: the cursor is
// moved with the joystick and Enter toggles the LED under it.
package paint

import (
	"image/color"

	"github.com/fkcurrie/sensehat-golang/internal/types"
	"github.com/fkcurrie/sensehat-golang/pkg/joystick"
	"github.com/retroenv/retrogolib/log"
)

const size = joystick.GridSize

// Canvas keeps the painted cells and redraws them on the matrix.
type Canvas struct {
	matrix  types.Matrix
	painted [size][size]bool
	x, y    int
	ink     color.RGBA
	cursor  color.RGBA
	logger  *log.Logger
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithColors sets the colors of painted cells and of the cursor.
func WithColors(ink, cursor color.RGBA) Option {
	return func(c *Canvas) {
		c.ink = ink
		c.cursor = cursor
	}
}

// WithLogger sets the logger used by the canvas.
func WithLogger(logger *log.Logger) Option {
	return func(c *Canvas) {
		c.logger = logger
	}
}

// New returns a canvas drawing green cells and a blue cursor.
func New(matrix types.Matrix, opts ...Option) *Canvas {
	c := &Canvas{
		matrix: matrix,
		ink:    color.RGBA{G: 255, A: 255},
		cursor: color.RGBA{B: 255, A: 255},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.NewWithConfig(log.DefaultConfig())
	}
	return c
}

// Painted reports whether the cell at (x, y) is painted.
func (c *Canvas) Painted(x, y int) bool {
	return c.painted[y][x]
}

// Draw renders the whole canvas with the cursor at (x, y).
func (c *Canvas) Draw(x, y int) error {
	c.x, c.y = x, y
	if err := c.matrix.Clear(); err != nil {
		return err
	}

	for py := range c.painted {
		for px, on := range c.painted[py] {
			if !on {
				continue
			}
			if err := c.set(px, py, c.ink); err != nil {
				return err
			}
		}
	}
	return c.set(x, y, c.cursor)
}

// Handle is a joystick.Handler: moves redraw the canvas, Enter toggles the
// cell under the cursor.
func (c *Canvas) Handle(ev joystick.Event) error {
	switch ev := ev.(type) {
	case joystick.Move:
		return c.Draw(ev.X, ev.Y)

	case joystick.Enter:
		c.x, c.y = ev.X, ev.Y
		on := !c.painted[ev.Y][ev.X]
		c.painted[ev.Y][ev.X] = on
		c.logger.Debug("Toggled cell",
			log.Int("x", ev.X), log.Int("y", ev.Y), log.String("painted", boolString(on)))
		if on {
			return c.set(ev.X, ev.Y, c.ink)
		}
		return c.set(ev.X, ev.Y, color.RGBA{})
	}
	return nil
}

func (c *Canvas) set(x, y int, col color.RGBA) error {
	return c.matrix.SetPixel(x, y, col.R, col.G, col.B)
}

func boolString(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
