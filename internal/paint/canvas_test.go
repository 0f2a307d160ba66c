package paint

import (
	"errors"
	"image/color"
	"testing"

	"github.com/fkcurrie/sensehat-golang/pkg/joystick"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type pixel struct {
	x, y    int
	r, g, b uint8
}

// fakeMatrix records the pixels of the current frame.
type fakeMatrix struct {
	frame  map[[2]int][3]uint8
	clears int
	writes []pixel
	err    error
}

func newFakeMatrix() *fakeMatrix {
	return &fakeMatrix{frame: map[[2]int][3]uint8{}}
}

func (m *fakeMatrix) Clear() error {
	if m.err != nil {
		return m.err
	}
	m.clears++
	m.frame = map[[2]int][3]uint8{}
	return nil
}

func (m *fakeMatrix) SetPixel(x, y int, r, g, b uint8) error {
	if m.err != nil {
		return m.err
	}
	m.writes = append(m.writes, pixel{x, y, r, g, b})
	if r == 0 && g == 0 && b == 0 {
		delete(m.frame, [2]int{x, y})
		return nil
	}
	m.frame[[2]int{x, y}] = [3]uint8{r, g, b}
	return nil
}

func (m *fakeMatrix) at(x, y int) [3]uint8 {
	return m.frame[[2]int{x, y}]
}

var (
	green = [3]uint8{0, 255, 0}
	blue  = [3]uint8{0, 0, 255}
	black = [3]uint8{}
)

func TestDrawShowsCursor(t *testing.T) {
	m := newFakeMatrix()
	c := New(m, WithLogger(log.NewTestLogger(t)))

	assert.NoError(t, c.Draw(0, 0))
	assert.Equal(t, 1, m.clears)
	assert.Equal(t, 1, len(m.frame))
	assert.Equal(t, blue, m.at(0, 0))
}

func TestPaintAndMove(t *testing.T) {
	m := newFakeMatrix()
	c := New(m, WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, c.Draw(0, 0))

	assert.NoError(t, c.Handle(joystick.Enter{X: 0, Y: 0}))
	assert.True(t, c.Painted(0, 0))
	assert.Equal(t, green, m.at(0, 0))

	assert.NoError(t, c.Handle(joystick.Move{X: 1, Y: 0}))
	assert.Equal(t, green, m.at(0, 0))
	assert.Equal(t, blue, m.at(1, 0))
	assert.Equal(t, 2, len(m.frame))

	assert.NoError(t, c.Handle(joystick.Move{X: 1, Y: 1}))
	assert.Equal(t, black, m.at(1, 0))
	assert.Equal(t, blue, m.at(1, 1))
}

func TestEnterToggles(t *testing.T) {
	m := newFakeMatrix()
	c := New(m, WithLogger(log.NewTestLogger(t)))

	assert.NoError(t, c.Handle(joystick.Enter{X: 7, Y: 3}))
	assert.True(t, c.Painted(7, 3))
	assert.NoError(t, c.Handle(joystick.Enter{X: 7, Y: 3}))
	assert.False(t, c.Painted(7, 3))
	assert.Equal(t, black, m.at(7, 3))

	last := m.writes[len(m.writes)-1]
	assert.Equal(t, pixel{7, 3, 0, 0, 0}, last)
}

func TestCustomColors(t *testing.T) {
	m := newFakeMatrix()
	c := New(m,
		WithLogger(log.NewTestLogger(t)),
		WithColors(colorRGBA(255, 0, 0), colorRGBA(255, 255, 255)),
	)

	assert.NoError(t, c.Handle(joystick.Enter{X: 2, Y: 2}))
	assert.NoError(t, c.Handle(joystick.Move{X: 3, Y: 2}))
	assert.Equal(t, [3]uint8{255, 0, 0}, m.at(2, 2))
	assert.Equal(t, [3]uint8{255, 255, 255}, m.at(3, 2))
}

func TestMatrixErrors(t *testing.T) {
	m := newFakeMatrix()
	m.err = errors.New("write failed")
	c := New(m, WithLogger(log.NewTestLogger(t)))

	assert.Error(t, c.Draw(0, 0))
	assert.Error(t, c.Handle(joystick.Move{X: 1, Y: 0}))
	assert.Error(t, c.Handle(joystick.Enter{X: 1, Y: 0}))
}

func colorRGBA(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
