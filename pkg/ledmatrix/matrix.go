// Package ledmatrix drives the 8x8 RGB LED matrix of the Sense HAT through
// its raw framebuffer device.
//
// The framebuffer is 128 bytes: 8 rows of 8 pixels, 2 bytes per pixel,
// RGB565 little-endian, origin at the top-left. There is no software frame
// cache: every write is visible on the display as soon as it returns.
package ledmatrix

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"unsafe"

	"github.com/fkcurrie/sensehat-golang/pkg/device"
	"github.com/retroenv/retrogolib/log"
)

const (
	// Width and Height of the LED matrix in pixels
	Width  = 8
	Height = 8
	// BytesPerPixel of the RGB565 framebuffer
	BytesPerPixel = 2
	// FrameSize is the size of the whole framebuffer in bytes
	FrameSize = Width * Height * BytesPerPixel

	// fbioGetVScreenInfo is FBIOGET_VSCREENINFO from linux/fb.h
	fbioGetVScreenInfo = 0x4600
)

// fbVarScreenInfo mirrors struct fb_var_screeninfo.
type fbVarScreenInfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp [3]uint32
	NonStd, Activate         uint32
	HeightMM, WidthMM        uint32
	AccelFlags               uint32
	Timing                   [11]uint32
	Reserved                 [4]uint32
}

// Matrix represents an open LED matrix framebuffer.
// It is not safe for concurrent use.
type Matrix struct {
	path   string
	fb     *os.File
	logger *log.Logger
}

// Option configures a Matrix.
type Option func(*Matrix)

// WithLogger sets the logger used by the matrix.
func WithLogger(logger *log.Logger) Option {
	return func(m *Matrix) {
		m.logger = logger
	}
}

// Open opens the framebuffer device at path for reading and writing.
//
// A character device must report an 8x8 geometry at 16 bits per pixel, any
// other file must hold at least FrameSize bytes. Failures are *device.Error
// values of kind ErrNotFound, ErrPermission or ErrFormat.
func Open(path string, opts ...Option) (*Matrix, error) {
	m := &Matrix{path: path}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.NewWithConfig(log.DefaultConfig())
	}

	fb, err := device.OpenFile(path, os.O_RDWR)
	if err != nil {
		return nil, err
	}

	if err := checkFormat(fb); err != nil {
		fb.Close()
		return nil, device.Wrap("open", path, device.ErrFormat, err)
	}

	m.fb = fb
	m.logger.Debug("Opened LED matrix", log.String("device", path))
	return m, nil
}

func checkFormat(fb *os.File) error {
	isChar, err := device.IsCharDevice(fb)
	if err != nil {
		return err
	}

	if isChar {
		var info fbVarScreenInfo
		if err := device.IoctlPtr(fb, fbioGetVScreenInfo, unsafe.Pointer(&info)); err != nil {
			return fmt.Errorf("not a framebuffer: %w", err)
		}
		if info.XRes != Width || info.YRes != Height || info.BitsPerPixel != 8*BytesPerPixel {
			return fmt.Errorf("geometry %dx%d at %d bpp, want %dx%d at %d bpp",
				info.XRes, info.YRes, info.BitsPerPixel, Width, Height, 8*BytesPerPixel)
		}
		return nil
	}

	stat, err := fb.Stat()
	if err != nil {
		return err
	}
	if !stat.Mode().IsRegular() {
		return fmt.Errorf("not a framebuffer: mode %v", stat.Mode())
	}
	if stat.Size() < FrameSize {
		return fmt.Errorf("buffer of %d bytes, want %d", stat.Size(), FrameSize)
	}
	return nil
}

// Path returns the device path the matrix was opened with.
func (m *Matrix) Path() string {
	return m.path
}

// Close closes the framebuffer device.
func (m *Matrix) Close() error {
	if m.fb == nil {
		return nil
	}
	err := m.fb.Close()
	m.fb = nil
	m.logger.Debug("Closed LED matrix", log.String("device", m.path))
	return err
}

// SetPixel sets the pixel at (x, y) to the given color, truncated to RGB565.
// Coordinates outside [0,7] are rejected with ErrOutOfRange and nothing is
// written.
func (m *Matrix) SetPixel(x, y int, r, g, b uint8) error {
	off, err := m.offset("write", x, y)
	if err != nil {
		return err
	}
	buf := RGB565(r, g, b).Bytes()
	return m.writeAt(buf[:], off)
}

// SetPixelColor sets the pixel at (x, y) to c.
func (m *Matrix) SetPixelColor(x, y int, c color.Color) error {
	off, err := m.offset("write", x, y)
	if err != nil {
		return err
	}
	buf := Model565.Convert(c).(Color565).Bytes()
	return m.writeAt(buf[:], off)
}

// GetPixel reads back the color stored at (x, y).
func (m *Matrix) GetPixel(x, y int) (Color565, error) {
	off, err := m.offset("read", x, y)
	if err != nil {
		return 0, err
	}
	var buf [BytesPerPixel]byte
	if _, err := m.fb.ReadAt(buf[:], off); err != nil {
		return 0, device.Wrap("read", m.path, device.ErrIO, err)
	}
	return decode565(buf[:]), nil
}

// Clear turns all LEDs off with a single write of a black frame.
func (m *Matrix) Clear() error {
	var frame [FrameSize]byte
	return m.writeAt(frame[:], 0)
}

// DrawImage writes the top-left 8x8 region of img as one full frame.
// Pixels not covered by the image bounds are black.
func (m *Matrix) DrawImage(img image.Image) error {
	var frame [FrameSize]byte
	bounds := img.Bounds()
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			p := image.Pt(bounds.Min.X+x, bounds.Min.Y+y)
			if !p.In(bounds) {
				continue
			}
			buf := Model565.Convert(img.At(p.X, p.Y)).(Color565).Bytes()
			copy(frame[pixelOffset(x, y):], buf[:])
		}
	}
	return m.writeAt(frame[:], 0)
}

func (m *Matrix) offset(op string, x, y int) (int64, error) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0, device.Wrap(op, m.path, device.ErrOutOfRange, fmt.Errorf("(%d, %d)", x, y))
	}
	return int64(pixelOffset(x, y)), nil
}

func (m *Matrix) writeAt(p []byte, off int64) error {
	n, err := m.fb.WriteAt(p, off)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return device.Wrap("write", m.path, device.ErrIO, err)
	}
	return nil
}

func pixelOffset(x, y int) int {
	return (y*Width + x) * BytesPerPixel
}
