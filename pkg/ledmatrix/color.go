package ledmatrix

import (
	"encoding/binary"
	"image/color"
)

// Color model RGB565

// Color565 is a packed 16 bit color, 5 bits red, 6 bits green, 5 bits blue,
// red in the most significant bits.
type Color565 uint16

const (
	rbits = 5
	gbits = 6
	bbits = 5

	rshift = gbits + bbits
	gshift = bbits

	rmask = (1<<rbits - 1) << rshift
	gmask = (1<<gbits - 1) << gshift
	bmask = 1<<bbits - 1
)

// RGB565 packs 8 bit channels by truncating them to 5/6/5 bits. The low bits
// are dropped, not rounded.
func RGB565(r, g, b uint8) Color565 {
	return Color565(uint16(r>>(8-rbits))<<rshift | uint16(g>>(8-gbits))<<gshift | uint16(b>>(8-bbits)))
}

// Bytes returns the color in the byte order of the framebuffer (little-endian).
func (c Color565) Bytes() [2]byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(c))
	return buf
}

// RGB expands the channels back to 8 bits, replicating the high bits into
// the low bits so full intensity maps to 255.
func (c Color565) RGB() (r, g, b uint8) {
	r5 := uint8((c & rmask) >> rshift)
	g6 := uint8((c & gmask) >> gshift)
	b5 := uint8(c & bmask)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// RGBA implements color.Color.
func (c Color565) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xffff
}

// Model565 converts any color to a Color565.
var Model565 color.Model = color.ModelFunc(model565)

func model565(c color.Color) color.Color {
	if c565, ok := c.(Color565); ok {
		return c565
	}
	r, g, b, _ := c.RGBA()
	return RGB565(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func decode565(buf []byte) Color565 {
	return Color565(binary.LittleEndian.Uint16(buf))
}
