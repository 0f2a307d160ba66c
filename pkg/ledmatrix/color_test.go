package ledmatrix

import (
	"image/color"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestRGB565(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    Color565
	}{
		{"black", 0, 0, 0, 0x0000},
		{"white", 255, 255, 255, 0xffff},
		{"red", 255, 0, 0, 0xf800},
		{"green", 0, 255, 0, 0x07e0},
		{"blue", 0, 0, 255, 0x001f},
		{"below first step truncates to zero", 7, 3, 7, 0x0000},
		{"first step", 8, 4, 8, 0x0821},
		{"mixed", 0x12, 0x34, 0x56, 0x11aa},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RGB565(tt.r, tt.g, tt.b))
		})
	}
}

func TestColor565Bytes(t *testing.T) {
	buf := Color565(0xf81f).Bytes()
	assert.Equal(t, byte(0x1f), buf[0])
	assert.Equal(t, byte(0xf8), buf[1])
	assert.Equal(t, Color565(0xf81f), decode565(buf[:]))
}

func TestColor565RGB(t *testing.T) {
	r, g, b := Color565(0xffff).RGB()
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(255), g)
	assert.Equal(t, uint8(255), b)

	r, g, b = RGB565(0x12, 0x34, 0x56).RGB()
	assert.Equal(t, uint8(0x10), r)
	assert.Equal(t, uint8(0x34), g)
	assert.Equal(t, uint8(0x52), b)
}

func TestModel565(t *testing.T) {
	c := Model565.Convert(color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff})
	assert.Equal(t, color.Color(RGB565(0x12, 0x34, 0x56)), c)

	same := Model565.Convert(Color565(0x1234))
	assert.Equal(t, color.Color(Color565(0x1234)), same)

	_, _, _, a := Color565(0).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}
