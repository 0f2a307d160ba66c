package ledmatrix_test

import (
	"fmt"
	"image/color"

	"github.com/fkcurrie/sensehat-golang/pkg/ledmatrix"
)

func Example() {
	matrix, err := ledmatrix.Open("/dev/fb1")
	if err != nil {
		fmt.Printf("Failed to open matrix: %v\n", err)
		return
	}
	defer matrix.Close()

	if err := matrix.Clear(); err != nil {
		fmt.Printf("Failed to clear matrix: %v\n", err)
		return
	}

	// Diagonal from red to blue
	for i := 0; i < ledmatrix.Width; i++ {
		r := uint8(255 - i*32)
		b := uint8(i * 32)
		if err := matrix.SetPixel(i, i, r, 0, b); err != nil {
			fmt.Printf("Failed to set pixel: %v\n", err)
			return
		}
	}
}

func ExampleRGB565() {
	c := ledmatrix.RGB565(255, 128, 0)
	fmt.Printf("0x%04x %v\n", uint16(c), c.Bytes())
	// Output: 0xfc00 [0 252]
}

func ExampleMatrix_SetPixelColor() {
	matrix, err := ledmatrix.Open("/dev/fb1")
	if err != nil {
		fmt.Printf("Failed to open matrix: %v\n", err)
		return
	}
	defer matrix.Close()

	if err := matrix.SetPixelColor(0, 0, color.RGBA{R: 255, G: 255, A: 255}); err != nil {
		fmt.Printf("Failed to set pixel: %v\n", err)
	}
}
