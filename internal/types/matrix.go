package types

// Matrix represents an 8x8 LED matrix display
type Matrix interface {
	// Clear turns all pixels off
	Clear() error
	// SetPixel sets a pixel at the given coordinates to the given color
	SetPixel(x, y int, r, g, b uint8) error
}
