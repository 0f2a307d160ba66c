// Package icon rasterizes SVG icons to the size of the LED matrix.
package icon

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Size is the edge length of a rasterized icon in pixels.
const Size = 8

// Rasterize renders the SVG read from r, scaling its view box to Size x Size.
func Rasterize(r io.Reader) (*image.RGBA, error) {
	svg, err := oksvg.ReadIconStream(r, oksvg.StrictErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	svg.SetTarget(0, 0, Size, Size)

	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	scanner := rasterx.NewScannerGV(Size, Size, img, img.Bounds())
	raster := rasterx.NewDasher(Size, Size, scanner)
	svg.Draw(raster, 1.0)

	return img, nil
}

// Load rasterizes the SVG file at path.
func Load(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Rasterize(file)
}
