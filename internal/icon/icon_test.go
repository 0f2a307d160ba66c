package icon

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16" width="16" height="16">
  <rect x="0" y="0" width="16" height="16" fill="#ff0000"/>
</svg>`

const leftHalf = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 8 8" width="8" height="8">
  <rect x="0" y="0" width="4" height="8" fill="#0000ff"/>
</svg>`

func TestRasterize(t *testing.T) {
	img, err := Rasterize(strings.NewReader(redSquare))
	assert.NoError(t, err)
	assert.Equal(t, Size, img.Bounds().Dx())
	assert.Equal(t, Size, img.Bounds().Dy())

	c := img.RGBAAt(3, 4)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, c)
}

func TestRasterizeHalf(t *testing.T) {
	img, err := Rasterize(strings.NewReader(leftHalf))
	assert.NoError(t, err)

	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, img.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(6, 6))
}

func TestRasterizeInvalid(t *testing.T) {
	_, err := Rasterize(strings.NewReader("<svg"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.svg")
	assert.NoError(t, os.WriteFile(path, []byte(redSquare), 0o600))

	img, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(0, 0))

	_, err = Load(filepath.Join(t.TempDir(), "missing.svg"))
	assert.Error(t, err)
}
