// Package texture provides image decoding for GPU textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
)

// Decode decodes image data into RGBA. TGA is selected by file extension
// since it has no magic number; everything else is sniffed by the image
// package (PNG, JPEG, GIF, BMP).
func Decode(name string, data []byte) (*image.RGBA, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image.Image to *image.RGBA with its origin at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Placeholder returns the 2x2 image bound before the atlas is available.
func Placeholder() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	light := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	dark := color.RGBA{R: 192, G: 192, B: 192, A: 255}
	img.SetRGBA(0, 0, light)
	img.SetRGBA(1, 0, dark)
	img.SetRGBA(0, 1, dark)
	img.SetRGBA(1, 1, light)
	return img
}
