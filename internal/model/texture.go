package model

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/3Ution-BK/ModelViewer/internal/gfx"
)

// DecodeImage decodes a PNG, JPEG, BMP, TIFF or WebP file.
func DecodeImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not open texture file %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode texture image %s: %w", path, err)
	}
	return img, format, nil
}

// FlipVertical returns an RGBA copy of img with its rows reversed, moving
// the origin from the top-left to the bottom-left corner as OpenGL
// expects.
func FlipVertical(img image.Image) *image.RGBA {
	b := img.Bounds()
	src := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)

	dst := image.NewRGBA(src.Rect)
	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		from := src.Pix[y*src.Stride : y*src.Stride+rowLen]
		to := dst.Pix[(b.Dy()-1-y)*dst.Stride:]
		copy(to[:rowLen], from)
	}
	return dst
}

// LoadTexture decodes the image at path and uploads it flipped.
func LoadTexture(path string) (*gfx.Texture, error) {
	img, _, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return gfx.NewTexture(FlipVertical(img)), nil
}
