package editor

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/bmp"
)

// EncodePNG encodes img as PNG, the primary clipboard and file format.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBMP encodes img as BMP. Some X11 clipboard consumers only accept
// image/bmp, so the copy path falls back to this when PNG is rejected.
func EncodeBMP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding bmp: %w", err)
	}
	return buf.Bytes(), nil
}
