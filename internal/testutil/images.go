// Package testutil generates synthetic barcode images for tests.
package testutil

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// NewCode128Image encodes content as a Code 128 barcode of the given size.
func NewCode128Image(content string, width, height int) (image.Image, error) {
	writer := oned.NewCode128Writer()
	matrix, err := writer.Encode(content, gozxing.BarcodeFormat_CODE_128, width, height, nil)
	if err != nil {
		return nil, fmt.Errorf("encode code128: %w", err)
	}
	return matrixToImage(matrix), nil
}

// NewQRImage encodes content as a QR code of the given size.
func NewQRImage(content string, size int) (image.Image, error) {
	writer := qrcode.NewQRCodeWriter()
	matrix, err := writer.Encode(content, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return matrixToImage(matrix), nil
}

// WhiteCanvas returns an opaque white RGBA image.
func WhiteCanvas(width, height int) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return canvas
}

// Paste copies src onto canvas with its top-left corner at (x, y).
func Paste(canvas *image.RGBA, src image.Image, x, y int) {
	r := src.Bounds().Add(image.Pt(x, y).Sub(src.Bounds().Min))
	draw.Draw(canvas, r, src, src.Bounds().Min, draw.Src)
}

func matrixToImage(matrix *gozxing.BitMatrix) *image.Gray {
	w, h := matrix.GetWidth(), matrix.GetHeight()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if matrix.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
