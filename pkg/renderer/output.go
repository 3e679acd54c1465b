package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"
)

// Format selects the encoding of a rendered image
type Format string

const (
	FormatPNG Format = "png"
	FormatPPM Format = "ppm"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatPPM:
		return FormatPPM, nil
	default:
		return "", fmt.Errorf("unknown image format %q (want png or ppm)", name)
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return WritePNG(w, img)
	case FormatPPM:
		return EncodePPM(w, img)
	default:
		return fmt.Errorf("unknown image format %q", format)
	}
}

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// EncodePPM writes img as a plain (P3) PPM, one "r g b" triple per line,
// rows from top to bottom
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			fmt.Fprintf(bw, "%d %d %d\n", r>>8, g>>8, b>>8)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

// SaveImage writes img to filename in the given format
func SaveImage(filename string, img image.Image, format Format) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
