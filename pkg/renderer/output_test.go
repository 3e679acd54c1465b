package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{12, 34, 56, 255})
	return img
}

func TestEncodePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePPM(&buf, testImage()); err != nil {
		t.Fatalf("EncodePPM failed: %v", err)
	}

	expected := "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n12 34 56\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM output:\n%q\nwant\n%q", buf.String(), expected)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	img := testImage()
	if err := WritePNG(&buf, img); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	r, g, b, _ := decoded.At(1, 1).RGBA()
	if r>>8 != 12 || g>>8 != 34 || b>>8 != 56 {
		t.Errorf("Expected (12,34,56), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"png", FormatPNG, false},
		{"PPM", FormatPPM, false},
		{"jpg", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()

	ppmPath := filepath.Join(dir, "out.ppm")
	if err := SaveImage(ppmPath, testImage(), FormatPPM); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	data, err := os.ReadFile(ppmPath)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("P3\n2 2\n255\n")) {
		t.Errorf("Expected PPM header, got %q", data[:min(len(data), 16)])
	}

	pngPath := filepath.Join(dir, "out.png")
	if err := SaveImage(pngPath, testImage(), FormatPNG); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	if err := SaveImage(filepath.Join(dir, "missing", "out.png"), testImage(), FormatPNG); err == nil {
		t.Error("Expected error writing into a missing directory")
	}
}
