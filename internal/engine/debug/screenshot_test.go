package debug

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/webp"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 250_000_000, time.UTC)
}

func TestNewScreenshotCapture_Format(t *testing.T) {
	if _, err := NewScreenshotCapture("", "shot", "jpg"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestGenerateFilename(t *testing.T) {
	sc, err := NewScreenshotCapture("shots", "objscene", "webp")
	if err != nil {
		t.Fatal(err)
	}
	sc.now = fixedClock

	want := filepath.Join("shots", "objscene_2024-03-09_14-05-07.250.webp")
	if got := sc.GenerateFilename(); got != want {
		t.Errorf("GenerateFilename() = %q, want %q", got, want)
	}
}

func TestCaptureFromPixels_FlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sc, err := NewScreenshotCapture(dir, "shot", "png")
	if err != nil {
		t.Fatal(err)
	}
	sc.now = fixedClock

	// 1x2: bottom row red, top row blue (GL order)
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}

	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b != 0xffff {
		t.Errorf("top pixel = %v, want blue", img.At(0, 0))
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r != 0xffff || b != 0 {
		t.Errorf("bottom pixel = %v, want red", img.At(0, 1))
	}
}

func TestCaptureFromPixels_SizeMismatch(t *testing.T) {
	sc, err := NewScreenshotCapture(t.TempDir(), "shot", "png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestCaptureFromPixels_WebP(t *testing.T) {
	sc, err := NewScreenshotCapture(t.TempDir(), "shot", "webp")
	if err != nil {
		t.Fatal(err)
	}

	pixels := make([]byte, 4*3*4)
	for i := range pixels {
		pixels[i] = 200
	}
	path, err := sc.CaptureFromPixels(pixels, 4, 3)
	if err != nil {
		t.Fatalf("CaptureFromPixels() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := webp.Decode(f)
	if err != nil {
		t.Fatalf("webp.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("decoded size = %v, want 4x3", img.Bounds())
	}
}
