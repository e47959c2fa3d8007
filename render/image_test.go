package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/tsawler/inkwell/core"
)

func TestGrayImage(t *testing.T) {
	bm := core.NewBitmap(3, 2)
	bm.Set(1, 0, 42)

	img := GrayImage(bm)
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", img.Bounds())
	}
	if img.GrayAt(1, 0).Y != 42 {
		t.Errorf("pixel = %d, want 42", img.GrayAt(1, 0).Y)
	}

	// The conversion copies pixels.
	img.Pix[0] = 0
	if bm.Pix[0] != core.White {
		t.Error("mutating the image changed the bitmap")
	}
}

func TestScale(t *testing.T) {
	bm := core.NewBitmap(10, 20)
	img := Scale(GrayImage(bm), 2.0)
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 40 {
		t.Errorf("scaled bounds = %v, want 20x40", img.Bounds())
	}

	same := Scale(GrayImage(bm), 1.0)
	if same.Bounds().Dx() != 10 || same.Bounds().Dy() != 20 {
		t.Errorf("identity scale bounds = %v, want 10x20", same.Bounds())
	}

	clamped := Scale(GrayImage(bm), -3)
	if clamped.Bounds().Dx() != 10 {
		t.Errorf("negative factor bounds = %v, want input size", clamped.Bounds())
	}
}

func TestEncodePNG(t *testing.T) {
	bm := core.NewBitmap(8, 8)
	bm.Set(3, 3, 0)

	data, err := EncodePNG(bm, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("decoded bounds = %v, want 8x8", img.Bounds())
	}
}

func TestEncodePNG_Scaled(t *testing.T) {
	bm := core.NewBitmap(8, 8)
	data, err := EncodePNG(bm, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("decoded bounds = %v, want 16x16", img.Bounds())
	}
}
