package core

import "testing"

func TestNewBitmap(t *testing.T) {
	bm := NewBitmap(4, 3)
	if bm.Width != 4 || bm.Height != 3 {
		t.Errorf("dimensions = %dx%d, want 4x3", bm.Width, bm.Height)
	}
	if len(bm.Pix) != 12 {
		t.Fatalf("Pix length = %d, want 12", len(bm.Pix))
	}
	for i, v := range bm.Pix {
		if v != White {
			t.Fatalf("pixel %d = %d, want white", i, v)
		}
	}
}

func TestNewBitmap_ClampsNegative(t *testing.T) {
	bm := NewBitmap(-1, 5)
	if bm.Width != 0 || len(bm.Pix) != 0 {
		t.Errorf("negative width not clamped: %dx%d, %d pixels", bm.Width, bm.Height, len(bm.Pix))
	}
}

func TestBitmap_AtSet(t *testing.T) {
	bm := NewBitmap(3, 2)
	bm.Set(2, 1, 7)
	if got := bm.At(2, 1); got != 7 {
		t.Errorf("At(2,1) = %d, want 7", got)
	}
	if got := bm.At(3, 0); got != White {
		t.Errorf("out-of-bounds At = %d, want white", got)
	}
	bm.Set(-1, 0, 9) // ignored
	bm.Set(0, 2, 9)  // ignored
	if bm.HasInk() != true {
		t.Error("HasInk() = false after setting a dark pixel")
	}
}

func TestBitmap_Clone(t *testing.T) {
	bm := NewBitmap(2, 2)
	bm.Set(0, 0, 0)
	cp := bm.Clone()
	cp.Set(1, 1, 0)
	if bm.At(1, 1) != White {
		t.Error("mutating the clone changed the original")
	}
	if cp.At(0, 0) != 0 {
		t.Error("clone lost pixel data")
	}
}

func TestBitmap_HasInk(t *testing.T) {
	bm := NewBitmap(2, 2)
	if bm.HasInk() {
		t.Error("fresh bitmap reports ink")
	}
	bm.Set(1, 0, 254)
	if !bm.HasInk() {
		t.Error("near-white pixel not reported as ink")
	}
}
