package model

import (
	"testing"

	"github.com/tsawler/inkwell/core"
	"github.com/tsawler/inkwell/format"
)

func TestDocument_AddGetPage(t *testing.T) {
	doc := NewDocument(format.Info{Variant: format.Modern, Version: "20230015"})
	if doc.PageCount() != 0 {
		t.Fatalf("new document has %d pages", doc.PageCount())
	}

	doc.AddPage(&Page{Width: 1404, Height: 1872})
	doc.AddPage(&Page{Width: 1404, Height: 1872})

	if doc.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", doc.PageCount())
	}
	if p := doc.GetPage(1); p == nil || p.Number != 1 {
		t.Errorf("GetPage(1) = %+v, want page number 1", p)
	}
	if p := doc.GetPage(2); p == nil || p.Number != 2 {
		t.Errorf("GetPage(2) = %+v, want page number 2", p)
	}
	if doc.GetPage(0) != nil || doc.GetPage(3) != nil {
		t.Error("out-of-range GetPage must return nil")
	}
}

func TestDocument_KeepsExplicitPageNumbers(t *testing.T) {
	doc := NewDocument(format.Info{})
	doc.AddPage(&Page{Number: 3})

	if p := doc.GetPage(3); p == nil {
		t.Fatal("GetPage(3) = nil, want the selected page")
	}
	if doc.GetPage(1) != nil {
		t.Error("GetPage(1) found a page the document does not hold")
	}
}

func TestDocument_HasInk(t *testing.T) {
	doc := NewDocument(format.Info{})
	blank := &Page{Width: 4, Height: 4, Raster: core.NewBitmap(4, 4)}
	doc.AddPage(blank)
	if doc.HasInk() {
		t.Error("all-white document reports ink")
	}

	inked := &Page{Width: 4, Height: 4, Raster: core.NewBitmap(4, 4)}
	inked.Raster.Set(0, 0, 0)
	doc.AddPage(inked)
	if !doc.HasInk() {
		t.Error("document with ink not detected")
	}
}

func TestPage_Layer(t *testing.T) {
	main := core.NewBitmap(2, 2)
	p := &Page{
		Width:  2,
		Height: 2,
		Layers: map[core.LayerType]*core.Bitmap{core.MainLayer: main},
	}
	if p.Layer(core.MainLayer) != main {
		t.Error("Layer(MainLayer) did not return the stored plane")
	}
	if p.Layer(core.BGLayer) != nil {
		t.Error("missing layer must be nil")
	}
	if p.HasInk() {
		t.Error("page without raster reports ink")
	}
}
