package model

import (
	"github.com/tsawler/inkwell/core"
)

// Page is one decoded notebook page.
type Page struct {
	// Number is the 1-indexed page number, assigned by the owning Document.
	Number int
	Width  int
	Height int

	// Raster is the flattened page, white background with composited ink.
	// It is always present, possibly pure white.
	Raster *core.Bitmap

	// Layers holds the individual decoded planes for advanced composition
	// callers. It may be empty for blank diagnostic pages.
	Layers map[core.LayerType]*core.Bitmap

	Diagnostics Diagnostics
}

// Diagnostics carries per-page observability metadata. It is not part of
// the raster contract: consumers that only want images can ignore it.
type Diagnostics struct {
	// Strategy names the discovery strategy that located this page's
	// layers, empty for diagnostic pages.
	Strategy string
	// LayerRanges describes the byte ranges each decoded layer came from.
	LayerRanges []LayerRange
	// Dropped counts the layer candidates rejected for this page before
	// decode (bad address, oversized claim, out of bounds).
	Dropped int
	// Incomplete is set when at least one layer's byte stream ended
	// mid-pair and decoded partially.
	Incomplete bool
	// Blank marks a diagnostic page emitted without structured parsing
	// (unknown format, or no surviving layers).
	Blank bool
	// HasContent is the content sniff result attached to blank diagnostic
	// pages: true when the raw buffer looks like it holds real note data
	// the parser could not reach.
	HasContent bool
}

// LayerRange records where one decoded layer's compressed payload lived.
type LayerRange struct {
	Type   string
	Name   string
	Offset int64
	Length int
}

// HasInk reports whether the flattened raster carries any non-white pixel.
func (p *Page) HasInk() bool {
	return p.Raster != nil && p.Raster.HasInk()
}

// Layer returns one decoded plane, or nil when the page does not carry it.
func (p *Page) Layer(t core.LayerType) *core.Bitmap {
	return p.Layers[t]
}
