package inkwell

import (
	"github.com/tsawler/inkwell/core"
	"github.com/tsawler/inkwell/render"
)

// DecodeOptions holds configuration for the decode pipeline.
type DecodeOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Layer visibility for compositing; nil means honor per-layer
	// visibility with nothing explicitly hidden.
	overlay render.Overlay

	// Discovery bounds
	sizeCeiling int
	lookback    int

	// Decoder tuning
	rleParams  core.RLEParams
	colorTable core.ColorTable

	// Page geometry; 0,0 means follow the detected format variant.
	width  int
	height int

	// Rendering
	scale float64

	// Page-level parallelism; <=0 means one worker per CPU.
	concurrency int
}

// defaultOptions returns the default decode options.
func defaultOptions() DecodeOptions {
	return DecodeOptions{
		pages:       nil, // nil means all pages
		overlay:     nil,
		sizeCeiling: 0, // 0 means the reader default
		lookback:    0,
		rleParams:   core.DefaultRLEParams(),
		colorTable:  core.DefaultColorTable(),
		scale:       1,
		concurrency: 0,
	}
}

// clone creates a deep copy of DecodeOptions.
func (o DecodeOptions) clone() DecodeOptions {
	newOpts := o

	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	if o.overlay != nil {
		newOpts.overlay = make(render.Overlay, len(o.overlay))
		for k, v := range o.overlay {
			newOpts.overlay[k] = v
		}
	}
	if o.colorTable != nil {
		newOpts.colorTable = make(core.ColorTable, len(o.colorTable))
		for k, v := range o.colorTable {
			newOpts.colorTable[k] = v
		}
	}
	newOpts.rleParams.Continuations = append([]byte(nil), o.rleParams.Continuations...)

	return newOpts
}
