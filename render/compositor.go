package render

import "github.com/tsawler/inkwell/core"

// Visibility is the per-layer policy applied when flattening a page.
type Visibility int

const (
	// Default keeps the layer's normal visibility.
	Default Visibility = iota
	// Visible forces the layer into the composite.
	Visible
	// Invisible hides the layer - unless every layer is Invisible, which
	// is the export-everything mode and includes them all.
	Invisible
)

// String returns the policy name.
func (v Visibility) String() string {
	switch v {
	case Visible:
		return "VISIBLE"
	case Invisible:
		return "INVISIBLE"
	default:
		return "DEFAULT"
	}
}

// Overlay maps each layer type to its visibility policy. Missing entries
// resolve to Default.
type Overlay map[core.LayerType]Visibility

// BuildOverlay constructs an Overlay from per-layer policies in
// composition order.
func BuildOverlay(background, main, layer1, layer2, layer3 Visibility) Overlay {
	return Overlay{
		core.BGLayer:   background,
		core.MainLayer: main,
		core.Layer1:    layer1,
		core.Layer2:    layer2,
		core.Layer3:    layer3,
	}
}

// ExportEverything returns the overlay that includes all layers regardless
// of their on-device visibility, used to recover ink from hidden layers.
func ExportEverything() Overlay {
	return BuildOverlay(Invisible, Invisible, Invisible, Invisible, Invisible)
}

// exportAll reports whether the overlay is globally invisible, the
// export-everything mode.
func (o Overlay) exportAll() bool {
	if len(o) == 0 {
		return false
	}
	for _, t := range core.CompositionOrder {
		if o[t] != Invisible {
			return false
		}
	}
	return true
}

// includes resolves whether a layer takes part in the composite.
func (o Overlay) includes(t core.LayerType) bool {
	if o.exportAll() {
		return true
	}
	return o[t] != Invisible
}

// inkThreshold separates opaque ink from transparent background: source
// pixels at or above it leave the canvas untouched.
const inkThreshold = 240

// Flatten composites a page's decoded layers back-to-front onto a white
// width×height canvas. The output dimensions always equal the requested
// page dimensions, no matter how many layers were supplied (including
// none). Layers whose dimensions disagree with the page are composited
// over the overlapping prefix only.
func Flatten(layers map[core.LayerType]*core.Bitmap, width, height int, overlay Overlay) *core.Bitmap {
	canvas := core.NewBitmap(width, height)

	for _, t := range core.CompositionOrder {
		src := layers[t]
		if src == nil || !overlay.includes(t) {
			continue
		}
		pix := src.Pix
		if t == core.BGLayer {
			pix = whitened(pix)
		}
		n := len(pix)
		if n > len(canvas.Pix) {
			n = len(canvas.Pix)
		}
		for i := 0; i < n; i++ {
			if pix[i] < inkThreshold {
				canvas.Pix[i] = pix[i]
			}
		}
	}
	return canvas
}

// whitened returns a copy of the background plane with its near-white
// region forced to pure white, so background scan noise cannot bleed into
// the composite.
func whitened(pix []byte) []byte {
	out := make([]byte, len(pix))
	for i, v := range pix {
		if v >= inkThreshold {
			out[i] = core.White
		} else {
			out[i] = v
		}
	}
	return out
}
