package core

import "strings"

// LayerType identifies one of the five raster planes a Supernote page can
// carry. The declaration order is the composition order, background first.
type LayerType int

const (
	// BGLayer is the background plane (templates, imported scans).
	BGLayer LayerType = iota
	// MainLayer is the primary ink plane.
	MainLayer
	// Layer1 is the first auxiliary ink plane.
	Layer1
	// Layer2 is the second auxiliary ink plane.
	Layer2
	// Layer3 is the third auxiliary ink plane.
	Layer3
)

// CompositionOrder lists all layer types back-to-front, the order in which
// they are flattened onto a page.
var CompositionOrder = [...]LayerType{BGLayer, MainLayer, Layer1, Layer2, Layer3}

// String returns the on-disk ASCII name of the layer type.
func (t LayerType) String() string {
	switch t {
	case BGLayer:
		return "BGLAYER"
	case MainLayer:
		return "MAINLAYER"
	case Layer1:
		return "LAYER1"
	case Layer2:
		return "LAYER2"
	case Layer3:
		return "LAYER3"
	default:
		return "UNKNOWN"
	}
}

// ParseLayerType maps an exact on-disk name to a LayerType.
func ParseLayerType(s string) (LayerType, bool) {
	switch s {
	case "BGLAYER":
		return BGLayer, true
	case "MAINLAYER":
		return MainLayer, true
	case "LAYER1":
		return Layer1, true
	case "LAYER2":
		return Layer2, true
	case "LAYER3":
		return Layer3, true
	}
	return MainLayer, false
}

// DetectLayerType recognizes a layer type embedded in a longer identifier,
// such as the user-visible names "Page2_MAINLAYER" or "PAGE1/BGLAYER".
// Auxiliary layers are checked before MAINLAYER so that names like
// "MAINLAYER1" resolve to the more specific type.
func DetectLayerType(name string) (LayerType, bool) {
	upper := strings.ToUpper(name)
	for _, t := range [...]LayerType{BGLayer, Layer1, Layer2, Layer3, MainLayer} {
		if strings.Contains(upper, t.String()) {
			return t, true
		}
	}
	return MainLayer, false
}
