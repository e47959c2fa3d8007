package core

// Grayscale intensity bounds. Ink pixels are dark, blank pixels are white.
const (
	Ink   byte = 0x00
	White byte = 0xFF
)

// Bitmap is a flat 8-bit grayscale raster in row-major order.
// Pix always holds exactly Width*Height bytes.
type Bitmap struct {
	Width  int
	Height int
	Pix    []byte
}

// NewBitmap returns an all-white bitmap of the given dimensions.
// Non-positive dimensions are clamped to zero.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	pix := make([]byte, width*height)
	for i := range pix {
		pix[i] = White
	}
	return &Bitmap{Width: width, Height: height, Pix: pix}
}

// At returns the intensity at (x, y), or White when out of bounds.
func (b *Bitmap) At(x, y int) byte {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return White
	}
	return b.Pix[y*b.Width+x]
}

// Set writes the intensity at (x, y). Out-of-bounds writes are ignored.
func (b *Bitmap) Set(x, y int, v byte) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = v
}

// Clone returns a deep copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	pix := make([]byte, len(b.Pix))
	copy(pix, b.Pix)
	return &Bitmap{Width: b.Width, Height: b.Height, Pix: pix}
}

// HasInk reports whether any pixel is darker than pure white.
func (b *Bitmap) HasInk() bool {
	for _, v := range b.Pix {
		if v < White {
			return true
		}
	}
	return false
}
