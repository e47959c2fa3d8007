package core

// ColorTable maps RATTA_RLE color command bytes to grayscale intensities.
// Command bytes absent from the table paint white.
type ColorTable map[byte]byte

// DefaultColorTable returns the command-to-intensity mapping recovered from
// binary analysis of captured .note files.
func DefaultColorTable() ColorTable {
	return ColorTable{
		0x61: 0,   // primary black ink
		0x62: 255, // background / white
		0x63: 32,  // dark gray
		0x64: 96,  // medium gray
		0x65: 160, // light gray
		0x66: 0,   // secondary black
		0x67: 48,  // dark accent
		0x68: 192, // light accent
	}
}

// Intensity resolves a command byte, defaulting unknown codes to white.
func (t ColorTable) Intensity(code byte) byte {
	if v, ok := t[code]; ok {
		return v
	}
	return White
}
