package model

import (
	"github.com/tsawler/inkwell/format"
)

// Document represents a decoded .note file: an ordered sequence of pages.
// Decode is total, so a Document always exists, possibly holding only
// blank diagnostic pages.
type Document struct {
	Format format.Info
	Pages  []*Page
	// HeaderMetadata is the raw structured-metadata block carried by
	// legacy v2.0+ headers, when present.
	HeaderMetadata []byte
}

// NewDocument creates an empty document for the detected format.
func NewDocument(info format.Info) *Document {
	return &Document{
		Format: info,
		Pages:  make([]*Page, 0),
	}
}

// AddPage appends a page. Pages without a number are given the next
// 1-indexed position; pages decoded from an explicit selection keep the
// number they carried in the source file.
func (d *Document) AddPage(page *Page) {
	if page.Number == 0 {
		page.Number = len(d.Pages) + 1
	}
	d.Pages = append(d.Pages, page)
}

// GetPage returns the page carrying the given 1-indexed number, or nil
// when the document does not hold it.
func (d *Document) GetPage(number int) *Page {
	for _, p := range d.Pages {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// HasInk reports whether any page carries ink.
func (d *Document) HasInk() bool {
	for _, p := range d.Pages {
		if p.HasInk() {
			return true
		}
	}
	return false
}
