// Package inkwell provides a fluent API for decoding Supernote .note files
// into page rasters suitable for OCR pipelines and image export.
//
// Basic usage:
//
//	doc, warnings, err := inkwell.Open("notebook.note").Document()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", inkwell.FormatWarnings(warnings))
//	}
//
// With options:
//
//	images, _, err := inkwell.Open("notebook.note").
//	    Pages(1, 3).
//	    ExportEverything().
//	    WithScale(0.5).
//	    Images()
//
// Decoding is deliberately total: the only hard failure is an empty input
// buffer. Unrecognized signatures, corrupt layer addresses and truncated
// bitmap streams all degrade to warnings beside a best-effort result, so a
// batch OCR job never stops on one damaged notebook.
//
// For advanced use cases, the lower-level reader and core packages are
// also available.
package inkwell

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/inkwell/format"
	"github.com/tsawler/inkwell/reader"
)

// Open prepares an Extractor for a .note file on disk. The file is not
// read until a terminal operation runs.
//
// Example:
//
//	doc, warnings, err := inkwell.Open("notebook.note").Document()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes creates an Extractor over an already-buffered .note file.
// A nil slice is a zero-length buffer: terminal operations report it as
// [core.ErrEmptyInput], the pipeline's only hard failure.
//
// Example:
//
//	doc, warnings, err := inkwell.FromBytes(data).Document()
func FromBytes(data []byte) *Extractor {
	if data == nil {
		data = []byte{}
	}
	return &Extractor{
		data:    data,
		options: defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened reader.Reader.
// This is useful when the caller has parsed the file once and wants to
// render it several ways without re-running discovery.
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// IsNoteFile reports whether the file at path looks like a Supernote
// notebook: the .note extension plus a recognized container signature.
// It reads only the first few bytes.
func IsNoteFile(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".note") {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 32)
	n, _ := f.Read(head)
	return format.Detect(head[:n]).Variant != format.Unknown
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := inkwell.Must(inkwell.Open("notebook.note").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDocument is a helper that wraps a terminal operation returning
// (T, []Warning, error) and panics if the error is non-nil. It discards
// warnings and returns just the value.
//
// Example:
//
//	doc := inkwell.MustDocument(inkwell.Open("notebook.note").Document())
func MustDocument[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
