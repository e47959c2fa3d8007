package inkwell

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/tsawler/inkwell/core"
	"github.com/tsawler/inkwell/format"
	"github.com/tsawler/inkwell/model"
	"github.com/tsawler/inkwell/reader"
	"github.com/tsawler/inkwell/render"
)

// Device raster dimensions by container variant. Modern devices write
// portrait pages; the original-series files observed in the wild store
// the transposed geometry.
const (
	modernWidth  = 1404
	modernHeight = 1872
	legacyWidth  = 1872
	legacyHeight = 1404
)

// Extractor provides a fluent interface for decoding .note files into
// page rasters. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method
// chaining.
type Extractor struct {
	// Source
	filename string
	data     []byte

	// Reader over the buffered file
	reader       *reader.Reader
	readerOpened bool

	// Configuration
	options DecodeOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		data:         e.data,
		reader:       e.reader,
		readerOpened: e.readerOpened,
		options:      e.options.clone(),
		err:          e.err,
		warnings:     append([]Warning(nil), e.warnings...),
	}
}

// ensureReader buffers the source and runs format detection if that has
// not happened yet.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}

	cfg := reader.DefaultConfig()
	if e.options.sizeCeiling > 0 {
		cfg.SizeCeiling = e.options.sizeCeiling
	}
	if e.options.lookback > 0 {
		cfg.Lookback = e.options.lookback
	}

	var (
		r   *reader.Reader
		err error
	)
	switch {
	case e.data != nil:
		r, err = reader.FromBytesConfig(e.data, cfg)
	case e.filename != "":
		r, err = reader.OpenConfig(e.filename, cfg)
	default:
		return fmt.Errorf("no input specified")
	}
	if err != nil {
		return err
	}
	e.reader = r
	e.readerOpened = true
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to decode (1-indexed). Multiple calls are
// cumulative. Requested pages that do not exist produce a warning and
// are skipped rather than failing the document.
//
// Example:
//
//	doc, warnings, err := inkwell.Open("notebook.note").Pages(1, 3).Document()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to decode (1-indexed, inclusive).
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// WithOverlay sets per-layer visibility for compositing. Layers marked
// Invisible are excluded from the flattened raster unless every layer is
// Invisible, which the device uses to mean "export everything".
//
// Example:
//
//	overlay := render.BuildOverlay(render.Invisible, render.Default,
//	    render.Default, render.Default, render.Default)
//	doc, _, err := inkwell.Open("notebook.note").WithOverlay(overlay).Document()
func (e *Extractor) WithOverlay(overlay render.Overlay) *Extractor {
	newExt := e.clone()
	newExt.options.overlay = overlay
	return newExt
}

// ExportEverything composites all layers regardless of their visibility
// settings.
func (e *Extractor) ExportEverything() *Extractor {
	newExt := e.clone()
	newExt.options.overlay = render.ExportEverything()
	return newExt
}

// WithScale sets the uniform scale factor applied when encoding page
// images. Values at or below zero fall back to 1. Decoded rasters in the
// Document are always native resolution; the factor only affects Images.
func (e *Extractor) WithScale(factor float64) *Extractor {
	newExt := e.clone()
	newExt.options.scale = factor
	return newExt
}

// WithSizeCeiling sets the largest compressed layer size accepted from a
// length prefix. Claims above the ceiling are rejected with a warning
// before any allocation.
func (e *Extractor) WithSizeCeiling(n int) *Extractor {
	newExt := e.clone()
	newExt.options.sizeCeiling = n
	return newExt
}

// WithLookback sets the window, in bytes, searched backwards from a
// bitmap marker for its owning name and type tags.
func (e *Extractor) WithLookback(n int) *Extractor {
	newExt := e.clone()
	newExt.options.lookback = n
	return newExt
}

// WithRLEParams overrides the run-length decoding constants. Useful for
// tuning against firmware revisions whose encoder behaves differently
// from the captured corpus.
func (e *Extractor) WithRLEParams(params core.RLEParams) *Extractor {
	newExt := e.clone()
	newExt.options.rleParams = params
	return newExt
}

// WithColorTable overrides the color-code-to-intensity mapping.
func (e *Extractor) WithColorTable(table core.ColorTable) *Extractor {
	newExt := e.clone()
	newExt.options.colorTable = table
	return newExt
}

// WithDimensions overrides the page geometry instead of inferring it
// from the container variant.
func (e *Extractor) WithDimensions(width, height int) *Extractor {
	newExt := e.clone()
	newExt.options.width = width
	newExt.options.height = height
	return newExt
}

// Concurrency sets the number of pages decoded in parallel. Values at or
// below zero use one worker per CPU.
func (e *Extractor) Concurrency(n int) *Extractor {
	newExt := e.clone()
	newExt.options.concurrency = n
	return newExt
}

// ============================================================================
// Non-terminal inspection methods
// ============================================================================

// Format reports the detected container variant and version without
// decoding any pages.
func (e *Extractor) Format() (format.Info, error) {
	if e.err != nil {
		return format.Info{}, e.err
	}
	if err := e.ensureReader(); err != nil {
		return format.Info{}, err
	}
	return e.reader.FormatInfo(), nil
}

// PageCount returns the number of pages layer discovery finds in the
// file. Unrecognized formats count as a single diagnostic page.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureReader(); err != nil {
		return 0, err
	}
	return e.reader.PageCount(), nil
}

// ============================================================================
// Terminal Operations (execute the decode and return results)
// ============================================================================

// Document decodes the configured pages and returns them as a
// model.Document, together with any warnings gathered along the way.
//
// Decoding is total: after the reader opens, Document never fails. Pages
// that cannot be decoded are replaced with blank diagnostic pages and
// reported as warnings, so one damaged page never takes down its
// siblings.
//
// Example:
//
//	doc, warnings, err := inkwell.Open("notebook.note").Document()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, page := range doc.Pages {
//	    fmt.Printf("page %d has ink: %v\n", page.Number, page.HasInk())
//	}
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, e.warnings, err
	}

	warnings := append([]Warning(nil), e.warnings...)
	info := e.reader.FormatInfo()

	doc := model.NewDocument(info)
	doc.HeaderMetadata = e.reader.HeaderMetadata()

	width, height := e.pageGeometry(info)

	if info.Variant == format.Unknown {
		warnings = append(warnings, Warning{
			Code:    WarnFormatUnrecognized,
			Message: "unrecognized container signature",
		})
		page := blankPage(width, height)
		page.Diagnostics.HasContent = reader.DetectContent(e.reader.Bytes())
		doc.AddPage(page)
		return doc, warnings, nil
	}

	descriptors, rejections := e.reader.Layers()
	byPage := make(map[int][]reader.LayerDescriptor)
	for _, d := range descriptors {
		byPage[d.Page] = append(byPage[d.Page], d)
	}
	dropped := make(map[int]int)
	for _, rej := range rejections {
		warnings = append(warnings, rejectionWarning(rej))
		if rej.Page >= 0 {
			dropped[rej.Page]++
		}
	}

	selected, rangeWarnings := e.selectPages(e.reader.PageCount())
	warnings = append(warnings, rangeWarnings...)

	results := make([]*model.Page, len(selected))
	pageWarnings := make([][]Warning, len(selected))

	decode := func(i int) {
		pageIdx := selected[i]
		page, warns := e.decodePage(pageIdx, byPage[pageIdx], width, height)
		page.Diagnostics.Dropped += dropped[pageIdx]
		results[i] = page
		pageWarnings[i] = warns
	}

	workers := e.options.concurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(selected) {
		workers = len(selected)
	}
	if workers <= 1 {
		for i := range selected {
			decode(i)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					decode(i)
				}
			}()
		}
		for i := range selected {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	for i, page := range results {
		if page.Diagnostics.Blank {
			page.Diagnostics.HasContent = reader.DetectContent(e.reader.Bytes())
		}
		doc.AddPage(page)
		warnings = append(warnings, pageWarnings[i]...)
	}
	return doc, warnings, nil
}

// Images decodes the configured pages and encodes each flattened raster
// as a grayscale PNG, applying the configured scale factor.
//
// Example:
//
//	images, warnings, err := inkwell.Open("notebook.note").WithScale(0.5).Images()
func (e *Extractor) Images() ([][]byte, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}

	images := make([][]byte, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		png, err := render.EncodePNG(page.Raster, e.options.scale)
		if err != nil {
			return nil, warnings, fmt.Errorf("page %d: %w", page.Number, err)
		}
		images = append(images, png)
	}
	return images, warnings, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// decodePage decodes and composites one page in isolation. A panic while
// decoding is downgraded to a blank diagnostic page plus a warning, so
// sibling pages always survive.
func (e *Extractor) decodePage(pageIdx int, descriptors []reader.LayerDescriptor, width, height int) (page *model.Page, warns []Warning) {
	defer func() {
		if r := recover(); r != nil {
			page = blankPage(width, height)
			page.Number = pageIdx + 1
			warns = append(warns, Warning{
				Code:    WarnPageFailed,
				Page:    pageIdx + 1,
				Message: fmt.Sprintf("decode failed: %v", r),
			})
		}
	}()

	page = &model.Page{
		Number: pageIdx + 1,
		Width:  width,
		Height: height,
		Layers: make(map[core.LayerType]*core.Bitmap, len(descriptors)),
	}

	for _, d := range descriptors {
		payload := e.reader.LayerData(d)
		if payload == nil {
			page.Diagnostics.Dropped++
			warns = append(warns, Warning{
				Code:    WarnLayerOutOfBounds,
				Page:    pageIdx + 1,
				Message: fmt.Sprintf("layer %s payload unreadable at offset %d", d.Type, d.Offset),
			})
			continue
		}

		bitmap, complete := core.DecodeRattaRLE(payload, width, height, e.options.colorTable, e.options.rleParams)
		if !complete {
			page.Diagnostics.Incomplete = true
			warns = append(warns, Warning{
				Code:    WarnTruncatedBitmap,
				Page:    pageIdx + 1,
				Message: fmt.Sprintf("layer %s byte stream ended mid-pair", d.Type),
			})
		}

		page.Layers[d.Type] = bitmap
		page.Diagnostics.Strategy = d.Source.String()
		page.Diagnostics.LayerRanges = append(page.Diagnostics.LayerRanges, model.LayerRange{
			Type:   d.Type.String(),
			Name:   d.Name,
			Offset: d.Offset,
			Length: d.Length,
		})
	}

	page.Raster = render.Flatten(page.Layers, width, height, e.options.overlay)
	if len(page.Layers) == 0 {
		page.Diagnostics.Blank = true
	}
	return page, warns
}

// selectPages resolves the requested 1-indexed page numbers into sorted
// zero-based indices, warning about numbers the file does not have.
func (e *Extractor) selectPages(pageCount int) ([]int, []Warning) {
	if len(e.options.pages) == 0 {
		all := make([]int, pageCount)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	var warnings []Warning
	seen := make(map[int]bool)
	var indices []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			warnings = append(warnings, Warning{
				Code:    WarnPageOutOfRange,
				Message: fmt.Sprintf("page %d out of range (1-%d)", p, pageCount),
			})
			continue
		}
		if !seen[p-1] {
			seen[p-1] = true
			indices = append(indices, p-1)
		}
	}
	sort.Ints(indices)
	return indices, warnings
}

// pageGeometry resolves the raster dimensions for this file.
func (e *Extractor) pageGeometry(info format.Info) (int, int) {
	if e.options.width > 0 && e.options.height > 0 {
		return e.options.width, e.options.height
	}
	if info.Variant == format.Modern {
		return modernWidth, modernHeight
	}
	return legacyWidth, legacyHeight
}

// blankPage builds an all-white diagnostic page.
func blankPage(width, height int) *model.Page {
	page := &model.Page{
		Width:  width,
		Height: height,
		Raster: core.NewBitmap(width, height),
		Layers: map[core.LayerType]*core.Bitmap{},
	}
	page.Diagnostics.Blank = true
	return page
}

// rejectionWarning maps a discovery rejection onto the warning taxonomy.
func rejectionWarning(rej reader.Rejection) Warning {
	w := Warning{Page: rej.Page + 1}
	switch rej.Reason {
	case reader.RejectBadAddress:
		w.Code = WarnBadLayerAddress
		w.Message = "layer tag carried an unparseable bitmap address"
	case reader.RejectOversized:
		w.Code = WarnOversizedLayer
		w.Message = fmt.Sprintf("layer at offset %d claims %d bytes", rej.Offset, rej.Length)
	case reader.RejectBadLength:
		w.Code = WarnBadLayerLength
		w.Message = fmt.Sprintf("layer at offset %d carries a non-positive length prefix", rej.Offset)
	default:
		w.Code = WarnLayerOutOfBounds
		w.Message = fmt.Sprintf("layer at offset %d points outside the file", rej.Offset)
	}
	if rej.Page < 0 {
		w.Page = 0
	}
	return w
}
