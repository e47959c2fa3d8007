package reader

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/tsawler/inkwell/core"
	"github.com/tsawler/inkwell/format"
)

// Strategy identifies which discovery strategy produced a descriptor.
type Strategy int

const (
	// StrategyTagScan discovered the layer through <LAYERBITMAP:...> markers.
	StrategyTagScan Strategy = iota
	// StrategyLegacyTable used the fixed offset table for the oldest format.
	StrategyLegacyTable
	// StrategyKnownOffset used sample-derived offsets as a last resort.
	StrategyKnownOffset
)

// String returns the strategy name used in diagnostics.
func (s Strategy) String() string {
	switch s {
	case StrategyTagScan:
		return "tag-scan"
	case StrategyLegacyTable:
		return "legacy-table"
	case StrategyKnownOffset:
		return "known-offset"
	default:
		return "unknown"
	}
}

// LayerDescriptor locates one layer's compressed bitmap within the file.
// Offset points at the payload itself, past the 4-byte length prefix, and
// Offset+Length never exceeds the buffer length.
type LayerDescriptor struct {
	Page   int // zero-based page index
	Type   core.LayerType
	Name   string // user-assigned layer name, when discovered
	Offset int64
	Length int
	Source Strategy
}

// RejectReason says why a candidate layer was discarded before decode.
type RejectReason int

const (
	// RejectBadAddress marks a LAYERBITMAP value that is not a decimal
	// integer or points before the start of the buffer.
	RejectBadAddress RejectReason = iota
	// RejectBadLength marks a non-positive decoded length prefix.
	RejectBadLength
	// RejectOversized marks a length claim above the configured ceiling.
	RejectOversized
	// RejectOutOfBounds marks a payload that would run past end-of-file.
	RejectOutOfBounds
)

// String returns the reason name used in diagnostics.
func (r RejectReason) String() string {
	switch r {
	case RejectBadAddress:
		return "bad address"
	case RejectBadLength:
		return "bad length"
	case RejectOversized:
		return "oversized claim"
	case RejectOutOfBounds:
		return "out of bounds"
	default:
		return "unknown"
	}
}

// Rejection records a candidate layer discarded during discovery.
type Rejection struct {
	// Page is the zero-based page the candidate would have belonged to,
	// or -1 when it could not be attributed.
	Page   int
	Offset int64
	Length int
	Reason RejectReason
}

// fixedEntry is a speculative (offset, page, type) association derived from
// captured sample files rather than a verified specification.
type fixedEntry struct {
	offset int64
	page   int
	typ    core.LayerType
}

// knownOffsets was recovered from one captured file/firmware pair and is
// not guaranteed stable across devices. It is consulted only when both the
// tag scan and the legacy table come up empty.
var knownOffsets = []fixedEntry{
	{offset: 440, page: 0, typ: core.BGLayer},
	{offset: 768, page: 0, typ: core.MainLayer},
	{offset: 847208, page: 1, typ: core.MainLayer},
}

// legacyTable holds the fixed layout of the oldest container format,
// filtered at runtime to entries that fit the actual file.
var legacyTable = []fixedEntry{
	{offset: 1091, page: 0, typ: core.MainLayer},
	{offset: 1222, page: 0, typ: core.BGLayer},
	{offset: 9408, page: 1, typ: core.MainLayer},
	{offset: 9540, page: 1, typ: core.BGLayer},
}

// pagePattern matches page numbers embedded in layer names, e.g.
// "PAGE2/MAINLAYER" or "Page3_BGLAYER".
var pagePattern = regexp.MustCompile(`(?i)PAGE(\d+)`)

// Layers returns the full ordered descriptor list for the document together
// with the candidates rejected during discovery. The result is ordered by
// page, and within a page by composition order. Results are cached; the
// discovery pass runs at most once per Reader.
//
// Unknown-format buffers skip structured parsing entirely and yield no
// descriptors.
func (r *Reader) Layers() ([]LayerDescriptor, []Rejection) {
	if r.located {
		return r.layers, r.rejections
	}
	r.located = true

	if r.info.Variant == format.Unknown {
		return nil, nil
	}

	var rejections []Rejection
	descriptors := r.scanTagLayers(&rejections)
	if len(descriptors) == 0 && r.info.Variant == format.Legacy {
		descriptors = r.fixedLayers(legacyTable, StrategyLegacyTable)
	}
	if len(descriptors) == 0 {
		descriptors = r.fixedLayers(knownOffsets, StrategyKnownOffset)
	}

	descriptors = dedupeByOffset(descriptors)
	sort.SliceStable(descriptors, func(i, j int) bool {
		if descriptors[i].Page != descriptors[j].Page {
			return descriptors[i].Page < descriptors[j].Page
		}
		return descriptors[i].Type < descriptors[j].Type
	})

	r.layers = descriptors
	r.rejections = rejections
	return r.layers, r.rejections
}

// scanTagLayers is the primary strategy: walk every <LAYERBITMAP:address>
// marker, resolve the owning name and type from the nearest preceding tags
// within the lookback window, and validate the address.
func (r *Reader) scanTagLayers(rejections *[]Rejection) []LayerDescriptor {
	var descriptors []LayerDescriptor

	// Page assignment: an explicit PAGEn in the layer name wins; otherwise
	// a repeated layer type opens the next page, since each page carries at
	// most one plane of each type.
	currentPage := 0
	seen := map[core.LayerType]bool{}

	for _, tag := range core.FindTags(r.data, "LAYERBITMAP") {
		addr, err := strconv.ParseInt(tag.Value, 10, 64)
		if err != nil || addr < 0 {
			*rejections = append(*rejections, Rejection{Page: -1, Offset: -1, Reason: RejectBadAddress})
			continue
		}

		name := ""
		if nameTag, ok := core.LastTagBefore(r.data, "LAYERNAME", tag.Start, r.cfg.Lookback); ok {
			name = nameTag.Value
		}
		layerType := core.MainLayer
		typed := false
		if name != "" {
			layerType, typed = core.DetectLayerType(name)
		}
		if !typed {
			if typeTag, ok := core.LastTagBefore(r.data, "LAYERTYPE", tag.Start, r.cfg.Lookback); ok {
				layerType, typed = core.DetectLayerType(typeTag.Value)
			}
		}
		if !typed {
			layerType = core.MainLayer
		}

		page := -1
		if m := pagePattern.FindStringSubmatch(name); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				page = n - 1
			}
		}
		if page < 0 {
			if seen[layerType] {
				currentPage++
				seen = map[core.LayerType]bool{}
			}
			page = currentPage
		} else {
			currentPage = page
		}
		seen[layerType] = true

		d, rej := r.validate(addr, page, layerType, name, StrategyTagScan)
		if rej != nil {
			*rejections = append(*rejections, *rej)
			continue
		}
		descriptors = append(descriptors, d)
	}
	return descriptors
}

// fixedLayers validates a speculative offset table, silently filtering
// entries that do not fit this file.
func (r *Reader) fixedLayers(table []fixedEntry, src Strategy) []LayerDescriptor {
	var descriptors []LayerDescriptor
	for _, e := range table {
		d, rej := r.validate(e.offset, e.page, e.typ, "", src)
		if rej != nil {
			continue
		}
		descriptors = append(descriptors, d)
	}
	return descriptors
}

// validate reads the 4-byte little-endian length prefix at addr and applies
// the discovery invariants: a positive length, at or below the ceiling,
// that fits inside the buffer. Violators are rejected before any
// allocation and never decoded.
func (r *Reader) validate(addr int64, page int, typ core.LayerType, name string, src Strategy) (LayerDescriptor, *Rejection) {
	if addr < 0 || addr+4 > int64(len(r.data)) {
		return LayerDescriptor{}, &Rejection{Page: page, Offset: addr, Reason: RejectOutOfBounds}
	}
	length := int64(binary.LittleEndian.Uint32(r.data[addr : addr+4]))
	if length <= 0 {
		return LayerDescriptor{}, &Rejection{Page: page, Offset: addr, Length: int(length), Reason: RejectBadLength}
	}
	if length > int64(r.cfg.SizeCeiling) {
		return LayerDescriptor{}, &Rejection{Page: page, Offset: addr, Length: int(length), Reason: RejectOversized}
	}
	if addr+4+length > int64(len(r.data)) {
		return LayerDescriptor{}, &Rejection{Page: page, Offset: addr, Length: int(length), Reason: RejectOutOfBounds}
	}
	return LayerDescriptor{
		Page:   page,
		Type:   typ,
		Name:   name,
		Offset: addr + 4,
		Length: int(length),
		Source: src,
	}, nil
}

// dedupeByOffset drops descriptors whose payload offset was already
// claimed, keeping the first (highest-priority strategy) occurrence.
func dedupeByOffset(descriptors []LayerDescriptor) []LayerDescriptor {
	seen := make(map[int64]bool, len(descriptors))
	out := descriptors[:0]
	for _, d := range descriptors {
		if seen[d.Offset] {
			continue
		}
		seen[d.Offset] = true
		out = append(out, d)
	}
	return out
}

// Describe renders a descriptor for diagnostics.
func (d LayerDescriptor) Describe() string {
	name := d.Name
	if name == "" {
		name = d.Type.String()
	}
	return fmt.Sprintf("page %d %s [%d:%d] via %s", d.Page+1, name, d.Offset, d.Offset+int64(d.Length), d.Source)
}
