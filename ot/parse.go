package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Code comments often will cite passages from the OpenType specification
// version 1.8.4; see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two non-negative integers.
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values.
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

// Sizes dictated by the sfnt container format.
const (
	offsetTableSize   = 12 // scaler type + numTables + search fields
	tableRecordSize   = 16 // tag + checksum + offset + length
	headTableMinSize  = 54 // up to and including glyphDataFormat
	maxpTableMinSize  = 6  // version + numGlyphs
	glyphHeaderSize   = 10 // numberOfContours + bounding box
	indexToLocaOffset = 50 // byte offset of indexToLocFormat within 'head'
	numGlyphsOffset   = 4  // byte offset of numGlyphs within 'maxp'
)

func errHeader(section, issue string, offset uint32) FontError {
	return FontError{
		Kind:     KindMalformedHeader,
		Section:  section,
		Issue:    issue,
		Severity: SeverityCritical,
		Offset:   offset,
	}
}

// Parse parses a TrueType font from a byte slice.
// An ot.Font needs ongoing access to the font's byte data after the Parse
// function returns. The data is assumed immutable while the ot.Font remains
// in use.
//
// Parse indexes the table directory, wires the tables required for glyph
// location ('head', 'maxp', 'loca', 'glyf') and decodes the outlines of all
// glyphs. Damage local to single glyph records does not fail the parse;
// such glyphs are represented by a FailedOutline and the error is available
// from Font.Errors after parsing.
func Parse(font []byte) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	if len(font) < offsetTableSize {
		return nil, errHeader("Header", "buffer too short for offset table", 0)
	}
	r := bytes.NewReader(font)
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, errHeader("Header", err.Error(), 0)
	}
	// searchRange, entrySelector and rangeShift follow; they only speed up
	// binary searching and are not needed here
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())

	if !(h.FontType == 0x00010000 || // TrueType
		h.FontType == 0x74727565) { // 'true', Apple flavour
		if h.FontType == 0x4f54544f { // 'OTTO': CFF outlines, no glyf table
			return nil, errHeader("Header",
				fmt.Sprintf("font has CFF outlines, no TrueType glyph data: %x", h.FontType), 0)
		}
		return nil, errHeader("Header", fmt.Sprintf("font type not supported: %x", h.FontType), 0)
	}

	// Accumulates non-fatal errors and warnings during parsing
	ec := &errorCollector{}

	src := binarySegm(font)
	otf := &Font{Header: &h, data: src, tables: make(map[Tag]Table)}
	// "The Offset Table is followed immediately by the Table Record entries",
	// 16 bytes each. Unlike the spec's "sorted in ascending order by tag" we
	// accept any order; duplicate tags overwrite (last record wins).
	tableRecordsSize, err := checkedMulInt(tableRecordSize, int(h.TableCount))
	if err != nil {
		return nil, errHeader("TableRecords", fmt.Sprintf("table count too large: %v", err), offsetTableSize)
	}
	buf, err := src.view(offsetTableSize, tableRecordsSize)
	if err != nil {
		return nil, errHeader("TableRecords", "buffer too short for table record entries", offsetTableSize)
	}
	for b := buf; len(b) > 0; b = b[tableRecordSize:] {
		if !isPrintableASCII(b[:4]) {
			return nil, FontError{
				Kind:     KindInvalidTag,
				Section:  "TableRecords",
				Issue:    fmt.Sprintf("table tag is not printable ASCII: % x", b[:4]),
				Severity: SeverityCritical,
				Offset:   offsetTableSize,
			}
		}
		tag := MakeTag(b)
		checksum, off, size := u32(b[4:8]), u32(b[8:12]), u32(b[12:16])
		tracer().Debugf("table %s: offset = %d, length = %d", tag, off, size)
		if off&3 != 0 {
			// "all tables must begin on four byte boundaries" — seen violated
			// in the wild, and irrelevant for locating glyph data
			ec.addWarning(tag, "table offset not aligned to four bytes", off)
		}
		tableEnd, err := checkedAddUint32(off, size)
		if err != nil {
			return nil, errHeader("TableRecords",
				fmt.Sprintf("table %s: size calculation overflow: %v", tag, err), off)
		}
		if off > uint32(len(src)) || tableEnd > uint32(len(src)) {
			return nil, errHeader("TableRecords",
				fmt.Sprintf("table %s: bounds [%d:%d] exceed font size %d", tag, off, tableEnd, len(src)), off)
		}
		otf.tables[tag], err = parseTable(tag, src[off:tableEnd], off, size, checksum)
		if err != nil {
			return nil, err
		}
	}
	if err := wireGlyphTables(otf, ec); err != nil {
		return nil, err
	}
	otf.outlines = decodeAllOutlines(otf, src, ec)

	// Transfer accumulated errors and warnings to the Font
	otf.parseErrors = ec.errors
	otf.parseWarnings = ec.warnings
	return otf, nil
}

// isPrintableASCII reports whether all tag bytes are in the range 0x20–0x7E.
func isPrintableASCII(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// parseTable creates a typed table for the tags this package interprets and
// a generic one for everything else.
func parseTable(tag Tag, b binarySegm, offset, size, checksum uint32) (Table, error) {
	switch tag {
	case T("head"):
		return parseHead(tag, b, offset, size, checksum)
	case T("maxp"):
		return parseMaxP(tag, b, offset, size, checksum)
	case T("loca"):
		return newLocaTable(tag, b, offset, size, checksum), nil
	}
	return newTable(tag, b, offset, size, checksum), nil
}

func parseHead(tag Tag, b binarySegm, offset, size, checksum uint32) (Table, error) {
	if len(b) < headTableMinSize {
		return nil, FontError{
			Kind:     KindMalformedHeader,
			Table:    tag,
			Section:  "head",
			Issue:    fmt.Sprintf("head table too short: %d bytes", len(b)),
			Severity: SeverityCritical,
			Offset:   offset,
		}
	}
	t := newHeadTable(tag, b, offset, size, checksum)
	t.Flags, _ = b.u16(16)
	t.UnitsPerEm, _ = b.u16(18)
	// Bytes 20…49 are creation dates, min/max extents and style flags,
	// none of which participate in glyph location.
	t.IndexToLocFormat, _ = b.i16(indexToLocaOffset)
	return t, nil
}

func parseMaxP(tag Tag, b binarySegm, offset, size, checksum uint32) (Table, error) {
	if len(b) < maxpTableMinSize {
		return nil, FontError{
			Kind:     KindMalformedHeader,
			Table:    tag,
			Section:  "maxp",
			Issue:    fmt.Sprintf("maxp table too short: %d bytes", len(b)),
			Severity: SeverityCritical,
			Offset:   offset,
		}
	}
	t := newMaxPTable(tag, b, offset, size, checksum)
	n, _ := b.u16(numGlyphsOffset) // first 4 bytes are a fixed version field
	t.NumGlyphs = int(n)
	return t, nil
}

// requiredTables must be present for glyph outlines to be locatable.
var requiredTables = []string{"head", "maxp", "loca", "glyf"}

// wireGlyphTables stores shortcuts to the essential tables and establishes
// consistency between them: maxp.numGlyphs dimensions loca, and
// head.indexToLocFormat selects the loca entry width.
func wireGlyphTables(otf *Font, ec *errorCollector) error {
	for _, tag := range requiredTables {
		if otf.tables[T(tag)] == nil {
			return FontError{
				Kind:     KindMissingTable,
				Table:    T(tag),
				Section:  "TableDirectory",
				Issue:    "missing required table " + tag,
				Severity: SeverityCritical,
			}
		}
	}
	otf.Head = otf.tables[T("head")].Self().AsHead()
	otf.MaxP = otf.tables[T("maxp")].Self().AsMaxP()
	otf.Loca = otf.tables[T("loca")].Self().AsLoca()
	otf.Glyf = otf.tables[T("glyf")]

	loca := otf.Loca
	entryWidth := 2
	if otf.Head.IndexToLocFormat != 0 {
		// "If the value is 1, the offsets are stored as uint32"; any non-zero
		// value is treated as the long format
		loca.inx2loc = longLocaVersion
		entryWidth = 4
	}
	available := len(loca.data) / entryWidth
	wanted := otf.MaxP.NumGlyphs + 1 // incl. the trailing end-of-glyf sentinel
	if available < wanted {
		ec.addWarning(T("loca"),
			fmt.Sprintf("loca holds %d entries, expected numGlyphs+1 = %d", available, wanted), 0)
	}
	loca.locCnt = min(available, wanted)
	tracer().Debugf("font has %d glyphs, loca format %d with %d entries",
		otf.MaxP.NumGlyphs, otf.Head.IndexToLocFormat, loca.locCnt)
	return nil
}
