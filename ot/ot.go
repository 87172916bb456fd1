package ot

// Font represents the internal structure of a TrueType font.
// It is the result of indexing a font's table directory once and decoding
// the outline geometry of every glyph contained in the 'glyf' table.
//
// We only support fonts with TrueType outlines, i.e. fonts containing tables
// 'glyf' and 'loca'. Fonts with CFF outlines are rejected during parsing.
type Font struct {
	Header        *FontHeader
	data          binarySegm // the font's complete binary data, never mutated
	tables        map[Tag]Table
	Head          *HeadTable     // typed access to head
	MaxP          *MaxPTable     // typed access to maxp
	Loca          *LocaTable     // typed access to loca
	Glyf          Table          // raw access to glyf
	outlines      []GlyphOutline // one entry per glyph index
	parseErrors   []FontError    // errors accumulated during decoding
	parseWarnings []FontWarning  // warnings accumulated during decoding
}

// FontHeader is a directory of the top-level tables in a font. If the font file
// contains only one font, the table directory will begin at byte 0 of the file.
//
// Fonts with TrueType outlines use the value 0x00010000 for the FontType;
// the Apple specification additionally allows 'true'. Fonts containing CFF
// data use 0x4F54544F ('OTTO') and carry no 'glyf' table.
type FontHeader struct {
	FontType   uint32
	TableCount uint16
}

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
//
// Every table of the font is available this way, even the ones this package
// does not interpret: clients receive at least a generic table with access
// to extent and raw bytes.
func (otf *Font) Table(tag Tag) Table {
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// TableTags returns a list of tags, one for each table contained in the font.
func (otf *Font) TableTags() []Tag {
	var tags = make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	return tags
}

// NumGlyphs returns the number of glyphs contained in the font, as stated
// by table 'maxp'.
func (otf *Font) NumGlyphs() int {
	if otf == nil || otf.MaxP == nil {
		return 0
	}
	return otf.MaxP.NumGlyphs
}

// Outlines returns the decoded outline for each glyph of the font, indexed
// by glyph ID. The returned slice is shared with the font and must be
// treated as read-only.
func (otf *Font) Outlines() []GlyphOutline {
	return otf.outlines
}

// Outline returns the decoded outline of a single glyph, or nil if gid is
// not a valid glyph index.
func (otf *Font) Outline(gid GlyphIndex) GlyphOutline {
	if int(gid) >= len(otf.outlines) {
		return nil
	}
	return otf.outlines[gid]
}

// Errors returns all errors encountered during font decoding.
// These errors represent issues that were found but did not prevent decoding
// from completing, e.g. single damaged glyph records. Clients can inspect
// them to decide if the font is suitable for their use case.
func (otf *Font) Errors() []FontError {
	if otf.parseErrors == nil {
		return []FontError{}
	}
	return otf.parseErrors
}

// Warnings returns all warnings encountered during font decoding.
// Warnings indicate potential issues that are generally safe to ignore.
func (otf *Font) Warnings() []FontWarning {
	if otf.parseWarnings == nil {
		return []FontWarning{}
	}
	return otf.parseWarnings
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the OpenType spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
//
//	MakeTag([]byte("glyf"))
//
// If b is shorter or longer, it will be silently extended or cut as appropriate.
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate.
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table -----------------------------------------------------------------

// Table represents one of the various tables of a TrueType font.
//
// The tables consumed for outline extraction are 'head' (font header),
// 'maxp' (glyph count), 'loca' (index to location) and 'glyf' (glyph data).
// All other tables are carried as generic tables, i.e. tag plus extent plus
// raw bytes, without interpretation.
type Table interface {
	Extent() (uint32, uint32) // offset and byte size within the font's binary data
	Checksum() uint32         // checksum from the table directory record
	Binary() []byte           // the bytes of this table; should be treated as read-only by clients
	Self() TableSelf          // reference to itself
}

func newTable(tag Tag, b binarySegm, offset, size, checksum uint32) *genericTable {
	t := &genericTable{tableBase{
		data:     b,
		name:     tag,
		offset:   offset,
		length:   size,
		checksum: checksum,
	}}
	t.self = t
	return t
}

type genericTable struct {
	tableBase
}

// tableBase is a common parent for all kinds of font tables.
type tableBase struct {
	data     binarySegm // a table is a slice of font data
	name     Tag        // 4-byte name as an integer
	offset   uint32     // from offset
	length   uint32     // to offset + length
	checksum uint32     // checksum from the directory record
	self     any
}

// Extent returns offset and byte size of this table within the font's binary data.
func (tb *tableBase) Extent() (uint32, uint32) {
	return tb.offset, tb.length
}

// Checksum returns the checksum recorded for this table in the table directory.
// Checksums are carried but not verified.
func (tb *tableBase) Checksum() uint32 {
	return tb.checksum
}

// Binary returns the bytes of this table. Should be treated as read-only by
// clients, as it is a view into the original data.
func (tb *tableBase) Binary() []byte {
	return tb.data
}

func (tb *tableBase) Self() TableSelf {
	return TableSelf{tableBase: tb}
}

// TableSelf is a reference to a table. Its primary use is for converting
// a generic table to a concrete table flavour, and for reproducing the
// name tag of a table.
type TableSelf struct {
	tableBase *tableBase
}

// NameTag returns the 4-letter name of a table.
func (tself TableSelf) NameTag() Tag {
	return tself.tableBase.name
}

func safeSelf(tself TableSelf) any {
	if tself.tableBase == nil || tself.tableBase.self == nil {
		return TableSelf{}
	}
	return tself.tableBase.self
}

// AsHead returns this table as a head table, or nil.
func (tself TableSelf) AsHead() *HeadTable {
	if k, ok := safeSelf(tself).(*HeadTable); ok {
		return k
	}
	return nil
}

// AsMaxP returns this table as a maxp table, or nil.
func (tself TableSelf) AsMaxP() *MaxPTable {
	if k, ok := safeSelf(tself).(*MaxPTable); ok {
		return k
	}
	return nil
}

// AsLoca returns this table as a loca table, or nil.
func (tself TableSelf) AsLoca() *LocaTable {
	if k, ok := safeSelf(tself).(*LocaTable); ok {
		return k
	}
	return nil
}

// --- Concrete table implementations ----------------------------------------

// HeadTable gives global information about the font.
// Only a small subset of fields is made public by HeadTable, the ones
// required for locating and decoding glyph records.
type HeadTable struct {
	tableBase
	Flags            uint16 // see https://docs.microsoft.com/en-us/typography/opentype/spec/head
	UnitsPerEm       uint16 // values 16 … 16384 are valid
	IndexToLocFormat int16  // needed to interpret loca table: 0 = short, 1 = long
}

func newHeadTable(tag Tag, b binarySegm, offset, size, checksum uint32) *HeadTable {
	t := &HeadTable{}
	t.tableBase = tableBase{
		data:     b,
		name:     tag,
		offset:   offset,
		length:   size,
		checksum: checksum,
	}
	t.self = t
	return t
}

// MaxPTable establishes the memory requirements for this font.
// The 'maxp' table contains a count for the number of glyphs in the font.
type MaxPTable struct {
	tableBase
	NumGlyphs int
}

func newMaxPTable(tag Tag, b binarySegm, offset, size, checksum uint32) *MaxPTable {
	t := &MaxPTable{}
	t.tableBase = tableBase{
		data:     b,
		name:     tag,
		offset:   offset,
		length:   size,
		checksum: checksum,
	}
	t.self = t
	return t
}

// LocaTable stores the offsets to the locations of the glyphs in the font,
// relative to the beginning of the glyph data table.
// By definition, index zero points to the “missing character”, which is the
// character that appears if a character is not found in the font.
//
// Entries come in two widths, selected by head.IndexToLocFormat: short
// entries are uint16 values which have to be doubled to obtain a byte
// offset, long entries are uint32 byte offsets as stored.
type LocaTable struct {
	tableBase
	inx2loc func(t *LocaTable, gid GlyphIndex) (uint32, error) // returns glyph location for glyph gid
	locCnt  int                                                // number of locations
}

func newLocaTable(tag Tag, b binarySegm, offset, size, checksum uint32) *LocaTable {
	t := &LocaTable{}
	t.tableBase = tableBase{
		data:     b,
		name:     tag,
		offset:   offset,
		length:   size,
		checksum: checksum,
	}
	t.inx2loc = shortLocaVersion // may get changed during font consistency check
	t.locCnt = 0                 // has to be set during consistency check
	t.self = t
	return t
}

// IndexToLocation returns the byte offset of glyph gid's record, relative to
// the beginning of the 'glyf' table.
//
// loca conventionally holds numGlyphs+1 entries, the last one marking the
// end of 'glyf'; gid may therefore be numGlyphs, addressing that sentinel
// entry. Out-of-range indices and reads past the table fail with
// KindGlyphOffsetOutOfRange.
func (t *LocaTable) IndexToLocation(gid GlyphIndex) (uint32, error) {
	return t.inx2loc(t, gid)
}

// EntryCount returns the number of loca entries addressable in this font,
// usually numGlyphs+1.
func (t *LocaTable) EntryCount() int {
	return t.locCnt
}

func errLocaRange(gid GlyphIndex) FontError {
	return FontError{
		Kind:     KindGlyphOffsetOutOfRange,
		Table:    T("loca"),
		Section:  "IndexToLocation",
		Issue:    "glyph location index out of range",
		Severity: SeverityMajor,
		Offset:   uint32(gid),
	}
}

func shortLocaVersion(t *LocaTable, gid GlyphIndex) (uint32, error) {
	if int(gid) >= t.locCnt {
		return 0, errLocaRange(gid)
	}
	loc, err := t.data.u16(int(gid) * 2)
	if err != nil {
		return 0, errLocaRange(gid)
	}
	return uint32(loc) * 2, nil
}

func longLocaVersion(t *LocaTable, gid GlyphIndex) (uint32, error) {
	if int(gid) >= t.locCnt {
		return 0, errLocaRange(gid)
	}
	loc, err := t.data.u32(int(gid) * 4)
	if err != nil {
		return 0, errLocaRange(gid)
	}
	return loc, nil
}
