package otquery

import (
	"github.com/npillmayer/truetype/ot"
)

// HeadInfo is a typed query view over the fields of table 'head' relevant
// for outline work. Values are decoded directly from the raw table bytes.
type HeadInfo struct {
	FontRevision     uint32
	Flags            uint16
	UnitsPerEm       uint16
	XMin, YMin       int16 // font-wide bounding box over all glyphs
	XMax, YMax       int16
	LowestRecPPEM    uint16
	IndexToLocFormat int16 // 0 = short loca entries, 1 = long
	GlyphDataFormat  int16
}

const headTableSize = 54

// Head decodes table 'head' of a parsed font.
// Returns (info, true) on success, or (zero, false) if the table is missing
// or too short.
func Head(otf *ot.Font) (HeadInfo, bool) {
	var info HeadInfo
	if otf == nil {
		return info, false
	}
	table := otf.Table(ot.T("head"))
	if table == nil {
		tracer().Debugf("font has no head table")
		return info, false
	}
	b := table.Binary()
	if len(b) < headTableSize {
		return info, false
	}
	info.FontRevision = u32(b[4:8])
	info.Flags = u16(b[16:18])
	info.UnitsPerEm = u16(b[18:20])
	info.XMin = i16(b[36:38])
	info.YMin = i16(b[38:40])
	info.XMax = i16(b[40:42])
	info.YMax = i16(b[42:44])
	info.LowestRecPPEM = u16(b[46:48])
	info.IndexToLocFormat = i16(b[50:52])
	info.GlyphDataFormat = i16(b[52:54])
	return info, true
}
