package otquery

import (
	"github.com/npillmayer/truetype/ot"
)

// MaxPInfo is a typed query view over table 'maxp'. For version 1.0 tables
// the TrueType profile limits relevant for outline decoding are included.
type MaxPInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16

	// TrueType profile fields (version 1.0 only)
	HasProfile  bool
	MaxPoints   uint16 // points in any simple glyph
	MaxContours uint16 // contours in any simple glyph
}

const maxpMinSize = 6

// MaxP decodes table 'maxp' of a parsed font.
// Returns (info, true) on success, or (zero, false) if the table is missing
// or too short.
func MaxP(otf *ot.Font) (MaxPInfo, bool) {
	var info MaxPInfo
	if otf == nil {
		return info, false
	}
	table := otf.Table(ot.T("maxp"))
	if table == nil {
		tracer().Debugf("font has no maxp table")
		return info, false
	}
	b := table.Binary()
	if len(b) < maxpMinSize {
		return info, false
	}
	info.VersionFixed = u32(b[0:4])
	info.NumGlyphs = u16(b[4:6])
	if info.VersionFixed != 0x00010000 || len(b) < 10 {
		return info, true
	}
	info.HasProfile = true
	info.MaxPoints = u16(b[6:8])
	info.MaxContours = u16(b[8:10])
	return info, true
}
