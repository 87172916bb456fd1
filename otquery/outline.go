package otquery

import (
	"github.com/npillmayer/truetype/ot"
)

// OutlineKind classifies a decoded glyph outline for summaries.
type OutlineKind int

const (
	KindSimple OutlineKind = iota
	KindCompound
	KindFailed
)

// String returns a human-readable representation of the outline kind.
func (k OutlineKind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindCompound:
		return "compound"
	case KindFailed:
		return "failed"
	}
	return "unknown"
}

// OutlineInfo summarizes the decoded outline of one glyph.
type OutlineInfo struct {
	Glyph    ot.GlyphIndex
	Kind     OutlineKind
	Contours int     // number of contours (simple glyphs only)
	Points   int     // total number of points (simple glyphs only)
	OnCurve  int     // number of on-curve points (simple glyphs only)
	BBox     ot.BBox // bounding box from the record header (simple and compound)
	Err      error   // decode failure (failed glyphs only)
}

// OutlineSummary summarizes the outline of glyph gid.
// Returns (zero, false) if gid is not a valid glyph index of the font.
func OutlineSummary(otf *ot.Font, gid ot.GlyphIndex) (OutlineInfo, bool) {
	if otf == nil {
		return OutlineInfo{}, false
	}
	outline := otf.Outline(gid)
	if outline == nil {
		tracer().Debugf("no outline for glyph %d", gid)
		return OutlineInfo{}, false
	}
	info := OutlineInfo{Glyph: gid}
	switch g := outline.(type) {
	case ot.SimpleOutline:
		info.Kind = KindSimple
		info.Contours = g.NumContours()
		info.Points = len(g.Points)
		info.BBox = g.BBox
		for _, p := range g.Points {
			if p.OnCurve {
				info.OnCurve++
			}
		}
	case ot.CompoundOutline:
		info.Kind = KindCompound
		info.BBox = g.BBox
	case ot.FailedOutline:
		info.Kind = KindFailed
		info.Err = g.Err
	}
	return info, true
}

// OutlineSummaries summarizes all glyph outlines of a font, indexed by glyph ID.
func OutlineSummaries(otf *ot.Font) []OutlineInfo {
	if otf == nil {
		return nil
	}
	infos := make([]OutlineInfo, 0, otf.NumGlyphs())
	for gid := 0; gid < otf.NumGlyphs(); gid++ {
		info, ok := OutlineSummary(otf, ot.GlyphIndex(gid))
		if !ok {
			break
		}
		infos = append(infos, info)
	}
	return infos
}

// CountByKind returns how many glyphs of the font decoded into simple,
// compound and failed outlines, respectively.
func CountByKind(otf *ot.Font) (simple, compound, failed int) {
	for _, info := range OutlineSummaries(otf) {
		switch info.Kind {
		case KindSimple:
			simple++
		case KindCompound:
			compound++
		case KindFailed:
			failed++
		}
	}
	return simple, compound, failed
}
