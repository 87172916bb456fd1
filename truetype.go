/*
Package truetype extracts glyph outline geometry from TrueType fonts.

A TrueType font stores each glyph's outline as runs of on-/off-curve points,
partitioned into closed contours and encoded as relative coordinate deltas
in table 'glyf'. This module locates each glyph's record through the 'loca'
table and decodes it into absolute point coordinates, ready for a downstream
tessellator or rasterizer.

The heavy lifting happens in package `ot`; this root package offers
convenience entry points for the common case of loading a font file and
asking for its outlines. Package `otquery` answers summary questions about
a parsed font.

# Status

Compound (composite) glyphs are detected and reported, but their component
references are not decoded.

# Links

The TrueType/OpenType font format:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package truetype

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/truetype/ot"
)

// tracer writes to trace with key 'font.truetype'
func tracer() tracing.Trace {
	return tracing.Select("font.truetype")
}

// FromBinary parses raw TrueType bytes and returns a decoded font.
//
// The input is expected to contain a complete single-font SFNT stream with
// TrueType outlines. It must not change after parsing for the font to be
// usable.
func FromBinary(data []byte) (*ot.Font, error) {
	return ot.Parse(data)
}

// Outlines loads a font file and returns the decoded outline of every glyph,
// indexed by glyph ID.
//
// This is a convenience API for the very common use-case of getting all of a
// font's geometry in one call. Clients who need table access, per-glyph
// error details or summaries should parse with FromBinary (or LoadTrueTypeFont)
// and work with the resulting ot.Font directly.
func Outlines(fontfile string) ([]ot.GlyphOutline, error) {
	f, err := LoadTrueTypeFont(fontfile)
	if err != nil {
		return nil, err
	}
	otf, err := ot.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	return otf.Outlines(), nil
}
