/*
Package ot decodes glyph outline geometry from TrueType font tables.

Package `ot` reads the binary sfnt container of a TrueType/OpenType font,
indexes its table directory, and extracts the outline geometry of every
glyph from the 'glyf' table. Intended audience for this package are:

▪︎ glyph rasterizers and tessellators, which consume on-/off-curve point
sequences and turn them into filled quadratic Bézier curves

▪︎ font inspection tools, which need per-glyph contour and point structure

▪︎ any application needing the raw outline geometry of a TrueType font

Package `ot` deliberately stops at geometry extraction: it will not
rasterize, hint, or shape. Contours are handed to clients exactly as the
font encodes them, i.e., as runs of absolute coordinate points partitioned
by contour end indices. Interpreting off-curve points as quadratic control
points is the client's business.

Compound (composite) glyphs, i.e. glyphs assembled from transformed
references to other glyphs, are detected but not decoded. They are represented by a
distinct outline variant, so clients can skip them or extend decoding later
without reshaping the data model.

Fonts in the wild are frequently subtly broken. A failing glyph must never
take down the decoding of its siblings: per-glyph failures are recorded and
decoding continues, while header-level damage (a missing 'loca' table, say)
is fatal, as no glyph can be located without it.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.truetype'
func tracer() tracing.Trace {
	return tracing.Select("font.truetype")
}
