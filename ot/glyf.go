package ot

import "fmt"

// Decoding of glyph records from table 'glyf'.
//
// A glyph record is self-terminating: its content determines how many bytes
// it occupies, so decoding proceeds strictly forward from the record's start
// offset, with no backtracking and no reliance on a pre-known record length:
//
//	Header → Compound                                        (terminal)
//	Header → ContourEnds → Instructions → Flags → X → Y      (terminal)

// Per-point flag bits of simple glyph records.
const (
	flagOnCurvePoint byte = 0x01 // point lies on the outline
	flagXShort       byte = 0x02 // x delta is a single unsigned byte
	flagYShort       byte = 0x04 // y delta is a single unsigned byte
	flagRepeat       byte = 0x08 // next byte is a repeat count for this flag
	flagXSameOrPos   byte = 0x10 // short: x delta sign; long: x repeats previous
	flagYSameOrPos   byte = 0x20 // short: y delta sign; long: y repeats previous
)

// Point is one point of a glyph contour. Coordinates are absolute, in font
// design units. OnCurve distinguishes points on the outline from quadratic
// Bézier control points; renderers reconstructing curve segments need it.
type Point struct {
	X, Y    int16
	OnCurve bool
}

// BBox is the bounding box stored in a glyph record's header, in font
// design units.
type BBox struct {
	XMin, YMin, XMax, YMax int16
}

// GlyphOutline is the decoded form of one glyph record. It comes in three
// flavours: SimpleOutline for glyphs with directly encoded contours,
// CompoundOutline for composite glyphs (detected but not decoded), and
// FailedOutline for records that could not be decoded.
type GlyphOutline interface {
	outlineVariant()
}

// SimpleOutline is the outline of a simple glyph: a point sequence
// partitioned into closed contours.
//
// EndIndices[k] is the index into Points of the last point of contour k;
// contour 0 therefore spans Points[0:EndIndices[0]+1], contour 1 spans
// Points[EndIndices[0]+1 : EndIndices[1]+1], and so on. EndIndices is
// non-empty and strictly increasing, and
// len(Points) == int(EndIndices[len(EndIndices)-1]) + 1.
type SimpleOutline struct {
	BBox       BBox
	EndIndices []uint16
	Points     []Point
}

func (o SimpleOutline) outlineVariant() {}

// NumContours returns the number of contours of this outline.
func (o SimpleOutline) NumContours() int {
	return len(o.EndIndices)
}

// Contour returns the points of contour k as a sub-slice of Points,
// or nil if k is out of range.
func (o SimpleOutline) Contour(k int) []Point {
	if k < 0 || k >= len(o.EndIndices) {
		return nil
	}
	start := 0
	if k > 0 {
		start = int(o.EndIndices[k-1]) + 1
	}
	return o.Points[start : int(o.EndIndices[k])+1]
}

// CompoundOutline marks a composite glyph, i.e. a glyph built by referencing
// and transforming other glyphs. Decoding composite references is
// intentionally unsupported; only the bounding box from the record header
// is carried.
type CompoundOutline struct {
	BBox BBox
}

func (o CompoundOutline) outlineVariant() {}

// FailedOutline marks a glyph whose record could not be decoded. Err holds
// the FontError describing the failure.
type FailedOutline struct {
	Err error
}

func (o FailedOutline) outlineVariant() {}

// ---------------------------------------------------------------------------

func errGlyph(kind ErrorKind, gid GlyphIndex, section, issue string, offset int) FontError {
	return FontError{
		Kind:     kind,
		Table:    T("glyf"),
		Section:  section,
		Issue:    fmt.Sprintf("glyph %d: %s", gid, issue),
		Severity: SeverityMajor,
		Offset:   uint32(offset),
	}
}

// truncated lifts a cursor bounds error into a TruncatedGlyph error.
func truncated(err error, gid GlyphIndex, section string, offset int) error {
	if err == nil {
		return nil
	}
	return errGlyph(KindTruncatedGlyph, gid, section, "glyph record truncated", offset)
}

// DecodeGlyph decodes the glyph record at the cursor's current position.
// The cursor must be positioned at the record's first byte (the
// numberOfContours field); on success it has consumed exactly the record's
// content bytes.
//
// DecodeGlyph is a pure function of (buffer, start offset): it holds no
// state besides the cursor, so independent glyph decodes may run
// concurrently, each with its own cursor.
func DecodeGlyph(c *ByteCursor, gid GlyphIndex) (GlyphOutline, error) {
	start := c.Pos()
	numContours, err := c.ReadI16()
	if err != nil {
		return nil, truncated(err, gid, "Header", start)
	}
	var bbox BBox
	if bbox.XMin, err = c.ReadI16(); err == nil {
		if bbox.YMin, err = c.ReadI16(); err == nil {
			if bbox.XMax, err = c.ReadI16(); err == nil {
				bbox.YMax, err = c.ReadI16()
			}
		}
	}
	if err != nil {
		return nil, truncated(err, gid, "Header", c.Pos())
	}
	if numContours < 0 {
		// Composite glyph; component records are not decoded
		tracer().Debugf("glyph %d is a compound glyph, skipping", gid)
		return CompoundOutline{BBox: bbox}, nil
	}
	if numContours == 0 {
		return nil, errGlyph(KindMalformedGlyph, gid, "Header",
			"simple glyph without contours", start)
	}

	endIndices := make([]uint16, numContours)
	for i := range endIndices {
		if endIndices[i], err = c.ReadU16(); err != nil {
			return nil, truncated(err, gid, "ContourEnds", c.Pos())
		}
		if i > 0 && endIndices[i] <= endIndices[i-1] {
			return nil, errGlyph(KindMalformedGlyph, gid, "ContourEnds",
				"contour end indices not strictly increasing", c.Pos())
		}
	}
	// The last end index is the index of the final point, not a count
	numPoints := int(endIndices[numContours-1]) + 1

	// Hinting instructions contribute nothing to outline geometry
	instructionLength, err := c.ReadU16()
	if err != nil {
		return nil, truncated(err, gid, "Instructions", c.Pos())
	}
	if err = c.Skip(int(instructionLength)); err != nil {
		return nil, truncated(err, gid, "Instructions", c.Pos())
	}

	flags, err := expandFlags(c, gid, numPoints)
	if err != nil {
		return nil, err
	}
	xs, err := decodeCoords(c, gid, flags, flagXShort, flagXSameOrPos)
	if err != nil {
		return nil, err
	}
	ys, err := decodeCoords(c, gid, flags, flagYShort, flagYSameOrPos)
	if err != nil {
		return nil, err
	}

	points := make([]Point, numPoints)
	for i := range points {
		points[i] = Point{
			X:       xs[i],
			Y:       ys[i],
			OnCurve: flags[i]&flagOnCurvePoint != 0,
		}
	}
	return SimpleOutline{BBox: bbox, EndIndices: endIndices, Points: points}, nil
}

// expandFlags reads flag bytes until numPoints logical flags have been
// produced. A set repeat bit means the following byte is a repeat count n,
// and the flag byte counts n+1 times in total.
func expandFlags(c *ByteCursor, gid GlyphIndex, numPoints int) ([]byte, error) {
	flags := make([]byte, 0, numPoints)
	for len(flags) < numPoints {
		flag, err := c.ReadU8()
		if err != nil {
			return nil, truncated(err, gid, "Flags", c.Pos())
		}
		flags = append(flags, flag)
		if flag&flagRepeat != 0 {
			n, err := c.ReadU8()
			if err != nil {
				return nil, truncated(err, gid, "Flags", c.Pos())
			}
			for j := 0; j < int(n); j++ {
				flags = append(flags, flag)
			}
		}
	}
	if len(flags) > numPoints {
		return nil, errGlyph(KindMalformedGlyph, gid, "Flags",
			fmt.Sprintf("flag expansion yields %d flags for %d points", len(flags), numPoints),
			c.Pos())
	}
	return flags, nil
}

// decodeCoords reconstructs the absolute coordinates of one axis by
// accumulating per-point deltas, starting from 0. The flags sequence is
// shared between the x and y pass; only the bit positions differ.
//
// Per point: a set shortBit means the delta is one unsigned byte, negated
// unless sameOrPosBit is set. With shortBit clear, a set sameOrPosBit means
// delta 0 (the coordinate repeats), otherwise the delta is a signed 16-bit
// value.
func decodeCoords(c *ByteCursor, gid GlyphIndex, flags []byte, shortBit, sameOrPosBit byte) ([]int16, error) {
	coords := make([]int16, len(flags))
	var acc int16
	for i, flag := range flags {
		switch {
		case flag&shortBit != 0:
			mag, err := c.ReadU8()
			if err != nil {
				return nil, truncated(err, gid, "Coordinates", c.Pos())
			}
			if flag&sameOrPosBit != 0 {
				acc += int16(mag)
			} else {
				acc -= int16(mag)
			}
		case flag&sameOrPosBit != 0:
			// delta 0: coordinate repeats the previous point's value
		default:
			delta, err := c.ReadI16()
			if err != nil {
				return nil, truncated(err, gid, "Coordinates", c.Pos())
			}
			acc += delta
		}
		coords[i] = acc
	}
	return coords, nil
}
