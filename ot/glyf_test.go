package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func putU16(b []byte, at int, v uint16) {
	b[at] = byte(v >> 8)
	b[at+1] = byte(v)
}

func putU32(b []byte, at int, v uint32) {
	b[at] = byte(v >> 24)
	b[at+1] = byte(v >> 16)
	b[at+2] = byte(v >> 8)
	b[at+3] = byte(v)
}

// glyphRecord assembles the bytes of a simple glyph record.
func glyphRecord(contourEnds []uint16, instructions []byte, flags []byte, coords []byte) []byte {
	b := make([]byte, 0, 32)
	head := make([]byte, glyphHeaderSize)
	putU16(head, 0, uint16(len(contourEnds))) // numberOfContours, bbox stays zero
	b = append(b, head...)
	for _, e := range contourEnds {
		b = append(b, byte(e>>8), byte(e))
	}
	b = append(b, byte(len(instructions)>>8), byte(len(instructions)))
	b = append(b, instructions...)
	b = append(b, flags...)
	b = append(b, coords...)
	return b
}

func decode(t *testing.T, record []byte) (GlyphOutline, error) {
	t.Helper()
	return DecodeGlyph(NewCursor(record), 0)
}

func TestDecodeGlyphTriangle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	// One contour with 3 on-curve points, no repeats, all short deltas:
	// (0,0) -> (50,0) -> (25,40)
	record := glyphRecord(
		[]uint16{2},
		nil,
		[]byte{
			flagOnCurvePoint | flagXShort | flagXSameOrPos | flagYShort | flagYSameOrPos,
			flagOnCurvePoint | flagXShort | flagXSameOrPos | flagYShort | flagYSameOrPos,
			flagOnCurvePoint | flagXShort | flagYShort | flagYSameOrPos,
		},
		[]byte{
			0, 50, 25, // x magnitudes; third is negative (sign bit clear)
			0, 0, 40, // y magnitudes
		},
	)
	g, err := decode(t, record)
	if err != nil {
		t.Fatal(err)
	}
	simple, ok := g.(SimpleOutline)
	if !ok {
		t.Fatalf("expected a simple outline, got %T", g)
	}
	require.Equal(t, []uint16{2}, simple.EndIndices)
	require.Equal(t, []Point{
		{X: 0, Y: 0, OnCurve: true},
		{X: 50, Y: 0, OnCurve: true},
		{X: 25, Y: 40, OnCurve: true},
	}, simple.Points)
	if n := simple.NumContours(); n != 1 {
		t.Errorf("expected 1 contour, got %d", n)
	}
	if pts := simple.Contour(0); len(pts) != 3 {
		t.Errorf("expected contour 0 to span 3 points, got %d", len(pts))
	}
}

func TestDecodeGlyphCoordinateEncodings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	// x-deltas 10, -5, 0 encoded short / long / same; decoded absolute
	// x-coordinates must be the cumulative sums 10, 5, 5.
	record := glyphRecord(
		[]uint16{2},
		nil,
		[]byte{
			flagOnCurvePoint | flagXShort | flagXSameOrPos | flagYSameOrPos,
			flagOnCurvePoint | flagYSameOrPos, // x is a long delta
			flagOnCurvePoint | flagXSameOrPos | flagYSameOrPos,
		},
		[]byte{
			10,         // x[0]: +10 short
			0xff, 0xfb, // x[1]: -5 as int16
			// x[2]: same, no data; y: all same, no data
		},
	)
	g, err := decode(t, record)
	if err != nil {
		t.Fatal(err)
	}
	simple := g.(SimpleOutline)
	xs := make([]int16, len(simple.Points))
	for i, p := range simple.Points {
		xs[i] = p.X
		if p.Y != 0 {
			t.Errorf("expected y[%d] to repeat 0, got %d", i, p.Y)
		}
	}
	require.Equal(t, []int16{10, 5, 5}, xs)
}

func TestDecodeGlyphOffCurveFlag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	record := glyphRecord(
		[]uint16{1},
		nil,
		[]byte{
			flagXSameOrPos | flagYSameOrPos, // off-curve
			flagOnCurvePoint | flagXSameOrPos | flagYSameOrPos,
		},
		nil,
	)
	g, err := decode(t, record)
	if err != nil {
		t.Fatal(err)
	}
	simple := g.(SimpleOutline)
	if simple.Points[0].OnCurve {
		t.Errorf("expected point 0 to be off-curve")
	}
	if !simple.Points[1].OnCurve {
		t.Errorf("expected point 1 to be on-curve")
	}
}

func TestDecodeGlyphFlagRepeat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	noData := flagOnCurvePoint | flagXSameOrPos | flagYSameOrPos
	t.Run("CountZero", func(t *testing.T) {
		// repeat count 0: one physical flag byte plus count expands to 1 flag
		record := glyphRecord([]uint16{0}, nil, []byte{noData | flagRepeat, 0}, nil)
		g, err := decode(t, record)
		if err != nil {
			t.Fatal(err)
		}
		if n := len(g.(SimpleOutline).Points); n != 1 {
			t.Errorf("expected 1 point, got %d", n)
		}
	})
	t.Run("CountMax", func(t *testing.T) {
		// repeat count 255 expands to 256 identical flags
		record := glyphRecord([]uint16{255}, nil, []byte{noData | flagRepeat, 255}, nil)
		g, err := decode(t, record)
		if err != nil {
			t.Fatal(err)
		}
		simple := g.(SimpleOutline)
		if n := len(simple.Points); n != 256 {
			t.Fatalf("expected 256 points, got %d", n)
		}
		for i, p := range simple.Points {
			if p != (Point{X: 0, Y: 0, OnCurve: true}) {
				t.Fatalf("expected point %d to repeat (0,0) on-curve, got %v", i, p)
			}
		}
	})
	t.Run("Overshoot", func(t *testing.T) {
		// expansion beyond the declared point count is malformed
		record := glyphRecord([]uint16{1}, nil, []byte{noData | flagRepeat, 5}, nil)
		_, err := decode(t, record)
		assertKind(t, err, KindMalformedGlyph)
	})
}

func TestDecodeGlyphCompound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	// numberOfContours = -1 marks a composite glyph; only the header may be read
	record := make([]byte, glyphHeaderSize)
	putU16(record, 0, 0xffff)
	putU16(record, 2, 0xfff6) // xMin = -10
	putU16(record, 6, 100)    // xMax
	c := NewCursor(record)
	g, err := DecodeGlyph(c, 0)
	if err != nil {
		t.Fatal(err)
	}
	compound, ok := g.(CompoundOutline)
	if !ok {
		t.Fatalf("expected a compound outline, got %T", g)
	}
	if compound.BBox.XMin != -10 || compound.BBox.XMax != 100 {
		t.Errorf("unexpected bounding box: %v", compound.BBox)
	}
	if c.Pos() != glyphHeaderSize {
		t.Errorf("compound glyph must only consume its header, cursor at %d", c.Pos())
	}
}

func TestDecodeGlyphMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	t.Run("NoContours", func(t *testing.T) {
		record := make([]byte, glyphHeaderSize) // numberOfContours = 0
		_, err := decode(t, record)
		assertKind(t, err, KindMalformedGlyph)
	})
	t.Run("EndIndicesNotIncreasing", func(t *testing.T) {
		record := glyphRecord([]uint16{4, 2}, nil, nil, nil)
		_, err := decode(t, record)
		assertKind(t, err, KindMalformedGlyph)
	})
}

func TestDecodeGlyphTruncated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	full := glyphRecord(
		[]uint16{2},
		[]byte{0xb0, 0x00}, // hinting bytecode, skipped
		[]byte{
			flagOnCurvePoint | flagXShort | flagXSameOrPos | flagYShort | flagYSameOrPos,
			flagOnCurvePoint | flagXShort | flagXSameOrPos | flagYShort | flagYSameOrPos,
			flagOnCurvePoint | flagXShort | flagYShort | flagYSameOrPos,
		},
		[]byte{0, 50, 25, 0, 0, 40},
	)
	// Any prefix of a valid record must fail with TruncatedGlyph, never panic
	for cut := 0; cut < len(full); cut++ {
		_, err := decode(t, full[:cut])
		assertKind(t, err, KindTruncatedGlyph)
	}
	if _, err := decode(t, full); err != nil {
		t.Errorf("complete record must decode, got %v", err)
	}
}
