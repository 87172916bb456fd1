package otquery

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/truetype/ot"
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

// testFont builds a two-glyph font: glyph 0 is a simple triangle, glyph 1 a
// compound glyph. Tables head, maxp, loca (short) and glyf.
func testFont(t *testing.T) *ot.Font {
	t.Helper()
	head := make([]byte, 54)
	putU32(head, 0, 0x00010000)
	putU16(head, 18, 2048) // unitsPerEm
	putU16(head, 50, 0)    // indexToLocFormat: short

	maxp := make([]byte, 10)
	putU32(maxp, 0, 0x00010000)
	putU16(maxp, 4, 2)   // numGlyphs
	putU16(maxp, 6, 64)  // maxPoints
	putU16(maxp, 8, 7)   // maxContours

	// triangle: 1 contour, 3 on-curve points, all short deltas
	triangle := []byte{
		0, 1, // numberOfContours
		0, 0, 0, 0, 0, 50, 0, 40, // bbox
		0, 2, // contour end index
		0, 0, // no instructions
		0x37, 0x37, 0x27, // flags: on-curve, x/y short, third x delta negative
		0, 50, 25, // x magnitudes
		0, 0, 40, // y magnitudes
	}
	triangle = append(triangle, 0) // pad to 24 bytes for even loca offsets

	compound := make([]byte, 10)
	putU16(compound, 0, 0xffff) // numberOfContours = -1

	loca := make([]byte, 6)
	putU16(loca, 0, 0)
	putU16(loca, 2, 12) // glyph 1 at byte 24
	putU16(loca, 4, 17) // end of glyf at byte 34

	tables := []struct {
		tag  string
		data []byte
	}{
		{"head", head},
		{"maxp", maxp},
		{"loca", loca},
		{"glyf", append(triangle, compound...)},
	}
	directorySize := 12 + len(tables)*16
	total := (directorySize + 3) &^ 3
	offsets := make([]int, len(tables))
	for i, tb := range tables {
		offsets[i] = total
		total += (len(tb.data) + 3) &^ 3
	}
	font := make([]byte, total)
	putU32(font, 0, 0x00010000)
	putU16(font, 4, uint16(len(tables)))
	for i, tb := range tables {
		rec := 12 + i*16
		copy(font[rec:rec+4], tb.tag)
		putU32(font, rec+8, uint32(offsets[i]))
		putU32(font, rec+12, uint32(len(tb.data)))
		copy(font[offsets[i]:], tb.data)
	}
	otf, err := ot.Parse(font)
	if err != nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	return otf
}

func TestHeadQuery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	otf := testFont(t)
	head, ok := Head(otf)
	if !ok {
		t.Fatal("expected head table to be decodable")
	}
	if head.UnitsPerEm != 2048 {
		t.Errorf("expected 2048 units per em, got %d", head.UnitsPerEm)
	}
	if head.IndexToLocFormat != 0 {
		t.Errorf("expected short index-to-location format, got %d", head.IndexToLocFormat)
	}
}

func TestMaxPQuery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	otf := testFont(t)
	maxp, ok := MaxP(otf)
	if !ok {
		t.Fatal("expected maxp table to be decodable")
	}
	require.Equal(t, uint16(2), maxp.NumGlyphs)
	if !maxp.HasProfile {
		t.Fatal("expected version 1.0 profile fields")
	}
	require.Equal(t, uint16(64), maxp.MaxPoints)
	require.Equal(t, uint16(7), maxp.MaxContours)
}

func TestOutlineSummary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	otf := testFont(t)
	info, ok := OutlineSummary(otf, 0)
	if !ok {
		t.Fatal("expected a summary for glyph 0")
	}
	if info.Kind != KindSimple {
		t.Fatalf("expected glyph 0 to be simple, is %s", info.Kind)
	}
	if info.Contours != 1 || info.Points != 3 || info.OnCurve != 3 {
		t.Errorf("unexpected summary for glyph 0: %+v", info)
	}
	if info.BBox.XMax != 50 || info.BBox.YMax != 40 {
		t.Errorf("unexpected bounding box for glyph 0: %+v", info.BBox)
	}
	info, ok = OutlineSummary(otf, 1)
	if !ok || info.Kind != KindCompound {
		t.Errorf("expected glyph 1 to be compound, got %+v (%v)", info, ok)
	}
	if _, ok = OutlineSummary(otf, 2); ok {
		t.Errorf("expected no summary for out-of-range glyph index")
	}
}

func TestCountByKind(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	otf := testFont(t)
	simple, compound, failed := CountByKind(otf)
	if simple != 1 || compound != 1 || failed != 0 {
		t.Errorf("expected 1 simple, 1 compound, 0 failed; got %d/%d/%d",
			simple, compound, failed)
	}
}
