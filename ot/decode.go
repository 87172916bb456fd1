package ot

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Decoding all glyph records of a font.
//
// Each glyph decode consumes a contiguous forward region of the immutable
// font buffer and depends on no other glyph's decode state, so the glyph set
// is decoded by a pool of workers, each owning an independent cursor. Small
// fonts are decoded sequentially; the goroutine setup would dominate.

// parallelThreshold is the glyph count above which decoding uses a worker pool.
const parallelThreshold = 64

// GlyphOffset resolves the absolute byte offset of glyph gid's record within
// the font's binary data, combining the 'loca' entry with the extent of
// table 'glyf'. Offsets beyond the font buffer fail with
// KindGlyphOffsetOutOfRange: malformed or truncated fonts must not cause an
// out-of-bounds read downstream.
func (otf *Font) GlyphOffset(gid GlyphIndex) (uint32, error) {
	loc, err := otf.Loca.IndexToLocation(gid)
	if err != nil {
		return 0, err
	}
	glyfOffset, _ := otf.Glyf.Extent()
	abs, err := checkedAddUint32(glyfOffset, loc)
	if err != nil || abs > uint32(len(otf.data)) {
		return 0, FontError{
			Kind:     KindGlyphOffsetOutOfRange,
			Table:    T("loca"),
			Section:  "GlyphOffset",
			Issue:    fmt.Sprintf("glyph %d: offset %d+%d beyond font size %d", gid, glyfOffset, loc, len(otf.data)),
			Severity: SeverityMajor,
			Offset:   loc,
		}
	}
	return abs, nil
}

// decodeAllOutlines decodes the records of glyphs 0…numGlyphs-1. A glyph
// whose record cannot be decoded yields a FailedOutline; its error is
// recorded with ec and decoding continues with the remaining indices.
func decodeAllOutlines(otf *Font, src binarySegm, ec *errorCollector) []GlyphOutline {
	n := otf.MaxP.NumGlyphs
	outlines := make([]GlyphOutline, n)
	consumed := make([]int, n) // bytes each simple-glyph decode consumed

	decodeOne := func(i int) {
		gid := GlyphIndex(i)
		offset, err := otf.GlyphOffset(gid)
		if err != nil {
			outlines[i] = FailedOutline{Err: err}
			return
		}
		c := NewCursor(src)
		if err := c.Seek(int(offset)); err != nil {
			outlines[i] = FailedOutline{Err: err}
			return
		}
		g, err := DecodeGlyph(c, gid)
		if err != nil {
			outlines[i] = FailedOutline{Err: err}
			return
		}
		outlines[i] = g
		consumed[i] = c.Pos() - int(offset)
	}

	if n >= parallelThreshold {
		workers := runtime.GOMAXPROCS(0)
		g := errgroup.Group{}
		g.SetLimit(workers)
		chunk := (n + workers - 1) / workers
		for lo := 0; lo < n; lo += chunk {
			lo, hi := lo, min(lo+chunk, n)
			g.Go(func() error {
				for i := lo; i < hi; i++ {
					decodeOne(i)
				}
				return nil
			})
		}
		_ = g.Wait() // decode failures are per-glyph values, never group errors
	} else {
		for i := 0; i < n; i++ {
			decodeOne(i)
		}
	}

	// Collect per-glyph failures and cross-check simple glyphs against the
	// extent given by the next loca entry. Records are commonly padded for
	// alignment, so only overruns into the following record are flagged.
	for i := 0; i < n; i++ {
		if failed, ok := outlines[i].(FailedOutline); ok {
			ec.collect(failed.Err, T("glyf"), "Decode")
			continue
		}
		if _, ok := outlines[i].(SimpleOutline); !ok {
			continue
		}
		if i+1 >= otf.Loca.EntryCount() {
			continue
		}
		this, err1 := otf.Loca.IndexToLocation(GlyphIndex(i))
		next, err2 := otf.Loca.IndexToLocation(GlyphIndex(i + 1))
		if err1 != nil || err2 != nil || next < this {
			continue
		}
		if extent := int(next - this); consumed[i] > extent {
			ec.addWarning(T("glyf"),
				fmt.Sprintf("glyph %d decoded %d bytes, exceeding its loca extent of %d",
					i, consumed[i], extent), this)
		}
	}
	return outlines
}
