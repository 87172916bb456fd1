package main

import (
	"fmt"
	"sort"

	"github.com/npillmayer/truetype/ot"
	"github.com/npillmayer/truetype/otquery"
	"github.com/pterm/pterm"
)

func tablesOp(intp *Intp, arg string) (error, bool) {
	tags := intp.font.TableTags()
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
	data := [][]string{
		{"Tag", "Offset", "Length", "Checksum"},
	}
	for _, tag := range tags {
		table := intp.font.Table(tag)
		offset, length := table.Extent()
		data = append(data, []string{
			tag.String(),
			fmt.Sprintf("%d", offset),
			fmt.Sprintf("%d", length),
			fmt.Sprintf("%08x", table.Checksum()),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func infoOp(intp *Intp, arg string) (error, bool) {
	pterm.Printf("Font: %s\n", intp.name)
	if head, ok := otquery.Head(intp.font); ok {
		pterm.Printf("Units per em: %d\n", head.UnitsPerEm)
		pterm.Printf("Index-to-location format: %d\n", head.IndexToLocFormat)
		pterm.Printf("Font bounding box: (%d,%d) – (%d,%d)\n",
			head.XMin, head.YMin, head.XMax, head.YMax)
	}
	if maxp, ok := otquery.MaxP(intp.font); ok {
		pterm.Printf("Glyphs: %d\n", maxp.NumGlyphs)
		if maxp.HasProfile {
			pterm.Printf("Max points/contours per glyph: %d/%d\n",
				maxp.MaxPoints, maxp.MaxContours)
		}
	}
	simple, compound, failed := otquery.CountByKind(intp.font)
	pterm.Printf("Outlines: %d simple, %d compound (not decoded), %d failed\n",
		simple, compound, failed)
	return nil, false
}

func glyphOp(intp *Intp, arg string) (error, bool) {
	gid, err := intp.glyphArg(arg)
	if err != nil {
		return err, false
	}
	info, ok := otquery.OutlineSummary(intp.font, gid)
	if !ok {
		return fmt.Errorf("no outline for glyph %d", gid), false
	}
	pterm.Printf("Glyph %d: %s\n", gid, info.Kind)
	switch info.Kind {
	case otquery.KindSimple:
		pterm.Printf("Contours: %d, points: %d (%d on-curve)\n",
			info.Contours, info.Points, info.OnCurve)
		pterm.Printf("Bounding box: (%d,%d) – (%d,%d)\n",
			info.BBox.XMin, info.BBox.YMin, info.BBox.XMax, info.BBox.YMax)
	case otquery.KindCompound:
		pterm.Printf("Bounding box: (%d,%d) – (%d,%d)\n",
			info.BBox.XMin, info.BBox.YMin, info.BBox.XMax, info.BBox.YMax)
	case otquery.KindFailed:
		pterm.Error.Printf("Decode failed: %v\n", info.Err)
	}
	return nil, false
}

func contoursOp(intp *Intp, arg string) (error, bool) {
	gid, err := intp.glyphArg(arg)
	if err != nil {
		return err, false
	}
	simple, ok := intp.font.Outline(gid).(ot.SimpleOutline)
	if !ok {
		return fmt.Errorf("glyph %d has no simple outline", gid), false
	}
	for k := 0; k < simple.NumContours(); k++ {
		contour := simple.Contour(k)
		pterm.Printf("Contour %d with %d points:\n", k, len(contour))
		for i, p := range contour {
			curve := "off"
			if p.OnCurve {
				curve = "on"
			}
			pterm.Printf("  [%d] (%d, %d) %s-curve\n", i, p.X, p.Y, curve)
		}
	}
	return nil, false
}

func errorsOp(intp *Intp, arg string) (error, bool) {
	errs := intp.font.Errors()
	warns := intp.font.Warnings()
	if len(errs) == 0 && len(warns) == 0 {
		pterm.Info.Println("font decoded without errors or warnings")
		return nil, false
	}
	for _, e := range errs {
		pterm.Error.Println(e.Error())
	}
	for _, w := range warns {
		pterm.Println(w.String())
	}
	return nil, false
}
