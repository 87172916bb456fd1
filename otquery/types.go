/*
Package otquery provides typed, read-only queries over a parsed TrueType font.

Queries decode small, fixed-layout tables ('head', 'maxp') directly from the
raw table bytes and summarize decoded glyph outlines. They never mutate the
font and may be called concurrently.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'font.truetype'
func tracer() tracing.Trace {
	return tracing.Select("font.truetype")
}

func u16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func i16(b []byte) int16 {
	return int16(b[0])<<8 | int16(b[1])<<0
}

func u32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}
