package truetype

import (
	"os"

	"golang.org/x/image/font/sfnt"
)

// ScalableFont is an internal representation of an outline-font of type
// TTF or OTF. The SFNT view is kept alongside the raw bytes so that clients
// can query naming and metrics through the x/image machinery while outline
// decoding works on the raw data.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container // TODO: not threadsafe???
}

// LoadTrueTypeFont loads a TrueType font from a file.
func LoadTrueTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseTrueTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseTrueTypeFont loads a TrueType font from memory.
func ParseTrueTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		f.Fontname = "" // fonts without a usable name table are acceptable
		err = nil
	}
	tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	return f, nil
}
