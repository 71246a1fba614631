package gonumplot

import (
	"os"
	"path/filepath"
	"strings"

	"tabchart/internal/errors"

	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// typography is a font face and the text handler that can measure it.
// A nil typography keeps gonum/plot's bundled fonts.
type typography struct {
	font    font.Font
	handler text.Handler
}

// loadTypography reads a TrueType/OpenType font or the first face of a
// collection (.ttc), so that labels in scripts missing from the bundled
// fonts still render.
func loadTypography(path string) (*typography, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IOError("failed to read font file", err)
	}

	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, errors.InvalidInput("unsupported font file " + path)
	}
	if coll.NumFonts() == 0 {
		return nil, errors.InvalidInput("font file has no faces: " + path)
	}
	face, err := coll.Font(0)
	if err != nil {
		return nil, errors.Wrapf(err, "reading first face of %s", path)
	}

	fnt := font.Font{Typeface: font.Typeface(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))}
	cache := font.NewCache(font.Collection{{Font: fnt, Face: face}})

	return &typography{
		font:    fnt,
		handler: text.Plain{Fonts: cache},
	}, nil
}

// apply sets the face and size of sty
func (t *typography) apply(sty *text.Style, size vg.Length) {
	if t != nil {
		sty.Font = t.font
		sty.Handler = t.handler
	}
	sty.Font.Size = size
}
