package raster

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// faceSet holds the pre-built font faces for one base size. Fonts are
// embedded in the binary so rendering never depends on host fonts.
type faceSet struct {
	title     font.Face
	heading   font.Face
	body      font.Face
	small     font.Face
	statValue font.Face
}

func newFaceSet(base float64) (*faceSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}

	fs := &faceSet{}
	for _, spec := range []struct {
		dst  *font.Face
		fnt  *sfnt.Font
		size float64
	}{
		{&fs.title, bold, base * 2.0},
		{&fs.heading, bold, base * 1.3},
		{&fs.body, regular, base},
		{&fs.small, regular, base * 0.8},
		{&fs.statValue, bold, base * 1.3},
	} {
		face, err := opentype.NewFace(spec.fnt, &opentype.FaceOptions{
			Size:    spec.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("build face at %.1fpx: %w", spec.size, err)
		}
		*spec.dst = face
	}
	return fs, nil
}
