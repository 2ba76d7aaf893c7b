// Package binder assembles rasterized pages into a single PDF artifact.
// Each bitmap becomes one PDF page sized to preserve its aspect ratio at
// a fixed 210mm width.
package binder

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/jpeg"

	"github.com/go-pdf/fpdf"

	"leak-diagnostic/internal/report/raster"
)

const pageWidthMM = 210.0

// Artifact is the finished PDF and its page count.
type Artifact struct {
	PDF       []byte
	PageCount int
}

// Base64 returns the artifact encoded for JSON transport.
func (a *Artifact) Base64() string {
	return base64.StdEncoding.EncodeToString(a.PDF)
}

type Service struct {
	jpegQuality int
}

func NewService(jpegQuality int) *Service {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = 80
	}
	return &Service{jpegQuality: jpegQuality}
}

// Assemble encodes each page bitmap as JPEG and places it on its own PDF
// page. Page order follows the input order exactly.
func (s *Service) Assemble(pages []raster.PageImage) (*Artifact, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to assemble")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	for i, page := range pages {
		if page.Width <= 0 || page.Height <= 0 {
			return nil, fmt.Errorf("page %d has invalid dimensions %dx%d", i+1, page.Width, page.Height)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, page.Image, &jpeg.Options{Quality: s.jpegQuality}); err != nil {
			return nil, fmt.Errorf("encode page %d: %w", i+1, err)
		}

		heightMM := pageWidthMM * float64(page.Height) / float64(page.Width)
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: pageWidthMM, Ht: heightMM})

		name := fmt.Sprintf("page-%d", i+1)
		opts := fpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.ImageOptions(name, 0, 0, pageWidthMM, heightMM, false, opts, 0, "")

		if pdf.Err() {
			return nil, fmt.Errorf("place page %d: %s", i+1, pdf.Error())
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	return &Artifact{PDF: out.Bytes(), PageCount: len(pages)}, nil
}
