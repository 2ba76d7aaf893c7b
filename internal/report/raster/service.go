// Package raster renders document pages to fixed-width bitmaps. Pages are
// rendered strictly in order; a failure on any page aborts the remainder so
// a partial artifact can never be assembled.
package raster

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"leak-diagnostic/internal/common/errors"
	"leak-diagnostic/internal/common/logger"
	"leak-diagnostic/internal/common/metrics"
	"leak-diagnostic/internal/report"
)

// Config tunes page geometry. Width is fixed; height follows content.
type Config struct {
	PageWidthPx  int
	MarginPx     int
	BaseFontSize float64
	SettleDelay  time.Duration
}

func DefaultConfig() Config {
	return Config{
		PageWidthPx:  1240,
		MarginPx:     80,
		BaseFontSize: 22,
		SettleDelay:  500 * time.Millisecond,
	}
}

// PageImage is one captured page bitmap tagged with its pixel dimensions.
type PageImage struct {
	Image  image.Image
	Width  int
	Height int
}

type Service struct {
	cfg Config
	log logger.Logger

	// mu serializes renders: the font faces reuse glyph buffers between
	// draws and cannot be shared across goroutines.
	mu    sync.Mutex
	faces *faceSet
}

func NewService(cfg Config, log logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if cfg.PageWidthPx <= 0 {
		return nil, fmt.Errorf("page width must be positive")
	}
	if cfg.MarginPx < 0 || cfg.MarginPx*2 >= cfg.PageWidthPx {
		return nil, fmt.Errorf("margin does not fit the page width")
	}
	if cfg.BaseFontSize <= 0 {
		cfg.BaseFontSize = DefaultConfig().BaseFontSize
	}

	faces, err := newFaceSet(cfg.BaseFontSize)
	if err != nil {
		return nil, fmt.Errorf("font face init: %w", err)
	}

	return &Service{cfg: cfg, log: log, faces: faces}, nil
}

// RenderDocument captures every page in document order. The settle delay
// runs once before the first capture and is the only fixed wait in the
// pipeline; ctx bounds it but nothing else.
func (s *Service) RenderDocument(ctx context.Context, doc *report.Document) ([]PageImage, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, errors.NewRasterizationError(0, fmt.Errorf("document has no pages"))
	}

	if s.cfg.SettleDelay > 0 {
		timer := time.NewTimer(s.cfg.SettleDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.NewRasterizationError(0, ctx.Err())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	images := make([]PageImage, 0, len(doc.Pages))
	for i, page := range doc.Pages {
		img, err := s.renderPage(page)
		if err != nil {
			return nil, errors.NewRasterizationError(i+1, err)
		}
		images = append(images, img)
		metrics.PagesRasterized.Inc()
	}

	s.log.Debug("document rasterized", map[string]interface{}{
		"pages": len(images),
		"width": s.cfg.PageWidthPx,
	})
	return images, nil
}

// RenderPage captures a single page. Height is measured from the laid-out
// content, preserving proportions at the fixed width.
func (s *Service) RenderPage(page report.Page) (PageImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderPage(page)
}

// renderPage does the actual capture. Caller holds the lock.
func (s *Service) renderPage(page report.Page) (PageImage, error) {
	if len(page.Blocks) == 0 {
		return PageImage{}, fmt.Errorf("page %q has no content", page.Kind)
	}

	measure := gg.NewContext(s.cfg.PageWidthPx, 1)
	bottom := s.layout(measure, page.Blocks, false)
	height := int(math.Ceil(bottom)) + s.cfg.MarginPx
	if height < s.cfg.MarginPx*2 {
		return PageImage{}, fmt.Errorf("page %q measured to zero height", page.Kind)
	}

	dc := gg.NewContext(s.cfg.PageWidthPx, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	s.layout(dc, page.Blocks, true)

	return PageImage{
		Image:  dc.Image(),
		Width:  s.cfg.PageWidthPx,
		Height: height,
	}, nil
}

// layout walks the blocks top-down and returns the final y position. With
// draw false it only measures; the two passes share this code so measured
// and drawn heights cannot drift apart.
func (s *Service) layout(dc *gg.Context, blocks []report.Block, draw bool) float64 {
	margin := float64(s.cfg.MarginPx)
	x := margin
	contentWidth := float64(s.cfg.PageWidthPx) - 2*margin
	base := s.cfg.BaseFontSize
	y := margin

	for _, block := range blocks {
		switch block.Kind {
		case report.BlockTitle:
			y += base * 0.6
			y = s.wrapped(dc, block.Text, s.faces.title, inkColor, x, y, contentWidth, base*2.0, 1.25, draw)
			y += base * 0.8

		case report.BlockSubtitle:
			y = s.wrapped(dc, block.Text, s.faces.body, mutedColor, x, y, contentWidth, base, 1.4, draw)
			y += base * 0.5

		case report.BlockHeading:
			y += base * 0.6
			y = s.wrapped(dc, block.Text, s.faces.heading, inkColor, x, y, contentWidth, base*1.3, 1.3, draw)
			y += base * 0.3

		case report.BlockText:
			y = s.wrapped(dc, block.Text, s.faces.body, inkColor, x, y, contentWidth, base, 1.5, draw)
			y += base * 0.6

		case report.BlockStat:
			rowH := base * 1.9
			y += rowH
			if draw {
				dc.SetFontFace(s.faces.body)
				setColor(dc, mutedColor)
				dc.DrawString(block.Label, x, y)
				dc.SetFontFace(s.faces.statValue)
				setColor(dc, accentColor)
				vw, _ := dc.MeasureString(block.Value)
				dc.DrawString(block.Value, x+contentWidth-vw, y)
				setColor(dc, ruleColor)
				dc.SetLineWidth(1)
				dc.DrawLine(x, y+base*0.5, x+contentWidth, y+base*0.5)
				dc.Stroke()
			}
			y += base * 0.7

		case report.BlockRank:
			r := base * 1.3
			if draw {
				setColor(dc, accentColor)
				dc.DrawCircle(x+r, y+r, r)
				dc.Fill()
				dc.SetFontFace(s.faces.heading)
				dc.SetRGB(1, 1, 1)
				dc.DrawStringAnchored(fmt.Sprintf("%d", block.Rank), x+r, y+r, 0.5, 0.35)
				dc.SetFontFace(s.faces.title)
				setColor(dc, inkColor)
				dc.DrawString(block.Text, x+2*r+base, y+r+base*0.6)
			}
			y += 2*r + base

		case report.BlockTable:
			y = s.table(dc, block, x, y, contentWidth, draw)
			y += base * 0.6

		case report.BlockQuote:
			indent := base * 1.2
			top := y
			y = s.wrapped(dc, block.Text, s.faces.body, inkColor, x+indent, y, contentWidth-indent, base, 1.5, draw)
			if draw {
				setColor(dc, accentColor)
				dc.SetLineWidth(4)
				dc.DrawLine(x+2, top+base*0.3, x+2, y+base*0.2)
				dc.Stroke()
			}
			y += base * 0.6

		case report.BlockDivider:
			y += base * 0.5
			if draw {
				setColor(dc, ruleColor)
				dc.SetLineWidth(2)
				dc.DrawLine(x, y, x+contentWidth, y)
				dc.Stroke()
			}
			y += base * 0.8

		case report.BlockFootnote:
			y = s.wrapped(dc, block.Text, s.faces.small, mutedColor, x, y, contentWidth, base*0.8, 1.5, draw)
			y += base * 0.5
		}
	}
	return y
}

// wrapped draws (or measures) word-wrapped text line by line and returns
// the baseline after the last line.
func (s *Service) wrapped(dc *gg.Context, text string, face font.Face, col color, x, y, width, size, spacing float64, draw bool) float64 {
	dc.SetFontFace(face)
	if draw {
		setColor(dc, col)
	}
	for _, line := range dc.WordWrap(text, width) {
		y += size * spacing
		if draw {
			dc.DrawString(line, x, y)
		}
	}
	return y
}

func (s *Service) table(dc *gg.Context, block report.Block, x, y, width float64, draw bool) float64 {
	base := s.cfg.BaseFontSize
	cols := len(block.Header)
	if cols == 0 && len(block.Rows) > 0 {
		cols = len(block.Rows[0])
	}
	if cols == 0 {
		return y
	}
	colWidth := width / float64(cols)
	rowH := base * 1.8

	if len(block.Header) > 0 {
		y += rowH
		if draw {
			dc.SetFontFace(s.faces.heading)
			setColor(dc, inkColor)
			for i, cell := range block.Header {
				dc.DrawString(cell, x+float64(i)*colWidth, y)
			}
			setColor(dc, ruleColor)
			dc.SetLineWidth(2)
			dc.DrawLine(x, y+base*0.4, x+width, y+base*0.4)
			dc.Stroke()
		}
		y += base * 0.4
	}

	for _, row := range block.Rows {
		y += rowH
		if draw {
			dc.SetFontFace(s.faces.body)
			setColor(dc, inkColor)
			for i, cell := range row {
				if i >= cols {
					break
				}
				dc.DrawString(cell, x+float64(i)*colWidth, y)
			}
			setColor(dc, ruleColor)
			dc.SetLineWidth(1)
			dc.DrawLine(x, y+base*0.4, x+width, y+base*0.4)
			dc.Stroke()
		}
		y += base * 0.3
	}
	return y
}

type color struct{ r, g, b float64 }

var (
	inkColor    = color{0.13, 0.15, 0.18}
	mutedColor  = color{0.45, 0.47, 0.50}
	accentColor = color{0.85, 0.23, 0.18}
	ruleColor   = color{0.85, 0.86, 0.88}
)

func setColor(dc *gg.Context, c color) {
	dc.SetRGB(c.r, c.g, c.b)
}
