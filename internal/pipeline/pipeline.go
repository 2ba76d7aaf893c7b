// Package pipeline runs report generation end to end: document build,
// rasterization, PDF assembly, delivery. Stages run strictly in sequence
// and any failure aborts the run; nothing partial is ever sent.
package pipeline

import (
	"context"
	"time"

	"leak-diagnostic/internal/common/errors"
	"leak-diagnostic/internal/common/logger"
	"leak-diagnostic/internal/common/metrics"
	"leak-diagnostic/internal/delivery"
	"leak-diagnostic/internal/models"
	"leak-diagnostic/internal/report"
	"leak-diagnostic/internal/report/binder"
	"leak-diagnostic/internal/report/raster"
)

// DocumentBuilder produces the paginated document model for one result.
type DocumentBuilder interface {
	Build(result *models.Result, meta report.Meta) *report.Document
}

// Rasterizer captures document pages as bitmaps.
type Rasterizer interface {
	RenderDocument(ctx context.Context, doc *report.Document) ([]raster.PageImage, error)
}

// Assembler binds page bitmaps into the PDF artifact.
type Assembler interface {
	Assemble(pages []raster.PageImage) (*binder.Artifact, error)
}

// Sender hands the artifact to the configured delivery provider.
type Sender interface {
	Send(ctx context.Context, input *delivery.Input) error
}

type Pipeline struct {
	builder    DocumentBuilder
	rasterizer Rasterizer
	assembler  Assembler
	sender     Sender
	log        logger.Logger
}

func New(builder DocumentBuilder, rasterizer Rasterizer, assembler Assembler, sender Sender, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Pipeline{
		builder:    builder,
		rasterizer: rasterizer,
		assembler:  assembler,
		sender:     sender,
		log:        log,
	}
}

// GenerateAndSend builds and delivers the report for one scored session.
// The artifact is regenerated on every call, so a manual retry after a
// delivery failure gets a fresh render rather than a cached one.
func (p *Pipeline) GenerateAndSend(ctx context.Context, result *models.Result, profile models.Profile, email string) error {
	start := time.Now()

	doc := p.builder.Build(result, report.Meta{Name: profile.Name, Company: profile.Company})
	p.log.Debug("report document built", map[string]interface{}{
		"pages":    doc.PageCount(),
		"industry": result.Industry,
	})

	pages, err := p.rasterizer.RenderDocument(ctx, doc)
	if err != nil {
		return err
	}

	artifact, err := p.assembler.Assemble(pages)
	if err != nil {
		return errors.NewRasterizationError(len(pages), err)
	}

	metrics.ReportRenderDuration.Observe(time.Since(start).Seconds())
	p.log.Info("report artifact assembled", map[string]interface{}{
		"pages":       artifact.PageCount,
		"pdf_bytes":   len(artifact.PDF),
		"render_time": time.Since(start).String(),
	})

	return p.sender.Send(ctx, &delivery.Input{
		PDF:            artifact.PDF,
		RecipientEmail: email,
		UserName:       profile.Name,
		CompanyName:    profile.Company,
		TotalLoss:      result.TotalLeakageDollars,
		LeakagePercent: result.TotalLeakagePercent,
		Industry:       result.Industry,
	})
}
