package binder

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leak-diagnostic/internal/report/raster"
)

func testPageImage(w, h int) raster.PageImage {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return raster.PageImage{Image: img, Width: w, Height: h}
}

func TestAssembleProducesPDF(t *testing.T) {
	s := NewService(80)

	artifact, err := s.Assemble([]raster.PageImage{
		testPageImage(400, 600),
		testPageImage(400, 900),
		testPageImage(400, 300),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, artifact.PageCount)
	require.Greater(t, len(artifact.PDF), 4)
	assert.Equal(t, "%PDF", string(artifact.PDF[:4]))
}

func TestAssembleRejectsEmptyInput(t *testing.T) {
	s := NewService(80)

	_, err := s.Assemble(nil)
	assert.Error(t, err)
}

func TestAssembleRejectsZeroSizedPage(t *testing.T) {
	s := NewService(80)

	_, err := s.Assemble([]raster.PageImage{{Width: 0, Height: 0}})
	assert.Error(t, err)
}

func TestArtifactBase64(t *testing.T) {
	a := &Artifact{PDF: []byte("%PDF-fake")}
	assert.Equal(t, "JVBERi1mYWtl", a.Base64())
}

func TestNewServiceClampsQuality(t *testing.T) {
	assert.Equal(t, 80, NewService(0).jpegQuality)
	assert.Equal(t, 80, NewService(150).jpegQuality)
	assert.Equal(t, 60, NewService(60).jpegQuality)
}
