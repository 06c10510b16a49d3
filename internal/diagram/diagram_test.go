package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcc/internal/optional"
)

func sampleSection() SectionDiagramData {
	return SectionDiagramData{
		Width:              20,
		Height:             40,
		Cover:              2.5,
		BarCount:           4,
		BarDiameter:        12,
		TransverseDiameter: 6,
		Required:           optional.Of(15.31),
		Achieved:           4.52,
	}
}

func TestBarPositions(t *testing.T) {
	data := sampleSection()
	pts := data.BarPositions()
	require.Len(t, pts, 4)

	// 2.5 cover + 0.6 transverse + 0.6 half bar
	assert.InDelta(t, 3.7, pts[0].X, 1e-9)
	assert.InDelta(t, 36.3, pts[0].Y, 1e-9)
	assert.InDelta(t, 16.3, pts[1].X, 1e-9)
	assert.InDelta(t, 3.7, pts[3].Y, 1e-9)

	data.BarCount = 5
	pts = data.BarPositions()
	require.Len(t, pts, 5)
	assert.InDelta(t, 10.0, pts[1].X, 1e-9, "middle top bar")

	data.BarCount = 0
	assert.Empty(t, data.BarPositions())
}

func TestDrawASCIISectionDiagram(t *testing.T) {
	out := DrawASCIISectionDiagram(sampleSection())

	assert.Contains(t, out, "COLUMN SECTION")
	assert.Equal(t, 4, strings.Count(out, "●")-1, "four bars plus the legend marker")
	assert.Contains(t, out, "h = 40 cm")
	assert.Contains(t, out, "b = 20 cm")
	assert.Contains(t, out, "As required = 15.31 cm²")

	data := sampleSection()
	data.Required = optional.NotApplicable[float64]("no axial load")
	assert.Contains(t, DrawASCIISectionDiagram(data), "As required = N/A cm²")

	assert.Empty(t, DrawASCIISectionDiagram(SectionDiagramData{Width: 0, Height: 40}))
}

func TestDrawSlendernessScale(t *testing.T) {
	out := DrawSlendernessScale(36.37, optional.Of(0.6398))
	assert.Contains(t, out, "λ = 36.37, α = 0.6398")
	assert.Equal(t, 1, strings.Count(out, "▲"))

	out = DrawSlendernessScale(400, optional.NotApplicable[float64]("too slender"))
	assert.Contains(t, out, "α = N/A")

	assert.NotPanics(t, func() { DrawSlendernessScale(-1, optional.Of(0.86)) })
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("VERDICT", []string{"As = 4.52 cm² ≥ 4.00 cm²", "APPROVED"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	// every line has the same display width despite multi-byte runes
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), l)
	}
}

func TestExportSectionDiagram(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"section.png", "section.svg", "nested/section.pdf"} {
		t.Run(name, func(t *testing.T) {
			path, err := ExportSectionDiagram(sampleSection(), filepath.Join(dir, name))
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, name), path)

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}

	path, err := ExportSectionDiagram(sampleSection(), filepath.Join(dir, "section"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "section.png"), path)

	_, err = ExportSectionDiagram(SectionDiagramData{Width: 20}, filepath.Join(dir, "bad.png"))
	assert.Error(t, err)
}

func TestExportAlphaCurve(t *testing.T) {
	dir := t.TempDir()

	for _, lambda := range []float64{36.37, 60, 130} {
		path, err := ExportAlphaCurve(lambda, filepath.Join(dir, "alpha.svg"))
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<svg")
	}
}
