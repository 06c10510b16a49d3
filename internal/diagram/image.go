package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gorcc/internal/column"
)

var (
	concreteFill = color.RGBA{R: 200, G: 200, B: 200, A: 150}
	coverColor   = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	steelColor   = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	limitColor   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// ExportSectionDiagram exports the column section with its bars to an image
// file and returns the path written.
func ExportSectionDiagram(data SectionDiagramData, filename string) (string, error) {
	if data.Width <= 0 || data.Height <= 0 {
		return "", fmt.Errorf("cannot draw a %.1f × %.1f cm section", data.Width, data.Height)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Column Section %.0f × %.0f cm", data.Width, data.Height)
	p.X.Label.Text = "Width (cm)"
	p.Y.Label.Text = "Height (cm)"

	// Concrete section
	section, err := plotter.NewPolygon(plotter.XYs{
		{X: 0, Y: 0},
		{X: data.Width, Y: 0},
		{X: data.Width, Y: data.Height},
		{X: 0, Y: data.Height},
	})
	if err != nil {
		return "", err
	}
	section.Color = concreteFill
	section.LineStyle.Width = vg.Points(2)
	section.LineStyle.Color = color.Black
	p.Add(section)

	// Cover line
	if c := data.Cover; c > 0 && 2*c < data.Width && 2*c < data.Height {
		coverLine, err := plotter.NewLine(plotter.XYs{
			{X: c, Y: c},
			{X: data.Width - c, Y: c},
			{X: data.Width - c, Y: data.Height - c},
			{X: c, Y: data.Height - c},
			{X: c, Y: c},
		})
		if err != nil {
			return "", err
		}
		coverLine.LineStyle.Width = vg.Points(1)
		coverLine.LineStyle.Color = coverColor
		coverLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(coverLine)
	}

	// Longitudinal bars
	if bars := data.BarPositions(); len(bars) > 0 {
		pts := make(plotter.XYs, len(bars))
		for i, b := range bars {
			pts[i] = plotter.XY{X: b.X, Y: b.Y}
		}
		steel, err := plotter.NewScatter(pts)
		if err != nil {
			return "", err
		}
		steel.GlyphStyle.Color = steelColor
		steel.GlyphStyle.Radius = vg.Points(5)
		steel.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(steel)
	}

	// Annotations
	labels := []struct {
		x, y float64
		text string
	}{
		{data.Width / 2, -0.08 * data.Height, fmt.Sprintf("b=%.0fcm", data.Width)},
		{data.Width * 1.05, data.Height / 2, fmt.Sprintf("h=%.0fcm", data.Height)},
		{data.Width / 2, data.Height / 2, fmt.Sprintf("As,req=%scm²", data.Required.Text("%.2f"))},
	}
	if data.BarCount > 0 {
		labels = append(labels, struct {
			x, y float64
			text string
		}{data.Width / 2, data.Height/2 - 0.08*data.Height, fmt.Sprintf("%dHA%d=%.2fcm²", data.BarCount, data.BarDiameter, data.Achieved)})
	}

	for _, lbl := range labels {
		l, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: lbl.x, Y: lbl.y}},
			Labels: []string{lbl.text},
		})
		if err != nil {
			return "", err
		}
		p.Add(l)
	}

	p.X.Min, p.X.Max = -0.1*data.Width, 1.3*data.Width
	p.Y.Min, p.Y.Max = -0.15*data.Height, 1.1*data.Height

	return save(p, 6*vg.Inch, 6*vg.Inch, filename)
}

// curveSamples is the number of points per α branch.
const curveSamples = 120

// ExportAlphaCurve plots α(λ) over both branches of the simplified method
// and marks the column's slenderness when α is defined there.
func ExportAlphaCurve(lambda float64, filename string) (string, error) {
	p := plot.New()
	p.Title.Text = "Buckling Reduction Coefficient α(λ)"
	p.X.Label.Text = "Slenderness λ"
	p.Y.Label.Text = "α"
	p.Add(plotter.NewGrid())

	branches := []struct {
		from, to float64
		color    color.Color
	}{
		{0, column.LambdaBranch, color.RGBA{R: 0, G: 100, B: 0, A: 255}},
		{column.LambdaBranch, column.LambdaMax, color.RGBA{R: 0, G: 0, B: 200, A: 255}},
	}
	for _, br := range branches {
		pts := make(plotter.XYs, 0, curveSamples)
		for i := 0; i < curveSamples; i++ {
			l := br.from + (br.to-br.from)*float64(i)/curveSamples
			if a, ok := alphaAt(l); ok {
				pts = append(pts, plotter.XY{X: l, Y: a})
			}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = br.color
		p.Add(line)
	}

	// Method limit
	limit, err := plotter.NewLine(plotter.XYs{
		{X: column.LambdaMax, Y: 0},
		{X: column.LambdaMax, Y: 0.9},
	})
	if err != nil {
		return "", err
	}
	limit.LineStyle.Color = limitColor
	limit.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(limit)

	if a, ok := alphaAt(lambda); ok {
		point, err := plotter.NewScatter(plotter.XYs{{X: lambda, Y: a}})
		if err != nil {
			return "", err
		}
		point.GlyphStyle.Color = limitColor
		point.GlyphStyle.Radius = vg.Points(4)
		point.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(point)

		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: lambda + 2, Y: a + 0.02}},
			Labels: []string{fmt.Sprintf("λ=%.2f α=%.4f", lambda, a)},
		})
		if err != nil {
			return "", err
		}
		p.Add(lbl)
	}

	p.X.Min, p.X.Max = 0, 140
	p.Y.Min, p.Y.Max = 0, 0.9

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

func alphaAt(lambda float64) (float64, bool) {
	a, _ := column.Alpha(lambda)
	return a.Get()
}

// save writes the plot, choosing the format from the extension. Unknown
// extensions get ".png" appended.
func save(p *plot.Plot, width, height vg.Length, filename string) (string, error) {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}

	if err := p.Save(width, height, filename); err != nil {
		return "", fmt.Errorf("save diagram: %w", err)
	}
	return filename, nil
}
