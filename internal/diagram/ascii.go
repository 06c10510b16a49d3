package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/alexiusacademia/gorcc/internal/optional"
)

// Point is a position in the section plane (cm), origin at bottom-left.
type Point struct {
	X float64
	Y float64
}

// SectionDiagramData holds data for drawing a column cross-section
type SectionDiagramData struct {
	// Column dimensions
	Width  float64 // b (cm)
	Height float64 // h (cm)

	// Reinforcement layout
	Cover              float64 // cm
	BarCount           int
	BarDiameter        int // mm
	TransverseDiameter int // mm

	// Results
	Required optional.Value[float64] // AsVerif (cm²)
	Achieved float64                 // cm², 0 if no layout
}

// BarPositions spreads the bars over the top and bottom faces, half on
// each, starting from the corners. An odd bar goes on top.
func (d SectionDiagramData) BarPositions() []Point {
	if d.BarCount < 1 {
		return nil
	}

	offset := d.Cover + float64(d.TransverseDiameter)/10 + float64(d.BarDiameter)/20
	top := (d.BarCount + 1) / 2
	bottom := d.BarCount - top

	pts := make([]Point, 0, d.BarCount)
	pts = append(pts, row(top, offset, d.Width-offset, d.Height-offset)...)
	pts = append(pts, row(bottom, offset, d.Width-offset, offset)...)
	return pts
}

func row(n int, x0, x1, y float64) []Point {
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []Point{{X: (x0 + x1) / 2, Y: y}}
	}
	pts := make([]Point, n)
	step := (x1 - x0) / float64(n-1)
	for i := range pts {
		pts[i] = Point{X: x0 + float64(i)*step, Y: y}
	}
	return pts
}

// DrawASCIISectionDiagram draws the column section with its bars
func DrawASCIISectionDiagram(data SectionDiagramData) string {
	if data.Width <= 0 || data.Height <= 0 {
		return ""
	}

	var sb strings.Builder

	// Scale: keep the aspect ratio, a character cell is about twice as tall as wide
	widthChars := 30
	heightChars := int(math.Round(float64(widthChars) * data.Height / data.Width / 2))
	if data.Height > data.Width {
		heightChars = 14
		widthChars = int(math.Round(float64(heightChars) * 2 * data.Width / data.Height))
	}
	widthChars = max(widthChars, 8)
	heightChars = max(heightChars, 4)

	grid := make([][]rune, heightChars)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", widthChars))
	}
	for _, p := range data.BarPositions() {
		col := int(p.X / data.Width * float64(widthChars-1))
		line := heightChars - 1 - int(p.Y/data.Height*float64(heightChars-1))
		col = min(max(col, 0), widthChars-1)
		line = min(max(line, 0), heightChars-1)
		grid[line][col] = '●'
	}

	sb.WriteString("\n")
	sb.WriteString("  COLUMN SECTION\n")
	sb.WriteString("  ──────────────\n")
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", widthChars)))
	for i, line := range grid {
		sb.WriteString(fmt.Sprintf("  │%s│", string(line)))
		if i == heightChars/2 {
			sb.WriteString(fmt.Sprintf("  h = %.0f cm", data.Height))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", widthChars)))
	sb.WriteString(fmt.Sprintf("  %s\n", center(fmt.Sprintf("b = %.0f cm", data.Width), widthChars+2)))

	// Legend
	sb.WriteString("\n")
	if data.BarCount > 0 {
		sb.WriteString(fmt.Sprintf("  ● = %d HA%d, cover %.1f cm\n", data.BarCount, data.BarDiameter, data.Cover))
		sb.WriteString(fmt.Sprintf("  As provided = %.2f cm²\n", data.Achieved))
	}
	sb.WriteString(fmt.Sprintf("  As required = %s cm²\n", data.Required.Text("%.2f")))

	return sb.String()
}

// Slenderness scale bounds
const (
	scaleMax   = 150.0
	scaleChars = 50
)

// DrawSlendernessScale draws λ on a scale marking the two α branches and
// the limit of the simplified method.
func DrawSlendernessScale(lambda float64, alpha optional.Value[float64]) string {
	var sb strings.Builder

	pos := func(v float64) int {
		return int(math.Round(math.Max(0, math.Min(v, scaleMax)) / scaleMax * scaleChars))
	}

	axis := []rune(strings.Repeat("─", scaleChars+1))
	axis[0] = '├'
	axis[pos(60)] = '┼'
	axis[pos(120)] = '┼'
	axis[scaleChars] = '┤'

	marker := []rune(strings.Repeat(" ", scaleChars+1))
	marker[pos(lambda)] = '▲'

	sb.WriteString("\n")
	sb.WriteString("  SLENDERNESS\n")
	sb.WriteString("  ───────────\n")
	sb.WriteString(fmt.Sprintf("  %s\n", "stocky"+strings.Repeat(" ", pos(60)-6)+"slender"+strings.Repeat(" ", pos(120)-pos(60)-7)+"N/A"))
	sb.WriteString(fmt.Sprintf("  %s\n", string(axis)))
	sb.WriteString(fmt.Sprintf("  %s\n", string(marker)))
	sb.WriteString(fmt.Sprintf("  0%s60%s120%s%.0f\n",
		strings.Repeat(" ", pos(60)-2), strings.Repeat(" ", pos(120)-pos(60)-2), strings.Repeat(" ", scaleChars-pos(120)-4), scaleMax))
	sb.WriteString(fmt.Sprintf("\n  λ = %.2f, α = %s\n", lambda, alpha.Text("%.4f")))

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes; %-*s counts bytes and breaks on ² or λ.
func pad(s string, n int) string {
	return s + strings.Repeat(" ", max(n-utf8.RuneCountInString(s), 0))
}

func center(s string, n int) string {
	left := max((n-utf8.RuneCountInString(s))/2, 0)
	return strings.Repeat(" ", left) + s
}
