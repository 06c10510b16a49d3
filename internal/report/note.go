// Package report renders a column calculation as a PDF calculation note.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/optional"
	"github.com/alexiusacademia/gorcc/internal/rebar"
)

// Note is the content of a calculation note.
type Note struct {
	Title   string
	Project string
	Author  string
	Date    time.Time // zero means now

	Calculation *column.Calculation

	// Optional bar layout check
	Proposal    *rebar.Proposal
	Evaluation  *rebar.Evaluation
	Suggestions []rebar.Suggestion

	// Optional PNG drawing of the section
	DiagramPNG string
}

// ErrNoCalculation is returned when a note has nothing to report.
var ErrNoCalculation = errors.New("report: note has no calculation")

const (
	labelWidth = 80.0
	lineHeight = 6.0
)

// Write renders the note as PDF to w and returns the note reference.
func Write(w io.Writer, n Note) (string, error) {
	if n.Calculation == nil || n.Calculation.Buckling == nil {
		return "", ErrNoCalculation
	}
	if n.Title == "" {
		n.Title = "Reinforced Concrete Column - Calculation Note"
	}
	if n.Date.IsZero() {
		n.Date = time.Now()
	}
	ref := uuid.NewString()

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(n.Title, true)
	pdf.SetAuthor(n.Author, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Ref. %s - page %d", ref, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(n.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if n.Project != "" {
		pdf.Cell(0, lineHeight, tr(fmt.Sprintf("Project: %s", n.Project)))
		pdf.Ln(lineHeight)
	}
	if n.Author != "" {
		pdf.Cell(0, lineHeight, tr(fmt.Sprintf("Author: %s", n.Author)))
		pdf.Ln(lineHeight)
	}
	pdf.Cell(0, lineHeight, fmt.Sprintf("Date: %s", n.Date.Format("2006-01-02")))
	pdf.Ln(lineHeight)
	pdf.Cell(0, lineHeight, fmt.Sprintf("Reference: %s", ref))
	pdf.Ln(10)

	c := n.Calculation
	r := c.Buckling

	section := func(title string) {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	row := func(label, value string) {
		pdf.CellFormat(labelWidth, lineHeight, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, lineHeight, tr(value), "", 1, "L", false, 0, "")
	}

	section("1. Materials")
	row("Concrete class", c.Concrete.Name)
	row("fck / gamma c", fmt.Sprintf("%.0f MPa / %.2f", c.Concrete.Fck, c.Concrete.GammaC))
	row("fcd = fck / gamma c", fmt.Sprintf("%.2f MPa", c.Resistances.Fcd))
	row("Steel type", c.Steel.Name)
	row("fyk / gamma s", fmt.Sprintf("%.0f MPa / %.2f", c.Steel.Fyk, c.Steel.GammaS))
	row("fyd = fyk / gamma s", fmt.Sprintf("%.2f MPa", c.Resistances.Fyd))

	section("2. Column")
	row("Free length l0", fmt.Sprintf("%.2f m", c.Input.FreeLength))
	row("Section b × h", fmt.Sprintf("%.0f × %.0f cm", c.Input.SectionWidth, c.Input.SectionHeight))
	conn := c.Connection.Label
	if !c.ConnectionKnown {
		conn = fmt.Sprintf("%s (unknown, k defaults to %.1f)", c.Connection.ID, c.Connection.K)
	}
	row("End connections", conn)
	row("Axial load Ned", fmt.Sprintf("%.3f MN", c.Input.Ned))

	section("3. Buckling")
	row("k", fmt.Sprintf("%.2f", r.K))
	row("lf = k · l0", fmt.Sprintf("%.3f m", r.Lf))
	row("lambda = lf · sqrt(12) / a", fmt.Sprintf("%.2f", r.Lambda))
	row("alpha", r.Alpha.Text("%.4f"))
	row("", ascii(r.AlphaCondition))
	row("Kh", r.Kh.Text("%.4f"))
	row("Ks", r.Ks.Text("%.0f"))

	section("4. Longitudinal reinforcement")
	row("Ac", fmt.Sprintf("%.4f m²", r.Ac))
	row("As theoretical", area(r.As))
	row("As min", area(r.Asmin))
	row("As max", area(r.Asmax))
	pdf.SetFont("Helvetica", "B", 10)
	row("As verified", area(r.AsVerif))
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, lineHeight, tr(ascii(r.Message)), "", "L", false)

	if n.Proposal != nil && n.Evaluation != nil {
		p, ev := n.Proposal, n.Evaluation
		section("5. Proposed layout")
		row("Longitudinal bars", fmt.Sprintf("%d HA%d", p.BarCount, p.BarDiameter))
		row("Stirrups / ties", fmt.Sprintf("%d / %d HA%d", p.Stirrups, p.Ties, p.TransverseDiameter))
		row("Cover", fmt.Sprintf("%.1f cm", p.Cover))
		row("Studied face", fmt.Sprintf("%.0f cm", p.FaceDimension))
		row("As provided", fmt.Sprintf("%.2f cm²", ev.AchievedArea))
		row("Bar spacing", fmt.Sprintf("%.2f cm", ev.Spacing))
		pdf.SetFont("Helvetica", "B", 10)
		row("Verdict", verdict(ev.Approved))
		pdf.SetFont("Helvetica", "", 10)
		for _, msg := range ev.Warnings.Strings() {
			pdf.MultiCell(0, lineHeight, tr("Warning: "+ascii(msg)), "", "L", false)
		}
	}

	if len(n.Suggestions) > 0 {
		section("Suggested layouts")
		for _, s := range n.Suggestions {
			row(fmt.Sprintf("%d HA%d", s.Count, s.Diameter), fmt.Sprintf("%.2f cm² (ratio %.2f)", s.Area, s.Ratio))
		}
	}

	if n.DiagramPNG != "" {
		pdf.AddPage()
		section("Section drawing")
		pdf.ImageOptions(n.DiagramPNG, 30, pdf.GetY()+5, 150, 0, false,
			gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return "", fmt.Errorf("render note: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}
	return ref, nil
}

// WriteFile renders the note to path and returns the note reference.
func WriteFile(path string, n Note) (string, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	ref, err := Write(f, n)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return ref, err
}

func area(v optional.Value[float64]) string {
	m2, ok := v.Get()
	if !ok {
		return fmt.Sprintf("%s (%s)", optional.NA, ascii(v.Reason()))
	}
	return fmt.Sprintf("%.6f m² = %.2f cm²", m2, m2*1e4)
}

func verdict(v optional.Value[bool]) string {
	ok, defined := v.Get()
	switch {
	case !defined:
		return "not applicable (" + ascii(v.Reason()) + ")"
	case ok:
		return "APPROVED"
	default:
		return "NOT APPROVED"
	}
}

// The core PDF fonts are cp1252: spell out the symbols it lacks.
var symbols = strings.NewReplacer(
	"λ", "lambda",
	"α", "alpha",
	"γ", "gamma ",
	"≤", "<=",
	"≥", ">=",
	"√", "sqrt",
)

func ascii(s string) string {
	return symbols.Replace(s)
}
