// Package batch evaluates a spreadsheet of column cases.
package batch

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/rebar"
)

// Input sheet headers. The first seven are required; the layout columns
// are optional and a case is only checked against a layout when "bars" is
// filled in.
const (
	ColName       = "name"
	ColConcrete   = "concrete"
	ColSteel      = "steel"
	ColLength     = "length"
	ColWidth      = "width"
	ColHeight     = "height"
	ColConnection = "connection"
	ColNed        = "ned"
	ColBars       = "bars"
	ColDiameter   = "diameter"
	ColStirrups   = "stirrups"
	ColTies       = "ties"
	ColTransverse = "transverse"
	ColCover      = "cover"
	ColFace       = "face"
)

var requiredColumns = []string{ColConcrete, ColSteel, ColLength, ColWidth, ColHeight, ColConnection, ColNed}

// TemplateColumns is the header row of a case sheet.
var TemplateColumns = []string{
	ColName, ColConcrete, ColSteel, ColLength, ColWidth, ColHeight, ColConnection, ColNed,
	ColBars, ColDiameter, ColStirrups, ColTies, ColTransverse, ColCover, ColFace,
}

// Case is one row of the input sheet.
type Case struct {
	Row      int // 1-based sheet row
	Name     string
	Request  column.Request
	Proposal *rebar.Proposal

	// Err is set when the row could not be parsed.
	Err error
}

// RowError reports a malformed cell.
type RowError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: invalid value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ReadFile reads cases from the first sheet of an xlsx file.
func ReadFile(path string) ([]Case, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readCases(f)
}

// Read reads cases from the first sheet of an xlsx stream.
func Read(r io.Reader) ([]Case, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readCases(f)
}

func readCases(f *excelize.File) ([]Case, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no cases", sheet)
	}

	header := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("sheet %q: missing column %q", sheet, col)
		}
	}

	var cases []Case
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		cases = append(cases, parseRow(i+1, rows[i], header))
	}
	return cases, nil
}

func parseRow(rowNum int, row []string, header map[string]int) Case {
	c := Case{Row: rowNum}
	p := rowParser{row: rowNum, cells: row, header: header}

	c.Name = p.text(ColName)
	if c.Name == "" {
		c.Name = fmt.Sprintf("row %d", rowNum)
	}
	c.Request = column.Request{
		Concrete: p.text(ColConcrete),
		Steel:    p.text(ColSteel),
		Column: column.Input{
			FreeLength:     p.number(ColLength, 0),
			SectionWidth:   p.number(ColWidth, 0),
			SectionHeight:  p.number(ColHeight, 0),
			ConnectionType: p.text(ColConnection),
			Ned:            p.number(ColNed, 0),
		},
	}

	if p.text(ColBars) != "" {
		face := rebar.FaceWidth
		if s := p.text(ColFace); s != "" {
			if f, err := rebar.ParseFace(s); err != nil {
				p.fail(ColFace, s, err)
			} else {
				face = f
			}
		}
		prop := rebar.DefaultProposal(face.Dimension(c.Request.Column.SectionWidth, c.Request.Column.SectionHeight))
		prop.BarCount = p.integer(ColBars, prop.BarCount)
		prop.BarDiameter = p.integer(ColDiameter, prop.BarDiameter)
		prop.Stirrups = p.integer(ColStirrups, prop.Stirrups)
		prop.Ties = p.integer(ColTies, prop.Ties)
		prop.TransverseDiameter = p.integer(ColTransverse, prop.TransverseDiameter)
		prop.Cover = p.number(ColCover, prop.Cover)
		c.Proposal = &prop
	}

	c.Err = p.err
	return c
}

// rowParser reads typed cells and keeps the first error.
type rowParser struct {
	row    int
	cells  []string
	header map[string]int
	err    error
}

func (p *rowParser) text(col string) string {
	i, ok := p.header[col]
	if !ok || i >= len(p.cells) {
		return ""
	}
	return strings.TrimSpace(p.cells[i])
}

func (p *rowParser) number(col string, def float64) float64 {
	s := p.text(col)
	if s == "" {
		return def
	}
	// decimal comma
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		p.fail(col, s, err)
		return def
	}
	return v
}

func (p *rowParser) integer(col string, def int) int {
	s := p.text(col)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.fail(col, s, err)
		return def
	}
	return v
}

func (p *rowParser) fail(col, value string, err error) {
	if p.err == nil {
		p.err = &RowError{Row: p.row, Column: col, Value: value, Err: err}
	}
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// WriteTemplate writes an input workbook with the header row and one
// example case.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cases"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	header := make([]interface{}, len(TemplateColumns))
	for i, c := range TemplateColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	example := []interface{}{"P1", "C20/25", "B500", 3.0, 20, 40, "articule-encastre", 1.0, 4, 12, 1, 2, 6, 2.5, "height"}
	if err := f.SetSheetRow(sheet, "A2", &example); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}
