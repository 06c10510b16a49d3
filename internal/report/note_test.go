package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/eurocode"
	"github.com/alexiusacademia/gorcc/internal/rebar"
)

func calculation(t *testing.T, ned float64) *column.Calculation {
	t.Helper()
	calc, err := column.Calculate(eurocode.DefaultCatalog(), column.Request{
		Concrete: "C20/25",
		Steel:    "B500",
		Column: column.Input{
			FreeLength:     3.0,
			SectionWidth:   20,
			SectionHeight:  40,
			ConnectionType: eurocode.PinnedFixed,
			Ned:            ned,
		},
	})
	require.NoError(t, err)
	return calc
}

func TestWrite(t *testing.T) {
	calc := calculation(t, 1.0)
	p := rebar.DefaultProposal(40)
	p.BarDiameter = 25

	var buf bytes.Buffer
	ref, err := Write(&buf, Note{
		Project:     "Warehouse extension",
		Author:      "J. Doe",
		Date:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Calculation: calc,
		Proposal:    &p,
		Evaluation:  rebar.Evaluate(p, calc.Buckling.AsVerif),
		Suggestions: rebar.Suggest(calc.Buckling.AsVerifCm2().MustGet()),
	})
	require.NoError(t, err)

	_, err = uuid.Parse(ref)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestWrite_NotApplicableValues(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(&buf, Note{Calculation: calculation(t, 0)})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWrite_NoCalculation(t *testing.T) {
	_, err := Write(&bytes.Buffer{}, Note{})
	assert.True(t, errors.Is(err, ErrNoCalculation))
}

func TestWriteFile_WithDiagram(t *testing.T) {
	dir := t.TempDir()
	calc := calculation(t, 1.0)

	png, err := diagram.ExportSectionDiagram(diagram.SectionDiagramData{
		Width:              20,
		Height:             40,
		Cover:              2.5,
		BarCount:           4,
		BarDiameter:        25,
		TransverseDiameter: 6,
		Required:           calc.Buckling.AsVerifCm2(),
		Achieved:           19.64,
	}, filepath.Join(dir, "section.png"))
	require.NoError(t, err)

	path := filepath.Join(dir, "notes", "column.pdf")
	_, err = WriteFile(path, Note{Calculation: calc, DiagramPNG: png})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	_, err = WriteFile(filepath.Join(dir, "missing.pdf"), Note{Calculation: calc, DiagramPNG: filepath.Join(dir, "nope.png")})
	assert.Error(t, err)
}

func TestASCII(t *testing.T) {
	assert.Equal(t, "lambda >= 120: calculation not applicable", ascii(column.ConditionNotApplicable))
	assert.Equal(t, "no axial load (Ned <= 0)", ascii("no axial load (Ned ≤ 0)"))
}
