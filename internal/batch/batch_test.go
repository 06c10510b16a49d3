package batch

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/eurocode"
	"github.com/alexiusacademia/gorcc/internal/rebar"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var header = []interface{}{"Name", "Concrete", "Steel", "Length", "Width", "Height", "Connection", "Ned", "Bars", "Diameter", "Face"}

func writeWorkbook(t *testing.T, rows ...[]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "cases.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadFile(t *testing.T) {
	path := writeWorkbook(t,
		header,
		[]interface{}{"P1", "C20/25", "B500", 3.0, 20, 40, "articule-encastre", 1.0, 4, 12, "hauteur"},
		[]interface{}{},
		[]interface{}{"", "C25/30", "B500", "3,5", 25, 25, "encastre-encastre", "0,8"},
		[]interface{}{"P4", "C20/25", "B500", "three", 20, 40, "articule-encastre", 1.0},
	)

	cases, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, cases, 3, "blank row skipped")

	p1 := cases[0]
	require.NoError(t, p1.Err)
	assert.Equal(t, 2, p1.Row)
	assert.Equal(t, "P1", p1.Name)
	assert.Equal(t, column.Request{
		Concrete: "C20/25",
		Steel:    "B500",
		Column: column.Input{
			FreeLength:     3.0,
			SectionWidth:   20,
			SectionHeight:  40,
			ConnectionType: eurocode.PinnedFixed,
			Ned:            1.0,
		},
	}, p1.Request)
	require.NotNil(t, p1.Proposal)
	assert.Equal(t, 40.0, p1.Proposal.FaceDimension)
	assert.Equal(t, 12, p1.Proposal.BarDiameter)
	assert.Equal(t, 2, p1.Proposal.Ties, "default from the initial form")

	decimalComma := cases[1]
	require.NoError(t, decimalComma.Err)
	assert.Equal(t, "row 4", decimalComma.Name)
	assert.Equal(t, 3.5, decimalComma.Request.Column.FreeLength)
	assert.Equal(t, 0.8, decimalComma.Request.Column.Ned)
	assert.Nil(t, decimalComma.Proposal)

	var rowErr *RowError
	require.True(t, errors.As(cases[2].Err, &rowErr))
	assert.Equal(t, 5, rowErr.Row)
	assert.Equal(t, ColLength, rowErr.Column)
	assert.True(t, errors.Is(cases[2].Err, strconv.ErrSyntax))
}

func TestReadFile_DefaultFace(t *testing.T) {
	path := writeWorkbook(t,
		header,
		[]interface{}{"P1", "C20/25", "B500", 3.0, 20, 40, "articule-encastre", 1.0, 4, 12},
	)

	cases, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	require.NotNil(t, cases[0].Proposal)
	assert.Equal(t, 20.0, cases[0].Proposal.FaceDimension, "bars go along the width unless a face is given")
}

func TestReadFile_MissingColumn(t *testing.T) {
	path := writeWorkbook(t,
		[]interface{}{"Concrete", "Steel", "Length"},
		[]interface{}{"C20/25", "B500", 3.0},
	)

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing column "width"`)
}

func TestReadFile_NoCases(t *testing.T) {
	_, err := ReadFile(writeWorkbook(t, header))
	assert.Error(t, err)

	_, err = ReadFile(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func referenceCase(row int, ned float64) Case {
	return Case{
		Row:  row,
		Name: "P" + strconv.Itoa(row),
		Request: column.Request{
			Concrete: "C20/25",
			Steel:    "B500",
			Column: column.Input{
				FreeLength:     3.0,
				SectionWidth:   20,
				SectionHeight:  40,
				ConnectionType: eurocode.PinnedFixed,
				Ned:            ned,
			},
		},
	}
}

func TestRun(t *testing.T) {
	approved := referenceCase(2, 0.3)
	prop := rebar.DefaultProposal(40)
	approved.Proposal = &prop

	rejected := referenceCase(3, 1.0)
	rejectedProp := rebar.DefaultProposal(40)
	rejected.Proposal = &rejectedProp

	unknown := referenceCase(4, 1.0)
	unknown.Request.Concrete = "C90/105"

	degenerate := referenceCase(5, 1.0)
	degenerate.Request.Column.SectionWidth = 0

	malformed := referenceCase(6, 1.0)
	malformed.Err = &RowError{Row: 6, Column: ColNed, Value: "x", Err: strconv.ErrSyntax}

	cases := []Case{approved, rejected, unknown, degenerate, malformed, referenceCase(7, 0)}

	outcomes, err := Run(context.Background(), eurocode.DefaultCatalog(), cases, Options{Workers: 2, Logger: zap.NewNop()})
	require.NoError(t, err)
	require.Len(t, outcomes, len(cases))

	for i, o := range outcomes {
		assert.Equal(t, cases[i].Row, o.Case.Row, "outcomes keep input order")
	}

	require.NoError(t, outcomes[0].Err)
	assert.True(t, outcomes[0].Evaluation.Approved.MustGet())
	assert.False(t, outcomes[1].Evaluation.Approved.MustGet())

	var matErr *column.UnknownMaterialError
	assert.True(t, errors.As(outcomes[2].Err, &matErr))
	var geomErr *column.DegenerateGeometryError
	assert.True(t, errors.As(outcomes[3].Err, &geomErr))
	assert.True(t, errors.Is(outcomes[4].Err, strconv.ErrSyntax))

	require.NoError(t, outcomes[5].Err)
	assert.False(t, outcomes[5].Calculation.Buckling.AsVerif.Defined())

	assert.Equal(t, Summary{Total: 6, Failed: 3, Approved: 1, Rejected: 1}, Summarize(outcomes))
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cases := make([]Case, 50)
	for i := range cases {
		cases[i] = referenceCase(i+2, 1.0)
	}

	_, err := Run(ctx, eurocode.DefaultCatalog(), cases, Options{Workers: 4})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun_DefaultWorkers(t *testing.T) {
	cases := make([]Case, 20)
	for i := range cases {
		cases[i] = referenceCase(i+2, float64(i)/10)
	}

	outcomes, err := Run(context.Background(), eurocode.DefaultCatalog(), cases, Options{})
	require.NoError(t, err)
	for _, o := range outcomes {
		assert.NoError(t, o.Err)
		assert.NotNil(t, o.Calculation)
	}
}

func TestWriteResults(t *testing.T) {
	withLayout := referenceCase(2, 1.0)
	prop := rebar.DefaultProposal(40)
	prop.BarDiameter = 11
	withLayout.Proposal = &prop

	unknown := referenceCase(3, 1.0)
	unknown.Request.Steel = "S500"

	outcomes, err := Run(context.Background(), eurocode.DefaultCatalog(),
		[]Case{withLayout, unknown, referenceCase(4, 0)}, Options{Workers: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, outcomes))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, ResultColumns, rows[0])

	col := func(name string) int {
		for i, c := range ResultColumns {
			if c == name {
				return i
			}
		}
		t.Fatalf("no column %q", name)
		return -1
	}

	assert.Equal(t, "P2", rows[1][col("name")])
	assert.Equal(t, "0.001531", rows[1][col("as_verif")])
	assert.Equal(t, "15.31", rows[1][col("as_verif_cm2")])
	assert.Equal(t, "N/A", rows[1][col("verdict")])
	assert.Contains(t, rows[1][col("message")], "bar diameter not in the section table")

	assert.Contains(t, rows[2][col("message")], `error: row 3: unknown steel "S500"`)

	assert.Equal(t, "N/A", rows[3][col("as")])
	assert.Equal(t, "N/A", rows[3][col("as_verif")])
}

func TestWriteTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	cases, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	require.NoError(t, cases[0].Err)
	assert.Equal(t, "P1", cases[0].Name)
	require.NotNil(t, cases[0].Proposal)
	assert.Equal(t, rebar.DefaultProposal(40), *cases[0].Proposal)

	outcomes, err := Run(context.Background(), eurocode.DefaultCatalog(), cases, Options{Workers: 1})
	require.NoError(t, err)
	assert.False(t, outcomes[0].Evaluation.Approved.MustGet(), "4 HA12 is short of 15.31 cm²")
}
