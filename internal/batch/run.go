package batch

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/eurocode"
	"github.com/alexiusacademia/gorcc/internal/optional"
	"github.com/alexiusacademia/gorcc/internal/rebar"
)

// Options configures a batch run.
type Options struct {
	Workers int // <= 0 means GOMAXPROCS
	Logger  *zap.Logger
}

// Outcome is the result of one case. Err holds a parse or calculation
// error for that row only.
type Outcome struct {
	Case        Case
	Calculation *column.Calculation
	Evaluation  *rebar.Evaluation
	Err         error
}

// Summary counts outcomes.
type Summary struct {
	Total    int
	Failed   int
	Approved int
	Rejected int
}

// Summarize counts failed rows and layout verdicts.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Err != nil {
			s.Failed++
			continue
		}
		if o.Evaluation == nil {
			continue
		}
		if ok, defined := o.Evaluation.Approved.Get(); defined {
			if ok {
				s.Approved++
			} else {
				s.Rejected++
			}
		}
	}
	return s
}

// Run evaluates every case against the catalog. Rows are independent: a
// failing row is reported in its Outcome and the others still run. The
// returned error is only set when ctx is cancelled.
func Run(ctx context.Context, cat *eurocode.Catalog, cases []Case, opts Options) ([]Outcome, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]Outcome, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range cases {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = evaluate(cat, cases[i])
			if err := outcomes[i].Err; err != nil {
				log.Warn("case failed", zap.Int("row", cases[i].Row), zap.String("name", cases[i].Name), zap.Error(err))
			} else {
				log.Debug("case evaluated", zap.Int("row", cases[i].Row), zap.String("name", cases[i].Name))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	if err := ctx.Err(); err != nil {
		return outcomes, err
	}

	s := Summarize(outcomes)
	log.Info("batch finished",
		zap.Int("cases", s.Total),
		zap.Int("failed", s.Failed),
		zap.Int("approved", s.Approved),
		zap.Int("rejected", s.Rejected),
		zap.Int("workers", workers),
	)
	return outcomes, nil
}

func evaluate(cat *eurocode.Catalog, c Case) Outcome {
	out := Outcome{Case: c}
	if c.Err != nil {
		out.Err = c.Err
		return out
	}

	calc, err := column.Calculate(cat, c.Request)
	if err != nil {
		out.Err = fmt.Errorf("row %d: %w", c.Row, err)
		return out
	}
	out.Calculation = calc

	if c.Proposal != nil {
		out.Evaluation = rebar.Evaluate(*c.Proposal, calc.Buckling.AsVerif)
	}
	return out
}

// ResultColumns is the header row of the results sheet.
var ResultColumns = []string{
	"row", "name", "concrete", "steel", "fcd", "fyd", "k", "lf", "lambda", "alpha",
	"kh", "ks", "ac", "as", "asmin", "asmax", "as_verif", "as_verif_cm2", "governing",
	"as_provided_cm2", "spacing_cm", "verdict", "message",
}

// ResultsSheet is the name of the results sheet.
const ResultsSheet = "Results"

// WriteResults writes one results row per outcome. Not applicable values
// are written as "N/A", failed rows carry the error in the message column.
func WriteResults(w io.Writer, outcomes []Outcome) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return err
	}

	header := make([]interface{}, len(ResultColumns))
	for i, c := range ResultColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(ResultsSheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(ResultColumns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ResultsSheet, "A1", last, bold); err != nil {
		return err
	}

	for i, o := range outcomes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := resultRow(o)
		if err := f.SetSheetRow(ResultsSheet, cell, &row); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func resultRow(o Outcome) []interface{} {
	row := []interface{}{o.Case.Row, o.Case.Name, o.Case.Request.Concrete, o.Case.Request.Steel}
	if o.Err != nil {
		for len(row) < len(ResultColumns)-1 {
			row = append(row, "")
		}
		return append(row, "error: "+o.Err.Error())
	}

	c, r := o.Calculation, o.Calculation.Buckling
	row = append(row,
		c.Resistances.Fcd, c.Resistances.Fyd, r.K, r.Lf, r.Lambda, cellValue(r.Alpha),
		cellValue(r.Kh), cellValue(r.Ks), r.Ac, cellValue(r.As), cellValue(r.Asmin), cellValue(r.Asmax),
		cellValue(r.AsVerif), cellValue(optional.Map(r.AsVerifCm2(), round2)), r.Governing,
	)

	if ev := o.Evaluation; ev != nil {
		verdict := optional.NA
		if ok, defined := ev.Approved.Get(); defined {
			verdict = "not approved"
			if ok {
				verdict = "approved"
			}
		}
		row = append(row, ev.AchievedArea, round2(ev.Spacing), verdict)
	} else {
		row = append(row, "", "", "")
	}

	msg := r.Message
	if o.Evaluation != nil && len(o.Evaluation.Warnings) > 0 {
		msg += "; " + o.Evaluation.Warnings[0].Error()
	}
	return append(row, msg)
}

func cellValue(v optional.Value[float64]) interface{} {
	if x, ok := v.Get(); ok {
		return x
	}
	return optional.NA
}

func round2(x float64) float64 {
	return eurocode.Round(x, 2)
}
