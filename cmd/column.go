package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/config"
	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/eurocode"
	"github.com/alexiusacademia/gorcc/internal/rebar"
)

var (
	// Column flags, shared by all column subcommands
	columnLength float64
	columnWidth  float64
	columnHeight float64
	columnNed    float64

	// Bar layout flags (check, report)
	layoutBars     int
	layoutDiameter int
	layoutStirrups int
	layoutTies     int
	layoutFace     string
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Rectangular column under centred compression",
	Long: `Design rectangular reinforced concrete columns under centred axial
compression with the simplified Eurocode 2 buckling method.

Subcommands:
  analyze  - Buckling verification and longitudinal steel area
  check    - Check a proposed bar layout against the verified area
  report   - Write a PDF calculation note

Connection types:
  articule-encastre  - pinned / fixed  (k = 0.7)
  articule-articule  - pinned / pinned (k = 1.0)
  encastre-encastre  - fixed / fixed   (k = 0.5)

Units: free length in m, section in cm, Ned in MN.`,
}

func init() {
	rootCmd.AddCommand(columnCmd)

	// Materials and connection are config keys: their values are read
	// back from cfg, so they can also come from gorcc.yaml or GORCC_*.
	columnCmd.PersistentFlags().String("concrete", config.DefaultConcrete, "Concrete class, e.g. C25/30")
	columnCmd.PersistentFlags().String("steel", config.DefaultSteel, "Steel type, e.g. B500")

	// Geometry
	columnCmd.PersistentFlags().Float64VarP(&columnLength, "length", "l", 0, "Free length l0 (m) [required]")
	columnCmd.PersistentFlags().Float64VarP(&columnWidth, "width", "b", 0, "Section width b (cm) [required]")
	columnCmd.PersistentFlags().Float64VarP(&columnHeight, "height", "H", 0, "Section height h (cm) [required]")
	columnCmd.PersistentFlags().StringP("connection", "c", config.DefaultConnection, "End connection type")

	// Loading
	columnCmd.PersistentFlags().Float64VarP(&columnNed, "ned", "n", 0, "Design axial load Ned (MN)")

	columnCmd.MarkPersistentFlagRequired("length")
	columnCmd.MarkPersistentFlagRequired("width")
	columnCmd.MarkPersistentFlagRequired("height")
}

// addLayoutFlags registers the bar layout flags on cmd.
func addLayoutFlags(cmd *cobra.Command) {
	def := rebar.DefaultProposal(0)
	cmd.Flags().IntVar(&layoutBars, "bars", def.BarCount, "Number of longitudinal bars on the face")
	cmd.Flags().IntVarP(&layoutDiameter, "diameter", "d", def.BarDiameter, "Longitudinal bar diameter (mm)")
	cmd.Flags().IntVar(&layoutStirrups, "stirrups", def.Stirrups, "Number of stirrups crossing the face")
	cmd.Flags().IntVar(&layoutTies, "ties", def.Ties, "Number of ties crossing the face")
	cmd.Flags().StringVar(&layoutFace, "face", string(rebar.FaceWidth), "Face the bars are spread along: width or height")

	// read back from cfg (transverse_diameter, cover)
	cmd.Flags().Int("transverse", config.DefaultTransverseDiameter, "Transverse bar diameter (mm)")
	cmd.Flags().Float64("cover", config.DefaultCover, "Concrete cover (cm)")
}

func columnRequest() column.Request {
	return column.Request{
		Concrete: cfg.Concrete,
		Steel:    cfg.Steel,
		Column: column.Input{
			FreeLength:     columnLength,
			SectionWidth:   columnWidth,
			SectionHeight:  columnHeight,
			ConnectionType: cfg.Connection,
			Ned:            columnNed,
		},
	}
}

func calculateColumn() (*column.Calculation, error) {
	req := columnRequest()
	calc, err := column.Calculate(catalog, req)
	if err != nil {
		return nil, err
	}

	if !calc.ConnectionKnown {
		logger.Warn("unknown connection type, using default buckling coefficient",
			zap.String("connection", req.Column.ConnectionType),
			zap.Float64("k", eurocode.DefaultBucklingCoefficient),
		)
	}
	r := calc.Buckling
	logger.Debug("column calculated",
		zap.String("concrete", req.Concrete),
		zap.String("steel", req.Steel),
		zap.Float64("lambda", r.Lambda),
		zap.String("alpha", r.Alpha.Text("%.4f")),
		zap.String("as_verif", r.AsVerif.Text("%.6f")),
	)
	return calc, nil
}

// layoutProposal builds the bar layout from the flags. Cover and transverse
// diameter come from cfg.
func layoutProposal() (rebar.Proposal, error) {
	face, err := rebar.ParseFace(layoutFace)
	if err != nil {
		return rebar.Proposal{}, err
	}
	p := rebar.DefaultProposal(face.Dimension(columnWidth, columnHeight))
	p.BarCount = layoutBars
	p.BarDiameter = layoutDiameter
	p.Stirrups = layoutStirrups
	p.Ties = layoutTies
	p.TransverseDiameter = cfg.TransverseDiameter
	p.Cover = cfg.Cover
	return p, nil
}

func sectionDiagramData(calc *column.Calculation, p *rebar.Proposal, ev *rebar.Evaluation) diagram.SectionDiagramData {
	data := diagram.SectionDiagramData{
		Width:    calc.Input.SectionWidth,
		Height:   calc.Input.SectionHeight,
		Cover:    cfg.Cover,
		Required: calc.Buckling.AsVerifCm2(),
	}
	if p != nil {
		data.BarCount = p.BarCount
		data.BarDiameter = p.BarDiameter
		data.TransverseDiameter = p.TransverseDiameter
		data.Cover = p.Cover
	}
	if ev != nil {
		data.Achieved = ev.AchievedArea
	}
	return data
}
