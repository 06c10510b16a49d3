package rebar

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexiusacademia/gorcc/internal/eurocode"
	"github.com/alexiusacademia/gorcc/internal/optional"
)

// Layout warnings
var (
	ErrUnknownDiameter = errors.New("bar diameter not in the section table")
	ErrNoBars          = errors.New("at least one longitudinal bar is required")
	ErrBarsDoNotFit    = errors.New("bars do not fit on the studied face")
)

// Face selects which side of the section the bars are spread along.
type Face string

const (
	FaceWidth  Face = "width"
	FaceHeight Face = "height"
)

// ParseFace accepts "width"/"largeur" and "height"/"hauteur".
func ParseFace(s string) (Face, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "width", "largeur", "b":
		return FaceWidth, nil
	case "height", "hauteur", "h":
		return FaceHeight, nil
	}
	return "", fmt.Errorf("unknown face %q (want width or height)", s)
}

// Dimension returns the face length (cm) of a width × height section.
func (f Face) Dimension(width, height float64) float64 {
	if f == FaceWidth {
		return width
	}
	return height
}

// Proposal is a candidate bar layout for one face of the column.
type Proposal struct {
	BarCount           int     `json:"bar_count" yaml:"bar_count"`
	BarDiameter        int     `json:"bar_diameter" yaml:"bar_diameter"`               // mm
	Stirrups           int     `json:"stirrups" yaml:"stirrups"`                       // cadres
	Ties               int     `json:"ties" yaml:"ties"`                               // étriers
	TransverseDiameter int     `json:"transverse_diameter" yaml:"transverse_diameter"` // mm
	Cover              float64 `json:"cover" yaml:"cover"`                             // cm
	FaceDimension      float64 `json:"face_dimension" yaml:"face_dimension"`           // cm
}

// DefaultProposal mirrors the calculator's initial form: 4 HA12 with one
// stirrup and two ties in HA6 and 2.5 cm cover.
func DefaultProposal(faceDimension float64) Proposal {
	return Proposal{
		BarCount:           4,
		BarDiameter:        12,
		Stirrups:           1,
		Ties:               2,
		TransverseDiameter: 6,
		Cover:              2.5,
		FaceDimension:      faceDimension,
	}
}

// Warnings collects non-fatal layout problems.
type Warnings []error

// Strings returns the warning messages.
func (w Warnings) Strings() []string {
	out := make([]string, len(w))
	for i, err := range w {
		out[i] = err.Error()
	}
	return out
}

func (w Warnings) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Strings())
}

func (w Warnings) MarshalYAML() (interface{}, error) {
	return w.Strings(), nil
}

// Evaluation is the outcome of checking a proposal against the verified
// steel area. Areas are in cm², lengths in cm.
type Evaluation struct {
	UnitSection       float64                 `json:"unit_section" yaml:"unit_section"`
	AchievedArea      float64                 `json:"achieved_area" yaml:"achieved_area"`
	RequiredArea      optional.Value[float64] `json:"required_area" yaml:"required_area"`
	TransverseStrands int                     `json:"transverse_strands" yaml:"transverse_strands"`
	UsableLength      float64                 `json:"usable_length" yaml:"usable_length"`
	Spacing           float64                 `json:"spacing" yaml:"spacing"`
	Approved          optional.Value[bool]    `json:"approved" yaml:"approved"`
	Warnings          Warnings                `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Evaluate computes the section and bar spacing achieved by p and compares
// the section with the verified area (m²). With no verified area there is
// no verdict. An unknown diameter counts as zero section, is reported as
// ErrUnknownDiameter and leaves the verdict undefined.
func Evaluate(p Proposal, verified optional.Value[float64]) *Evaluation {
	ev := &Evaluation{}

	unit, known := UnitSection(p.BarDiameter)
	if !known {
		ev.Warnings = append(ev.Warnings, fmt.Errorf("%w: %d mm", ErrUnknownDiameter, p.BarDiameter))
	}
	if p.BarCount < 1 {
		ev.Warnings = append(ev.Warnings, fmt.Errorf("%w (got %d)", ErrNoBars, p.BarCount))
	}

	ev.UnitSection = unit
	ev.AchievedArea = round2(float64(p.BarCount) * unit)

	// two strands per stirrup and per tie cross the face
	ev.TransverseStrands = 2*p.Stirrups + 2*p.Ties
	usable := p.FaceDimension -
		2*p.Cover -
		float64(p.BarCount)*float64(p.BarDiameter)/10 -
		float64(ev.TransverseStrands)*float64(p.TransverseDiameter)/10
	ev.UsableLength = round2(usable)

	if p.BarCount > 1 {
		ev.Spacing = usable / float64(p.BarCount-1)
		if ev.Spacing <= 0 {
			ev.Warnings = append(ev.Warnings, fmt.Errorf("%w: spacing %.2f cm", ErrBarsDoNotFit, ev.Spacing))
		}
	}

	ev.RequiredArea = optional.Map(verified, func(m2 float64) float64 { return round2(m2 * 1e4) })

	// compared unrounded: 4.52 cm² does not cover 4.524 cm²
	if known {
		ev.Approved = optional.Map(verified, func(m2 float64) bool { return ev.AchievedArea >= m2*1e4-areaTolerance })
	} else {
		ev.Approved = optional.NotApplicable[bool](ErrUnknownDiameter.Error())
	}

	return ev
}

// areaTolerance absorbs float noise in the m² to cm² conversion (cm²).
const areaTolerance = 1e-9

func round2(x float64) float64 {
	return eurocode.Round(x, 2)
}
