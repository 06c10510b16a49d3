package column

import (
	"fmt"

	"github.com/alexiusacademia/gorcc/internal/optional"
)

// Input describes a rectangular column under centred axial compression.
type Input struct {
	// Geometry
	FreeLength    float64 `json:"free_length" yaml:"free_length"`       // l0 - free length (m)
	SectionWidth  float64 `json:"section_width" yaml:"section_width"`   // b (cm)
	SectionHeight float64 `json:"section_height" yaml:"section_height"` // h (cm)

	// End connections, see eurocode.ConnectionTypes
	ConnectionType string `json:"connection_type" yaml:"connection_type"`

	// Loading
	Ned float64 `json:"ned" yaml:"ned"` // design axial load (MN)
}

// Result holds the buckling and reinforcement verification of a column.
// Quantities whose formula could not be applied are not applicable values
// carrying the reason.
type Result struct {
	// Buckling
	K              float64                 `json:"k" yaml:"k"`           // buckling length coefficient
	Lf             float64                 `json:"lf" yaml:"lf"`         // buckling length (m)
	Lambda         float64                 `json:"lambda" yaml:"lambda"` // slenderness
	Alpha          optional.Value[float64] `json:"alpha" yaml:"alpha"`   // reduction coefficient
	AlphaCondition string                  `json:"alpha_condition" yaml:"alpha_condition"`

	// Coefficients
	Kh optional.Value[float64] `json:"kh" yaml:"kh"`
	Ks optional.Value[float64] `json:"ks" yaml:"ks"`

	// Areas (m²)
	Ac      float64                 `json:"ac" yaml:"ac"`             // gross section
	As      optional.Value[float64] `json:"as" yaml:"as"`             // theoretical steel
	Asmin   optional.Value[float64] `json:"asmin" yaml:"asmin"`       // minimum steel
	Asmax   optional.Value[float64] `json:"asmax" yaml:"asmax"`       // maximum steel
	AsVerif optional.Value[float64] `json:"as_verif" yaml:"as_verif"` // verified steel

	// Governing is "As", "Asmin" or "Asmax" once AsVerif is defined.
	Governing string `json:"governing,omitempty" yaml:"governing,omitempty"`
	Message   string `json:"message" yaml:"message"`
}

// AsVerifCm2 returns the verified steel area in cm².
func (r *Result) AsVerifCm2() optional.Value[float64] {
	return optional.Map(r.AsVerif, m2ToCm2)
}

func m2ToCm2(a float64) float64 {
	return a * 1e4
}

// DegenerateGeometryError reports a section that has no positive dimension
// to compute slenderness or area from.
type DegenerateGeometryError struct {
	Width  float64
	Height float64
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate column section: width=%.2f cm, height=%.2f cm (both must be positive)", e.Width, e.Height)
}

// UnknownMaterialError reports a concrete class or steel type name that is
// not in the catalog.
type UnknownMaterialError struct {
	Kind string // "concrete" or "steel"
	Name string
}

func (e *UnknownMaterialError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}
