package eurocode

import "math"

// Eurocode 2 material constants

const (
	// Partial safety factors, persistent and transient design situations
	// EN 1992-1-1 Table 2.1N
	GammaC = 1.5  // concrete
	GammaS = 1.15 // reinforcing steel

	// KsMaxFyk is the highest characteristic yield strength for which the
	// steel coefficient Ks of the simplified column method is tabulated.
	KsMaxFyk = 500.0 // MPa
)

// ConcreteClass is a named concrete strength class.
type ConcreteClass struct {
	Name   string  `json:"name" yaml:"name"`
	Fck    float64 `json:"fck" yaml:"fck"`         // characteristic compressive strength (MPa)
	GammaC float64 `json:"gamma_c" yaml:"gamma_c"` // partial safety factor
}

// SteelType is a named reinforcing steel grade.
type SteelType struct {
	Name   string  `json:"name" yaml:"name"`
	Fyk    float64 `json:"fyk" yaml:"fyk"`         // characteristic yield strength (MPa)
	GammaS float64 `json:"gamma_s" yaml:"gamma_s"` // partial safety factor
}

// ConcreteClasses is the reference set of concrete classes C16/20 to C40/50.
var ConcreteClasses = []ConcreteClass{
	{Name: "C16/20", Fck: 16, GammaC: GammaC},
	{Name: "C20/25", Fck: 20, GammaC: GammaC},
	{Name: "C25/30", Fck: 25, GammaC: GammaC},
	{Name: "C30/37", Fck: 30, GammaC: GammaC},
	{Name: "C35/45", Fck: 35, GammaC: GammaC},
	{Name: "C40/50", Fck: 40, GammaC: GammaC},
}

// SteelTypes is the reference set of reinforcing steel grades.
var SteelTypes = []SteelType{
	{Name: "A400", Fyk: 400, GammaS: GammaS},
	{Name: "B500", Fyk: 500, GammaS: GammaS},
	{Name: "C600", Fyk: 600, GammaS: GammaS},
}

// Round rounds x to the given number of decimal places, half away from zero.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
