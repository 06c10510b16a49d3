package column

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gorcc/internal/eurocode"
	"github.com/alexiusacademia/gorcc/internal/optional"
)

// Slenderness limits of the simplified method
const (
	LambdaBranch = 60.0  // α formula changes at this slenderness
	LambdaMax    = 120.0 // method not applicable at or above

	// Minimum and maximum longitudinal steel
	RhoMinGross = 0.002 // Asmin >= 0.2% Ac
	RhoMaxGross = 0.04  // Asmax = 4% Ac
	NedFraction = 0.10  // Asmin >= 0.1 Ned / fyd
)

// α branch labels
const (
	ConditionStocky        = "λ < 60: α = 0.86/(1+(λ/62)²)"
	ConditionSlender       = "60 ≤ λ < 120: α = (32/λ)^1.3"
	ConditionNotApplicable = "λ ≥ 120: calculation not applicable"
)

// Alpha returns the buckling reduction coefficient for slenderness lambda
// and the label of the formula branch used. At λ = 60 the second branch
// applies; at λ = 120 and above α is not applicable.
func Alpha(lambda float64) (optional.Value[float64], string) {
	switch {
	case lambda < LambdaBranch:
		return optional.Of(0.86 / (1 + math.Pow(lambda/62, 2))), ConditionStocky
	case lambda < LambdaMax:
		return optional.Of(math.Pow(32/lambda, 1.3)), ConditionSlender
	default:
		return optional.NotApplicable[float64](ConditionNotApplicable), ConditionNotApplicable
	}
}

// Kh returns the section height coefficient for a section height h in cm.
func Kh(h float64) float64 {
	return (0.75 + 0.5*h/100) * 0.95
}

// Ks returns the steel coefficient, only tabulated for fyk up to 500 MPa.
func Ks(fyk float64) optional.Value[float64] {
	if fyk <= eurocode.KsMaxFyk {
		return optional.Of(1.0)
	}
	return optional.NotApplicable[float64](fmt.Sprintf("Ks is only defined for fyk ≤ %.0f MPa (fyk = %.0f MPa)", eurocode.KsMaxFyk, fyk))
}

// Analyze runs the buckling verification of the column for the given design
// resistances, steel grade and buckling length coefficient k.
//
// The only error is a *DegenerateGeometryError. Every quantity whose
// preconditions are not met comes back not applicable with a reason.
func Analyze(in Input, res eurocode.DesignResistances, steel eurocode.SteelType, k float64) (*Result, error) {
	if in.SectionWidth <= 0 || in.SectionHeight <= 0 {
		return nil, &DegenerateGeometryError{Width: in.SectionWidth, Height: in.SectionHeight}
	}

	result := &Result{K: k}

	// 1. Buckling length: lf = k * l0
	lf := k * in.FreeLength

	// 2. Slenderness: λ = lf * √12 / a, with a the smallest side in meters
	a := math.Min(in.SectionWidth, in.SectionHeight) / 100
	lambda := lf * math.Sqrt(12) / a

	// 3. Reduction coefficient α
	alpha, condition := Alpha(lambda)
	result.AlphaCondition = condition

	// 4-5. Coefficients
	kh := Kh(in.SectionHeight)
	ks := Ks(steel.Fyk)

	// 6. Gross section (m²)
	ac := (in.SectionWidth / 100) * (in.SectionHeight / 100)

	// 7. Theoretical steel section
	as := theoreticalSteel(in.Ned, kh, ks, alpha, ac, res)

	// 8. Bounds
	asmin, asmax := steelBounds(in.Ned, ac, res.Fyd)

	// 9. Verified section
	asVerif, governing := verifiedSteel(as, asmin, asmax)

	result.Lf = eurocode.Round(lf, 3)
	result.Lambda = eurocode.Round(lambda, 2)
	result.Alpha = optional.Map(alpha, round(4))
	result.Kh = optional.Of(eurocode.Round(kh, 4))
	result.Ks = ks
	result.Ac = eurocode.Round(ac, 6)
	result.As = optional.Map(as, round(6))
	result.Asmin = optional.Map(asmin, round(6))
	result.Asmax = optional.Map(asmax, round(6))
	result.AsVerif = optional.Map(asVerif, round(6))
	result.Governing = governing
	result.Message = message(result)

	return result, nil
}

// theoreticalSteel computes As = (Ned/(Kh·Ks·α) - Ac·fcd) / fyd.
func theoreticalSteel(ned, kh float64, ks, alpha optional.Value[float64], ac float64, res eurocode.DesignResistances) optional.Value[float64] {
	if ned <= 0 {
		return optional.NotApplicable[float64]("no axial load (Ned ≤ 0)")
	}
	ksv, ok := ks.Get()
	if !ok {
		return optional.NotApplicable[float64](ks.Reason())
	}
	av, ok := alpha.Get()
	if !ok {
		return optional.NotApplicable[float64](alpha.Reason())
	}
	if av == 0 || kh == 0 {
		return optional.NotApplicable[float64]("zero reduction coefficient")
	}
	if ac <= 0 {
		return optional.NotApplicable[float64]("gross section must be positive")
	}
	if res.Fyd <= 0 {
		return optional.NotApplicable[float64]("fyd must be positive")
	}

	return optional.Of((ned/(kh*ksv*av) - ac*res.Fcd) / res.Fyd)
}

// steelBounds computes Asmin = max(0.1·Ned/fyd, 0.002·Ac) and Asmax = 0.04·Ac.
func steelBounds(ned, ac, fyd float64) (optional.Value[float64], optional.Value[float64]) {
	var reason string
	switch {
	case ned <= 0:
		reason = "no axial load (Ned ≤ 0)"
	case ac <= 0:
		reason = "gross section must be positive"
	case fyd <= 0:
		reason = "fyd must be positive"
	}
	if reason != "" {
		return optional.NotApplicable[float64](reason), optional.NotApplicable[float64](reason)
	}

	asmin := math.Max(NedFraction*ned/fyd, RhoMinGross*ac)
	asmax := RhoMaxGross * ac
	return optional.Of(asmin), optional.Of(asmax)
}

// verifiedSteel clamps As to [Asmin, Asmax]. At or below the minimum the
// minimum governs, at or above the maximum the maximum governs.
func verifiedSteel(as, asmin, asmax optional.Value[float64]) (optional.Value[float64], string) {
	asv, ok := as.Get()
	if !ok {
		return optional.NotApplicable[float64](as.Reason()), ""
	}
	lo, ok := asmin.Get()
	if !ok {
		return optional.NotApplicable[float64](asmin.Reason()), ""
	}
	hi, ok := asmax.Get()
	if !ok {
		return optional.NotApplicable[float64](asmax.Reason()), ""
	}

	switch {
	case asv <= lo:
		return optional.Of(lo), "Asmin"
	case asv >= hi:
		return optional.Of(hi), "Asmax"
	default:
		return optional.Of(asv), "As"
	}
}

func message(r *Result) string {
	if !r.Alpha.Defined() {
		return "Column too slender for the simplified method (λ ≥ 120)"
	}
	switch r.Governing {
	case "Asmin":
		return "Minimum reinforcement governs (As ≤ Asmin)"
	case "Asmax":
		return "Maximum reinforcement reached (As ≥ Asmax) - consider enlarging the section"
	case "As":
		return "Theoretical reinforcement between Asmin and Asmax"
	}
	return "Reinforcement not computed: " + r.AsVerif.Reason()
}

func round(places int) func(float64) float64 {
	return func(x float64) float64 {
		return eurocode.Round(x, places)
	}
}
