package rebar

// Bar count limits for suggestions: one bar per corner at least.
const (
	MinSuggestedBars = 4
	MinSuggestedDia  = 10
)

// Suggestion is a bar layout that covers a required area.
type Suggestion struct {
	Diameter int     `json:"diameter" yaml:"diameter"` // mm
	Count    int     `json:"count" yaml:"count"`
	Area     float64 `json:"area" yaml:"area"` // cm²
	Ratio    float64 `json:"ratio" yaml:"ratio"`
}

// Suggest returns, for each tabulated diameter of 10 mm and more, the
// smallest number of bars (4 to 10) whose section covers requiredCm2.
// Diameters that need more than 10 bars are left out.
func Suggest(requiredCm2 float64) []Suggestion {
	var suggestions []Suggestion

	for _, dia := range Diameters() {
		if dia < MinSuggestedDia {
			continue
		}
		for count := MinSuggestedBars; count <= MaxTabulatedBars; count++ {
			area, _ := Section(dia, count)
			if area < requiredCm2 {
				continue
			}
			s := Suggestion{Diameter: dia, Count: count, Area: area}
			if requiredCm2 > 0 {
				s.Ratio = round2(area / requiredCm2)
			}
			suggestions = append(suggestions, s)
			break
		}
	}

	return suggestions
}
