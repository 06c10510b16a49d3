package eurocode

// LoadCombination represents an EN 1990 combination of axial actions.
type LoadCombination struct {
	ID          string
	Description string
	Ultimate    bool // ULS (true) or SLS (false)

	// Partial factors for each action type
	Permanent float64 // G
	Variable  float64 // Q
}

// EN 1990 Section 6.4.3.2 and 6.5.3 - combinations for axial load
var LoadCombinations = []LoadCombination{
	{
		ID:          "6.10",
		Description: "1.35G + 1.5Q",
		Ultimate:    true,
		Permanent:   1.35,
		Variable:    1.5,
	},
	{
		ID:          "6.10a",
		Description: "1.35G + 1.5ψ0Q (ψ0 = 0.7)",
		Ultimate:    true,
		Permanent:   1.35,
		Variable:    1.05,
	},
	{
		ID:          "6.10b",
		Description: "0.85·1.35G + 1.5Q",
		Ultimate:    true,
		Permanent:   1.1475,
		Variable:    1.5,
	},
	{
		ID:          "SLS",
		Description: "G + Q (characteristic)",
		Ultimate:    false,
		Permanent:   1.0,
		Variable:    1.0,
	},
}

// AxialLoads holds unfactored axial loads on the column (kN).
type AxialLoads struct {
	Permanent float64 // G - self weight, finishes, permanent equipment
	Variable  float64 // Q - imposed loads
}

// Combine returns the factored axial load for the combination (kN).
func (lc LoadCombination) Combine(loads AxialLoads) float64 {
	return lc.Permanent*loads.Permanent + lc.Variable*loads.Variable
}

// GoverningAxialLoad finds the largest factored load among the ultimate
// combinations. The returned value is in kN.
func GoverningAxialLoad(loads AxialLoads, combinations []LoadCombination) (float64, LoadCombination) {
	var maxLoad float64
	var governing LoadCombination

	for _, combo := range combinations {
		if !combo.Ultimate {
			continue
		}
		n := combo.Combine(loads)
		if n > maxLoad {
			maxLoad = n
			governing = combo
		}
	}

	return maxLoad, governing
}

// KNToMN converts kilonewtons to meganewtons, the unit Ned is given in.
func KNToMN(kn float64) float64 {
	return kn / 1000
}
