package eurocode

import "fmt"

// DesignResistances holds the design strengths of the selected materials.
type DesignResistances struct {
	Fcd float64 `json:"fcd" yaml:"fcd"` // design compressive strength of concrete (MPa)
	Fyd float64 `json:"fyd" yaml:"fyd"` // design yield strength of steel (MPa)
}

// InvalidCatalogEntryError reports a catalog entry whose data cannot be used,
// such as a zero or negative safety factor. It indicates a corrupt table.
type InvalidCatalogEntryError struct {
	Kind  string // "concrete", "steel" or "connection"
	Name  string
	Field string
	Value float64
}

func (e *InvalidCatalogEntryError) Error() string {
	return fmt.Sprintf("invalid %s catalog entry %q: %s=%g must be positive", e.Kind, e.Name, e.Field, e.Value)
}

// ComputeDesignResistances derives fcd = fck/γc and fyd = fyk/γs, each
// rounded to 2 decimal places.
func ComputeDesignResistances(concrete ConcreteClass, steel SteelType) (DesignResistances, error) {
	if concrete.GammaC <= 0 {
		return DesignResistances{}, &InvalidCatalogEntryError{Kind: "concrete", Name: concrete.Name, Field: "gamma_c", Value: concrete.GammaC}
	}
	if steel.GammaS <= 0 {
		return DesignResistances{}, &InvalidCatalogEntryError{Kind: "steel", Name: steel.Name, Field: "gamma_s", Value: steel.GammaS}
	}

	return DesignResistances{
		Fcd: Round(concrete.Fck/concrete.GammaC, 2),
		Fyd: Round(steel.Fyk/steel.GammaS, 2),
	}, nil
}
