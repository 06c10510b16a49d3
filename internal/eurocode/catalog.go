package eurocode

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog groups the material and connection tables a calculation draws from.
// It is read-only once built and safe to share between goroutines.
type Catalog struct {
	ConcreteClasses []ConcreteClass  `json:"concrete_classes" yaml:"concrete_classes"`
	SteelTypes      []SteelType      `json:"steel_types" yaml:"steel_types"`
	ConnectionTypes []ConnectionType `json:"connection_types" yaml:"connection_types"`
}

// DefaultCatalog returns the built-in reference catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		ConcreteClasses: append([]ConcreteClass(nil), ConcreteClasses...),
		SteelTypes:      append([]SteelType(nil), SteelTypes...),
		ConnectionTypes: append([]ConnectionType(nil), ConnectionTypes...),
	}
}

// LoadCatalog reads a YAML catalog file. Tables left empty in the file are
// taken from the default catalog. The result is validated.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	def := DefaultCatalog()
	if len(cat.ConcreteClasses) == 0 {
		cat.ConcreteClasses = def.ConcreteClasses
	}
	if len(cat.SteelTypes) == 0 {
		cat.SteelTypes = def.SteelTypes
	}
	if len(cat.ConnectionTypes) == 0 {
		cat.ConnectionTypes = def.ConnectionTypes
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks every entry. The first invalid entry is returned as an
// *InvalidCatalogEntryError.
func (c *Catalog) Validate() error {
	for _, cc := range c.ConcreteClasses {
		if cc.Fck <= 0 {
			return &InvalidCatalogEntryError{Kind: "concrete", Name: cc.Name, Field: "fck", Value: cc.Fck}
		}
		if cc.GammaC <= 0 {
			return &InvalidCatalogEntryError{Kind: "concrete", Name: cc.Name, Field: "gamma_c", Value: cc.GammaC}
		}
	}
	for _, st := range c.SteelTypes {
		if st.Fyk <= 0 {
			return &InvalidCatalogEntryError{Kind: "steel", Name: st.Name, Field: "fyk", Value: st.Fyk}
		}
		if st.GammaS <= 0 {
			return &InvalidCatalogEntryError{Kind: "steel", Name: st.Name, Field: "gamma_s", Value: st.GammaS}
		}
	}
	for _, ct := range c.ConnectionTypes {
		if ct.K <= 0 || ct.K > 1 {
			return &InvalidCatalogEntryError{Kind: "connection", Name: ct.ID, Field: "k", Value: ct.K}
		}
	}
	return nil
}

// Concrete looks a concrete class up by name, ignoring case.
func (c *Catalog) Concrete(name string) (ConcreteClass, bool) {
	for _, cc := range c.ConcreteClasses {
		if strings.EqualFold(cc.Name, name) {
			return cc, true
		}
	}
	return ConcreteClass{}, false
}

// Steel looks a steel type up by name, ignoring case.
func (c *Catalog) Steel(name string) (SteelType, bool) {
	for _, st := range c.SteelTypes {
		if strings.EqualFold(st.Name, name) {
			return st, true
		}
	}
	return SteelType{}, false
}

// Connection looks a connection type up by identifier.
func (c *Catalog) Connection(id string) (ConnectionType, bool) {
	for _, ct := range c.ConnectionTypes {
		if ct.ID == id {
			return ct, true
		}
	}
	return ConnectionType{}, false
}

// BucklingCoefficient returns k for the given connection identifier.
// Unknown identifiers fall back to DefaultBucklingCoefficient; the second
// result reports whether the identifier was found.
func (c *Catalog) BucklingCoefficient(id string) (float64, bool) {
	ct, ok := c.Connection(id)
	if !ok || ct.K == 0 {
		return DefaultBucklingCoefficient, false
	}
	return ct.K, true
}
