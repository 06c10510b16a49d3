package column

import (
	"github.com/alexiusacademia/gorcc/internal/eurocode"
)

// Request names the materials and describes the column to calculate.
type Request struct {
	Concrete string `json:"concrete" yaml:"concrete"`
	Steel    string `json:"steel" yaml:"steel"`
	Column   Input  `json:"column" yaml:"column"`
}

// Calculation is the full outcome of a column calculation.
type Calculation struct {
	Concrete        eurocode.ConcreteClass     `json:"concrete" yaml:"concrete"`
	Steel           eurocode.SteelType         `json:"steel" yaml:"steel"`
	Connection      eurocode.ConnectionType    `json:"connection" yaml:"connection"`
	ConnectionKnown bool                       `json:"connection_known" yaml:"connection_known"`
	Resistances     eurocode.DesignResistances `json:"resistances" yaml:"resistances"`
	Input           Input                      `json:"input" yaml:"input"`
	Buckling        *Result                    `json:"buckling" yaml:"buckling"`
}

// Calculate resolves the named materials and the connection type in the
// catalog, derives the design resistances and runs the buckling analysis.
//
// A connection type missing from the catalog is not an error: k falls back
// to eurocode.DefaultBucklingCoefficient and ConnectionKnown is false.
func Calculate(cat *eurocode.Catalog, req Request) (*Calculation, error) {
	concrete, ok := cat.Concrete(req.Concrete)
	if !ok {
		return nil, &UnknownMaterialError{Kind: "concrete", Name: req.Concrete}
	}
	steel, ok := cat.Steel(req.Steel)
	if !ok {
		return nil, &UnknownMaterialError{Kind: "steel", Name: req.Steel}
	}

	res, err := eurocode.ComputeDesignResistances(concrete, steel)
	if err != nil {
		return nil, err
	}

	k, known := cat.BucklingCoefficient(req.Column.ConnectionType)
	conn, _ := cat.Connection(req.Column.ConnectionType)
	if !known {
		conn = eurocode.ConnectionType{ID: req.Column.ConnectionType, Label: "unknown", K: k}
	}

	buckling, err := Analyze(req.Column, res, steel, k)
	if err != nil {
		return nil, err
	}

	return &Calculation{
		Concrete:        concrete,
		Steel:           steel,
		Connection:      conn,
		ConnectionKnown: known,
		Resistances:     res,
		Input:           req.Column,
		Buckling:        buckling,
	}, nil
}
