package eurocode

// Connection type identifiers
const (
	PinnedFixed  = "articule-encastre"
	PinnedPinned = "articule-articule"
	FixedFixed   = "encastre-encastre"
)

// DefaultBucklingCoefficient is used for connection types missing from the
// catalog. It corresponds to a column pinned at both ends.
// TODO: 1.0 is not the conservative choice for sway columns; revisit once
// the catalog carries a free-end connection type.
const DefaultBucklingCoefficient = 1.0

// ConnectionType describes how a column is held at its ends and the
// resulting buckling length coefficient k (lf = k * l0).
type ConnectionType struct {
	ID    string  `json:"id" yaml:"id"`
	Label string  `json:"label" yaml:"label"`
	K     float64 `json:"k" yaml:"k"`
}

// ConnectionTypes is the reference set of end connections.
var ConnectionTypes = []ConnectionType{
	{ID: PinnedFixed, Label: "Articulé-Encastré", K: 0.7},
	{ID: PinnedPinned, Label: "Articulé-Articulé", K: 1.0},
	{ID: FixedFixed, Label: "Encastré-Encastré", K: 0.5},
}
