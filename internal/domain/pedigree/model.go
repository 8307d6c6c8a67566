package pedigree

import "castador-pro/internal/domain/birds"

// DefaultGenerations es el tope de generaciones si el caller no manda otro.
const DefaultGenerations = 5

// Node es un nodo del árbol de ancestros. Generation 0 es el ave raíz;
// sus padres directos son generación 1. Un nodo Unknown solo trae el ID:
// la referencia no resolvió bajo el owner (ave borrada o de otro usuario).
type Node struct {
	ID      string `json:"id"`
	Unknown bool   `json:"unknown,omitempty"`

	Code  string     `json:"code,omitempty"`
	Name  string     `json:"name,omitempty"`
	Role  birds.Role `json:"role,omitempty"`
	Color string     `json:"color,omitempty"`
	Line  string     `json:"line,omitempty"`
	Photo string     `json:"photo,omitempty"`

	Generation int `json:"generation"`

	Father *Node `json:"father,omitempty"`
	Mother *Node `json:"mother,omitempty"`
}

// RiskLevel es el nivel grueso de riesgo de consanguinidad.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// CommonAncestor es un ancestro compartido entre los dos candidatos,
// con la generación a la que aparece desde cada lado.
type CommonAncestor struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`

	GenerationFather  int `json:"generation_father"`
	GenerationMother  int `json:"generation_mother"`
	ClosestGeneration int `json:"closest_generation"`
}

// Estimate es el resultado del estimador. El porcentaje sale de una
// tabla fija por generación más cercana; es una aproximación gruesa,
// no el coeficiente de Wright.
type Estimate struct {
	Percentage      float64          `json:"estimated_percentage"`
	Level           RiskLevel        `json:"level"`
	CommonAncestors []CommonAncestor `json:"common_ancestors"`
	TotalCommon     int              `json:"total_common"`
}
