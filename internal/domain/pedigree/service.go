package pedigree

import (
	"context"
	"errors"
	"sort"
	"strings"

	"castador-pro/internal/domain/birds"
)

var (
	ErrNotFound = errors.New("bird not found")
)

// BirdSource es la vista mínima del registro de aves que necesita este
// módulo. La implementan birds.Service y birds.Repository.
type BirdSource interface {
	GetByID(ctx context.Context, id, ownerUserID string) (birds.Bird, error)
}

// Service resuelve árboles de ancestros y estima consanguinidad.
// No cachea nada: cada llamada relee el registro, porque los padres
// pueden cambiar entre llamadas.
type Service struct {
	birds BirdSource
}

func NewService(src BirdSource) *Service {
	return &Service{birds: src}
}

// ResolveTree arma el pedigrí del ave hasta generations generaciones
// (default 5). La raíz debe existir bajo el owner; a partir de ahí una
// referencia rota produce una hoja Unknown, nunca un error.
//
// La recursión corta solo por profundidad. No hay tracking de visitados:
// si datos corruptos metieran un ciclo de padres, el tope de generación
// sigue garantizando terminación, y un ancestro alcanzable por dos
// caminos aparece dos veces, que es lo que el estimador necesita.
func (s *Service) ResolveTree(ctx context.Context, ownerUserID, birdID string, generations int) (*Node, error) {
	if generations <= 0 {
		generations = DefaultGenerations
	}

	birdID = strings.TrimSpace(birdID)
	if _, err := s.birds.GetByID(ctx, birdID, ownerUserID); err != nil {
		return nil, ErrNotFound
	}

	return s.ancestorNode(ctx, ownerUserID, birdID, 0, generations), nil
}

func (s *Service) ancestorNode(ctx context.Context, ownerUserID, id string, gen, maxGen int) *Node {
	if gen > maxGen || id == "" {
		return nil
	}

	b, err := s.birds.GetByID(ctx, id, ownerUserID)
	if err != nil {
		return &Node{ID: id, Unknown: true, Generation: gen}
	}

	n := &Node{
		ID:         b.ID,
		Code:       b.Code,
		Name:       b.Name,
		Role:       b.Role,
		Color:      b.Color,
		Line:       b.Line,
		Photo:      b.Photo,
		Generation: gen,
	}

	if gen < maxGen {
		// Cada rama se intenta por separado: un padre ausente no bloquea
		// la resolución de la madre.
		n.Father = s.ancestorNode(ctx, ownerUserID, b.FatherID, gen+1, maxGen)
		n.Mother = s.ancestorNode(ctx, ownerUserID, b.MotherID, gen+1, maxGen)
	}

	return n
}

// occurrence es una aparición de un ancestro durante el recorrido; el
// mismo ID puede aparecer varias veces por caminos distintos.
type occurrence struct {
	id  string
	gen int
}

// Estimate calcula el porcentaje estimado de consanguinidad entre dos
// candidatos a cruce. Es simétrico en sus argumentos: intercambiar padre
// y madre solo intercambia qué generación se reporta de cada lado.
func (s *Service) Estimate(ctx context.Context, ownerUserID, fatherID, motherID string, generations int) (Estimate, error) {
	if generations <= 0 {
		generations = DefaultGenerations
	}

	fatherSide := s.ancestorSet(ctx, ownerUserID, fatherID, generations)
	motherSide := s.ancestorSet(ctx, ownerUserID, motherID, generations)

	common := make([]CommonAncestor, 0)
	for id, fg := range fatherSide {
		mg, shared := motherSide[id]
		if !shared {
			continue
		}

		// Solo ancestros que resuelven bajo el owner aportan al estimado;
		// un ID colgando compartido no suma.
		b, err := s.birds.GetByID(ctx, id, ownerUserID)
		if err != nil {
			continue
		}

		closest := fg
		if mg < closest {
			closest = mg
		}
		common = append(common, CommonAncestor{
			ID:                id,
			Code:              b.Code,
			Name:              b.Name,
			GenerationFather:  fg,
			GenerationMother:  mg,
			ClosestGeneration: closest,
		})
	}

	if len(common) == 0 {
		return Estimate{Percentage: 0, Level: RiskLow, CommonAncestors: common}, nil
	}

	// Orden estable para la salida (los maps no lo garantizan).
	sort.Slice(common, func(i, j int) bool {
		if common[i].ClosestGeneration != common[j].ClosestGeneration {
			return common[i].ClosestGeneration < common[j].ClosestGeneration
		}
		return common[i].ID < common[j].ID
	})

	pct, level := stepTable(common[0].ClosestGeneration)
	return Estimate{
		Percentage:      pct,
		Level:           level,
		CommonAncestors: common,
		TotalCommon:     len(common),
	}, nil
}

// ancestorSet devuelve cada ancestro alcanzable desde el candidato con
// la generación mínima a la que aparece. El candidato mismo entra con
// generación 0; sus padres con 1. Un candidato vacío o que no resuelve
// bajo el owner produce un set vacío, no un error.
//
// El recorrido junta todas las apariciones y recién al final colapsa al
// mínimo: la deduplicación es en la intersección, no durante la caminata.
func (s *Service) ancestorSet(ctx context.Context, ownerUserID, id string, maxGen int) map[string]int {
	id = strings.TrimSpace(id)
	if id == "" {
		return map[string]int{}
	}
	if _, err := s.birds.GetByID(ctx, id, ownerUserID); err != nil {
		return map[string]int{}
	}

	var all []occurrence
	s.collect(ctx, ownerUserID, id, 0, maxGen, &all)

	set := make(map[string]int, len(all))
	for _, o := range all {
		if g, ok := set[o.id]; !ok || o.gen < g {
			set[o.id] = o.gen
		}
	}
	return set
}

func (s *Service) collect(ctx context.Context, ownerUserID, id string, gen, maxGen int, acc *[]occurrence) {
	if gen > maxGen || id == "" {
		return
	}

	// La aparición se registra aunque el ave no resuelva: la referencia
	// existe, solo que no se puede seguir hacia arriba.
	*acc = append(*acc, occurrence{id: id, gen: gen})

	b, err := s.birds.GetByID(ctx, id, ownerUserID)
	if err != nil {
		return
	}

	s.collect(ctx, ownerUserID, b.FatherID, gen+1, maxGen, acc)
	s.collect(ctx, ownerUserID, b.MotherID, gen+1, maxGen, acc)
}

// stepTable mapea la generación compartida más cercana a porcentaje y
// nivel. Los cortes (1/2/3/4 → 50/25/12.5/6.25/3.125) son el contrato:
// aproximan el coeficiente clásico que se parte a la mitad por
// generación, sin calcular parentesco exacto.
func stepTable(closest int) (float64, RiskLevel) {
	switch {
	case closest <= 1:
		return 50, RiskHigh
	case closest <= 2:
		return 25, RiskHigh
	case closest <= 3:
		return 12.5, RiskMedium
	case closest <= 4:
		return 6.25, RiskMedium
	default:
		return 3.125, RiskLow
	}
}
