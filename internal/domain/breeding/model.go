package breeding

import "time"

// PairStatus es el ciclo de vida de un cruce.
type PairStatus string

const (
	PairPlanned   PairStatus = "planned"
	PairDone      PairStatus = "done"
	PairCancelled PairStatus = "cancelled"
)

func ValidPairStatus(s PairStatus) bool {
	switch s {
	case PairPlanned, PairDone, PairCancelled:
		return true
	}
	return false
}

// HatchMethod indica quién incuba la camada.
type HatchMethod string

const (
	MethodHen       HatchMethod = "hen"
	MethodIncubator HatchMethod = "incubator"
)

// Pair es un cruce entre un gallo y una gallina del mismo owner.
// EstimatedConsanguinity se calcula una sola vez al crear el cruce y
// queda como snapshot: nunca se recalcula automáticamente.
type Pair struct {
	ID          string
	OwnerUserID string

	FatherID string
	MotherID string

	Date   time.Time
	Goal   string
	Notes  string
	Status PairStatus

	EstimatedConsanguinity float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Litter es la camada producida por un cruce.
type Litter struct {
	ID          string
	OwnerUserID string
	PairID      string

	LayingStart     *time.Time
	EggCount        *int
	IncubationStart *time.Time
	Method          HatchMethod
	HatchDate       *time.Time
	ChicksHatched   *int
	Notes           string

	CreatedAt time.Time
	UpdatedAt time.Time
}
