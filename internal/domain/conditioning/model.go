package conditioning

import "time"

// Session es uno de los cinco trabajos numerados del ciclo.
type Session struct {
	Number  int        `json:"number"`
	Minutes *int       `json:"minutes"`
	Done    bool       `json:"done"`
	DoneAt  *time.Time `json:"done_at"`
	Notes   string     `json:"notes"`
}

// Record es el ciclo de cuido de un gallo. Un gallo tiene a lo sumo un
// ciclo en curso (active o resting); los finalizados pueden acumularse.
type Record struct {
	ID          string
	OwnerUserID string
	BirdID      string

	StartDate time.Time
	Status    Status

	Milestone1Done  bool
	Milestone1Date  *time.Time
	Milestone1Notes string
	Milestone2Done  bool
	Milestone2Date  *time.Time
	Milestone2Notes string

	Sessions []Session

	InRest    bool
	RestDays  *int
	RestStart *time.Time
	RestEnd   *time.Time

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
