package health

import "time"

// Type es la clase de aplicación sanitaria.
type Type string

const (
	TypeVitamin   Type = "vitamin"
	TypeVaccine   Type = "vaccine"
	TypeDewormer  Type = "dewormer"
	TypeTreatment Type = "treatment"
)

func ValidType(t Type) bool {
	switch t {
	case TypeVitamin, TypeVaccine, TypeDewormer, TypeTreatment:
		return true
	}
	return false
}

// ReminderWindowDays es cuántos días hacia adelante miran los
// recordatorios de próxima aplicación.
const ReminderWindowDays = 7

type Record struct {
	ID          string
	OwnerUserID string
	BirdID      string

	Type    Type
	Product string
	Dose    string
	Date    time.Time

	// NextDate es la próxima aplicación programada, si la hay.
	NextDate *time.Time

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
