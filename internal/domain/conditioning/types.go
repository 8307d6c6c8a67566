package conditioning

// Status es el estado del ciclo de cuido de un gallo.
type Status string

const (
	StatusActive   Status = "active"
	StatusResting  Status = "resting"
	StatusFinished Status = "finished"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusResting, StatusFinished:
		return true
	}
	return false
}

// Límites del descanso en días.
const (
	MinRestDays = 1
	MaxRestDays = 20
)

// SessionSlots es la cantidad fija de trabajos por ciclo.
const SessionSlots = 5
