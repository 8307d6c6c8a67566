package birds

// Role define los dos roles de un ave.
// @Enum rooster, hen
type Role string

const (
	RoleRooster Role = "rooster" // gallo
	RoleHen     Role = "hen"     // gallina
)

// Status es el estado de vida del ave dentro del plantel.
type Status string

const (
	StatusActive  Status = "active"
	StatusSold    Status = "sold"
	StatusDead    Status = "dead"
	StatusRetired Status = "retired"
)

func ValidRole(r Role) bool {
	return r == RoleRooster || r == RoleHen
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusSold, StatusDead, StatusRetired:
		return true
	}
	return false
}
