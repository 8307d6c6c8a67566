package birds

import "time"

// Bird es un gallo o gallina del plantel de un usuario.
// FatherID/MotherID son referencias opcionales dentro del mismo owner;
// pueden quedar rotas si el padre se borra después (el pedigrí las
// reporta como "unknown", nunca como error).
type Bird struct {
	ID          string
	OwnerUserID string

	Role Role
	Code string
	Name string

	Photo     string // base64 o URL, como lo mande el cliente
	BirthDate *time.Time
	Color     string
	Line      string // línea de sangre
	Status    Status
	Notes     string
	QRTag     string

	FatherID string
	MotherID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
