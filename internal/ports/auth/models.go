package auth

// Claims es la identidad extraída del token: el user_id es el dueño
// de todos los registros que el request puede tocar.
type Claims struct {
	UserID string
	Phone  string
	Email  string
}
