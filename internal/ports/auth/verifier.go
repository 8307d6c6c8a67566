package auth

import "context"

// Verifier valida un token bearer y devuelve claims o error.
// La emisión de tokens (registro/login) vive fuera de este servicio.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
