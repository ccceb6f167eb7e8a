package entity

import "time"

// LoginToken token de acceso de un solo uso (magic link).
// Se borra al validarse con éxito; vencido deja de ser válido aunque
// nunca se haya consumido y el barrido diario lo retira de la tabla.
type LoginToken struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}

// Expired indica si el token ya venció respecto a now.
func (t LoginToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
