package dto

// RequestLinkRequest solicitud de magic link. La respuesta es siempre el mismo
// mensaje genérico, esté o no registrado el email.
type RequestLinkRequest struct {
	Email string `json:"email"`
}

// SessionResponse sesión emitida al validar un token de un solo uso.
type SessionResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
