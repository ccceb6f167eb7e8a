package repository

import "github.com/almacen-pro/almacen-api/internal/domain/entity"

// TokenRepository puerto de la tabla de tokens de acceso de un solo uso.
type TokenRepository interface {
	Append(t *entity.LoginToken) error
	// Find devuelve la primera fila con ese token, o nil si no existe.
	Find(token string) (*entity.LoginToken, error)
	Delete(token string) error
	ListAll() ([]entity.LoginToken, error)
	// ReplaceAll reescribe la tabla completa (header + sobrevivientes) en
	// una sola sobreescritura acotada, preservando el orden recibido.
	ReplaceAll(tokens []entity.LoginToken) error
}

// DirectoryRepository puerto del directorio email → rol.
type DirectoryRepository interface {
	// RoleByEmail devuelve el rol (trimmed, en minúsculas) o "" si el email
	// no está en el directorio.
	RoleByEmail(email string) (string, error)
}
