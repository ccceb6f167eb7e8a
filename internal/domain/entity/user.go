package entity

// Roles del directorio de usuarios.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleUser       = "user"
)

// DirectoryUser entrada del directorio: email → rol.
// El rol no se almacena en ningún otro lado; siempre se resuelve contra el directorio.
type DirectoryUser struct {
	Email string
	Role  string
}
