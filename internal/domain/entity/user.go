package entity

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa una identidad emitida por el proveedor de identidad.
// El UID es opaco y estable; el rol viaja como claim en el token y
// por defecto es "user" si el claim está ausente.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"` // admin, user
}
