package dto

// RegisterRequest entrada para registro: credenciales más un perfil
// schemaless (userData) que se persiste tal cual bajo el uid asignado.
type RegisterRequest struct {
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=6"`
	UserData map[string]any `json:"userData"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con el token de sesión emitido por el proveedor.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterResponse identidad creada por el proveedor.
type RegisterResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
