package ports

import "context"

// Identity es el resultado de verificar o crear una identidad en el proveedor.
// Role viene del claim del token y puede estar vacío (el llamador aplica el
// valor por defecto "user").
type Identity struct {
	UID   string
	Email string
	Role  string
}

// IdentityGateway define el puerto de salida hacia el proveedor de identidad.
// Cualquier adaptador (Identity Toolkit, gateway local, fake de tests) debe
// implementar esta interfaz; la aplicación solo conoce este contrato (DIP).
type IdentityGateway interface {
	// VerifyToken valida un bearer token y devuelve la identidad del sujeto.
	// Devuelve domain.ErrInvalidToken si el token es inválido, expirado o revocado.
	VerifyToken(ctx context.Context, token string) (Identity, error)
	// CreateIdentity registra email/password y devuelve la identidad creada.
	// Devuelve domain.ErrInvalidInput (con la razón del proveedor) si se rechaza.
	CreateIdentity(ctx context.Context, email, password string) (Identity, error)
	// PasswordLogin intercambia credenciales por un token de sesión.
	// Devuelve domain.ErrInvalidCredentials si el proveedor rechaza el par,
	// o domain.ErrConfiguration si falta la credencial de API requerida.
	PasswordLogin(ctx context.Context, email, password string) (string, error)
}
