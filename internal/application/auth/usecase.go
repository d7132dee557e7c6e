package auth

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/ports"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// usersCollection perfiles de usuario, keyed por uid del proveedor.
const usersCollection = "users"

// AuthUseCase casos de uso de autenticación: registro y login.
// Orquestación delgada sobre el IdentityGateway; el perfil se persiste
// en el Document Store bajo el uid asignado.
type AuthUseCase struct {
	gateway ports.IdentityGateway
	store   repository.DocumentStore
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(gateway ports.IdentityGateway, store repository.DocumentStore) *AuthUseCase {
	return &AuthUseCase{gateway: gateway, store: store}
}

// Register crea la identidad en el proveedor y guarda el perfil (userData)
// bajo el uid nuevo, con un createdAt asignado por el servidor por encima
// de los campos del caller. Devuelve la identidad creada.
// Errores: domain.ErrInvalidInput con la razón del proveedor.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	identity, err := uc.gateway.CreateIdentity(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	profile := make(map[string]any, len(in.UserData)+1)
	for k, v := range in.UserData {
		profile[k] = v
	}
	profile["createdAt"] = time.Now().UTC()
	if err := uc.store.Set(ctx, usersCollection, identity.UID, profile); err != nil {
		return nil, err
	}

	user := entity.User{UID: identity.UID, Email: identity.Email}
	user.Role, _ = in.UserData["role"].(string)
	if user.Role == "" {
		user.Role = entity.RoleUser
	}
	return &dto.RegisterResponse{UID: user.UID, Email: user.Email, Role: user.Role}, nil
}

// Login intercambia credenciales por un token de sesión del proveedor.
// Devuelve solo el token, no la identidad completa: el flujo REST de login
// del proveedor es independiente de su verificación administrativa de tokens.
// Errores: domain.ErrInvalidCredentials (con la razón del proveedor),
// domain.ErrConfiguration si falta la credencial de API.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	token, err := uc.gateway.PasswordLogin(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token}, nil
}
