package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/catalogo-api/internal/application/ports"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/catalogo-api/pkg/jwt"
)

// credentialsCollection guarda las credenciales del gateway local, keyed
// por uid: {email, passwordHash, role?}. Separada de la colección de
// perfiles "users".
const credentialsCollection = "credentials"

// LocalConfig parámetros de emisión de tokens del gateway local.
type LocalConfig struct {
	JWTSecret  string
	Issuer     string
	ExpMinutes int
}

// LocalGateway implementa ports.IdentityGateway sin proveedor externo:
// contraseñas bcrypt en el Document Store y tokens JWT HS256 propios.
// Pensado para despliegues self-hosted y para el emulador local.
type LocalGateway struct {
	store repository.DocumentStore
	cfg   LocalConfig
}

var _ ports.IdentityGateway = (*LocalGateway)(nil)

// NewLocalGateway construye el gateway local sobre el store dado.
func NewLocalGateway(store repository.DocumentStore, cfg LocalConfig) *LocalGateway {
	if cfg.ExpMinutes <= 0 {
		cfg.ExpMinutes = 60
	}
	return &LocalGateway{store: store, cfg: cfg}
}

// VerifyToken valida la firma y expiración del JWT y devuelve la identidad.
func (g *LocalGateway) VerifyToken(ctx context.Context, token string) (ports.Identity, error) {
	uid, role, err := pkgjwt.Parse(g.cfg.JWTSecret, token)
	if err != nil {
		return ports.Identity{}, domain.ErrInvalidToken
	}
	identity := ports.Identity{UID: uid, Role: role}
	// El email no viaja en el token; se completa desde las credenciales.
	if fields, err := g.store.GetByID(ctx, credentialsCollection, uid); err == nil {
		if email, ok := fields["email"].(string); ok {
			identity.Email = email
		}
	}
	return identity, nil
}

// CreateIdentity registra email/password: rechaza emails ya registrados,
// hashea con bcrypt y persiste las credenciales bajo un uid nuevo.
func (g *LocalGateway) CreateIdentity(ctx context.Context, email, password string) (ports.Identity, error) {
	if email == "" || password == "" {
		return ports.Identity{}, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}
	if len(password) < 6 {
		return ports.Identity{}, fmt.Errorf("%w: password debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	existing, err := g.store.QueryEquals(ctx, credentialsCollection, map[string]any{"email": email}, 1)
	if err != nil {
		return ports.Identity{}, fmt.Errorf("identity create: %w", err)
	}
	if len(existing) > 0 {
		return ports.Identity{}, fmt.Errorf("%w: el email ya está registrado", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ports.Identity{}, fmt.Errorf("identity create: %w", err)
	}
	uid := uuid.New().String()
	fields := map[string]any{
		"email":        email,
		"passwordHash": string(hash),
	}
	if err := g.store.Set(ctx, credentialsCollection, uid, fields); err != nil {
		return ports.Identity{}, fmt.Errorf("identity create: %w", err)
	}
	return ports.Identity{UID: uid, Email: email}, nil
}

// PasswordLogin verifica email/password y emite un token de sesión con el
// rol registrado en las credenciales como claim.
func (g *LocalGateway) PasswordLogin(ctx context.Context, email, password string) (string, error) {
	if g.cfg.JWTSecret == "" {
		return "", fmt.Errorf("%w: JWT_SECRET requerido para login local", domain.ErrConfiguration)
	}
	docs, err := g.store.QueryEquals(ctx, credentialsCollection, map[string]any{"email": email}, 1)
	if err != nil {
		return "", fmt.Errorf("identity login: %w", err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("%w: email o password incorrectos", domain.ErrInvalidCredentials)
	}
	cred := docs[0]
	hash, _ := cred.Fields["passwordHash"].(string)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", fmt.Errorf("%w: email o password incorrectos", domain.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("identity login: %w", err)
	}
	role, _ := cred.Fields["role"].(string)
	token, err := pkgjwt.Generate(g.cfg.JWTSecret, cred.ID, role, g.cfg.Issuer, g.cfg.ExpMinutes)
	if err != nil {
		return "", fmt.Errorf("identity login: %w", err)
	}
	return token, nil
}
