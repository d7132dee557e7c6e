// Package identity contiene los adaptadores del puerto IdentityGateway:
// HTTPGateway contra la API REST de Identity Toolkit y LocalGateway
// autocontenido (JWT HS256 + bcrypt sobre el Document Store).
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/catalogo-api/internal/application/ports"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

const defaultAuthBaseURL = "https://identitytoolkit.googleapis.com"

// HTTPConfig credenciales del proyecto en el proveedor de identidad.
type HTTPConfig struct {
	WebAPIKey string
	BaseURL   string // override para el emulador
	Timeout   time.Duration
}

// HTTPGateway implementa ports.IdentityGateway contra Identity Toolkit.
type HTTPGateway struct {
	client *resty.Client
	apiKey string
}

var _ ports.IdentityGateway = (*HTTPGateway)(nil)

// NewHTTPGateway construye el cliente REST del proveedor.
func NewHTTPGateway(cfg HTTPConfig) *HTTPGateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAuthBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/v1").
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	return &HTTPGateway{client: cli, apiKey: cfg.WebAPIKey}
}

// apiError cuerpo de error del proveedor: {"error":{"message":"EMAIL_EXISTS"}}.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (e *apiError) reason() string {
	if e.Error.Message == "" {
		return "respuesta de error sin detalle"
	}
	return e.Error.Message
}

// VerifyToken valida el token contra accounts:lookup y extrae uid, email
// y el claim role de customAttributes (ausente => rol vacío).
func (g *HTTPGateway) VerifyToken(ctx context.Context, token string) (ports.Identity, error) {
	var out struct {
		Users []struct {
			LocalID          string `json:"localId"`
			Email            string `json:"email"`
			CustomAttributes string `json:"customAttributes"`
		} `json:"users"`
	}
	var apiErr apiError
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(map[string]string{"idToken": token}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/accounts:lookup")
	if err != nil {
		return ports.Identity{}, fmt.Errorf("identity lookup: %w", err)
	}
	if resp.IsError() || len(out.Users) == 0 {
		return ports.Identity{}, domain.ErrInvalidToken
	}
	u := out.Users[0]
	return ports.Identity{
		UID:   u.LocalID,
		Email: u.Email,
		Role:  roleFromCustomAttributes(u.CustomAttributes),
	}, nil
}

// CreateIdentity registra email/password vía accounts:signUp.
func (g *HTTPGateway) CreateIdentity(ctx context.Context, email, password string) (ports.Identity, error) {
	var out struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	}
	var apiErr apiError
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(map[string]any{"email": email, "password": password, "returnSecureToken": false}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/accounts:signUp")
	if err != nil {
		return ports.Identity{}, fmt.Errorf("identity signup: %w", err)
	}
	if resp.IsError() {
		return ports.Identity{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, apiErr.reason())
	}
	return ports.Identity{UID: out.LocalID, Email: out.Email}, nil
}

// PasswordLogin intercambia credenciales por un token de sesión vía
// accounts:signInWithPassword. Sin API key configurada es ErrConfiguration.
func (g *HTTPGateway) PasswordLogin(ctx context.Context, email, password string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: FIREBASE_WEB_API_KEY requerida para login", domain.ErrConfiguration)
	}
	var out struct {
		IDToken string `json:"idToken"`
	}
	var apiErr apiError
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(map[string]any{"email": email, "password": password, "returnSecureToken": true}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/accounts:signInWithPassword")
	if err != nil {
		return "", fmt.Errorf("identity login: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, apiErr.reason())
	}
	return out.IDToken, nil
}

// roleFromCustomAttributes extrae el claim role del JSON de atributos
// personalizados del proveedor.
func roleFromCustomAttributes(raw string) string {
	if raw == "" {
		return ""
	}
	var attrs struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return ""
	}
	return attrs.Role
}
