package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/ports"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// Locals keys para UID y rol en Fiber.
const (
	LocalUID  = "uid"
	LocalRole = "user_role"
)

// AuthMiddleware extrae el Bearer Token y lo verifica contra el
// IdentityGateway, dejando uid y rol en c.Locals. Token ausente es 401;
// token inválido (expirado, malformado, revocado) es 403. El rol por
// defecto es "user" si el claim está ausente.
func AuthMiddleware(gateway ports.IdentityGateway) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if errors.Is(err, domain.ErrUnauthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: err.Error()})
		}
		identity, err := gateway.VerifyToken(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		role := identity.Role
		if role == "" {
			role = entity.RoleUser
		}
		c.Locals(LocalUID, identity.UID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// bearerToken extrae el token del header Authorization. Header ausente,
// esquema distinto de Bearer o token vacío envuelven domain.ErrUnauthenticated.
func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("%w: falta el header Authorization", domain.ErrUnauthenticated)
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("%w: formato esperado Bearer <token>", domain.ErrUnauthenticated)
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", fmt.Errorf("%w: token vacío", domain.ErrUnauthenticated)
	}
	return tokenString, nil
}

// RequireRole devuelve un middleware que solo deja pasar roles del
// allow-list. Debe usarse DESPUÉS de AuthMiddleware; sin rol en el
// contexto responde 403.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "rol de usuario no definido"})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso no autorizado"})
	}
}

// GetUID devuelve el UID del contexto (después del middleware de auth).
func GetUID(c *fiber.Ctx) string {
	v := c.Locals(LocalUID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
