package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/identity"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
)

const testSecret = "test-secret-key-for-unit-tests"

func newLocalGateway(store *memory.Store) *identity.LocalGateway {
	return identity.NewLocalGateway(store, identity.LocalConfig{
		JWTSecret:  testSecret,
		Issuer:     "catalogo-api-test",
		ExpMinutes: 60,
	})
}

func TestLocalGateway_RegistroLoginYVerificacion(t *testing.T) {
	store := memory.NewStore()
	gw := newLocalGateway(store)
	ctx := context.Background()

	creado, err := gw.CreateIdentity(ctx, "ana@ejemplo.com", "secreta1")
	require.NoError(t, err)
	require.NotEmpty(t, creado.UID)
	assert.Equal(t, "ana@ejemplo.com", creado.Email)

	token, err := gw.PasswordLogin(ctx, "ana@ejemplo.com", "secreta1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verificado, err := gw.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, creado.UID, verificado.UID)
	assert.Equal(t, "ana@ejemplo.com", verificado.Email)
	assert.Empty(t, verificado.Role, "sin rol registrado el claim va vacío")
}

func TestLocalGateway_RolRegistradoViajaComoClaim(t *testing.T) {
	store := memory.NewStore()
	gw := newLocalGateway(store)
	ctx := context.Background()

	creado, err := gw.CreateIdentity(ctx, "root@ejemplo.com", "secreta1")
	require.NoError(t, err)

	// El rol se asigna fuera de banda sobre las credenciales
	require.NoError(t, store.UpdateMerge(ctx, "credentials", creado.UID, map[string]any{"role": "admin"}))

	token, err := gw.PasswordLogin(ctx, "root@ejemplo.com", "secreta1")
	require.NoError(t, err)

	verificado, err := gw.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", verificado.Role)
}

func TestLocalGateway_EmailDuplicado(t *testing.T) {
	gw := newLocalGateway(memory.NewStore())
	ctx := context.Background()

	_, err := gw.CreateIdentity(ctx, "ana@ejemplo.com", "secreta1")
	require.NoError(t, err)

	_, err = gw.CreateIdentity(ctx, "ana@ejemplo.com", "otra-clave")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLocalGateway_PasswordCorta(t *testing.T) {
	gw := newLocalGateway(memory.NewStore())
	_, err := gw.CreateIdentity(context.Background(), "ana@ejemplo.com", "123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLocalGateway_CredencialesInvalidas(t *testing.T) {
	gw := newLocalGateway(memory.NewStore())
	ctx := context.Background()

	_, err := gw.CreateIdentity(ctx, "ana@ejemplo.com", "secreta1")
	require.NoError(t, err)

	_, err = gw.PasswordLogin(ctx, "ana@ejemplo.com", "incorrecta")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = gw.PasswordLogin(ctx, "nadie@ejemplo.com", "secreta1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLocalGateway_SinSecretEsErrorDeConfiguracion(t *testing.T) {
	gw := identity.NewLocalGateway(memory.NewStore(), identity.LocalConfig{})
	_, err := gw.PasswordLogin(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLocalGateway_TokenInvalido(t *testing.T) {
	gw := newLocalGateway(memory.NewStore())
	_, err := gw.VerifyToken(context.Background(), "token.malformado.aqui")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
