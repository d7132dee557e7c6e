package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/identity"
)

func newHTTPGateway(t *testing.T, handler http.HandlerFunc) *identity.HTTPGateway {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return identity.NewHTTPGateway(identity.HTTPConfig{WebAPIKey: "test-key", BaseURL: srv.URL})
}

func TestHTTPGateway_VerifyTokenExtraeRolDeCustomAttributes(t *testing.T) {
	gw := newHTTPGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/accounts:lookup"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{{
				"localId":          "uid-1",
				"email":            "ana@ejemplo.com",
				"customAttributes": `{"role":"admin"}`,
			}},
		})
	})

	id, err := gw.VerifyToken(context.Background(), "un-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", id.UID)
	assert.Equal(t, "ana@ejemplo.com", id.Email)
	assert.Equal(t, "admin", id.Role)
}

func TestHTTPGateway_VerifyTokenSinAtributosRolVacio(t *testing.T) {
	gw := newHTTPGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{{"localId": "uid-1", "email": "a@b.c"}},
		})
	})

	id, err := gw.VerifyToken(context.Background(), "un-token")
	require.NoError(t, err)
	assert.Empty(t, id.Role)
}

func TestHTTPGateway_VerifyTokenRechazado(t *testing.T) {
	gw := newHTTPGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "INVALID_ID_TOKEN"}})
	})

	_, err := gw.VerifyToken(context.Background(), "expirado")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestHTTPGateway_CreateIdentityPropagaLaRazon(t *testing.T) {
	gw := newHTTPGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "EMAIL_EXISTS"}})
	})

	_, err := gw.CreateIdentity(context.Background(), "ana@ejemplo.com", "secreta1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "EMAIL_EXISTS")
}

func TestHTTPGateway_PasswordLoginDevuelveIDToken(t *testing.T) {
	gw := newHTTPGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/accounts:signInWithPassword"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["returnSecureToken"])
		_ = json.NewEncoder(w).Encode(map[string]any{"idToken": "session-token"})
	})

	token, err := gw.PasswordLogin(context.Background(), "ana@ejemplo.com", "secreta1")
	require.NoError(t, err)
	assert.Equal(t, "session-token", token)
}

func TestHTTPGateway_PasswordLoginRechazado(t *testing.T) {
	gw := newHTTPGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "INVALID_PASSWORD"}})
	})

	_, err := gw.PasswordLogin(context.Background(), "ana@ejemplo.com", "mala")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "INVALID_PASSWORD")
}

func TestHTTPGateway_PasswordLoginSinAPIKey(t *testing.T) {
	gw := identity.NewHTTPGateway(identity.HTTPConfig{})
	_, err := gw.PasswordLogin(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
