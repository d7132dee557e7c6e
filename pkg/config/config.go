package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Store    StoreConfig
	Firebase FirebaseConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig selecciona el proveedor de identidad y sus credenciales.
// Mode "firebase" usa Identity Toolkit; "local" emite JWT HS256 propios
// y guarda credenciales bcrypt en el Document Store.
type AuthConfig struct {
	Mode       string // firebase | local
	JWTSecret  string // requerido en modo local
	Expiration int    // minutos (modo local)
	Issuer     string // modo local
}

// StoreConfig selecciona el backend del Document Store.
// Mode "firestore" usa la API REST de Firestore; "memory" usa el store
// en proceso (desarrollo y tests).
type StoreConfig struct {
	Mode string // firestore | memory
}

// FirebaseConfig credenciales del proyecto Firebase.
// WebAPIKey es la credencial de API para el flujo de login REST; sin ella
// el login en modo firebase falla con ErrConfiguration.
type FirebaseConfig struct {
	ProjectID   string
	DatabaseID  string // "(default)" salvo bases nombradas
	WebAPIKey   string
	BearerToken string // token OAuth para Firestore REST; vacío contra el emulador
	AuthURL     string // override para emulador; vacío = identitytoolkit.googleapis.com
	StoreURL    string // override para emulador; vacío = firestore.googleapis.com
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, AUTH_MODE,
// FIREBASE_PROJECT_ID, FIREBASE_WEB_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "catalogo-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Auth: AuthConfig{
			Mode:       getString(v, "AUTH_MODE", "firebase"),
			JWTSecret:  getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "catalogo-api"),
		},
		Store: StoreConfig{
			Mode: getString(v, "STORE_MODE", "firestore"),
		},
		Firebase: FirebaseConfig{
			ProjectID:   getString(v, "FIREBASE_PROJECT_ID", ""),
			DatabaseID:  getString(v, "FIREBASE_DATABASE_ID", "(default)"),
			WebAPIKey:   getString(v, "FIREBASE_WEB_API_KEY", ""),
			BearerToken: getString(v, "FIREBASE_BEARER_TOKEN", ""),
			AuthURL:     getString(v, "FIREBASE_AUTH_URL", ""),
			StoreURL:    getString(v, "FIREBASE_STORE_URL", ""),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
