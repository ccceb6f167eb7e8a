package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Todas las direcciones fijas (aprobador, admin) son configuración explícita, no constantes dispersas.
type Config struct {
	App   AppConfig
	Book  BookConfig
	Auth  AuthConfig
	SMTP  SMTPConfig
	HTTP  HTTPConfig
	Buyer BuyerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// BookConfig configuración del libro de cálculo que actúa como base de datos.
type BookConfig struct {
	Path string // ruta al .xlsx; vacío = libro en memoria (tests)
}

// AuthConfig configuración de magic links y sesión.
type AuthConfig struct {
	JWTSecret     string
	JWTIssuer     string
	SessionMin    int // duración de la sesión en minutos
	TokenTTLMin   int // vigencia del token de un solo uso (por defecto 15)
	SweepEveryHrs int // frecuencia del barrido de tokens vencidos (por defecto 24)
	BaseURL       string // base pública para construir los enlaces de acceso
}

// SMTPConfig configuración de correo saliente.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// BuyerConfig direcciones del flujo de compras.
type BuyerConfig struct {
	ApproverEmail string // recibe las órdenes por aprobar
	AdminEmail    string // copia fija en órdenes emitidas
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

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BOOK_PATH, SMTP_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración .env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "almacen-pro"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Book: BookConfig{
			Path: getString(v, "BOOK_PATH", "data/almacen.xlsx"),
		},
		Auth: AuthConfig{
			JWTSecret:     getString(v, "JWT_SECRET", ""),
			JWTIssuer:     getString(v, "JWT_ISSUER", "almacen-pro"),
			SessionMin:    getInt(v, "SESSION_MINUTES", 480),
			TokenTTLMin:   getInt(v, "TOKEN_TTL_MINUTES", 15),
			SweepEveryHrs: getInt(v, "TOKEN_SWEEP_HOURS", 24),
			BaseURL:       getString(v, "PUBLIC_BASE_URL", "http://localhost:8080"),
		},
		SMTP: SMTPConfig{
			Host:     getString(v, "SMTP_HOST", ""),
			Port:     getInt(v, "SMTP_PORT", 587),
			User:     getString(v, "SMTP_USER", ""),
			Password: getString(v, "SMTP_PASSWORD", ""),
			From:     getString(v, "SMTP_FROM", "almacen@localhost"),
		},
		Buyer: BuyerConfig{
			ApproverEmail: getString(v, "APPROVER_EMAIL", ""),
			AdminEmail:    getString(v, "ADMIN_EMAIL", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
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
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
