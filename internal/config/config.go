package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Modos de bloqueo de stock al crear pedidos.
const (
	// StockLockingRow bloquea la fila de la prenda (SELECT ... FOR UPDATE) dentro de la transacción.
	StockLockingRow = "row"
	// StockLockingNone lee sin bloqueo: dos pedidos simultáneos pueden sobregirar stock.
	StockLockingNone = "none"
)

// Config agrupa la configuración necesaria para correr la aplicación.
// Se construye una sola vez al arrancar y se pasa explícitamente a cada componente.
type Config struct {
	Port           string
	DatabaseURL    string
	LogLevel       string
	RequestTimeout time.Duration
	AllowedOrigins []string

	// Stock
	StockLocking string

	// Clasificador / respuestas en lenguaje natural.
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	// Canal de mensajería.
	VerifyToken    string
	TelegramToken  string
	TelegramAPIURL string

	// Eventos de pedidos (opcional).
	KafkaBroker string
	KafkaTopic  string

	// Trazas (opcional).
	OtelEndpoint   string
	OtelAuthHeader string
}

// Load lee variables de entorno y valida lo mínimo indispensable.
func Load() (Config, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}
	// Normalizamos por si alguien manda ":8080"
	port = strings.TrimPrefix(port, ":")

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		return Config{}, fmt.Errorf("missing required env var: DATABASE_URL")
	}

	timeoutSeconds, err := getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 10)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:           port,
		DatabaseURL:    databaseURL,
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		RequestTimeout: time.Duration(timeoutSeconds) * time.Second,
		AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		StockLocking:   strings.ToLower(getEnv("STOCK_LOCKING", StockLockingRow)),
		OpenAIKey:      getEnv("OPENAI_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
		VerifyToken:    getEnv("VERIFY_TOKEN", ""),
		TelegramToken:  getEnv("TELEGRAM_TOKEN", ""),
		TelegramAPIURL: strings.TrimSuffix(getEnv("TELEGRAM_API_URL", "https://api.telegram.org"), "/"),
		KafkaBroker:    getEnv("KAFKA_BROKER", ""),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "orders.created"),
		OtelEndpoint:   getEnv("OTEL_ENDPOINT", ""),
		OtelAuthHeader: getEnv("OTEL_AUTH_HEADER", ""),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate revisa valores enumerados.
func (cfg Config) Validate() error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	switch cfg.StockLocking {
	case StockLockingRow, StockLockingNone:
	default:
		return fmt.Errorf("invalid stock locking mode: %s (must be row or none)", cfg.StockLocking)
	}

	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	return nil
}

// LockStockRows indica si la creación de pedidos debe bloquear filas de prendas.
func (cfg Config) LockStockRows() bool {
	return cfg.StockLocking == StockLockingRow
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	number, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer env var %s: %w", key, err)
	}
	return number, nil
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
