package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"salon_backend/internal/database"
	"salon_backend/internal/services"
	"salon_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	StorageDriver string
	StorageDir    string
	DatabaseURL   string // overrides DB when set
	DB            database.Config

	APILatency  time.Duration
	AuthLatency time.Duration

	AdminCode     string
	JWTSecret     string
	JWTExpiration time.Duration
	BcryptCost    int
	// JWTSecretGenerated is set when JWT_SECRET was empty and a random
	// per-process secret is in use.
	JWTSecretGenerated bool

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int

	Gemini services.GeminiConfig
}

// Load reads an optional .env file and then the environment. Malformed
// numeric values are reported instead of silently replaced.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          utils.Getenv("PORT", "8080"),
		LogLevel:      utils.Getenv("LOG_LEVEL", "info"),
		StorageDriver: strings.ToLower(utils.Getenv("STORAGE_DRIVER", DriverFile)),
		StorageDir:    utils.Getenv("STORAGE_DIR", "data"),
		DatabaseURL:   utils.Getenv("DATABASE_URL", ""),
		DB: database.Config{
			Host:     utils.Getenv("DB_HOST", "localhost"),
			Port:     utils.Getenv("DB_PORT", "5432"),
			User:     utils.Getenv("DB_USER", "salon_user"),
			Password: utils.Getenv("DB_PASSWORD", "salon_password"),
			Name:     utils.Getenv("DB_NAME", "salon_db"),
			SSLMode:  utils.Getenv("DB_SSLMODE", "disable"),
		},
		AdminCode: utils.Getenv("ADMIN_CODE", services.DefaultAdminCode),
		JWTSecret: utils.Getenv("JWT_SECRET", ""),
		Gemini: services.GeminiConfig{
			APIKey:  utils.Getenv("GEMINI_API_KEY", ""),
			Model:   utils.Getenv("GEMINI_MODEL", services.DefaultGeminiModel),
			BaseURL: utils.Getenv("GEMINI_BASE_URL", services.DefaultGeminiBaseURL),
		},
	}

	origins := utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	switch cfg.StorageDriver {
	case DriverMemory, DriverFile, DriverPostgres:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be one of %s, %s, %s (got %q)",
			DriverMemory, DriverFile, DriverPostgres, cfg.StorageDriver)
	}

	apiMs, err := utils.GetenvInt("API_LATENCY_MS", int(services.DefaultAPILatency/time.Millisecond))
	if err != nil {
		return nil, err
	}
	authMs, err := utils.GetenvInt("AUTH_LATENCY_MS", int(services.DefaultAuthLatency/time.Millisecond))
	if err != nil {
		return nil, err
	}
	if apiMs < 0 || authMs < 0 {
		return nil, fmt.Errorf("latency values must not be negative")
	}
	cfg.APILatency = time.Duration(apiMs) * time.Millisecond
	cfg.AuthLatency = time.Duration(authMs) * time.Millisecond

	if cfg.BcryptCost, err = utils.GetenvInt("BCRYPT_COST", 10); err != nil {
		return nil, err
	}
	if cfg.AuthRateLimitRPS, err = utils.GetenvFloat("AUTH_RATE_LIMIT_RPS", 1); err != nil {
		return nil, err
	}
	if cfg.AuthRateLimitBurst, err = utils.GetenvInt("AUTH_RATE_LIMIT_BURST", 5); err != nil {
		return nil, err
	}
	if cfg.AuthRateLimitRPS <= 0 || cfg.AuthRateLimitBurst < 1 {
		return nil, fmt.Errorf("AUTH_RATE_LIMIT_RPS must be positive and AUTH_RATE_LIMIT_BURST at least 1")
	}

	cfg.JWTExpiration, err = time.ParseDuration(utils.Getenv("JWT_EXPIRATION", "12h"))
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRATION must be a duration: %w", err)
	}

	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.JWTSecret = secret
		cfg.JWTSecretGenerated = true
	}
	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
