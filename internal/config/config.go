package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type Configuration struct {
	Server   ServerConfig
	Database DatabaseConfig
	Stellar  StellarConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	Username        string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int
}

// StellarConfig selects the attestation collaborator. Mode "horizon"
// talks to a real Horizon server; "mock" runs fully offline.
type StellarConfig struct {
	Mode         string
	HorizonURL   string
	FriendbotURL string
}

type LoggingConfig struct {
	Level string
}

func Load() *Configuration {
	return &Configuration{
		Server: ServerConfig{
			Port:         envOr("PORT", "3000"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            envOr("DATABASE_HOST", "localhost"),
			Port:            envOr("DATABASE_PORT", "5432"),
			Username:        envOr("DATABASE_USER", "postgres"),
			Password:        envOr("DATABASE_PASSWORD", "password"),
			Name:            envOr("DATABASE_NAME", "nda_backend"),
			SSLMode:         envOr("DATABASE_SSLMODE", "disable"),
			MaxIdleConns:    envIntOr("DATABASE_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    envIntOr("DATABASE_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: envIntOr("DATABASE_CONN_MAX_LIFETIME", 300),
		},
		Stellar: StellarConfig{
			Mode:         envOr("STELLAR_MODE", "mock"),
			HorizonURL:   envOr("HORIZON_URL", "https://horizon-testnet.stellar.org"),
			FriendbotURL: envOr("FRIENDBOT_URL", "https://friendbot.stellar.org"),
		},
		Logging: LoggingConfig{
			Level: envOr("LOG_LEVEL", "info"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func LogConfig(logger *zap.Logger, cfg *Configuration) {
	logger.Info("Application configuration",
		zap.String("port", cfg.Server.Port),
		zap.Duration("read_timeout", cfg.Server.ReadTimeout),
		zap.Duration("write_timeout", cfg.Server.WriteTimeout),
		zap.String("database_host", cfg.Database.Host),
		zap.String("database_name", cfg.Database.Name),
		zap.String("stellar_mode", cfg.Stellar.Mode),
		zap.String("horizon_url", cfg.Stellar.HorizonURL),
	)
}
