// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"

	FileStoreDisk   = "disk"
	FileStoreSQLite = "sqlite"

	minSecretLength = 32
)

// Config is the full set of runtime settings.
type Config struct {
	Port   string
	APIURL string

	DatabaseDriver string
	DatabasePath   string
	MongoURI       string
	MongoDatabase  string

	FileStore string
	PublicDir string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	BcryptCost      int

	MaxUploadBytes int64
	LoginRate      float64
	LoginBurst     int

	LogLevel slog.Level
}

// Load reads an optional .env file from the working directory and then the
// environment. Values already present in the environment win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:           envOrDefault("PORT", "8080"),
		DatabaseDriver: strings.ToLower(envOrDefault("DATABASE_DRIVER", DriverSQLite)),
		DatabasePath:   envOrDefault("DATABASE_PATH", "folio.db"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  envOrDefault("MONGO_DATABASE", "folio"),
		FileStore:      strings.ToLower(envOrDefault("FILE_STORE", FileStoreDisk)),
		PublicDir:      envOrDefault("PUBLIC_DIR", "public"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
	}
	cfg.APIURL = strings.TrimRight(envOrDefault("API_URL", "http://localhost:"+cfg.Port), "/")

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < minSecretLength {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least %d characters for HMAC-SHA256 security", minSecretLength)
	}

	switch cfg.DatabaseDriver {
	case DriverSQLite:
	case DriverMongo:
		if cfg.MongoURI == "" {
			return Config{}, errors.New("MONGO_URI is required when DATABASE_DRIVER=mongo")
		}
	default:
		return Config{}, fmt.Errorf("unknown DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	switch cfg.FileStore {
	case FileStoreDisk:
	case FileStoreSQLite:
		if cfg.DatabaseDriver != DriverSQLite {
			return Config{}, errors.New("FILE_STORE=sqlite requires DATABASE_DRIVER=sqlite")
		}
	default:
		return Config{}, fmt.Errorf("unknown FILE_STORE %q", cfg.FileStore)
	}

	var err error
	if cfg.AccessTokenTTL, err = durationEnv("ACCESS_TOKEN_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RefreshTokenTTL, err = durationEnv("REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return Config{}, err
	}

	if cfg.BcryptCost, err = intEnv("BCRYPT_COST", 10); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 14 {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cfg.BcryptCost)
	}

	maxUpload, err := intEnv("MAX_UPLOAD_BYTES", 10<<20)
	if err != nil {
		return Config{}, err
	}
	if maxUpload <= 0 {
		return Config{}, errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	cfg.LoginRate = 1
	if v := os.Getenv("LOGIN_RATE"); v != "" {
		cfg.LoginRate, err = strconv.ParseFloat(v, 64)
		if err != nil || cfg.LoginRate <= 0 {
			return Config{}, fmt.Errorf("invalid LOGIN_RATE %q", v)
		}
	}
	if cfg.LoginBurst, err = intEnv("LOGIN_BURST", 10); err != nil {
		return Config{}, err
	}
	if cfg.LoginBurst < 1 {
		return Config{}, errors.New("LOGIN_BURST must be at least 1")
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func intEnv(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
