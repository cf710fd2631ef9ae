package dto

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultPort              = "8080"
	defaultMaxUploadBytes    = 100 * 1024 * 1024
	defaultResolveSchedule   = "0 5 0 * * MON"
	defaultReconcileSchedule = "0 30 3 * * *"
)

type Config struct {
	Port                  string
	DatabaseURL           string
	FirebaseKey           string
	FirebaseStorageBucket string
	RabbitMQURL           string
	RedisURL              string
	LogLevel              string
	Environment           string
	CORSOrigins           []string
	Timezone              string
	ResolveSchedule       string
	ReconcileSchedule     string
	MaxUploadBytes        int64
}

// LoadConfig reads a .env file when present and then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	cfg := Config{
		Port:                  getEnv("PORT", defaultPort),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		FirebaseKey:           os.Getenv("FIREBASE_KEY"),
		FirebaseStorageBucket: os.Getenv("FIREBASE_STORAGE_BUCKET"),
		RabbitMQURL:           os.Getenv("RABBITMQ_URL"),
		RedisURL:              os.Getenv("REDIS_URL"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		CORSOrigins:           splitList(getEnv("CORS_ORIGINS", "*")),
		Timezone:              os.Getenv("CONTEST_TIMEZONE"),
		ResolveSchedule:       getEnv("CONTEST_RESOLVE_SCHEDULE", defaultResolveSchedule),
		ReconcileSchedule:     getEnv("RECONCILE_SCHEDULE", defaultReconcileSchedule),
		MaxUploadBytes:        defaultMaxUploadBytes,
	}

	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid MAX_UPLOAD_BYTES %q", raw)
		}
		cfg.MaxUploadBytes = n
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.FirebaseKey == "" {
		return errors.New("FIREBASE_KEY is required")
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid CONTEST_TIMEZONE %q: %w", c.Timezone, err)
		}
	}
	return nil
}

// DecodeFirebaseKey returns the service account JSON stored base64-encoded in FIREBASE_KEY.
func (c Config) DecodeFirebaseKey() ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(c.FirebaseKey)
	if err != nil {
		return nil, fmt.Errorf("decode firebase key: %w", err)
	}
	return decoded, nil
}

// Location is the time zone contest weeks are computed in. Empty means the server's local zone.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
