// internal/config/config.go
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Addr             string
	TargetScore      int
	Bots             []int // seats filled by autopass bots
	BotDelay         time.Duration
	SubscriberBuffer int
	ReconnectGrace   time.Duration
	JWTSecret        []byte
	TokenTTL         time.Duration

	RedisAddr     string // empty disables snapshot publishing
	RedisPassword string
	RedisDB       int

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file from the working directory, then the
// environment. Unset variables fall back to their defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("TICHU_ADDR", ":3000"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.TargetScore, err = getInt("TICHU_TARGET_SCORE", 1000); err != nil {
		return nil, err
	}
	if cfg.TargetScore <= 0 {
		return nil, fmt.Errorf("TICHU_TARGET_SCORE must be positive, got %d", cfg.TargetScore)
	}
	if cfg.Bots, err = parseSeats(os.Getenv("TICHU_BOTS")); err != nil {
		return nil, fmt.Errorf("TICHU_BOTS: %w", err)
	}
	if cfg.BotDelay, err = getDuration("TICHU_BOT_DELAY", 100*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.SubscriberBuffer, err = getInt("TICHU_SUBSCRIBER_BUFFER", 8); err != nil {
		return nil, err
	}
	if cfg.SubscriberBuffer < 1 {
		return nil, fmt.Errorf("TICHU_SUBSCRIBER_BUFFER must be at least 1, got %d", cfg.SubscriberBuffer)
	}
	if cfg.ReconnectGrace, err = getDuration("TICHU_RECONNECT_GRACE", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TICHU_TOKEN_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	if secret := os.Getenv("TICHU_JWT_SECRET"); secret != "" {
		cfg.JWTSecret = []byte(secret)
	} else if cfg.JWTSecret, err = randomSecret(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", key, d)
	}
	return d, nil
}

// parseSeats parses a comma-separated list of distinct seats 0..3.
func parseSeats(v string) ([]int, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	var seats []int
	seen := make(map[int]bool)
	for _, field := range strings.Split(v, ",") {
		seat, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		if seat < 0 || seat > 3 {
			return nil, fmt.Errorf("seat %d out of range", seat)
		}
		if seen[seat] {
			return nil, fmt.Errorf("seat %d listed twice", seat)
		}
		seen[seat] = true
		seats = append(seats, seat)
	}
	return seats, nil
}

func randomSecret() ([]byte, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generating jwt secret: %w", err)
	}
	return []byte(hex.EncodeToString(buf)), nil
}
