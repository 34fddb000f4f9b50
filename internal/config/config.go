// internal/config/config.go
//
// Environment configuration shared by the binaries. Values come from the
// process environment, optionally seeded from a .env file in the working
// directory.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const devSecret = "dev_secret_change_me"

type Config struct {
	Port         string        // PORT
	LogLevel     zerolog.Level // LOG_LEVEL
	DBPath       string        // DB_PATH
	JWTSecret    string        // JWT_SECRET
	JWTTTL       time.Duration // JWT_EXPIRES_DAYS
	CookieName   string        // COOKIE_NAME
	ClientOrigin string        // CLIENT_ORIGIN
	Production   bool          // NODE_ENV=production
	WordsDir     string        // WORDS_DIR, "" = embedded lists
	Timezone     string        // TIMEZONE, "" = local time
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "5175"),
		DBPath:       getEnv("DB_PATH", "./data/termo.db"),
		JWTSecret:    getEnv("JWT_SECRET", devSecret),
		CookieName:   getEnv("COOKIE_NAME", "termo_token"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:   os.Getenv("NODE_ENV") == "production",
		WordsDir:     os.Getenv("WORDS_DIR"),
		Timezone:     os.Getenv("TIMEZONE"),
	}

	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = lvl

	days, err := strconv.Atoi(getEnv("JWT_EXPIRES_DAYS", "14"))
	if err != nil || days <= 0 {
		return Config{}, fmt.Errorf("JWT_EXPIRES_DAYS: want a positive number of days, got %q", os.Getenv("JWT_EXPIRES_DAYS"))
	}
	cfg.JWTTTL = time.Duration(days) * 24 * time.Hour

	if cfg.Production && cfg.JWTSecret == devSecret {
		return Config{}, errors.New("JWT_SECRET must be set in production")
	}
	return cfg, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
