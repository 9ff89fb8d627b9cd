package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port          string
	DBPath        string
	SessionSecret string
	SessionTTL    time.Duration
	LogFile       string
	LogLevel      string
	CookieSecure  bool
}

func Load() Config {
	_ = godotenv.Load() // .env is optional

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "database.db"), // sqlite file in working dir
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    12 * time.Hour,
		LogFile:       getEnv("LOG_FILE", "./boutique.log"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CookieSecure:  strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
	}
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.SessionTTL = d
		} else {
			logrus.Warnf("[config] ignoring invalid SESSION_TTL=%q", raw)
		}
	}
	if cfg.SessionSecret == "" {
		// Sessions will not survive a restart.
		cfg.SessionSecret = randomSecret()
		logrus.Warn("[config] SESSION_SECRET not set, using a per-process random secret")
	}

	logrus.Infof("[config] PORT=%s DB_PATH=%s SESSION_TTL=%s LOG_FILE=%s LOG_LEVEL=%s",
		cfg.Port, cfg.DBPath, cfg.SessionTTL, cfg.LogFile, cfg.LogLevel)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
