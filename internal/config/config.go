// internal/config/config.go
//
// Environment-driven configuration. main loads .env (godotenv) first, so
// values may come from the process environment or a local .env file.

package config

import (
	"os"
	"strconv"
)

// Config holds every tunable of the server.
type Config struct {
	Port         string // PORT
	DBPath       string // DB_PATH
	ClientOrigin string // CLIENT_ORIGIN, the one origin allowed by CORS
	Production   bool   // NODE_ENV=production: secure cookies

	JWTSecret      string // JWT_SECRET
	JWTExpiresDays int    // JWT_EXPIRES_DAYS
	CookieName     string // COOKIE_NAME

	DailySalt   string // DAILY_SALT
	DailyRows   int    // DAILY_ROWS
	DailyColors int    // DAILY_COLORS

	DefaultRows   int // DEFAULT_ROWS, board size when /game/new omits rows
	DefaultColors int // DEFAULT_COLORS
	MaxRows       int // MAX_ROWS, upper bound for generated boards

	SessionIdleMinutes int // SESSION_IDLE_MINUTES, evict games untouched this long; 0 disables

	LogLevel  string // LOG_LEVEL
	LogFormat string // LOG_FORMAT: "json" | "console"
}

// Load reads the configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Port:         getEnv("PORT", "5175"),
		DBPath:       getEnv("DB_PATH", "./data/flow.db"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:   os.Getenv("NODE_ENV") == "production",

		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays: envInt("JWT_EXPIRES_DAYS", 14),
		CookieName:     getEnv("COOKIE_NAME", "flow_token"),

		DailySalt:   getEnv("DAILY_SALT", "local_dev_salt"),
		DailyRows:   envInt("DAILY_ROWS", 7),
		DailyColors: envInt("DAILY_COLORS", 6),

		DefaultRows:   envInt("DEFAULT_ROWS", 7),
		DefaultColors: envInt("DEFAULT_COLORS", 6),
		MaxRows:       envInt("MAX_ROWS", 15),

		SessionIdleMinutes: envInt("SESSION_IDLE_MINUTES", 60),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an int, falling back to def when unset or malformed.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
