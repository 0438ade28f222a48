package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// DatabaseURL selects the Postgres backend; when empty the embedded
	// SQLite database at SQLitePath is used instead.
	DatabaseURL string
	SQLitePath  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	HTTPAddr string

	// Board behaviour.
	DebounceDelay time.Duration
	ClampToBounds bool
	BoardWidth    float64
	BoardHeight   float64
	DefaultOwner  string
	FallbackNote  string
}

func Load() Config {
	return Config{
		DatabaseURL: getenv("DATABASE_URL", ""),
		SQLitePath:  getenv("BOARD_DB_PATH", "bysk.db"),

		MaxOpenConns:    getenvInt("DB_MAX_OPEN", 20),
		MaxIdleConns:    getenvInt("DB_MAX_IDLE", 10),
		ConnMaxLifetime: getenvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ConnMaxIdleTime: getenvDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),

		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		DebounceDelay: getenvDuration("BOARD_DEBOUNCE", 400*time.Millisecond),
		ClampToBounds: getenvBool("BOARD_CLAMP", true),
		BoardWidth:    getenvFloat("BOARD_WIDTH", 1200),
		BoardHeight:   getenvFloat("BOARD_HEIGHT", 800),
		DefaultOwner:  getenv("BOARD_DEFAULT_OWNER", ""),
		FallbackNote:  getenv("BOARD_FALLBACK_NOTE", "New item"),
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
