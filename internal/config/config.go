package config

import (
	"os"
	"strings"
	"time"
)

// DevStateSecret signs state tokens when STATE_SECRET is unset. Fine
// for local use, not for anything shared.
const DevStateSecret = "goquiz-dev-secret"

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobBasePath string // uploaded quiz sources

	QuizConfig string // path to the source list, "" serves built-ins only

	StateSecret string
	StateTTL    time.Duration

	ShuffleDefault bool

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:       addr,
		DBDriver:       envOr("DB_DRIVER", "sqlite"),
		DBDSN:          envOr("DB_DSN", ""),
		BlobBasePath:   envOr("BLOB_BASE_PATH", "./data"),
		QuizConfig:     envOr("QUIZ_CONFIG", ""),
		StateSecret:    envOr("STATE_SECRET", DevStateSecret),
		StateTTL:       envDur("STATE_TTL", 2*time.Hour),
		ShuffleDefault: envBool("SHUFFLE_DEFAULT", false),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:3010"),
	}
}
func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envDur(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
