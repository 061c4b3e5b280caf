package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	localBaseURL  = "http://127.0.0.1:8000"
	hostedBaseURL = "https://project-backend-fcwe.onrender.com"

	defaultTimeout = 15 * time.Second
)

// Env carries runtime settings for the client CLI and the dev backend.
type Env struct {
	// Client side.
	APIBaseURL  string
	StatePath   string
	HTTPTimeout time.Duration

	// Dev backend.
	AppAddr   string
	GinMode   string
	DBDSN     string
	JWTSecret string
}

// ResolveBaseURL picks the backend base URL from the host the app runs on.
// Local hosts talk to a locally running backend, everything else to the
// hosted one.
func ResolveBaseURL(hostname string) string {
	h := strings.ToLower(strings.TrimSpace(hostname))
	if h == "127.0.0.1" || h == "localhost" || h == "" {
		return localBaseURL
	}
	return hostedBaseURL
}

// LoadEnv reads settings from the environment, with a .env file applied
// first when present. Missing values fall back to workable defaults.
func LoadEnv() Env {
	_ = godotenv.Load()

	baseURL := strings.TrimSpace(os.Getenv("LOCOTRANZ_API_URL"))
	if baseURL == "" {
		host, _ := os.Hostname()
		baseURL = ResolveBaseURL(host)
	}

	statePath := strings.TrimSpace(os.Getenv("LOCOTRANZ_STATE"))
	if statePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		statePath = filepath.Join(home, ".locotranz", "state.json")
	}

	timeout := defaultTimeout
	if raw := strings.TrimSpace(os.Getenv("LOCOTRANZ_TIMEOUT")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8000"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/locotranz?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "locotranz-dev-secret-change-me"
	}

	return Env{
		APIBaseURL:  baseURL,
		StatePath:   statePath,
		HTTPTimeout: timeout,
		AppAddr:     appAddr,
		GinMode:     strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:       dsn,
		JWTSecret:   secret,
	}
}
