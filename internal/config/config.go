package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config drives the tracker server. It is loaded once at startup and passed
// down explicitly; nothing reads the environment after Load returns.
type Config struct {
	HTTPAddr string

	// RemoteURL selects the backend: an http(s) URL enables the remote
	// store, anything else means local only.
	RemoteURL string
	// DataFile is the local blob path, used directly by the local backend
	// and as the fallback mirror by the remote one.
	DataFile string
	// MirrorInterval is the remote-to-local snapshot period; zero disables
	// the mirror worker.
	MirrorInterval time.Duration
	// Seed writes a demo record into a brand-new local store.
	Seed bool

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// JWTSecret and AuthPasswordHash together enable bearer auth on the
	// record routes. Either empty leaves the API open.
	JWTSecret        string
	AuthPasswordHash string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		RemoteURL:            getenv("REMOTE_URL", ""),
		DataFile:             getenv("DATA_FILE", "pr_tracker_data.json"),
		Seed:                 getenv("SEED", "false") == "true",
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
		JWTSecret:            getenv("JWT_SECRET", ""),
		AuthPasswordHash:     getenv("AUTH_PASSWORD_HASH", ""),
	}

	if v := getenv("MIRROR_INTERVAL", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid MIRROR_INTERVAL: %w", err)
		}
		cfg.MirrorInterval = d
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	return cfg, nil
}

// UseRemote reports whether the remote backend is configured.
func (c Config) UseRemote() bool {
	return strings.HasPrefix(c.RemoteURL, "http")
}

func (c Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.AuthPasswordHash != ""
}

// SheetConfig drives the wire-protocol server.
type SheetConfig struct {
	HTTPAddr    string
	DatabaseURL string
}

func LoadSheet() (SheetConfig, error) {
	_ = godotenv.Load()

	return SheetConfig{
		HTTPAddr:    getenv("HTTP_ADDR", ":8090"),
		DatabaseURL: mustGetenv("DATABASE_URL"),
	}, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}
