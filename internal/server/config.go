package server

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the generation server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// RequestTimeout bounds a whole request including the model call.
	RequestTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown after the context ends.
	ShutdownTimeout time.Duration

	// RateLimit is the sustained generate requests per second allowed per
	// client address. Zero disables limiting.
	RateLimit float64

	// RateBurst is the token-bucket size per client.
	RateBurst int

	// TrustProxy takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable it only behind a proxy that sets those headers,
	// since any client can send them.
	TrustProxy bool

	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string

	// Version is reported by GET /version.
	Version string
}

// DefaultConfig returns settings suitable for local use.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		RequestTimeout:  2 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
		RateLimit:       0.5,
		RateBurst:       5,
		CORSOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		Version:         "(devel)",
	}
}

// ConfigFromEnv overlays APTIZ_* environment variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("APTIZ_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("APTIZ_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.RateLimit = f
		}
	}
	if v := os.Getenv("APTIZ_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateBurst = n
		}
	}
	if v := os.Getenv("APTIZ_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}
	if v := os.Getenv("APTIZ_TRUST_PROXY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.TrustProxy = b
		}
	}
	if v := os.Getenv("APTIZ_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}

	return cfg
}
