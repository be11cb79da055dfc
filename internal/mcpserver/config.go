package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/jsonref/resolver"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// HTTPTimeout bounds remote document fetches.
	HTTPTimeout time.Duration
	// MaxDepth caps reference nesting per resolution (0 disables).
	MaxDepth int
	// MaxDocuments caps the per-resolver document cache (0 disables).
	MaxDocuments int
	// MaxFileSize caps loaded document size in bytes (0 disables).
	MaxFileSize int64
	// MaxInlineSize caps inline content input size in bytes.
	MaxInlineSize int64
	// ReferenceKey, when set, preserves original $ref values under this key.
	ReferenceKey string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from JSONREF_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		HTTPTimeout:   envDuration("JSONREF_HTTP_TIMEOUT", 30*time.Second),
		MaxDepth:      envInt("JSONREF_MAX_DEPTH", resolver.DefaultMaxDepth),
		MaxDocuments:  envInt("JSONREF_MAX_DOCUMENTS", resolver.DefaultMaxCachedDocuments),
		MaxFileSize:   envInt64("JSONREF_MAX_FILE_SIZE", resolver.DefaultMaxFileSize),
		MaxInlineSize: envInt64("JSONREF_MAX_INLINE_SIZE", 4*1024*1024),
		ReferenceKey:  os.Getenv("JSONREF_REFERENCE_KEY"),
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
