package resolver

import (
	"net/http"

	"github.com/erraggy/jsonref"
	"github.com/erraggy/jsonref/referrors"
)

// Default resource limits. Cycle handling already guarantees termination;
// these bound memory and stack usage on hostile inputs.
const (
	// DefaultMaxDepth is the maximum tree depth walked during resolution.
	DefaultMaxDepth = 1000

	// DefaultMaxCachedDocuments is the maximum number of documents held in
	// the cache of a single Resolver.
	DefaultMaxCachedDocuments = 100

	// DefaultMaxFileSize is the maximum size (in bytes) of a fetched or read
	// document. Set to 10MB which should be sufficient for any real schema.
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// Option is a function that configures a Resolver.
type Option func(*config) error

// config holds configuration assembled from options.
type config struct {
	referenceKey       string
	httpClient         *http.Client
	httpFetch          HTTPFetcher
	userAgent          string
	logger             Logger
	maxDepth           int
	maxCachedDocuments int
	maxFileSize        int64
}

// applyOptions applies option functions and validates the combination.
func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		userAgent:          jsonref.UserAgent(),
		logger:             NopLogger{},
		maxDepth:           DefaultMaxDepth,
		maxCachedDocuments: DefaultMaxCachedDocuments,
		maxFileSize:        DefaultMaxFileSize,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.httpClient != nil && cfg.httpFetch != nil {
		return nil, &referrors.ConfigError{
			Option:  "WithHTTPClient",
			Message: "conflicts with WithHTTPFetcher; a custom fetcher bypasses the HTTP client entirely",
		}
	}

	return cfg, nil
}

// WithReferenceKey sets a key that stores the data each $ref replaced.
// Every substituted node retains its pre-substitution sibling fields
// (minus $ref) under this key.
func WithReferenceKey(key string) Option {
	return func(cfg *config) error {
		if key == "" {
			return &referrors.ConfigError{Option: "WithReferenceKey", Message: "key must not be empty"}
		}
		cfg.referenceKey = key
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for remote document fetches.
// Use this to control timeouts, proxies, or TLS configuration:
//
//	client := &http.Client{Timeout: 60 * time.Second}
//	r, err := resolver.New(resolver.WithHTTPClient(client))
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) error {
		if client == nil {
			return &referrors.ConfigError{Option: "WithHTTPClient", Message: "client must not be nil"}
		}
		cfg.httpClient = client
		return nil
	}
}

// WithHTTPFetcher replaces the HTTP transport entirely. Intended for tests
// and embedders that already have a fetching layer.
func WithHTTPFetcher(fetcher HTTPFetcher) Option {
	return func(cfg *config) error {
		if fetcher == nil {
			return &referrors.ConfigError{Option: "WithHTTPFetcher", Message: "fetcher must not be nil"}
		}
		cfg.httpFetch = fetcher
		return nil
	}
}

// WithUserAgent overrides the User-Agent header sent on remote fetches.
func WithUserAgent(userAgent string) Option {
	return func(cfg *config) error {
		if userAgent == "" {
			return &referrors.ConfigError{Option: "WithUserAgent", Message: "user agent must not be empty"}
		}
		cfg.userAgent = userAgent
		return nil
	}
}

// WithLogger sets the logger used during resolution.
func WithLogger(logger Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return &referrors.ConfigError{Option: "WithLogger", Message: "logger must not be nil"}
		}
		cfg.logger = logger
		return nil
	}
}

// WithMaxDepth bounds the tree depth walked during resolution.
// Zero disables the bound.
func WithMaxDepth(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return &referrors.ConfigError{Option: "WithMaxDepth", Value: n, Message: "must not be negative"}
		}
		cfg.maxDepth = n
		return nil
	}
}

// WithMaxCachedDocuments bounds the number of documents held in the cache.
// Zero disables the bound.
func WithMaxCachedDocuments(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return &referrors.ConfigError{Option: "WithMaxCachedDocuments", Value: n, Message: "must not be negative"}
		}
		cfg.maxCachedDocuments = n
		return nil
	}
}

// WithMaxFileSize bounds the size in bytes of any fetched or read document.
// Zero disables the bound.
func WithMaxFileSize(n int64) Option {
	return func(cfg *config) error {
		if n < 0 {
			return &referrors.ConfigError{Option: "WithMaxFileSize", Value: n, Message: "must not be negative"}
		}
		cfg.maxFileSize = n
		return nil
	}
}
