package mcpserver

import (
	"fmt"
	"net/http"

	"github.com/erraggy/jsonref/resolver"
)

// documentInput represents the three ways a document can be provided to a
// tool. Exactly one of File, URL, or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON or YAML document on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// validate checks that exactly one input source is set and that inline
// content stays under the configured size limit.
func (d documentInput) validate() error {
	count := 0
	if d.File != "" {
		count++
	}
	if d.URL != "" {
		count++
	}
	if d.Content != "" {
		count++
	}
	if count != 1 {
		return fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}
	if d.Content != "" && cfg.MaxInlineSize > 0 && int64(len(d.Content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set JSONREF_MAX_INLINE_SIZE to increase",
			len(d.Content), cfg.MaxInlineSize)
	}
	return nil
}

// newResolver builds a resolver from the server configuration plus any
// per-call options.
func newResolver(extraOpts ...resolver.Option) (*resolver.Resolver, error) {
	opts := []resolver.Option{
		resolver.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		resolver.WithMaxDepth(cfg.MaxDepth),
		resolver.WithMaxCachedDocuments(cfg.MaxDocuments),
		resolver.WithMaxFileSize(cfg.MaxFileSize),
	}
	if cfg.ReferenceKey != "" {
		opts = append(opts, resolver.WithReferenceKey(cfg.ReferenceKey))
	}
	opts = append(opts, extraOpts...)
	return resolver.New(opts...)
}

// resolve dereferences the document from whichever input was provided.
func (d documentInput) resolve(extraOpts ...resolver.Option) (any, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	r, err := newResolver(extraOpts...)
	if err != nil {
		return nil, err
	}
	switch {
	case d.File != "":
		return r.ResolveFile(d.File)
	case d.URL != "":
		return r.ResolveURL(d.URL)
	default:
		doc, err := resolver.LoadBytes([]byte(d.Content))
		if err != nil {
			return nil, err
		}
		return r.Resolve(doc)
	}
}

// document loads the document without resolving any references.
func (d documentInput) document() (any, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	switch {
	case d.File != "":
		return resolver.LoadFile(d.File)
	case d.URL != "":
		return resolver.LoadURL(d.URL)
	default:
		return resolver.LoadBytes([]byte(d.Content))
	}
}
