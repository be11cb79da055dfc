package resolver

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/erraggy/jsonref"
	"github.com/erraggy/jsonref/referrors"
	"go.yaml.in/yaml/v4"
)

// HTTPFetcher is a function type for fetching content from HTTP/HTTPS URLs.
// Returns the response body, the Content-Type header, and any error.
type HTTPFetcher func(url string) ([]byte, string, error)

// defaultHTTPTimeout bounds the blocking GET used for remote documents.
const defaultHTTPTimeout = 30 * time.Second

// newHTTPFetcher builds the default fetcher on top of client. A nil client
// gets a fresh one with the default timeout.
func newHTTPFetcher(client *http.Client, userAgent string) HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return func(urlStr string) ([]byte, string, error) {
		req, err := http.NewRequest(http.MethodGet, urlStr, nil)
		if err != nil {
			return nil, "", &referrors.FetchError{URL: urlStr, Message: "failed to create request", Cause: err}
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			return nil, "", &referrors.FetchError{URL: urlStr, Message: "request failed", Cause: err}
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusOK {
			return nil, "", &referrors.FetchError{URL: urlStr, StatusCode: resp.StatusCode, Message: "unexpected status"}
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", &referrors.FetchError{URL: urlStr, Message: "failed to read response body", Cause: err}
		}
		return data, resp.Header.Get("Content-Type"), nil
	}
}

// parseDocument parses raw document bytes into an untyped tree.
// The YAML parser handles both YAML and JSON.
func parseDocument(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadBytes parses a JSON or YAML document into the untyped tree form the
// Resolver operates on. It performs no reference resolution.
func LoadBytes(data []byte) (any, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("resolver: parse document: %w", err)
	}
	return doc, nil
}

// LoadFile reads and parses the document at path without resolving anything.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &referrors.FileError{Path: path, Message: "failed to read document", Cause: err}
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, &referrors.FileError{Path: path, Message: "failed to parse document", Cause: err}
	}
	return doc, nil
}

// LoadURL fetches and parses the document at rawURL without resolving anything.
func LoadURL(rawURL string) (any, error) {
	data, _, err := newHTTPFetcher(nil, jsonref.UserAgent())(rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, &referrors.FetchError{URL: rawURL, Message: "response body is not a valid document", Cause: err}
	}
	return doc, nil
}
