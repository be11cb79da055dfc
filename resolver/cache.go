package resolver

import (
	"errors"
	"net/url"

	"github.com/erraggy/jsonref/referrors"
)

// documentCache is a process-lifetime mapping from absolute document
// identifier (fragment stripped) to parsed document tree. It is populated
// lazily on first need and never evicted; every lookup hands out a deep copy
// so callers can freely mutate what they get back.
type documentCache struct {
	documents    map[string]any
	maxDocuments int
	maxFileSize  int64
	fetch        HTTPFetcher
	// readFile is os.ReadFile outside of tests.
	readFile func(path string) ([]byte, error)
	logger   Logger
}

// seed stores a copy of doc under id, replacing any existing entry.
// Entry points use it to make the root document addressable by its own
// identifier before resolution starts.
func (c *documentCache) seed(id string, doc any) {
	c.documents[id] = deepCopyValue(doc)
}

// load returns a copy of the document identified by id, fetching and caching
// it on first use. The identifier must be absolute with its fragment already
// stripped; scheme dispatch supports http(s) and file.
func (c *documentCache) load(id string) (any, error) {
	if cached, ok := c.documents[id]; ok {
		c.logger.Debug("document cache hit", "id", id)
		return deepCopyValue(cached), nil
	}

	if c.maxDocuments > 0 && len(c.documents) >= c.maxDocuments {
		return nil, &referrors.ResourceLimitError{
			ResourceType: "cached_documents",
			Limit:        int64(c.maxDocuments),
			Actual:       int64(len(c.documents)),
			Message:      "too many external documents",
		}
	}

	u, err := url.Parse(id)
	if err != nil {
		return nil, &referrors.ReferenceError{Ref: id, Message: "identifier is not a valid URI", Cause: err}
	}

	var doc any
	switch u.Scheme {
	case "http", "https":
		doc, err = c.loadHTTP(id)
	case "file":
		doc, err = c.loadFile(u.Path)
	default:
		return nil, &referrors.ReferenceError{
			Ref:                 id,
			IsUnsupportedScheme: true,
			Scheme:              u.Scheme,
			Message:             "identifier must use an http(s) or file scheme",
		}
	}
	if err != nil {
		return nil, err
	}

	c.documents[id] = deepCopyValue(doc)
	return doc, nil
}

// loadHTTP fetches and parses a remote document. It does not touch the cache.
func (c *documentCache) loadHTTP(urlStr string) (any, error) {
	c.logger.Info("fetching remote document", "url", urlStr)
	data, _, err := c.fetch(urlStr)
	if err != nil {
		// Custom fetchers may return plain errors; keep the contract that
		// every network failure matches referrors.ErrFetch.
		var fetchErr *referrors.FetchError
		if errors.As(err, &fetchErr) {
			return nil, err
		}
		return nil, &referrors.FetchError{URL: urlStr, Message: "request failed", Cause: err}
	}
	if c.maxFileSize > 0 && int64(len(data)) > c.maxFileSize {
		return nil, &referrors.ResourceLimitError{
			ResourceType: "document_size",
			Limit:        c.maxFileSize,
			Actual:       int64(len(data)),
			Message:      "remote document too large",
		}
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, &referrors.FetchError{URL: urlStr, Message: "response body is not a valid document", Cause: err}
	}
	return doc, nil
}

// loadFile reads and parses a local document. It does not touch the cache.
func (c *documentCache) loadFile(path string) (any, error) {
	c.logger.Debug("reading local document", "path", path)
	data, err := c.readFile(path)
	if err != nil {
		return nil, &referrors.FileError{Path: path, Message: "failed to read document", Cause: err}
	}
	if c.maxFileSize > 0 && int64(len(data)) > c.maxFileSize {
		return nil, &referrors.ResourceLimitError{
			ResourceType: "document_size",
			Limit:        c.maxFileSize,
			Actual:       int64(len(data)),
			Message:      "document file too large",
		}
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, &referrors.FileError{Path: path, Message: "failed to parse document", Cause: err}
	}
	return doc, nil
}
