package resolver

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/erraggy/jsonref/referrors"
)

const (
	// refKey marks a reference-bearing object.
	refKey = "$ref"
	// idKey rebases relative references for a node and its descendants.
	idKey = "$id"
)

// Resolver dereferences $ref pointers in JSON Schema documents.
//
// A Resolver owns a document cache that lives as long as the instance: a
// document referenced from several places, or across several top-level calls,
// is fetched exactly once. Resolvers are not safe for concurrent use.
type Resolver struct {
	referenceKey string
	maxDepth     int
	logger       Logger
	cache        *documentCache
}

// New creates a Resolver configured by opts.
func New(opts ...Option) (*Resolver, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("resolver: invalid options: %w", err)
	}

	fetch := cfg.httpFetch
	if fetch == nil {
		fetch = newHTTPFetcher(cfg.httpClient, cfg.userAgent)
	}

	return &Resolver{
		referenceKey: cfg.referenceKey,
		maxDepth:     cfg.maxDepth,
		logger:       cfg.logger,
		cache: &documentCache{
			documents:    make(map[string]any),
			maxDocuments: cfg.maxCachedDocuments,
			maxFileSize:  cfg.maxFileSize,
			fetch:        fetch,
			readFile:     os.ReadFile,
			logger:       cfg.logger,
		},
	}, nil
}

// SetReferenceKey sets a key that stores the data each $ref replaced,
// equivalent to the WithReferenceKey option. An empty key disables
// preservation again.
func (r *Resolver) SetReferenceKey(key string) {
	r.referenceKey = key
}

// Resolve dereferences a document supplied directly, mutating object and
// array nodes in place and returning the resolved root. Relative references
// resolve against a synthetic file identifier in the current working
// directory.
func (r *Resolver) Resolve(doc any) (any, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolver: determine working directory: %w", err)
	}
	baseID := "file://" + filepath.ToSlash(cwd) + "/anon.json"
	r.cache.seed(baseID, doc)
	return r.deref(doc, baseID, nil, 0)
}

// ResolveURL fetches the document at rawURL with a blocking GET and
// dereferences it using rawURL as the base identifier.
func (r *Resolver) ResolveURL(rawURL string) (any, error) {
	doc, err := r.cache.loadHTTP(rawURL)
	if err != nil {
		return nil, err
	}
	r.cache.seed(rawURL, doc)
	return r.deref(doc, rawURL, nil, 0)
}

// ResolveFile opens and parses the document at path and dereferences it using
// the canonical file:// identifier of the absolute path as base.
func (r *Resolver) ResolveFile(path string) (any, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &referrors.FileError{Path: path, Message: "failed to canonicalize path", Cause: err}
	}
	doc, err := r.cache.loadFile(abs)
	if err != nil {
		return nil, err
	}
	baseID := "file://" + filepath.ToSlash(abs)
	r.cache.seed(baseID, doc)
	return r.deref(doc, baseID, nil, 0)
}

// deref walks node depth-first and returns the value that should occupy its
// position. Objects and arrays are mutated in place; node replacement (a $ref
// substitution) is expressed through the return value, which the caller
// splices back into the parent.
//
// usedRefs is the trail of joined reference identifiers already expanded on
// the current resolution path; it is extended per path, never shared mutably
// across sibling branches.
func (r *Resolver) deref(node any, baseID string, usedRefs []string, depth int) (any, error) {
	if r.maxDepth > 0 && depth > r.maxDepth {
		return nil, &referrors.ResourceLimitError{
			ResourceType: "walk_depth",
			Limit:        int64(r.maxDepth),
			Actual:       int64(depth),
			Message:      "document too deeply nested",
		}
	}

	if obj, ok := node.(map[string]any); ok {
		// $id applies before the reference check so that a node carrying both
		// resolves its $ref against its own $id.
		if id, ok := obj[idKey].(string); ok {
			rebased, err := r.rebase(baseID, id)
			if err != nil {
				return nil, err
			}
			baseID = rebased
		}

		if rawRef, hasRef := obj[refKey]; hasRef {
			// The key comes off unconditionally; a non-string $ref is treated
			// as absent.
			delete(obj, refKey)
			if ref, ok := rawRef.(string); ok {
				resolved, expanded, err := r.substitute(obj, ref, baseID, usedRefs, depth)
				if err != nil {
					return nil, err
				}
				if !expanded {
					// Cycle break: leave the node as it now stands, without
					// descending further.
					return node, nil
				}
				node = resolved
			}
		}
	}

	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			out, err := r.deref(child, baseID, usedRefs, depth+1)
			if err != nil {
				return nil, err
			}
			v[key] = out
		}
	case []any:
		for i, child := range v {
			out, err := r.deref(child, baseID, usedRefs, depth+1)
			if err != nil {
				return nil, err
			}
			v[i] = out
		}
	}

	return node, nil
}

// substitute resolves ref against baseID and returns the fully resolved
// replacement content. expanded is false when the joined reference is already
// on the current resolution path; the caller then keeps the node unexpanded,
// breaking the cycle after exactly one unrolling.
func (r *Resolver) substitute(obj map[string]any, ref, baseID string, usedRefs []string, depth int) (any, bool, error) {
	docID, fragment, hasFragment, err := r.join(baseID, ref)
	if err != nil {
		return nil, false, err
	}

	schema, err := r.cache.load(docID)
	if err != nil {
		return nil, false, err
	}

	if hasFragment {
		schema, err = lookupPointer(schema, fragment)
		if err != nil {
			return nil, false, &referrors.PointerError{Ref: ref, Pointer: fragment, BaseID: baseID, Cause: err}
		}
	}

	joined := docID
	if hasFragment {
		joined += "#" + fragment
	}
	if slices.Contains(usedRefs, joined) {
		r.logger.Debug("reference already expanded on this path", "ref", ref, "target", joined)
		return nil, false, nil
	}

	trail := make([]string, 0, len(usedRefs)+1)
	trail = append(trail, usedRefs...)
	trail = append(trail, joined)

	// References nested inside the fetched content resolve relative to the
	// target document, not the referencing one.
	r.logger.Debug("resolving reference", "ref", ref, "base", baseID, "target", joined)
	schema, err = r.deref(schema, docID, trail, depth+1)
	if err != nil {
		return nil, false, err
	}

	if r.referenceKey != "" {
		if m, ok := schema.(map[string]any); ok {
			m[r.referenceKey] = obj
		}
	}

	return schema, true, nil
}

// join resolves ref against baseID per RFC 3986 and splits the result into
// the fragment-stripped document identifier and the JSON Pointer fragment.
// hasFragment distinguishes "doc.json#" from "doc.json".
func (r *Resolver) join(baseID, ref string) (docID, fragment string, hasFragment bool, err error) {
	baseURL, err := url.Parse(baseID)
	if err != nil || !baseURL.IsAbs() {
		return "", "", false, &referrors.ReferenceError{
			Ref:           ref,
			BaseID:        baseID,
			IsInvalidBase: true,
			Message:       "base identifier must be an absolute URI",
			Cause:         err,
		}
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", "", false, &referrors.ReferenceError{
			Ref:     ref,
			BaseID:  baseID,
			Message: "reference is not a valid URI reference",
			Cause:   err,
		}
	}

	target := baseURL.ResolveReference(refURL)
	fragment = target.Fragment
	hasFragment = fragment != "" || strings.Contains(ref, "#")
	target.Fragment = ""
	target.RawFragment = ""
	return target.String(), fragment, hasFragment, nil
}

// rebase computes the base identifier declared by an $id value. An absolute
// $id replaces the inherited base; a relative one resolves against it.
func (r *Resolver) rebase(baseID, id string) (string, error) {
	idURL, err := url.Parse(id)
	if err != nil {
		return "", &referrors.ReferenceError{
			Ref:     id,
			BaseID:  baseID,
			Message: "$id is not a valid URI reference",
			Cause:   err,
		}
	}
	if idURL.IsAbs() {
		return id, nil
	}
	baseURL, err := url.Parse(baseID)
	if err != nil || !baseURL.IsAbs() {
		return "", &referrors.ReferenceError{
			Ref:           id,
			BaseID:        baseID,
			IsInvalidBase: true,
			Message:       "base identifier must be an absolute URI",
			Cause:         err,
		}
	}
	return baseURL.ResolveReference(idURL).String(), nil
}
