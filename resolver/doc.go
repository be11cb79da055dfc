// Package resolver implements $ref dereferencing for JSON Schema documents.
//
// A [Resolver] replaces every $ref pointer in a document with the content it
// points to, recursively, producing a single self-contained document. It
// handles absolute URLs, relative URLs, file paths, and internal JSON Pointer
// fragments, rebases relative references whenever a nested object declares its
// own $id, caches every fetched document for the lifetime of the Resolver, and
// breaks reference cycles after exactly one unrolling.
//
// Entry points mirror the three ways a document arrives:
//
//	r, _ := resolver.New()
//	resolved, err := r.Resolve(doc)                  // in-memory value
//	resolved, err = r.ResolveFile("schema.json")     // local file
//	resolved, err = r.ResolveURL("https://ex/s.json")// remote document
//
// All failures are structured errors from the referrors package. A reference
// cycle is not a failure: the cycle is expanded once and then left as-is so
// resolution always terminates.
package resolver
