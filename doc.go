// Package jsonref provides dereferencing of $ref pointers in JSON Schema documents.
//
// jsonref replaces every $ref in a schema with the (recursively resolved) content
// it points to, producing a single self-contained document. Dereferencing is
// normally performed implicitly by a JSON Schema validator; doing it as a
// standalone step is useful for:
//
//   - Analysing a schema programmatically to see what fields there are
//   - Programmatically modifying a schema
//   - Passing a schema to tools that generate fake data from it
//   - Passing a schema to form generation tools
//
// # Packages
//
// The library consists of two packages plus a CLI:
//
//   - resolver: the dereferencing engine (URL/file/in-memory entry points,
//     document cache, cycle handling, $id rebasing)
//   - referrors: structured error types for programmatic error handling
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/jsonref
//
// # Quick Start
//
// Dereference an in-memory document:
//
//	import "github.com/erraggy/jsonref/resolver"
//
//	r, err := resolver.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc := map[string]any{
//		"properties": map[string]any{
//			"prop1": map[string]any{"title": "name"},
//			"prop2": map[string]any{"$ref": "#/properties/prop1"},
//		},
//	}
//	resolved, err := r.Resolve(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Dereference a schema from a file or URL:
//
//	resolved, err := r.ResolveFile("schemas/base.json")
//	resolved, err = r.ResolveURL("https://example.com/schemas/base.json")
//
// Keep the data a $ref replaced by configuring a reference key:
//
//	r, err := resolver.New(resolver.WithReferenceKey("__reference__"))
//
// Every substituted node then carries its pre-substitution sibling fields
// (minus $ref) under that key.
//
// # Recursive references
//
// If a schema is self-referential, only the first recursion is expanded; the
// reference is left unexpanded after one unrolling so that resolution always
// terminates with a finite document.
//
// # Command Line
//
// The jsonref command exposes the engine:
//
//	jsonref resolve schema.json
//	jsonref resolve -ref-key __reference__ -format yaml https://example.com/schema.json
//	jsonref refs schema.json
//	jsonref mcp
//
// # Errors
//
// All failures are structured errors from the referrors package and can be
// classified with errors.Is and errors.As:
//
//	_, err := r.ResolveFile("schema.json")
//	if errors.Is(err, referrors.ErrPointerNotFound) {
//		// a $ref fragment did not resolve inside its target document
//	}
package jsonref
