package resolver

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/jsonref/referrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNoRefsIsIdentity(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	doc := map[string]any{
		"properties": map[string]any{
			"prop1": map[string]any{"title": "proptitle"},
		},
	}
	want := map[string]any{
		"properties": map[string]any{
			"prop1": map[string]any{"title": "proptitle"},
		},
	}

	resolved, err := r.Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, want, resolved)
}

func TestResolveInternalPointer(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	doc := map[string]any{
		"properties": map[string]any{
			"prop1": map[string]any{"title": "name"},
			"prop2": map[string]any{"$ref": "#/properties/prop1"},
		},
	}
	want := map[string]any{
		"properties": map[string]any{
			"prop1": map[string]any{"title": "name"},
			"prop2": map[string]any{"title": "name"},
		},
	}

	resolved, err := r.Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, want, resolved)
}

func TestResolveReferenceKeyPreservesSiblings(t *testing.T) {
	r, err := New(WithReferenceKey("__reference__"))
	require.NoError(t, err)

	doc := map[string]any{
		"properties": map[string]any{
			"prop1": map[string]any{"title": "name"},
			"prop2": map[string]any{"$ref": "#/properties/prop1", "title": "old_title"},
		},
	}
	want := map[string]any{
		"properties": map[string]any{
			"prop1": map[string]any{"title": "name"},
			"prop2": map[string]any{
				"title":         "name",
				"__reference__": map[string]any{"title": "old_title"},
			},
		},
	}

	resolved, err := r.Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, want, resolved)
}

func TestResolveSiblingsDroppedWithoutReferenceKey(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	doc := map[string]any{
		"properties": map[string]any{
			"prop1": map[string]any{"title": "name"},
			"prop2": map[string]any{"$ref": "#/properties/prop1", "title": "old_title"},
		},
	}

	resolved, err := r.Resolve(doc)
	require.NoError(t, err)

	prop2 := resolved.(map[string]any)["properties"].(map[string]any)["prop2"].(map[string]any)
	assert.Equal(t, map[string]any{"title": "name"}, prop2)
}

func TestSetReferenceKey(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	r.SetReferenceKey("__reference__")

	doc := map[string]any{
		"a": map[string]any{"title": "name"},
		"b": map[string]any{"$ref": "#/a", "note": "overridden"},
	}

	resolved, err := r.Resolve(doc)
	require.NoError(t, err)

	b := resolved.(map[string]any)["b"].(map[string]any)
	assert.Equal(t, "name", b["title"])
	assert.Equal(t, map[string]any{"note": "overridden"}, b["__reference__"])
}

func TestResolveRecursionUnrollsOnce(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	doc := map[string]any{
		"properties": map[string]any{
			"prop1": map[string]any{"$ref": "#"},
		},
	}
	want := map[string]any{
		"properties": map[string]any{
			"prop1": map[string]any{
				"properties": map[string]any{
					"prop1": map[string]any{},
				},
			},
		},
	}

	resolved, err := r.Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, want, resolved)
}

func TestResolveRootSelfReference(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	resolved, err := r.Resolve(map[string]any{"$ref": "#"})
	require.NoError(t, err)

	// The single unrolling of {"$ref": "#"} minus its own $ref is empty.
	assert.Equal(t, map[string]any{}, resolved)
}

func TestResolveSelfPointingFragmentTerminates(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	doc := map[string]any{
		"definitions": map[string]any{
			"node": map[string]any{
				"title": "node",
				"next":  map[string]any{"$ref": "#/definitions/node"},
			},
		},
	}

	resolved, err := r.Resolve(doc)
	require.NoError(t, err)

	node := resolved.(map[string]any)["definitions"].(map[string]any)["node"].(map[string]any)
	next := node["next"].(map[string]any)
	assert.Equal(t, "node", next["title"])
	// The second level is present but its own reference is left unexpanded.
	assert.Equal(t, map[string]any{}, next["next"])
}

func TestResolveNonStringRefTreatedAsAbsent(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	doc := map[string]any{
		"prop": map[string]any{"$ref": 42, "title": "kept"},
	}

	resolved, err := r.Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"prop": map[string]any{"title": "kept"},
	}, resolved)
}

func TestResolvePointerNotFound(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	doc := map[string]any{
		"prop": map[string]any{"$ref": "#/definitions/missing"},
	}

	_, err = r.Resolve(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, referrors.ErrPointerNotFound)

	var ptrErr *referrors.PointerError
	require.ErrorAs(t, err, &ptrErr)
	assert.Equal(t, "#/definitions/missing", ptrErr.Ref)
	assert.Equal(t, "/definitions/missing", ptrErr.Pointer)
	assert.NotEmpty(t, ptrErr.BaseID)
}

func TestResolveUnsupportedScheme(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	doc := map[string]any{
		"prop": map[string]any{"$ref": "ftp://example.com/schema.json#/a"},
	}

	_, err = r.Resolve(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, referrors.ErrUnsupportedScheme)
	assert.ErrorIs(t, err, referrors.ErrReference)
}

func TestResolveMalformedReference(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	doc := map[string]any{
		"prop": map[string]any{"$ref": "%zz"},
	}

	_, err = r.Resolve(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, referrors.ErrInvalidReference)
}

func TestResolveArrayElements(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	doc := map[string]any{
		"definitions": map[string]any{
			"name": map[string]any{"type": "string"},
		},
		"allOf": []any{
			map[string]any{"$ref": "#/definitions/name"},
			map[string]any{"title": "inline"},
		},
	}

	resolved, err := r.Resolve(doc)
	require.NoError(t, err)

	allOf := resolved.(map[string]any)["allOf"].([]any)
	assert.Equal(t, map[string]any{"type": "string"}, allOf[0])
	assert.Equal(t, map[string]any{"title": "inline"}, allOf[1])
}

func TestResolveMaxDepthExceeded(t *testing.T) {
	r, err := New(WithMaxDepth(3))
	require.NoError(t, err)

	doc := map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": map[string]any{
					"d": map[string]any{"title": "deep"},
				},
			},
		},
	}

	_, err = r.Resolve(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, referrors.ErrResourceLimit)
}

func TestResolveFileWithRelativeRefs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	base := `{
		"title": "base",
		"properties": {
			"child": {"$ref": "sub/child.json"},
			"internal": {"$ref": "#/definitions/name"}
		},
		"definitions": {"name": {"type": "string"}}
	}`
	child := `{
		"title": "child",
		"properties": {"name": {"$ref": "#/definitions/name"}},
		"definitions": {"name": {"type": "string", "title": "child name"}}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.json"), []byte(base), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "child.json"), []byte(child), 0o644))

	r, err := New()
	require.NoError(t, err)

	resolved, err := r.ResolveFile(filepath.Join(dir, "base.json"))
	require.NoError(t, err)

	want := map[string]any{
		"title": "base",
		"properties": map[string]any{
			"child": map[string]any{
				"title": "child",
				"properties": map[string]any{
					"name": map[string]any{"type": "string", "title": "child name"},
				},
				"definitions": map[string]any{
					"name": map[string]any{"type": "string", "title": "child name"},
				},
			},
			"internal": map[string]any{"type": "string"},
		},
		"definitions": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	}
	assert.Equal(t, want, resolved)
}

func TestResolveFileYAMLDocument(t *testing.T) {
	dir := t.TempDir()
	schema := "definitions:\n  name:\n    type: string\nproperties:\n  prop1:\n    $ref: \"#/definitions/name\"\n"
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(schema), 0o644))

	r, err := New()
	require.NoError(t, err)

	resolved, err := r.ResolveFile(path)
	require.NoError(t, err)

	prop1 := resolved.(map[string]any)["properties"].(map[string]any)["prop1"]
	assert.Equal(t, map[string]any{"type": "string"}, prop1)
}

func TestResolveFileMissing(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	_, err = r.ResolveFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, referrors.ErrFile)
}

func TestResolveFileCircularAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	a := `{"title": "a", "next": {"$ref": "b.json"}}`
	b := `{"title": "b", "next": {"$ref": "a.json"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(a), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(b), 0o644))

	r, err := New()
	require.NoError(t, err)

	resolved, err := r.ResolveFile(filepath.Join(dir, "a.json"))
	require.NoError(t, err)

	want := map[string]any{
		"title": "a",
		"next": map[string]any{
			"title": "b",
			"next": map[string]any{
				"title": "a",
				"next":  map[string]any{},
			},
		},
	}
	assert.Equal(t, want, resolved)
}

func TestResolveFileReadCountAndCacheReuse(t *testing.T) {
	dir := t.TempDir()
	doc := `{
		"properties": {
			"first": {"$ref": "shared.json#/definitions/name"},
			"second": {"$ref": "shared.json#/definitions/title"}
		}
	}`
	shared := `{"definitions": {"name": {"type": "string"}, "title": {"type": "string", "title": "t"}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.json"), []byte(doc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared.json"), []byte(shared), 0o644))

	r, err := New()
	require.NoError(t, err)

	reads := map[string]int{}
	r.cache.readFile = func(path string) ([]byte, error) {
		reads[filepath.Base(path)]++
		return os.ReadFile(path)
	}

	_, err = r.ResolveFile(filepath.Join(dir, "doc.json"))
	require.NoError(t, err)
	assert.Equal(t, 1, reads["shared.json"], "two references to the same document should cause exactly one read")

	// The cache lives as long as the Resolver, so a second top-level call
	// still finds shared.json cached.
	_, err = r.ResolveFile(filepath.Join(dir, "doc.json"))
	require.NoError(t, err)
	assert.Equal(t, 1, reads["shared.json"], "cache should be reused across top-level calls")
	assert.Equal(t, 2, reads["doc.json"], "the root document itself is re-read per call")
}

func TestResolveURL(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/base.json":
			fetches++
			_, _ = w.Write([]byte(`{
				"properties": {
					"prop1": {"$ref": "defs.json#/definitions/name"},
					"prop2": {"$ref": "defs.json#/definitions/name"}
				}
			}`))
		case "/defs.json":
			fetches++
			_, _ = w.Write([]byte(`{"definitions": {"name": {"type": "string", "title": "from url"}}}`))
		default:
			http.NotFound(w, req)
		}
	}))
	defer srv.Close()

	r, err := New()
	require.NoError(t, err)

	resolved, err := r.ResolveURL(srv.URL + "/base.json")
	require.NoError(t, err)

	want := map[string]any{
		"properties": map[string]any{
			"prop1": map[string]any{"type": "string", "title": "from url"},
			"prop2": map[string]any{"type": "string", "title": "from url"},
		},
	}
	assert.Equal(t, want, resolved)
	assert.Equal(t, 2, fetches, "base fetched once, defs fetched once despite two references")
}

func TestResolveURLHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	r, err := New()
	require.NoError(t, err)

	_, err = r.ResolveURL(srv.URL + "/missing.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, referrors.ErrFetch)

	var fetchErr *referrors.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

func TestResolveRemoteRefViaFetcherProbe(t *testing.T) {
	fetched := map[string]int{}
	r, err := New(WithHTTPFetcher(func(url string) ([]byte, string, error) {
		fetched[url]++
		return []byte(`{"definitions": {"name": {"title": "probed"}}}`), "application/json", nil
	}))
	require.NoError(t, err)

	doc := map[string]any{
		"a": map[string]any{"$ref": "https://example.com/s.json#/definitions/name"},
		"b": map[string]any{"$ref": "https://example.com/s.json#/definitions"},
	}

	resolved, err := r.Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, 1, fetched["https://example.com/s.json"])
	m := resolved.(map[string]any)
	assert.Equal(t, map[string]any{"title": "probed"}, m["a"])
	assert.Equal(t, map[string]any{"name": map[string]any{"title": "probed"}}, m["b"])
}

func TestResolveIDRebasing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/defs.json" {
			http.NotFound(w, req)
			return
		}
		_, _ = w.Write([]byte(`{"definitions": {"name": {"type": "string", "title": "defs name"}}}`))
	}))
	defer srv.Close()

	r, err := New()
	require.NoError(t, err)

	// The nested $id rebases the relative reference onto defs.json rather
	// than the document root's base.
	doc := map[string]any{
		"$id": srv.URL + "/root.json",
		"properties": map[string]any{
			"sub": map[string]any{
				"$id":   "defs.json",
				"items": map[string]any{"$ref": "#/definitions/name"},
			},
		},
	}

	resolved, err := r.Resolve(doc)
	require.NoError(t, err)

	sub := resolved.(map[string]any)["properties"].(map[string]any)["sub"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "string", "title": "defs name"}, sub["items"])
}

func TestResolveIDOnRefNode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/defs.json" {
			http.NotFound(w, req)
			return
		}
		_, _ = w.Write([]byte(`{"definitions": {"name": {"title": "rebased"}}}`))
	}))
	defer srv.Close()

	r, err := New()
	require.NoError(t, err)

	// A node that is both an $id boundary and a $ref resolves the reference
	// against its own $id.
	doc := map[string]any{
		"prop": map[string]any{
			"$id":  srv.URL + "/defs.json",
			"$ref": "#/definitions/name",
		},
	}

	resolved, err := r.Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "rebased"}, resolved.(map[string]any)["prop"])
}

func TestResolveCachedDocumentNotCorruptedByOutputMutation(t *testing.T) {
	dir := t.TempDir()
	doc := `{
		"a": {"$ref": "shared.json"},
		"b": {"$ref": "shared.json"}
	}`
	shared := `{"title": "shared", "nested": {"deep": true}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.json"), []byte(doc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared.json"), []byte(shared), 0o644))

	r, err := New()
	require.NoError(t, err)

	resolved, err := r.ResolveFile(filepath.Join(dir, "doc.json"))
	require.NoError(t, err)

	m := resolved.(map[string]any)
	// Mutating one substitution must not leak into the other (nor into the
	// cached document).
	m["a"].(map[string]any)["nested"].(map[string]any)["deep"] = false
	assert.Equal(t, true, m["b"].(map[string]any)["nested"].(map[string]any)["deep"])
}

func TestResolveFixtureNestedRelative(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	resolved, err := r.ResolveFile(filepath.Join("testdata", "nested_relative", "base.json"))
	require.NoError(t, err)

	expected, err := LoadFile(filepath.Join("testdata", "nested_relative", "expected.json"))
	require.NoError(t, err)
	assert.Equal(t, expected, resolved)
}
