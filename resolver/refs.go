package resolver

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// RefKind classifies a $ref by the kind of target it names.
type RefKind string

const (
	// RefKindLocal is a JSON Pointer fragment into the same document.
	RefKindLocal RefKind = "local"
	// RefKindFile is a relative or absolute file reference.
	RefKindFile RefKind = "file"
	// RefKindHTTP is an http(s) URL reference.
	RefKindHTTP RefKind = "http"
)

// RefInfo describes a single $ref occurrence in a document.
type RefInfo struct {
	// Ref is the raw $ref value
	Ref string `json:"ref"`
	// Path is the JSON Pointer path of the object holding the $ref
	// (empty for the document root)
	Path string `json:"path"`
	// Kind classifies the reference target
	Kind RefKind `json:"kind"`
}

// CollectRefs walks doc without resolving anything and reports every $ref
// whose value is a string, in depth-first sorted-key order.
func CollectRefs(doc any) []RefInfo {
	var refs []RefInfo
	collectRefs(doc, "", &refs)
	return refs
}

func collectRefs(node any, path string, refs *[]RefInfo) {
	switch v := node.(type) {
	case map[string]any:
		if ref, ok := v[refKey].(string); ok {
			*refs = append(*refs, RefInfo{Ref: ref, Path: path, Kind: classifyRef(ref)})
		}
		for _, key := range slices.Sorted(maps.Keys(v)) {
			collectRefs(v[key], path+"/"+escapePointerToken(key), refs)
		}
	case []any:
		for i, item := range v {
			collectRefs(item, fmt.Sprintf("%s/%d", path, i), refs)
		}
	}
}

func classifyRef(ref string) RefKind {
	switch {
	case strings.HasPrefix(ref, "#"):
		return RefKindLocal
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return RefKindHTTP
	default:
		return RefKindFile
	}
}
