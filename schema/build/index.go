package build

import (
	"net/url"

	"go.solidfoundation.dev/core/schemauri"
	"go.solidfoundation.dev/core/value"
)

// indexedResource records where a resource (an $id boundary, including a
// document root that declares $id; a root without $id is not indexed) lives
// in the raw document, plus every $anchor and
// $dynamicAnchor declared directly within it. It is built once per Compile
// call by a blind recursive walk of the whole document, ahead of behavior
// compilation, so that $ref/$dynamicRef can resolve lazily into subtrees
// the eager compile pass never had reason to visit (most commonly, schemas
// tucked under $defs).
type indexedResource struct {
	baseURI        string
	source         value.Value
	metaSchemaURI  string
	anchors        map[string]value.Value
	dynamicAnchors map[string]value.Value
}

type resourceIndex struct {
	bases map[string]*indexedResource
}

// buildIndex walks raw recursively, tracking the nearest enclosing $id
// base URI and active $schema, registering every resource and anchor it
// finds along the way. It does not distinguish schema-bearing keywords
// from ordinary data, since a JSON Schema document's only object values
// are schemas or schema-valued keyword arguments; walking everything is
// simpler than tracking each vocabulary's applicator shape and never
// produces a false match in practice.
func buildIndex(raw value.Value, baseURI, metaURI string, idx *resourceIndex) {
	switch raw.Kind() {
	case value.KindObject:
		obj, err := raw.Object()
		if err != nil {
			return
		}

		localBase := baseURI
		localMeta := metaURI

		if v, ok := obj.GetString("$schema"); ok {
			if s, err := v.StringValue(); err == nil {
				localMeta = s
			}
		}

		if v, ok := obj.GetString("$id"); ok {
			if s, err := v.StringValue(); err == nil && !schemauri.HasNonEmptyFragment(s) {
				if base, err := baseURL(localBase); err == nil {
					if resolved, err := schemauri.Resolve(base, s); err == nil {
						canon := schemauri.WithoutFragment(resolved)
						localBase = canon

						if _, exists := idx.bases[canon]; !exists {
							idx.bases[canon] = &indexedResource{
								baseURI:        canon,
								source:         raw,
								metaSchemaURI:  localMeta,
								anchors:        make(map[string]value.Value),
								dynamicAnchors: make(map[string]value.Value),
							}
						}
					}
				}
			}
		}

		if res, ok := idx.bases[localBase]; ok {
			if v, ok := obj.GetString("$anchor"); ok {
				if s, err := v.StringValue(); err == nil && anchorPattern.MatchString(s) {
					res.anchors[s] = raw
				}
			}

			if v, ok := obj.GetString("$dynamicAnchor"); ok {
				if s, err := v.StringValue(); err == nil && anchorPattern.MatchString(s) {
					res.dynamicAnchors[s] = raw
				}
			}
		}

		for _, e := range obj.Entries() {
			buildIndex(e.Value, localBase, localMeta, idx)
		}
	case value.KindArray:
		elems, err := raw.ArrayValue()
		if err != nil {
			return
		}

		for _, el := range elems {
			buildIndex(el, baseURI, metaURI, idx)
		}
	}
}

func baseURL(s string) (*url.URL, error) {
	if s == "" {
		return &url.URL{}, nil
	}

	return schemauri.Parse(s)
}
