package build

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"go.solidfoundation.dev/core/pointer"
	"go.solidfoundation.dev/core/schemauri"
	"go.solidfoundation.dev/core/value"
)

var anchorPattern = regexp.MustCompile(`^[A-Za-z_][-A-Za-z0-9._]*$`)

// Builder compiles schema documents into Schema graphs, per spec §4.4. A
// Builder is reusable across Compile calls; each call shares the builder's
// meta-schema registry and reference cache.
type Builder struct {
	defaultMetaSchema *MetaSchema
	metaSchemas       map[string]*MetaSchema

	index    *resourceIndex
	refCache map[string]*SubSchema
}

// NewBuilder creates a Builder whose default meta-schema (used when a
// document declares no $schema) is def. known lists every meta-schema the
// builder recognises for $schema switching; def is added automatically.
func NewBuilder(def *MetaSchema, known ...*MetaSchema) *Builder {
	b := &Builder{
		defaultMetaSchema: def,
		metaSchemas:       make(map[string]*MetaSchema),
		refCache:          make(map[string]*SubSchema),
	}

	b.metaSchemas[def.URI] = def
	for _, m := range known {
		b.metaSchemas[m.URI] = m
	}

	return b
}

// Compile builds a Schema graph from doc, the root schema document.
func (b *Builder) Compile(doc value.Value) (*Schema, error) {
	b.index = &resourceIndex{bases: make(map[string]*indexedResource)}
	buildIndex(doc, "", b.defaultMetaSchema.URI, b.index)

	scope := Scope{baseURI: "", metaSchema: b.defaultMetaSchema}

	sub, err := b.compileValue(doc, scope, "")
	if err != nil {
		return nil, err
	}

	root := sub.Resource
	if root == nil {
		root = &Schema{
			MetaSchema:     b.defaultMetaSchema,
			Source:         doc,
			Root:           sub,
			Anchors:        make(map[string]*SubSchema),
			DynamicAnchors: make(map[string]*SubSchema),
		}
		sub.Resource = root
	}

	return root, nil
}

// compileValue compiles one schema value (boolean or object) under scope,
// per spec §4.4's pass outline.
func (b *Builder) compileValue(raw value.Value, scope Scope, loc string) (*SubSchema, error) {
	if raw.Kind() == value.KindBool {
		boolVal, _ := raw.BoolValue()

		return &SubSchema{Boolean: &boolVal, Source: raw, Resource: scope.resource}, nil
	}

	if raw.Kind() != value.KindObject {
		return nil, &LocatedError{Err: ErrInvalidType, Location: loc, Detail: "schema must be an object or boolean"}
	}

	obj, _ := raw.Object()

	local := scope
	local.pendingAnchor = ""
	local.pendingDynamicAnchor = ""

	if v, ok := obj.GetString("$schema"); ok {
		s, err := v.StringValue()
		if err != nil {
			return nil, usageErr(loc, "$schema must be a string")
		}

		ms, ok := b.metaSchemas[s]
		if !ok {
			return nil, &LocatedError{Err: ErrUnknownMetaSchema, Location: loc, Detail: s}
		}

		local.metaSchema = ms
	}

	if v, ok := obj.GetString("$vocabulary"); ok {
		if loc != "" {
			return nil, usageErr(loc, "$vocabulary is only legal at the document root")
		}

		vobj, err := v.Object()
		if err != nil {
			return nil, usageErr(loc, "$vocabulary must be an object")
		}

		for _, e := range vobj.Entries() {
			uri, err := e.Key.StringValue()
			if err != nil {
				continue
			}

			required, _ := e.Value.BoolValue()
			if !local.metaSchema.HasVocabulary(uri) {
				if required {
					return nil, &LocatedError{Err: ErrUnknownKeyword, Location: loc, Detail: "required vocabulary not recognised: " + uri}
				}

				slog.Warn("schema build: unrecognised optional vocabulary",
					slog.String("location", loc),
					slog.String("vocabulary", uri),
				)
			}
		}
	}

	var newResource *Schema

	if v, ok := obj.GetString("$id"); ok {
		s, err := v.StringValue()
		if err != nil {
			return nil, usageErr(loc, "$id must be a string")
		}

		if schemauri.HasNonEmptyFragment(s) {
			return nil, usageErr(loc, "$id must not carry a non-empty fragment")
		}

		base, err := baseURL(local.baseURI)
		if err != nil {
			return nil, usageErr(loc, "invalid base URI")
		}

		resolved, err := schemauri.Resolve(base, s)
		if err != nil {
			return nil, usageErr(loc, "$id does not resolve to a valid URI")
		}

		canon := schemauri.WithoutFragment(resolved)
		local.baseURI = canon

		newResource = &Schema{
			CanonicalURI:   canon,
			MetaSchema:     local.metaSchema,
			Source:         raw,
			Anchors:        make(map[string]*SubSchema),
			DynamicAnchors: make(map[string]*SubSchema),
		}

		if scope.resource != nil {
			scope.resource.Resources = append(scope.resource.Resources, newResource)
		}

		local.resource = newResource
	}

	if v, ok := obj.GetString("$anchor"); ok {
		s, err := v.StringValue()
		if err != nil || !anchorPattern.MatchString(s) {
			return nil, usageErr(loc, "invalid $anchor")
		}

		local.pendingAnchor = s
	}

	if v, ok := obj.GetString("$dynamicAnchor"); ok {
		s, err := v.StringValue()
		if err != nil || !anchorPattern.MatchString(s) {
			return nil, usageErr(loc, "invalid $dynamicAnchor")
		}

		local.pendingDynamicAnchor = s
	}

	sub := &SubSchema{Source: raw, Resource: local.resource}

	handled := map[string]bool{
		"$id": true, "$schema": true, "$anchor": true, "$dynamicAnchor": true, "$vocabulary": true,
	}

	bc := &BuildContext{builder: b, scope: local, loc: loc, siblings: obj}

	for _, kw := range local.metaSchema.KeywordOrder() {
		val, ok := obj.GetString(kw)
		if !ok {
			continue
		}

		handled[kw] = true

		factory, _ := local.metaSchema.Factory(kw)

		behavior, err := factory(bc, val)
		if err != nil {
			return nil, err
		}

		sub.Behaviors = append(sub.Behaviors, behavior)
	}

	for _, e := range obj.Entries() {
		k, err := e.Key.StringValue()
		if err != nil || handled[k] {
			continue
		}

		switch local.metaSchema.UnknownKeywordPolicy {
		case UnknownIgnore:
			continue
		case UnknownFail:
			return nil, &LocatedError{Err: ErrUnknownKeyword, Location: loc, Detail: k}
		default:
			sub.Behaviors = append(sub.Behaviors, &unknownAnnotation{keyword: k, value: e.Value})
		}
	}

	for _, beh := range sub.Behaviors {
		if err := beh.Prepare(sub); err != nil {
			return nil, err
		}
	}

	if newResource != nil {
		newResource.Root = sub
		sub.Resource = newResource

		if local.pendingAnchor != "" {
			newResource.Anchor = local.pendingAnchor
		}

		if local.pendingDynamicAnchor != "" {
			newResource.DynamicAnchor = local.pendingDynamicAnchor
		}
	}

	if local.pendingAnchor != "" && local.resource != nil {
		local.resource.Anchors[local.pendingAnchor] = sub
	}

	if local.pendingDynamicAnchor != "" && local.resource != nil {
		local.resource.DynamicAnchors[local.pendingDynamicAnchor] = sub
	}

	return sub, nil
}

func usageErr(loc, detail string) error {
	return &LocatedError{Err: ErrKeywordUsageError, Location: loc, Detail: detail}
}

// ResolveRef resolves ref (absolute or relative) against baseURI, lazily
// compiling the target sub-schema if it has not been resolved before. This
// is the builder-level, static part of $ref/$dynamicRef resolution; dynamic
// scope-chain search for $dynamicRef is implemented by package validate,
// which falls back to this method when no dynamic binding applies.
func (b *Builder) ResolveRef(root *Schema, baseURI, ref string) (*SubSchema, error) {
	base, err := baseURL(baseURI)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base URI", ErrInvalidReference)
	}

	abs, err := schemauri.Resolve(base, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %q does not resolve", ErrInvalidReference, ref)
	}

	if cached, ok := b.refCache[abs]; ok {
		return cached, nil
	}

	resourceBase := schemauri.WithoutFragment(abs)
	frag := schemauri.Fragment(abs)

	var (
		rawTarget   value.Value
		targetMeta  string
		foundTarget bool
	)

	if res, ok := b.index.bases[resourceBase]; ok {
		targetMeta = res.metaSchemaURI
		foundTarget = true

		switch {
		case frag == "":
			rawTarget = res.source
		case strings.HasPrefix(frag, "/"):
			p, perr := pointer.Parse(frag)
			if perr != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrInvalidReference, ref, perr)
			}

			rawTarget, perr = pointer.Evaluate(res.source, p)
			if perr != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrInvalidReference, ref, perr)
			}
		default:
			if v, ok := res.anchors[frag]; ok {
				rawTarget = v
			} else if v, ok := res.dynamicAnchors[frag]; ok {
				rawTarget = v
			} else {
				return nil, fmt.Errorf("%w: anchor %q not found in %q", ErrInvalidReference, frag, resourceBase)
			}
		}
	} else if root != nil && (resourceBase == "" || resourceBase == root.CanonicalURI) {
		foundTarget = true
		targetMeta = root.MetaSchema.URI

		switch {
		case frag == "":
			rawTarget = root.Source
		case strings.HasPrefix(frag, "/"):
			p, perr := pointer.Parse(frag)
			if perr != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrInvalidReference, ref, perr)
			}

			rawTarget, perr = pointer.Evaluate(root.Source, p)
			if perr != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrInvalidReference, ref, perr)
			}
		default:
			if sub, ok := root.Anchors[frag]; ok {
				b.refCache[abs] = sub

				return sub, nil
			}

			if sub, ok := root.DynamicAnchors[frag]; ok {
				b.refCache[abs] = sub

				return sub, nil
			}

			return nil, fmt.Errorf("%w: anchor %q not found", ErrInvalidReference, frag)
		}
	}

	if !foundTarget {
		return nil, fmt.Errorf("%w: %q: unresolved resource %q", ErrInvalidReference, ref, resourceBase)
	}

	ms, ok := b.metaSchemas[targetMeta]
	if !ok {
		ms = b.defaultMetaSchema
	}

	sub, err := b.compileValue(rawTarget, Scope{baseURI: resourceBase, metaSchema: ms}, "")
	if err != nil {
		return nil, err
	}

	b.refCache[abs] = sub

	return sub, nil
}

// unknownAnnotation is the behavior attached to an unrecognised keyword
// under UnknownAnnotate: it always succeeds, carrying its raw value as an
// annotation so tooling can surface "this keyword was not understood".
type unknownAnnotation struct {
	keyword string
	value   value.Value
}

func (u *unknownAnnotation) Keyword() string          { return u.keyword }
func (u *unknownAnnotation) Role() Role               { return RoleAnnotation }
func (u *unknownAnnotation) Prepare(*SubSchema) error { return nil }
func (u *unknownAnnotation) Evaluate(*EvalContext, value.Value) (Outcome, error) {
	return Annotate(u.value), nil
}
