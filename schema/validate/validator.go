package validate

import (
	"go.solidfoundation.dev/core/schema/build"
	"go.solidfoundation.dev/core/value"
)

// Validator evaluates instances against one compiled root Schema.
type Validator struct {
	builder *build.Builder
	root    *build.Schema
}

// New returns a Validator for root, compiled by builder. builder is
// retained for lazy $ref/$dynamicRef resolution against the same resource
// index and reference cache root was compiled with.
func New(builder *build.Builder, root *build.Schema) *Validator {
	return &Validator{builder: builder, root: root}
}

// Record is one keyword (or, for a boolean schema, one whole sub-schema)
// evaluated during a Validate call.
type Record struct {
	Keyword                 string
	Valid                   bool
	Reason                  string
	InstanceLocation        string
	AbsoluteKeywordLocation string
	RelativeKeywordLocation string
	HasAnnotation           bool
	Annotation              value.Value
}

// Result is the outcome of one Validate call: overall validity plus every
// keyword record produced along the way, in evaluation order.
type Result struct {
	Valid   bool
	Records []Record
}

// Validate checks instance against v's root schema.
func (v *Validator) Validate(instance value.Value) (*Result, error) {
	records := &[]Record{}

	valid, err := v.evalNode(v.root.Root, instance, "", "", "", []*build.Schema{v.root}, records)
	if err != nil {
		return nil, err
	}

	return &Result{Valid: valid, Records: *records}, nil
}

func (v *Validator) evalNode(
	sub *build.SubSchema,
	instance value.Value,
	instLoc, absLoc, relLoc string,
	dynStack []*build.Schema,
	records *[]Record,
) (bool, error) {
	if sub.Boolean != nil {
		valid := *sub.Boolean

		rec := Record{Valid: valid, InstanceLocation: instLoc, AbsoluteKeywordLocation: absLoc, RelativeKeywordLocation: relLoc}
		if !valid {
			rec.Reason = "schema is `false`"
		}

		*records = append(*records, rec)

		return valid, nil
	}

	newStack := dynStack

	if sub.Resource != nil && (len(dynStack) == 0 || dynStack[len(dynStack)-1] != sub.Resource) {
		newStack = make([]*build.Schema, len(dynStack), len(dynStack)+1)
		copy(newStack, dynStack)
		newStack = append(newStack, sub.Resource)
	}

	ctx := &build.EvalContext{
		InstanceLocation:        instLoc,
		AbsoluteKeywordLocation: absLoc,
		RelativeKeywordLocation: relLoc,
		SiblingAnnotations:      make(map[string]value.Value),
		AdjacentAnnotations:     make(map[string]value.Value),
	}
	ctx.Resolver = &resolver{v: v, dynStack: newStack}
	ctx.Evaluator = &evaluator{v: v, instLoc: instLoc, absLoc: absLoc, relLoc: relLoc, dynStack: newStack, records: records}

	valid := true

	for _, b := range sub.Behaviors {
		kwCtx := ctx.WithKeyword(b.Keyword())

		out, err := b.Evaluate(kwCtx, instance)
		if err != nil {
			return false, err
		}

		*records = append(*records, Record{
			Keyword:                 b.Keyword(),
			Valid:                   out.Valid,
			Reason:                  out.Reason,
			InstanceLocation:        instLoc,
			AbsoluteKeywordLocation: kwCtx.AbsoluteKeywordLocation,
			RelativeKeywordLocation: kwCtx.RelativeKeywordLocation,
			HasAnnotation:           out.HasAnnotation,
			Annotation:              out.Annotation,
		})

		if !out.Valid {
			valid = false
		}

		if out.HasAnnotation {
			ctx.SiblingAnnotations[b.Keyword()] = out.Annotation
		}
	}

	return valid, nil
}

// evaluator implements build.Evaluator, letting applicator behaviors
// (properties, allOf, $ref, ...) recurse into a nested sub-schema without
// needing to know how the validator tracks scope or assembles records.
type evaluator struct {
	v                    *Validator
	instLoc, absLoc, relLoc string
	dynStack             []*build.Schema
	records              *[]Record
}

func (e *evaluator) Evaluate(sub *build.SubSchema, instance value.Value) (build.Outcome, error) {
	valid, err := e.v.evalNode(sub, instance, e.instLoc, e.absLoc, e.relLoc, e.dynStack, e.records)
	if err != nil {
		return build.Outcome{}, err
	}

	if valid {
		return build.Valid(), nil
	}

	return build.Invalid("nested schema did not validate"), nil
}

// resolver implements build.Resolver, the validation-time half of $ref and
// $dynamicRef resolution.
type resolver struct {
	v        *Validator
	dynStack []*build.Schema
}

func (r *resolver) currentBase() string {
	if len(r.dynStack) == 0 {
		return ""
	}

	return r.dynStack[len(r.dynStack)-1].CanonicalURI
}

func (r *resolver) Resolve(ref string) (*build.SubSchema, error) {
	return r.v.builder.ResolveRef(r.v.root, r.currentBase(), ref)
}

// ResolveDynamic searches the live dynamic scope chain, outermost first,
// for a resource whose DynamicAnchor matches ref's fragment, per spec
// §4.4's "outermost bound" rule. If none matches, it falls back to a
// static resolve.
func (r *resolver) ResolveDynamic(ref string) (*build.SubSchema, error) {
	frag := dynamicFragment(ref)

	if frag != "" {
		for _, res := range r.dynStack {
			if sub, ok := res.DynamicAnchors[frag]; ok {
				return sub, nil
			}
		}
	}

	return r.v.builder.ResolveRef(r.v.root, r.currentBase(), ref)
}

func dynamicFragment(ref string) string {
	for i, c := range ref {
		if c == '#' {
			return ref[i+1:]
		}
	}

	return ""
}
