package build

import "go.solidfoundation.dev/core/value"

// Resolver resolves a $ref/$dynamicRef target at validation time. Package
// validate supplies the concrete implementation: static $ref resolution
// delegates straight to Builder.ResolveRef, while $dynamicRef additionally
// searches the validator's live dynamic-scope chain before falling back to
// a static resolve.
type Resolver interface {
	Resolve(ref string) (*SubSchema, error)
	ResolveDynamic(ref string) (*SubSchema, error)
}

// Evaluator lets a KeywordBehavior recurse into a child sub-schema against
// a (possibly different) instance value, without needing to know how the
// validator tracks scope, annotations, or output assembly. Applicators
// (properties, items, allOf, ...) are built against this interface instead
// of a concrete validator type, keeping package keyword free of package
// validate.
type Evaluator interface {
	Evaluate(sub *SubSchema, instance value.Value) (Outcome, error)
}

// EvalContext carries a KeywordBehavior's validation-time traversal state,
// per spec §4.5. It is constructed fresh by package validate for every
// sub-schema visited, so that SiblingAnnotations only ever reflects
// keywords evaluated earlier within the SAME sub-schema object.
type EvalContext struct {
	// InstanceLocation is the JSON pointer (into the instance) of the
	// value currently being validated.
	InstanceLocation string

	// AbsoluteKeywordLocation and RelativeKeywordLocation are the two
	// keyword-location forms standard output formats require.
	AbsoluteKeywordLocation string
	RelativeKeywordLocation string

	// SiblingAnnotations holds the annotations produced so far by other
	// keywords of the same sub-schema object, keyed by keyword name, so a
	// later keyword (e.g. unevaluatedProperties) can inspect an earlier
	// one (e.g. properties, patternProperties).
	SiblingAnnotations map[string]value.Value

	// AdjacentAnnotations holds annotations folded upward from child
	// sub-schemas reached through applicators (allOf, if/then/else, ...)
	// evaluated earlier within the same sub-schema, per spec §4.5.
	AdjacentAnnotations map[string]value.Value

	Resolver  Resolver
	Evaluator Evaluator
}

// WithKeyword derives an EvalContext for evaluating the keyword named kw
// of the same sub-schema, extending both keyword-location forms.
func (c *EvalContext) WithKeyword(kw string) *EvalContext {
	child := *c
	child.AbsoluteKeywordLocation = c.AbsoluteKeywordLocation + "/" + kw
	child.RelativeKeywordLocation = c.RelativeKeywordLocation + "/" + kw

	return &child
}

// WithInstanceChild derives an EvalContext for evaluating a nested
// instance location (a property value or array element), starting a new
// sibling/adjacent annotation scope for the child sub-schema.
func (c *EvalContext) WithInstanceChild(token string) *EvalContext {
	return &EvalContext{
		InstanceLocation:        c.InstanceLocation + "/" + token,
		AbsoluteKeywordLocation: c.AbsoluteKeywordLocation,
		RelativeKeywordLocation: c.RelativeKeywordLocation,
		SiblingAnnotations:      make(map[string]value.Value),
		AdjacentAnnotations:     make(map[string]value.Value),
		Resolver:                c.Resolver,
		Evaluator:               c.Evaluator,
	}
}
