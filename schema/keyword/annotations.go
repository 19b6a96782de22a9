package keyword

import (
	"go.solidfoundation.dev/core/schema/build"
	"go.solidfoundation.dev/core/value"
)

// annotationBehavior always succeeds, annotating with its own raw value;
// it covers every meta-data keyword whose only effect is to be surfaced in
// validation output (title, description, default, examples, deprecated,
// readOnly, writeOnly).
type annotationBehavior struct {
	base
	value value.Value
}

func (a *annotationBehavior) Evaluate(*build.EvalContext, value.Value) (build.Outcome, error) {
	return build.Annotate(a.value), nil
}

// AnnotationFactory builds the BehaviorFactory for a plain meta-data
// keyword: no keyword-specific shape validation, just pass-through
// annotation.
func AnnotationFactory(kw string) build.BehaviorFactory {
	return func(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
		return &annotationBehavior{base: base{keyword: kw, role: build.RoleAnnotation}, value: raw}, nil
	}
}
