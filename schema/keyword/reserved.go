package keyword

import (
	"go.solidfoundation.dev/core/schema/build"
	"go.solidfoundation.dev/core/value"
)

// reservedBehavior always succeeds and never annotates: its keyword has no
// validation effect of its own, either because it is purely informational
// ($comment) or because another keyword applies it (then/else, applied by
// if).
type reservedBehavior struct {
	base
	value value.Value
}

func (r *reservedBehavior) Evaluate(*build.EvalContext, value.Value) (build.Outcome, error) {
	return build.Valid(), nil
}

// CommentFactory compiles "$comment": free-form schema-author text with no
// validation effect.
func CommentFactory(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	return &reservedBehavior{base: base{keyword: "$comment", role: build.RoleReserved}, value: raw}, nil
}

// DefsFactory compiles "$defs" (and its "definitions" 2019-09 era alias):
// a holding object for sub-schemas that are only reachable via $ref. Its
// own members are not eagerly compiled; package build's resource index
// (see build/index.go) discovers $id/$anchor inside $defs independently of
// this no-op, and $ref lazily compiles whatever fragment it resolves to.
func DefsFactory(kw string) build.BehaviorFactory {
	return func(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
		return &reservedBehavior{base: base{keyword: kw, role: build.RoleReserved}, value: raw}, nil
	}
}
