package keyword

import (
	"go.solidfoundation.dev/core/schema/build"
	"go.solidfoundation.dev/core/schemauri"
	"go.solidfoundation.dev/core/value"
)

// RefFactory compiles "$ref": the reference is stored as a URI (resolved
// against the current base) and dereferenced lazily by the validator via
// ctx.Resolver, per spec §4.4/§4.5 ($ref never becomes a direct schema
// pointer at build time).
func RefFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	ref, err := raw.StringValue()
	if err != nil {
		return nil, usageErrf("$ref must be a string")
	}

	baseURL, err := schemauri.Parse(bc.BaseURI())
	if err != nil {
		return nil, usageErrf("invalid base URI for $ref")
	}

	abs, err := schemauri.Resolve(baseURL, ref)
	if err != nil {
		return nil, usageErrf("$ref %q does not resolve to a valid URI", ref)
	}

	return &refBehavior{base: base{keyword: "$ref", role: build.RoleApplicator}, ref: abs}, nil
}

type refBehavior struct {
	base
	ref string
}

func (r *refBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if ctx == nil || ctx.Resolver == nil {
		return build.Invalid("$ref: no resolver available"), nil
	}

	sub, err := ctx.Resolver.Resolve(r.ref)
	if err != nil {
		return build.Outcome{}, err
	}

	return evalChild(ctx, sub, instance)
}

// DynamicRefFactory compiles "$dynamicRef": the target is a URI plus a
// bootstrap anchor, resolved at validation time by searching the live
// dynamic scope chain before falling back to static $ref resolution (see
// ctx.Resolver.ResolveDynamic, implemented by package validate).
func DynamicRefFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	ref, err := raw.StringValue()
	if err != nil {
		return nil, usageErrf("$dynamicRef must be a string")
	}

	return &dynamicRefBehavior{base: base{keyword: "$dynamicRef", role: build.RoleApplicator}, ref: ref}, nil
}

type dynamicRefBehavior struct {
	base
	ref string
}

func (d *dynamicRefBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if ctx == nil || ctx.Resolver == nil {
		return build.Invalid("$dynamicRef: no resolver available"), nil
	}

	sub, err := ctx.Resolver.ResolveDynamic(d.ref)
	if err != nil {
		return build.Outcome{}, err
	}

	return evalChild(ctx, sub, instance)
}
