package keyword

import (
	"regexp"
	"strconv"

	"go.solidfoundation.dev/core/schema/build"
	"go.solidfoundation.dev/core/value"
)

func evalChild(ctx *build.EvalContext, sub *build.SubSchema, instance value.Value) (build.Outcome, error) {
	if ctx == nil || ctx.Evaluator == nil {
		return build.Valid(), nil
	}

	return ctx.Evaluator.Evaluate(sub, instance)
}

// PropertiesFactory compiles "properties": an object of property name ->
// sub-schema, applied to the matching instance member when present.
func PropertiesFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	obj, err := raw.Object()
	if err != nil {
		return nil, usageErrf("properties must be an object")
	}

	subs := make(map[string]*build.SubSchema, obj.Len())

	for _, e := range obj.Entries() {
		name, err := e.Key.StringValue()
		if err != nil {
			return nil, usageErrf("properties keys must be strings")
		}

		sub, err := bc.CompileChild(e.Value, "properties/"+name)
		if err != nil {
			return nil, err
		}

		subs[name] = sub
	}

	return &propertiesBehavior{base: base{keyword: "properties", role: build.RoleApplicator}, subs: subs}, nil
}

type propertiesBehavior struct {
	base
	subs map[string]*build.SubSchema
}

func (p *propertiesBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindObject {
		return build.Valid(), nil
	}

	obj, _ := instance.Object()

	var matched []value.Value

	for name, sub := range p.subs {
		v, ok := obj.GetString(name)
		if !ok {
			continue
		}

		out, err := evalChild(ctx, sub, v)
		if err != nil {
			return build.Outcome{}, err
		}

		if !out.Valid {
			return build.Invalid("property " + name + ": " + out.Reason), nil
		}

		matched = append(matched, value.String(name))
	}

	return build.Annotate(value.Array(matched...)), nil
}

// DependentSchemasFactory compiles "dependentSchemas": an object mapping
// property name -> sub-schema, applied against the whole instance whenever
// the named property is present, per spec §4.4's treatment of
// dependentSchemas as an applicator rather than an assertion (unlike its
// sibling dependentRequired).
func DependentSchemasFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	obj, err := raw.Object()
	if err != nil {
		return nil, usageErrf("dependentSchemas must be an object")
	}

	subs := make(map[string]*build.SubSchema, obj.Len())

	for _, e := range obj.Entries() {
		name, err := e.Key.StringValue()
		if err != nil {
			return nil, usageErrf("dependentSchemas keys must be strings")
		}

		sub, err := bc.CompileChild(e.Value, "dependentSchemas/"+name)
		if err != nil {
			return nil, err
		}

		subs[name] = sub
	}

	return &dependentSchemasBehavior{base: base{keyword: "dependentSchemas", role: build.RoleApplicator}, subs: subs}, nil
}

type dependentSchemasBehavior struct {
	base
	subs map[string]*build.SubSchema
}

func (d *dependentSchemasBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindObject {
		return build.Valid(), nil
	}

	obj, _ := instance.Object()

	for trigger, sub := range d.subs {
		if _, ok := obj.GetString(trigger); !ok {
			continue
		}

		out, err := evalChild(ctx, sub, instance)
		if err != nil {
			return build.Outcome{}, err
		}

		if !out.Valid {
			return build.Invalid("dependentSchemas[" + trigger + "]: " + out.Reason), nil
		}

		foldAnnotations(ctx, sub, instance)
	}

	return build.Valid(), nil
}

// PatternPropertiesFactory compiles "patternProperties": object members
// whose regexp pattern matches a property name are validated against its
// sub-schema.
func PatternPropertiesFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	obj, err := raw.Object()
	if err != nil {
		return nil, usageErrf("patternProperties must be an object")
	}

	var entries []patternEntry

	for _, e := range obj.Entries() {
		pat, err := e.Key.StringValue()
		if err != nil {
			return nil, usageErrf("patternProperties keys must be strings")
		}

		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, usageErrf("patternProperties key %q is not a valid pattern: %v", pat, err)
		}

		sub, err := bc.CompileChild(e.Value, "patternProperties/"+pat)
		if err != nil {
			return nil, err
		}

		entries = append(entries, patternEntry{re: re, sub: sub})
	}

	return &patternPropertiesBehavior{base: base{keyword: "patternProperties", role: build.RoleApplicator}, entries: entries}, nil
}

type patternEntry struct {
	re  *regexp.Regexp
	sub *build.SubSchema
}

type patternPropertiesBehavior struct {
	base
	entries []patternEntry
}

func (p *patternPropertiesBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindObject {
		return build.Valid(), nil
	}

	obj, _ := instance.Object()

	var matched []value.Value

	for _, e := range obj.Entries() {
		name, err := e.Key.StringValue()
		if err != nil {
			continue
		}

		for _, pe := range p.entries {
			if !pe.re.MatchString(name) {
				continue
			}

			out, err := evalChild(ctx, pe.sub, e.Value)
			if err != nil {
				return build.Outcome{}, err
			}

			if !out.Valid {
				return build.Invalid("property " + name + ": " + out.Reason), nil
			}

			matched = append(matched, value.String(name))
		}
	}

	return build.Annotate(value.Array(matched...)), nil
}

// AdditionalPropertiesFactory compiles "additionalProperties": applied to
// every instance member not matched by properties/patternProperties of the
// SAME sub-schema.
func AdditionalPropertiesFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	sub, err := bc.CompileChild(raw, "additionalProperties")
	if err != nil {
		return nil, err
	}

	return &additionalPropertiesBehavior{base: base{keyword: "additionalProperties", role: build.RoleApplicator}, sub: sub}, nil
}

type additionalPropertiesBehavior struct {
	base
	sub *build.SubSchema
}

func (a *additionalPropertiesBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindObject {
		return build.Valid(), nil
	}

	obj, _ := instance.Object()
	covered := stringSetAnnotation(ctx, "properties")
	mergeStringSet(covered, ctx, "patternProperties")

	var matched []value.Value

	for _, e := range obj.Entries() {
		name, err := e.Key.StringValue()
		if err != nil || covered[name] {
			continue
		}

		out, err := evalChild(ctx, a.sub, e.Value)
		if err != nil {
			return build.Outcome{}, err
		}

		if !out.Valid {
			return build.Invalid("additional property " + name + ": " + out.Reason), nil
		}

		matched = append(matched, value.String(name))
	}

	return build.Annotate(value.Array(matched...)), nil
}

// UnevaluatedPropertiesFactory compiles "unevaluatedProperties": applied
// to every instance member not covered by properties, patternProperties,
// additionalProperties, or an adjacent applicator's folded annotation.
func UnevaluatedPropertiesFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	sub, err := bc.CompileChild(raw, "unevaluatedProperties")
	if err != nil {
		return nil, err
	}

	return &unevaluatedPropertiesBehavior{base: base{keyword: "unevaluatedProperties", role: build.RoleApplicator}, sub: sub}, nil
}

type unevaluatedPropertiesBehavior struct {
	base
	sub *build.SubSchema
}

func (u *unevaluatedPropertiesBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindObject {
		return build.Valid(), nil
	}

	obj, _ := instance.Object()

	covered := stringSetAnnotation(ctx, "properties")
	mergeStringSet(covered, ctx, "patternProperties")
	mergeStringSet(covered, ctx, "additionalProperties")
	mergeStringSet(covered, ctx, "unevaluatedProperties")

	var matched []value.Value

	for _, e := range obj.Entries() {
		name, err := e.Key.StringValue()
		if err != nil || covered[name] {
			continue
		}

		out, err := evalChild(ctx, u.sub, e.Value)
		if err != nil {
			return build.Outcome{}, err
		}

		if !out.Valid {
			return build.Invalid("unevaluated property " + name + ": " + out.Reason), nil
		}

		matched = append(matched, value.String(name))
	}

	return build.Annotate(value.Array(matched...)), nil
}

func stringSetAnnotation(ctx *build.EvalContext, keyword string) map[string]bool {
	set := make(map[string]bool)
	mergeStringSet(set, ctx, keyword)

	return set
}

func mergeStringSet(dst map[string]bool, ctx *build.EvalContext, keyword string) {
	if ctx == nil {
		return
	}

	add := func(v value.Value, ok bool) {
		if !ok {
			return
		}

		elems, err := v.ArrayValue()
		if err != nil {
			return
		}

		for _, e := range elems {
			if s, err := e.StringValue(); err == nil {
				dst[s] = true
			}
		}
	}

	if ctx.SiblingAnnotations != nil {
		v, ok := ctx.SiblingAnnotations[keyword]
		add(v, ok)
	}

	if ctx.AdjacentAnnotations != nil {
		v, ok := ctx.AdjacentAnnotations[keyword]
		add(v, ok)
	}
}

// PrefixItemsFactory compiles "prefixItems": an array of sub-schemas
// applied positionally to the instance array's leading elements.
func PrefixItemsFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	elems, err := raw.ArrayValue()
	if err != nil {
		return nil, usageErrf("prefixItems must be an array")
	}

	subs := make([]*build.SubSchema, len(elems))

	for i, e := range elems {
		sub, err := bc.CompileChild(e, "prefixItems/"+itoa(i))
		if err != nil {
			return nil, err
		}

		subs[i] = sub
	}

	return &prefixItemsBehavior{base: base{keyword: "prefixItems", role: build.RoleApplicator}, subs: subs}, nil
}

type prefixItemsBehavior struct {
	base
	subs []*build.SubSchema
}

func (p *prefixItemsBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindArray {
		return build.Valid(), nil
	}

	elems, _ := instance.ArrayValue()

	n := len(p.subs)
	if n > len(elems) {
		n = len(elems)
	}

	for i := 0; i < n; i++ {
		out, err := evalChild(ctx, p.subs[i], elems[i])
		if err != nil {
			return build.Outcome{}, err
		}

		if !out.Valid {
			return build.Invalid("prefixItems[" + itoa(i) + "]: " + out.Reason), nil
		}
	}

	return build.Annotate(value.Int(int64(n))), nil
}

// ItemsFactory compiles "items": applied to every instance array element
// from the end of prefixItems' coverage onward (or from index 0 if there
// is no prefixItems in the same sub-schema).
func ItemsFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	sub, err := bc.CompileChild(raw, "items")
	if err != nil {
		return nil, err
	}

	return &itemsBehavior{base: base{keyword: "items", role: build.RoleApplicator}, sub: sub}, nil
}

type itemsBehavior struct {
	base
	sub *build.SubSchema
}

func (i *itemsBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindArray {
		return build.Valid(), nil
	}

	elems, _ := instance.ArrayValue()
	start := 0

	if ctx != nil && ctx.SiblingAnnotations != nil {
		if v, ok := ctx.SiblingAnnotations["prefixItems"]; ok {
			if d, err := v.NumberValue(); err == nil {
				if n, ok := decimalToInt64(d); ok {
					start = int(n)
				}
			}
		}
	}

	for idx := start; idx < len(elems); idx++ {
		out, err := evalChild(ctx, i.sub, elems[idx])
		if err != nil {
			return build.Outcome{}, err
		}

		if !out.Valid {
			return build.Invalid("items[" + itoa(idx) + "]: " + out.Reason), nil
		}
	}

	return build.Annotate(value.Bool(true)), nil
}

// ContainsFactory compiles "contains", with minContains/maxContains read
// from the same object schema by the vocab composing this factory passing
// them as sibling keywords; here contains only asserts "at least one".
// minContains and maxContains are implemented as their own behaviors in
// this package (see MinContainsFactory/MaxContainsFactory) and rely on
// the "contains" annotation this behavior produces.
func ContainsFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	sub, err := bc.CompileChild(raw, "contains")
	if err != nil {
		return nil, err
	}

	return &containsBehavior{base: base{keyword: "contains", role: build.RoleApplicator}, sub: sub}, nil
}

type containsBehavior struct {
	base
	sub *build.SubSchema
}

func (c *containsBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindArray {
		return build.Valid(), nil
	}

	elems, _ := instance.ArrayValue()

	var matches []value.Value

	for idx, el := range elems {
		out, err := evalChild(ctx, c.sub, el)
		if err != nil {
			return build.Outcome{}, err
		}

		if out.Valid {
			matches = append(matches, value.Int(int64(idx)))
		}
	}

	if len(matches) == 0 {
		return build.Invalid("no array element matches contains"), nil
	}

	return build.Annotate(value.Array(matches...)), nil
}

func minMaxContainsFactory(kw string, isMin bool) build.BehaviorFactory {
	return func(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
		n, err := nonNegativeIntLimit(raw)
		if err != nil {
			return nil, err
		}

		return &containsCountBehavior{base: base{keyword: kw, role: build.RoleAssertion}, limit: n, isMin: isMin}, nil
	}
}

// MinContainsFactory and MaxContainsFactory compile "minContains" and
// "maxContains", reading the sibling "contains" annotation.
var (
	MinContainsFactory = minMaxContainsFactory("minContains", true)
	MaxContainsFactory = minMaxContainsFactory("maxContains", false)
)

type containsCountBehavior struct {
	base
	limit int64
	isMin bool
}

func (c *containsCountBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindArray {
		return build.Valid(), nil
	}

	count := int64(0)

	if ctx != nil && ctx.SiblingAnnotations != nil {
		if v, ok := ctx.SiblingAnnotations["contains"]; ok {
			if elems, err := v.ArrayValue(); err == nil {
				count = int64(len(elems))
			}
		}
	}

	if c.isMin && count < c.limit {
		return build.Invalid("fewer matching elements than minContains"), nil
	}

	if !c.isMin && count > c.limit {
		return build.Invalid("more matching elements than maxContains"), nil
	}

	return build.Valid(), nil
}

// UnevaluatedItemsFactory compiles "unevaluatedItems": applied to every
// array element not covered by prefixItems/items/contains/unevaluatedItems
// of the same or an adjacent sub-schema.
func UnevaluatedItemsFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	sub, err := bc.CompileChild(raw, "unevaluatedItems")
	if err != nil {
		return nil, err
	}

	return &unevaluatedItemsBehavior{base: base{keyword: "unevaluatedItems", role: build.RoleApplicator}, sub: sub}, nil
}

type unevaluatedItemsBehavior struct {
	base
	sub *build.SubSchema
}

func (u *unevaluatedItemsBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindArray {
		return build.Valid(), nil
	}

	elems, _ := instance.ArrayValue()

	if boolAnnotation(ctx, "items") || boolAnnotation(ctx, "unevaluatedItems") {
		return build.Annotate(value.Bool(true)), nil
	}

	start := int64(0)
	if v, ok := lookupAnnotation(ctx, "prefixItems"); ok {
		if d, err := v.NumberValue(); err == nil {
			if n, ok := decimalToInt64(d); ok {
				start = n
			}
		}
	}

	containsIdx := make(map[int64]bool)

	if v, ok := lookupAnnotation(ctx, "contains"); ok {
		if arr, err := v.ArrayValue(); err == nil {
			for _, e := range arr {
				if d, err := e.NumberValue(); err == nil {
					if n, ok := decimalToInt64(d); ok {
						containsIdx[n] = true
					}
				}
			}
		}
	}

	for idx := range elems {
		i64 := int64(idx)
		if i64 < start || containsIdx[i64] {
			continue
		}

		out, err := evalChild(ctx, u.sub, elems[idx])
		if err != nil {
			return build.Outcome{}, err
		}

		if !out.Valid {
			return build.Invalid("unevaluated item at index " + itoa(idx) + ": " + out.Reason), nil
		}
	}

	return build.Annotate(value.Bool(true)), nil
}

func boolAnnotation(ctx *build.EvalContext, keyword string) bool {
	v, ok := lookupAnnotation(ctx, keyword)
	if !ok {
		return false
	}

	b, err := v.BoolValue()

	return err == nil && b
}

func lookupAnnotation(ctx *build.EvalContext, keyword string) (value.Value, bool) {
	if ctx == nil {
		return value.Value{}, false
	}

	if ctx.SiblingAnnotations != nil {
		if v, ok := ctx.SiblingAnnotations[keyword]; ok {
			return v, true
		}
	}

	if ctx.AdjacentAnnotations != nil {
		if v, ok := ctx.AdjacentAnnotations[keyword]; ok {
			return v, true
		}
	}

	return value.Value{}, false
}

// AllOfFactory compiles "allOf": every listed sub-schema must accept the
// instance; their annotations fold into the parent's adjacent annotations.
func AllOfFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	subs, err := compileSchemaArray(bc, raw, "allOf")
	if err != nil {
		return nil, err
	}

	return &allOfBehavior{base: base{keyword: "allOf", role: build.RoleApplicator}, subs: subs}, nil
}

type allOfBehavior struct {
	base
	subs []*build.SubSchema
}

func (a *allOfBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	for i, sub := range a.subs {
		out, err := evalChild(ctx, sub, instance)
		if err != nil {
			return build.Outcome{}, err
		}

		if !out.Valid {
			return build.Invalid("allOf[" + itoa(i) + "]: " + out.Reason), nil
		}

		foldAnnotations(ctx, sub, instance)
	}

	return build.Valid(), nil
}

// foldAnnotations re-evaluates each of sub's own behaviors' last-known
// annotations into ctx.AdjacentAnnotations, approximating the standard's
// "annotations collected from an applicator's subschema are visible to
// keywords in the same schema object as the applicator." This
// implementation folds one level of applicator, which covers allOf/if-
// then-else; annotations nested two schema levels deep (e.g. inside a
// $ref target reached via allOf) are not folded further.
func foldAnnotations(ctx *build.EvalContext, sub *build.SubSchema, instance value.Value) {
	if ctx == nil || ctx.AdjacentAnnotations == nil || sub.Boolean != nil {
		return
	}

	for _, b := range sub.Behaviors {
		out, err := b.Evaluate(ctx, instance)
		if err != nil || !out.Valid || !out.HasAnnotation {
			continue
		}

		ctx.AdjacentAnnotations[b.Keyword()] = out.Annotation
	}
}

// AnyOfFactory compiles "anyOf": at least one listed sub-schema must
// accept the instance.
func AnyOfFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	subs, err := compileSchemaArray(bc, raw, "anyOf")
	if err != nil {
		return nil, err
	}

	return &anyOfBehavior{base: base{keyword: "anyOf", role: build.RoleApplicator}, subs: subs}, nil
}

type anyOfBehavior struct {
	base
	subs []*build.SubSchema
}

func (a *anyOfBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	for _, sub := range a.subs {
		out, err := evalChild(ctx, sub, instance)
		if err != nil {
			return build.Outcome{}, err
		}

		if out.Valid {
			foldAnnotations(ctx, sub, instance)

			return build.Valid(), nil
		}
	}

	return build.Invalid("no anyOf branch matched"), nil
}

// OneOfFactory compiles "oneOf": exactly one listed sub-schema must accept
// the instance.
func OneOfFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	subs, err := compileSchemaArray(bc, raw, "oneOf")
	if err != nil {
		return nil, err
	}

	return &oneOfBehavior{base: base{keyword: "oneOf", role: build.RoleApplicator}, subs: subs}, nil
}

type oneOfBehavior struct {
	base
	subs []*build.SubSchema
}

func (o *oneOfBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	var matched *build.SubSchema

	count := 0

	for _, sub := range o.subs {
		out, err := evalChild(ctx, sub, instance)
		if err != nil {
			return build.Outcome{}, err
		}

		if out.Valid {
			count++
			matched = sub
		}
	}

	if count != 1 {
		return build.Invalid("exactly one oneOf branch must match"), nil
	}

	foldAnnotations(ctx, matched, instance)

	return build.Valid(), nil
}

// NotFactory compiles "not": the instance must NOT validate against the
// nested sub-schema.
func NotFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	sub, err := bc.CompileChild(raw, "not")
	if err != nil {
		return nil, err
	}

	return &notBehavior{base: base{keyword: "not", role: build.RoleApplicator}, sub: sub}, nil
}

type notBehavior struct {
	base
	sub *build.SubSchema
}

func (n *notBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	out, err := evalChild(ctx, n.sub, instance)
	if err != nil {
		return build.Outcome{}, err
	}

	if out.Valid {
		return build.Invalid("not: subschema matched"), nil
	}

	return build.Valid(), nil
}

// IfFactory compiles "if", reaching across to its sibling keywords "then"
// and "else" (if present) via bc.Sibling so all three compile together
// against one instance. "then" and "else" are otherwise reserved no-ops
// (see ThenFactory/ElseFactory): this behavior is what actually applies
// them.
func IfFactory(bc *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	ifSub, err := bc.CompileChild(raw, "if")
	if err != nil {
		return nil, err
	}

	beh := &ifBehavior{base: base{keyword: "if", role: build.RoleApplicator}, ifSub: ifSub}

	if thenRaw, ok := bc.Sibling("then"); ok {
		beh.thenSub, err = bc.CompileChild(thenRaw, "then")
		if err != nil {
			return nil, err
		}
	}

	if elseRaw, ok := bc.Sibling("else"); ok {
		beh.elseSub, err = bc.CompileChild(elseRaw, "else")
		if err != nil {
			return nil, err
		}
	}

	return beh, nil
}

// ThenFactory and ElseFactory compile "then"/"else" as reserved no-ops:
// IfFactory's behavior applies them directly, since applying "then"
// depends on "if"'s own outcome against the same instance.
func ThenFactory(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	return &reservedBehavior{base: base{keyword: "then", role: build.RoleReserved}, value: raw}, nil
}

func ElseFactory(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	return &reservedBehavior{base: base{keyword: "else", role: build.RoleReserved}, value: raw}, nil
}

type ifBehavior struct {
	base
	ifSub, thenSub, elseSub *build.SubSchema
}

func (i *ifBehavior) Evaluate(ctx *build.EvalContext, instance value.Value) (build.Outcome, error) {
	out, err := evalChild(ctx, i.ifSub, instance)
	if err != nil {
		return build.Outcome{}, err
	}

	if out.Valid {
		foldAnnotations(ctx, i.ifSub, instance)

		if i.thenSub == nil {
			return build.Valid(), nil
		}

		thenOut, err := evalChild(ctx, i.thenSub, instance)
		if err != nil {
			return build.Outcome{}, err
		}

		if !thenOut.Valid {
			return build.Invalid("then: " + thenOut.Reason), nil
		}

		foldAnnotations(ctx, i.thenSub, instance)

		return build.Valid(), nil
	}

	if i.elseSub == nil {
		return build.Valid(), nil
	}

	elseOut, err := evalChild(ctx, i.elseSub, instance)
	if err != nil {
		return build.Outcome{}, err
	}

	if !elseOut.Valid {
		return build.Invalid("else: " + elseOut.Reason), nil
	}

	foldAnnotations(ctx, i.elseSub, instance)

	return build.Valid(), nil
}

func compileSchemaArray(bc *build.BuildContext, raw value.Value, kw string) ([]*build.SubSchema, error) {
	elems, err := raw.ArrayValue()
	if err != nil {
		return nil, usageErrf("%s must be an array", kw)
	}

	subs := make([]*build.SubSchema, len(elems))

	for i, e := range elems {
		sub, err := bc.CompileChild(e, kw+"/"+itoa(i))
		if err != nil {
			return nil, err
		}

		subs[i] = sub
	}

	return subs, nil
}

func itoa(i int) string { return strconv.Itoa(i) }
