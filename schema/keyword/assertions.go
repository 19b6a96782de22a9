package keyword

import (
	"regexp"

	"go.solidfoundation.dev/core/bignum"
	"go.solidfoundation.dev/core/schema/build"
	"go.solidfoundation.dev/core/value"
)

// TypeFactory compiles the "type" assertion: a single JSON Schema type
// name, or an array of names (any match passes).
func TypeFactory(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	var names []string

	switch raw.Kind() {
	case value.KindString:
		s, _ := raw.StringValue()
		names = []string{s}
	case value.KindArray:
		elems, _ := raw.ArrayValue()
		for _, e := range elems {
			s, err := e.StringValue()
			if err != nil {
				return nil, usageErrf("type array entries must be strings")
			}

			names = append(names, s)
		}
	default:
		return nil, usageErrf("type must be a string or array of strings")
	}

	return &typeBehavior{base: base{keyword: "type", role: build.RoleAssertion}, names: names}, nil
}

type typeBehavior struct {
	base
	names []string
}

func (t *typeBehavior) Evaluate(_ *build.EvalContext, instance value.Value) (build.Outcome, error) {
	for _, n := range t.names {
		if typeMatches(instance, n) {
			return build.Valid(), nil
		}
	}

	return build.Invalid("type mismatch"), nil
}

func typeMatches(v value.Value, want string) bool {
	switch want {
	case "null":
		return v.Kind() == value.KindNull
	case "boolean":
		return v.Kind() == value.KindBool
	case "object":
		return v.Kind() == value.KindObject
	case "array":
		return v.Kind() == value.KindArray
	case "string":
		return v.Kind() == value.KindString
	case "number":
		return v.Kind() == value.KindNumber
	case "integer":
		if v.Kind() != value.KindNumber {
			return false
		}

		d, err := v.NumberValue()
		if err != nil {
			return false
		}

		_, ok := decimalToInt64(d)

		return ok
	default:
		return false
	}
}

// EnumFactory compiles "enum": the instance is valid if schema-equal to any
// listed member.
func EnumFactory(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	elems, err := raw.ArrayValue()
	if err != nil {
		return nil, usageErrf("enum must be an array")
	}

	return &enumBehavior{base: base{keyword: "enum", role: build.RoleAssertion}, members: elems}, nil
}

type enumBehavior struct {
	base
	members []value.Value
}

func (e *enumBehavior) Evaluate(_ *build.EvalContext, instance value.Value) (build.Outcome, error) {
	for _, m := range e.members {
		if value.Equal(m, instance) {
			return build.Valid(), nil
		}
	}

	return build.Invalid("value not among enum members"), nil
}

// ConstFactory compiles "const": the instance must be schema-equal to the
// single fixed value.
func ConstFactory(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	return &constBehavior{base: base{keyword: "const", role: build.RoleAssertion}, want: raw}, nil
}

type constBehavior struct {
	base
	want value.Value
}

func (c *constBehavior) Evaluate(_ *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if value.Equal(c.want, instance) {
		return build.Valid(), nil
	}

	return build.Invalid("value does not equal const"), nil
}

func minMaxLengthFactory(kw string, isMin bool) build.BehaviorFactory {
	return func(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
		n, err := nonNegativeIntLimit(raw)
		if err != nil {
			return nil, err
		}

		return &stringLengthBehavior{base: base{keyword: kw, role: build.RoleAssertion}, limit: n, isMin: isMin}, nil
	}
}

// MinLengthFactory and MaxLengthFactory compile "minLength"/"maxLength".
var (
	MinLengthFactory = minMaxLengthFactory("minLength", true)
	MaxLengthFactory = minMaxLengthFactory("maxLength", false)
)

type stringLengthBehavior struct {
	base
	limit int64
	isMin bool
}

func (s *stringLengthBehavior) Evaluate(_ *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindString {
		return build.Valid(), nil
	}

	str, _ := instance.StringValue()
	n := int64(utf8Len(str))

	if s.isMin && n < s.limit {
		return build.Invalid("string shorter than minLength"), nil
	}

	if !s.isMin && n > s.limit {
		return build.Invalid("string longer than maxLength"), nil
	}

	return build.Valid(), nil
}

// PatternFactory compiles "pattern": a regular expression the string
// instance must match anywhere within it. Go's RE2-based regexp/regexp
// stands in for ECMA 262; patterns using backreferences or lookaround are
// not supported, a documented limitation of this implementation.
func PatternFactory(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	s, err := raw.StringValue()
	if err != nil {
		return nil, usageErrf("pattern must be a string")
	}

	re, err := regexp.Compile(s)
	if err != nil {
		return nil, usageErrf("pattern is not a valid regular expression: %v", err)
	}

	return &patternBehavior{base: base{keyword: "pattern", role: build.RoleAssertion}, re: re}, nil
}

type patternBehavior struct {
	base
	re *regexp.Regexp
}

func (p *patternBehavior) Evaluate(_ *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindString {
		return build.Valid(), nil
	}

	str, _ := instance.StringValue()
	if !p.re.MatchString(str) {
		return build.Invalid("string does not match pattern"), nil
	}

	return build.Valid(), nil
}

func numericBoundFactory(kw string, exclusive, isMin bool) build.BehaviorFactory {
	return func(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
		d, err := raw.NumberValue()
		if err != nil {
			return nil, usageErrf("%s must be a number", kw)
		}

		return &numericBoundBehavior{
			base:      base{keyword: kw, role: build.RoleAssertion},
			bound:     d,
			exclusive: exclusive,
			isMin:     isMin,
		}, nil
	}
}

// MinimumFactory, MaximumFactory, ExclusiveMinimumFactory, and
// ExclusiveMaximumFactory compile the four numeric range keywords.
var (
	MinimumFactory          = numericBoundFactory("minimum", false, true)
	MaximumFactory          = numericBoundFactory("maximum", false, false)
	ExclusiveMinimumFactory = numericBoundFactory("exclusiveMinimum", true, true)
	ExclusiveMaximumFactory = numericBoundFactory("exclusiveMaximum", true, false)
)

type numericBoundBehavior struct {
	base
	bound     bignum.BigDecimal
	exclusive bool
	isMin     bool
}

func (n *numericBoundBehavior) Evaluate(_ *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindNumber {
		return build.Valid(), nil
	}

	iv, _ := instance.NumberValue()

	cmp, ok := iv.Cmp(n.bound)
	if !ok {
		return build.Invalid("numeric comparison undefined (NaN)"), nil
	}

	var fail bool

	switch {
	case n.isMin && n.exclusive:
		fail = cmp <= 0
	case n.isMin && !n.exclusive:
		fail = cmp < 0
	case !n.isMin && n.exclusive:
		fail = cmp >= 0
	default:
		fail = cmp > 0
	}

	if fail {
		return build.Invalid(n.keyword + " bound violated"), nil
	}

	return build.Valid(), nil
}

// MultipleOfFactory compiles "multipleOf": instance / divisor must be an
// integer.
func MultipleOfFactory(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	d, err := raw.NumberValue()
	if err != nil {
		return nil, usageErrf("multipleOf must be a number")
	}

	if d.IsZero() {
		return nil, usageErrf("multipleOf must not be zero")
	}

	return &multipleOfBehavior{base: base{keyword: "multipleOf", role: build.RoleAssertion}, divisor: d}, nil
}

type multipleOfBehavior struct {
	base
	divisor bignum.BigDecimal
}

func (m *multipleOfBehavior) Evaluate(_ *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindNumber {
		return build.Valid(), nil
	}

	iv, _ := instance.NumberValue()

	q, err := iv.Div(m.divisor)
	if err != nil {
		return build.Invalid("division by zero divisor"), nil
	}

	if _, ok := decimalToInt64(q.Normalized()); !ok {
		return build.Invalid("value is not a multiple of multipleOf"), nil
	}

	return build.Valid(), nil
}

func minMaxItemsFactory(kw string, isMin bool) build.BehaviorFactory {
	return func(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
		n, err := nonNegativeIntLimit(raw)
		if err != nil {
			return nil, err
		}

		return &itemCountBehavior{base: base{keyword: kw, role: build.RoleAssertion}, limit: n, isMin: isMin}, nil
	}
}

// MinItemsFactory and MaxItemsFactory compile "minItems"/"maxItems".
var (
	MinItemsFactory = minMaxItemsFactory("minItems", true)
	MaxItemsFactory = minMaxItemsFactory("maxItems", false)
)

type itemCountBehavior struct {
	base
	limit int64
	isMin bool
}

func (i *itemCountBehavior) Evaluate(_ *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindArray {
		return build.Valid(), nil
	}

	elems, _ := instance.ArrayValue()
	n := int64(len(elems))

	if i.isMin && n < i.limit {
		return build.Invalid("array shorter than minItems"), nil
	}

	if !i.isMin && n > i.limit {
		return build.Invalid("array longer than maxItems"), nil
	}

	return build.Valid(), nil
}

// UniqueItemsFactory compiles "uniqueItems".
func UniqueItemsFactory(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	want, err := raw.BoolValue()
	if err != nil {
		return nil, usageErrf("uniqueItems must be a boolean")
	}

	return &uniqueItemsBehavior{base: base{keyword: "uniqueItems", role: build.RoleAssertion}, want: want}, nil
}

type uniqueItemsBehavior struct {
	base
	want bool
}

func (u *uniqueItemsBehavior) Evaluate(_ *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if !u.want || instance.Kind() != value.KindArray {
		return build.Valid(), nil
	}

	elems, _ := instance.ArrayValue()
	for i := range elems {
		for j := i + 1; j < len(elems); j++ {
			if value.Equal(elems[i], elems[j]) {
				return build.Invalid("array elements are not unique"), nil
			}
		}
	}

	return build.Valid(), nil
}

func minMaxPropertiesFactory(kw string, isMin bool) build.BehaviorFactory {
	return func(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
		n, err := nonNegativeIntLimit(raw)
		if err != nil {
			return nil, err
		}

		return &propertyCountBehavior{base: base{keyword: kw, role: build.RoleAssertion}, limit: n, isMin: isMin}, nil
	}
}

// MinPropertiesFactory and MaxPropertiesFactory compile
// "minProperties"/"maxProperties".
var (
	MinPropertiesFactory = minMaxPropertiesFactory("minProperties", true)
	MaxPropertiesFactory = minMaxPropertiesFactory("maxProperties", false)
)

type propertyCountBehavior struct {
	base
	limit int64
	isMin bool
}

func (p *propertyCountBehavior) Evaluate(_ *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindObject {
		return build.Valid(), nil
	}

	obj, _ := instance.Object()
	n := int64(obj.Len())

	if p.isMin && n < p.limit {
		return build.Invalid("object has fewer than minProperties members"), nil
	}

	if !p.isMin && n > p.limit {
		return build.Invalid("object has more than maxProperties members"), nil
	}

	return build.Valid(), nil
}

// RequiredFactory compiles "required": every listed name must be a member
// of an object instance.
func RequiredFactory(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	elems, err := raw.ArrayValue()
	if err != nil {
		return nil, usageErrf("required must be an array")
	}

	names := make([]string, 0, len(elems))

	for _, e := range elems {
		s, err := e.StringValue()
		if err != nil {
			return nil, usageErrf("required entries must be strings")
		}

		names = append(names, s)
	}

	return &requiredBehavior{base: base{keyword: "required", role: build.RoleAssertion}, names: names}, nil
}

type requiredBehavior struct {
	base
	names []string
}

func (r *requiredBehavior) Evaluate(_ *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindObject {
		return build.Valid(), nil
	}

	obj, _ := instance.Object()

	for _, name := range r.names {
		if _, ok := obj.GetString(name); !ok {
			return build.Invalid("missing required property " + name), nil
		}
	}

	return build.Valid(), nil
}

// DependentRequiredFactory compiles "dependentRequired": an object mapping
// property name -> array of property names that must also be present
// whenever the key property is present.
func DependentRequiredFactory(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	obj, err := raw.Object()
	if err != nil {
		return nil, usageErrf("dependentRequired must be an object")
	}

	deps := make(map[string][]string)

	for _, e := range obj.Entries() {
		key, err := e.Key.StringValue()
		if err != nil {
			return nil, usageErrf("dependentRequired keys must be strings")
		}

		elems, err := e.Value.ArrayValue()
		if err != nil {
			return nil, usageErrf("dependentRequired values must be arrays")
		}

		var names []string

		for _, el := range elems {
			s, err := el.StringValue()
			if err != nil {
				return nil, usageErrf("dependentRequired entries must be strings")
			}

			names = append(names, s)
		}

		deps[key] = names
	}

	return &dependentRequiredBehavior{base: base{keyword: "dependentRequired", role: build.RoleAssertion}, deps: deps}, nil
}

type dependentRequiredBehavior struct {
	base
	deps map[string][]string
}

func (d *dependentRequiredBehavior) Evaluate(_ *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindObject {
		return build.Valid(), nil
	}

	obj, _ := instance.Object()

	for trigger, names := range d.deps {
		if _, ok := obj.GetString(trigger); !ok {
			continue
		}

		for _, name := range names {
			if _, ok := obj.GetString(name); !ok {
				return build.Invalid("dependentRequired: " + trigger + " requires " + name), nil
			}
		}
	}

	return build.Valid(), nil
}
