package keyword

import (
	"go.solidfoundation.dev/core/schema/build"
	"go.solidfoundation.dev/core/value"
)

// MinSizeFactory and MaxSizeFactory compile the Solid bytes-validation
// vocabulary's "minSize"/"maxSize" keywords: byte-length bounds on a
// `bytes` instance.
func minMaxSizeFactory(kw string, isMin bool) build.BehaviorFactory {
	return func(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
		n, err := nonNegativeIntLimit(raw)
		if err != nil {
			return nil, err
		}

		return &byteSizeBehavior{base: base{keyword: kw, role: build.RoleAssertion}, limit: n, isMin: isMin}, nil
	}
}

var (
	MinSizeFactory = minMaxSizeFactory("minSize", true)
	MaxSizeFactory = minMaxSizeFactory("maxSize", false)
)

type byteSizeBehavior struct {
	base
	limit int64
	isMin bool
}

func (b *byteSizeBehavior) Evaluate(_ *build.EvalContext, instance value.Value) (build.Outcome, error) {
	if instance.Kind() != value.KindBytes {
		return build.Valid(), nil
	}

	data, _ := instance.BytesValue()
	n := int64(len(data))

	if b.isMin && n < b.limit {
		return build.Invalid(b.keyword + ": byte length below minimum"), nil
	}

	if !b.isMin && n > b.limit {
		return build.Invalid(b.keyword + ": byte length above maximum"), nil
	}

	return build.Valid(), nil
}

// validBitWidths enumerates the Solid coding vocabulary's "bitWidth"
// values. The raw-int variant some wire formats use is deliberately not a
// member here; it is out of scope for this vocabulary.
var validBitWidths = map[string]bool{
	"8": true, "16": true, "32": true, "64": true, "128": true, "big": true,
}

// BitWidthFactory compiles "bitWidth": an enum annotation restricted to
// the fixed set of recognised widths.
func BitWidthFactory(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	s, err := bitWidthText(raw)
	if err != nil {
		return nil, err
	}

	if !validBitWidths[s] {
		return nil, usageErrf("bitWidth must be one of 8, 16, 32, 64, 128, big")
	}

	return &annotationBehavior{base: base{keyword: "bitWidth", role: build.RoleAnnotation}, value: raw}, nil
}

func bitWidthText(raw value.Value) (string, error) {
	if raw.Kind() == value.KindString {
		return raw.StringValue()
	}

	if raw.Kind() == value.KindNumber {
		d, err := raw.NumberValue()
		if err != nil {
			return "", usageErrf("bitWidth must be a string or integer")
		}

		n, ok := decimalToInt64(d)
		if !ok {
			return "", usageErrf("bitWidth must be a string or integer")
		}

		switch n {
		case 8:
			return "8", nil
		case 16:
			return "16", nil
		case 32:
			return "32", nil
		case 64:
			return "64", nil
		case 128:
			return "128", nil
		}

		return "", usageErrf("bitWidth must be one of 8, 16, 32, 64, 128, big")
	}

	return "", usageErrf("bitWidth must be a string or integer")
}

// UnitsFactory compiles "units": a free-form annotation naming the
// physical or logical unit a numeric instance is measured in.
func UnitsFactory(_ *build.BuildContext, raw value.Value) (build.KeywordBehavior, error) {
	if _, err := raw.StringValue(); err != nil {
		return nil, usageErrf("units must be a string")
	}

	return &annotationBehavior{base: base{keyword: "units", role: build.RoleAnnotation}, value: raw}, nil
}
