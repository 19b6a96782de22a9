package value

import (
	"errors"
	"fmt"

	"go.solidfoundation.dev/core/bignum"
)

// Kind identifies which of the eight Value variants is populated.
type Kind int

// The eight Value variants.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindBytes
	KindArray
	KindObject
	KindTagged
)

// String returns a lowercase name for k, matching the variant names used in
// spec prose ("null", "bool", "number", ...).
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindTagged:
		return "tagged"
	default:
		return "unknown"
	}
}

// ErrWrongKind is returned by accessors when called against a Value of a
// different [Kind].
var ErrWrongKind = errors.New("value: wrong kind")

// Value is the tagged union described by spec §3.1: null, bool, number
// (arbitrary-precision decimal, or NaN/+Inf/-Inf), string, bytes, array,
// object, or tagged. The zero Value is null.
type Value struct {
	kind Kind

	b      bool
	num    bignum.BigDecimal
	str    string
	bytes  []byte
	arr    []Value
	obj    *Object
	tagTag *Value
	tagVal *Value
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a bool Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a number Value wrapping d.
func Number(d bignum.BigDecimal) Value { return Value{kind: KindNumber, num: d} }

// Int returns a number Value for an integral int64.
func Int(n int64) Value { return Number(bignum.NewBigDecimalFromInt64(n)) }

// String returns a string Value. (Shadows fmt.Stringer naming deliberately:
// this package's exported constructor is the common case.)
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bytes returns a bytes Value. The slice is not copied; callers must treat
// it as immutable once wrapped.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// Array returns an array Value over the given elements (copied).
func Array(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)

	return Value{kind: KindArray, arr: cp}
}

// ObjectValue returns an object Value wrapping an already-built [Object].
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}

	return Value{kind: KindObject, obj: o}
}

// Tagged returns a decorated Value.
func Tagged(tag, inner Value) Value {
	t, i := tag, inner

	return Value{kind: KindTagged, tagTag: &t, tagVal: &i}
}

// Kind returns the variant tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolValue returns v's bool payload.
func (v Value) BoolValue() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("%w: %s is not bool", ErrWrongKind, v.kind)
	}

	return v.b, nil
}

// NumberValue returns v's decimal payload.
func (v Value) NumberValue() (bignum.BigDecimal, error) {
	if v.kind != KindNumber {
		return bignum.BigDecimal{}, fmt.Errorf("%w: %s is not number", ErrWrongKind, v.kind)
	}

	return v.num, nil
}

// StringValue returns v's string payload.
func (v Value) StringValue() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("%w: %s is not string", ErrWrongKind, v.kind)
	}

	return v.str, nil
}

// BytesValue returns v's byte-slice payload.
func (v Value) BytesValue() ([]byte, error) {
	if v.kind != KindBytes {
		return nil, fmt.Errorf("%w: %s is not bytes", ErrWrongKind, v.kind)
	}

	return v.bytes, nil
}

// ArrayValue returns v's element slice.
func (v Value) ArrayValue() ([]Value, error) {
	if v.kind != KindArray {
		return nil, fmt.Errorf("%w: %s is not array", ErrWrongKind, v.kind)
	}

	return v.arr, nil
}

// Object returns v's [Object] payload.
func (v Value) Object() (*Object, error) {
	if v.kind != KindObject {
		return nil, fmt.Errorf("%w: %s is not object", ErrWrongKind, v.kind)
	}

	return v.obj, nil
}

// TaggedParts returns the tag and inner Value of a tagged variant.
func (v Value) TaggedParts() (tag, inner Value, err error) {
	if v.kind != KindTagged {
		return Value{}, Value{}, fmt.Errorf("%w: %s is not tagged", ErrWrongKind, v.kind)
	}

	return *v.tagTag, *v.tagVal, nil
}

// Unwrap strips any chain of tagged wrappers and returns the innermost
// Value.
func (v Value) Unwrap() Value {
	for v.kind == KindTagged {
		v = *v.tagVal
	}

	return v
}
