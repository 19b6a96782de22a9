package keyword

import (
	"fmt"

	"go.solidfoundation.dev/core/bignum"
	"go.solidfoundation.dev/core/schema/build"
	"go.solidfoundation.dev/core/value"
)

// base supplies the Keyword/Role/Prepare boilerplate every behavior needs;
// behaviors that require sibling cross-validation override Prepare.
type base struct {
	keyword string
	role    build.Role
}

func (b base) Keyword() string             { return b.keyword }
func (b base) Role() build.Role            { return b.role }
func (b base) Prepare(*build.SubSchema) error { return nil }

func usageErrf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", build.ErrKeywordUsageError, fmt.Sprintf(format, args...))
}

// decimalToInt64 reports the exact int64 value of d, failing if d carries a
// fractional part or does not fit.
func decimalToInt64(d bignum.BigDecimal) (int64, bool) {
	if !d.IsFinite() {
		return 0, false
	}

	n := d.Normalized()
	if n.Scale() > 0 {
		return 0, false
	}

	m := n.Mantissa()
	if n.Scale() < 0 {
		m = m.Mul(bignum.PowTen(-n.Scale()))
	}

	return m.Int64()
}

// nonNegativeIntLimit compiles a keyword argument that must be a
// non-negative integer (minLength, maxItems, ...).
func nonNegativeIntLimit(raw value.Value) (int64, error) {
	d, err := raw.NumberValue()
	if err != nil {
		return 0, usageErrf("must be a number")
	}

	n, ok := decimalToInt64(d)
	if !ok || n < 0 {
		return 0, usageErrf("must be a non-negative integer")
	}

	return n, nil
}

// utf8Len counts Unicode code points in s, per spec's string-length
// keywords (minLength/maxLength count code points, not bytes).
func utf8Len(s string) int {
	n := 0
	for range s {
		n++
	}

	return n
}
