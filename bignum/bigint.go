package bignum

import (
	"errors"
	"math/big"
)

// ErrInvalidBigInt is returned when parsing an integer literal fails.
var ErrInvalidBigInt = errors.New("invalid big integer")

// BigInt is an arbitrary-precision signed integer.
type BigInt struct {
	v *big.Int
}

// Zero is the additive identity.
var Zero = BigInt{v: big.NewInt(0)}

// NewBigIntFromInt64 creates a [BigInt] from an int64.
func NewBigIntFromInt64(n int64) BigInt {
	return BigInt{v: big.NewInt(n)}
}

// ParseBigInt parses a base-10 integer literal, accepting a leading sign.
func ParseBigInt(s string) (BigInt, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return BigInt{}, ErrInvalidBigInt
	}

	return BigInt{v: v}, nil
}

func (b BigInt) big() *big.Int {
	if b.v == nil {
		return big.NewInt(0)
	}

	return b.v
}

// Add returns b + other.
func (b BigInt) Add(other BigInt) BigInt {
	return BigInt{v: new(big.Int).Add(b.big(), other.big())}
}

// Sub returns b - other.
func (b BigInt) Sub(other BigInt) BigInt {
	return BigInt{v: new(big.Int).Sub(b.big(), other.big())}
}

// Mul returns b * other.
func (b BigInt) Mul(other BigInt) BigInt {
	return BigInt{v: new(big.Int).Mul(b.big(), other.big())}
}

// QuoRem returns the truncated quotient and remainder of b / other.
func (b BigInt) QuoRem(other BigInt) (quo, rem BigInt) {
	q, r := new(big.Int).QuoRem(b.big(), other.big(), new(big.Int))

	return BigInt{v: q}, BigInt{v: r}
}

// Neg returns -b.
func (b BigInt) Neg() BigInt {
	return BigInt{v: new(big.Int).Neg(b.big())}
}

// Abs returns |b|.
func (b BigInt) Abs() BigInt {
	return BigInt{v: new(big.Int).Abs(b.big())}
}

// Cmp returns -1, 0, or +1 comparing b to other.
func (b BigInt) Cmp(other BigInt) int {
	return b.big().Cmp(other.big())
}

// Sign returns -1, 0, or +1.
func (b BigInt) Sign() int {
	return b.big().Sign()
}

// IsZero reports whether b is zero.
func (b BigInt) IsZero() bool {
	return b.Sign() == 0
}

// PowTen returns 10^exp as a [BigInt]. exp must be non-negative.
func PowTen(exp int32) BigInt {
	if exp <= 0 {
		return NewBigIntFromInt64(1)
	}

	return BigInt{v: new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)}
}

// String returns the base-10 string representation of b.
func (b BigInt) String() string {
	return b.big().String()
}

// Int64 returns b as an int64, with the second result false if b does not
// fit.
func (b BigInt) Int64() (int64, bool) {
	if !b.big().IsInt64() {
		return 0, false
	}

	return b.big().Int64(), true
}
