// Package bignum provides arbitrary-precision integer and decimal
// arithmetic for the temporal kernel and the JSON value model.
//
// [BigInt] wraps [math/big.Int]. [BigDecimal] pairs a [BigInt] mantissa with
// a 32-bit signed scale (value = mantissa * 10^-scale), plus the sentinel
// states NaN, +Infinity, and -Infinity. Division takes a configurable
// precision buffer and rounding mode; every [RoundingMode] mirrors a
// directed IEEE-754 rounding rule rather than a single "round half up"
// default, so callers needing exact reproducibility across platforms never
// have to guess which one a bare float division would have used.
package bignum
