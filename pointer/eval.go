package pointer

import (
	"errors"
	"strconv"

	"go.solidfoundation.dev/core/value"
)

// ErrNotFound is returned by [Evaluate] when a token does not resolve
// against the given document.
var ErrNotFound = errors.New("pointer: not found")

// Evaluate walks doc following p's tokens and returns the value found there.
func Evaluate(doc value.Value, p Pointer) (value.Value, error) {
	cur := doc

	for i, tok := range p.tokens {
		next, err := step(cur, tok)
		if err != nil {
			return value.Value{}, &EvaluateError{Pointer: New(p.tokens[:i+1]...), Err: err}
		}

		cur = next
	}

	return cur, nil
}

// EvaluateError reports the point at which pointer evaluation failed.
type EvaluateError struct {
	Pointer Pointer
	Err     error
}

func (e *EvaluateError) Error() string {
	return "evaluating " + e.Pointer.String() + ": " + e.Err.Error()
}

func (e *EvaluateError) Unwrap() error { return e.Err }

func step(cur value.Value, tok string) (value.Value, error) {
	switch cur.Kind() {
	case value.KindObject:
		obj, err := cur.Object()
		if err != nil {
			return value.Value{}, err
		}

		v, ok := obj.GetString(tok)
		if !ok {
			return value.Value{}, ErrNotFound
		}

		return v, nil

	case value.KindArray:
		arr, err := cur.ArrayValue()
		if err != nil {
			return value.Value{}, err
		}

		idx, convErr := strconv.Atoi(tok)
		if convErr != nil || idx < 0 || idx >= len(arr) {
			return value.Value{}, ErrNotFound
		}

		return arr[idx], nil

	default:
		return value.Value{}, ErrNotFound
	}
}
