// Package pointer implements RFC 6901 JSON Pointers: an ordered sequence of
// reference tokens, each a quoted name or an array index. Concatenation is
// associative and the root pointer has an empty token list.
package pointer
