// Package value implements the universal data carrier shared by the JSON
// codec and the schema engine: an eight-variant tagged union ([Value]) plus
// its linear event representation ([Event]).
//
// Object keys preserve insertion order and are compared with [Equal]
// ([SchemaEqual] semantics): numerically equal decimals of different scale
// are the same key, and NaN is never equal to anything.
package value
