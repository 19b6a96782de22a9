// Package validate walks a build.Schema graph against a value.Value
// instance, per spec §4.5. Validation proceeds as a scope-stack recursion
// mirroring the builder's compile pass, additionally tracking the dynamic
// scope chain $dynamicRef needs and the sibling/adjacent annotation sets
// unevaluatedProperties/unevaluatedItems need.
//
// Every keyword evaluated is recorded as a flat Record rather than a fully
// nested standard-output tree; the four Output renderers (flag, basic,
// detailed, verbose) project that flat record list into the corresponding
// JSON Schema output shape. This is a deliberate simplification: a fully
// recursive output tree would need to mirror applicator nesting exactly,
// which the flat record list already captures through each record's own
// absolute/relative keyword location, without the bookkeeping of building
// and merging nested node trees across allOf/if-then-else/$ref boundaries.
package validate
