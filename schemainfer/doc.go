// Package schemainfer generates a compiled schema/build.Schema from example
// data on a best-effort, fail-open basis. It is grounded directly on
// magicschema.Generator's five-phase pipeline, keeping four of its phases
// (parse, infer, merge, emit),
// adapted from YAML-AST nodes and the *jsonschema.Schema wire type to
// value.Value and schema/build's compiled graph, and with the
// Annotator/RootAnnotator helm-ecosystem layer dropped: schemainfer infers
// purely from structure, never from annotation comments.
//
// Two entry points cover the two input shapes a schema might be inferred
// from:
//
//   - [Infer] takes already-decoded value.Value examples (JSON instances,
//     typically produced by jsonstream).
//   - [InferYAML] takes raw YAML documents, decoded via goccy/go-yaml's AST
//     parser, giving that dependency a home outside magicschema: accepting
//     YAML-authored example fixtures before any further processing touches
//     them.
//
// Multiple examples are merged with union semantics, following
// magicschema/merge.go: conflicting types widen (integer + number becomes
// number; otherwise incompatible types drop the constraint entirely,
// maximally permissive), object properties union with source order
// preserved, and array item schemas merge recursively.
//
// required is the one place schemainfer's semantics diverge from
// magicschema, which never infers required from structure alone (only from
// annotations, a layer this package drops). Lacking an annotation system,
// schemainfer instead uses required-by-intersection: a property inferred
// from a single example is treated as required by that example; merging
// two examples keeps a property required only if both agreed it was
// present, exactly as magicschema's own intersectStrings does for the
// (annotation-sourced) required array.
package schemainfer
