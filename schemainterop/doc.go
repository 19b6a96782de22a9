// Package schemainterop exports a compiled schema/build.Schema to
// *jsonschema.Schema (github.com/google/jsonschema-go), for handing a
// compiled schema to ecosystem tooling that already consumes that type --
// editors, $ref bundlers, documentation generators. It is one-way: the
// result is never fed back into schema/validate, which remains the sole
// validation authority for this module.
//
// Export walks build.SubSchema.Source, the raw value.Value document each
// sub-schema was compiled from, rather than re-deriving JSON Schema shape
// from compiled KeywordBehaviors. Source is retained on every SubSchema for
// exactly this purpose.
//
//	compiled, err := build.NewBuilder(vocab.Draft202012()).Compile(doc)
//	exported, err := schemainterop.Export(compiled)
//	out, err := json.MarshalIndent(exported, "", "  ")
package schemainterop
