// Package keyword provides the concrete build.KeywordBehavior
// implementations for the standard JSON Schema 2020-12 keywords plus the
// Solid bytes-validation and coding extension vocabularies. Package vocab
// wires these factories into build.Vocabulary/build.MetaSchema tables;
// package build's Builder hardcodes $id/$schema/$anchor/$dynamicAnchor/
// $vocabulary handling and never calls into this package for those five.
package keyword
