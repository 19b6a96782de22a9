// Package build compiles a value.Value document into a Schema graph: a
// Schema resource root wrapping a tree of SubSchema nodes, each carrying
// the KeywordBehaviors a MetaSchema's vocabularies recognise for it.
//
// Compilation runs in one pass over a scope stack (see Scope), handling
// $id/$schema/$anchor/$dynamicAnchor/$vocabulary directly and dispatching
// every other recognised keyword to the active MetaSchema's ordered
// keyword table. Package keyword supplies the concrete behaviors; package
// vocab composes them into the standard vocabularies and meta-schemas.
package build
