package build

import "go.solidfoundation.dev/core/value"

// Scope is the builder's per-subschema compilation state, threaded through
// recursive compilation and forked (not mutated in place) for each nested
// schema value, per spec §4.4.
type Scope struct {
	baseURI              string
	pendingAnchor        string
	pendingDynamicAnchor string
	metaSchema           *MetaSchema
	resource             *Schema
}

// BuildContext is handed to BehaviorFactory implementations so they can
// recursively compile nested schema values (properties, items, allOf
// members, ...) against the current scope.
type BuildContext struct {
	builder  *Builder
	scope    Scope
	loc      string // JSON pointer into the schema document, for diagnostics
	siblings *value.Object
}

// Sibling looks up another keyword of the same schema object currently
// being compiled, for behaviors (like "if", which needs "then"/"else")
// that must compile more than their own keyword's value.
func (bc *BuildContext) Sibling(name string) (value.Value, bool) {
	if bc.siblings == nil {
		return value.Value{}, false
	}

	return bc.siblings.GetString(name)
}

// BaseURI returns the current scope's base URI, for behaviors (like $ref)
// that must resolve a relative reference against it.
func (bc *BuildContext) BaseURI() string { return bc.scope.baseURI }

// MetaSchema returns the meta-schema active for the current scope.
func (bc *BuildContext) MetaSchema() *MetaSchema { return bc.scope.metaSchema }

// Location returns the JSON pointer (into the schema document) of the
// keyword currently being compiled.
func (bc *BuildContext) Location() string { return bc.loc }

// CompileChild compiles a nested schema value reached from the current
// keyword at the given child pointer token (a property name, or an array
// index rendered as a string).
func (bc *BuildContext) CompileChild(raw value.Value, token string) (*SubSchema, error) {
	return bc.builder.compileValue(raw, bc.scope, bc.loc+"/"+token)
}
