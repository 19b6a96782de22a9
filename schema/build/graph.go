package build

import (
	"go.solidfoundation.dev/core/value"
)

// Role identifies which of the four behavior kinds a keyword plays,
// per spec §3.4. Reserved keywords (e.g. $comment, $defs) are no-ops at
// validation time but still occupy a declared position in keyword order.
type Role int

const (
	RoleIdentifier Role = iota
	RoleApplicator
	RoleAssertion
	RoleAnnotation
	RoleReserved
)

// String names a Role for diagnostics.
func (r Role) String() string {
	switch r {
	case RoleIdentifier:
		return "identifier"
	case RoleApplicator:
		return "applicator"
	case RoleAssertion:
		return "assertion"
	case RoleAnnotation:
		return "annotation"
	case RoleReserved:
		return "reserved"
	default:
		return "unknown"
	}
}

// Outcome is the result of evaluating one KeywordBehavior against an
// instance, per spec §4.5.
type Outcome struct {
	Valid         bool
	HasAnnotation bool
	Annotation    value.Value
	Reason        string
}

// Valid returns a passing Outcome with no annotation.
func Valid() Outcome { return Outcome{Valid: true} }

// Invalid returns a failing Outcome carrying reason.
func Invalid(reason string) Outcome { return Outcome{Valid: false, Reason: reason} }

// Annotate returns a passing Outcome carrying an annotation Value.
func Annotate(v value.Value) Outcome {
	return Outcome{Valid: true, HasAnnotation: true, Annotation: v}
}

// KeywordBehavior is one compiled keyword attached to a SubSchema.
// Applicators, assertions, and annotations are evaluated uniformly by the
// validator via Evaluate; identifiers are handled structurally by the
// Builder itself and never appear in SubSchema.Behaviors. Reserved
// keywords implement Evaluate as an always-Valid no-op.
type KeywordBehavior interface {
	Keyword() string
	Role() Role
	// Prepare runs once, after every keyword of the sub-schema has been
	// constructed, to let behaviors cross-validate siblings (e.g.
	// minLength <= maxLength). parent is the SubSchema this behavior
	// belongs to.
	Prepare(parent *SubSchema) error
	// Evaluate applies the behavior to instance. ctx carries the
	// validator's traversal state; it is nil during Prepare and during
	// any builder-only use.
	Evaluate(ctx *EvalContext, instance value.Value) (Outcome, error)
}

// SubSchema is either a boolean schema (universal accept/reject) or an
// object schema with an ordered set of KeywordBehaviors.
type SubSchema struct {
	// Boolean is non-nil for `true`/`false` schemas; Behaviors is empty
	// in that case.
	Boolean *bool

	Behaviors []KeywordBehavior

	// Source is the original instance value.Value this sub-schema was
	// compiled from, retained so $dynamicRef/$ref fragment rebuilding
	// and schemainterop export can recover it.
	Source value.Value

	// Resource is the Schema this sub-schema's containing resource root
	// belongs to (for anchor/dynamic-anchor lookups during validation).
	Resource *Schema
}

// Behavior returns the behavior for keyword, if this sub-schema has one.
func (s *SubSchema) Behavior(keyword string) (KeywordBehavior, bool) {
	for _, b := range s.Behaviors {
		if b.Keyword() == keyword {
			return b, true
		}
	}

	return nil, false
}

// Schema is a resource root: a sub-schema reachable at its own canonical
// URI, either because it is the compilation root or because it (or an
// ancestor scope) declared $id.
type Schema struct {
	CanonicalURI  string
	Anchor        string
	DynamicAnchor string
	MetaSchema    *MetaSchema
	Source        value.Value
	Root          *SubSchema

	// Anchors maps every $anchor/$dynamicAnchor declared anywhere within
	// this resource (including in nested resources reached without an
	// intervening $id) to the sub-schema it names.
	Anchors        map[string]*SubSchema
	DynamicAnchors map[string]*SubSchema

	// Resources lists every resource transitively contained in this one
	// (nested schemas that declared their own $id), per spec §3.4.
	Resources []*Schema
}

// BehaviorFactory constructs a KeywordBehavior from the raw value.Value
// bound to that keyword within an object schema. bc provides recursive
// compilation for applicators that own nested sub-schemas.
type BehaviorFactory func(bc *BuildContext, raw value.Value) (KeywordBehavior, error)

// Vocabulary is a named, ordered table of keyword behavior factories, per
// spec §3.4.
type Vocabulary struct {
	URI   string
	Order []string
	Table map[string]BehaviorFactory
}

// MetaSchema composes vocabularies and resolves keyword -> factory plus
// a total evaluation order across all composed vocabularies.
type MetaSchema struct {
	URI          string
	Vocabularies []*Vocabulary

	// UnknownKeywordPolicy governs object keys that decorate a schema but
	// match no composed vocabulary's table.
	UnknownKeywordPolicy UnknownKeywordPolicy

	order    []string
	table    map[string]BehaviorFactory
	vocabSet map[string]bool
}

// UnknownKeywordPolicy selects how the builder treats an object key that
// is not `$id`/`$schema`/`$anchor`/`$dynamicAnchor`/`$vocabulary` and is
// not recognised by any composed vocabulary.
type UnknownKeywordPolicy int

const (
	UnknownAnnotate UnknownKeywordPolicy = iota
	UnknownIgnore
	UnknownFail
)

// NewMetaSchema composes vocabularies (in order) into a MetaSchema. Later
// vocabularies' keywords shadow earlier ones on name collision.
func NewMetaSchema(uri string, policy UnknownKeywordPolicy, vocabularies ...*Vocabulary) *MetaSchema {
	m := &MetaSchema{
		URI:                   uri,
		Vocabularies:          vocabularies,
		UnknownKeywordPolicy:  policy,
		table:                 make(map[string]BehaviorFactory),
		vocabSet:              make(map[string]bool),
	}

	for _, v := range vocabularies {
		m.vocabSet[v.URI] = true

		for _, kw := range v.Order {
			if _, exists := m.table[kw]; !exists {
				m.order = append(m.order, kw)
			}

			m.table[kw] = v.Table[kw]
		}
	}

	return m
}

// KeywordOrder returns the full declaration order across all composed
// vocabularies.
func (m *MetaSchema) KeywordOrder() []string { return m.order }

// Factory looks up the behavior factory for keyword.
func (m *MetaSchema) Factory(keyword string) (BehaviorFactory, bool) {
	f, ok := m.table[keyword]

	return f, ok
}

// HasVocabulary reports whether uri is among the composed vocabularies.
func (m *MetaSchema) HasVocabulary(uri string) bool { return m.vocabSet[uri] }
