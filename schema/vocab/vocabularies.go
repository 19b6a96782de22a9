package vocab

import (
	"go.solidfoundation.dev/core/schema/build"
	"go.solidfoundation.dev/core/schema/keyword"
)

// Meta-schema and vocabulary URIs this package recognises.
const (
	Draft202012URI = "https://json-schema.org/draft/2020-12/schema"
	SolidURI       = "https://solidfoundation.dev/schema/solid-2025"

	CoreVocabURI       = "https://json-schema.org/draft/2020-12/vocab/core"
	ApplicatorVocabURI = "https://json-schema.org/draft/2020-12/vocab/applicator"
	ValidationVocabURI = "https://json-schema.org/draft/2020-12/vocab/validation"
	MetaDataVocabURI   = "https://json-schema.org/draft/2020-12/vocab/meta-data"

	BytesValidationVocabURI = "https://solidfoundation.dev/schema/vocab/bytes-validation"
	CodingVocabURI          = "https://solidfoundation.dev/schema/vocab/coding"
)

// Core composes $ref/$dynamicRef/$comment/$defs/definitions. $id, $schema,
// $anchor, $dynamicAnchor, and $vocabulary are not included here: the
// Builder recognises and applies them directly, never dispatching to a
// vocabulary table for them.
func Core() *build.Vocabulary {
	return &build.Vocabulary{
		URI:   CoreVocabURI,
		Order: []string{"$ref", "$dynamicRef", "$defs", "definitions", "$comment"},
		Table: map[string]build.BehaviorFactory{
			"$ref":        keyword.RefFactory,
			"$dynamicRef": keyword.DynamicRefFactory,
			"$defs":       keyword.DefsFactory("$defs"),
			"definitions": keyword.DefsFactory("definitions"),
			"$comment":    keyword.CommentFactory,
		},
	}
}

// Applicator composes the structural applicators.
func Applicator() *build.Vocabulary {
	return &build.Vocabulary{
		URI: ApplicatorVocabURI,
		Order: []string{
			"prefixItems", "items", "contains",
			"properties", "patternProperties", "additionalProperties",
			"dependentSchemas",
			"allOf", "anyOf", "oneOf", "not",
			"if", "then", "else",
			"unevaluatedItems", "unevaluatedProperties",
		},
		Table: map[string]build.BehaviorFactory{
			"prefixItems":           keyword.PrefixItemsFactory,
			"items":                 keyword.ItemsFactory,
			"contains":              keyword.ContainsFactory,
			"properties":            keyword.PropertiesFactory,
			"patternProperties":     keyword.PatternPropertiesFactory,
			"additionalProperties":  keyword.AdditionalPropertiesFactory,
			"dependentSchemas":      keyword.DependentSchemasFactory,
			"allOf":                 keyword.AllOfFactory,
			"anyOf":                 keyword.AnyOfFactory,
			"oneOf":                 keyword.OneOfFactory,
			"not":                   keyword.NotFactory,
			"if":                    keyword.IfFactory,
			"then":                  keyword.ThenFactory,
			"else":                  keyword.ElseFactory,
			"unevaluatedItems":      keyword.UnevaluatedItemsFactory,
			"unevaluatedProperties": keyword.UnevaluatedPropertiesFactory,
		},
	}
}

// Validation composes the pure assertions.
func Validation() *build.Vocabulary {
	return &build.Vocabulary{
		URI: ValidationVocabURI,
		Order: []string{
			"type", "enum", "const",
			"minLength", "maxLength", "pattern",
			"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf",
			"minItems", "maxItems", "uniqueItems", "minContains", "maxContains",
			"minProperties", "maxProperties", "required", "dependentRequired",
		},
		Table: map[string]build.BehaviorFactory{
			"type":              keyword.TypeFactory,
			"enum":              keyword.EnumFactory,
			"const":             keyword.ConstFactory,
			"minLength":         keyword.MinLengthFactory,
			"maxLength":         keyword.MaxLengthFactory,
			"pattern":           keyword.PatternFactory,
			"minimum":           keyword.MinimumFactory,
			"maximum":           keyword.MaximumFactory,
			"exclusiveMinimum":  keyword.ExclusiveMinimumFactory,
			"exclusiveMaximum":  keyword.ExclusiveMaximumFactory,
			"multipleOf":        keyword.MultipleOfFactory,
			"minItems":          keyword.MinItemsFactory,
			"maxItems":          keyword.MaxItemsFactory,
			"uniqueItems":       keyword.UniqueItemsFactory,
			"minContains":       keyword.MinContainsFactory,
			"maxContains":       keyword.MaxContainsFactory,
			"minProperties":     keyword.MinPropertiesFactory,
			"maxProperties":     keyword.MaxPropertiesFactory,
			"required":          keyword.RequiredFactory,
			"dependentRequired": keyword.DependentRequiredFactory,
		},
	}
}

// MetaData composes the pure-annotation keywords.
func MetaData() *build.Vocabulary {
	names := []string{"title", "description", "default", "examples", "deprecated", "readOnly", "writeOnly"}

	table := make(map[string]build.BehaviorFactory, len(names))
	for _, n := range names {
		table[n] = keyword.AnnotationFactory(n)
	}

	return &build.Vocabulary{URI: MetaDataVocabURI, Order: names, Table: table}
}

// BytesValidation composes the Solid extension's minSize/maxSize keywords
// over `bytes` instances.
func BytesValidation() *build.Vocabulary {
	return &build.Vocabulary{
		URI:   BytesValidationVocabURI,
		Order: []string{"minSize", "maxSize"},
		Table: map[string]build.BehaviorFactory{
			"minSize": keyword.MinSizeFactory,
			"maxSize": keyword.MaxSizeFactory,
		},
	}
}

// Coding composes the Solid extension's units/bitWidth annotations.
func Coding() *build.Vocabulary {
	return &build.Vocabulary{
		URI:   CodingVocabURI,
		Order: []string{"units", "bitWidth"},
		Table: map[string]build.BehaviorFactory{
			"units":    keyword.UnitsFactory,
			"bitWidth": keyword.BitWidthFactory,
		},
	}
}

// Draft202012 composes the four standard vocabularies into the 2020-12
// meta-schema, with unrecognised keywords treated as annotations (the
// draft's default collectAnnotations-friendly posture).
func Draft202012() *build.MetaSchema {
	return build.NewMetaSchema(Draft202012URI, build.UnknownAnnotate,
		Core(), Applicator(), Validation(), MetaData())
}

// Solid composes the 2020-12 vocabularies plus the bytes-validation and
// coding extensions, for documents that declare $schema as SolidURI.
func Solid() *build.MetaSchema {
	return build.NewMetaSchema(SolidURI, build.UnknownAnnotate,
		Core(), Applicator(), Validation(), MetaData(), BytesValidation(), Coding())
}
