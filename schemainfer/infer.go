package schemainfer

import (
	"errors"

	"go.solidfoundation.dev/core/schema/build"
	"go.solidfoundation.dev/core/schema/vocab"
	"go.solidfoundation.dev/core/value"
)

// ErrNoExamples is returned when Infer or InferYAML is called with no input.
var ErrNoExamples = errors.New("schemainfer: at least one example is required")

// Infer produces a compiled Schema describing the observed shape of
// examples, merged with union semantics (see the package doc). Each
// example is typically a value.Value decoded from JSON via jsonstream.
func Infer(examples ...value.Value) (*build.Schema, error) {
	if len(examples) == 0 {
		return nil, ErrNoExamples
	}

	var merged *node
	for _, ex := range examples {
		merged = mergeNode(merged, inferValue(ex))
	}

	return compile(merged)
}

func compile(merged *node) (*build.Schema, error) {
	doc := merged.toValue()

	if obj, err := doc.Object(); err == nil {
		obj.SetString("$schema", value.String(vocab.Draft202012URI))
		doc = value.ObjectValue(obj)
	}

	b := build.NewBuilder(vocab.Draft202012(), vocab.Solid())

	return b.Compile(doc)
}
