package schemainfer

import (
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"go.solidfoundation.dev/core/schema/build"
)

// InferYAML produces a compiled Schema describing the observed shape of one
// or more YAML documents, decoded via goccy/go-yaml's AST parser (the same
// parser magicschema.Generator uses) and walked structurally exactly as
// Infer walks a value.Value tree. Empty documents contribute nothing (the
// permissive `true` schema).
func InferYAML(docs ...[]byte) (*build.Schema, error) {
	if len(docs) == 0 {
		return nil, ErrNoExamples
	}

	var merged *node

	for _, doc := range docs {
		n, err := inferYAMLDoc(doc)
		if err != nil {
			return nil, err
		}

		merged = mergeNode(merged, n)
	}

	return compile(merged)
}

func inferYAMLDoc(input []byte) (*node, error) {
	if len(input) == 0 {
		return nil, nil
	}

	file, err := parser.ParseBytes(input, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("schemainfer: parse yaml: %w", err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, nil
	}

	return inferYAMLNode(file.Docs[0].Body), nil
}

// inferYAMLNode walks a YAML AST node structurally, following
// magicschema/infer.go's inferType/unwrapNode.
func inferYAMLNode(n ast.Node) *node {
	n = unwrapYAMLNode(n)

	switch t := n.(type) {
	case *ast.BoolNode:
		return &node{typ: typeBoolean}
	case *ast.IntegerNode:
		return &node{typ: typeInteger}
	case *ast.FloatNode, *ast.InfinityNode, *ast.NanNode:
		return &node{typ: typeNumber}
	case *ast.StringNode, *ast.LiteralNode:
		return &node{typ: typeString}
	case *ast.SequenceNode:
		var items *node
		for _, el := range t.Values {
			items = mergeNode(items, inferYAMLNode(el))
		}

		return &node{typ: typeArray, items: items}
	case *ast.MappingValueNode:
		return inferYAMLMapping([]*ast.MappingValueNode{t})
	case *ast.MappingNode:
		return inferYAMLMapping(t.Values)
	case *ast.NullNode, nil:
		return &node{}
	default:
		return &node{}
	}
}

func inferYAMLMapping(values []*ast.MappingValueNode) *node {
	n := &node{
		typ:        typeObject,
		properties: make(map[string]*node, len(values)),
		required:   make(map[string]bool, len(values)),
	}

	for _, mvn := range values {
		if mvn == nil || mvn.Key == nil {
			continue
		}

		if _, ok := mvn.Key.(*ast.MergeKeyNode); ok {
			// YAML merge keys (<<) splice an anchor's mapping into this
			// one; schemainfer does not resolve anchors/aliases, so the
			// merge key itself is skipped rather than misread as a
			// literal property name.
			continue
		}

		key := mvn.Key.String()
		n.properties[key] = inferYAMLNode(mvn.Value)
		n.order = append(n.order, key)
		n.required[key] = true
	}

	return n
}

// unwrapYAMLNode resolves TagNode and AnchorNode wrappers to the underlying
// value node, following magicschema/infer.go's unwrapNode.
func unwrapYAMLNode(n ast.Node) ast.Node {
	for {
		switch t := n.(type) {
		case *ast.TagNode:
			n = t.Value
		case *ast.AnchorNode:
			n = t.Value
		default:
			return n
		}
	}
}
