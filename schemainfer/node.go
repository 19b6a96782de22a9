package schemainfer

import (
	"go.solidfoundation.dev/core/bignum"
	"go.solidfoundation.dev/core/value"
)

// JSON Schema type constants, matching magicschema/infer.go.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// node is the structural intermediate schemainfer builds while walking
// example data, before emitting a value.Value schema document. It plays
// the same role magicschema's *jsonschema.Schema plays mid-generation, cut
// down to the fields structural inference actually produces.
type node struct {
	typ        string
	properties map[string]*node
	order      []string
	required   map[string]bool
	items      *node
}

// inferValue builds a node from one example value.Value.
func inferValue(v value.Value) *node {
	v = v.Unwrap()

	switch v.Kind() {
	case value.KindBool:
		return &node{typ: typeBoolean}
	case value.KindNumber:
		d, err := v.NumberValue()
		if err != nil {
			return &node{}
		}

		if isIntegral(d) {
			return &node{typ: typeInteger}
		}

		return &node{typ: typeNumber}
	case value.KindString, value.KindBytes:
		return &node{typ: typeString}
	case value.KindArray:
		elems, err := v.ArrayValue()
		if err != nil {
			return &node{typ: typeArray}
		}

		var items *node
		for _, e := range elems {
			items = mergeNode(items, inferValue(e))
		}

		return &node{typ: typeArray, items: items}
	case value.KindObject:
		obj, err := v.Object()
		if err != nil {
			return &node{typ: typeObject}
		}

		n := &node{
			typ:        typeObject,
			properties: make(map[string]*node, obj.Len()),
			required:   make(map[string]bool, obj.Len()),
		}

		for _, e := range obj.Entries() {
			key, err := e.Key.StringValue()
			if err != nil {
				continue
			}

			n.properties[key] = inferValue(e.Value)
			n.order = append(n.order, key)
			n.required[key] = true
		}

		return n
	default:
		// KindNull and anything else: no type constraint, maximally
		// permissive, matching magicschema's treatment of null/empty.
		return &node{}
	}
}

// isIntegral reports whether d has no fractional part.
func isIntegral(d bignum.BigDecimal) bool {
	return d.Normalized().Scale() <= 0
}

// widenType returns the widened type for merging two inferred types.
// Incompatible types drop the constraint entirely (fail-open), following
// magicschema/infer.go's widenType.
func widenType(a, b string) string {
	if a == b {
		return a
	}

	if a == "" {
		return b
	}

	if b == "" {
		return a
	}

	if (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger) {
		return typeNumber
	}

	return ""
}

// mergeNode merges two nodes with union semantics: types widen, object
// properties union (with a's order first, then b's new keys), required is
// the intersection of keys both sides agreed were present, and array items
// merge recursively.
func mergeNode(a, b *node) *node {
	if a == nil {
		return b
	}

	if b == nil {
		return a
	}

	out := &node{typ: widenType(a.typ, b.typ)}

	switch out.typ {
	case typeObject:
		out.properties = make(map[string]*node)
		out.required = make(map[string]bool)

		for _, k := range a.order {
			out.properties[k] = a.properties[k]
			out.order = append(out.order, k)
		}

		for _, k := range b.order {
			if existing, ok := out.properties[k]; ok {
				out.properties[k] = mergeNode(existing, b.properties[k])
			} else {
				out.properties[k] = b.properties[k]
				out.order = append(out.order, k)
			}
		}

		for k := range a.required {
			if b.required[k] {
				out.required[k] = true
			}
		}
	case typeArray:
		out.items = mergeNode(a.items, b.items)
	}

	return out
}

// toValue renders n as a JSON Schema document value. A nil node, or one
// with no constraints at all, renders as the permissive `true` schema.
func (n *node) toValue() value.Value {
	if n == nil {
		return value.Bool(true)
	}

	obj := value.NewObject()

	if n.typ != "" {
		obj.SetString("type", value.String(n.typ))
	}

	switch n.typ {
	case typeObject:
		if len(n.order) > 0 {
			props := value.NewObject()
			for _, k := range n.order {
				props.SetString(k, n.properties[k].toValue())
			}

			obj.SetString("properties", value.ObjectValue(props))
		}

		var required []value.Value

		for _, k := range n.order {
			if n.required[k] {
				required = append(required, value.String(k))
			}
		}

		if len(required) > 0 {
			obj.SetString("required", value.Array(required...))
		}
	case typeArray:
		if n.items != nil {
			obj.SetString("items", n.items.toValue())
		}
	}

	if obj.Len() == 0 {
		return value.Bool(true)
	}

	return value.ObjectValue(obj)
}
