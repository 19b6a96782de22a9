package schemainterop

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"

	"go.solidfoundation.dev/core/schema/build"
	"go.solidfoundation.dev/core/value"
)

// Export converts a compiled Schema to *jsonschema.Schema. Keywords with no
// jsonschema-go equivalent (the bytes-validation/coding extension
// vocabularies, unevaluatedProperties/unevaluatedItems, if/then/else,
// $dynamicRef/$dynamicAnchor) are silently dropped: the exported schema is a
// best-effort projection for ecosystem tooling, not a faithful round trip.
func Export(s *build.Schema) (*jsonschema.Schema, error) {
	if s == nil || s.Root == nil {
		return nil, fmt.Errorf("schemainterop: nil schema")
	}

	out, err := exportValue(s.Root.Source)
	if err != nil {
		return nil, err
	}

	if s.CanonicalURI != "" {
		out.ID = s.CanonicalURI
	}

	return out, nil
}

func exportValue(v value.Value) (*jsonschema.Schema, error) {
	v = v.Unwrap()

	if v.Kind() == value.KindBool {
		b, _ := v.BoolValue()
		if b {
			return &jsonschema.Schema{}, nil
		}

		return &jsonschema.Schema{Not: &jsonschema.Schema{}}, nil
	}

	obj, err := v.Object()
	if err != nil {
		return nil, fmt.Errorf("schemainterop: schema value must be an object or boolean: %w", err)
	}

	out := &jsonschema.Schema{}

	for _, e := range obj.Entries() {
		key, err := e.Key.StringValue()
		if err != nil {
			continue
		}

		if err := exportKeyword(out, key, e.Value); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func exportKeyword(out *jsonschema.Schema, key string, raw value.Value) error {
	switch key {
	case "$id":
		if s, err := raw.StringValue(); err == nil {
			out.ID = s
		}
	case "$schema":
		if s, err := raw.StringValue(); err == nil {
			out.Schema = s
		}
	case "$ref":
		if s, err := raw.StringValue(); err == nil {
			out.Ref = s
		}
	case "title":
		if s, err := raw.StringValue(); err == nil {
			out.Title = s
		}
	case "description":
		if s, err := raw.StringValue(); err == nil {
			out.Description = s
		}
	case "pattern":
		if s, err := raw.StringValue(); err == nil {
			out.Pattern = s
		}
	case "type":
		return exportType(out, raw)
	case "enum":
		elems, err := raw.ArrayValue()
		if err != nil {
			return nil
		}

		for _, el := range elems {
			a, err := valueToAny(el)
			if err != nil {
				return err
			}

			out.Enum = append(out.Enum, a)
		}
	case "const":
		a, err := valueToAny(raw)
		if err != nil {
			return err
		}

		out.Const = &a
	case "default":
		raw, err := valueToJSON(raw)
		if err != nil {
			return err
		}

		out.Default = raw
	case "multipleOf":
		f, err := toFloat(raw)
		if err == nil {
			out.MultipleOf = &f
		}
	case "minimum":
		f, err := toFloat(raw)
		if err == nil {
			out.Minimum = &f
		}
	case "maximum":
		f, err := toFloat(raw)
		if err == nil {
			out.Maximum = &f
		}
	case "exclusiveMinimum":
		f, err := toFloat(raw)
		if err == nil {
			out.ExclusiveMinimum = &f
		}
	case "exclusiveMaximum":
		f, err := toFloat(raw)
		if err == nil {
			out.ExclusiveMaximum = &f
		}
	case "minLength":
		n, err := toInt(raw)
		if err == nil {
			out.MinLength = &n
		}
	case "maxLength":
		n, err := toInt(raw)
		if err == nil {
			out.MaxLength = &n
		}
	case "minItems":
		n, err := toInt(raw)
		if err == nil {
			out.MinItems = &n
		}
	case "maxItems":
		n, err := toInt(raw)
		if err == nil {
			out.MaxItems = &n
		}
	case "uniqueItems":
		if b, err := raw.BoolValue(); err == nil {
			out.UniqueItems = b
		}
	case "items":
		sub, err := exportValue(raw)
		if err != nil {
			return err
		}

		out.Items = sub
	case "required":
		elems, err := raw.ArrayValue()
		if err != nil {
			return nil
		}

		for _, el := range elems {
			if s, err := el.StringValue(); err == nil {
				out.Required = append(out.Required, s)
			}
		}
	case "properties":
		return exportProperties(out, raw)
	case "additionalProperties":
		sub, err := exportValue(raw)
		if err != nil {
			return err
		}

		out.AdditionalProperties = sub
	case "allOf":
		schemas, err := exportSchemaArray(raw)
		if err != nil {
			return err
		}

		out.AllOf = schemas
	case "anyOf":
		schemas, err := exportSchemaArray(raw)
		if err != nil {
			return err
		}

		out.AnyOf = schemas
	case "oneOf":
		schemas, err := exportSchemaArray(raw)
		if err != nil {
			return err
		}

		out.OneOf = schemas
	case "not":
		sub, err := exportValue(raw)
		if err != nil {
			return err
		}

		out.Not = sub
	default:
		// $defs, $comment, $anchor, $dynamicAnchor, $dynamicRef, $vocabulary,
		// unevaluatedProperties, unevaluatedItems, patternProperties,
		// minContains/maxContains, minProperties/maxProperties, if/then/else,
		// and the bytes-validation/coding extension keywords have no
		// jsonschema-go equivalent and are dropped.
	}

	return nil
}

func exportType(out *jsonschema.Schema, raw value.Value) error {
	if s, err := raw.StringValue(); err == nil {
		out.Type = s
		return nil
	}

	elems, err := raw.ArrayValue()
	if err != nil {
		return nil
	}

	for _, el := range elems {
		if s, err := el.StringValue(); err == nil {
			out.Types = append(out.Types, s)
		}
	}

	return nil
}

func exportProperties(out *jsonschema.Schema, raw value.Value) error {
	obj, err := raw.Object()
	if err != nil {
		return nil
	}

	out.Properties = make(map[string]*jsonschema.Schema, obj.Len())

	for _, e := range obj.Entries() {
		name, err := e.Key.StringValue()
		if err != nil {
			continue
		}

		sub, err := exportValue(e.Value)
		if err != nil {
			return err
		}

		out.Properties[name] = sub
		out.PropertyOrder = append(out.PropertyOrder, name)
	}

	return nil
}

func exportSchemaArray(raw value.Value) ([]*jsonschema.Schema, error) {
	elems, err := raw.ArrayValue()
	if err != nil {
		return nil, nil
	}

	out := make([]*jsonschema.Schema, 0, len(elems))

	for _, el := range elems {
		sub, err := exportValue(el)
		if err != nil {
			return nil, err
		}

		out = append(out, sub)
	}

	return out, nil
}

func toFloat(v value.Value) (float64, error) {
	d, err := v.NumberValue()
	if err != nil {
		return 0, err
	}

	return strconv.ParseFloat(d.String(), 64)
}

func toInt(v value.Value) (int, error) {
	d, err := v.NumberValue()
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseFloat(d.String(), 64)
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

// valueToAny converts a value.Value to a plain Go value suitable for
// jsonschema.Schema's Enum/Const fields.
func valueToAny(v value.Value) (any, error) {
	raw, err := valueToJSON(v)
	if err != nil {
		return nil, err
	}

	var a any
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("schemainterop: decode literal: %w", err)
	}

	return a, nil
}

// valueToJSON renders v as a JSON literal, for use as jsonschema.Schema's
// Default field or as an intermediate for Enum/Const.
func valueToJSON(v value.Value) (json.RawMessage, error) {
	v = v.Unwrap()

	switch v.Kind() {
	case value.KindNull:
		return json.RawMessage("null"), nil
	case value.KindBool:
		b, _ := v.BoolValue()
		if b {
			return json.RawMessage("true"), nil
		}

		return json.RawMessage("false"), nil
	case value.KindNumber:
		d, _ := v.NumberValue()
		return json.RawMessage(d.String()), nil
	case value.KindString:
		s, _ := v.StringValue()
		return json.Marshal(s)
	case value.KindBytes:
		b, _ := v.BytesValue()
		return json.Marshal(b)
	case value.KindArray:
		elems, _ := v.ArrayValue()
		parts := make([]json.RawMessage, len(elems))

		for i, el := range elems {
			raw, err := valueToJSON(el)
			if err != nil {
				return nil, err
			}

			parts[i] = raw
		}

		return json.Marshal(parts)
	case value.KindObject:
		obj, _ := v.Object()
		m := make(map[string]json.RawMessage, obj.Len())

		for _, e := range obj.Entries() {
			key, err := e.Key.StringValue()
			if err != nil {
				continue
			}

			raw, err := valueToJSON(e.Value)
			if err != nil {
				return nil, err
			}

			m[key] = raw
		}

		return json.Marshal(m)
	default:
		return nil, fmt.Errorf("schemainterop: unsupported value kind %v", v.Kind())
	}
}
