package validate

import "go.solidfoundation.dev/core/value"

// OutputShape selects one of the four standard JSON Schema output formats
// from spec §4.5.
type OutputShape int

const (
	ShapeFlag OutputShape = iota
	ShapeBasic
	ShapeDetailed
	ShapeVerbose
)

// Output renders r as shape.
func (r *Result) Output(shape OutputShape) value.Value {
	switch shape {
	case ShapeBasic:
		return basicOutput(r)
	case ShapeDetailed:
		return detailedOutput(r)
	case ShapeVerbose:
		return verboseOutput(r)
	default:
		return flagOutput(r)
	}
}

func flagOutput(r *Result) value.Value {
	obj := value.NewObject()
	obj.SetString("valid", value.Bool(r.Valid))

	return value.ObjectValue(obj)
}

func basicOutput(r *Result) value.Value {
	obj := value.NewObject()
	obj.SetString("valid", value.Bool(r.Valid))

	if !r.Valid {
		var errs []value.Value

		for _, rec := range r.Records {
			if rec.Keyword == "" || rec.Valid {
				continue
			}

			errs = append(errs, errorEntry(rec))
		}

		obj.SetString("errors", value.Array(errs...))
	}

	return value.ObjectValue(obj)
}

func detailedOutput(r *Result) value.Value {
	v := basicOutput(r)
	obj, _ := v.Object()

	var anns []value.Value

	for _, rec := range r.Records {
		if !rec.HasAnnotation {
			continue
		}

		anns = append(anns, annotationEntry(rec))
	}

	obj.SetString("annotations", value.Array(anns...))

	return value.ObjectValue(obj)
}

func verboseOutput(r *Result) value.Value {
	obj := value.NewObject()
	obj.SetString("valid", value.Bool(r.Valid))

	var all []value.Value

	for _, rec := range r.Records {
		if rec.Keyword == "" {
			continue
		}

		e := value.NewObject()
		e.SetString("keywordLocation", value.String(rec.RelativeKeywordLocation))
		e.SetString("absoluteKeywordLocation", value.String(rec.AbsoluteKeywordLocation))
		e.SetString("instanceLocation", value.String(rec.InstanceLocation))
		e.SetString("valid", value.Bool(rec.Valid))

		if !rec.Valid {
			e.SetString("error", value.String(rec.Reason))
		}

		if rec.HasAnnotation {
			e.SetString("annotation", rec.Annotation)
		}

		all = append(all, value.ObjectValue(e))
	}

	obj.SetString("details", value.Array(all...))

	return value.ObjectValue(obj)
}

func errorEntry(rec Record) value.Value {
	e := value.NewObject()
	e.SetString("keywordLocation", value.String(rec.RelativeKeywordLocation))
	e.SetString("absoluteKeywordLocation", value.String(rec.AbsoluteKeywordLocation))
	e.SetString("instanceLocation", value.String(rec.InstanceLocation))
	e.SetString("error", value.String(rec.Reason))

	return value.ObjectValue(e)
}

func annotationEntry(rec Record) value.Value {
	e := value.NewObject()
	e.SetString("keywordLocation", value.String(rec.RelativeKeywordLocation))
	e.SetString("absoluteKeywordLocation", value.String(rec.AbsoluteKeywordLocation))
	e.SetString("instanceLocation", value.String(rec.InstanceLocation))
	e.SetString("annotation", rec.Annotation)

	return value.ObjectValue(e)
}
