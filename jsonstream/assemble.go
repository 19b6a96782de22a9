package jsonstream

import "go.solidfoundation.dev/core/value"

// Assemble consumes a complete, well-formed event sequence (as produced by
// Parser or ParseAll) and rebuilds the single root value.Value it
// describes. It is the inverse of a Writer: where Writer renders events to
// JSON text, Assemble renders them to an in-memory Value, which is what
// the schema validator operates on.
func Assemble(events []value.Event) (value.Value, error) {
	a := &assembler{}

	for _, ev := range events {
		if err := a.feed(ev); err != nil {
			return value.Value{}, err
		}
	}

	return a.finish()
}

// Events renders v as the linear event sequence Assemble would consume to
// reproduce it: the true inverse of Assemble, so a Writer fed Events(v)
// renders v's JSON text directly without an intervening Parser.
func Events(v value.Value) []value.Event {
	var out []value.Event

	appendEvents(&out, v)

	return out
}

func appendEvents(out *[]value.Event, v value.Value) {
	if v.Kind() == value.KindTagged {
		tag, inner, err := v.TaggedParts()
		if err == nil {
			*out = append(*out, value.TagEvent(tag))
			appendEvents(out, inner)

			return
		}
	}

	switch v.Kind() {
	case value.KindArray:
		elems, _ := v.ArrayValue()
		*out = append(*out, value.BeginArrayEvent())

		for _, e := range elems {
			appendEvents(out, e)
		}

		*out = append(*out, value.EndArrayEvent())
	case value.KindObject:
		obj, _ := v.Object()
		*out = append(*out, value.BeginObjectEvent())

		for _, e := range obj.Entries() {
			*out = append(*out, value.KeyEvent(e.Key))
			appendEvents(out, e.Value)
		}

		*out = append(*out, value.EndObjectEvent())
	default:
		*out = append(*out, value.ScalarEvent(v))
	}
}

type assemblerFrameKind int

const (
	assemblerFrameArray assemblerFrameKind = iota
	assemblerFrameObject
)

type assemblerFrame struct {
	kind    assemblerFrameKind
	elems   []value.Value
	pendKey *value.Value
	pairs   []value.Entry
	pendTag *value.Value
}

type assembler struct {
	stack   []*assemblerFrame
	pendTag *value.Value
	root    *value.Value
}

func (a *assembler) feed(ev value.Event) error {
	switch ev.Kind {
	case value.EventTag:
		tag := ev.Value
		a.pendTag = &tag

		return nil
	case value.EventBeginArray:
		f := &assemblerFrame{kind: assemblerFrameArray, pendTag: a.takeTag()}
		a.stack = append(a.stack, f)

		return nil
	case value.EventEndArray:
		f, err := a.pop(assemblerFrameArray)
		if err != nil {
			return err
		}

		v := value.Array(f.elems...)
		if f.pendTag != nil {
			v = value.Tagged(*f.pendTag, v)
		}

		a.emit(v)

		return nil
	case value.EventBeginObject:
		f := &assemblerFrame{kind: assemblerFrameObject, pendTag: a.takeTag()}
		a.stack = append(a.stack, f)

		return nil
	case value.EventEndObject:
		f, err := a.pop(assemblerFrameObject)
		if err != nil {
			return err
		}

		v := value.ObjectValue(value.NewObjectFromPairs(f.pairs...))
		if f.pendTag != nil {
			v = value.Tagged(*f.pendTag, v)
		}

		a.emit(v)

		return nil
	case value.EventKey:
		if len(a.stack) == 0 || a.stack[len(a.stack)-1].kind != assemblerFrameObject {
			return &InvalidEventSequenceError{Detail: "key event outside an object"}
		}

		k := ev.Value
		a.stack[len(a.stack)-1].pendKey = &k

		return nil
	case value.EventScalar:
		v := ev.Value
		if tag := a.takeTag(); tag != nil {
			v = value.Tagged(*tag, v)
		}

		a.emit(v)

		return nil
	case value.EventAnchor, value.EventAlias, value.EventStyle:
		// No Value representation; these carry no data the assembled tree
		// preserves.
		return nil
	default:
		return &InvalidEventSequenceError{Detail: "unrecognised event kind"}
	}
}

func (a *assembler) takeTag() *value.Value {
	t := a.pendTag
	a.pendTag = nil

	return t
}

func (a *assembler) pop(want assemblerFrameKind) (*assemblerFrame, error) {
	if len(a.stack) == 0 {
		return nil, &InvalidEventSequenceError{Detail: "unbalanced end event"}
	}

	f := a.stack[len(a.stack)-1]
	if f.kind != want {
		return nil, &InvalidEventSequenceError{Detail: "mismatched begin/end event"}
	}

	a.stack = a.stack[:len(a.stack)-1]

	return f, nil
}

func (a *assembler) emit(v value.Value) {
	if len(a.stack) == 0 {
		a.root = &v

		return
	}

	top := a.stack[len(a.stack)-1]

	switch top.kind {
	case assemblerFrameArray:
		top.elems = append(top.elems, v)
	case assemblerFrameObject:
		if top.pendKey == nil {
			top.elems = append(top.elems, v) // defensive; should not happen for well-formed input
			return
		}

		top.pairs = append(top.pairs, value.Entry{Key: *top.pendKey, Value: v})
		top.pendKey = nil
	}
}

func (a *assembler) finish() (value.Value, error) {
	if len(a.stack) != 0 || a.root == nil {
		return value.Value{}, &InvalidEventSequenceError{Detail: "incomplete event sequence"}
	}

	return *a.root, nil
}
