package jsonstream

import (
	"fmt"
	"strconv"
	"strings"

	"go.solidfoundation.dev/core/value"
)

// TagShapeKind selects how the writer renders [value.EventTag] /
// [value.EventAnchor] / [value.EventAlias] decorations, which have no
// direct JSON representation (spec §4.3).
type TagShapeKind int

const (
	// TagUnwrapped drops tags/anchors/aliases entirely, writing only the
	// underlying value.
	TagUnwrapped TagShapeKind = iota
	// TagArray renders a tagged value as a two-element array [tag, value].
	TagArray
	// TagObject renders a tagged value as {TagKey: tag, ValueKey: value},
	// using TagShape.TagKey/ValueKey as the field names (default "tag"/
	// "value").
	TagObject
	// TagWrapped renders a tagged value as a single-entry object keyed by
	// the tag's own rendered text: {"mytag": value}. The tag must render
	// as a JSON string, or the writer fails with ErrInvalidTagType.
	TagWrapped
)

// TagShape configures tag rendering for [NewWriter].
type TagShape struct {
	Kind     TagShapeKind
	TagKey   string // used by TagObject; defaults to "tag"
	ValueKey string // used by TagObject; defaults to "value"
}

// WriterConfig configures a [Writer].
type WriterConfig struct {
	Tag           TagShape
	EscapeSlashes bool
}

type writerFrameKind int

const (
	writerFrameArray writerFrameKind = iota
	writerFrameObject
)

type writerFrame struct {
	kind       writerFrameKind
	wroteFirst bool
	expectKey  bool // object only: true when next event must be a key
	tag        *value.Value
}

// Writer renders a value.Event stream to JSON text. Events must follow the
// grammar a [Parser] would emit; violations return
// [InvalidEventSequenceError].
//
// A tag preceding an array or object is captured on that frame and, unless
// the configured TagShape is TagUnwrapped, the nested value is buffered on
// its own sink so it can be wrapped once EndArray/EndObject closes it —
// sinks form a stack paralleling the structural frame stack.
type Writer struct {
	sinks      []*strings.Builder
	cfg        WriterConfig
	stack      []writerFrame
	closed     bool
	pendingTag *value.Value
}

// NewWriter constructs a Writer with the given configuration.
func NewWriter(cfg WriterConfig) *Writer {
	return &Writer{sinks: []*strings.Builder{{}}, cfg: cfg}
}

// String returns everything written so far.
func (w *Writer) String() string { return w.sinks[0].String() }

func (w *Writer) sink() *strings.Builder { return w.sinks[len(w.sinks)-1] }

// Write consumes one event, appending to the internal buffer.
func (w *Writer) Write(ev value.Event) error {
	if w.closed {
		return &InvalidEventSequenceError{Detail: "write after root value closed"}
	}

	if top, ok := w.topObject(); ok {
		switch ev.Kind {
		case value.EventScalar, value.EventBeginArray, value.EventBeginObject:
			if top.expectKey {
				return &InvalidEventSequenceError{Detail: "value event in object key position"}
			}
		case value.EventEndObject:
			if !top.expectKey {
				return &InvalidEventSequenceError{Detail: "endObject after key without value"}
			}
		}
	}

	switch ev.Kind {
	case value.EventTag:
		t := ev.Value
		w.pendingTag = &t

		return nil

	case value.EventBeginArray:
		tag := w.takePendingTag()
		w.beforeValue()
		w.pushCaptureSink(tag)
		w.sink().WriteByte('[')
		w.stack = append(w.stack, writerFrame{kind: writerFrameArray, tag: tag})

		return nil

	case value.EventEndArray:
		if len(w.stack) == 0 || w.stack[len(w.stack)-1].kind != writerFrameArray {
			return &InvalidEventSequenceError{Detail: "endArray without matching beginArray"}
		}

		w.sink().WriteByte(']')
		frame := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		return w.closeFrame(frame)

	case value.EventBeginObject:
		tag := w.takePendingTag()
		w.beforeValue()
		w.pushCaptureSink(tag)
		w.sink().WriteByte('{')
		w.stack = append(w.stack, writerFrame{kind: writerFrameObject, expectKey: true, tag: tag})

		return nil

	case value.EventEndObject:
		if len(w.stack) == 0 || w.stack[len(w.stack)-1].kind != writerFrameObject {
			return &InvalidEventSequenceError{Detail: "endObject without matching beginObject"}
		}

		w.sink().WriteByte('}')
		frame := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		return w.closeFrame(frame)

	case value.EventKey:
		top, ok := w.topObject()
		if !ok || !top.expectKey {
			return &InvalidEventSequenceError{Detail: "key event outside object key position"}
		}

		if top.wroteFirst {
			w.sink().WriteByte(',')
		}

		s, err := ev.Value.StringValue()
		if err != nil {
			return fmt.Errorf("%w: object key must be string", ErrInvalidTagType)
		}

		w.writeJSONString(s)
		w.sink().WriteByte(':')
		top.expectKey = false

		return nil

	case value.EventScalar:
		return w.writeScalar(ev.Value)

	case value.EventAnchor, value.EventAlias, value.EventStyle:
		// No JSON representation; these events are silently absorbed
		// since the source model (YAML-derived) may emit them, but JSON
		// output has no place to put them.
		return nil

	default:
		return &InvalidEventSequenceError{Detail: fmt.Sprintf("unknown event kind %d", ev.Kind)}
	}
}

// takePendingTag returns and clears the tag captured from a preceding
// EventTag, or nil if the shape is TagUnwrapped (in which case there is no
// point capturing it separately at all).
func (w *Writer) takePendingTag() *value.Value {
	tag := w.pendingTag
	w.pendingTag = nil

	if w.cfg.Tag.Kind == TagUnwrapped {
		return nil
	}

	return tag
}

// pushCaptureSink starts a fresh buffer for a tagged array/object so its
// rendered text can be wrapped once closeFrame sees the matching end event.
func (w *Writer) pushCaptureSink(tag *value.Value) {
	if tag == nil {
		return
	}

	w.sinks = append(w.sinks, &strings.Builder{})
}

// closeFrame finishes a just-closed array/object frame: if it carried a
// tag, pop its capture sink, wrap the captured text per TagShape, and write
// the wrapped result into the (now current) enclosing sink.
func (w *Writer) closeFrame(frame writerFrame) error {
	if frame.tag == nil {
		w.afterValue()

		return nil
	}

	inner := w.sinks[len(w.sinks)-1].String()
	w.sinks = w.sinks[:len(w.sinks)-1]

	wrapped, err := w.wrapTagged(*frame.tag, inner)
	if err != nil {
		return err
	}

	w.sink().WriteString(wrapped)
	w.afterValue()

	return nil
}

func (w *Writer) topObject() (*writerFrame, bool) {
	if len(w.stack) == 0 {
		return nil, false
	}

	top := &w.stack[len(w.stack)-1]
	if top.kind != writerFrameObject {
		return nil, false
	}

	return top, true
}

// beforeValue emits the separator/key-colon bookkeeping required before a
// value (scalar or nested begin) appears. A second root value is rejected
// by Write through the closed flag, not here.
func (w *Writer) beforeValue() {
	if len(w.stack) == 0 {
		return
	}

	top := &w.stack[len(w.stack)-1]

	if top.kind == writerFrameArray {
		if top.wroteFirst {
			w.sink().WriteByte(',')
		}

		top.wroteFirst = true
	}
	// Object case: the comma and key were already written by the Key
	// event; nothing further needed here.
}

func (w *Writer) afterValue() {
	if len(w.stack) == 0 {
		w.closed = true

		return
	}

	if top := &w.stack[len(w.stack)-1]; top.kind == writerFrameObject {
		top.wroteFirst = true
		top.expectKey = true
	}
}

func (w *Writer) writeScalar(v value.Value) error {
	tag := w.takePendingTag()

	inner, err := w.renderValue(v)
	if err != nil {
		return err
	}

	rendered := inner
	if tag != nil {
		rendered, err = w.wrapTagged(*tag, inner)
		if err != nil {
			return err
		}
	}

	w.beforeValue()
	w.sink().WriteString(rendered)
	w.afterValue()

	return nil
}

// wrapTagged combines an already-rendered JSON fragment (inner, the body
// of a scalar or a closed array/object) with tag per the configured
// TagShape.
func (w *Writer) wrapTagged(tag value.Value, inner string) (string, error) {
	tagText, err := w.renderValue(tag)
	if err != nil {
		return "", err
	}

	switch w.cfg.Tag.Kind {
	case TagUnwrapped:
		return inner, nil
	case TagArray:
		return "[" + tagText + "," + inner + "]", nil
	case TagObject:
		tagKey := w.cfg.Tag.TagKey
		if tagKey == "" {
			tagKey = "tag"
		}

		valKey := w.cfg.Tag.ValueKey
		if valKey == "" {
			valKey = "value"
		}

		return "{" + jsonQuote(tagKey) + ":" + tagText + "," + jsonQuote(valKey) + ":" + inner + "}", nil
	case TagWrapped:
		s, err := tag.StringValue()
		if err != nil {
			return "", fmt.Errorf("%w: TagWrapped requires a string tag", ErrInvalidTagType)
		}

		return "{" + jsonQuote(s) + ":" + inner + "}", nil
	default:
		return "", fmt.Errorf("%w: unknown tag shape", ErrInvalidTagType)
	}
}

// renderValue renders a leaf Value (null/bool/number/string; bytes is
// rejected — callers must lower bytes to a string encoding before reaching
// the writer, since JSON has no bytes literal).
func (w *Writer) renderValue(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindNull:
		return "null", nil
	case value.KindBool:
		b, _ := v.BoolValue()
		if b {
			return "true", nil
		}

		return "false", nil
	case value.KindNumber:
		d, _ := v.NumberValue()
		if d.IsNaN() || d.IsInfinite() {
			return "", fmt.Errorf("%w: JSON cannot represent NaN/Infinity", ErrInvalidNumber)
		}

		return d.String(), nil
	case value.KindString:
		s, _ := v.StringValue()

		return w.quoteString(s), nil
	case value.KindBytes:
		return "", fmt.Errorf("%w: bytes value has no direct JSON representation", ErrInvalidTagType)
	default:
		return "", fmt.Errorf("%w: %s cannot appear as a scalar event", ErrInvalidTagType, v.Kind())
	}
}

func (w *Writer) writeJSONString(s string) {
	w.sink().WriteString(w.quoteString(s))
}

func (w *Writer) quoteString(s string) string {
	var b strings.Builder

	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '/':
			if w.cfg.EscapeSlashes {
				b.WriteString(`\/`)
			} else {
				b.WriteByte('/')
			}
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}

	b.WriteByte('"')

	return b.String()
}

func jsonQuote(s string) string {
	return strconv.Quote(s)
}
