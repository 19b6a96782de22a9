package jsonstream_test

import (
	"testing"

	"go.solidfoundation.dev/core/jsonstream"
	"go.solidfoundation.dev/core/value"
)

func writeAll(t *testing.T, cfg jsonstream.WriterConfig, events []value.Event) string {
	t.Helper()

	w := jsonstream.NewWriter(cfg)

	for _, ev := range events {
		if err := w.Write(ev); err != nil {
			t.Fatalf("Write(%+v): %v", ev, err)
		}
	}

	return w.String()
}

func TestWriterRoundTripsParserOutput(t *testing.T) {
	doc := `{"a":[1,2.5,"x",true,null]}`

	events, err := jsonstream.ParseAll([]byte(doc))
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}

	got := writeAll(t, jsonstream.WriterConfig{}, events)
	if got != doc {
		t.Errorf("round trip = %q, want %q", got, doc)
	}
}

func TestWriterEscapesControlAndQuote(t *testing.T) {
	events := []value.Event{
		value.ScalarEvent(value.String("a\"b\nc")),
	}

	got := writeAll(t, jsonstream.WriterConfig{}, events)

	want := `"a\"b\nc"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriterTagShapes(t *testing.T) {
	events := []value.Event{
		value.TagEvent(value.String("mytag")),
		value.ScalarEvent(value.Int(5)),
	}

	arr := writeAll(t, jsonstream.WriterConfig{Tag: jsonstream.TagShape{Kind: jsonstream.TagArray}}, events)
	if arr != `["mytag",5]` {
		t.Errorf("array shape = %q", arr)
	}

	obj := writeAll(t, jsonstream.WriterConfig{Tag: jsonstream.TagShape{Kind: jsonstream.TagObject}}, events)
	if obj != `{"tag":"mytag","value":5}` {
		t.Errorf("object shape = %q", obj)
	}

	wrapped := writeAll(t, jsonstream.WriterConfig{Tag: jsonstream.TagShape{Kind: jsonstream.TagWrapped}}, events)
	if wrapped != `{"mytag":5}` {
		t.Errorf("wrapped shape = %q", wrapped)
	}

	unwrapped := writeAll(t, jsonstream.WriterConfig{Tag: jsonstream.TagShape{Kind: jsonstream.TagUnwrapped}}, events)
	if unwrapped != `5` {
		t.Errorf("unwrapped shape = %q", unwrapped)
	}
}

func TestWriterTagBeforeArray(t *testing.T) {
	events := []value.Event{
		value.TagEvent(value.String("mytag")),
		value.BeginArrayEvent(),
		value.ScalarEvent(value.Int(1)),
		value.ScalarEvent(value.Int(2)),
		value.EndArrayEvent(),
	}

	got := writeAll(t, jsonstream.WriterConfig{Tag: jsonstream.TagShape{Kind: jsonstream.TagObject}}, events)
	if got != `{"tag":"mytag","value":[1,2]}` {
		t.Errorf("got %q", got)
	}

	unwrapped := writeAll(t, jsonstream.WriterConfig{}, events)
	if unwrapped != `[1,2]` {
		t.Errorf("unwrapped = %q", unwrapped)
	}
}

func TestWriterRejectsSecondRootValue(t *testing.T) {
	w := jsonstream.NewWriter(jsonstream.WriterConfig{})

	if err := w.Write(value.ScalarEvent(value.Int(1))); err != nil {
		t.Fatalf("first write: %v", err)
	}

	if err := w.Write(value.ScalarEvent(value.Int(2))); err == nil {
		t.Fatal("expected error writing a second root value")
	}
}

func TestWriterEscapeSlashesOption(t *testing.T) {
	events := []value.Event{value.ScalarEvent(value.String("a/b"))}

	plain := writeAll(t, jsonstream.WriterConfig{}, events)
	if plain != `"a/b"` {
		t.Errorf("plain = %q", plain)
	}

	escaped := writeAll(t, jsonstream.WriterConfig{EscapeSlashes: true}, events)
	if escaped != `"a\/b"` {
		t.Errorf("escaped = %q", escaped)
	}
}
