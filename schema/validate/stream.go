package validate

import (
	"go.solidfoundation.dev/core/jsonstream"
	"go.solidfoundation.dev/core/value"
)

// StreamValidator validates a JSON document arriving in chunks. Per spec
// §4.5.1, validation is not incremental: a StreamValidator assembles a
// complete value.Value from the chunked input (via jsonstream.Parser and
// jsonstream.Assemble) and only runs the standard validator once the
// stream is finalized.
type StreamValidator struct {
	tok    *jsonstream.Tokenizer
	parser *jsonstream.Parser
	events []value.Event
	v      *Validator
}

// NewStreamValidator wraps v for chunked input.
func NewStreamValidator(v *Validator) *StreamValidator {
	tok := jsonstream.NewTokenizer()

	return &StreamValidator{tok: tok, parser: jsonstream.NewParser(tok), v: v}
}

// Feed appends a chunk of input. isFinal marks the last chunk.
func (s *StreamValidator) Feed(data []byte, isFinal bool) error {
	s.parser.Feed(data, isFinal)

	for {
		ev, ok, err := s.parser.Next()
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}

		s.events = append(s.events, ev)
	}
}

// Finish completes the stream and runs the standard validator against the
// assembled instance.
func (s *StreamValidator) Finish() (*Result, error) {
	instance, err := jsonstream.Assemble(s.events)
	if err != nil {
		return nil, err
	}

	return s.v.Validate(instance)
}
