package jsonstream

import (
	"fmt"

	"go.solidfoundation.dev/core/bignum"
	"go.solidfoundation.dev/core/value"
)

type frameKind int

const (
	frameRoot frameKind = iota
	frameArray
	frameObject
)

// objectPhase tracks where in the (key value)* grammar an object frame
// currently sits.
type objectPhase int

const (
	objectExpectKeyOrEnd objectPhase = iota
	objectExpectColon
	objectExpectValue
	objectExpectCommaOrEnd
)

type arrayPhase int

const (
	arrayExpectValueOrEnd arrayPhase = iota
	arrayExpectCommaOrEnd
)

type frame struct {
	kind     frameKind
	objPhase objectPhase
	arrPhase arrayPhase
	seenAny  bool
}

// Parser wraps a Tokenizer with the structural state machine of the JSON
// grammar (spec §4.2), emitting value.Event in the same linear shape the
// writer consumes. A single root value is permitted; trailing non-whitespace
// bytes are an error once that value closes.
type Parser struct {
	tok     *Tokenizer
	stack   []frame
	done    bool
	pending []value.Event
}

// NewParser constructs a Parser reading from tok.
func NewParser(tok *Tokenizer) *Parser {
	return &Parser{tok: tok, stack: []frame{{kind: frameRoot}}}
}

// Feed forwards data to the underlying tokenizer.
func (p *Parser) Feed(data []byte, isFinal bool) {
	p.tok.Feed(data, isFinal)
}

// Next returns the next structural event, or ok=false if more input is
// required.
func (p *Parser) Next() (value.Event, bool, error) {
	if len(p.pending) > 0 {
		ev := p.pending[0]
		p.pending = p.pending[1:]

		return ev, true, nil
	}

	if p.done {
		return value.Event{}, false, nil
	}

	tok, ok, err := p.tok.Next()
	if err != nil {
		return value.Event{}, false, err
	}

	if !ok {
		return value.Event{}, false, nil
	}

	return p.step(tok)
}

func (p *Parser) top() *frame { return &p.stack[len(p.stack)-1] }

func (p *Parser) step(tok Token) (value.Event, bool, error) {
	top := p.top()

	switch top.kind {
	case frameRoot:
		if top.seenAny {
			return value.Event{}, false, &InvalidStructureError{Detail: "unexpected token after root value"}
		}

		top.seenAny = true

		return p.valueEvent(tok, true)

	case frameArray:
		switch top.arrPhase {
		case arrayExpectValueOrEnd:
			if tok.Kind == TokenEndArray {
				p.stack = p.stack[:len(p.stack)-1]

				return value.EndArrayEvent(), true, nil
			}

			top.arrPhase = arrayExpectCommaOrEnd

			return p.valueEvent(tok, false)

		default: // arrayExpectCommaOrEnd
			switch tok.Kind {
			case TokenEndArray:
				p.stack = p.stack[:len(p.stack)-1]

				return value.EndArrayEvent(), true, nil
			case TokenElementSeparator:
				top.arrPhase = arrayExpectValueOrEnd

				return p.Next()
			default:
				return value.Event{}, false, &InvalidStructureError{Detail: "expected ',' or ']' in array"}
			}
		}

	default: // frameObject
		switch top.objPhase {
		case objectExpectKeyOrEnd:
			if tok.Kind == TokenEndObject {
				p.stack = p.stack[:len(p.stack)-1]

				return value.EndObjectEvent(), true, nil
			}

			if tok.Kind != TokenScalar || tok.ScalarKind != ScalarString {
				return value.Event{}, false, &InvalidStructureError{Detail: "expected string key in object"}
			}

			top.objPhase = objectExpectColon

			return value.KeyEvent(value.String(tok.Str)), true, nil

		case objectExpectColon:
			if tok.Kind != TokenPairSeparator {
				return value.Event{}, false, &InvalidStructureError{Detail: "expected ':' after object key"}
			}

			top.objPhase = objectExpectValue

			return p.Next()

		case objectExpectValue:
			top.objPhase = objectExpectCommaOrEnd

			return p.valueEvent(tok, false)

		default: // objectExpectCommaOrEnd
			switch tok.Kind {
			case TokenEndObject:
				p.stack = p.stack[:len(p.stack)-1]

				return value.EndObjectEvent(), true, nil
			case TokenElementSeparator:
				top.objPhase = objectExpectKeyOrEnd

				return p.Next()
			default:
				return value.Event{}, false, &InvalidStructureError{Detail: "expected ',' or '}' in object"}
			}
		}
	}
}

// valueEvent handles a token appearing in value position: either a scalar
// (emitted directly) or the opening of a nested array/object (pushing a
// frame). isRoot marks the root frame done once a scalar closes it.
func (p *Parser) valueEvent(tok Token, isRoot bool) (value.Event, bool, error) {
	switch tok.Kind {
	case TokenBeginArray:
		p.stack = append(p.stack, frame{kind: frameArray})

		return value.BeginArrayEvent(), true, nil

	case TokenBeginObject:
		p.stack = append(p.stack, frame{kind: frameObject})

		return value.BeginObjectEvent(), true, nil

	case TokenScalar:
		if isRoot {
			p.done = true
		}

		v, err := scalarValue(tok)
		if err != nil {
			return value.Event{}, false, err
		}

		return value.ScalarEvent(v), true, nil

	default:
		return value.Event{}, false, &InvalidStructureError{Detail: fmt.Sprintf("unexpected token kind %d in value position", tok.Kind)}
	}
}

func scalarValue(tok Token) (value.Value, error) {
	switch tok.ScalarKind {
	case ScalarNull:
		return value.Null(), nil
	case ScalarBool:
		return value.Bool(tok.Bool), nil
	case ScalarString:
		return value.String(tok.Str), nil
	case ScalarNumber:
		d, err := bignum.ParseBigDecimal(tok.NumberText)
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
		}

		return value.Number(d), nil
	default:
		return value.Value{}, fmt.Errorf("%w: unknown scalar kind", ErrInvalidToken)
	}
}

// ParseAll drains the parser against a complete, non-streamed document,
// returning every event in order.
func ParseAll(data []byte) ([]value.Event, error) {
	tok := NewTokenizer()
	p := NewParser(tok)
	p.Feed(data, true)

	var events []value.Event

	for {
		ev, ok, err := p.Next()
		if err != nil {
			return nil, err
		}

		if !ok {
			if err := tok.Finalize(); err != nil {
				return nil, err
			}

			return events, nil
		}

		events = append(events, ev)
	}
}
