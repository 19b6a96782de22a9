// Package jsonstream implements a byte-driven JSON tokenizer, a push
// parser that wraps it with a structural state machine emitting
// value.Event, and a symmetric streaming writer. Chunk boundaries never
// affect the result: feeding a document one byte at a time yields the
// same events as feeding it whole.
package jsonstream
