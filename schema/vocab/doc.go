// Package vocab composes package keyword's behavior factories into the
// standard JSON Schema 2020-12 vocabularies and two Solid extension
// vocabularies (bytes-validation, coding), then assembles them into the
// build.MetaSchema values a build.Builder is constructed with.
package vocab
