// Package tzif parses TZif v1-v4 time zone data (RFC 9636) into ZoneRules
// that answer offset and designation queries, and a lazy TzDb registry over
// a zoneinfo directory tree. ZonedDateTime and the ambiguous/skipped local
// time resolution policies also live here rather than in package calendar,
// since they query zone rules that only this package computes.
package tzif
