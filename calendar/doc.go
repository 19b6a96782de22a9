// Package calendar implements the proleptic Gregorian calendar kernel: date
// and time components, a March-based era algorithm for
// day-count/date conversion, and the ISO 8601 parsing grammars for dates,
// times, offsets, and periods.
//
// Two calendar system variants are supported ([ISO8601] and [Gregorian]);
// they share every date/day-count calculation and differ only in week and
// day-of-week numbering (see [DayOfWeek]).
package calendar
