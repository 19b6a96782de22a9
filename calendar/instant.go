package calendar

import "fmt"

// Instant is a point on the UTC timeline, stored as whole seconds since the
// epoch plus a nanosecond remainder in [0, 999999999]. The spec models this
// quantity as a signed 128-bit nanosecond count; Go has no native int128,
// and seconds+nanos covers the same representable range for any instant
// derived from calendar arithmetic without the overflow risk of a manual
// 128-bit multiply, so that is the representation used here.
type Instant struct {
	Seconds int64
	Nanos   int32
}

// UnixEpoch is the zero Instant, 1970-01-01T00:00:00Z.
var UnixEpoch = Instant{}

// Add returns the instant shifted by d.
func (i Instant) Add(d Duration) Instant {
	sec := i.Seconds + d.Seconds
	nanos := i.Nanos + d.Nanos

	if nanos >= 1_000_000_000 {
		sec++
		nanos -= 1_000_000_000
	} else if nanos < 0 {
		sec--
		nanos += 1_000_000_000
	}

	return Instant{Seconds: sec, Nanos: nanos}
}

// Sub returns the duration from other to i (i - other).
func (i Instant) Sub(other Instant) Duration {
	sec := i.Seconds - other.Seconds
	nanos := i.Nanos - other.Nanos

	if nanos < 0 {
		sec--
		nanos += 1_000_000_000
	}

	return NewDuration(sec, nanos)
}

// Compare returns -1, 0, or 1.
func (i Instant) Compare(other Instant) int {
	switch {
	case i.Seconds < other.Seconds:
		return -1
	case i.Seconds > other.Seconds:
		return 1
	case i.Nanos < other.Nanos:
		return -1
	case i.Nanos > other.Nanos:
		return 1
	default:
		return 0
	}
}

// AtOffset converts i to an OffsetDateTime under the given fixed offset.
func (i Instant) AtOffset(offset ZoneOffset) OffsetDateTime {
	localSeconds := i.Seconds + int64(offset.TotalSeconds())
	days := floorDiv(localSeconds, 86400)
	secOfDay := int(localSeconds - days*86400)

	date := LocalDateFromEpochDay(days)
	t, _ := NewLocalTime(secOfDay/3600, (secOfDay%3600)/60, secOfDay%60, int(i.Nanos))

	return OffsetDateTime{DateTime: NewLocalDateTime(date, t), Offset: offset}
}

// String renders the instant as an OffsetDateTime at UTC.
func (i Instant) String() string {
	return i.AtOffset(UTC).String()
}

// Duration is a signed span of time, stored as whole seconds plus a
// nanosecond remainder with the same sign as Seconds (or, when Seconds is
// zero, the sign of the whole duration). See [Instant] for why this is not
// a literal 128-bit integer.
type Duration struct {
	Seconds int64
	Nanos   int32
}

// NewDuration constructs a Duration from seconds and a nanosecond
// remainder, normalizing Nanos into [-999999999, 999999999] with a sign
// matching Seconds.
func NewDuration(seconds int64, nanos int32) Duration {
	for nanos >= 1_000_000_000 {
		seconds++
		nanos -= 1_000_000_000
	}

	for nanos <= -1_000_000_000 {
		seconds--
		nanos += 1_000_000_000
	}

	if seconds > 0 && nanos < 0 {
		seconds--
		nanos += 1_000_000_000
	} else if seconds < 0 && nanos > 0 {
		seconds++
		nanos -= 1_000_000_000
	}

	return Duration{Seconds: seconds, Nanos: nanos}
}

// ZeroDuration is the empty span.
var ZeroDuration = Duration{}

// Negate returns -d.
func (d Duration) Negate() Duration {
	return NewDuration(-d.Seconds, -d.Nanos)
}

// IsZero reports whether d is the zero duration.
func (d Duration) IsZero() bool {
	return d.Seconds == 0 && d.Nanos == 0
}

// IsNegative reports whether d is less than zero.
func (d Duration) IsNegative() bool {
	return d.Seconds < 0 || (d.Seconds == 0 && d.Nanos < 0)
}

// Compare returns -1, 0, or 1.
func (d Duration) Compare(other Duration) int {
	switch {
	case d.Seconds < other.Seconds:
		return -1
	case d.Seconds > other.Seconds:
		return 1
	case d.Nanos < other.Nanos:
		return -1
	case d.Nanos > other.Nanos:
		return 1
	default:
		return 0
	}
}

// String renders d in ISO 8601 duration form, e.g. "PT1H30M5.5S".
func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}

	sign := ""
	sec, nanos := d.Seconds, int64(d.Nanos)

	if d.IsNegative() {
		sign = "-"
		sec, nanos = -sec, -nanos
	}

	hours := sec / 3600
	sec -= hours * 3600
	minutes := sec / 60
	sec -= minutes * 60

	out := sign + "PT"
	if hours != 0 {
		out += fmt.Sprintf("%dH", hours)
	}

	if minutes != 0 {
		out += fmt.Sprintf("%dM", minutes)
	}

	if sec != 0 || nanos != 0 || (hours == 0 && minutes == 0) {
		if nanos != 0 {
			frac := fmt.Sprintf("%09d", nanos)
			for len(frac) > 0 && frac[len(frac)-1] == '0' {
				frac = frac[:len(frac)-1]
			}

			out += fmt.Sprintf("%d.%sS", sec, frac)
		} else {
			out += fmt.Sprintf("%dS", sec)
		}
	}

	return out
}
