package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// ZoneOffset is a fixed offset from UTC, in the range ±86400 seconds
// (exclusive), stored with its (hour, minute, second) sign kept monotonic:
// if any component is negative, none may be positive.
type ZoneOffset struct {
	totalSeconds int
}

// UTC is the zero offset.
var UTC = ZoneOffset{}

// NewZoneOffset validates and constructs a ZoneOffset from total seconds.
func NewZoneOffset(totalSeconds int) (ZoneOffset, error) {
	const maxOffset = 86400

	if totalSeconds <= -maxOffset || totalSeconds >= maxOffset {
		return ZoneOffset{}, invalidComponent("zoneOffset", fmt.Sprintf("%d out of range ±%d", totalSeconds, maxOffset))
	}

	return ZoneOffset{totalSeconds: totalSeconds}, nil
}

// NewZoneOffsetHMS validates and constructs a ZoneOffset from components,
// requiring a monotonic sign: all of hour/minute/second must be <= 0 or
// all >= 0.
func NewZoneOffsetHMS(hour, minute, second int) (ZoneOffset, error) {
	signs := 0
	for _, c := range []int{hour, minute, second} {
		switch {
		case c > 0:
			signs |= 1
		case c < 0:
			signs |= 2
		}
	}

	if signs == 3 {
		return ZoneOffset{}, invalidComponent("zoneOffset", "hour/minute/second signs must agree")
	}

	return NewZoneOffset(hour*3600 + minute*60 + second)
}

// TotalSeconds returns the offset in seconds, positive east of UTC.
func (o ZoneOffset) TotalSeconds() int { return o.totalSeconds }

// Components returns the (hour, minute, second) breakdown, sign-matched to
// TotalSeconds.
func (o ZoneOffset) Components() (hour, minute, second int) {
	total := o.totalSeconds
	hour = total / 3600
	rem := total % 3600
	minute = rem / 60
	second = rem % 60

	return hour, minute, second
}

// String renders "Z" for UTC or "±HH:MM" / "±HH:MM:SS" (seconds included
// only when non-zero).
func (o ZoneOffset) String() string {
	if o.totalSeconds == 0 {
		return "Z"
	}

	sign := "+"

	total := o.totalSeconds
	if total < 0 {
		sign = "-"
		total = -total
	}

	h, m, s := total/3600, (total%3600)/60, total%60

	if s != 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
	}

	return fmt.Sprintf("%s%02d:%02d", sign, h, m)
}

// ParseZoneOffset parses "Z" or "±HH:MM(:SS)?".
func ParseZoneOffset(s string) (ZoneOffset, error) {
	if s == "Z" || s == "z" {
		return UTC, nil
	}

	if len(s) < 6 {
		return ZoneOffset{}, invalidComponent("zoneOffset", fmt.Sprintf("%q too short", s))
	}

	sign := 1

	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return ZoneOffset{}, invalidComponent("zoneOffset", fmt.Sprintf("%q must start with Z, +, or -", s))
	}

	parts := strings.Split(s[1:], ":")
	if len(parts) < 2 || len(parts) > 3 {
		return ZoneOffset{}, invalidComponent("zoneOffset", fmt.Sprintf("%q malformed", s))
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return ZoneOffset{}, invalidComponent("zoneOffset", fmt.Sprintf("%q malformed hour", s))
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return ZoneOffset{}, invalidComponent("zoneOffset", fmt.Sprintf("%q malformed minute", s))
	}

	second := 0

	if len(parts) == 3 {
		second, err = strconv.Atoi(parts[2])
		if err != nil {
			return ZoneOffset{}, invalidComponent("zoneOffset", fmt.Sprintf("%q malformed second", s))
		}
	}

	return NewZoneOffset(sign * (hour*3600 + minute*60 + second))
}

// OffsetDateTime is a LocalDateTime paired with a fixed ZoneOffset.
type OffsetDateTime struct {
	DateTime LocalDateTime
	Offset   ZoneOffset
}

// String renders "<date>T<time><offset>".
func (o OffsetDateTime) String() string {
	return o.DateTime.String() + o.Offset.String()
}

// Compare orders two OffsetDateTime values by the instant they denote,
// independent of the offset used to express them.
func (o OffsetDateTime) Compare(other OffsetDateTime) int {
	return o.ToInstant().Compare(other.ToInstant())
}

// ParseOffsetDateTime parses "<date>T<time><offset>".
func ParseOffsetDateTime(s string) (OffsetDateTime, error) {
	tIdx := strings.IndexByte(s, 'T')
	if tIdx < 0 {
		return OffsetDateTime{}, invalidComponent("offsetDateTime", "missing 'T' separator")
	}

	rest := s[tIdx+1:]

	offIdx := findOffsetStart(rest)
	if offIdx < 0 {
		return OffsetDateTime{}, invalidComponent("offsetDateTime", "missing offset")
	}

	dt, err := ParseLocalDateTime(s[:tIdx+1+offIdx])
	if err != nil {
		return OffsetDateTime{}, err
	}

	off, err := ParseZoneOffset(rest[offIdx:])
	if err != nil {
		return OffsetDateTime{}, err
	}

	return OffsetDateTime{DateTime: dt, Offset: off}, nil
}

// findOffsetStart finds the index within a time-plus-offset string where
// the offset begins (a 'Z'/'z', or a '+'/'-' that isn't part of the time).
func findOffsetStart(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'Z', 'z', '+':
			return i
		case '-':
			return i
		}
	}

	return -1
}

// ToInstant converts o to a calendar instant using its stored offset.
func (o OffsetDateTime) ToInstant() Instant {
	days := o.DateTime.Date.DaysSinceEpoch()
	secOfDay := int64(o.DateTime.Time.SecondsSinceMidnight())
	seconds := days*86400 + secOfDay - int64(o.Offset.TotalSeconds())

	return Instant{Seconds: seconds, Nanos: int32(o.DateTime.Time.Nanosecond())}
}
