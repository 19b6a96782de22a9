package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// LocalTime is a validated time-of-day with nanosecond precision.
// Construction accepts second == 60 to represent a leap-second input; it is
// rolled over to 0 and the caller should advance the associated date by one
// day (see [ParseLocalTimeReportingRollover]).
type LocalTime struct {
	hour, minute, second int
	nanosecond           int
}

// NewLocalTime validates and constructs a LocalTime. second == 60 is
// accepted only when hour == 23 and minute == 59, and is rolled over to
// 00:00:00 of the following day; use [NewLocalTimeReportingRollover] to
// observe whether rollover occurred.
func NewLocalTime(hour, minute, second, nanosecond int) (LocalTime, error) {
	t, _, err := NewLocalTimeReportingRollover(hour, minute, second, nanosecond)

	return t, err
}

// NewLocalTimeReportingRollover is [NewLocalTime] plus a rollover flag.
func NewLocalTimeReportingRollover(hour, minute, second, nanosecond int) (t LocalTime, rolledOver bool, err error) {
	if hour < 0 || hour > 23 {
		return LocalTime{}, false, invalidComponent("hour", fmt.Sprintf("%d not in 0..23", hour))
	}

	if minute < 0 || minute > 59 {
		return LocalTime{}, false, invalidComponent("minute", fmt.Sprintf("%d not in 0..59", minute))
	}

	if nanosecond < 0 || nanosecond > 999_999_999 {
		return LocalTime{}, false, invalidComponent("nanosecond", fmt.Sprintf("%d not in 0..999999999", nanosecond))
	}

	if second == 60 {
		if hour != 23 || minute != 59 {
			return LocalTime{}, false, invalidComponent("second", "leap second 60 only valid at 23:59:60")
		}

		return LocalTime{hour: 0, minute: 0, second: 0, nanosecond: nanosecond}, true, nil
	}

	if second < 0 || second > 59 {
		return LocalTime{}, false, invalidComponent("second", fmt.Sprintf("%d not in 0..59", second))
	}

	return LocalTime{hour: hour, minute: minute, second: second, nanosecond: nanosecond}, false, nil
}

// Hour, Minute, Second, and Nanosecond return the components.
func (t LocalTime) Hour() int       { return t.hour }
func (t LocalTime) Minute() int     { return t.minute }
func (t LocalTime) Second() int     { return t.second }
func (t LocalTime) Nanosecond() int { return t.nanosecond }

// SecondsSinceMidnight returns the whole seconds elapsed since 00:00:00.
func (t LocalTime) SecondsSinceMidnight() int {
	return t.hour*3600 + t.minute*60 + t.second
}

// Compare returns -1, 0, or 1.
func (t LocalTime) Compare(other LocalTime) int {
	a := int64(t.SecondsSinceMidnight())*1e9 + int64(t.nanosecond)
	b := int64(other.SecondsSinceMidnight())*1e9 + int64(other.nanosecond)

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String renders HH:MM:SS(.nnnnnnnnn)?, omitting the fraction when zero.
func (t LocalTime) String() string {
	base := fmt.Sprintf("%02d:%02d:%02d", t.hour, t.minute, t.second)
	if t.nanosecond == 0 {
		return base
	}

	frac := fmt.Sprintf("%09d", t.nanosecond)
	frac = strings.TrimRight(frac, "0")

	return base + "." + frac
}

// ParseLocalTime parses HH:MM:SS(.frac)?, rejecting second == 60 outside
// 23:59. Use [ParseLocalTimeReportingRollover] to accept and report leap
// second rollover.
func ParseLocalTime(s string) (LocalTime, error) {
	t, _, err := ParseLocalTimeReportingRollover(s)

	return t, err
}

// ParseLocalTimeReportingRollover parses HH:MM:SS(.frac)? per spec §6.5,
// accepting second == 60 only at 23:59:60 and reporting whether it rolled
// the time forward to the next day's 00:00:00.
func ParseLocalTimeReportingRollover(s string) (t LocalTime, rolledOver bool, err error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return LocalTime{}, false, invalidComponent("time", fmt.Sprintf("%q does not match HH:MM:SS", s))
	}

	hour, herr := strconv.Atoi(parts[0])
	minute, merr := strconv.Atoi(parts[1])

	secStr := parts[2]

	nanosecond := 0

	if dot := strings.IndexByte(secStr, '.'); dot >= 0 {
		fracStr := secStr[dot+1:]
		secStr = secStr[:dot]

		nanosecond, err = parseFraction(fracStr)
		if err != nil {
			return LocalTime{}, false, err
		}
	}

	second, serr := strconv.Atoi(secStr)

	if herr != nil || merr != nil || serr != nil || len(parts[0]) != 2 || len(parts[1]) != 2 || len(secStr) != 2 {
		return LocalTime{}, false, invalidComponent("time", fmt.Sprintf("%q does not match HH:MM:SS", s))
	}

	return NewLocalTimeReportingRollover(hour, minute, second, nanosecond)
}

func parseFraction(s string) (int, error) {
	if s == "" || len(s) > 9 {
		return 0, invalidComponent("nanosecond", fmt.Sprintf("bad fraction %q", s))
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, invalidComponent("nanosecond", fmt.Sprintf("bad fraction %q", s))
		}
	}

	padded := s + strings.Repeat("0", 9-len(s))

	n, err := strconv.Atoi(padded)
	if err != nil {
		return 0, invalidComponent("nanosecond", fmt.Sprintf("bad fraction %q", s))
	}

	return n, nil
}
