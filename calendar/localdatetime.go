package calendar

import (
	"strings"
)

// LocalDateTime is a (date, time) pair without a zone.
type LocalDateTime struct {
	Date LocalDate
	Time LocalTime
}

// NewLocalDateTime pairs a date and time.
func NewLocalDateTime(date LocalDate, time LocalTime) LocalDateTime {
	return LocalDateTime{Date: date, Time: time}
}

// Compare returns -1, 0, or 1, comparing date first, then time.
func (dt LocalDateTime) Compare(other LocalDateTime) int {
	if c := dt.Date.Compare(other.Date); c != 0 {
		return c
	}

	return dt.Time.Compare(other.Time)
}

// String renders "<date>T<time>".
func (dt LocalDateTime) String() string {
	return dt.Date.String() + "T" + dt.Time.String()
}

// ParseLocalDateTime parses "<date>T<time>".
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	idx := strings.IndexByte(s, 'T')
	if idx < 0 {
		return LocalDateTime{}, invalidComponent("datetime", "missing 'T' separator")
	}

	date, err := ParseLocalDate(s[:idx])
	if err != nil {
		return LocalDateTime{}, err
	}

	t, rolled, err := ParseLocalTimeReportingRollover(s[idx+1:])
	if err != nil {
		return LocalDateTime{}, err
	}

	if rolled {
		date = date.PlusDays(1)
	}

	return NewLocalDateTime(date, t), nil
}

// PlusSeconds shifts dt by n seconds, carrying across day boundaries.
func (dt LocalDateTime) PlusSeconds(n int64) LocalDateTime {
	total := int64(dt.Time.SecondsSinceMidnight()) + n
	days := floorDiv(total, 86400)
	secOfDay := total - days*86400

	h := int(secOfDay / 3600)
	m := int((secOfDay % 3600) / 60)
	s := int(secOfDay % 60)

	newTime, _ := NewLocalTime(h, m, s, dt.Time.Nanosecond())

	return NewLocalDateTime(dt.Date.PlusDays(days), newTime)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
