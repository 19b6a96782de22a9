package calendar

// DaysSinceEpoch converts a proleptic Gregorian (year, month, day) to a
// signed day count relative to 1970-01-01 (day 0), using Howard Hinnant's
// March-based "days_from_civil" algorithm. Valid for any year representable
// in an int64 without overflowing the era arithmetic; callers are expected
// to have already validated (month, day) via [NewLocalDate].
func DaysSinceEpoch(year int64, month, day int) int64 {
	y := year
	if month <= 2 {
		y--
	}

	var era int64
	if y >= 0 {
		era = y / 400
	} else {
		era = (y - 399) / 400
	}

	yoe := y - era*400 // [0, 399]

	mAdj := int64(month) + boolToInt64(month <= 2)*12 - 3 // shifts Jan/Feb to end

	doy := (153*mAdj+2)/5 + int64(day) - 1 // [0, 365]

	doe := yoe*365 + yoe/4 - yoe/100 + doy // [0, 146096]

	return era*146097 + doe - 719468
}

// LocalDateFromDays converts a signed day count relative to 1970-01-01
// back into a proleptic Gregorian (year, month, day) triple, the exact
// inverse of [DaysSinceEpoch].
func LocalDateFromDays(days int64) (year int64, month, day int) {
	z := days + 719468

	var era int64
	if z >= 0 {
		era = z / 146097
	} else {
		era = (z - 146096) / 146097
	}

	doe := z - era*146097 // [0, 146096]

	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365 // [0, 399]

	y := yoe + era*400

	doy := doe - (365*yoe + yoe/4 - yoe/100) // [0, 365]

	mp := (5*doy + 2) / 153 // [0, 11]

	d := doy - (153*mp+2)/5 + 1 // [1, 31]

	var m int64
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}

	if m <= 2 {
		y++
	}

	return y, int(m), int(d)
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}

	return 0
}

// IsLeapYear reports whether year is a leap year in the proleptic
// Gregorian calendar.
func IsLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// cumulativeDaysBeforeMonth[m] is the number of days in a non-leap year
// before month m+1 (1-indexed access via cumulativeDaysBeforeMonth[month-1]).
var cumulativeDaysBeforeMonth = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

// DaysInMonth returns the number of days in (year, month).
func DaysInMonth(year int64, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}

	const daysInMonth = "\x1f\x1c\x1f\x1e\x1f\x1e\x1f\x1f\x1e\x1f\x1e\x1f"

	return int(daysInMonth[month-1])
}

// DayOfYear returns the 1-based ordinal day within year for (month, day),
// via the cumulative-day lookup table (never a closed-form formula: a
// previously shipped closed-form produced incorrect March values in leap
// years and must not be reintroduced).
func DayOfYear(year int64, month, day int) int {
	before := cumulativeDaysBeforeMonth[month-1]
	if month > 2 && IsLeapYear(year) {
		before++
	}

	return before + day
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int64) int {
	if IsLeapYear(year) {
		return 366
	}

	return 365
}
