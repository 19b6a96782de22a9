package calendar

import "testing"

func TestDayOfWeekEpoch(t *testing.T) {
	epoch := LocalDateFromEpochDay(0)

	if got := Gregorian.DayOfWeek(epoch); got != 4 {
		t.Errorf("Gregorian.DayOfWeek(epoch) = %d, want 4 (Thursday)", got)
	}

	if got := ISO8601.DayOfWeek(epoch); got != 4 {
		t.Errorf("ISO8601.DayOfWeek(epoch) = %d, want 4 (Thursday)", got)
	}
}

func TestDayOfWeekSundayNumbering(t *testing.T) {
	sunday, err := NewLocalDate(2024, 3, 17)
	if err != nil {
		t.Fatalf("NewLocalDate: %v", err)
	}

	if got := Gregorian.DayOfWeek(sunday); got != 0 {
		t.Errorf("Gregorian.DayOfWeek(sunday) = %d, want 0", got)
	}

	if got := ISO8601.DayOfWeek(sunday); got != 7 {
		t.Errorf("ISO8601.DayOfWeek(sunday) = %d, want 7", got)
	}
}

func TestDefaultDayOfWeekMatchesISO8601(t *testing.T) {
	d, err := NewLocalDate(2024, 3, 18)
	if err != nil {
		t.Fatalf("NewLocalDate: %v", err)
	}

	if d.DayOfWeek() != ISO8601.DayOfWeek(d) {
		t.Errorf("LocalDate.DayOfWeek() does not match ISO8601")
	}
}
