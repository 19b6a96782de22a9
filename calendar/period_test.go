package calendar

import "testing"

func TestParsePeriodAndString(t *testing.T) {
	p, err := ParsePeriod("P1Y2M10D")
	if err != nil {
		t.Fatalf("ParsePeriod: %v", err)
	}

	if p.Years != 1 || p.Months != 2 || p.Days != 10 {
		t.Errorf("ParsePeriod = %+v", p)
	}

	if got := p.String(); got != "P1Y2M10D" {
		t.Errorf("String() = %q", got)
	}
}

func TestParsePeriodWeeks(t *testing.T) {
	p, err := ParsePeriod("P2W")
	if err != nil {
		t.Fatalf("ParsePeriod: %v", err)
	}

	if p.Days != 14 {
		t.Errorf("2 weeks = %d days, want 14", p.Days)
	}
}

func TestParsePeriodRejectsTimeComponent(t *testing.T) {
	if _, err := ParsePeriod("P1YT1H"); err == nil {
		t.Fatal("expected error for time component in period")
	}
}

func TestPeriodAddToClampsDayOfMonth(t *testing.T) {
	jan31, err := NewLocalDate(2024, 1, 31)
	if err != nil {
		t.Fatalf("NewLocalDate: %v", err)
	}

	p := Period{Months: 1}

	got := p.AddTo(jan31)
	if got.Month() != 2 || got.Day() != 29 {
		t.Errorf("AddTo(P1M) = %v, want 2024-02-29", got)
	}
}

func TestParseDurationSplitsPeriodAndDuration(t *testing.T) {
	period, dur, err := ParseDuration("P1Y2DT3H4M5.5S")
	if err != nil {
		t.Fatalf("ParseDuration: %v", err)
	}

	if period.Years != 1 || period.Days != 2 {
		t.Errorf("period = %+v", period)
	}

	wantSeconds := int64(3*3600 + 4*60 + 5)
	if dur.Seconds != wantSeconds || dur.Nanos != 500_000_000 {
		t.Errorf("duration = %+v, want seconds=%d nanos=5e8", dur, wantSeconds)
	}
}

func TestParseDurationDateOnly(t *testing.T) {
	period, dur, err := ParseDuration("P3D")
	if err != nil {
		t.Fatalf("ParseDuration: %v", err)
	}

	if period.Days != 3 {
		t.Errorf("period.Days = %d", period.Days)
	}

	if !dur.IsZero() {
		t.Errorf("duration = %+v, want zero", dur)
	}
}
