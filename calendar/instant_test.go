package calendar

import "testing"

func TestInstantAddSubRoundTrip(t *testing.T) {
	d := Duration{Seconds: 3661, Nanos: 500}

	shifted := UnixEpoch.Add(d)
	if back := shifted.Sub(UnixEpoch); back != d {
		t.Errorf("Sub after Add = %+v, want %+v", back, d)
	}
}

func TestInstantAddNanosecondCarry(t *testing.T) {
	i := Instant{Seconds: 0, Nanos: 900_000_000}
	d := Duration{Seconds: 0, Nanos: 200_000_000}

	got := i.Add(d)
	want := Instant{Seconds: 1, Nanos: 100_000_000}

	if got != want {
		t.Errorf("Add = %+v, want %+v", got, want)
	}
}

func TestInstantAtOffsetMatchesEpoch(t *testing.T) {
	odt := UnixEpoch.AtOffset(UTC)
	if got := odt.String(); got != "1970-01-01T00:00:00Z" {
		t.Errorf("AtOffset(UTC).String() = %q", got)
	}
}

func TestDurationStringFormatting(t *testing.T) {
	cases := []struct {
		d    Duration
		want string
	}{
		{Duration{}, "PT0S"},
		{Duration{Seconds: 5400}, "PT1H30M"},
		{Duration{Seconds: 5, Nanos: 500_000_000}, "PT5.5S"},
		{Duration{Seconds: -5}, "-PT5S"},
	}

	for _, c := range cases {
		if got := c.d.String(); got != c.want {
			t.Errorf("%+v.String() = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestNewDurationNormalizesSign(t *testing.T) {
	d := NewDuration(-1, 500_000_000)
	if d.Seconds != 0 || d.Nanos != -500_000_000 {
		t.Errorf("NewDuration(-1, 5e8) = %+v", d)
	}
}
