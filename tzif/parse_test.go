package tzif

import (
	"encoding/binary"
	"testing"

	"go.solidfoundation.dev/core/calendar"
)

// buildV1FixedOffsetTZif hand-assembles a minimal v1 TZif file (no
// transitions, one local-time type) per RFC 9636 §3.
func buildV1FixedOffsetTZif(offsetSeconds int32, designation string) []byte {
	var buf []byte

	buf = append(buf, "TZif"...)
	buf = append(buf, 0) // version 1
	buf = append(buf, make([]byte, 15)...)

	putU32 := func(n uint32) {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], n)
		buf = append(buf, b[:]...)
	}

	putU32(0)                            // isutcnt
	putU32(0)                            // isstdcnt
	putU32(0)                            // leapcnt
	putU32(0)                            // timecnt
	putU32(1)                            // typecnt
	putU32(uint32(len(designation) + 1)) // charcnt

	// time-type record: offset (4), isDST (1), designation index (1)
	var off [4]byte
	binary.BigEndian.PutUint32(off[:], uint32(offsetSeconds))
	buf = append(buf, off[:]...)
	buf = append(buf, 0, 0)

	buf = append(buf, designation...)
	buf = append(buf, 0)

	return buf
}

func TestParseFixedOffsetV1(t *testing.T) {
	data := buildV1FixedOffsetTZif(7200, "CET")

	rules, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	fixed, ok := rules.(FixedOffsetZoneRules)
	if !ok {
		t.Fatalf("Parse returned %T, want FixedOffsetZoneRules", rules)
	}

	if fixed.Offset(calendar.UnixEpoch).TotalSeconds() != 7200 {
		t.Errorf("offset = %d, want 7200", fixed.Offset(calendar.UnixEpoch).TotalSeconds())
	}

	if fixed.Designation(calendar.UnixEpoch) != "CET" {
		t.Errorf("designation = %q", fixed.Designation(calendar.UnixEpoch))
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	data := buildV1FixedOffsetTZif(0, "UTC")
	data[0] = 'X'

	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestParseRejectsTruncated(t *testing.T) {
	data := buildV1FixedOffsetTZif(0, "UTC")

	if _, err := Parse(data[:10]); err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	data := buildV1FixedOffsetTZif(0, "UTC")
	data[4] = '9'

	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}
