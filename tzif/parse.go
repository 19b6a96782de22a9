package tzif

import (
	"bytes"
	"fmt"

	"go.solidfoundation.dev/core/calendar"
)

// Parse decodes a complete TZif file (v1-v4) into ZoneRules.
func Parse(data []byte) (ZoneRules, error) {
	h1, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	v1Block, v1Len, err := parseV1Block(h1, data[headerSize:])
	if err != nil {
		return nil, err
	}

	if h1.version == 0 {
		return finalizeRules(v1Block, nil)
	}

	off := headerSize + v1Len

	if off+headerSize > len(data) {
		return nil, fmt.Errorf("%w: missing v2+ header", ErrMissingVersionData)
	}

	h2, err := parseHeader(data[off:])
	if err != nil {
		return nil, err
	}

	off += headerSize

	v2Block, v2Len, err := parseV2Block(h2, data[off:])
	if err != nil {
		return nil, err
	}

	off += v2Len

	if h2.version >= '4' {
		if err := validateLeapSeconds(v2Block.leapSeconds); err != nil {
			return nil, err
		}
	}

	if off >= len(data) || data[off] != '\n' {
		return nil, fmt.Errorf("%w: missing opening newline", ErrInvalidFooter)
	}

	off++

	end := bytes.IndexByte(data[off:], '\n')
	if end < 0 {
		return nil, fmt.Errorf("%w: missing closing newline", ErrInvalidFooter)
	}

	footer := string(data[off : off+end])

	var posix *posixTZ

	if footer != "" {
		p, err := parsePosixTZ(footer)
		if err != nil {
			return nil, err
		}

		posix = &p
	}

	return finalizeRules(v2Block, posix)
}

func finalizeRules(block dataBlock, posix *posixTZ) (ZoneRules, error) {
	if len(block.types) == 1 && len(block.transitionTimes) == 0 {
		t := block.types[0]

		des, err := designationAt(block.designations, t.designationIndex)
		if err != nil {
			return nil, err
		}

		off, err := calendar.NewZoneOffset(int(t.utOffset))
		if err != nil {
			return nil, err
		}

		return NewFixedOffsetZoneRules(off, des), nil
	}

	return buildRegionZoneRules(block, posix)
}

// validateLeapSeconds checks the v4 constraint that every recorded leap
// second falls on 23:59:59 UTC of the final day of a calendar month.
func validateLeapSeconds(leaps []leapSecondRecord) error {
	for _, l := range leaps {
		days := l.occurrence / 86400
		secOfDay := l.occurrence % 86400

		if secOfDay != 86399 {
			return ErrInvalidLeapSecond
		}

		nextDay := days + 1
		_, _, day := calendar.LocalDateFromDays(nextDay)

		if day != 1 {
			return ErrInvalidLeapSecond
		}
	}

	return nil
}
