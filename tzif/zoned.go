package tzif

import (
	"fmt"

	"go.solidfoundation.dev/core/calendar"
)

// AmbiguousLocalTime selects which offset to use when a local date-time
// falls in an overlap (fall-back) window, where more than one offset is
// valid.
type AmbiguousLocalTime int

const (
	AmbiguousEarliest AmbiguousLocalTime = iota
	AmbiguousLatest
	AmbiguousReject
)

// SkippedBoundary selects which side of a gap transition [SkippedBoundary]
// resolves to.
type SkippedBoundary int

const (
	BoundaryStart SkippedBoundary = iota
	BoundaryEnd
	BoundaryNearest
)

// SkippedLocalTimeKind selects how to resolve a local date-time that falls
// in a gap (spring-forward) window, where no offset is valid.
type SkippedLocalTimeKind int

const (
	SkippedNextValid SkippedLocalTimeKind = iota
	SkippedPreviousValid
	SkippedBoundaryPolicy
	SkippedReject
)

// SkippedLocalTime configures resolution of a skipped (gap) local time.
type SkippedLocalTime struct {
	Kind     SkippedLocalTimeKind
	Boundary SkippedBoundary // only consulted when Kind == SkippedBoundaryPolicy
}

// ResolutionStrategy combines the ambiguous- and skipped-local-time
// policies applied when converting local date-time components to an
// instant or a ZonedDateTime.
type ResolutionStrategy struct {
	Ambiguous AmbiguousLocalTime
	Skipped   SkippedLocalTime
}

// DefaultResolutionStrategy matches common library defaults: earliest
// offset on overlap, next valid instant on gap.
var DefaultResolutionStrategy = ResolutionStrategy{
	Ambiguous: AmbiguousEarliest,
	Skipped:   SkippedLocalTime{Kind: SkippedNextValid},
}

// AmbiguousLocalTimeError reports a rejected ambiguous local time.
type AmbiguousLocalTimeError struct {
	Local calendar.LocalDateTime
}

func (e *AmbiguousLocalTimeError) Error() string {
	return fmt.Sprintf("tzif: ambiguous local time %s rejected by policy", e.Local)
}

// SkippedLocalTimeError reports a rejected skipped local time.
type SkippedLocalTimeError struct {
	Local calendar.LocalDateTime
}

func (e *SkippedLocalTimeError) Error() string {
	return fmt.Sprintf("tzif: skipped local time %s rejected by policy", e.Local)
}

// ZonedDateTime is a local date-time paired with a zone identifier,
// resolved against that zone's rules to a concrete offset.
type ZonedDateTime struct {
	DateTime calendar.LocalDateTime
	ZoneID   string
	Offset   calendar.ZoneOffset
}

// NewZonedDateTime resolves local under rules per strategy, returning the
// ZonedDateTime with its offset filled in.
func NewZonedDateTime(local calendar.LocalDateTime, zoneID string, rules ZoneRules, strategy ResolutionStrategy) (ZonedDateTime, error) {
	offsets := rules.ValidOffsets(local)

	switch len(offsets) {
	case 1:
		return ZonedDateTime{DateTime: local, ZoneID: zoneID, Offset: offsets[0]}, nil

	case 2:
		return resolveAmbiguous(local, zoneID, offsets, strategy.Ambiguous)

	default:
		return resolveSkipped(local, zoneID, rules, strategy.Skipped)
	}
}

// resolveAmbiguous chooses between the two offsets ValidOffsets returns
// for an overlap, which are always ordered [Before, After] — the
// chronologically earliest occurrence of the wall-clock time, then the
// latest, regardless of which offset is numerically larger.
func resolveAmbiguous(local calendar.LocalDateTime, zoneID string, offsets []calendar.ZoneOffset, policy AmbiguousLocalTime) (ZonedDateTime, error) {
	earliest, latest := offsets[0], offsets[1]

	switch policy {
	case AmbiguousEarliest:
		return ZonedDateTime{DateTime: local, ZoneID: zoneID, Offset: earliest}, nil
	case AmbiguousLatest:
		return ZonedDateTime{DateTime: local, ZoneID: zoneID, Offset: latest}, nil
	default:
		return ZonedDateTime{}, &AmbiguousLocalTimeError{Local: local}
	}
}

func resolveSkipped(local calendar.LocalDateTime, zoneID string, rules ZoneRules, policy SkippedLocalTime) (ZonedDateTime, error) {
	tr, ok := rules.ApplicableTransition(local)
	if !ok {
		// No transition claims this local time and it has no valid
		// offset: treat as a normal far-future/past lookup instead.
		off := rules.Offset(calendar.Instant{Seconds: local.Date.DaysSinceEpoch()*86400 + int64(local.Time.SecondsSinceMidnight())})

		return ZonedDateTime{DateTime: local, ZoneID: zoneID, Offset: off}, nil
	}

	gapSeconds := tr.Duration.Seconds
	if gapSeconds < 0 {
		gapSeconds = -gapSeconds
	}

	switch policy.Kind {
	case SkippedNextValid:
		shifted := local.PlusSeconds(gapSeconds)

		return ZonedDateTime{DateTime: shifted, ZoneID: zoneID, Offset: tr.After}, nil

	case SkippedPreviousValid:
		shifted := local.PlusSeconds(-gapSeconds)

		return ZonedDateTime{DateTime: shifted, ZoneID: zoneID, Offset: tr.Before}, nil

	case SkippedBoundaryPolicy:
		return resolveSkippedBoundary(local, zoneID, tr, policy.Boundary)

	default:
		return ZonedDateTime{}, &SkippedLocalTimeError{Local: local}
	}
}

func resolveSkippedBoundary(local calendar.LocalDateTime, zoneID string, tr ZoneTransition, boundary SkippedBoundary) (ZonedDateTime, error) {
	switch boundary {
	case BoundaryStart:
		return ZonedDateTime{DateTime: tr.Instant.AtOffset(tr.Before).DateTime, ZoneID: zoneID, Offset: tr.Before}, nil
	case BoundaryEnd:
		return ZonedDateTime{DateTime: tr.Instant.AtOffset(tr.After).DateTime, ZoneID: zoneID, Offset: tr.After}, nil
	default: // BoundaryNearest
		beforeLocal := tr.Instant.AtOffset(tr.Before).DateTime
		afterLocal := tr.Instant.AtOffset(tr.After).DateTime

		distBefore := local.Date.DaysSinceEpoch()*86400 + int64(local.Time.SecondsSinceMidnight()) -
			(beforeLocal.Date.DaysSinceEpoch()*86400 + int64(beforeLocal.Time.SecondsSinceMidnight()))
		distAfter := (afterLocal.Date.DaysSinceEpoch()*86400 + int64(afterLocal.Time.SecondsSinceMidnight())) -
			(local.Date.DaysSinceEpoch()*86400 + int64(local.Time.SecondsSinceMidnight()))

		if distBefore <= distAfter {
			return ZonedDateTime{DateTime: beforeLocal, ZoneID: zoneID, Offset: tr.Before}, nil
		}

		return ZonedDateTime{DateTime: afterLocal, ZoneID: zoneID, Offset: tr.After}, nil
	}
}

// ToInstant converts z to its underlying instant.
func (z ZonedDateTime) ToInstant() calendar.Instant {
	odt := calendar.OffsetDateTime{DateTime: z.DateTime, Offset: z.Offset}

	return odt.ToInstant()
}

// String renders "<date>T<time><offset>[<zoneID>]".
func (z ZonedDateTime) String() string {
	odt := calendar.OffsetDateTime{DateTime: z.DateTime, Offset: z.Offset}

	return odt.String() + "[" + z.ZoneID + "]"
}
