package tzif

import (
	"sort"

	"go.solidfoundation.dev/core/calendar"
)

// TransitionKind classifies a ZoneTransition as a local-time gap
// (spring-forward) or overlap (fall-back).
type TransitionKind int

const (
	Gap TransitionKind = iota
	Overlap
)

// ZoneTransition is one instant at which the UTC offset in effect changes.
type ZoneTransition struct {
	Instant     calendar.Instant
	Before      calendar.ZoneOffset
	After       calendar.ZoneOffset
	Kind        TransitionKind
	Duration    calendar.Duration
	Designation string
	IsDST       bool
}

// ZoneRules answers offset and designation queries for a parsed time zone.
// FixedOffsetZoneRules and RegionZoneRules both satisfy it.
type ZoneRules interface {
	Offset(at calendar.Instant) calendar.ZoneOffset
	ValidOffsets(local calendar.LocalDateTime) []calendar.ZoneOffset
	ApplicableTransition(local calendar.LocalDateTime) (ZoneTransition, bool)
	NextTransition(after calendar.Instant) (ZoneTransition, bool)
	PriorTransition(before calendar.Instant) (ZoneTransition, bool)
	StandardOffset(at calendar.Instant) calendar.ZoneOffset
	IsDaylightSavingsTime(at calendar.Instant) bool
	Designation(at calendar.Instant) string
}

// FixedOffsetZoneRules is a zone with a single, never-changing offset.
type FixedOffsetZoneRules struct {
	offset      calendar.ZoneOffset
	designation string
}

// NewFixedOffsetZoneRules constructs a single-offset zone.
func NewFixedOffsetZoneRules(offset calendar.ZoneOffset, designation string) FixedOffsetZoneRules {
	return FixedOffsetZoneRules{offset: offset, designation: designation}
}

func (r FixedOffsetZoneRules) Offset(calendar.Instant) calendar.ZoneOffset { return r.offset }

func (r FixedOffsetZoneRules) ValidOffsets(calendar.LocalDateTime) []calendar.ZoneOffset {
	return []calendar.ZoneOffset{r.offset}
}

func (r FixedOffsetZoneRules) ApplicableTransition(calendar.LocalDateTime) (ZoneTransition, bool) {
	return ZoneTransition{}, false
}

func (r FixedOffsetZoneRules) NextTransition(calendar.Instant) (ZoneTransition, bool) {
	return ZoneTransition{}, false
}

func (r FixedOffsetZoneRules) PriorTransition(calendar.Instant) (ZoneTransition, bool) {
	return ZoneTransition{}, false
}

func (r FixedOffsetZoneRules) StandardOffset(calendar.Instant) calendar.ZoneOffset { return r.offset }

func (r FixedOffsetZoneRules) IsDaylightSavingsTime(calendar.Instant) bool { return false }

func (r FixedOffsetZoneRules) Designation(calendar.Instant) string { return r.designation }

// RegionZoneRules is a zone with one or more encoded transitions, and
// optionally a tail rule projecting transitions beyond the last encoded
// one (built from a POSIX-TZ footer).
type RegionZoneRules struct {
	initialOffset calendar.ZoneOffset
	transitions   []ZoneTransition
	tailRule      *tailRule
}

// tailRule projects DST transitions beyond the last encoded transition,
// derived from a POSIX-TZ footer.
type tailRule struct {
	std    calendar.ZoneOffset
	stdDes string
	dst    calendar.ZoneOffset
	dstDes string
	start  posixTransitionRule
	end    posixTransitionRule
}

// buildRegionZoneRules converts a decoded v1 or v2+ data block, plus an
// optional parsed POSIX-TZ footer, into RegionZoneRules.
func buildRegionZoneRules(block dataBlock, posix *posixTZ) (RegionZoneRules, error) {
	if len(block.types) == 0 {
		return RegionZoneRules{}, ErrNoTransitions
	}

	hasStandard := false

	for _, t := range block.types {
		if !t.isDST {
			hasStandard = true

			break
		}
	}

	if !hasStandard {
		return RegionZoneRules{}, ErrMissingStandardTime
	}

	var r RegionZoneRules

	// Initial offset is the first standard-time type, matching the
	// convention used when no transition precedes the earliest instant.
	for _, t := range block.types {
		if !t.isDST {
			off, err := calendar.NewZoneOffset(int(t.utOffset))
			if err != nil {
				return RegionZoneRules{}, err
			}

			r.initialOffset = off

			break
		}
	}

	prevOffset := r.initialOffset

	for i, ts := range block.transitionTimes {
		typeIdx := block.transitionTypes[i]
		if int(typeIdx) >= len(block.types) {
			return RegionZoneRules{}, ErrTypeIndexOutOfBounds
		}

		lt := block.types[typeIdx]

		after, err := calendar.NewZoneOffset(int(lt.utOffset))
		if err != nil {
			return RegionZoneRules{}, err
		}

		designation, err := designationAt(block.designations, lt.designationIndex)
		if err != nil {
			return RegionZoneRules{}, err
		}

		kind := Gap
		if after.TotalSeconds() < prevOffset.TotalSeconds() {
			kind = Overlap
		}

		diff := after.TotalSeconds() - prevOffset.TotalSeconds()

		r.transitions = append(r.transitions, ZoneTransition{
			Instant:     calendar.Instant{Seconds: ts},
			Before:      prevOffset,
			After:       after,
			Kind:        kind,
			Duration:    calendar.NewDuration(int64(diff), 0),
			Designation: designation,
			IsDST:       lt.isDST,
		})

		prevOffset = after
	}

	if posix != nil {
		stdOff, err := calendar.NewZoneOffset(posix.stdOffsetSecs)
		if err != nil {
			return RegionZoneRules{}, err
		}

		tr := &tailRule{std: stdOff, stdDes: posix.stdDesignation}

		if posix.hasDST {
			dstOff, err := calendar.NewZoneOffset(posix.dstOffsetSecs)
			if err != nil {
				return RegionZoneRules{}, err
			}

			tr.dst = dstOff
			tr.dstDes = posix.dstDesignation
			tr.start = posix.start
			tr.end = posix.end
		}

		r.tailRule = tr
	}

	return r, nil
}

func (r RegionZoneRules) findIndex(at calendar.Instant) int {
	return sort.Search(len(r.transitions), func(i int) bool {
		return r.transitions[i].Instant.Compare(at) > 0
	}) - 1
}

// Offset returns the UTC offset in effect at the given instant.
func (r RegionZoneRules) Offset(at calendar.Instant) calendar.ZoneOffset {
	idx := r.findIndex(at)
	if idx < 0 {
		return r.initialOffset
	}

	if idx == len(r.transitions)-1 && r.tailRule != nil {
		if off, ok := r.tailOffsetAt(at); ok {
			return off
		}
	}

	return r.transitions[idx].After
}

// StandardOffset returns the non-DST offset that would apply at at, i.e.
// the offset with the DST component removed.
func (r RegionZoneRules) StandardOffset(at calendar.Instant) calendar.ZoneOffset {
	idx := r.findIndex(at)
	if idx < 0 {
		return r.initialOffset
	}

	if r.transitions[idx].IsDST {
		secs := r.transitions[idx].After.TotalSeconds() - int(r.transitions[idx].Duration.Seconds)
		off, _ := calendar.NewZoneOffset(secs)

		return off
	}

	return r.transitions[idx].After
}

func (r RegionZoneRules) IsDaylightSavingsTime(at calendar.Instant) bool {
	idx := r.findIndex(at)
	if idx < 0 {
		return false
	}

	if idx == len(r.transitions)-1 && r.tailRule != nil && r.tailRule.dstDes != "" {
		if off, ok := r.tailOffsetAt(at); ok {
			return off.TotalSeconds() == r.tailRule.dst.TotalSeconds()
		}
	}

	return r.transitions[idx].IsDST
}

func (r RegionZoneRules) Designation(at calendar.Instant) string {
	idx := r.findIndex(at)
	if idx < 0 {
		return ""
	}

	return r.transitions[idx].Designation
}

func (r RegionZoneRules) NextTransition(after calendar.Instant) (ZoneTransition, bool) {
	idx := sort.Search(len(r.transitions), func(i int) bool {
		return r.transitions[i].Instant.Compare(after) > 0
	})

	if idx < len(r.transitions) {
		return r.transitions[idx], true
	}

	return ZoneTransition{}, false
}

func (r RegionZoneRules) PriorTransition(before calendar.Instant) (ZoneTransition, bool) {
	idx := sort.Search(len(r.transitions), func(i int) bool {
		return r.transitions[i].Instant.Compare(before) >= 0
	}) - 1

	if idx >= 0 {
		return r.transitions[idx], true
	}

	return ZoneTransition{}, false
}

// ValidOffsets returns the offset(s) applicable to a local date-time: one
// offset normally, two during an overlap, zero during a gap.
func (r RegionZoneRules) ValidOffsets(local calendar.LocalDateTime) []calendar.ZoneOffset {
	tr, ok := r.ApplicableTransition(local)
	if !ok {
		return []calendar.ZoneOffset{r.offsetForLocalFar(local)}
	}

	switch tr.Kind {
	case Overlap:
		return []calendar.ZoneOffset{tr.Before, tr.After}
	default: // Gap
		return nil
	}
}

// offsetForLocalFar resolves the offset for a local time not within any
// transition's ambiguity window, by bisecting the transition list using a
// provisional offset-free local-to-instant estimate.
func (r RegionZoneRules) offsetForLocalFar(local calendar.LocalDateTime) calendar.ZoneOffset {
	days := local.Date.DaysSinceEpoch()
	approx := calendar.Instant{Seconds: days*86400 + int64(local.Time.SecondsSinceMidnight())}

	return r.Offset(approx)
}

// ApplicableTransition reports the transition (if any) whose ambiguity
// window contains local: a gap window is [before-instant-as-local,
// after-instant-as-local), an overlap window similarly.
func (r RegionZoneRules) ApplicableTransition(local calendar.LocalDateTime) (ZoneTransition, bool) {
	for _, tr := range r.transitions {
		beforeLocal := tr.Instant.AtOffset(tr.Before).DateTime
		afterLocal := tr.Instant.AtOffset(tr.After).DateTime

		lo, hi := beforeLocal, afterLocal
		if hi.Compare(lo) < 0 {
			lo, hi = hi, lo
		}

		if local.Compare(lo) >= 0 && local.Compare(hi) < 0 {
			return tr, true
		}
	}

	return ZoneTransition{}, false
}

// tailOffsetAt resolves the offset the POSIX-TZ tail rule dictates at an
// instant beyond the last encoded transition.
func (r RegionZoneRules) tailOffsetAt(at calendar.Instant) (calendar.ZoneOffset, bool) {
	if r.tailRule == nil {
		return calendar.ZoneOffset{}, false
	}

	if r.tailRule.dstDes == "" {
		return r.tailRule.std, true
	}

	odt := at.AtOffset(r.tailRule.std)
	year := odt.DateTime.Date.Year()

	startInstant := resolvePosixRule(r.tailRule.start, year, r.tailRule.std)
	endInstant := resolvePosixRule(r.tailRule.end, year, r.tailRule.std)

	if startInstant.Compare(endInstant) <= 0 {
		if at.Compare(startInstant) >= 0 && at.Compare(endInstant) < 0 {
			return r.tailRule.dst, true
		}

		return r.tailRule.std, true
	}

	// Southern-hemisphere style: DST spans the year boundary.
	if at.Compare(startInstant) >= 0 || at.Compare(endInstant) < 0 {
		return r.tailRule.dst, true
	}

	return r.tailRule.std, true
}

// resolvePosixRule resolves a POSIX transition rule to the instant it
// denotes in the given year, interpreting its wall-clock time in std
// (the rule's reference offset, conventionally standard time).
func resolvePosixRule(rule posixTransitionRule, year int64, std calendar.ZoneOffset) calendar.Instant {
	var date calendar.LocalDate

	switch rule.kind {
	case ruleJulianNoLeap:
		date = julianNoLeapDate(year, rule.day)
	case ruleOrdinal:
		date = calendar.LocalDateFromEpochDay(calendar.DaysSinceEpoch(year, 1, 1) + int64(rule.day))
	case ruleMonthWeekDay:
		date = monthWeekDayDate(year, rule.month, rule.week, rule.weekday)
	}

	h := rule.atSecs / 3600
	m := (rule.atSecs % 3600) / 60
	s := rule.atSecs % 60

	t, _ := calendar.NewLocalTime(h, m, s, 0)

	odt := calendar.OffsetDateTime{DateTime: calendar.NewLocalDateTime(date, t), Offset: std}

	return odt.ToInstant()
}

// julianNoLeapDate resolves "Jn": day n of the year (1..365), Feb 29
// never counted even in leap years.
func julianNoLeapDate(year int64, n int) calendar.LocalDate {
	day := n
	if calendar.IsLeapYear(year) && n >= 60 {
		day++
	}

	return calendar.LocalDateFromEpochDay(calendar.DaysSinceEpoch(year, 1, 1) + int64(day-1))
}

// monthWeekDayDate resolves "Mm.w.d": weekday d (0=Sunday) of week w
// (1..4, or 5 for "last") of month m.
func monthWeekDayDate(year int64, month, week, weekday int) calendar.LocalDate {
	first, _ := calendar.NewLocalDate(year, month, 1)
	firstWeekday := calendar.Gregorian.DayOfWeek(first)

	offset := (weekday - firstWeekday + 7) % 7
	day := 1 + offset + (week-1)*7

	maxDay := calendar.DaysInMonth(year, month)
	for day > maxDay {
		day -= 7
	}

	d, _ := calendar.NewLocalDate(year, month, day)

	return d
}
