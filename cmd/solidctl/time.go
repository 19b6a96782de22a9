package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.solidfoundation.dev/core/calendar"
	"go.solidfoundation.dev/core/tzif"
)

func newTimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Work with local date-times and zone resolution",
	}

	cmd.AddCommand(newTimeResolveCmd())

	return cmd
}

func newTimeResolveCmd() *cobra.Command {
	var onAmbiguous, onSkip string

	cmd := &cobra.Command{
		Use:   "resolve <zone> <local-datetime>",
		Short: "Resolve a local date-time against a zone's rules to a concrete offset",
		Long: `Resolves a local date-time that may be ambiguous (in a fall-back overlap) or
skipped (in a spring-forward gap), per the configured policies.

<zone> is either a fixed UTC offset (e.g. "+02:00", "Z") or a path to a
TZif (RFC 8536) file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			strategy, err := parseResolutionStrategy(onAmbiguous, onSkip)
			if err != nil {
				return err
			}

			return runTimeResolve(args[0], args[1], strategy)
		},
	}

	cmd.Flags().StringVar(&onAmbiguous, "on-ambiguous", "earliest", "earliest, latest, or reject")
	cmd.Flags().StringVar(&onSkip, "on-skip", "next", "next, previous, boundary-start, boundary-end, boundary-nearest, or reject")

	return cmd
}

func parseResolutionStrategy(onAmbiguous, onSkip string) (tzif.ResolutionStrategy, error) {
	var strategy tzif.ResolutionStrategy

	switch onAmbiguous {
	case "earliest", "":
		strategy.Ambiguous = tzif.AmbiguousEarliest
	case "latest":
		strategy.Ambiguous = tzif.AmbiguousLatest
	case "reject":
		strategy.Ambiguous = tzif.AmbiguousReject
	default:
		return strategy, fmt.Errorf("unknown --on-ambiguous %q, want one of: earliest, latest, reject", onAmbiguous)
	}

	switch onSkip {
	case "next", "":
		strategy.Skipped = tzif.SkippedLocalTime{Kind: tzif.SkippedNextValid}
	case "previous":
		strategy.Skipped = tzif.SkippedLocalTime{Kind: tzif.SkippedPreviousValid}
	case "boundary-start":
		strategy.Skipped = tzif.SkippedLocalTime{Kind: tzif.SkippedBoundaryPolicy, Boundary: tzif.BoundaryStart}
	case "boundary-end":
		strategy.Skipped = tzif.SkippedLocalTime{Kind: tzif.SkippedBoundaryPolicy, Boundary: tzif.BoundaryEnd}
	case "boundary-nearest":
		strategy.Skipped = tzif.SkippedLocalTime{Kind: tzif.SkippedBoundaryPolicy, Boundary: tzif.BoundaryNearest}
	case "reject":
		strategy.Skipped = tzif.SkippedLocalTime{Kind: tzif.SkippedReject}
	default:
		return strategy, fmt.Errorf("unknown --on-skip %q, want one of: next, previous, boundary-start, boundary-end, boundary-nearest, reject", onSkip)
	}

	return strategy, nil
}

func runTimeResolve(zone, localStr string, strategy tzif.ResolutionStrategy) error {
	local, err := calendar.ParseLocalDateTime(localStr)
	if err != nil {
		return fmt.Errorf("parse local date-time: %w", err)
	}

	rules, zoneID, err := loadZoneRules(zone)
	if err != nil {
		return err
	}

	zdt, err := tzif.NewZonedDateTime(local, zoneID, rules, strategy)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}

	fmt.Fprintln(os.Stdout, zdt.String())

	return nil
}

// loadZoneRules interprets zone as a fixed UTC offset first, falling back
// to reading it as a path to a TZif file.
func loadZoneRules(zone string) (tzif.ZoneRules, string, error) {
	if offset, err := calendar.ParseZoneOffset(zone); err == nil {
		return tzif.NewFixedOffsetZoneRules(offset, zone), zone, nil
	}

	data, err := readInput(zone)
	if err != nil {
		return nil, "", fmt.Errorf("zone %q is neither a valid offset nor a readable TZif file: %w", zone, err)
	}

	rules, err := tzif.Parse(data)
	if err != nil {
		return nil, "", fmt.Errorf("parse tzif %s: %w", zone, err)
	}

	return rules, zone, nil
}
