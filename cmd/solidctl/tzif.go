package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.solidfoundation.dev/core/calendar"
	"go.solidfoundation.dev/core/tzif"
)

func newTzifCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tzif",
		Short: "Inspect TZif (RFC 8536) timezone data",
	}

	cmd.AddCommand(newTzifInspectCmd())

	return cmd
}

func newTzifInspectCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Parse a TZif file and print its transitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runTzifInspect(args[0], limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of transitions to print")

	return cmd
}

func runTzifInspect(path string, limit int) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}

	rules, err := runWithProgress("parsing "+path, func() (tzif.ZoneRules, error) {
		return tzif.Parse(data)
	})
	if err != nil {
		return fmt.Errorf("parse tzif: %w", err)
	}

	epoch := calendar.Instant{}

	fmt.Fprintf(os.Stdout, "kind: %T\n", rules)
	fmt.Fprintf(os.Stdout, "designation at epoch: %s\n", rules.Designation(epoch))
	fmt.Fprintf(os.Stdout, "offset at epoch: %s\n", rules.Offset(epoch))
	fmt.Fprintf(os.Stdout, "standard offset at epoch: %s\n", rules.StandardOffset(epoch))
	fmt.Fprintf(os.Stdout, "DST at epoch: %v\n", rules.IsDaylightSavingsTime(epoch))
	fmt.Fprintln(os.Stdout, "transitions:")

	at := epoch

	for i := 0; i < limit; i++ {
		tr, ok := rules.NextTransition(at)
		if !ok {
			break
		}

		kind := "gap"
		if tr.Kind == tzif.Overlap {
			kind = "overlap"
		}

		fmt.Fprintf(os.Stdout, "  %s: %s -> %s (%s, %s, dst=%v)\n",
			tr.Instant, tr.Before, tr.After, kind, tr.Designation, tr.IsDST)

		at = tr.Instant
	}

	return nil
}
