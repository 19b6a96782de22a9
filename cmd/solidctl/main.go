// Package main provides solidctl, a CLI exercising this module's JSON,
// schema, and timezone functionality: formatting JSON, validating and
// inferring JSON Schemas, and inspecting TZif data / resolving local times.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.solidfoundation.dev/core/log"
	"go.solidfoundation.dev/core/profile"
	"go.solidfoundation.dev/core/version"
)

var (
	ErrReadInput   = errors.New("read input")
	ErrWriteOutput = errors.New("write output")
)

func main() {
	logCfg := log.NewConfig()
	profCfg := profile.NewConfig()

	rootCmd := &cobra.Command{
		Use:           "solidctl",
		Short:         "Inspect and transform JSON, JSON Schema, and timezone data",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			return startProfiling(profCfg)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if activeProfiler == nil {
				return nil
			}

			return activeProfiler.Stop()
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register log completions: %v\n", err)
	}

	if err := profCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register profile completions: %v\n", err)
	}

	rootCmd.AddCommand(
		newJSONCmd(),
		newSchemaCmd(),
		newTzifCmd(),
		newTimeCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// profiler is started once per invocation by the root command's
// PersistentPreRun and stopped by its PersistentPostRun, the same
// lifecycle cmd/magicschema would follow if it wired profiling too.
var activeProfiler *profile.Profiler

func startProfiling(cfg *profile.Config) error {
	activeProfiler = cfg.NewProfiler()
	return activeProfiler.Start()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Printf("version: %s\nrevision: %s\ngo: %s (%s/%s)\n",
				orUnknown(version.Version), version.Revision, version.GoVersion, version.GoOS, version.GoArch)

			return nil
		},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}

	return s
}

// readInput reads from stdin when path is "-", otherwise from the named
// file, following cmd/magicschema's "-" convention.
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from CLI argument, as intended.
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}

	return data, nil
}
