package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.solidfoundation.dev/core/jsonstream"
)

func newJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json",
		Short: "Work with JSON text",
	}

	cmd.AddCommand(newJSONFmtCmd())

	return cmd
}

func newJSONFmtCmd() *cobra.Command {
	var tagShape string

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Re-emit JSON read from a file or stdin, in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}

			shape, err := parseTagShape(tagShape)
			if err != nil {
				return err
			}

			return runJSONFmt(path, shape)
		},
	}

	cmd.Flags().StringVar(&tagShape, "tag-shape", "unwrapped",
		"how to render tagged values: unwrapped, array, object, wrapped")

	return cmd
}

func parseTagShape(s string) (jsonstream.TagShapeKind, error) {
	switch s {
	case "unwrapped", "":
		return jsonstream.TagUnwrapped, nil
	case "array":
		return jsonstream.TagArray, nil
	case "object":
		return jsonstream.TagObject, nil
	case "wrapped":
		return jsonstream.TagWrapped, nil
	default:
		return 0, fmt.Errorf("unknown tag shape %q, want one of: unwrapped, array, object, wrapped", s)
	}
}

func runJSONFmt(path string, shape jsonstream.TagShapeKind) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}

	events, err := jsonstream.ParseAll(data)
	if err != nil {
		return fmt.Errorf("parse json: %w", err)
	}

	w := jsonstream.NewWriter(jsonstream.WriterConfig{Tag: jsonstream.TagShape{Kind: shape}})

	for _, ev := range events {
		if err := w.Write(ev); err != nil {
			return fmt.Errorf("render json: %w", err)
		}
	}

	fmt.Fprintln(os.Stdout, w.String())

	return nil
}
