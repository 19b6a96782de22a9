package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.solidfoundation.dev/core/jsonstream"
	"go.solidfoundation.dev/core/schema/build"
	"go.solidfoundation.dev/core/schema/validate"
	"go.solidfoundation.dev/core/schema/vocab"
	"go.solidfoundation.dev/core/schemainfer"
	"go.solidfoundation.dev/core/schemainterop"
	"go.solidfoundation.dev/core/value"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Validate instances against, or infer, JSON Schemas",
	}

	cmd.AddCommand(newSchemaValidateCmd(), newSchemaInferCmd())

	return cmd
}

func newSchemaValidateCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "validate <schema> <instance>",
		Short: "Validate an instance document against a schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			shape, err := parseOutputShape(output)
			if err != nil {
				return err
			}

			return runSchemaValidate(args[0], args[1], shape)
		},
	}

	cmd.Flags().StringVar(&output, "output", "flag", "output shape: flag, basic, detailed, verbose")

	return cmd
}

func parseOutputShape(s string) (validate.OutputShape, error) {
	switch s {
	case "flag", "":
		return validate.ShapeFlag, nil
	case "basic":
		return validate.ShapeBasic, nil
	case "detailed":
		return validate.ShapeDetailed, nil
	case "verbose":
		return validate.ShapeVerbose, nil
	default:
		return 0, fmt.Errorf("unknown output shape %q, want one of: flag, basic, detailed, verbose", s)
	}
}

func runSchemaValidate(schemaPath, instancePath string, shape validate.OutputShape) error {
	schemaDoc, err := readValue(schemaPath)
	if err != nil {
		return err
	}

	instanceDoc, err := readValue(instancePath)
	if err != nil {
		return err
	}

	result, err := runWithProgress("validating "+instancePath, func() (*validate.Result, error) {
		builder := build.NewBuilder(vocab.Draft202012(), vocab.Solid())

		compiled, err := builder.Compile(schemaDoc)
		if err != nil {
			return nil, fmt.Errorf("compile schema: %w", err)
		}

		return validate.New(builder, compiled).Validate(instanceDoc)
	})
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	if err := writeValue(os.Stdout, result.Output(shape)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	if !result.Valid {
		os.Exit(1)
	}

	return nil
}

func newSchemaInferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infer <example...>",
		Short: "Infer a JSON Schema from one or more example documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSchemaInfer(args)
		},
	}

	return cmd
}

func runSchemaInfer(paths []string) error {
	examples := make([]value.Value, 0, len(paths))

	for _, p := range paths {
		v, err := readValue(p)
		if err != nil {
			return err
		}

		examples = append(examples, v)
	}

	compiled, err := schemainfer.Infer(examples...)
	if err != nil {
		return fmt.Errorf("infer schema: %w", err)
	}

	exported, err := schemainterop.Export(compiled)
	if err != nil {
		return fmt.Errorf("export schema: %w", err)
	}

	out, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	out = append(out, '\n')

	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

// readValue reads and parses a complete JSON document from path ("-" for
// stdin) into a value.Value.
func readValue(path string) (value.Value, error) {
	data, err := readInput(path)
	if err != nil {
		return value.Value{}, err
	}

	events, err := jsonstream.ParseAll(data)
	if err != nil {
		return value.Value{}, fmt.Errorf("parse %s: %w", path, err)
	}

	v, err := jsonstream.Assemble(events)
	if err != nil {
		return value.Value{}, fmt.Errorf("assemble %s: %w", path, err)
	}

	return v, nil
}

// writeValue renders v as JSON text to w, via jsonstream's event
// round-trip (Events is the inverse of Assemble; Writer renders the
// resulting events to text).
func writeValue(w *os.File, v value.Value) error {
	writer := jsonstream.NewWriter(jsonstream.WriterConfig{})

	for _, ev := range jsonstream.Events(v) {
		if err := writer.Write(ev); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, writer.String())

	return err
}
