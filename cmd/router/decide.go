package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aescanero/dago-matcher/internal/router"
	"github.com/spf13/cobra"
)

// NewDecideCommand creates the decide command
func NewDecideCommand(rootOpts *RootOptions) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Route a single JSON context",
		Long: `Route a single JSON object through the rule set and print the decision.

The context is read from --input, or from stdin when --input is "-".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecide(rootOpts, inputPath, cmd)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "-", "JSON context file, or - for stdin")

	return cmd
}

func runDecide(opts *RootOptions, inputPath string, cmd *cobra.Command) error {
	rules, err := opts.loadRules()
	if err != nil {
		return err
	}

	in, closeInput, err := openInput(inputPath, cmd)
	if err != nil {
		return err
	}
	defer closeInput()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var input map[string]any
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("input must be a JSON object: %w", err)
	}

	result, err := router.NewRouter(opts.logger).Route(cmd.Context(), input, rules)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), opts.config.OutputFormat, result)
}
