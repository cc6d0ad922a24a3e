package main

import (
	"github.com/aescanero/dago-matcher/internal/router"
	"github.com/spf13/cobra"
)

// ValidationResult is printed by the validate command
type ValidationResult struct {
	Valid bool   `json:"valid"`
	File  string `json:"file"`
	Rules int    `json:"rules,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a rule set without routing",
		Long: `Parse and validate a rule set: guard and body shapes, CEL conditions,
match patterns and result templates.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	result := ValidationResult{File: opts.config.RulesFile}

	rules, err := opts.loadRules()
	if err == nil {
		err = router.NewRouter(opts.logger).Validate(rules)
	}
	if err != nil {
		result.Error = err.Error()
		if writeErr := writeValidation(cmd.OutOrStdout(), opts.config.OutputFormat, result); writeErr != nil {
			return writeErr
		}
		return err
	}

	result.Valid = true
	result.Rules = len(rules.Rules)
	return writeValidation(cmd.OutOrStdout(), opts.config.OutputFormat, result)
}
