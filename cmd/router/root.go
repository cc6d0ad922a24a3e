package main

import (
	"fmt"

	"github.com/aescanero/dago-matcher/internal/config"
	"github.com/aescanero/dago-matcher/internal/router"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootOptions holds global flags and the state shared by all commands
type RootOptions struct {
	RulesFile string
	LogLevel  string
	Format    string

	config *config.Config
	logger *zap.Logger
}

// NewRootCommand creates the root command for the router CLI
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "router",
		Short:   "Evaluate decision rule sets",
		Long:    "Route JSON contexts through first-match-wins rule sets.",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.RulesFile, "rules", "", "rule set file (default $RULES_FILE or rules.yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level: debug|info|warn|error (default $LOG_LEVEL or info)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "", "output format: json|text (default $OUTPUT_FORMAT or json)")

	cmd.AddCommand(NewDecideCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// setup loads configuration, applies flag overrides and builds the logger.
// Logs go to stderr so stdout stays machine-readable.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("rules") {
		cfg.RulesFile = o.RulesFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	if flags.Changed("format") {
		cfg.OutputFormat = o.Format
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	o.config = cfg
	o.logger = initLogger(cfg.LogLevel, cmd.ErrOrStderr())

	o.logger.Debug("configuration loaded",
		zap.String("version", Version),
		zap.String("config", cfg.String()),
	)
	return nil
}

// loadRules loads the configured rule set
func (o *RootOptions) loadRules() (*router.RuleSet, error) {
	rules, err := router.LoadRuleSet(o.config.RulesFile)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("rule set loaded",
		zap.String("file", o.config.RulesFile),
		zap.Int("num_rules", len(rules.Rules)),
	)
	return rules, nil
}
