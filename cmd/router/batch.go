package main

import (
	"fmt"

	"github.com/aescanero/dago-matcher/internal/config"
	"github.com/aescanero/dago-matcher/internal/router"
	"github.com/aescanero/dago-matcher/internal/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewBatchCommand creates the batch command
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		inputPath string
		failFast  bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Route JSON-lines requests",
		Long: `Route one request per line and write one JSON decision per line.

Each request line is {"execution_id": "...", "node_id": "...", "input": {...}}.
Decisions are always written as JSON lines; --format applies to the summary.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("fail-fast") {
				rootOpts.config.FailFast = failFast
			}
			return runBatch(rootOpts, inputPath, cmd)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "-", "JSON-lines request file, or - for stdin")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first failed request (default $FAIL_FAST)")

	return cmd
}

func runBatch(opts *RootOptions, inputPath string, cmd *cobra.Command) error {
	rules, err := opts.loadRules()
	if err != nil {
		return err
	}
	routerInstance := router.NewRouter(opts.logger)
	if err := routerInstance.Validate(rules); err != nil {
		return err
	}

	in, closeInput, err := openInput(inputPath, cmd)
	if err != nil {
		return err
	}
	defer closeInput()

	w := worker.NewWorker(opts.config, routerInstance, rules, opts.logger)
	stats, err := w.Process(cmd.Context(), in, cmd.OutOrStdout())
	if err != nil {
		opts.logger.Error("batch stopped", zap.Error(err))
		return err
	}

	if opts.config.OutputFormat == config.FormatText {
		fmt.Fprintf(cmd.ErrOrStderr(), "processed %d, succeeded %d, failed %d, fallbacks %d\n",
			stats.Processed, stats.Succeeded, stats.Failed, stats.Fallbacks)
	}
	return nil
}
