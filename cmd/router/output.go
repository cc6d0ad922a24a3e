package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aescanero/dago-matcher/internal/config"
	"github.com/aescanero/dago-matcher/internal/router"
	"github.com/spf13/cobra"
)

// openInput opens path for reading; "-" is the command's stdin
func openInput(path string, cmd *cobra.Command) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func writeResult(w io.Writer, format string, result *router.RoutingResult) error {
	if format == config.FormatText {
		_, err := fmt.Fprintf(w, "target: %s\npath: %s\nreasoning: %s\noutput: %s\n",
			result.TargetNode, result.PathTaken, result.Reasoning, result.Output)
		return err
	}
	return writeJSON(w, result)
}

func writeValidation(w io.Writer, format string, result ValidationResult) error {
	if format == config.FormatText {
		var err error
		if result.Valid {
			_, err = fmt.Fprintf(w, "%s: valid (%d rules)\n", result.File, result.Rules)
		} else {
			_, err = fmt.Fprintf(w, "%s: invalid: %s\n", result.File, result.Error)
		}
		return err
	}
	return writeJSON(w, result)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
