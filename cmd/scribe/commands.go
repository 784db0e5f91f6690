package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"codeberg.org/codescribe/server/internal/logger"
	"codeberg.org/codescribe/server/internal/scribe"
	"github.com/spf13/cobra"
)

// rootCmd runs one action against a file or stdin
func (a *app) newRootCmd() *cobra.Command {
	var (
		model   string
		asJSON  bool
		verbose bool
	)

	root := &cobra.Command{
		Use:   "scribe <action> [file]",
		Short: "Explain, test, document, audit or draft a README for code",
		Long: `Run one code action and print the model's answer.

Actions:
  explain - walk through purpose, key logic, edge cases and complexity
  tests   - write unit tests (pytest for Python, Jest otherwise)
  docs    - add docstrings/comments without changing behavior
  audit   - list issues by severity and suggest refactors
  readme  - draft a README.md (works without code)

Code is read from file, or from stdin when file is omitted or "-".
Without an API key the result is a demo echo of the prompt.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logger.SetOutput(cmd.ErrOrStderr())
			} else {
				logger.SetOutput(io.Discard)
			}

			// fail fast on a bad action before touching input or config
			action, err := scribe.ParseAction(args[0])
			if err != nil {
				return err
			}

			path := "-"
			if len(args) == 2 {
				path = args[1]
			}

			code, err := readCode(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			dispatcher, err := a.newDispatcher(cmd.Context(), model)
			if err != nil {
				return err
			}

			result, err := dispatcher.Run(cmd.Context(), string(action), code)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Text)
			return err
		},
	}

	root.Flags().StringVarP(&model, "model", "m", "", "model override (default from LLM_MODEL or the provider default)")
	root.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(newActionsCmd())

	return root
}

// actionsCmd lists the recognized actions
func newActionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List the recognized actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, action := range scribe.Actions() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), action); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// reads code from path, or from stdin for "-". an interactive terminal on stdin reads as empty.
func readCode(stdin io.Reader, path string) (string, error) {
	if path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	}

	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}

	return string(data), nil
}
