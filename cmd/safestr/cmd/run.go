package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/safestr/internal/script"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		stopOnFailure bool
		timeout       time.Duration
	)

	runCmd := &cobra.Command{
		Use:   "run [script.yaml...]",
		Short: "Execute operation scripts and check their expectations",
		Long: `Runs every script in the given YAML files. Without arguments all
*.yaml and *.yml files of the configured scripts directory are run.

The command fails when any step does not meet its expectations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				var err error
				if files, err = scriptFiles(a.cfg.Scripts.Dir); err != nil {
					return err
				}
			}

			opts := script.Options{
				DefaultCapacity: a.cfg.Limits.DefaultScriptCapacity,
				StringOptions:   a.cfg.StringOptions(),
				Timeout:         a.cfg.Scripts.Timeout.Duration,
				StopOnFailure:   a.cfg.Scripts.StopOnFailure,
				Logger:          a.logger,
			}
			if cmd.Flags().Changed("stop-on-failure") {
				opts.StopOnFailure = stopOnFailure
			}
			if cmd.Flags().Changed("timeout") {
				opts.Timeout = timeout
			}

			runner, err := script.NewRunner(nil, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total, failed := 0, 0
			for _, file := range files {
				reports, err := runner.RunFile(cmd.Context(), file)
				for _, report := range reports {
					fmt.Fprint(out, report.Render(a.verbose))
					total++
					if !report.Passed() {
						failed++
					}
				}
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(out, "\n%d scripts, %d failed\n", total, failed)
			if failed > 0 {
				return errFailures
			}
			return nil
		},
	}

	runCmd.Flags().BoolVar(&stopOnFailure, "stop-on-failure", false, "stop a script at its first failed step")
	runCmd.Flags().DurationVar(&timeout, "timeout", 0, "timeout per script (overrides config)")
	return runCmd
}

// scriptFiles returns the sorted script files of dir
func scriptFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("scripts directory: %w", err)
		}
		return nil, fmt.Errorf("no scripts found in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}
