package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/msto63/safestr/internal/tui"
	"github.com/msto63/safestr/pkg/core/config"
	"github.com/msto63/safestr/pkg/core/logging"
)

// errFailures is returned when a script run finished with failed steps
var errFailures = errors.New("expectations failed")

// app holds what every subcommand needs once flags are parsed
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string
	verbose   bool

	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "safestr",
		Short: "safestr - bounds-checked byte strings",
		Long: `safestr exercises the safestr library from the command line.

Commands:
  demo     - walk through the String operations
  run      - execute YAML operation scripts and check their expectations
  ops      - list the operations available to scripts
  version  - show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $"+config.EnvConfigPath+" or ./safestr.toml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (json, console)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newDemoCmd(a),
		newRunCmd(a),
		newOpsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the logger
func (a *app) setup(stderr io.Writer) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		a.cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		a.cfg.Logging.Format = a.logFormat
	}
	if a.verbose && a.logLevel == "" {
		a.cfg.Logging.Level = logging.LevelDebug.String()
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	lc := a.cfg.LoggerConfig(a.cfg.General.Name)
	lc.Output = stderr
	a.logger = logging.NewLogger(lc)
	return nil
}

func Execute() error {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errFailures) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, tui.RenderError(err.Error()))
}
