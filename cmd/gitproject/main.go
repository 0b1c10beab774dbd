package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitproject/cmd/ui"
	"github.com/utkarsh5026/gitproject/pkg/common/err"
	"github.com/utkarsh5026/gitproject/pkg/common/logger"
	"github.com/utkarsh5026/gitproject/pkg/config"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

var (
	logLevel  string
	logFormat string
	verbose   bool
)

func main() {
	if e := newRootCmd().Execute(); e != nil {
		reportError(os.Stderr, e)
		os.Exit(1)
	}
}

// reportError prints a failed command's error. Errors from the engine are
// also logged with their origin at debug level.
func reportError(w io.Writer, e error) {
	fmt.Fprintln(w, ui.ErrorMessage("Error: "+e.Error()))
	if code := err.GetCode(e); code != "" {
		logger.Debug("command failed", "package", err.GetPackage(e), "op", err.GetOp(e), "code", code)
	}
	if err.IsCode(e, err.CodeLockFailed) {
		if pid := lockHolder(e); pid > 0 {
			fmt.Fprintln(w, ui.WarningMessage(fmt.Sprintf("process %d holds the repository lock", pid)))
		}
	}
}

// lockHolder digs the holder pid out of a lock failure, however deeply wrapped.
func lockHolder(e error) int {
	var base *err.Error
	for errors.As(e, &base) {
		if pid, ok := base.GetContext("holder").(int); ok {
			return pid
		}
		e = base.Err
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gitproject",
		Short:         "gitproject - a minimal snapshot version control system",
		Long:          getBanner(),
		Version:       fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newCheckoutCmd())
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newCatFileCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func getBanner() string {
	return `
  gitproject keeps snapshots of a working directory.

  Every commit stores only what changed; the rest is reached through a
  link to the previous snapshot.

  Get started with: gitproject init
  Stage changes:    gitproject add <path>
  Record them:      gitproject commit -m "message"
`
}

// setupLogging configures logger.Default from log.level and log.format. The
// --log-level and --log-format flags enter the configuration at the
// command-line level, so they beat GITPROJECT_LOG_LEVEL and the files.
func setupLogging(cmd *cobra.Command) {
	cfg := loadConfig(cmd)

	levelName := cfg.GetString(config.KeyLogLevel, logLevel)
	level, ok := logger.ParseLevel(levelName)
	if !ok {
		level = logger.LevelWarn
	}
	if verbose {
		level = logger.LevelDebug
	}

	logger.Default = logger.New(logger.Config{
		Level:  level,
		Format: logger.ParseFormat(cfg.GetString(config.KeyLogFormat, logFormat)),
		Output: cmd.ErrOrStderr(),
	})
}

// applyFlags copies the global flags the user actually passed into cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Manager) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.SetCommandLine(config.KeyLogLevel, logLevel)
	}
	if flags.Changed("log-format") {
		cfg.SetCommandLine(config.KeyLogFormat, logFormat)
	}
}
