package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/weekly-roster/cmd/cli/commands"
	"github.com/jakechorley/weekly-roster/internal/config"
	"github.com/jakechorley/weekly-roster/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{Ctx: context.Background()}
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the process exit code. Clients opened by
// a command are closed whether or not the command succeeded.
func run(args []string) int {
	defer shutdown()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		if app.Logger != nil {
			app.Logger.Error("Command failed", zap.Error(err))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "roster",
		Short:         "Weekly Roster CLI - Allocate employees to weekly shifts",
		Long:          `A CLI tool for allocating employees to morning, afternoon and evening shifts from their ranked preferences.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (selects roster_config.<env>.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")

	rootCmd.AddCommand(commands.AllocateRosterCmd(app))
	rootCmd.AddCommand(commands.ValidatePreferencesCmd(app))
	rootCmd.AddCommand(commands.ListEmployeesCmd(app))

	return rootCmd
}

// shutdown closes any database pools and flushes the logger
func shutdown() {
	app.Close()
	if app.Logger != nil {
		app.Logger.Sync()
	}
}

// initApp sets up the logger and loads configuration. Clients are created
// by the commands that need them.
func initApp() error {
	logger, logFile, err := logging.NewLogger(logging.Options{
		Env:     env,
		Verbose: verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger
	app.Env = env

	app.Logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("log_file", logFile))

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	return nil
}
