package main

import (
	"context"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitflow-hooks/internal"
	"github.com/rios0rios0/gitflow-hooks/internal/infrastructure/telemetry"
)

// version is set at build time with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // build-time variable
var version = "dev"

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "gitflow-hooks",
		Short: "Git-Flow validation and command runner for git hooks",
		Long: `Enforces Git-Flow branching rules from git hooks: branch naming,
creation bases, merge directions, commit message conventions, foxtrot
merges, and commit limits. Each hook also runs the commands declared for it
in .githooks/commands.conf, sequentially or in bounded parallel.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			if verbose, _ := command.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(logger.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  bind.Args,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}
		rootCmd.AddCommand(subCmd)
	}
}

func configureLogger() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)
	switch {
	case os.Getenv("GITHOOKS_TRACE_LOG") == "true":
		logger.SetLevel(logger.TraceLevel)
	case os.Getenv("DEBUG") == "true":
		logger.SetLevel(logger.DebugLevel)
	}
}

func run() int {
	configureLogger()

	shutdown, err := telemetry.Init("gitflow-hooks", version)
	if err != nil {
		logger.Warnf("Tracing disabled: %v", err)
	} else {
		defer func() { _ = shutdown(context.Background()) }()
	}

	app, err := buildAppContext()
	if err != nil {
		logger.Error(err)
		return 1
	}
	cobraRoot := buildRootCommand()
	addSubcommands(cobraRoot, app)

	if execErr := cobraRoot.ExecuteContext(context.Background()); execErr != nil {
		logger.Errorf("Error executing 'gitflow-hooks': %s", execErr)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
