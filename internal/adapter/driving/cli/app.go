package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/epharg/eph-dashboard-go/internal/application/usecase"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
	"github.com/epharg/eph-dashboard-go/pkg/console"
	"github.com/epharg/eph-dashboard-go/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd *cobra.Command
	uc      *usecase.IndicatorsUseCase
	console types.ConsoleInterface
	version string

	// args is resolved once per invocation, before the sub-command runs.
	args *types.CLIArgs
	// quiet skips the banner and the release check.
	quiet bool
}

// NewCLIApp builds the root command and its sub-commands.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
		console: console.NewConsole(),
	}

	rootCmd := &cobra.Command{
		Use:               "eph-dashboard",
		Short:             "EPH household survey indicators",
		Long:              "Computes weighted indicators from the INDEC Encuesta Permanente de Hogares extracts.",
		Version:           version.FormatVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.prepare,
	}
	rootCmd.SetVersionTemplate(`{{printf "EPH Dashboard version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.String("household", "", "Household file, local path or s3://bucket/key (default "+usecase.DefaultHousehold+")")
	flags.String("individual", "", "Individual file, local path or s3://bucket/key (default "+usecase.DefaultIndividual+")")
	flags.String("basket", "", "Basic basket file (default "+usecase.DefaultBasket+")")
	flags.String("processed-dir", "", "Directory for processed datasets (default "+usecase.DefaultProcessedDir+")")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf, xlsx")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.String("unknown-policy", "", "Rows with an unknown aglomerado: reject or bucket (default reject)")
	flags.Int("top", 0, "Number of entries in top-N reports (default 5)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (default info)")
	flags.String("aws-profile", "", "AWS profile used for s3:// sources")
	flags.String("aws-region", "", "AWS region used for s3:// sources")
	flags.BoolVarP(&app.quiet, "quiet", "q", false, "Skip the banner and the release check")

	app.rootCmd = rootCmd
	app.addCommands()
	return app
}

// ExecuteContext runs the CLI application; sub-commands stop scanning once ctx
// is done.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// SetIndicatorsUseCase sets the use case every sub-command runs against.
func (app *CLIApp) SetIndicatorsUseCase(uc *usecase.IndicatorsUseCase) {
	app.uc = uc
}

// SetConsole replaces the console used for the messages the app prints itself.
func (app *CLIApp) SetConsole(c types.ConsoleInterface) {
	app.console = c
}

// parseArgs reads the persistent flags. Slice and numeric flags are only taken
// when given so the config file can still supply them.
func parseArgs(cmd *cobra.Command) *types.CLIArgs {
	flags := cmd.Flags()
	str := func(name string) string {
		v, _ := flags.GetString(name)
		return v
	}

	args := &types.CLIArgs{
		ConfigFile:    str("config-file"),
		Household:     str("household"),
		Individual:    str("individual"),
		Basket:        str("basket"),
		ProcessedDir:  str("processed-dir"),
		ReportName:    str("report-name"),
		Dir:           str("dir"),
		UnknownPolicy: str("unknown-policy"),
		LogLevel:      str("log-level"),
		AWSProfile:    str("aws-profile"),
		AWSRegion:     str("aws-region"),
	}
	if flags.Changed("report-type") {
		args.ReportType, _ = flags.GetStringSlice("report-type")
	}
	if flags.Changed("top") {
		args.Top, _ = flags.GetInt("top")
	}
	return args
}

// prepare shows the banner and resolves the arguments shared by every report.
func (app *CLIApp) prepare(cmd *cobra.Command, _ []string) error {
	if !app.quiet {
		displayWelcomeBanner()
		go version.CheckLatestVersion(app.version)
	}

	if app.uc == nil {
		return errors.New("indicators use case not configured")
	}
	resolved, err := app.uc.ResolveArgs(parseArgs(cmd))
	if err != nil {
		return err
	}
	console.SetupLogging(resolved.LogLevel)
	app.args = resolved
	return nil
}

// report wraps a report runner so an empty result is reported, not failed.
func (app *CLIApp) report(run func(cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		err := run(cmd)
		if errors.Is(err, types.ErrEmptyResult) {
			app.console.LogInfo("%s", err)
			return nil
		}
		return err
	}
}
