package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/epharg/eph-dashboard-go/internal/adapter/driven/config"
	"github.com/epharg/eph-dashboard-go/internal/adapter/driven/export"
	"github.com/epharg/eph-dashboard-go/internal/adapter/driven/survey"
	"github.com/epharg/eph-dashboard-go/internal/adapter/driving/cli"
	"github.com/epharg/eph-dashboard-go/internal/application/usecase"
	"github.com/epharg/eph-dashboard-go/pkg/console"
	"github.com/epharg/eph-dashboard-go/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	// Adapters
	s3Opener := survey.NewS3Opener("", "")
	sources := survey.NewFactory(survey.NewRoutingOpener(s3Opener))
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	indicators := usecase.NewIndicatorsUseCase(
		sources,
		survey.NewUnifier(),
		exportRepo,
		configRepo,
		consoleImpl,
	)
	indicators.SetRemote(s3Opener)

	app.SetIndicatorsUseCase(indicators)
	app.SetConsole(consoleImpl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
