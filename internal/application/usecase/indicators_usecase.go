package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/domain/repository"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// Default locations, relative to the working directory.
const (
	DefaultHousehold    = "data_out/usu_hogar.csv"
	DefaultIndividual   = "data_out/usu_individual.csv"
	DefaultBasket       = "data_EPH/canasta_basica.csv"
	DefaultProcessedDir = "processed_data"
	DefaultTop          = 5
)

const remoteScheme = "s3://"

// IndicatorsUseCase runs the indicator reports: it resolves the inputs,
// computes one report, prints it and exports it.
type IndicatorsUseCase struct {
	sources    repository.SourceFactory
	unifier    repository.ExtractUnifier
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	remote     repository.RemoteSource
	catalog    *entity.Catalog
}

// NewIndicatorsUseCase creates a new indicators use case.
func NewIndicatorsUseCase(
	sources repository.SourceFactory,
	unifier repository.ExtractUnifier,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *IndicatorsUseCase {
	return &IndicatorsUseCase{
		sources:    sources,
		unifier:    unifier,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
		catalog:    entity.DefaultCatalog(),
	}
}

// SetRemote sets the account s3:// locations are read with.
func (uc *IndicatorsUseCase) SetRemote(remote repository.RemoteSource) {
	uc.remote = remote
}

// ResolveArgs merges the config file and EPH_* environment into args. Values
// given on the command line win; anything still unset gets its default.
func (uc *IndicatorsUseCase) ResolveArgs(args *types.CLIArgs) (*types.CLIArgs, error) {
	cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return nil, err
	}

	merged := *args
	fill := func(dst *string, values ...string) {
		for _, v := range values {
			if *dst != "" {
				return
			}
			*dst = v
		}
	}
	fill(&merged.Household, cfg.Household, DefaultHousehold)
	fill(&merged.Individual, cfg.Individual, DefaultIndividual)
	fill(&merged.Basket, cfg.Basket, DefaultBasket)
	fill(&merged.ProcessedDir, cfg.ProcessedDir, DefaultProcessedDir)
	fill(&merged.ReportName, cfg.ReportName)
	fill(&merged.Dir, cfg.Dir)
	fill(&merged.UnknownPolicy, cfg.UnknownPolicy, types.UnknownReject)
	fill(&merged.LogLevel, cfg.LogLevel, "info")
	fill(&merged.AWSProfile, cfg.AWSProfile)
	fill(&merged.AWSRegion, cfg.AWSRegion)

	if len(merged.ReportType) == 0 {
		merged.ReportType = cfg.ReportType
	}
	if len(merged.ReportType) == 0 {
		merged.ReportType = []string{"csv"}
	}
	if merged.Top == 0 {
		merged.Top = cfg.Top
	}
	if merged.Top <= 0 {
		merged.Top = DefaultTop
	}

	switch merged.UnknownPolicy {
	case types.UnknownReject, types.UnknownBucket:
	default:
		return nil, fmt.Errorf("%w: unknown policy %q", types.ErrInvalidConfig, merged.UnknownPolicy)
	}

	// Set default directory to current working directory if not specified
	if merged.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		merged.Dir = cwd
	} else {
		absDir, err := filepath.Abs(merged.Dir)
		if err != nil {
			return nil, err
		}
		merged.Dir = absDir
	}

	if uc.remote != nil {
		uc.remote.Configure(merged.AWSProfile, merged.AWSRegion)
	}
	return &merged, nil
}

func locations(args *types.CLIArgs) map[entity.Dataset]string {
	return map[entity.Dataset]string{
		entity.DatasetHousehold:  args.Household,
		entity.DatasetIndividual: args.Individual,
		entity.DatasetBasket:     args.Basket,
	}
}

// Engine builds an engine over the sources named by args.
func (uc *IndicatorsUseCase) Engine(args *types.CLIArgs) *Engine {
	return NewEngine(uc.sources.Survey(locations(args)), uc.catalog, args.UnknownPolicy)
}

// view is a computed report ready for printing and export.
type view struct {
	table entity.Table
	bars  []types.RankingBar
}

// run computes one report behind a spinner, prints it and exports it.
func (uc *IndicatorsUseCase) run(args *types.CLIArgs, message string, compute func(*Engine) (view, error)) error {
	engine := uc.Engine(args)

	status := uc.console.Status(message)
	v, err := compute(engine)
	status.Stop()

	diag := engine.Diagnostics()
	if diag.Total() > 0 {
		uc.console.LogWarning("%s; first: %s", diag.Summary(), strings.Join(diag.Samples(), "; "))
	}
	if err != nil {
		return err
	}

	if diag.Total() > 0 {
		v.table.Notes = append(v.table.Notes, diag.Summary())
	}
	uc.render(v.table)
	if len(v.bars) > 0 {
		uc.console.DisplayRankingBars(v.table.Title, v.bars)
	}
	uc.export(v.table, args)
	return nil
}

func (uc *IndicatorsUseCase) render(t entity.Table) {
	title := t.Title
	if t.Period != "" {
		title = fmt.Sprintf("%s (%s)", t.Title, t.Period)
	}
	uc.console.LogInfo("%s", title)

	table := uc.console.CreateTable()
	for _, col := range t.Columns {
		table.AddColumn(col)
	}
	for _, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for i, c := range row {
			cells[i] = c
		}
		table.AddRow(cells...)
	}
	uc.console.Print(table.Render())
	for _, note := range t.Notes {
		uc.console.Println(note)
	}
}

// export writes t in every requested format when a report name is set.
func (uc *IndicatorsUseCase) export(t entity.Table, args *types.CLIArgs) {
	if args.ReportName == "" || len(args.ReportType) == 0 {
		return
	}
	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			csvPath, err := uc.exportRepo.ExportToCSV(t, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(t, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(t, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		case "xlsx":
			xlsxPath, err := uc.exportRepo.ExportToXLSX(t, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to XLSX: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to XLSX: %s", xlsxPath)
			}
		default:
			uc.console.LogWarning("Unknown report type '%s', skipping", reportType)
		}
	}
}

// periodFilter turns optional --year/--quarter flags into a filter.
func periodFilter(p types.PeriodArgs) (*entity.Period, error) {
	if p.Year == 0 && p.Quarter == 0 {
		return nil, nil
	}
	if !p.IsSet() {
		return nil, fmt.Errorf("%w: --year and --quarter go together", types.ErrInvalidConfig)
	}
	period := entity.Period{Year: p.Year, Quarter: p.Quarter}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: quarter must be between 1 and 4, got %d", types.ErrInvalidConfig, p.Quarter)
	}
	return &period, nil
}

func requirePeriod(p types.PeriodArgs) (entity.Period, error) {
	filter, err := periodFilter(p)
	if err != nil {
		return entity.Period{}, err
	}
	if filter == nil {
		return entity.Period{}, fmt.Errorf("%w: --year and --quarter are required", types.ErrInvalidConfig)
	}
	return *filter, nil
}

func requireYear(year int) error {
	if year <= 0 {
		return fmt.Errorf("%w: --year is required", types.ErrInvalidConfig)
	}
	return nil
}

// RunLiteracy prints the literacy split per year.
func (uc *IndicatorsUseCase) RunLiteracy(ctx context.Context, args *types.CLIArgs) error {
	return uc.run(args, "Computing literacy by year...", func(e *Engine) (view, error) {
		years, err := e.Literacy(ctx)
		if err != nil {
			return view{}, err
		}
		return literacyView(years), nil
	})
}

// RunImmigrants prints the share of university-educated immigrants in a wave.
func (uc *IndicatorsUseCase) RunImmigrants(ctx context.Context, args *types.CLIArgs, period types.PeriodArgs) error {
	p, err := requirePeriod(period)
	if err != nil {
		return err
	}
	return uc.run(args, "Computing university-educated immigrants...", func(e *Engine) (view, error) {
		share, err := e.Immigrants(ctx, p)
		if err != nil {
			return view{}, err
		}
		return periodShareView("Inmigrantes con estudios universitarios", share), nil
	})
}

// RunUnemployment prints the wave with the lowest unemployment.
func (uc *IndicatorsUseCase) RunUnemployment(ctx context.Context, args *types.CLIArgs) error {
	return uc.run(args, "Finding the wave with the lowest unemployment...", func(e *Engine) (view, error) {
		count, err := e.Unemployment(ctx)
		if err != nil {
			return view{}, err
		}
		return periodCountView("Trimestre con menor desocupación", "Desocupados", count), nil
	})
}

// RunUniversityHouseholds prints the top aglomerados by households with two
// or more graduates.
func (uc *IndicatorsUseCase) RunUniversityHouseholds(ctx context.Context, args *types.CLIArgs) error {
	return uc.run(args, "Joining households and individuals...", func(e *Engine) (view, error) {
		report, err := e.UniversityHouseholds(ctx, args.Top)
		if err != nil {
			return view{}, err
		}
		return shareView(report, "Aglomerado"), nil
	})
}

// RunOwners prints owner-occupied households per aglomerado.
func (uc *IndicatorsUseCase) RunOwners(ctx context.Context, args *types.CLIArgs, period types.PeriodArgs) error {
	filter, err := periodFilter(period)
	if err != nil {
		return err
	}
	return uc.run(args, "Computing owner-occupied households...", func(e *Engine) (view, error) {
		report, err := e.Owners(ctx, filter)
		if err != nil {
			return view{}, err
		}
		return shareView(report, "Aglomerado"), nil
	})
}

// RunCrowded prints the aglomerado with the most crowded households without a
// bathroom.
func (uc *IndicatorsUseCase) RunCrowded(ctx context.Context, args *types.CLIArgs, period types.PeriodArgs) error {
	filter, err := periodFilter(period)
	if err != nil {
		return err
	}
	return uc.run(args, "Counting households without a bathroom...", func(e *Engine) (view, error) {
		count, err := e.Crowded(ctx, filter)
		if err != nil {
			return view{}, err
		}
		return areaCountView("Aglomerado con más viviendas sin baño y más de dos ocupantes", filter, count), nil
	})
}

// RunUniversity prints people with higher education per aglomerado.
func (uc *IndicatorsUseCase) RunUniversity(ctx context.Context, args *types.CLIArgs, period types.PeriodArgs) error {
	filter, err := periodFilter(period)
	if err != nil {
		return err
	}
	return uc.run(args, "Computing higher education by aglomerado...", func(e *Engine) (view, error) {
		report, err := e.University(ctx, filter)
		if err != nil {
			return view{}, err
		}
		return shareView(report, "Aglomerado"), nil
	})
}

// RunTenants prints rented households per region.
func (uc *IndicatorsUseCase) RunTenants(ctx context.Context, args *types.CLIArgs, period types.PeriodArgs) error {
	filter, err := periodFilter(period)
	if err != nil {
		return err
	}
	return uc.run(args, "Computing tenants by region...", func(e *Engine) (view, error) {
		report, err := e.Tenants(ctx, filter)
		if err != nil {
			return view{}, err
		}
		return shareView(report, "Región"), nil
	})
}

// RunEducation prints the education table of one aglomerado.
func (uc *IndicatorsUseCase) RunEducation(ctx context.Context, args *types.CLIArgs, aglomerado string) error {
	return uc.run(args, "Tabulating education levels...", func(e *Engine) (view, error) {
		report, err := e.Education(ctx, strings.TrimSpace(aglomerado))
		if err != nil {
			return view{}, err
		}
		return educationView(report), nil
	})
}

// RunCompare prints incomplete secondary education for two aglomerados.
func (uc *IndicatorsUseCase) RunCompare(ctx context.Context, args *types.CLIArgs, first, second string) error {
	return uc.run(args, "Comparing aglomerados...", func(e *Engine) (view, error) {
		report, err := e.Compare(ctx, strings.TrimSpace(first), strings.TrimSpace(second))
		if err != nil {
			return view{}, err
		}
		return comparisonView(report), nil
	})
}

// RunPrecarious prints the aglomerados with the highest and lowest share of
// precarious roofs in the last quarter of year.
func (uc *IndicatorsUseCase) RunPrecarious(ctx context.Context, args *types.CLIArgs, year int) error {
	if err := requireYear(year); err != nil {
		return err
	}
	return uc.run(args, "Computing precarious roofs...", func(e *Engine) (view, error) {
		report, err := e.Precarious(ctx, year)
		if err != nil {
			return view{}, err
		}
		return extremesView(report), nil
	})
}

// RunRetirees prints retirees in insufficient housing per aglomerado.
func (uc *IndicatorsUseCase) RunRetirees(ctx context.Context, args *types.CLIArgs) error {
	return uc.run(args, "Joining retirees and housing...", func(e *Engine) (view, error) {
		report, err := e.Retirees(ctx)
		if err != nil {
			return view{}, err
		}
		return shareView(report, "Aglomerado"), nil
	})
}

// RunUniversityInsufficient prints graduates living in insufficient housing.
func (uc *IndicatorsUseCase) RunUniversityInsufficient(ctx context.Context, args *types.CLIArgs, year int) error {
	if err := requireYear(year); err != nil {
		return err
	}
	return uc.run(args, "Joining graduates and housing...", func(e *Engine) (view, error) {
		count, err := e.UniversityInsufficient(ctx, year)
		if err != nil {
			return view{}, err
		}
		return periodCountView("Universitarios en viviendas con habitabilidad insuficiente", "Personas", count), nil
	})
}

// RunPoverty prints four-member households below the basket lines.
func (uc *IndicatorsUseCase) RunPoverty(ctx context.Context, args *types.CLIArgs, period types.PeriodArgs) error {
	p, err := requirePeriod(period)
	if err != nil {
		return err
	}
	return uc.run(args, "Comparing incomes with the basic basket...", func(e *Engine) (view, error) {
		report, err := e.Poverty(ctx, p)
		if err != nil {
			return view{}, err
		}
		return povertyView(report), nil
	})
}

// RunPeriods prints the waves available in each file.
func (uc *IndicatorsUseCase) RunPeriods(ctx context.Context, args *types.CLIArgs) error {
	return uc.run(args, "Resolving survey periods...", func(e *Engine) (view, error) {
		report, err := e.Periods(ctx)
		if err != nil {
			return view{}, err
		}
		return periodsView(report), nil
	})
}

// RunProcess writes the processed file of ds.
func (uc *IndicatorsUseCase) RunProcess(ctx context.Context, args *types.CLIArgs, dataset string) error {
	ds, err := processable(dataset)
	if err != nil {
		return err
	}
	out := uc.sources.Processed(args.ProcessedDir)
	return uc.run(args, fmt.Sprintf("Processing %s dataset...", ds), func(e *Engine) (view, error) {
		result, err := e.Process(ctx, ds, out)
		if err != nil {
			return view{}, err
		}
		uc.console.LogSuccess("Successfully wrote processed dataset: %s", result.Path)
		return processView(result), nil
	})
}

// RunUnify merges the raw extracts of ds found in srcDir into its configured
// location.
func (uc *IndicatorsUseCase) RunUnify(ctx context.Context, args *types.CLIArgs, srcDir, dataset string) error {
	ds, err := processable(dataset)
	if err != nil {
		return err
	}
	dest := locations(args)[ds]
	if strings.HasPrefix(dest, remoteScheme) {
		return fmt.Errorf("%w: cannot unify into remote location %s", types.ErrInvalidConfig, dest)
	}

	status := uc.console.Status(fmt.Sprintf("Unifying %s extracts from %s...", ds, srcDir))
	result, err := uc.unifier.Unify(ctx, srcDir, ds, dest)
	status.Stop()
	if err != nil {
		return err
	}

	uc.console.LogSuccess("Successfully unified %d files into %s", len(result.Files), result.Path)
	v := unifyView(ds, result)
	uc.render(v.table)
	uc.export(v.table, args)
	return nil
}

func processable(dataset string) (entity.Dataset, error) {
	ds, ok := entity.ParseDataset(dataset)
	if !ok || ds == entity.DatasetBasket {
		return "", fmt.Errorf("%w: dataset must be hogar (H) or individual (I), got %q", types.ErrInvalidConfig, dataset)
	}
	return ds, nil
}

// RunSources prints where each dataset is read from and, for remote sources,
// the AWS account used.
func (uc *IndicatorsUseCase) RunSources(ctx context.Context, args *types.CLIArgs) error {
	locs := locations(args)
	t := entity.Table{
		Title:   "Fuentes de datos",
		Columns: []string{"Dataset", "Ubicación", "Tipo"},
	}
	remote := false
	for _, ds := range []entity.Dataset{entity.DatasetHousehold, entity.DatasetIndividual, entity.DatasetBasket} {
		kind := "local"
		if strings.HasPrefix(locs[ds], remoteScheme) {
			kind = "s3"
			remote = true
		}
		t.AddRow(string(ds), locs[ds], kind)
	}

	if remote && uc.remote != nil {
		status := uc.console.Status("Checking AWS credentials...")
		account, err := uc.remote.AccountID(ctx)
		status.Stop()
		if err != nil {
			uc.console.LogError("Failed to resolve AWS account: %s", err)
		} else {
			t.Notes = append(t.Notes, fmt.Sprintf("AWS account: %s", account))
		}
	}

	uc.render(t)
	uc.export(t, args)
	return nil
}
