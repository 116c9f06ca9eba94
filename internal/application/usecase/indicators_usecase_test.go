package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/domain/repository"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

type recordingConsole struct {
	lines []string
	bars  []types.RankingBar
	rows  [][]interface{}
}

func (c *recordingConsole) add(level, format string, a ...interface{}) {
	c.lines = append(c.lines, level+": "+fmt.Sprintf(format, a...))
}

func (c *recordingConsole) Print(a ...interface{}) { c.lines = append(c.lines, fmt.Sprint(a...)) }
func (c *recordingConsole) Printf(format string, a ...interface{}) { c.add("printf", format, a...) }
func (c *recordingConsole) Println(a ...interface{}) { c.lines = append(c.lines, fmt.Sprint(a...)) }
func (c *recordingConsole) LogInfo(format string, a ...interface{}) { c.add("info", format, a...) }
func (c *recordingConsole) LogWarning(format string, a ...interface{}) { c.add("warning", format, a...) }
func (c *recordingConsole) LogError(format string, a ...interface{}) { c.add("error", format, a...) }
func (c *recordingConsole) LogSuccess(format string, a ...interface{}) { c.add("success", format, a...) }

func (c *recordingConsole) Status(string) types.StatusHandle { return noopStatus{} }

func (c *recordingConsole) CreateTable() types.TableInterface { return &recordingTable{console: c} }

func (c *recordingConsole) DisplayRankingBars(title string, bars []types.RankingBar) {
	c.bars = append(c.bars, bars...)
}

func (c *recordingConsole) has(prefix string) bool {
	for _, l := range c.lines {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop() {}

type recordingTable struct {
	console *recordingConsole
	columns []string
}

func (t *recordingTable) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

func (t *recordingTable) AddRow(cells ...interface{}) {
	t.console.rows = append(t.console.rows, cells)
}

func (t *recordingTable) Render() string {
	return strings.Join(t.columns, "|")
}

type staticConfig struct {
	cfg *types.Config
	err error
}

func (s staticConfig) LoadConfigFile(string) (*types.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.cfg == nil {
		return &types.Config{}, nil
	}
	return s.cfg, nil
}

type recordingExport struct {
	formats []string
	tables  []entity.Table
	fail    bool
}

func (r *recordingExport) record(format string, t entity.Table, name, dir string) (string, error) {
	if r.fail {
		return "", errors.New("read-only directory")
	}
	r.formats = append(r.formats, format)
	r.tables = append(r.tables, t)
	return dir + "/" + name + "." + format, nil
}

func (r *recordingExport) ExportToCSV(t entity.Table, name, dir string) (string, error) {
	return r.record("csv", t, name, dir)
}

func (r *recordingExport) ExportToJSON(t entity.Table, name, dir string) (string, error) {
	return r.record("json", t, name, dir)
}

func (r *recordingExport) ExportToPDF(t entity.Table, name, dir string) (string, error) {
	return r.record("pdf", t, name, dir)
}

func (r *recordingExport) ExportToXLSX(t entity.Table, name, dir string) (string, error) {
	return r.record("xlsx", t, name, dir)
}

type fixedSources struct {
	repo      repository.SurveyRepository
	processed repository.ProcessedRepository
	locations map[entity.Dataset]string
}

func (f *fixedSources) Survey(locations map[entity.Dataset]string) repository.SurveyRepository {
	f.locations = locations
	return f.repo
}

func (f *fixedSources) Processed(string) repository.ProcessedRepository {
	return f.processed
}

type fakeUnifier struct {
	dest string
}

func (u *fakeUnifier) Unify(_ context.Context, srcDir string, ds entity.Dataset, dest string) (repository.UnifyResult, error) {
	u.dest = dest
	return repository.UnifyResult{Path: dest, Files: []string{srcDir + "/usu_" + string(ds) + "_T123.txt"}, Rows: 3}, nil
}

type fakeRemote struct {
	profile, region string
}

func (r *fakeRemote) Configure(profile, region string) {
	r.profile, r.region = profile, region
}

func (r *fakeRemote) AccountID(context.Context) (string, error) { return "123456789012", nil }

type harness struct {
	uc      *IndicatorsUseCase
	console *recordingConsole
	export  *recordingExport
	sources *fixedSources
	unifier *fakeUnifier
}

func newHarness(f *fixture, cfg *types.Config) *harness {
	h := &harness{
		console: &recordingConsole{},
		export:  &recordingExport{},
		sources: &fixedSources{repo: f.repo, processed: &capturedProcessed{}},
		unifier: &fakeUnifier{},
	}
	h.uc = NewIndicatorsUseCase(h.sources, h.unifier, h.export, staticConfig{cfg: cfg}, h.console)
	return h
}

func (h *harness) args(t *testing.T, args types.CLIArgs) *types.CLIArgs {
	t.Helper()
	if args.Dir == "" {
		args.Dir = t.TempDir()
	}
	resolved, err := h.uc.ResolveArgs(&args)
	require.NoError(t, err)
	return resolved
}

func TestResolveArgs(t *testing.T) {
	cfg := &types.Config{
		Household:     "cfg/hogar.csv",
		Individual:    "cfg/individual.csv",
		ReportType:    []string{"json", "pdf"},
		UnknownPolicy: types.UnknownBucket,
		Top:           3,
	}
	h := newHarness(newFixture(), cfg)

	got, err := h.uc.ResolveArgs(&types.CLIArgs{Household: "flag/hogar.csv", Dir: "out"})
	require.NoError(t, err)

	assert.Equal(t, "flag/hogar.csv", got.Household, "flags win over the config file")
	assert.Equal(t, "cfg/individual.csv", got.Individual)
	assert.Equal(t, DefaultBasket, got.Basket)
	assert.Equal(t, DefaultProcessedDir, got.ProcessedDir)
	assert.Equal(t, []string{"json", "pdf"}, got.ReportType)
	assert.Equal(t, types.UnknownBucket, got.UnknownPolicy)
	assert.Equal(t, 3, got.Top)
	assert.Equal(t, "info", got.LogLevel)
	assert.True(t, strings.HasSuffix(got.Dir, "out"))

	defaults, err := newHarness(newFixture(), nil).uc.ResolveArgs(&types.CLIArgs{})
	require.NoError(t, err)
	assert.Equal(t, DefaultHousehold, defaults.Household)
	assert.Equal(t, []string{"csv"}, defaults.ReportType)
	assert.Equal(t, DefaultTop, defaults.Top)
	assert.Equal(t, types.UnknownReject, defaults.UnknownPolicy)
	assert.NotEmpty(t, defaults.Dir)

	_, err = newHarness(newFixture(), nil).uc.ResolveArgs(&types.CLIArgs{UnknownPolicy: "drop"})
	assert.ErrorIs(t, err, types.ErrInvalidConfig)

	broken := NewIndicatorsUseCase(nil, nil, nil, staticConfig{err: types.ErrInvalidConfig}, &recordingConsole{})
	_, err = broken.ResolveArgs(&types.CLIArgs{})
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestRunOwnersRendersAndExports(t *testing.T) {
	f := newFixture().households(
		hh(map[string]string{"PONDERA": "10", "II7": "1"}),
		hh(map[string]string{"PONDERA": "5", "II7": "3"}),
		hh(map[string]string{"AGLOMERADO": "99", "PONDERA": "5"}),
	)
	h := newHarness(f, nil)
	args := h.args(t, types.CLIArgs{ReportName: "owners", ReportType: []string{"csv", "xlsx", "yaml"}})

	require.NoError(t, h.uc.RunOwners(context.Background(), args, types.PeriodArgs{}))

	require.NotEmpty(t, h.console.rows)
	assert.Equal(t, []interface{}{"2", "Gran La Plata", "15", "10", "66.67%"}, h.console.rows[0])
	assert.Len(t, h.console.bars, 32)
	assert.True(t, h.console.has("warning: 1 row skipped (unknown key: 1); first: line 4, column AGLOMERADO: unknown aggregation key: 99"))
	assert.True(t, h.console.has("warning: Unknown report type 'yaml'"))
	assert.True(t, h.console.has("success: Successfully exported to CSV"))

	assert.Equal(t, []string{"csv", "xlsx"}, h.export.formats)
	exported := h.export.tables[0]
	assert.Equal(t, []string{"Código", "Aglomerado", "Total", "Cumplen", "Porcentaje"}, exported.Columns)
	assert.Contains(t, exported.Notes, "1 row skipped (unknown key: 1)")
	assert.Contains(t, exported.Notes, "Total: 10 de 15 (66.67%)")

	assert.Equal(t, DefaultHousehold, h.sources.locations[entity.DatasetHousehold])
}

func TestRunWithoutReportNameSkipsExport(t *testing.T) {
	h := newHarness(newFixture().individuals(ind(nil)), nil)
	require.NoError(t, h.uc.RunLiteracy(context.Background(), h.args(t, types.CLIArgs{})))
	assert.Empty(t, h.export.formats)
}

func TestRunExportFailureIsLogged(t *testing.T) {
	h := newHarness(newFixture().individuals(ind(nil)), nil)
	h.export.fail = true
	args := h.args(t, types.CLIArgs{ReportName: "lit", ReportType: []string{"pdf"}})

	require.NoError(t, h.uc.RunLiteracy(context.Background(), args))
	assert.True(t, h.console.has("error: Failed to export to PDF: read-only directory"))
}

func TestRunPropagatesEmptyResult(t *testing.T) {
	h := newHarness(newFixture().households(hh(nil)), nil)
	err := h.uc.RunCrowded(context.Background(), h.args(t, types.CLIArgs{}), types.PeriodArgs{})
	assert.ErrorIs(t, err, types.ErrEmptyResult)
	assert.Empty(t, h.console.rows)
}

func TestRunValidatesPeriodArgs(t *testing.T) {
	h := newHarness(newFixture(), nil)
	args := h.args(t, types.CLIArgs{})
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
	}{
		{"immigrants needs a period", func() error { return h.uc.RunImmigrants(ctx, args, types.PeriodArgs{}) }},
		{"poverty needs a period", func() error { return h.uc.RunPoverty(ctx, args, types.PeriodArgs{Year: 2023}) }},
		{"quarter out of range", func() error { return h.uc.RunOwners(ctx, args, types.PeriodArgs{Year: 2023, Quarter: 5}) }},
		{"year without quarter", func() error { return h.uc.RunTenants(ctx, args, types.PeriodArgs{Year: 2023}) }},
		{"precarious needs a year", func() error { return h.uc.RunPrecarious(ctx, args, 0) }},
		{"process needs a dataset", func() error { return h.uc.RunProcess(ctx, args, "canasta") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), types.ErrInvalidConfig)
		})
	}
}

func TestRunReports(t *testing.T) {
	f := newFixture().households(
		hh(map[string]string{"CODUSU": "H1", "IV6": "3", "IV4": "5", "IV8": "2", "IX_TOT": "4", "ITF": "50", "II7": "3"}),
		hh(map[string]string{"CODUSU": "H2", "IX_TOT": "4", "ITF": "500"}),
	).individuals(
		ind(map[string]string{"CODUSU": "H1", "NIVEL_ED": "6", "CAT_INAC": "1"}),
		ind(map[string]string{"CODUSU": "H1", "NIVEL_ED": "6", "ESTADO": "2"}),
		ind(map[string]string{"CODUSU": "H2", "NIVEL_ED": "3", "AGLOMERADO": "3", "CH12": "7", "CH15": "4"}),
	).basket([]string{"2023-10-01", "100", "200"})

	h := newHarness(f, nil)
	args := h.args(t, types.CLIArgs{})
	ctx := context.Background()
	q4 := types.PeriodArgs{Year: 2023, Quarter: 4}

	runs := map[string]func() error{
		"literacy":                func() error { return h.uc.RunLiteracy(ctx, args) },
		"immigrants":              func() error { return h.uc.RunImmigrants(ctx, args, q4) },
		"unemployment":            func() error { return h.uc.RunUnemployment(ctx, args) },
		"university-households":   func() error { return h.uc.RunUniversityHouseholds(ctx, args) },
		"owners":                  func() error { return h.uc.RunOwners(ctx, args, q4) },
		"crowded":                 func() error { return h.uc.RunCrowded(ctx, args, types.PeriodArgs{}) },
		"university":              func() error { return h.uc.RunUniversity(ctx, args, types.PeriodArgs{}) },
		"tenants":                 func() error { return h.uc.RunTenants(ctx, args, types.PeriodArgs{}) },
		"education":               func() error { return h.uc.RunEducation(ctx, args, " 2 ") },
		"compare":                 func() error { return h.uc.RunCompare(ctx, args, "2", "3") },
		"precarious":              func() error { return h.uc.RunPrecarious(ctx, args, 2023) },
		"retirees":                func() error { return h.uc.RunRetirees(ctx, args) },
		"university-insufficient": func() error { return h.uc.RunUniversityInsufficient(ctx, args, 2023) },
		"poverty":                 func() error { return h.uc.RunPoverty(ctx, args, q4) },
		"periods":                 func() error { return h.uc.RunPeriods(ctx, args) },
		"process":                 func() error { return h.uc.RunProcess(ctx, args, "H") },
	}
	for name, run := range runs {
		t.Run(name, func(t *testing.T) {
			h.console.rows = nil
			require.NoError(t, run())
			assert.NotEmpty(t, h.console.rows)
		})
	}
}

func TestRunUnify(t *testing.T) {
	h := newHarness(newFixture(), nil)
	args := h.args(t, types.CLIArgs{Individual: "data_out/usu_individual.csv"})

	require.NoError(t, h.uc.RunUnify(context.Background(), args, "files", "I"))
	assert.Equal(t, "data_out/usu_individual.csv", h.unifier.dest)
	assert.Equal(t, []interface{}{"files/usu_individual_T123.txt"}, h.console.rows[0])

	remote := h.args(t, types.CLIArgs{Household: "s3://bucket/usu_hogar.csv"})
	assert.ErrorIs(t, h.uc.RunUnify(context.Background(), remote, "files", "hogar"), types.ErrInvalidConfig)
}

func TestRunSources(t *testing.T) {
	h := newHarness(newFixture(), &types.Config{AWSRegion: "sa-east-1"})
	remote := &fakeRemote{}
	h.uc.SetRemote(remote)
	args := h.args(t, types.CLIArgs{Household: "s3://bucket/usu_hogar.csv", AWSProfile: "eph"})
	assert.Equal(t, &fakeRemote{profile: "eph", region: "sa-east-1"}, remote)

	require.NoError(t, h.uc.RunSources(context.Background(), args))
	require.Len(t, h.console.rows, 3)
	assert.Equal(t, []interface{}{"hogar", "s3://bucket/usu_hogar.csv", "s3"}, h.console.rows[0])
	assert.Equal(t, []interface{}{"individual", DefaultIndividual, "local"}, h.console.rows[1])
	assert.True(t, h.console.has("AWS account: 123456789012"))
}
