package cli

import (
	"github.com/spf13/cobra"

	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

func periodFlags(cmd *cobra.Command, required bool) {
	cmd.Flags().Int("year", 0, "Survey year (ANO4)")
	cmd.Flags().Int("quarter", 0, "Survey quarter (TRIMESTRE), 1 to 4")
	if required {
		_ = cmd.MarkFlagRequired("year")
		_ = cmd.MarkFlagRequired("quarter")
	}
}

func periodArgs(cmd *cobra.Command) types.PeriodArgs {
	year, _ := cmd.Flags().GetInt("year")
	quarter, _ := cmd.Flags().GetInt("quarter")
	return types.PeriodArgs{Year: year, Quarter: quarter}
}

func (app *CLIApp) addCommands() {
	literacy := &cobra.Command{
		Use:   "literacy",
		Short: "Literacy rate of persons older than 6 per year (fourth quarter)",
		RunE: app.report(func(cmd *cobra.Command) error {
			return app.uc.RunLiteracy(cmd.Context(), app.args)
		}),
	}

	immigrants := &cobra.Command{
		Use:   "immigrants",
		Short: "Share of foreign-born persons who arrived in the last five years",
		RunE: app.report(func(cmd *cobra.Command) error {
			return app.uc.RunImmigrants(cmd.Context(), app.args, periodArgs(cmd))
		}),
	}
	periodFlags(immigrants, true)

	unemployment := &cobra.Command{
		Use:   "unemployment",
		Short: "Wave with the lowest weighted unemployment",
		RunE: app.report(func(cmd *cobra.Command) error {
			return app.uc.RunUnemployment(cmd.Context(), app.args)
		}),
	}

	universityHouseholds := &cobra.Command{
		Use:   "university-households",
		Short: "Top aglomerados by households with two or more university graduates",
		RunE: app.report(func(cmd *cobra.Command) error {
			return app.uc.RunUniversityHouseholds(cmd.Context(), app.args)
		}),
	}

	owners := &cobra.Command{
		Use:   "owners",
		Short: "Owner-occupied households per aglomerado",
		RunE: app.report(func(cmd *cobra.Command) error {
			return app.uc.RunOwners(cmd.Context(), app.args, periodArgs(cmd))
		}),
	}
	periodFlags(owners, false)

	crowded := &cobra.Command{
		Use:   "crowded",
		Short: "Aglomerado with most households of more than two persons without a bathroom",
		RunE: app.report(func(cmd *cobra.Command) error {
			return app.uc.RunCrowded(cmd.Context(), app.args, periodArgs(cmd))
		}),
	}
	periodFlags(crowded, false)

	university := &cobra.Command{
		Use:   "university",
		Short: "Persons with university studies per aglomerado",
		RunE: app.report(func(cmd *cobra.Command) error {
			return app.uc.RunUniversity(cmd.Context(), app.args, periodArgs(cmd))
		}),
	}
	periodFlags(university, false)

	tenants := &cobra.Command{
		Use:   "tenants",
		Short: "Rented households per region",
		RunE: app.report(func(cmd *cobra.Command) error {
			return app.uc.RunTenants(cmd.Context(), app.args, periodArgs(cmd))
		}),
	}
	periodFlags(tenants, false)

	education := &cobra.Command{
		Use:   "education",
		Short: "Adults by education level per wave for one aglomerado",
		RunE: app.report(func(cmd *cobra.Command) error {
			code, _ := cmd.Flags().GetString("aglomerado")
			return app.uc.RunEducation(cmd.Context(), app.args, code)
		}),
	}
	education.Flags().StringP("aglomerado", "a", "", "Aglomerado code")
	_ = education.MarkFlagRequired("aglomerado")

	compare := &cobra.Command{
		Use:   "compare",
		Short: "Compare incomplete secondary education between two aglomerados",
		RunE: app.report(func(cmd *cobra.Command) error {
			first, _ := cmd.Flags().GetString("first")
			second, _ := cmd.Flags().GetString("second")
			return app.uc.RunCompare(cmd.Context(), app.args, first, second)
		}),
	}
	compare.Flags().String("first", "", "First aglomerado code")
	compare.Flags().String("second", "", "Second aglomerado code")
	_ = compare.MarkFlagRequired("first")
	_ = compare.MarkFlagRequired("second")

	precarious := &cobra.Command{
		Use:   "precarious",
		Short: "Aglomerados with the lowest and highest share of precarious roofs",
		RunE: app.report(func(cmd *cobra.Command) error {
			year, _ := cmd.Flags().GetInt("year")
			return app.uc.RunPrecarious(cmd.Context(), app.args, year)
		}),
	}
	precarious.Flags().Int("year", 0, "Survey year (ANO4)")
	_ = precarious.MarkFlagRequired("year")

	retirees := &cobra.Command{
		Use:   "retirees",
		Short: "Retirees living in insufficient housing per aglomerado",
		RunE: app.report(func(cmd *cobra.Command) error {
			return app.uc.RunRetirees(cmd.Context(), app.args)
		}),
	}

	universityInsufficient := &cobra.Command{
		Use:   "university-insufficient",
		Short: "Persons with higher education living in insufficient housing",
		RunE: app.report(func(cmd *cobra.Command) error {
			year, _ := cmd.Flags().GetInt("year")
			return app.uc.RunUniversityInsufficient(cmd.Context(), app.args, year)
		}),
	}
	universityInsufficient.Flags().Int("year", 0, "Survey year (ANO4)")
	_ = universityInsufficient.MarkFlagRequired("year")

	poverty := &cobra.Command{
		Use:   "poverty",
		Short: "Four-person households below the indigence and poverty lines",
		RunE: app.report(func(cmd *cobra.Command) error {
			return app.uc.RunPoverty(cmd.Context(), app.args, periodArgs(cmd))
		}),
	}
	periodFlags(poverty, true)

	periods := &cobra.Command{
		Use:   "periods",
		Short: "Waves available in each survey file",
		RunE: app.report(func(cmd *cobra.Command) error {
			return app.uc.RunPeriods(cmd.Context(), app.args)
		}),
	}

	process := &cobra.Command{
		Use:   "process",
		Short: "Write a dataset with its derived columns",
		RunE: app.report(func(cmd *cobra.Command) error {
			ds, _ := cmd.Flags().GetString("dataset")
			return app.uc.RunProcess(cmd.Context(), app.args, ds)
		}),
	}
	process.Flags().String("dataset", "", "Dataset: hogar (H) or individual (I)")
	_ = process.MarkFlagRequired("dataset")

	unify := &cobra.Command{
		Use:   "unify",
		Short: "Merge raw quarterly extracts into one dataset file",
		RunE: app.report(func(cmd *cobra.Command) error {
			src, _ := cmd.Flags().GetString("src")
			ds, _ := cmd.Flags().GetString("dataset")
			return app.uc.RunUnify(cmd.Context(), app.args, src, ds)
		}),
	}
	unify.Flags().String("src", "data_EPH", "Directory holding the raw extracts")
	unify.Flags().String("dataset", "", "Dataset: hogar (H) or individual (I)")
	_ = unify.MarkFlagRequired("dataset")

	sources := &cobra.Command{
		Use:   "sources",
		Short: "Show where each dataset is read from",
		RunE: app.report(func(cmd *cobra.Command) error {
			return app.uc.RunSources(cmd.Context(), app.args)
		}),
	}

	app.rootCmd.AddCommand(
		literacy, immigrants, unemployment, universityHouseholds,
		owners, crowded, university, tenants, education, compare,
		precarious, retirees, universityInsufficient, poverty,
		periods, process, unify, sources,
	)
}
