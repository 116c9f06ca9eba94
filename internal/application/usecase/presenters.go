package usecase

import (
	"fmt"
	"strconv"

	"github.com/epharg/eph-dashboard-go/internal/domain/derivation"
	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/domain/repository"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func formatCount(v int64) string {
	return strconv.FormatInt(v, 10)
}

func periodLabel(p *entity.Period) string {
	if p == nil {
		return ""
	}
	return p.String()
}

func shareView(r entity.ShareReport, areaLabel string) view {
	v := view{table: entity.Table{
		Title:   r.Title,
		Period:  periodLabel(r.Period),
		Columns: []string{"Código", areaLabel, "Total", "Cumplen", "Porcentaje"},
	}}
	for _, e := range r.Entries {
		v.table.AddRow(e.Code, e.Name, formatCount(e.Total), formatCount(e.Matched), formatPercent(e.Percentage))
		v.bars = append(v.bars, types.RankingBar{Label: e.Name, Percentage: e.Percentage})
	}
	if len(r.Entries) == 0 {
		v.table.Notes = append(v.table.Notes, "Sin datos para los criterios pedidos.")
	}
	if r.Overall.Total > 0 {
		v.table.Notes = append(v.table.Notes, fmt.Sprintf("Total: %s de %s (%s)",
			formatCount(r.Overall.Matched), formatCount(r.Overall.Total), formatPercent(r.Overall.Percentage)))
	}
	return v
}

func literacyView(years []entity.LiteracyYear) view {
	v := view{table: entity.Table{
		Title:   "Alfabetización de personas mayores de 6 años (cuarto trimestre)",
		Columns: []string{"Año", "Total", "Alfabetizados", "No alfabetizados"},
	}}
	for _, y := range years {
		v.table.AddRow(strconv.Itoa(y.Year), formatCount(y.Total), formatPercent(y.LiteratePercentage), formatPercent(y.IlliteratePercentage))
	}
	return v
}

func periodShareView(title string, s entity.PeriodShare) view {
	v := view{table: entity.Table{
		Title:   title,
		Period:  s.Period.String(),
		Columns: []string{"Período", "Total", "Cumplen", "Porcentaje"},
	}}
	v.table.AddRow(s.Period.String(), formatCount(s.Total), formatCount(s.Matched), formatPercent(s.Percentage))
	return v
}

func periodCountView(title, label string, c entity.PeriodCount) view {
	v := view{table: entity.Table{
		Title:   title,
		Period:  c.Period.String(),
		Columns: []string{"Año", "Trimestre", label},
	}}
	v.table.AddRow(strconv.Itoa(c.Period.Year), strconv.Itoa(c.Period.Quarter), formatCount(c.Count))
	return v
}

func areaCountView(title string, filter *entity.Period, c entity.AreaCount) view {
	v := view{table: entity.Table{
		Title:   title,
		Period:  periodLabel(filter),
		Columns: []string{"Código", "Aglomerado", "Viviendas"},
	}}
	v.table.AddRow(c.Code, c.Name, formatCount(c.Count))
	return v
}

func educationView(r entity.EducationReport) view {
	columns := append([]string{"Año", "Trimestre"}, derivation.EducationBuckets[:]...)
	v := view{table: entity.Table{
		Title:   fmt.Sprintf("Nivel educativo de mayores de edad en %s", r.Aglomerado.Name),
		Columns: columns,
	}}
	for _, row := range r.Rows {
		cells := []string{strconv.Itoa(row.Period.Year), strconv.Itoa(row.Period.Quarter)}
		for _, n := range row.Counts {
			cells = append(cells, formatCount(n))
		}
		v.table.AddRow(cells...)
	}
	return v
}

func comparisonView(r entity.ComparisonReport) view {
	v := view{table: entity.Table{
		Title:   "Mayores de edad con secundario incompleto",
		Columns: []string{"Año", "Trimestre", r.First.Name, r.Second.Name},
	}}
	for _, row := range r.Rows {
		v.table.AddRow(strconv.Itoa(row.Period.Year), strconv.Itoa(row.Period.Quarter), formatPercent(row.First), formatPercent(row.Second))
	}
	return v
}

func extremesView(r entity.ExtremesReport) view {
	v := view{table: entity.Table{
		Title:   "Viviendas con techo de material precario",
		Period:  r.Period.String(),
		Columns: []string{"", "Código", "Aglomerado", "Porcentaje"},
	}}
	v.table.AddRow("Mayor", r.Highest.Code, r.Highest.Name, formatPercent(r.Highest.Percentage))
	v.table.AddRow("Menor", r.Lowest.Code, r.Lowest.Name, formatPercent(r.Lowest.Percentage))
	v.bars = []types.RankingBar{
		{Label: r.Highest.Name, Percentage: r.Highest.Percentage},
		{Label: r.Lowest.Name, Percentage: r.Lowest.Percentage},
	}
	return v
}

func povertyView(r entity.PovertyReport) view {
	v := view{table: entity.Table{
		Title:   "Hogares de cuatro integrantes bajo las líneas de la canasta básica",
		Period:  r.Period.String(),
		Columns: []string{"Línea", "Valor promedio", "Hogares", "Bajo la línea", "Porcentaje"},
	}}
	v.table.AddRow("Indigencia", fmt.Sprintf("%.2f", r.IndigenceLine), formatCount(r.Households), formatCount(r.BelowIndigence), formatPercent(r.IndigencePercentage))
	v.table.AddRow("Pobreza", fmt.Sprintf("%.2f", r.PovertyLine), formatCount(r.Households), formatCount(r.BelowPoverty), formatPercent(r.PovertyPercentage))
	v.bars = []types.RankingBar{
		{Label: "Indigencia", Percentage: r.IndigencePercentage},
		{Label: "Pobreza", Percentage: r.PovertyPercentage},
	}
	return v
}

func periodsView(r entity.PeriodsReport) view {
	v := view{table: entity.Table{
		Title:   "Períodos disponibles",
		Columns: []string{"Fuente", "Desde", "Hasta"},
	}}
	add := func(name string, rng *entity.PeriodRange) {
		if rng == nil {
			v.table.AddRow(name, "-", "-")
			return
		}
		v.table.AddRow(name, rng.Min.String(), rng.Max.String())
	}
	add("Hogares", r.Household)
	add("Individuos", r.Individual)
	add("Combinado", r.Combined)
	return v
}

func processView(r ProcessResult) view {
	v := view{table: entity.Table{
		Title:   fmt.Sprintf("Dataset procesado: %s", r.Dataset),
		Columns: []string{"Archivo", "Filas", "Columnas"},
	}}
	v.table.AddRow(r.Path, strconv.Itoa(r.Rows), strconv.Itoa(len(r.Columns)))
	if r.Truncated > 0 {
		v.table.Notes = append(v.table.Notes, fmt.Sprintf("%d filas con campos de más fueron recortadas", r.Truncated))
	}
	return v
}

func unifyView(ds entity.Dataset, r repository.UnifyResult) view {
	v := view{table: entity.Table{
		Title:   fmt.Sprintf("Extractos unificados: %s", ds),
		Columns: []string{"Archivo"},
	}}
	for _, f := range r.Files {
		v.table.AddRow(f)
	}
	v.table.Notes = append(v.table.Notes, fmt.Sprintf("%d filas escritas en %s", r.Rows, r.Path))
	return v
}
