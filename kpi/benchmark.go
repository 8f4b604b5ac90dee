package kpi

import (
	"github.com/ozcanhakn/retailmindai-sub000/mapping"
	"github.com/ozcanhakn/retailmindai-sub000/model"
)

func benchmarkKPIs() []model.KPIDefinition {
	return []model.KPIDefinition{
		{
			ID:              "top_product_share",
			Title:           "Top 20% Product Share",
			Description:     "Revenue share of the top fifth of products",
			Category:        model.CategoryBenchmark,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldProductName},
			ChartType:       "pie",
			Visualization:   "large",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return model.KPIValue{Value: paretoShare(rows, mapping.FieldProductName)}, nil
			},
		},
		{
			ID:              "yoy_growth",
			Title:           "Year-over-Year Growth",
			Description:     "Latest calendar year revenue vs the year before",
			Category:        model.CategoryBenchmark,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldDate},
			ChartType:       "bar",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				byYear := make(map[int]float64)
				latest := 0
				for _, row := range rows {
					t, ok := rowDate(row)
					if !ok {
						continue
					}
					byYear[t.Year()] += lineRevenue(row)
					if t.Year() > latest {
						latest = t.Year()
					}
				}
				if latest == 0 {
					return model.KPIValue{}, nil
				}
				return growthTrend(byYear[latest], byYear[latest-1]), nil
			},
		},
		{
			ID:              "conversion_rate",
			Title:           "Conversion Rate",
			Description:     "Placeholder; visitor counts are not in sales uploads",
			Category:        model.CategoryBenchmark,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldOrderID},
			Synthetic:       true,
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return synthetic(2.8, "visitor counts are not part of sales uploads"), nil
			},
		},
		{
			ID:              "cart_abandonment_rate",
			Title:           "Cart Abandonment Rate",
			Description:     "Placeholder; abandoned sessions never reach an upload",
			Category:        model.CategoryBenchmark,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldOrderID},
			Synthetic:       true,
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return synthetic(69.6, "abandoned sessions never reach a sales upload"), nil
			},
		},
		{
			ID:              "revenue_per_visitor",
			Title:           "Revenue per Visitor",
			Description:     "Placeholder; visitor counts are not in sales uploads",
			Category:        model.CategoryBenchmark,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldPrice},
			Synthetic:       true,
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return synthetic(3.4, "visitor counts are not part of sales uploads"), nil
			},
		},
		{
			ID:              "market_share",
			Title:           "Market Share",
			Description:     "Placeholder; market totals come from external sources",
			Category:        model.CategoryBenchmark,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldPrice},
			Synthetic:       true,
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return synthetic(1.2, "market totals require external market data"), nil
			},
		},
	}
}
