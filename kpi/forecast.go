package kpi

import (
	"sort"

	"github.com/ozcanhakn/retailmindai-sub000/mapping"
	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// dailySeries returns per-day revenue sorted by date.
func dailySeries(rows []model.Row) []float64 {
	daily := make(map[string]float64)
	for _, row := range rows {
		t, ok := rowDate(row)
		if !ok {
			continue
		}
		daily[t.Format("2006-01-02")] += lineRevenue(row)
	}
	days := make([]string, 0, len(daily))
	for d := range daily {
		days = append(days, d)
	}
	sort.Strings(days)
	series := make([]float64, len(days))
	for i, d := range days {
		series[i] = daily[d]
	}
	return series
}

// slopePercent fits a least-squares line through the series and expresses
// the daily slope as a percentage of the series mean.
func slopePercent(series []float64) float64 {
	n := float64(len(series))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	slope := (n*sumXY - sumX*sumY) / denom
	mean := sumY / n
	if mean == 0 {
		return 0
	}
	return slope / mean * 100
}

func forecastKPIs() []model.KPIDefinition {
	return []model.KPIDefinition{
		{
			ID:              "projected_monthly_revenue",
			Title:           "Projected Monthly Revenue",
			Description:     "Average daily revenue extrapolated to 30 days",
			Category:        model.CategoryForecast,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldDate},
			ChartType:       "area",
			Visualization:   "large",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return model.KPIValue{Value: totalRevenue(rows) / spanDays(rows) * 30}, nil
			},
		},
		{
			ID:              "projected_annual_revenue",
			Title:           "Projected Annual Revenue",
			Description:     "Average daily revenue extrapolated to 365 days",
			Category:        model.CategoryForecast,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldDate},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return model.KPIValue{Value: totalRevenue(rows) / spanDays(rows) * 365}, nil
			},
		},
		{
			ID:              "revenue_trend",
			Title:           "Revenue Trend",
			Description:     "Daily revenue slope as a share of the daily average",
			Category:        model.CategoryForecast,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldDate},
			ChartType:       "line",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				pct := slopePercent(dailySeries(rows))
				direction := model.TrendStable
				switch {
				case pct > 0.5:
					direction = model.TrendUp
				case pct < -0.5:
					direction = model.TrendDown
				}
				abs := pct
				if abs < 0 {
					abs = -abs
				}
				return model.KPIValue{
					Value: pct,
					Trend: &model.Trend{Direction: direction, Percentage: abs},
				}, nil
			},
		},
		{
			ID:              "projected_monthly_orders",
			Title:           "Projected Monthly Orders",
			Description:     "Orders per day extrapolated to 30 days",
			Category:        model.CategoryForecast,
			Unit:            "orders",
			Format:          model.FormatNumber,
			RequiredColumns: []string{mapping.FieldOrderID, mapping.FieldDate},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				orders := distinctCount(rows, mapping.FieldOrderID, "")
				if orders == 0 {
					orders = len(rows)
				}
				return model.KPIValue{Value: float64(orders) / spanDays(rows) * 30}, nil
			},
		},
		{
			ID:              "projected_units_sold",
			Title:           "Projected Units Sold",
			Description:     "Units per day extrapolated to 30 days",
			Category:        model.CategoryForecast,
			Unit:            "units",
			Format:          model.FormatNumber,
			RequiredColumns: []string{mapping.FieldQuantity, mapping.FieldDate},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				var units float64
				for _, row := range rows {
					units += quantityOf(row)
				}
				return model.KPIValue{Value: units / spanDays(rows) * 30}, nil
			},
		},
		{
			ID:              "forecast_confidence",
			Title:           "Forecast Confidence",
			Description:     "Placeholder confidence score for the projections",
			Category:        model.CategoryForecast,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldDate},
			Synthetic:       true,
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return synthetic(75, "confidence model needs history beyond one upload"), nil
			},
		},
	}
}
