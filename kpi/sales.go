package kpi

import (
	"github.com/ozcanhakn/retailmindai-sub000/mapping"
	"github.com/ozcanhakn/retailmindai-sub000/model"
)

func salesKPIs() []model.KPIDefinition {
	return []model.KPIDefinition{
		{
			ID:              "total_revenue",
			Title:           "Total Revenue",
			Description:     "Sum of price × quantity across all rows",
			Category:        model.CategorySales,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldPrice},
			ChartType:       "area",
			Visualization:   "large",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return model.KPIValue{Value: totalRevenue(rows)}, nil
			},
		},
		{
			ID:              "total_orders",
			Title:           "Total Orders",
			Description:     "Distinct order count",
			Category:        model.CategorySales,
			Unit:            "orders",
			Format:          model.FormatNumber,
			RequiredColumns: []string{mapping.FieldOrderID},
			ChartType:       "bar",
			Visualization:   "large",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				orders := distinctCount(rows, mapping.FieldOrderID, "")
				if orders == 0 {
					orders = len(rows)
				}
				return model.KPIValue{Value: float64(orders)}, nil
			},
		},
		{
			ID:              "average_order_value",
			Title:           "Average Order Value",
			Description:     "Revenue divided by distinct orders",
			Category:        model.CategorySales,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldOrderID},
			ChartType:       "line",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				orders := distinctCount(rows, mapping.FieldOrderID, "")
				if orders == 0 {
					orders = len(rows)
				}
				if orders == 0 {
					return model.KPIValue{}, nil
				}
				return model.KPIValue{Value: totalRevenue(rows) / float64(orders)}, nil
			},
		},
		{
			ID:              "total_units_sold",
			Title:           "Total Units Sold",
			Description:     "Sum of quantities across all rows",
			Category:        model.CategorySales,
			Unit:            "units",
			Format:          model.FormatNumber,
			RequiredColumns: []string{mapping.FieldQuantity},
			ChartType:       "bar",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				var units float64
				for _, row := range rows {
					units += quantityOf(row)
				}
				return model.KPIValue{Value: units}, nil
			},
		},
		{
			ID:              "average_unit_price",
			Title:           "Average Unit Price",
			Description:     "Revenue divided by units sold",
			Category:        model.CategorySales,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldQuantity},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				var units float64
				for _, row := range rows {
					units += quantityOf(row)
				}
				if units == 0 {
					return model.KPIValue{}, nil
				}
				return model.KPIValue{Value: totalRevenue(rows) / units}, nil
			},
		},
		{
			ID:              "revenue_growth",
			Title:           "Revenue Growth",
			Description:     "Second half of the date range vs the first half",
			Category:        model.CategorySales,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldDate},
			ChartType:       "line",
			Visualization:   "large",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				first, second := splitHalves(rows)
				return growthTrend(totalRevenue(second), totalRevenue(first)), nil
			},
		},
		{
			ID:              "peak_day_revenue",
			Title:           "Peak Day Revenue",
			Description:     "Highest single-day revenue in the dataset",
			Category:        model.CategorySales,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldDate},
			ChartType:       "bar",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				daily := make(map[string]float64)
				for _, row := range rows {
					t, ok := rowDate(row)
					if !ok {
						continue
					}
					daily[t.Format("2006-01-02")] += lineRevenue(row)
				}
				var peak float64
				for _, v := range daily {
					if v > peak {
						peak = v
					}
				}
				return model.KPIValue{Value: peak}, nil
			},
		},
		{
			ID:              "average_daily_revenue",
			Title:           "Average Daily Revenue",
			Description:     "Revenue averaged over the covered date range",
			Category:        model.CategorySales,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldDate},
			ChartType:       "area",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return model.KPIValue{Value: totalRevenue(rows) / spanDays(rows)}, nil
			},
		},
	}
}
