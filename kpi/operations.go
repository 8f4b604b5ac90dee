package kpi

import (
	"github.com/ozcanhakn/retailmindai-sub000/mapping"
	"github.com/ozcanhakn/retailmindai-sub000/model"
)

func statusShare(rows []model.Row, states ...string) float64 {
	if len(rows) == 0 {
		return 0
	}
	matched := 0
	for _, row := range rows {
		if statusIs(row, states...) {
			matched++
		}
	}
	return ratioPercent(float64(matched), float64(len(rows)))
}

func operationsKPIs() []model.KPIDefinition {
	return []model.KPIDefinition{
		{
			ID:              "average_items_per_order",
			Title:           "Avg Items per Order",
			Description:     "Units sold divided by distinct orders",
			Category:        model.CategoryOperations,
			Unit:            "units",
			Format:          model.FormatDecimal,
			RequiredColumns: []string{mapping.FieldQuantity, mapping.FieldOrderID},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				orders := distinctCount(rows, mapping.FieldOrderID, "")
				if orders == 0 {
					orders = len(rows)
				}
				if orders == 0 {
					return model.KPIValue{}, nil
				}
				var units float64
				for _, row := range rows {
					units += quantityOf(row)
				}
				return model.KPIValue{Value: units / float64(orders)}, nil
			},
		},
		{
			ID:              "fulfillment_rate",
			Title:           "Fulfillment Rate",
			Description:     "Share of rows delivered, shipped or completed",
			Category:        model.CategoryOperations,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldStatus},
			ChartType:       "pie",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return model.KPIValue{Value: statusShare(rows, "delivered", "shipped", "completed", "fulfilled")}, nil
			},
		},
		{
			ID:              "return_rate",
			Title:           "Return Rate",
			Description:     "Share of rows returned or refunded",
			Category:        model.CategoryOperations,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldStatus},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return model.KPIValue{Value: statusShare(rows, "returned", "refunded")}, nil
			},
		},
		{
			ID:              "cancellation_rate",
			Title:           "Cancellation Rate",
			Description:     "Share of rows cancelled",
			Category:        model.CategoryOperations,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldStatus},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return model.KPIValue{Value: statusShare(rows, "cancelled", "canceled")}, nil
			},
		},
		{
			ID:              "orders_per_day",
			Title:           "Orders per Day",
			Description:     "Distinct orders averaged over the date range",
			Category:        model.CategoryOperations,
			Unit:            "orders",
			Format:          model.FormatDecimal,
			RequiredColumns: []string{mapping.FieldOrderID, mapping.FieldDate},
			ChartType:       "line",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				orders := distinctCount(rows, mapping.FieldOrderID, "")
				if orders == 0 {
					orders = len(rows)
				}
				return model.KPIValue{Value: float64(orders) / spanDays(rows)}, nil
			},
		},
		{
			ID:              "inventory_turnover",
			Title:           "Inventory Turnover",
			Description:     "Placeholder; uploads carry no inventory ledger",
			Category:        model.CategoryOperations,
			Unit:            "turns",
			Format:          model.FormatDecimal,
			RequiredColumns: []string{mapping.FieldQuantity},
			Synthetic:       true,
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return synthetic(8, "no inventory ledger in a flat sales upload"), nil
			},
		},
		{
			ID:              "stockout_rate",
			Title:           "Stockout Rate",
			Description:     "Placeholder; stock levels are not part of sales uploads",
			Category:        model.CategoryOperations,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldQuantity},
			Synthetic:       true,
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return synthetic(2.5, "stock levels are not part of sales uploads"), nil
			},
		},
	}
}
