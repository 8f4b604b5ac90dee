package kpi

import (
	"github.com/ozcanhakn/retailmindai-sub000/mapping"
	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// discountValue reads the discount column as a percentage rate applied to
// the line revenue.
func discountValue(row model.Row) float64 {
	rate := row[mapping.FieldDiscount].NumberOr(0)
	if rate <= 0 {
		return 0
	}
	return lineRevenue(row) * rate / 100
}

func financialKPIs() []model.KPIDefinition {
	return []model.KPIDefinition{
		{
			ID:              "gross_profit",
			Title:           "Gross Profit",
			Description:     "Sum of (price − cost) × quantity",
			Category:        model.CategoryFinancial,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldCost},
			ChartType:       "bar",
			Visualization:   "large",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				var profit float64
				for _, row := range rows {
					cost := row[mapping.FieldCost].NumberOr(0)
					profit += (priceOf(row) - cost) * quantityOf(row)
				}
				return model.KPIValue{Value: profit}, nil
			},
		},
		{
			ID:              "gross_margin",
			Title:           "Gross Margin",
			Description:     "Gross profit as a share of revenue",
			Category:        model.CategoryFinancial,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldCost},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				revenue := totalRevenue(rows)
				if revenue == 0 {
					return model.KPIValue{}, nil
				}
				var profit float64
				for _, row := range rows {
					cost := row[mapping.FieldCost].NumberOr(0)
					profit += (priceOf(row) - cost) * quantityOf(row)
				}
				return model.KPIValue{Value: profit / revenue * 100}, nil
			},
		},
		{
			ID:              "average_discount",
			Title:           "Average Discount",
			Description:     "Mean discount rate across discounted rows",
			Category:        model.CategoryFinancial,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldDiscount},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				var sum float64
				count := 0
				for _, row := range rows {
					if row[mapping.FieldDiscount].IsMissing() {
						continue
					}
					sum += row[mapping.FieldDiscount].NumberOr(0)
					count++
				}
				if count == 0 {
					return model.KPIValue{}, nil
				}
				return model.KPIValue{Value: sum / float64(count)}, nil
			},
		},
		{
			ID:              "total_discount_value",
			Title:           "Total Discount Value",
			Description:     "Revenue given away through discounts",
			Category:        model.CategoryFinancial,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldDiscount},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				var total float64
				for _, row := range rows {
					total += discountValue(row)
				}
				return model.KPIValue{Value: total}, nil
			},
		},
		{
			ID:              "net_revenue",
			Title:           "Net Revenue",
			Description:     "Revenue after discounts",
			Category:        model.CategoryFinancial,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldDiscount},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				var discounts float64
				for _, row := range rows {
					discounts += discountValue(row)
				}
				return model.KPIValue{Value: totalRevenue(rows) - discounts}, nil
			},
		},
		{
			ID:              "refunded_amount",
			Title:           "Refunded Amount",
			Description:     "Revenue on rows marked returned or refunded",
			Category:        model.CategoryFinancial,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldStatus},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				var refunded float64
				for _, row := range rows {
					if statusIs(row, "returned", "refunded") {
						refunded += lineRevenue(row)
					}
				}
				return model.KPIValue{Value: refunded}, nil
			},
		},
		{
			ID:              "operating_margin",
			Title:           "Operating Margin",
			Description:     "Placeholder; operating costs are not in sales uploads",
			Category:        model.CategoryFinancial,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldPrice},
			Synthetic:       true,
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return synthetic(18.5, "operating costs are not part of sales uploads"), nil
			},
		},
	}
}
