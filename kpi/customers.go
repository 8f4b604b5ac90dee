package kpi

import (
	"strconv"

	"github.com/ozcanhakn/retailmindai-sub000/mapping"
	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// ordersPerCustomer groups distinct order ids under each customer id.
func ordersPerCustomer(rows []model.Row) map[string]map[string]struct{} {
	byCustomer := make(map[string]map[string]struct{})
	for i, row := range rows {
		customer := row[mapping.FieldCustomerID].Text()
		if customer == "" {
			continue
		}
		order := row[mapping.FieldOrderID].Text()
		if order == "" {
			// 注文IDが無い行は行単位で1注文と数える
			order = "row#" + strconv.Itoa(i)
		}
		set, ok := byCustomer[customer]
		if !ok {
			set = make(map[string]struct{})
			byCustomer[customer] = set
		}
		set[order] = struct{}{}
	}
	return byCustomer
}

func customerKPIs() []model.KPIDefinition {
	return []model.KPIDefinition{
		{
			ID:              "total_customers",
			Title:           "Total Customers",
			Description:     "Distinct customer count",
			Category:        model.CategoryCustomers,
			Unit:            "customers",
			Format:          model.FormatNumber,
			RequiredColumns: []string{mapping.FieldCustomerID},
			ChartType:       "bar",
			Visualization:   "large",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return model.KPIValue{Value: float64(distinctCount(rows, mapping.FieldCustomerID, ""))}, nil
			},
		},
		{
			ID:              "repeat_purchase_rate",
			Title:           "Repeat Purchase Rate",
			Description:     "Share of customers with more than one order",
			Category:        model.CategoryCustomers,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldCustomerID, mapping.FieldOrderID},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				byCustomer := ordersPerCustomer(rows)
				if len(byCustomer) == 0 {
					return model.KPIValue{}, nil
				}
				repeat := 0
				for _, orders := range byCustomer {
					if len(orders) > 1 {
						repeat++
					}
				}
				return model.KPIValue{Value: ratioPercent(float64(repeat), float64(len(byCustomer)))}, nil
			},
		},
		{
			ID:              "average_orders_per_customer",
			Title:           "Avg Orders per Customer",
			Description:     "Distinct orders divided by distinct customers",
			Category:        model.CategoryCustomers,
			Unit:            "orders",
			Format:          model.FormatDecimal,
			RequiredColumns: []string{mapping.FieldCustomerID, mapping.FieldOrderID},
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				customers := distinctCount(rows, mapping.FieldCustomerID, "")
				if customers == 0 {
					return model.KPIValue{}, nil
				}
				orders := distinctCount(rows, mapping.FieldOrderID, "")
				if orders == 0 {
					orders = len(rows)
				}
				return model.KPIValue{Value: float64(orders) / float64(customers)}, nil
			},
		},
		{
			ID:              "customer_lifetime_value",
			Title:           "Customer Lifetime Value",
			Description:     "Revenue divided by distinct customers",
			Category:        model.CategoryCustomers,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldCustomerID},
			ChartType:       "line",
			Visualization:   "large",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				customers := distinctCount(rows, mapping.FieldCustomerID, "")
				if customers == 0 {
					return model.KPIValue{}, nil
				}
				return model.KPIValue{Value: totalRevenue(rows) / float64(customers)}, nil
			},
		},
		{
			ID:              "top_customer_share",
			Title:           "Top 20% Customer Share",
			Description:     "Revenue share of the top fifth of customers",
			Category:        model.CategoryCustomers,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldPrice, mapping.FieldCustomerID},
			ChartType:       "pie",
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return model.KPIValue{Value: paretoShare(rows, mapping.FieldCustomerID)}, nil
			},
		},
		{
			ID:              "customer_acquisition_cost",
			Title:           "Customer Acquisition Cost",
			Description:     "Industry-average placeholder; uploads carry no marketing spend",
			Category:        model.CategoryCustomers,
			Unit:            "currency",
			Format:          model.FormatCurrency,
			RequiredColumns: []string{mapping.FieldCustomerID},
			Synthetic:       true,
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return synthetic(42, "marketing spend is not present in generic uploads"), nil
			},
		},
		{
			ID:              "churn_rate",
			Title:           "Churn Rate",
			Description:     "Placeholder; true churn needs cohort history beyond one upload",
			Category:        model.CategoryCustomers,
			Unit:            "percent",
			Format:          model.FormatPercentage,
			RequiredColumns: []string{mapping.FieldCustomerID},
			Synthetic:       true,
			Calculation: func(rows []model.Row) (model.KPIValue, error) {
				return synthetic(5.2, "churn cohorts are not derivable from a flat upload"), nil
			},
		},
	}
}
