package report

import (
	"time"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// builtinTemplates は起動時にシードされる標準テンプレートです。
// 既に同じIDのテンプレートがあれば上書きしません。
func builtinTemplates(now time.Time) []model.ReportTemplate {
	return []model.ReportTemplate{
		{
			ID:          "builtin-sales-summary",
			Name:        "Sales Summary",
			Description: "Headline sales KPIs with a revenue chart and raw data extract",
			Type:        "summary",
			Layout:      "portrait",
			Format:      "pdf",
			Styling:     model.ReportStyling{HeaderColor: "#1e293b", AccentColor: "#3b82f6", ShowLogo: true},
			Sections: []model.ReportSection{
				{ID: "kpi-overview", Title: "Key Metrics", Type: model.SectionKPI, DataSource: "sales", Order: 1},
				{ID: "revenue-chart", Title: "Revenue over Time", Type: model.SectionChart, DataSource: "daily_revenue", ChartType: "area", Order: 2},
				{ID: "raw-extract", Title: "Data Extract", Type: model.SectionTable, DataSource: "raw", Order: 3},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "builtin-customer-insights",
			Name:        "Customer Insights",
			Description: "Customer KPIs and repeat-purchase breakdown",
			Type:        "customers",
			Layout:      "portrait",
			Format:      "both",
			Styling:     model.ReportStyling{HeaderColor: "#14532d", AccentColor: "#22c55e", ShowLogo: true},
			Sections: []model.ReportSection{
				{ID: "customer-kpis", Title: "Customer Metrics", Type: model.SectionKPI, DataSource: "customers", Order: 1},
				{ID: "customer-share", Title: "Top Customer Share", Type: model.SectionChart, DataSource: "top_customer_share", ChartType: "pie", Order: 2},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "builtin-executive-dashboard",
			Name:        "Executive Dashboard",
			Description: "One-page landscape overview across all KPI categories",
			Type:        "executive",
			Layout:      "landscape",
			Format:      "pdf",
			Styling:     model.ReportStyling{HeaderColor: "#0f172a", AccentColor: "#f59e0b", ShowLogo: true},
			Sections: []model.ReportSection{
				{ID: "exec-note", Title: "Summary", Type: model.SectionText, DataSource: "", Order: 1,
					Text: "Automatically generated overview of the latest uploaded dataset."},
				{ID: "exec-kpis", Title: "All Metrics", Type: model.SectionKPI, DataSource: "all", Order: 2},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
