// Package export serializes report content to CSV, Parquet, PDF and PNG.
package export

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/ozcanhakn/retailmindai-sub000/kpi"
	"github.com/ozcanhakn/retailmindai-sub000/model"
	"github.com/ozcanhakn/retailmindai-sub000/report"
)

// rawTableLimit caps the rows embedded in rendered documents.
const rawTableLimit = 50

// columnsOf returns a stable column order for raw rows.
func columnsOf(rows []model.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	cols := make([]string, 0, len(rows[0]))
	for col := range rows[0] {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// RenderHTML builds the printable document all visual exporters share.
func RenderHTML(content report.Content, formatter *kpi.Formatter) string {
	styling := content.Template.Styling
	headerColor := styling.HeaderColor
	if headerColor == "" {
		headerColor = "#1e293b"
	}
	accent := styling.AccentColor
	if accent == "" {
		accent = "#3b82f6"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><style>")
	sb.WriteString("body{font-family:" + cssFont(styling.FontFamily) + ";margin:32px;color:#111}")
	sb.WriteString("h1{color:" + headerColor + ";margin-bottom:4px}")
	sb.WriteString("h2{color:" + headerColor + ";border-bottom:2px solid " + accent + ";padding-bottom:4px}")
	sb.WriteString(".subtitle{color:#555;margin-top:0}")
	sb.WriteString("table{border-collapse:collapse;width:100%;margin:12px 0}")
	sb.WriteString("th,td{border:1px solid #ddd;padding:6px 10px;text-align:left;font-size:13px}")
	sb.WriteString("th{background:" + headerColor + ";color:#fff}")
	sb.WriteString(".kpi-grid{display:flex;flex-wrap:wrap;gap:12px}")
	sb.WriteString(".kpi-card{border:1px solid #ddd;border-left:4px solid " + accent + ";padding:10px 14px;min-width:180px}")
	sb.WriteString(".kpi-value{font-size:22px;font-weight:bold}")
	sb.WriteString(".kpi-title{color:#555;font-size:12px}")
	sb.WriteString(".synthetic{color:#b45309;font-size:11px}")
	sb.WriteString(".footer{margin-top:24px;color:#777;font-size:11px}")
	sb.WriteString("</style></head><body>")

	sb.WriteString("<h1>" + html.EscapeString(content.Title) + "</h1>")
	if content.Subtitle != "" {
		sb.WriteString("<p class=\"subtitle\">" + html.EscapeString(content.Subtitle) + "</p>")
	}

	for _, section := range content.Sections {
		sb.WriteString("<h2>" + html.EscapeString(section.Title) + "</h2>")
		switch section.Type {
		case model.SectionKPI:
			writeKPIGrid(&sb, content.Payload.KPIs, section.DataSource, formatter)
		case model.SectionTable:
			writeRawTable(&sb, content.Payload.RawData)
		case model.SectionText:
			sb.WriteString("<p>" + html.EscapeString(section.Text) + "</p>")
		case model.SectionChart:
			// 印刷用にはチャートの元データを表で埋め込む
			writeChartTable(&sb, content.Payload.KPIs, section.DataSource, formatter)
		case model.SectionImage:
			sb.WriteString("<p class=\"subtitle\">" + html.EscapeString(section.DataSource) + "</p>")
		}
	}

	sb.WriteString("<p class=\"footer\">" + html.EscapeString(content.Footer) + "</p>")
	sb.WriteString("</body></html>")
	return sb.String()
}

func cssFont(family string) string {
	if family == "" {
		return "'Helvetica Neue',Arial,sans-serif"
	}
	return family
}

func writeKPIGrid(sb *strings.Builder, kpis []model.CalculatedKPI, dataSource string, formatter *kpi.Formatter) {
	sb.WriteString("<div class=\"kpi-grid\">")
	for _, k := range kpis {
		if dataSource != "" && dataSource != "all" && string(k.Definition.Category) != dataSource {
			continue
		}
		sb.WriteString("<div class=\"kpi-card\">")
		sb.WriteString("<div class=\"kpi-title\">" + html.EscapeString(k.Definition.Title) + "</div>")
		sb.WriteString("<div class=\"kpi-value\">" + html.EscapeString(formatter.FormatKPI(k)) + "</div>")
		if k.Trend != nil {
			sb.WriteString(fmt.Sprintf("<div class=\"kpi-title\">%s %.1f%%</div>", k.Trend.Direction, k.Trend.Percentage))
		}
		if k.Synthetic {
			sb.WriteString("<div class=\"synthetic\">estimated</div>")
		}
		sb.WriteString("</div>")
	}
	sb.WriteString("</div>")
}

func writeRawTable(sb *strings.Builder, rows []model.Row) {
	cols := columnsOf(rows)
	if len(cols) == 0 {
		sb.WriteString("<p class=\"subtitle\">No data.</p>")
		return
	}
	sb.WriteString("<table><thead><tr>")
	for _, col := range cols {
		sb.WriteString("<th>" + html.EscapeString(col) + "</th>")
	}
	sb.WriteString("</tr></thead><tbody>")
	limit := len(rows)
	if limit > rawTableLimit {
		limit = rawTableLimit
	}
	for _, row := range rows[:limit] {
		sb.WriteString("<tr>")
		for _, col := range cols {
			sb.WriteString("<td>" + html.EscapeString(row[col].Text()) + "</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")
	if len(rows) > limit {
		sb.WriteString(fmt.Sprintf("<p class=\"subtitle\">Showing %d of %d rows.</p>", limit, len(rows)))
	}
}

func writeChartTable(sb *strings.Builder, kpis []model.CalculatedKPI, dataSource string, formatter *kpi.Formatter) {
	sb.WriteString("<table><thead><tr><th>Metric</th><th>Value</th><th>Trend</th></tr></thead><tbody>")
	for _, k := range kpis {
		if dataSource != "" && dataSource != "all" &&
			k.Definition.ID != dataSource && string(k.Definition.Category) != dataSource && k.Definition.ChartType == "" {
			continue
		}
		trend := "-"
		if k.Trend != nil {
			trend = fmt.Sprintf("%s %.1f%%", k.Trend.Direction, k.Trend.Percentage)
		}
		sb.WriteString("<tr><td>" + html.EscapeString(k.Definition.Title) + "</td><td>" +
			html.EscapeString(formatter.FormatKPI(k)) + "</td><td>" + html.EscapeString(trend) + "</td></tr>")
	}
	sb.WriteString("</tbody></table>")
}
