package export

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ozcanhakn/retailmindai-sub000/kpi"
	"github.com/ozcanhakn/retailmindai-sub000/model"
	"github.com/ozcanhakn/retailmindai-sub000/report"
)

// PayloadSource supplies the current dataset payload.
type PayloadSource interface {
	Payload() (model.ExportPayload, error)
}

// AdHocHandler serves GET /api/export?format=csv|parquet|pdf|png for the
// last uploaded dataset, without going through a template.
func AdHocHandler(source PayloadSource, formatter *kpi.Formatter, renderers map[string]report.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := source.Payload()
		if err != nil {
			http.Error(w, "Failed to export: "+err.Error(), http.StatusBadRequest)
			return
		}

		format := r.URL.Query().Get("format")
		if format == "" {
			format = "csv"
		}
		filename := fmt.Sprintf("retailmind_export_%s", time.Now().Format("20060102_150405"))

		// CSVはファイルを介さず直接返す
		if format == "csv" {
			data := BuildCSV(payload, formatter, true, "RetailMind Export")
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename+".csv"))
			w.Write(data)
			return
		}

		renderer, ok := renderers[format]
		if !ok {
			http.Error(w, "unsupported export format: "+format, http.StatusBadRequest)
			return
		}

		content := report.Content{
			Title:       "RetailMind Export",
			GeneratedAt: payload.Metadata.GeneratedAt,
			Sections: []model.ReportSection{
				{ID: "adhoc-kpis", Title: "Key Metrics", Type: model.SectionKPI, DataSource: "all", Order: 1},
				{ID: "adhoc-raw", Title: "Data Extract", Type: model.SectionTable, DataSource: "raw", Order: 2},
			},
			Payload: payload,
			Footer:  fmt.Sprintf("Generated %s · %s", payload.Metadata.GeneratedAt.Format("2006-01-02 15:04"), payload.Metadata.DataSource),
		}
		opts := model.ExportOptions{Format: format, Filename: filename, Title: content.Title, IncludeRawData: true}

		path, _, err := renderer.Render(content, opts)
		if err != nil {
			http.Error(w, "Failed to export: "+err.Error(), http.StatusInternalServerError)
			return
		}
		http.ServeFile(w, r, path)
	}
}
