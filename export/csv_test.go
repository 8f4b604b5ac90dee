package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ozcanhakn/retailmindai-sub000/kpi"
	"github.com/ozcanhakn/retailmindai-sub000/model"
	"github.com/ozcanhakn/retailmindai-sub000/report"
)

func samplePayload() model.ExportPayload {
	return model.ExportPayload{
		KPIs: []model.CalculatedKPI{
			{
				Definition: model.KPIDefinition{
					Title:    "Total Revenue",
					Category: model.CategorySales,
					Format:   model.FormatCurrency,
				},
				Value: 1234.5,
			},
			{
				Definition: model.KPIDefinition{
					Title:    "Churn Rate",
					Category: model.CategoryCustomers,
					Format:   model.FormatPercentage,
				},
				Value:     5.2,
				Synthetic: true,
			},
		},
		RawData: []model.Row{
			{"product": model.TextValue("Widget"), "price": model.NumberValue(10, "10")},
		},
		Metadata: model.ExportMetadata{
			GeneratedAt: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			DataSource:  "orders.csv",
			TotalRows:   1,
		},
	}
}

func TestBuildCSV(t *testing.T) {
	formatter := kpi.NewFormatter("en-US", "USD")
	data := BuildCSV(samplePayload(), formatter, true, "Monthly Report")

	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("CSV must start with a UTF-8 BOM for Excel")
	}
	text := string(data[3:])

	if !strings.HasPrefix(text, `"Monthly Report"`) {
		t.Fatalf("missing title line: %q", text[:40])
	}
	if !strings.Contains(text, `"Total Revenue","sales"`) {
		t.Fatalf("missing KPI line in:\n%s", text)
	}
	if !strings.Contains(text, `"Churn Rate","customers","5.2"`) || !strings.Contains(text, `"yes"`) {
		t.Fatalf("synthetic KPI not marked estimated in:\n%s", text)
	}
	if !strings.Contains(text, `"Widget"`) {
		t.Fatalf("raw data block missing in:\n%s", text)
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\r\n"), "\r\n") {
		if line != "" && !strings.HasPrefix(line, `"`) {
			t.Fatalf("unquoted line: %q", line)
		}
	}
}

func TestBuildCSVWithoutRawData(t *testing.T) {
	formatter := kpi.NewFormatter("en-US", "USD")
	data := BuildCSV(samplePayload(), formatter, false, "Monthly Report")
	if strings.Contains(string(data), "Widget") {
		t.Fatal("raw data included despite includeRaw=false")
	}
}

func TestQuoteAllEscapesQuotes(t *testing.T) {
	if got := quoteAll(`say "hi"`); got != `"say ""hi"""` {
		t.Fatalf("quoteAll = %q", got)
	}
}

func TestRenderHTMLSections(t *testing.T) {
	formatter := kpi.NewFormatter("en-US", "USD")
	content := report.Content{
		Title: "Monthly Report",
		Sections: []model.ReportSection{
			{ID: "kpis", Title: "Key Metrics", Type: model.SectionKPI, DataSource: "all", Order: 1},
			{ID: "raw", Title: "Data Extract", Type: model.SectionTable, DataSource: "raw", Order: 2},
		},
		Payload: samplePayload(),
	}

	html := RenderHTML(content, formatter)
	if !strings.Contains(html, "Monthly Report") {
		t.Fatalf("title missing from HTML:\n%s", html)
	}
	if !strings.Contains(html, "Total Revenue") {
		t.Fatal("KPI grid missing from HTML")
	}
	if !strings.Contains(html, "Widget") {
		t.Fatal("raw table missing from HTML")
	}
}
