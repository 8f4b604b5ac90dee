package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ozcanhakn/retailmindai-sub000/kpi"
	"github.com/ozcanhakn/retailmindai-sub000/model"
	"github.com/ozcanhakn/retailmindai-sub000/report"
)

// CSVRenderer writes BOM-prefixed CSV so Excel opens the file with the
// right encoding. Serves the "excel" template format.
type CSVRenderer struct {
	Dir       string
	Formatter *kpi.Formatter
}

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeCSVLine(buf *bytes.Buffer, fields []string) {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quoteAll(f)
	}
	buf.WriteString(strings.Join(quoted, ",") + "\r\n")
}

// Render implements report.Renderer.
func (r *CSVRenderer) Render(content report.Content, opts model.ExportOptions) (string, int64, error) {
	buf := BuildCSV(content.Payload, r.Formatter, opts.IncludeRawData, content.Title)
	return writeFile(r.Dir, opts.Filename+".csv", buf)
}

// BuildCSV serializes a payload: title, KPI block, then the raw rows when
// requested.
func BuildCSV(payload model.ExportPayload, formatter *kpi.Formatter, includeRaw bool, title string) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

	writeCSVLine(&buf, []string{title})
	writeCSVLine(&buf, []string{fmt.Sprintf("Generated %s", payload.Metadata.GeneratedAt.Format("2006-01-02 15:04"))})
	writeCSVLine(&buf, []string{fmt.Sprintf("Source %s (%d rows)", payload.Metadata.DataSource, payload.Metadata.TotalRows)})
	buf.WriteString("\r\n")

	writeCSVLine(&buf, []string{"Metric", "Category", "Value", "Formatted", "Estimated"})
	for _, k := range payload.KPIs {
		estimated := ""
		if k.Synthetic {
			estimated = "yes"
		}
		writeCSVLine(&buf, []string{
			k.Definition.Title,
			string(k.Definition.Category),
			fmt.Sprintf("%g", k.Value),
			formatter.FormatKPI(k),
			estimated,
		})
	}

	if includeRaw && len(payload.RawData) > 0 {
		buf.WriteString("\r\n")
		cols := columnsOf(payload.RawData)
		writeCSVLine(&buf, cols)
		for _, row := range payload.RawData {
			record := make([]string, len(cols))
			for i, col := range cols {
				record[i] = row[col].Text()
			}
			writeCSVLine(&buf, record)
		}
	}

	return buf.Bytes()
}

func writeFile(dir, name string, data []byte) (string, int64, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("出力フォルダの作成に失敗: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", 0, fmt.Errorf("出力ファイルの書き込みに失敗: %w", err)
	}
	return path, int64(len(data)), nil
}
