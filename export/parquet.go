package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/ozcanhakn/retailmindai-sub000/model"
	"github.com/ozcanhakn/retailmindai-sub000/report"
)

// kpiParquetRow is the columnar schema for KPI exports.
type kpiParquetRow struct {
	ID        string  `parquet:"name=id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Title     string  `parquet:"name=title, type=BYTE_ARRAY, convertedtype=UTF8"`
	Category  string  `parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8"`
	Unit      string  `parquet:"name=unit, type=BYTE_ARRAY, convertedtype=UTF8"`
	Value     float64 `parquet:"name=value, type=DOUBLE"`
	Synthetic bool    `parquet:"name=synthetic, type=BOOLEAN"`
}

// ParquetRenderer serializes the KPI table to Parquet for downstream
// warehouse tooling.
type ParquetRenderer struct {
	Dir string
}

// Render implements report.Renderer.
func (r *ParquetRenderer) Render(content report.Content, opts model.ExportOptions) (string, int64, error) {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", 0, fmt.Errorf("出力フォルダの作成に失敗: %w", err)
	}
	path := filepath.Join(r.Dir, opts.Filename+".parquet")

	if err := WriteKPIParquet(path, content.Payload.KPIs); err != nil {
		return "", 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, err
	}
	return path, info.Size(), nil
}

// WriteKPIParquet writes calculated KPIs to a Parquet file.
func WriteKPIParquet(path string, kpis []model.CalculatedKPI) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(kpiParquetRow), 2)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, k := range kpis {
		row := kpiParquetRow{
			ID:        k.Definition.ID,
			Title:     k.Definition.Title,
			Category:  string(k.Definition.Category),
			Unit:      k.Definition.Unit,
			Value:     k.Value,
			Synthetic: k.Synthetic,
		}
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("failed to write parquet row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
