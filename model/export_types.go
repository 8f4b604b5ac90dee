package model

import "time"

// DateRange はデータに含まれる日付の範囲です。
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ExportMetadata は出力に添付されるメタ情報です。
type ExportMetadata struct {
	GeneratedAt time.Time  `json:"generatedAt"`
	DataSource  string     `json:"dataSource"`
	TotalRows   int        `json:"totalRows"`
	DateRange   *DateRange `json:"dateRange,omitempty"`
}

// ExportPayload はエクスポーターへ渡す唯一の形です。
// どの具象エクスポーター(CSV/Parquet/PDF/PNG)でも同じ形を受け取ります。
type ExportPayload struct {
	KPIs     []CalculatedKPI `json:"kpis"`
	RawData  []Row           `json:"rawData"`
	Metadata ExportMetadata  `json:"metadata"`
}

// ExportOptions は1回の出力指示です。
type ExportOptions struct {
	Format         string `json:"format"` // csv | parquet | pdf | png
	Filename       string `json:"filename"`
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle,omitempty"`
	IncludeCharts  bool   `json:"includeCharts,omitempty"`
	IncludeRawData bool   `json:"includeRawData,omitempty"`
	Landscape      bool   `json:"landscape,omitempty"`
}
