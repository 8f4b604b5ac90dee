package model

// KPICategory はKPIの分類です。
type KPICategory string

const (
	CategorySales      KPICategory = "sales"
	CategoryCustomers  KPICategory = "customers"
	CategoryOperations KPICategory = "operations"
	CategoryForecast   KPICategory = "forecast"
	CategoryFinancial  KPICategory = "financial"
	CategoryBenchmark  KPICategory = "benchmark"
)

// KPIFormat は表示フォーマット契約です。
type KPIFormat string

const (
	FormatCurrency   KPIFormat = "currency"
	FormatPercentage KPIFormat = "percentage"
	FormatNumber     KPIFormat = "number"
	FormatDecimal    KPIFormat = "decimal"
)

// TrendDirection の値は up / down / stable のいずれかです。
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// Trend は前期間比の変化です。
type Trend struct {
	Direction  TrendDirection `json:"direction"`
	Percentage float64        `json:"percentage"`
}

// KPIValue is the result of one calculation. Synthetic marks placeholder
// values that cannot be derived from a flat upload; Rationale says why.
type KPIValue struct {
	Value         float64  `json:"value"`
	Trend         *Trend   `json:"trend,omitempty"`
	PreviousValue *float64 `json:"previousValue,omitempty"`
	Synthetic     bool     `json:"synthetic,omitempty"`
	Rationale     string   `json:"rationale,omitempty"`
}

// Calculation computes a KPI over rows keyed by canonical field names.
// Rows satisfy the definition's RequiredColumns when called.
type Calculation func(rows []Row) (KPIValue, error)

// KPIDefinition はレジストリ所有の不変定義です。
type KPIDefinition struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Category        KPICategory `json:"category"`
	Unit            string      `json:"unit"`
	Format          KPIFormat   `json:"format"`
	RequiredColumns []string    `json:"requiredColumns"`
	ChartType       string      `json:"chartType,omitempty"`
	Visualization   string      `json:"visualization,omitempty"`
	Synthetic       bool        `json:"synthetic,omitempty"`
	Calculation     Calculation `json:"-"`
}

// CalculatedKPI は1回の検出で計算された値です。再計算時は新インスタンスに差し替え。
type CalculatedKPI struct {
	Definition    KPIDefinition `json:"definition"`
	Value         float64       `json:"value"`
	Trend         *Trend        `json:"trend,omitempty"`
	PreviousValue *float64      `json:"previousValue,omitempty"`
	Synthetic     bool          `json:"synthetic,omitempty"`
	Rationale     string        `json:"rationale,omitempty"`
}

// Coverage はレジストリのうち計算可能だった割合です。
type Coverage struct {
	Total      int     `json:"total"`
	Available  int     `json:"available"`
	Percentage float64 `json:"percentage"`
}

// KPIDetectionResult は1データセット解析の結果です。
type KPIDetectionResult struct {
	AvailableKPIs   []CalculatedKPI `json:"availableKPIs"`
	ColumnMappings  []ColumnMapping `json:"columnMappings"`
	Coverage        Coverage        `json:"coverage"`
	Recommendations []string        `json:"recommendations"`
}
