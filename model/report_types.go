package model

import "time"

// SectionType はレポートセクションの種別です。
type SectionType string

const (
	SectionChart SectionType = "chart"
	SectionTable SectionType = "table"
	SectionKPI   SectionType = "kpi"
	SectionText  SectionType = "text"
	SectionImage SectionType = "image"
)

// ReportSection はテンプレート内の1セクションです。Orderはテンプレート内で一意。
type ReportSection struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Type       SectionType `json:"type"`
	DataSource string      `json:"dataSource"`
	Order      int         `json:"order"`
	Text       string      `json:"text,omitempty"`
	ChartType  string      `json:"chartType,omitempty"`
}

// ReportStyling は出力時の体裁です。
type ReportStyling struct {
	HeaderColor string `json:"headerColor,omitempty"`
	AccentColor string `json:"accentColor,omitempty"`
	FontFamily  string `json:"fontFamily,omitempty"`
	ShowLogo    bool   `json:"showLogo,omitempty"`
}

// ReportTemplate は再利用可能なレポート定義です。
type ReportTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Sections    []ReportSection `json:"sections"`
	Layout      string          `json:"layout"` // portrait | landscape
	Format      string          `json:"format"` // pdf | excel | both
	Styling     ReportStyling   `json:"styling"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ScheduleType は繰り返し種別です。
type ScheduleType string

const (
	ScheduleOnce      ScheduleType = "once"
	ScheduleDaily     ScheduleType = "daily"
	ScheduleWeekly    ScheduleType = "weekly"
	ScheduleMonthly   ScheduleType = "monthly"
	ScheduleQuarterly ScheduleType = "quarterly"
)

// ReportSchedule は実行タイミング定義です。TimeはHH:MM。
type ReportSchedule struct {
	Type       ScheduleType `json:"type"`
	Time       string       `json:"time"`
	DayOfWeek  int          `json:"dayOfWeek,omitempty"`  // 0=Sunday .. 6
	DayOfMonth int          `json:"dayOfMonth,omitempty"` // 1..31
	Timezone   string       `json:"timezone,omitempty"`
}

// ScheduledReport は定期レポート登録です。
type ScheduledReport struct {
	ID                 string         `json:"id"`
	TemplateID         string         `json:"templateId"`
	Name               string         `json:"name"`
	Schedule           ReportSchedule `json:"schedule"`
	Recipients         []string       `json:"recipients"`
	IsActive           bool           `json:"isActive"`
	LastGenerated      *time.Time     `json:"lastGenerated,omitempty"`
	NextGeneration     time.Time      `json:"nextGeneration"`
	Format             string         `json:"format"`
	IncludeAttachments bool           `json:"includeAttachments"`
}

// GeneratedReport は生成完了の不変記録です。
type GeneratedReport struct {
	ID                string     `json:"id"`
	TemplateID        string     `json:"templateId"`
	ScheduledReportID string     `json:"scheduledReportId,omitempty"`
	Name              string     `json:"name"`
	GeneratedAt       time.Time  `json:"generatedAt"`
	Format            string     `json:"format"`
	FilePath          string     `json:"filePath"`
	FileSize          int64      `json:"fileSize"`
	DownloadURL       string     `json:"downloadUrl"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`
}
