package loader

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InitDatabase は必要なテーブルを作成します。既存テーブルはそのまま。
func InitDatabase(conn *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS report_templates (
			id      TEXT PRIMARY KEY,
			payload TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scheduled_reports (
			id      TEXT PRIMARY KEY,
			payload TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS generated_reports (
			id                  TEXT PRIMARY KEY,
			template_id         TEXT NOT NULL,
			scheduled_report_id TEXT,
			name                TEXT NOT NULL,
			generated_at        TEXT NOT NULL,
			format              TEXT NOT NULL,
			file_path           TEXT NOT NULL,
			file_size           INTEGER NOT NULL,
			download_url        TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS dataset_analyses (
			id          TEXT PRIMARY KEY,
			filename    TEXT NOT NULL,
			uploaded_at TEXT NOT NULL,
			total_rows  INTEGER NOT NULL,
			result      TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS imported_orders (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			dataset     TEXT NOT NULL,
			row_index   INTEGER NOT NULL,
			payload     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generated_reports_template
			ON generated_reports (template_id)`,
		`CREATE INDEX IF NOT EXISTS idx_imported_orders_dataset
			ON imported_orders (dataset)`,
	}
	for _, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("スキーマ作成に失敗: %w", err)
		}
	}
	return nil
}
