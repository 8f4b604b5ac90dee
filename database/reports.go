package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// ReportRecordStore keeps the immutable generation history.
type ReportRecordStore struct {
	conn *sqlx.DB
}

func NewReportRecordStore(conn *sqlx.DB) *ReportRecordStore {
	return &ReportRecordStore{conn: conn}
}

type generatedRow struct {
	ID                string `db:"id"`
	TemplateID        string `db:"template_id"`
	ScheduledReportID string `db:"scheduled_report_id"`
	Name              string `db:"name"`
	GeneratedAt       string `db:"generated_at"`
	Format            string `db:"format"`
	FilePath          string `db:"file_path"`
	FileSize          int64  `db:"file_size"`
	DownloadURL       string `db:"download_url"`
}

// Insert records one completed generation. Records are never updated.
func (s *ReportRecordStore) Insert(r model.GeneratedReport) error {
	_, err := s.conn.Exec(`
		INSERT INTO generated_reports
			(id, template_id, scheduled_report_id, name, generated_at, format, file_path, file_size, download_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.TemplateID, r.ScheduledReportID, r.Name,
		r.GeneratedAt.UTC().Format(time.RFC3339), r.Format, r.FilePath, r.FileSize, r.DownloadURL)
	if err != nil {
		return fmt.Errorf("insert generated report %s: %w", r.ID, err)
	}
	return nil
}

// List returns the history, newest first.
func (s *ReportRecordStore) List() ([]model.GeneratedReport, error) {
	var rows []generatedRow
	err := s.conn.Select(&rows, `
		SELECT id, template_id, scheduled_report_id, name, generated_at, format, file_path, file_size, download_url
		FROM generated_reports ORDER BY generated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("load generated reports: %w", err)
	}
	out := make([]model.GeneratedReport, 0, len(rows))
	for _, row := range rows {
		generatedAt, err := time.Parse(time.RFC3339, row.GeneratedAt)
		if err != nil {
			return nil, fmt.Errorf("parse generated_at for %s: %w", row.ID, err)
		}
		out = append(out, model.GeneratedReport{
			ID:                row.ID,
			TemplateID:        row.TemplateID,
			ScheduledReportID: row.ScheduledReportID,
			Name:              row.Name,
			GeneratedAt:       generatedAt,
			Format:            row.Format,
			FilePath:          row.FilePath,
			FileSize:          row.FileSize,
			DownloadURL:       row.DownloadURL,
		})
	}
	return out, nil
}
