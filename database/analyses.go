package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// AnalysisRecord は1回のアップロード解析の保存結果です。
type AnalysisRecord struct {
	ID         string                   `json:"id"`
	Filename   string                   `json:"filename"`
	UploadedAt time.Time                `json:"uploadedAt"`
	TotalRows  int                      `json:"totalRows"`
	Result     model.KPIDetectionResult `json:"result"`
}

// AnalysisStore persists upload analyses for the dashboard history view.
type AnalysisStore struct {
	conn *sqlx.DB
}

func NewAnalysisStore(conn *sqlx.DB) *AnalysisStore {
	return &AnalysisStore{conn: conn}
}

type analysisRow struct {
	ID         string `db:"id"`
	Filename   string `db:"filename"`
	UploadedAt string `db:"uploaded_at"`
	TotalRows  int    `db:"total_rows"`
	Result     string `db:"result"`
}

// Insert stores one analysis result.
func (s *AnalysisStore) Insert(rec AnalysisRecord) error {
	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal analysis %s: %w", rec.ID, err)
	}
	_, err = s.conn.Exec(`
		INSERT INTO dataset_analyses (id, filename, uploaded_at, total_rows, result)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Filename, rec.UploadedAt.UTC().Format(time.RFC3339), rec.TotalRows, string(payload))
	if err != nil {
		return fmt.Errorf("insert analysis %s: %w", rec.ID, err)
	}
	return nil
}

// List returns analyses, newest first.
func (s *AnalysisStore) List(limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []analysisRow
	err := s.conn.Select(&rows, `
		SELECT id, filename, uploaded_at, total_rows, result
		FROM dataset_analyses ORDER BY uploaded_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("load analyses: %w", err)
	}
	out := make([]AnalysisRecord, 0, len(rows))
	for _, row := range rows {
		uploadedAt, err := time.Parse(time.RFC3339, row.UploadedAt)
		if err != nil {
			return nil, fmt.Errorf("parse uploaded_at for %s: %w", row.ID, err)
		}
		var result model.KPIDetectionResult
		if err := json.Unmarshal([]byte(row.Result), &result); err != nil {
			return nil, fmt.Errorf("unmarshal analysis %s: %w", row.ID, err)
		}
		out = append(out, AnalysisRecord{
			ID:         row.ID,
			Filename:   row.Filename,
			UploadedAt: uploadedAt,
			TotalRows:  row.TotalRows,
			Result:     result,
		})
	}
	return out, nil
}
