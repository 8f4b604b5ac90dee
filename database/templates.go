// Package database holds the sqlx/SQLite persistence layer.
package database

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// TemplateStore persists report templates as JSON documents keyed by id.
type TemplateStore struct {
	conn *sqlx.DB
}

func NewTemplateStore(conn *sqlx.DB) *TemplateStore {
	return &TemplateStore{conn: conn}
}

type templateRow struct {
	ID      string `db:"id"`
	Payload string `db:"payload"`
}

// SaveAll replaces the whole template set in one transaction.
func (s *TemplateStore) SaveAll(templates []model.ReportTemplate) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin template save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM report_templates`); err != nil {
		return fmt.Errorf("clear templates: %w", err)
	}
	for _, t := range templates {
		payload, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshal template %s: %w", t.ID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO report_templates (id, payload) VALUES (?, ?)`,
			t.ID, string(payload)); err != nil {
			return fmt.Errorf("insert template %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// LoadAll returns every persisted template.
func (s *TemplateStore) LoadAll() ([]model.ReportTemplate, error) {
	var rows []templateRow
	if err := s.conn.Select(&rows, `SELECT id, payload FROM report_templates ORDER BY id`); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	templates := make([]model.ReportTemplate, 0, len(rows))
	for _, row := range rows {
		var t model.ReportTemplate
		if err := json.Unmarshal([]byte(row.Payload), &t); err != nil {
			return nil, fmt.Errorf("unmarshal template %s: %w", row.ID, err)
		}
		templates = append(templates, t)
	}
	return templates, nil
}
