package database

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// ScheduleStore persists scheduled-report registrations.
type ScheduleStore struct {
	conn *sqlx.DB
}

func NewScheduleStore(conn *sqlx.DB) *ScheduleStore {
	return &ScheduleStore{conn: conn}
}

type scheduleRow struct {
	ID      string `db:"id"`
	Payload string `db:"payload"`
}

// SaveAll replaces the whole registration set in one transaction.
func (s *ScheduleStore) SaveAll(reports []model.ScheduledReport) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin schedule save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM scheduled_reports`); err != nil {
		return fmt.Errorf("clear schedules: %w", err)
	}
	for _, r := range reports {
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal schedule %s: %w", r.ID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO scheduled_reports (id, payload) VALUES (?, ?)`,
			r.ID, string(payload)); err != nil {
			return fmt.Errorf("insert schedule %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// LoadAll returns every persisted registration.
func (s *ScheduleStore) LoadAll() ([]model.ScheduledReport, error) {
	var rows []scheduleRow
	if err := s.conn.Select(&rows, `SELECT id, payload FROM scheduled_reports ORDER BY id`); err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}
	reports := make([]model.ScheduledReport, 0, len(rows))
	for _, row := range rows {
		var r model.ScheduledReport
		if err := json.Unmarshal([]byte(row.Payload), &r); err != nil {
			return nil, fmt.Errorf("unmarshal schedule %s: %w", row.ID, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
