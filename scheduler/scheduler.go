// Package scheduler drives scheduled report generation.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/ozcanhakn/retailmindai-sub000/model"
	"github.com/ozcanhakn/retailmindai-sub000/report"
)

// PayloadFunc supplies the dataset payload for a scheduled run.
type PayloadFunc func() (model.ExportPayload, error)

// Scheduler polls for due registrations and generates their reports.
// Failures are logged, never retried here; the next-run time still rolls
// forward so one broken template cannot wedge the loop.
type Scheduler struct {
	service   *report.Service
	generator *report.Generator
	payload   PayloadFunc
	interval  time.Duration
}

func New(service *report.Service, generator *report.Generator, payload PayloadFunc, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{service: service, generator: generator, payload: payload, interval: interval}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

func (s *Scheduler) tick(now time.Time) {
	due := s.service.DueSchedules(now)
	for _, r := range due {
		payload, err := s.payload()
		if err != nil {
			log.Printf("WARN: scheduled report %s skipped: %v", r.ID, err)
			// 次回時刻は進めておく（同じ失敗の連打を防ぐ）
			if err := s.service.RollForward(r.ID, now); err != nil {
				log.Printf("WARN: failed to roll schedule %s forward: %v", r.ID, err)
			}
			continue
		}

		_, err = s.generator.GenerateReport(r.TemplateID, payload, report.Options{
			Format:            r.Format,
			Title:             r.Name,
			ScheduledReportID: r.ID,
			RunAt:             now,
		})
		if err != nil {
			log.Printf("Scheduled report %s failed: %v", r.ID, err)
			if err := s.service.RollForward(r.ID, now); err != nil {
				log.Printf("WARN: failed to roll schedule %s forward: %v", r.ID, err)
			}
			continue
		}
		log.Printf("Scheduled report %s generated (template %s)", r.ID, r.TemplateID)
	}
}
