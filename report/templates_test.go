package report

import (
	"testing"
	"time"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

type fakeTemplateStore struct {
	saved []model.ReportTemplate
}

func (s *fakeTemplateStore) SaveAll(templates []model.ReportTemplate) error {
	s.saved = append([]model.ReportTemplate(nil), templates...)
	return nil
}

func (s *fakeTemplateStore) LoadAll() ([]model.ReportTemplate, error) {
	return s.saved, nil
}

type fakeScheduleStore struct {
	saved []model.ScheduledReport
}

func (s *fakeScheduleStore) SaveAll(reports []model.ScheduledReport) error {
	s.saved = append([]model.ScheduledReport(nil), reports...)
	return nil
}

func (s *fakeScheduleStore) LoadAll() ([]model.ScheduledReport, error) {
	return s.saved, nil
}

func newTestService(t *testing.T) (*Service, *fakeTemplateStore, *fakeScheduleStore) {
	t.Helper()
	templates := &fakeTemplateStore{}
	schedules := &fakeScheduleStore{}
	s, err := NewService(templates, schedules)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return s, templates, schedules
}

func TestNewServiceSeedsBuiltins(t *testing.T) {
	s, templates, _ := newTestService(t)

	if _, ok := s.GetTemplate("builtin-sales-summary"); !ok {
		t.Fatal("builtin-sales-summary not seeded")
	}
	if len(templates.saved) != 3 {
		t.Fatalf("persisted %d templates, want 3 builtins", len(templates.saved))
	}

	// restart over the persisted set must not duplicate or overwrite
	renamed := templates.saved[0]
	renamed.Name = "Customized"
	templates.saved[0] = renamed

	s2, err := NewService(templates, &fakeScheduleStore{})
	if err != nil {
		t.Fatalf("NewService reload: %v", err)
	}
	if got := len(s2.ListTemplates()); got != 3 {
		t.Fatalf("reload produced %d templates, want 3", got)
	}
	reloaded, _ := s2.GetTemplate(renamed.ID)
	if reloaded.Name != "Customized" {
		t.Fatalf("seeding overwrote a persisted template: %q", reloaded.Name)
	}
}

func TestTemplateCRUD(t *testing.T) {
	s, templates, _ := newTestService(t)
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	current := base
	s.WithClock(func() time.Time { return current })

	created, err := s.CreateTemplate(model.ReportTemplate{
		Name: "Weekly Ops",
		Sections: []model.ReportSection{
			{ID: "b", Order: 2},
			{ID: "a", Order: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created template has no id")
	}
	if !created.CreatedAt.Equal(base) || !created.UpdatedAt.Equal(base) {
		t.Fatalf("timestamps = %v / %v, want %v", created.CreatedAt, created.UpdatedAt, base)
	}
	if created.Sections[0].ID != "a" {
		t.Fatalf("sections not sorted by order: %v", created.Sections)
	}

	current = base.Add(time.Hour)
	created.Name = "Weekly Ops v2"
	updated, err := s.UpdateTemplate(created)
	if err != nil {
		t.Fatalf("UpdateTemplate: %v", err)
	}
	if !updated.CreatedAt.Equal(base) {
		t.Fatalf("update changed CreatedAt to %v", updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(current) {
		t.Fatalf("UpdatedAt = %v, want %v", updated.UpdatedAt, current)
	}

	if err := s.DeleteTemplate(created.ID); err != nil {
		t.Fatalf("DeleteTemplate: %v", err)
	}
	if _, ok := s.GetTemplate(created.ID); ok {
		t.Fatal("template still present after delete")
	}
	for _, saved := range templates.saved {
		if saved.ID == created.ID {
			t.Fatal("deleted template still persisted")
		}
	}

	if _, err := s.UpdateTemplate(model.ReportTemplate{ID: "nope"}); err == nil {
		t.Fatal("updating a missing template should fail")
	}
	if err := s.DeleteTemplate("nope"); err == nil {
		t.Fatal("deleting a missing template should fail")
	}
}

func TestScheduleReportLifecycle(t *testing.T) {
	s, _, schedules := newTestService(t)
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	s.WithClock(func() time.Time { return base })

	_, err := s.ScheduleReport(model.ScheduledReport{TemplateID: "nope"})
	if err == nil {
		t.Fatal("scheduling against a missing template should fail")
	}

	reg, err := s.ScheduleReport(model.ScheduledReport{
		TemplateID: "builtin-sales-summary",
		Name:       "Nightly Sales",
		Schedule:   model.ReportSchedule{Type: model.ScheduleDaily, Time: "09:00"},
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("ScheduleReport: %v", err)
	}
	wantNext := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	if !reg.NextGeneration.Equal(wantNext) {
		t.Fatalf("next generation = %v, want %v", reg.NextGeneration, wantNext)
	}
	if len(schedules.saved) != 1 {
		t.Fatalf("persisted %d schedules, want 1", len(schedules.saved))
	}

	// not due yet
	if due := s.DueSchedules(base); len(due) != 0 {
		t.Fatalf("nothing should be due at %v, got %d", base, len(due))
	}
	due := s.DueSchedules(wantNext.Add(time.Minute))
	if len(due) != 1 || due[0].ID != reg.ID {
		t.Fatalf("due = %v, want the registered schedule", due)
	}

	runAt := wantNext.Add(time.Minute)
	if err := s.MarkGenerated(reg.ID, runAt); err != nil {
		t.Fatalf("MarkGenerated: %v", err)
	}
	after := s.ListSchedules()[0]
	if after.LastGenerated == nil || !after.LastGenerated.Equal(runAt) {
		t.Fatalf("LastGenerated = %v, want %v", after.LastGenerated, runAt)
	}
	if !after.NextGeneration.After(runAt) {
		t.Fatalf("NextGeneration %v did not roll past %v", after.NextGeneration, runAt)
	}

	if err := s.DeleteSchedule(reg.ID); err != nil {
		t.Fatalf("DeleteSchedule: %v", err)
	}
	if len(s.ListSchedules()) != 0 {
		t.Fatal("schedule still present after delete")
	}
}

func TestRollForwardKeepsLastGenerated(t *testing.T) {
	s, _, _ := newTestService(t)
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	s.WithClock(func() time.Time { return base })

	reg, err := s.ScheduleReport(model.ScheduledReport{
		TemplateID: "builtin-sales-summary",
		Schedule:   model.ReportSchedule{Type: model.ScheduleDaily, Time: "09:00"},
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("ScheduleReport: %v", err)
	}

	failAt := reg.NextGeneration.Add(time.Minute)
	if err := s.RollForward(reg.ID, failAt); err != nil {
		t.Fatalf("RollForward: %v", err)
	}
	after := s.ListSchedules()[0]
	if after.LastGenerated != nil {
		t.Fatalf("RollForward set LastGenerated to %v", after.LastGenerated)
	}
	if !after.NextGeneration.After(failAt) {
		t.Fatalf("NextGeneration %v did not move past %v", after.NextGeneration, failAt)
	}
}

func TestDueSchedulesSkipsInactive(t *testing.T) {
	s, _, _ := newTestService(t)
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	s.WithClock(func() time.Time { return base })

	reg, err := s.ScheduleReport(model.ScheduledReport{
		TemplateID: "builtin-sales-summary",
		Schedule:   model.ReportSchedule{Type: model.ScheduleDaily, Time: "09:00"},
		IsActive:   false,
	})
	if err != nil {
		t.Fatalf("ScheduleReport: %v", err)
	}
	if due := s.DueSchedules(reg.NextGeneration.Add(time.Hour)); len(due) != 0 {
		t.Fatalf("inactive schedule reported due: %v", due)
	}
}
