package report

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// TemplateStore is the only persistence seam the registry needs. The
// serialized shape is the store's business; round-trip fidelity is the
// contract.
type TemplateStore interface {
	SaveAll(templates []model.ReportTemplate) error
	LoadAll() ([]model.ReportTemplate, error)
}

// ScheduleStore persists scheduled-report registrations the same way.
type ScheduleStore interface {
	SaveAll(reports []model.ScheduledReport) error
	LoadAll() ([]model.ScheduledReport, error)
}

// Service is the process-wide template/schedule registry. Single-writer:
// one analytics process owns the maps, the mutex covers handler and
// scheduler access.
type Service struct {
	mu        sync.RWMutex
	templates map[string]model.ReportTemplate
	scheduled map[string]model.ScheduledReport

	templateStore TemplateStore
	scheduleStore ScheduleStore
	now           func() time.Time
	nextID        int
}

// NewService loads persisted state and seeds the built-in templates.
// Seeding is idempotent: an existing template with a built-in id wins.
func NewService(templates TemplateStore, schedules ScheduleStore) (*Service, error) {
	s := &Service{
		templates:     make(map[string]model.ReportTemplate),
		scheduled:     make(map[string]model.ScheduledReport),
		templateStore: templates,
		scheduleStore: schedules,
		now:           time.Now,
	}

	loaded, err := templates.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("テンプレートの読み込みに失敗: %w", err)
	}
	for _, t := range loaded {
		s.templates[t.ID] = t
	}

	schedLoaded, err := schedules.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("スケジュールの読み込みに失敗: %w", err)
	}
	for _, r := range schedLoaded {
		s.scheduled[r.ID] = r
	}

	for _, builtin := range builtinTemplates(s.now()) {
		if _, exists := s.templates[builtin.ID]; !exists {
			s.templates[builtin.ID] = builtin
		}
	}
	if err := s.persistTemplates(); err != nil {
		return nil, err
	}
	return s, nil
}

// WithClock はテスト用に時計を差し替えます。
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) persistTemplates() error {
	all := make([]model.ReportTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return s.templateStore.SaveAll(all)
}

func (s *Service) persistSchedules() error {
	all := make([]model.ScheduledReport, 0, len(s.scheduled))
	for _, r := range s.scheduled {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return s.scheduleStore.SaveAll(all)
}

func (s *Service) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d-%d", prefix, s.now().UnixMilli(), s.nextID)
}

// CreateTemplate assigns id and timestamps and persists.
func (s *Service) CreateTemplate(t model.ReportTemplate) (model.ReportTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = s.newID("tpl")
	}
	if _, exists := s.templates[t.ID]; exists {
		return model.ReportTemplate{}, fmt.Errorf("template %s already exists", t.ID)
	}
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	sortSections(&t)
	s.templates[t.ID] = t
	return t, s.persistTemplates()
}

// UpdateTemplate is a full-field replace that bumps UpdatedAt.
func (s *Service) UpdateTemplate(t model.ReportTemplate) (model.ReportTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.templates[t.ID]
	if !ok {
		return model.ReportTemplate{}, fmt.Errorf("template not found: %s", t.ID)
	}
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = s.now()
	sortSections(&t)
	s.templates[t.ID] = t
	return t, s.persistTemplates()
}

// DeleteTemplate removes a template by id.
func (s *Service) DeleteTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[id]; !ok {
		return fmt.Errorf("template not found: %s", id)
	}
	delete(s.templates, id)
	return s.persistTemplates()
}

// GetTemplate fetches a template by id.
func (s *Service) GetTemplate(id string) (model.ReportTemplate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[id]
	return t, ok
}

// ListTemplates returns templates sorted by id.
func (s *Service) ListTemplates() []model.ReportTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]model.ReportTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// ScheduleReport registers a recurring report. NextGeneration is always
// computed here, never taken from the caller.
func (s *Service) ScheduleReport(r model.ScheduledReport) (model.ScheduledReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[r.TemplateID]; !ok {
		return model.ScheduledReport{}, fmt.Errorf("template not found: %s", r.TemplateID)
	}
	if r.ID == "" {
		r.ID = s.newID("sched")
	}
	r.NextGeneration = NextGeneration(r.Schedule, s.now())
	s.scheduled[r.ID] = r
	return r, s.persistSchedules()
}

// UpdateSchedule replaces a registration and recomputes NextGeneration.
func (s *Service) UpdateSchedule(r model.ScheduledReport) (model.ScheduledReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.scheduled[r.ID]
	if !ok {
		return model.ScheduledReport{}, fmt.Errorf("scheduled report not found: %s", r.ID)
	}
	if _, ok := s.templates[r.TemplateID]; !ok {
		return model.ScheduledReport{}, fmt.Errorf("template not found: %s", r.TemplateID)
	}
	r.LastGenerated = existing.LastGenerated
	r.NextGeneration = NextGeneration(r.Schedule, s.now())
	s.scheduled[r.ID] = r
	return r, s.persistSchedules()
}

// DeleteSchedule removes a registration.
func (s *Service) DeleteSchedule(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scheduled[id]; !ok {
		return fmt.Errorf("scheduled report not found: %s", id)
	}
	delete(s.scheduled, id)
	return s.persistSchedules()
}

// ListSchedules returns registrations sorted by id.
func (s *Service) ListSchedules() []model.ScheduledReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]model.ScheduledReport, 0, len(s.scheduled))
	for _, r := range s.scheduled {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// DueSchedules returns active registrations whose next generation time has
// passed.
func (s *Service) DueSchedules(now time.Time) []model.ScheduledReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var due []model.ScheduledReport
	for _, r := range s.scheduled {
		if r.IsActive && !r.NextGeneration.After(now) {
			due = append(due, r)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ID < due[j].ID })
	return due
}

// MarkGenerated records a completed run and rolls NextGeneration forward.
func (s *Service) MarkGenerated(id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.scheduled[id]
	if !ok {
		return fmt.Errorf("scheduled report not found: %s", id)
	}
	generated := at
	r.LastGenerated = &generated
	r.NextGeneration = NextGeneration(r.Schedule, at)
	s.scheduled[id] = r
	return s.persistSchedules()
}

// RollForward recomputes NextGeneration without touching LastGenerated.
// Used by the scheduler after a failed run so the loop moves on.
func (s *Service) RollForward(id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.scheduled[id]
	if !ok {
		return fmt.Errorf("scheduled report not found: %s", id)
	}
	r.NextGeneration = NextGeneration(r.Schedule, at)
	s.scheduled[id] = r
	return s.persistSchedules()
}

func sortSections(t *model.ReportTemplate) {
	sort.SliceStable(t.Sections, func(i, j int) bool {
		return t.Sections[i].Order < t.Sections[j].Order
	})
}
