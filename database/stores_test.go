package database

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ozcanhakn/retailmindai-sub000/loader"
	"github.com/ozcanhakn/retailmindai-sub000/model"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conn, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := loader.InitDatabase(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return conn
}

func TestTemplateStoreRoundTrip(t *testing.T) {
	store := NewTemplateStore(testDB(t))

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	in := []model.ReportTemplate{
		{
			ID: "tpl-1", Name: "Sales", Format: "pdf", Layout: "portrait",
			Sections:  []model.ReportSection{{ID: "kpis", Type: model.SectionKPI, Order: 1}},
			CreatedAt: now, UpdatedAt: now,
		},
		{ID: "tpl-2", Name: "Ops", Format: "excel", CreatedAt: now, UpdatedAt: now},
	}
	if err := store.SaveAll(in); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	out, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("loaded %d templates, want 2", len(out))
	}
	if out[0].ID != "tpl-1" || out[0].Sections[0].ID != "kpis" {
		t.Fatalf("round trip mangled template: %+v", out[0])
	}

	// SaveAll replaces, never appends
	if err := store.SaveAll(in[:1]); err != nil {
		t.Fatalf("SaveAll replace: %v", err)
	}
	out, err = store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("replace left %d templates, want 1", len(out))
	}
}

func TestScheduleStoreRoundTrip(t *testing.T) {
	store := NewScheduleStore(testDB(t))

	next := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	in := []model.ScheduledReport{
		{
			ID: "sched-1", TemplateID: "tpl-1", Name: "Nightly",
			Schedule:       model.ReportSchedule{Type: model.ScheduleDaily, Time: "09:00"},
			IsActive:       true,
			NextGeneration: next,
			Recipients:     []string{"ops@example.com"},
		},
	}
	if err := store.SaveAll(in); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	out, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("loaded %d schedules, want 1", len(out))
	}
	got := out[0]
	if got.Schedule.Type != model.ScheduleDaily || !got.NextGeneration.Equal(next) {
		t.Fatalf("round trip mangled schedule: %+v", got)
	}
	if len(got.Recipients) != 1 || got.Recipients[0] != "ops@example.com" {
		t.Fatalf("recipients lost: %v", got.Recipients)
	}
}

func TestReportRecordStoreNewestFirst(t *testing.T) {
	store := NewReportRecordStore(testDB(t))

	older := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	newer := older.Add(2 * time.Hour)
	records := []model.GeneratedReport{
		{ID: "gen-1", TemplateID: "tpl-1", Name: "old", GeneratedAt: older, Format: "pdf", FilePath: "/tmp/a.pdf", FileSize: 10},
		{ID: "gen-2", TemplateID: "tpl-1", Name: "new", GeneratedAt: newer, Format: "csv", FilePath: "/tmp/b.csv", FileSize: 20},
	}
	for _, r := range records {
		if err := store.Insert(r); err != nil {
			t.Fatalf("Insert %s: %v", r.ID, err)
		}
	}

	out, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 || out[0].ID != "gen-2" {
		t.Fatalf("history not newest-first: %+v", out)
	}
	if !out[0].GeneratedAt.Equal(newer) {
		t.Fatalf("timestamp round trip: %v, want %v", out[0].GeneratedAt, newer)
	}
}

func TestAnalysisStoreLimit(t *testing.T) {
	store := NewAnalysisStore(testDB(t))

	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := AnalysisRecord{
			ID:         "an-" + string(rune('a'+i)),
			Filename:   "orders.csv",
			UploadedAt: base.Add(time.Duration(i) * time.Hour),
			TotalRows:  i + 1,
			Result: model.KPIDetectionResult{
				Coverage: model.Coverage{Total: 41, Available: i},
			},
		}
		if err := store.Insert(rec); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	out, err := store.List(2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("limit ignored: got %d records", len(out))
	}
	if out[0].TotalRows != 3 {
		t.Fatalf("not newest-first: %+v", out[0])
	}
	if out[0].Result.Coverage.Total != 41 {
		t.Fatalf("result payload lost: %+v", out[0].Result)
	}
}
