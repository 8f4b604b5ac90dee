package report

import (
	"testing"
	"time"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

func TestNextGenerationDaily(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	s := model.ReportSchedule{Type: model.ScheduleDaily, Time: "09:00"}

	got := NextGeneration(s, now)
	want := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("daily next = %v, want %v", got, want)
	}
}

func TestNextGenerationWeekly(t *testing.T) {
	// Monday
	now := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)
	s := model.ReportSchedule{Type: model.ScheduleWeekly, Time: "06:30", DayOfWeek: 3}

	got := NextGeneration(s, now)
	want := time.Date(2024, 3, 13, 6, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("weekly next = %v, want Wednesday %v", got, want)
	}
}

func TestNextGenerationWeeklySameDayRollsAWeek(t *testing.T) {
	// Wednesday, before the scheduled time of day
	now := time.Date(2024, 3, 13, 1, 0, 0, 0, time.UTC)
	s := model.ReportSchedule{Type: model.ScheduleWeekly, Time: "06:30", DayOfWeek: 3}

	got := NextGeneration(s, now)
	want := time.Date(2024, 3, 20, 6, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("same-day weekly next = %v, want next week %v", got, want)
	}
}

func TestNextGenerationMonthly(t *testing.T) {
	now := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	s := model.ReportSchedule{Type: model.ScheduleMonthly, Time: "07:00", DayOfMonth: 31}

	got := NextGeneration(s, now)
	want := time.Date(2024, 3, 31, 7, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("monthly next = %v, want %v", got, want)
	}
}

func TestNextGenerationMonthlyOverflowNormalizes(t *testing.T) {
	// April has 30 days; day 31 normalizes into May
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	s := model.ReportSchedule{Type: model.ScheduleMonthly, Time: "07:00", DayOfMonth: 31}

	got := NextGeneration(s, now)
	want := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("overflow monthly next = %v, want %v", got, want)
	}
}

func TestNextGenerationQuarterly(t *testing.T) {
	now := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	s := model.ReportSchedule{Type: model.ScheduleQuarterly, Time: "08:00"}

	got := NextGeneration(s, now)
	want := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("quarterly next = %v, want %v", got, want)
	}
}

func TestNextGenerationOnceAndUnknown(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	for _, typ := range []model.ScheduleType{model.ScheduleOnce, "yearly", ""} {
		got := NextGeneration(model.ReportSchedule{Type: typ}, now)
		if !got.Equal(now.Add(24 * time.Hour)) {
			t.Fatalf("type %q: next = %v, want now+24h", typ, got)
		}
	}
}

func TestNextGenerationMalformedTimeDegradesToMidnight(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	s := model.ReportSchedule{Type: model.ScheduleDaily, Time: "nonsense"}

	got := NextGeneration(s, now)
	want := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("malformed time: next = %v, want %v", got, want)
	}
}

func TestNextGenerationTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 20:00 UTC on Mar 10 is already Mar 11 in Tokyo
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	s := model.ReportSchedule{Type: model.ScheduleDaily, Time: "09:00", Timezone: "Asia/Tokyo"}

	got := NextGeneration(s, now)
	want := time.Date(2024, 3, 12, 9, 0, 0, 0, tokyo)
	if !got.Equal(want) {
		t.Fatalf("tokyo next = %v, want %v", got, want)
	}
}

func TestNextGenerationDeterministic(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	s := model.ReportSchedule{Type: model.ScheduleWeekly, Time: "06:30", DayOfWeek: 5}
	if !NextGeneration(s, now).Equal(NextGeneration(s, now)) {
		t.Fatal("same input produced different next-run times")
	}
}
