// Package report implements the template registry, schedule computation
// and report generation pipeline.
package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// parseClock reads "HH:MM"; malformed input degrades to 00:00 rather than
// erroring, per the schedule contract.
func parseClock(s string) (hour, minute int) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) == 2 {
		if h, err := strconv.Atoi(parts[0]); err == nil && h >= 0 && h <= 23 {
			hour = h
		}
		if m, err := strconv.Atoi(parts[1]); err == nil && m >= 0 && m <= 59 {
			minute = m
		}
	}
	return hour, minute
}

func scheduleLocation(s model.ReportSchedule) *time.Location {
	if s.Timezone != "" {
		if loc, err := time.LoadLocation(s.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}

// NextGeneration computes the next run time for a schedule, purely from
// (schedule, now). Unrecognized types fall back to now+24h.
//
// Weekly: when the target weekday equals today's, the run is placed seven
// days out even if the time of day has not passed yet. This keeps the
// result strictly in the future without a time-of-day comparison.
//
// Monthly: no clamping for short months; dayOfMonth=31 in a 30-day month
// normalizes into the following month.
func NextGeneration(schedule model.ReportSchedule, now time.Time) time.Time {
	loc := scheduleLocation(schedule)
	now = now.In(loc)
	hour, minute := parseClock(schedule.Time)

	switch schedule.Type {
	case model.ScheduleDaily:
		t := now.AddDate(0, 0, 1)
		return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, loc)

	case model.ScheduleWeekly:
		days := (schedule.DayOfWeek - int(now.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		t := now.AddDate(0, 0, days)
		return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, loc)

	case model.ScheduleMonthly:
		day := schedule.DayOfMonth
		if day < 1 {
			day = 1
		}
		return time.Date(now.Year(), now.Month()+1, day, hour, minute, 0, 0, loc)

	case model.ScheduleQuarterly:
		return time.Date(now.Year(), now.Month()+3, 1, hour, minute, 0, 0, loc)

	default: // once or unrecognized
		return now.Add(24 * time.Hour)
	}
}
