// Package kpi holds the metric catalog and the detection engine that
// decides which metrics an uploaded dataset can support.
package kpi

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ozcanhakn/retailmindai-sub000/mapping"
	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// Lenient-default policy for numeric aggregates: a missing price reads as
// 0, a missing quantity as 1 (one unit per line item). Kept in one place
// so calculations never hand-roll their own defaults.
func priceOf(row model.Row) float64 {
	return row[mapping.FieldPrice].NumberOr(0)
}

func quantityOf(row model.Row) float64 {
	return row[mapping.FieldQuantity].NumberOr(1)
}

func lineRevenue(row model.Row) float64 {
	return priceOf(row) * quantityOf(row)
}

func totalRevenue(rows []model.Row) float64 {
	var sum float64
	for _, row := range rows {
		sum += lineRevenue(row)
	}
	return sum
}

// distinctCount counts distinct non-empty values of field, falling back to
// fallback when field is absent in a row.
func distinctCount(rows []model.Row, field, fallback string) int {
	seen := make(map[string]struct{})
	for _, row := range rows {
		key := row[field].Text()
		if key == "" && fallback != "" {
			key = row[fallback].Text()
		}
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}

// groupRevenue sums line revenue per distinct value of keyField.
func groupRevenue(rows []model.Row, keyField string) map[string]float64 {
	groups := make(map[string]float64)
	for _, row := range rows {
		key := row[keyField].Text()
		if key == "" {
			continue
		}
		groups[key] += lineRevenue(row)
	}
	return groups
}

// paretoShare returns the revenue share (percent of total) held by the top
// ceil(20%) of groups, sorted by descending revenue.
func paretoShare(rows []model.Row, keyField string) float64 {
	groups := groupRevenue(rows, keyField)
	if len(groups) == 0 {
		return 0
	}
	revenues := make([]float64, 0, len(groups))
	var total float64
	for _, r := range groups {
		revenues = append(revenues, r)
		total += r
	}
	if total == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(revenues)))
	take := int(math.Ceil(float64(len(revenues)) * 0.2))
	var top float64
	for i := 0; i < take; i++ {
		top += revenues[i]
	}
	return top / total * 100
}

func rowDate(row model.Row) (time.Time, bool) {
	t := row[mapping.FieldDate].TimeOr(time.Time{})
	return t, !t.IsZero()
}

// dateRange returns the min/max dated rows. ok is false when no row has a
// usable date.
func dateRange(rows []model.Row) (min, max time.Time, ok bool) {
	for _, row := range rows {
		t, has := rowDate(row)
		if !has {
			continue
		}
		if !ok {
			min, max, ok = t, t, true
			continue
		}
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	return min, max, ok
}

// spanDays is the inclusive day count of the dataset's date range, at
// least 1 so per-day averages never divide by zero.
func spanDays(rows []model.Row) float64 {
	min, max, ok := dateRange(rows)
	if !ok {
		return 1
	}
	days := max.Sub(min).Hours()/24 + 1
	if days < 1 {
		return 1
	}
	return days
}

// splitHalves partitions dated rows around the midpoint of the date range.
func splitHalves(rows []model.Row) (first, second []model.Row) {
	min, max, ok := dateRange(rows)
	if !ok {
		return nil, nil
	}
	mid := min.Add(max.Sub(min) / 2)
	for _, row := range rows {
		t, has := rowDate(row)
		if !has {
			continue
		}
		if t.After(mid) {
			second = append(second, row)
		} else {
			first = append(first, row)
		}
	}
	return first, second
}

// growthTrend builds the value/trend triple for a current-vs-previous pair.
func growthTrend(current, previous float64) model.KPIValue {
	v := model.KPIValue{Value: 0, PreviousValue: &previous}
	if previous != 0 {
		v.Value = (current - previous) / previous * 100
	}
	direction := model.TrendStable
	switch {
	case v.Value > 0.5:
		direction = model.TrendUp
	case v.Value < -0.5:
		direction = model.TrendDown
	}
	v.Trend = &model.Trend{Direction: direction, Percentage: math.Abs(v.Value)}
	return v
}

// statusIs reports whether the row status matches any of the given states
// (case-insensitive).
func statusIs(row model.Row, states ...string) bool {
	s := row[mapping.FieldStatus].Text()
	for _, state := range states {
		if strings.EqualFold(s, state) {
			return true
		}
	}
	return false
}

// ratioPercent returns part/whole*100, 0 when whole is 0.
func ratioPercent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// synthetic builds a placeholder value honest about its origin.
func synthetic(value float64, rationale string) model.KPIValue {
	return model.KPIValue{Value: value, Synthetic: true, Rationale: rationale}
}
