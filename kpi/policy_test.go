package kpi

import (
	"math"
	"testing"
	"time"

	"github.com/ozcanhakn/retailmindai-sub000/mapping"
	"github.com/ozcanhakn/retailmindai-sub000/model"
)

func TestGrowthTrend(t *testing.T) {
	up := growthTrend(150, 100)
	if up.Value != 50 {
		t.Fatalf("growth = %v, want 50", up.Value)
	}
	if up.Trend == nil || up.Trend.Direction != model.TrendUp || up.Trend.Percentage != 50 {
		t.Fatalf("trend = %+v, want up 50", up.Trend)
	}
	if up.PreviousValue == nil || *up.PreviousValue != 100 {
		t.Fatalf("previous = %v, want 100", up.PreviousValue)
	}

	down := growthTrend(50, 100)
	if down.Trend.Direction != model.TrendDown || down.Trend.Percentage != 50 {
		t.Fatalf("trend = %+v, want down 50", down.Trend)
	}

	// inside the ±0.5 band
	flat := growthTrend(100.2, 100)
	if flat.Trend.Direction != model.TrendStable {
		t.Fatalf("trend = %+v, want stable", flat.Trend)
	}

	// zero baseline never divides
	zero := growthTrend(100, 0)
	if zero.Value != 0 || zero.Trend.Direction != model.TrendStable {
		t.Fatalf("zero baseline: %+v", zero)
	}
}

func TestParetoShare(t *testing.T) {
	rows := []model.Row{
		{mapping.FieldCustomerID: model.TextValue("a"), mapping.FieldPrice: model.NumberValue(100, "100")},
		{mapping.FieldCustomerID: model.TextValue("b"), mapping.FieldPrice: model.NumberValue(50, "50")},
		{mapping.FieldCustomerID: model.TextValue("c"), mapping.FieldPrice: model.NumberValue(20, "20")},
		{mapping.FieldCustomerID: model.TextValue("d"), mapping.FieldPrice: model.NumberValue(20, "20")},
		{mapping.FieldCustomerID: model.TextValue("e"), mapping.FieldPrice: model.NumberValue(10, "10")},
	}
	// ceil(5 * 0.2) = 1 group; 100 of 200 total
	if got := paretoShare(rows, mapping.FieldCustomerID); math.Abs(got-50) > 1e-9 {
		t.Fatalf("pareto share = %v, want 50", got)
	}
	if got := paretoShare(nil, mapping.FieldCustomerID); got != 0 {
		t.Fatalf("empty pareto share = %v, want 0", got)
	}
}

func TestSpanDays(t *testing.T) {
	if got := spanDays(nil); got != 1 {
		t.Fatalf("no dates: span = %v, want 1", got)
	}
	rows := []model.Row{
		{mapping.FieldDate: model.TimeValue(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "2024-03-01")},
		{mapping.FieldDate: model.TimeValue(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), "2024-03-03")},
	}
	if got := spanDays(rows); got != 3 {
		t.Fatalf("span = %v, want 3 inclusive days", got)
	}
}

func TestStatusIsCaseInsensitive(t *testing.T) {
	row := model.Row{mapping.FieldStatus: model.TextValue("Delivered")}
	if !statusIs(row, "delivered", "shipped") {
		t.Fatal("Delivered should match delivered")
	}
	if statusIs(row, "returned") {
		t.Fatal("Delivered should not match returned")
	}
}

func TestRatioPercent(t *testing.T) {
	if got := ratioPercent(1, 4); got != 25 {
		t.Fatalf("got %v, want 25", got)
	}
	if got := ratioPercent(1, 0); got != 0 {
		t.Fatalf("zero whole: got %v, want 0", got)
	}
}
