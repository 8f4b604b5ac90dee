package kpi

import (
	"fmt"
	"strings"

	"github.com/ozcanhakn/retailmindai-sub000/mapping"
	"github.com/ozcanhakn/retailmindai-sub000/model"
)

const maxRecommendations = 5

// Detector decides which registry KPIs a dataset can support and computes
// them.
type Detector struct {
	registry *Registry
}

func NewDetector(registry *Registry) *Detector {
	return &Detector{registry: registry}
}

// Registry exposes the catalog the detector evaluates.
func (d *Detector) Registry() *Registry { return d.registry }

// canonicalRows rekeys rows from detected column names to canonical field
// names. The caller's rows are never touched. When date is unmapped but
// order_date is, order_date doubles as date so date KPIs still light up.
func canonicalRows(rows []model.Row, mappings []model.ColumnMapping) []model.Row {
	fields := make(map[string]string, len(mappings)) // canonical -> detected
	for _, m := range mappings {
		fields[m.RequiredColumn] = m.DetectedColumn
	}
	if _, ok := fields[mapping.FieldDate]; !ok {
		if col, ok := fields[mapping.FieldOrderDate]; ok {
			fields[mapping.FieldDate] = col
		}
	}
	out := make([]model.Row, len(rows))
	for i, row := range rows {
		canon := make(model.Row, len(fields))
		for field, col := range fields {
			if v, ok := row[col]; ok {
				canon[field] = v
			} else {
				canon[field] = model.Missing()
			}
		}
		out[i] = canon
	}
	return out
}

// DetectAvailableKPIs evaluates the registry against the mapped dataset.
// One KPI failing never aborts the rest; failures surface as
// recommendations. Output is deterministic for identical input.
func (d *Detector) DetectAvailableKPIs(rows []model.Row, mappings []model.ColumnMapping) model.KPIDetectionResult {
	available := make(map[string]bool, len(mappings))
	for _, m := range mappings {
		available[m.RequiredColumn] = true
	}
	if !available[mapping.FieldDate] && available[mapping.FieldOrderDate] {
		available[mapping.FieldDate] = true
	}

	canon := canonicalRows(rows, mappings)

	var kpis []model.CalculatedKPI
	var perKPI []string
	var general []string

	seenMissing := make(map[string]bool)

	for _, def := range d.registry.All() {
		missing := missingColumns(def.RequiredColumns, available)
		if len(missing) > 0 {
			// one suggestion per missing-column combination
			if key := strings.Join(missing, ","); len(missing) <= 2 && !seenMissing[key] {
				seenMissing[key] = true
				perKPI = append(perKPI, fmt.Sprintf(
					"Add %s column(s) to unlock %q", strings.Join(missing, ", "), def.Title))
			}
			continue
		}

		value, err := def.Calculation(canon)
		if err != nil {
			perKPI = append(perKPI, fmt.Sprintf(
				"%q could not be computed from columns %s: %v",
				def.Title, strings.Join(def.RequiredColumns, ", "), err))
			continue
		}

		kpis = append(kpis, model.CalculatedKPI{
			Definition:    def,
			Value:         value.Value,
			Trend:         value.Trend,
			PreviousValue: value.PreviousValue,
			Synthetic:     value.Synthetic || def.Synthetic,
			Rationale:     value.Rationale,
		})
	}

	total := d.registry.Size()
	coverage := model.Coverage{Total: total, Available: len(kpis)}
	if total > 0 {
		coverage.Percentage = float64(len(kpis)) / float64(total) * 100
	}

	if !available[mapping.FieldDate] && !available[mapping.FieldOrderDate] {
		general = append(general, "Add a date or order_date column to unlock trends and forecasts")
	}

	recommendations := make([]string, 0, maxRecommendations)
	if coverage.Percentage < 50 {
		recommendations = append(recommendations,
			"Less than half of the KPI catalog is computable; add more of the standard retail columns")
	}
	// general recommendations keep their slots even when per-KPI ones overflow
	room := maxRecommendations - len(recommendations) - len(general)
	if room < 0 {
		room = 0
	}
	if len(perKPI) > room {
		perKPI = perKPI[:room]
	}
	recommendations = append(recommendations, perKPI...)
	recommendations = append(recommendations, general...)
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	return model.KPIDetectionResult{
		AvailableKPIs:   kpis,
		ColumnMappings:  mappings,
		Coverage:        coverage,
		Recommendations: recommendations,
	}
}

func missingColumns(required []string, available map[string]bool) []string {
	var missing []string
	for _, col := range required {
		if !available[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
