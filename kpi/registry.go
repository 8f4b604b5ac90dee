package kpi

import "github.com/ozcanhakn/retailmindai-sub000/model"

// Registry is the fixed, ordered KPI catalog. Definitions are immutable;
// detection iterates in this order so results are deterministic.
type Registry struct {
	definitions []model.KPIDefinition
}

// NewRegistry builds the built-in catalog. Category order matches the
// dashboard tabs: sales, customers, operations, forecast, financial,
// benchmark.
func NewRegistry() *Registry {
	r := &Registry{}
	r.add(salesKPIs()...)
	r.add(customerKPIs()...)
	r.add(operationsKPIs()...)
	r.add(forecastKPIs()...)
	r.add(financialKPIs()...)
	r.add(benchmarkKPIs()...)
	return r
}

func (r *Registry) add(defs ...model.KPIDefinition) {
	r.definitions = append(r.definitions, defs...)
}

// All returns the catalog in registry order.
func (r *Registry) All() []model.KPIDefinition {
	return r.definitions
}

// Size は定義数を返します。
func (r *Registry) Size() int { return len(r.definitions) }

// ByCategory filters the catalog, preserving order.
func (r *Registry) ByCategory(cat model.KPICategory) []model.KPIDefinition {
	var out []model.KPIDefinition
	for _, d := range r.definitions {
		if d.Category == cat {
			out = append(out, d)
		}
	}
	return out
}

// Get looks a definition up by id.
func (r *Registry) Get(id string) (model.KPIDefinition, bool) {
	for _, d := range r.definitions {
		if d.ID == id {
			return d, true
		}
	}
	return model.KPIDefinition{}, false
}
