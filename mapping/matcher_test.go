package mapping

import (
	"math"
	"reflect"
	"testing"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

func mappingFor(t *testing.T, mappings []model.ColumnMapping, field string) model.ColumnMapping {
	t.Helper()
	for _, m := range mappings {
		if m.RequiredColumn == field {
			return m
		}
	}
	t.Fatalf("no mapping found for field %q in %v", field, mappings)
	return model.ColumnMapping{}
}

func TestDetectColumnMappingsMessyRetailHeaders(t *testing.T) {
	columns := []string{"Product Name", "Sale Price", "Qty", "Order Number", "Customer"}
	mappings := DetectColumnMappings(columns, nil)

	want := map[string]string{
		FieldProductName: "Product Name",
		FieldPrice:       "Sale Price",
		FieldQuantity:    "Qty",
		FieldOrderID:     "Order Number",
		FieldCustomerID:  "Customer",
	}
	for field, col := range want {
		m := mappingFor(t, mappings, field)
		if m.DetectedColumn != col {
			t.Fatalf("field %s: got column %q, want %q", field, m.DetectedColumn, col)
		}
		if m.Confidence != 1.0 {
			t.Fatalf("field %s: got confidence %v, want 1.0", field, m.Confidence)
		}
	}
}

func TestDetectColumnMappingsColumnMayServeSeveralFields(t *testing.T) {
	// best-match is chosen per field, not per column: "Product Name" wins
	// product_name exactly and product_id fuzzily ("product code" is three
	// edits away, similarity 0.75 scaled by 0.7)
	mappings := DetectColumnMappings([]string{"Product Name"}, nil)

	name := mappingFor(t, mappings, FieldProductName)
	if name.Confidence != 1.0 {
		t.Fatalf("product_name confidence = %v, want 1.0", name.Confidence)
	}
	pid := mappingFor(t, mappings, FieldProductID)
	if pid.DetectedColumn != "Product Name" {
		t.Fatalf("product_id mapped to %q, want Product Name", pid.DetectedColumn)
	}
	if math.Abs(pid.Confidence-0.525) > 1e-9 {
		t.Fatalf("product_id confidence = %v, want 0.525", pid.Confidence)
	}
	if len(mappings) != 2 {
		t.Fatalf("got %d mappings, want 2: %v", len(mappings), mappings)
	}
}

func TestDetectColumnMappingsSubstringConfidence(t *testing.T) {
	mappings := DetectColumnMappings([]string{"total_price"}, nil)
	m := mappingFor(t, mappings, FieldPrice)
	if m.Confidence != 0.8 {
		t.Fatalf("substring match confidence = %v, want 0.8", m.Confidence)
	}
}

func TestDetectColumnMappingsTieKeepsFirstColumn(t *testing.T) {
	// both columns score 0.8 against the price synonyms
	mappings := DetectColumnMappings([]string{"total_price", "price_total"}, nil)
	m := mappingFor(t, mappings, FieldPrice)
	if m.DetectedColumn != "total_price" {
		t.Fatalf("tie resolved to %q, want first column total_price", m.DetectedColumn)
	}
}

func TestDetectColumnMappingsFuzzyMatch(t *testing.T) {
	// "prise" is one edit from "price": similarity 0.8, scaled by 0.7
	mappings := DetectColumnMappings([]string{"prise"}, nil)
	m := mappingFor(t, mappings, FieldPrice)
	if math.Abs(m.Confidence-0.56) > 1e-9 {
		t.Fatalf("fuzzy confidence = %v, want 0.56", m.Confidence)
	}
}

func TestDetectColumnMappingsRejectsUnrelatedColumns(t *testing.T) {
	mappings := DetectColumnMappings([]string{"zzzzzz", "qqqqqq"}, nil)
	if len(mappings) != 0 {
		t.Fatalf("expected no mappings for unrelated columns, got %v", mappings)
	}
}

func TestDetectColumnMappingsConfidenceBounds(t *testing.T) {
	columns := []string{"Product Name", "Sale Price", "Qty", "prise", "total_price", "order no", "created_at"}
	for _, m := range DetectColumnMappings(columns, nil) {
		if m.Confidence <= 0.5 || m.Confidence > 1.0 {
			t.Fatalf("mapping %s -> %s confidence %v out of (0.5, 1.0]",
				m.DetectedColumn, m.RequiredColumn, m.Confidence)
		}
	}
}

func TestDetectColumnMappingsDeterministic(t *testing.T) {
	columns := []string{"order_date", "Sale Price", "Qty", "customer", "status", "discount_rate"}
	rows := []model.Row{
		{"Sale Price": model.TextValue("12.5"), "Qty": model.TextValue("2")},
	}
	first := DetectColumnMappings(columns, rows)
	second := DetectColumnMappings(columns, rows)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different mappings:\n%v\n%v", first, second)
	}
}

func TestDetectColumnMappingsAssignsDataType(t *testing.T) {
	rows := []model.Row{
		{"Sale Price": model.TextValue("12.5")},
		{"Sale Price": model.TextValue("7")},
	}
	mappings := DetectColumnMappings([]string{"Sale Price"}, rows)
	m := mappingFor(t, mappings, FieldPrice)
	if m.DataType != model.TypeNumber {
		t.Fatalf("data type = %s, want number", m.DataType)
	}
}
