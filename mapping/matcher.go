// Package mapping infers which canonical analytics fields an uploaded
// dataset provides, by scoring raw column names against a synonym table.
package mapping

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// Canonical field names used by KPI definitions.
const (
	FieldPrice       = "price"
	FieldQuantity    = "quantity"
	FieldOrderID     = "order_id"
	FieldCustomerID  = "customer_id"
	FieldProductID   = "product_id"
	FieldProductName = "product_name"
	FieldCategory    = "category"
	FieldRegion      = "region"
	FieldDate        = "date"
	FieldOrderDate   = "order_date"
	FieldStatus      = "status"
	FieldCost        = "cost"
	FieldDiscount    = "discount"
)

// fieldSynonyms: 正規フィールドごとの同義語テーブル。
// 順序は安定している必要があるためスライスで持ちます。
var fieldSynonyms = []struct {
	field    string
	synonyms []string
}{
	{FieldPrice, []string{"price", "amount", "revenue", "total", "value", "cost", "sales", "sale price", "unit price"}},
	{FieldQuantity, []string{"quantity", "qty", "count", "units", "pieces", "items"}},
	{FieldOrderID, []string{"order_id", "order", "id", "order number", "order no", "transaction_id", "invoice"}},
	{FieldCustomerID, []string{"customer_id", "customer", "user_id", "client_id", "buyer", "cust_id"}},
	{FieldProductID, []string{"product_id", "sku", "item_id", "product code", "barcode"}},
	{FieldProductName, []string{"product_name", "product", "item", "name", "title", "description"}},
	{FieldCategory, []string{"category", "type", "group", "segment", "department", "class"}},
	{FieldRegion, []string{"region", "country", "state", "city", "location", "area", "territory"}},
	{FieldDate, []string{"date", "created_at", "timestamp", "day", "time"}},
	{FieldOrderDate, []string{"order_date", "purchase_date", "sale_date", "transaction_date"}},
	{FieldStatus, []string{"status", "state", "order_status", "fulfillment"}},
	{FieldCost, []string{"cost", "cogs", "unit_cost", "purchase_price", "expense"}},
	{FieldDiscount, []string{"discount", "discount_rate", "promo", "rebate", "markdown"}},
}

const (
	exactConfidence     = 1.0
	substringConfidence = 0.8
	fuzzyWeight         = 0.7
	fuzzyFloor          = 0.6
	keepThreshold       = 0.5
)

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return s
}

// similarity = 1 - levenshtein/maxLen.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(maxLen)
}

// score returns the confidence that column corresponds to synonym.
// Exact=1.0, substring containment=0.8, otherwise scaled edit similarity.
func score(column, synonym string) float64 {
	if column == synonym {
		return exactConfidence
	}
	if strings.Contains(column, synonym) || strings.Contains(synonym, column) {
		return substringConfidence
	}
	if sim := similarity(column, synonym); sim > fuzzyFloor {
		return sim * fuzzyWeight
	}
	return 0
}

// DetectColumnMappings scores every dataset column against every synonym and
// keeps the best column per canonical field when confidence exceeds 0.5.
// Ties keep the first column in dataset order. Never returns an error:
// a field nobody matches is simply absent from the result.
func DetectColumnMappings(datasetColumns []string, sampleRows []model.Row) []model.ColumnMapping {
	var mappings []model.ColumnMapping

	for _, entry := range fieldSynonyms {
		bestConfidence := 0.0
		bestColumn := ""

		for _, col := range datasetColumns {
			norm := normalize(col)
			colBest := 0.0
			for _, syn := range entry.synonyms {
				s := score(norm, normalize(syn))
				if s > colBest {
					colBest = s
				}
				if colBest == exactConfidence {
					break
				}
			}
			// strictly greater: first column wins ties
			if colBest > bestConfidence {
				bestConfidence = colBest
				bestColumn = col
			}
		}

		if bestConfidence > keepThreshold {
			mappings = append(mappings, model.ColumnMapping{
				DetectedColumn: bestColumn,
				RequiredColumn: entry.field,
				Confidence:     bestConfidence,
				DataType:       DetectDataType(sampleRows, bestColumn),
			})
		}
	}

	return mappings
}
