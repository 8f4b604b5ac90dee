package mapping

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

const (
	sampleLimit    = 10
	matchThreshold = 0.8
)

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	dmyDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
)

func isNumericText(s string) bool {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// isDateText requires both a parseable date and one of the two accepted
// shapes. Parse leniency alone misreads plain numbers as dates.
func isDateText(s string) bool {
	s = strings.TrimSpace(s)
	if !isoDatePattern.MatchString(s) && !dmyDatePattern.MatchString(s) {
		return false
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05Z", "2006-01-02 15:04:05", "02/01/2006"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isBoolText(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "false", "1", "0", "yes", "no":
		return true
	}
	return false
}

// DetectDataType は列のサンプル値から型を分類します。
// number → date → boolean の順に80%以上の一致で確定、どれも満たさなければstring。
func DetectDataType(sampleRows []model.Row, columnName string) model.DataType {
	var samples []string
	for _, row := range sampleRows {
		v, ok := row[columnName]
		if !ok || v.IsMissing() {
			continue
		}
		text := strings.TrimSpace(v.Text())
		if text == "" {
			continue
		}
		samples = append(samples, text)
		if len(samples) >= sampleLimit {
			break
		}
	}
	if len(samples) == 0 {
		return model.TypeString
	}

	numCount, dateCount, boolCount := 0, 0, 0
	for _, s := range samples {
		if isNumericText(s) {
			numCount++
		}
		if isDateText(s) {
			dateCount++
		}
		if isBoolText(s) {
			boolCount++
		}
	}

	threshold := int(float64(len(samples)) * matchThreshold)
	if threshold < 1 {
		threshold = 1
	}
	switch {
	case numCount >= threshold:
		return model.TypeNumber
	case dateCount >= threshold:
		return model.TypeDate
	case boolCount >= threshold:
		return model.TypeBoolean
	}
	return model.TypeString
}
