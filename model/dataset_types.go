package model

import (
	"strconv"
	"strings"
	"time"
)

// DataType は列の推論型です。
type DataType string

const (
	TypeString  DataType = "string"
	TypeNumber  DataType = "number"
	TypeDate    DataType = "date"
	TypeBoolean DataType = "boolean"
)

// ValueKind discriminates the cell value union.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindNumber
	KindText
	KindTime
	KindBool
)

// Value is a single parsed cell. Raw always keeps the original text so
// re-export round-trips the upload unchanged.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Time time.Time
	Bool bool
	Raw  string
}

func Missing() Value { return Value{Kind: KindMissing} }

func NumberValue(f float64, raw string) Value {
	return Value{Kind: KindNumber, Num: f, Raw: raw}
}

func TextValue(s string) Value {
	return Value{Kind: KindText, Str: s, Raw: s}
}

func TimeValue(t time.Time, raw string) Value {
	return Value{Kind: KindTime, Time: t, Raw: raw}
}

func BoolValue(b bool, raw string) Value {
	return Value{Kind: KindBool, Bool: b, Raw: raw}
}

// IsMissing reports whether the cell held no usable value.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// NumberOr returns the numeric reading of the cell, or def when the cell
// is missing or not numeric. Text that parses as a number counts.
func (v Value) NumberOr(def float64) float64 {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	case KindText:
		s := strings.ReplaceAll(strings.TrimSpace(v.Str), ",", "")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return def
}

// Text returns the display text of the cell.
func (v Value) Text() string {
	if v.Kind == KindMissing {
		return ""
	}
	return v.Raw
}

// TimeOr returns the cell as a time, or def when it is not one.
func (v Value) TimeOr(def time.Time) time.Time {
	if v.Kind == KindTime {
		return v.Time
	}
	return def
}

// Row は取り込み済みデータの1行です。キーは元のCSVヘッダー名。
type Row map[string]Value

// ColumnMapping は検出列と正規フィールドの対応です。
type ColumnMapping struct {
	DetectedColumn string   `json:"detectedColumn"`
	RequiredColumn string   `json:"requiredColumn"`
	Confidence     float64  `json:"confidence"`
	DataType       DataType `json:"dataType"`
}
