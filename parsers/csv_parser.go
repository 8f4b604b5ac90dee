package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ozcanhakn/retailmindai-sub000/model"
)

// Dataset はアップロード1件の取り込み結果です。
type Dataset struct {
	Columns []string
	Rows    []model.Row
}

// cellDateFormats: 取り込み時に日付として認識するフォーマット。
var cellDateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2006/01/02",
}

func decoderFor(charset string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8.NewDecoder(), nil
	case "shift_jis", "shift-jis", "sjis":
		return japanese.ShiftJIS.NewDecoder(), nil
	case "windows-1252", "cp1252", "latin1", "iso-8859-1":
		return charmap.Windows1252.NewDecoder(), nil
	}
	return nil, fmt.Errorf("unsupported charset: %s", charset)
}

// ParseCSV はCSVを読み込み、型付きの行データに変換します。
// charsetが空の場合はUTF-8(BOM許容)として扱います。
func ParseCSV(r io.Reader, charset string) (*Dataset, error) {
	dec, err := decoderFor(charset)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(SkipBOM(transform.NewReader(r, dec)))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("CSVヘッダーの読み込みに失敗: %w", err)
	}
	header = NormalizeHeader(header)
	if len(header) == 0 {
		return nil, fmt.Errorf("CSVに列がありません")
	}

	ds := &Dataset{Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// 壊れた行はスキップ
			continue
		}
		row := make(model.Row, len(header))
		for i, col := range header {
			if i >= len(record) {
				row[col] = model.Missing()
				continue
			}
			row[col] = ParseCell(record[i])
		}
		ds.Rows = append(ds.Rows, row)
	}
	if len(ds.Rows) == 0 {
		return nil, fmt.Errorf("CSVにデータ行がありません")
	}
	return ds, nil
}

// ParseCell は1セルを値ユニオンへ変換します。
// 数値 → 日付 → 真偽 → テキスト の順で判定します。
func ParseCell(raw string) model.Value {
	s := strings.TrimSpace(raw)
	if isNullLike(s) {
		return model.Missing()
	}

	numeric := strings.ReplaceAll(s, ",", "")
	if f, err := strconv.ParseFloat(numeric, 64); err == nil {
		return model.NumberValue(f, s)
	}

	for _, layout := range cellDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return model.TimeValue(t, s)
		}
	}

	switch strings.ToLower(s) {
	case "true", "yes":
		return model.BoolValue(true, s)
	case "false", "no":
		return model.BoolValue(false, s)
	}

	return model.TextValue(s)
}
