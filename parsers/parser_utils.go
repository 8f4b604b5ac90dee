package parsers

import (
	"bufio"
	"io"
	"strings"
)

// SkipBOM はUTF-8 BOMをスキップします。
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	isBOM := true
	for i, b := range bom {
		if peeked[i] != b {
			isBOM = false
			break
		}
	}
	if isBOM {
		br.Read(make([]byte, 3))
	}
	return br
}

// NormalizeHeader はヘッダー名の前後空白を除去します。
func NormalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func isNullLike(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "n/a", "na", "-":
		return true
	}
	return false
}
