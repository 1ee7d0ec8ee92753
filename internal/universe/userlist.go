package universe

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
)

// ParseUserList parses a caller-supplied symbol file permissively.
// Tabular input (a CSV with a "Symbol" header column) extracts that
// column; anything else is treated line-oriented, one trimmed non-blank
// line per symbol. Malformed rows are skipped, never fatal.
func ParseUserList(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}

	if header, ok := csvHeader(raw); ok {
		return parseCSV(raw, header)
	}
	return parseLines(raw)
}

// csvHeader inspects the first non-blank line; a comma-separated header
// containing a "symbol" field marks tabular input.
func csvHeader(raw []byte) ([]string, bool) {
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.Contains(line, ",") {
			return nil, false
		}
		fields := strings.Split(line, ",")
		for _, f := range fields {
			if strings.EqualFold(strings.TrimSpace(f), "symbol") {
				return fields, true
			}
		}
		return nil, false
	}
	return nil, false
}

func parseCSV(raw []byte, header []string) []string {
	col := 0
	for i, f := range header {
		if strings.EqualFold(strings.TrimSpace(f), "symbol") {
			col = i
			break
		}
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var symbols []string
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: skip, keep parsing
			continue
		}
		if first {
			first = false
			continue // header
		}
		if col >= len(record) {
			continue
		}
		sym := strings.TrimSpace(record[col])
		if sym != "" {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func parseLines(raw []byte) []string {
	var symbols []string
	for _, line := range strings.Split(string(raw), "\n") {
		sym := strings.TrimSpace(line)
		if sym != "" {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}
