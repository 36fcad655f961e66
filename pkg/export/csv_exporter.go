package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Table is tabular export content. Every row must carry one cell per
// header.
type Table struct {
	Headers []string
	Rows    [][]string
}

// CSV renders the table into CSV bytes.
func CSV(t Table) ([]byte, error) {
	if len(t.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(t.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return nil, fmt.Errorf("csv row has %d cells, want %d", len(row), len(t.Headers))
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
