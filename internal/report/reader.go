package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ReadCSV parses a search term report into a Table. Header names are
// lowercased and trimmed; surrounding quotes left behind by spreadsheet
// exports are stripped. Ragged rows are tolerated; short rows resolve
// missing cells to field defaults downstream.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	table := &Table{Headers: make([]string, len(header))}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		table.Headers[i] = strings.Trim(h, "\"'")
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(table.Rows)+2, err)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// Parse reads a CSV report and materializes performance records in one
// call, returning the records together with the column resolution so
// callers can surface which fields fell back to defaults.
func Parse(r io.Reader, aliases AliasTable) ([]PerformanceRecord, *Resolution, error) {
	table, err := ReadCSV(r)
	if err != nil {
		return nil, nil, err
	}
	res := ResolveColumns(table.Headers, aliases)
	return BuildRecords(table, res), res, nil
}
