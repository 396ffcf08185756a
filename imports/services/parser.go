package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseUpload reads a tabular upload into ordered rows. The format is picked
// from the file extension: .csv goes through encoding/csv, everything else is
// treated as a spreadsheet. Parsing never validates cell content; it only
// builds the string-keyed field map per row, column names verbatim.
func ParseUpload(ctx context.Context, filename string, reader io.Reader) ([]Row, error) {
	var records [][]string
	var err error

	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		records, err = readCSV(reader)
	} else {
		records, err = readExcel(reader)
	}
	if err != nil {
		return nil, err
	}

	return buildRows(ctx, records)
}

func readExcel(reader io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %q: %w", sheetName, err)
	}
	return rows, nil
}

func readCSV(reader io.Reader) ([][]string, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1 // short rows are padded during mapping
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return records, nil
}

// buildRows maps each data record onto the header row. Fully blank trailing
// lines (a spreadsheet-editor artifact) are skipped; a file with a header but
// nothing else is a terminal ErrEmptyFile.
func buildRows(ctx context.Context, records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headers := records[0]
	rows := make([]Row, 0, len(records)-1)

	for i, record := range records[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isBlankRecord(record) {
			continue
		}

		fields := make(map[string]string, len(headers))
		for col, header := range headers {
			header = strings.TrimSpace(header)
			if header == "" {
				continue
			}
			if col < len(record) {
				fields[header] = record[col]
			} else {
				fields[header] = ""
			}
		}

		// Index follows the sheet position so skipped blank lines do not
		// shift reported row numbers.
		rows = append(rows, Row{Index: i, Fields: fields})
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
