// Package spreadsheet reads uploaded xlsx, xls and csv files into plain string rows.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for extensions other than xlsx, xls and csv.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Supported extensions, lowercase without the dot.
var Supported = []string{"xlsx", "xls", "csv"}

// Extension returns the lowercase extension of filename without the dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// IsSupported reports whether filename has an accepted extension.
func IsSupported(filename string) bool {
	ext := Extension(filename)
	for _, s := range Supported {
		if ext == s {
			return true
		}
	}
	return false
}

// Read parses the first sheet of the file. Rows keep their sheet order, so row i of
// the result is sheet row i+1.
func Read(filename string, r io.Reader) ([][]string, error) {
	switch Extension(filename) {
	case "xlsx":
		return readXLSX(r)
	case "xls":
		return readXLS(r)
	case "csv":
		return readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readXLS(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read xls upload: %w", err)
	}
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open xls: %w", err)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			cells = append(cells, row.Col(j))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

// Cell returns the trimmed cell at index i, or "" when the row is shorter.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
