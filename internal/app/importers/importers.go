// Package importers turns spreadsheet rows into records. Parsing is pure; persistence
// and author lookups happen in the import service.
package importers

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/spreadsheet"
	"github.com/xuri/excelize/v2"
)

// HeadingRow is the 1-based sheet row holding the column headings. Data starts below it.
const HeadingRow = 5

// Policy decides how row errors are handled.
type Policy int

const (
	// FailFast aborts the import on the first invalid row.
	FailFast Policy = iota
	// CollectErrors validates every row and reports all failures together.
	CollectErrors
)

func (p Policy) String() string {
	if p == CollectErrors {
		return "collect_errors"
	}
	return "fail_fast"
}

// ParsePolicy parses "fail_fast" or "collect_errors".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fail_fast":
		return FailFast, nil
	case "collect_errors":
		return CollectErrors, nil
	default:
		return FailFast, fmt.Errorf("unknown import policy %q", s)
	}
}

// Row is one data row with its 1-based sheet row number.
type Row struct {
	Number int
	Cells  []string
}

// Cell returns the trimmed cell at index i.
func (r Row) Cell(i int) string {
	return spreadsheet.Cell(r.Cells, i)
}

// DataRows returns the rows below the heading row, skipping repeated heading rows
// (first cell "NO") and rows without a second cell.
func DataRows(rows [][]string) []Row {
	var out []Row
	for i := HeadingRow; i < len(rows); i++ {
		cells := rows[i]
		if strings.EqualFold(spreadsheet.Cell(cells, 0), "NO") || spreadsheet.Cell(cells, 1) == "" {
			continue
		}
		out = append(out, Row{Number: i + 1, Cells: cells})
	}
	return out
}

// Header maps normalized heading names to column indexes.
type Header map[string]int

// ParseHeader reads the heading row. Headings are lowercased and spaces become
// underscores, so "Nomor Permohonan" is addressed as "nomor_permohonan".
func ParseHeader(rows [][]string) Header {
	h := Header{}
	if len(rows) < HeadingRow {
		return h
	}
	for i, name := range rows[HeadingRow-1] {
		key := NormalizeHeading(name)
		if _, dup := h[key]; key != "" && !dup {
			h[key] = i
		}
	}
	return h
}

// NormalizeHeading lowercases a heading and joins its words with underscores.
func NormalizeHeading(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '.'
	})
	return strings.Join(fields, "_")
}

// Missing returns the required headings not present in h.
func (h Header) Missing(required ...string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := h[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Get returns the cell under heading name.
func (h Header) Get(r Row, name string) string {
	i, ok := h[name]
	if !ok {
		return ""
	}
	return r.Cell(i)
}

// ColumnValues names the cells of a positional row, used to echo a rejected row back.
// Empty names are skipped.
func ColumnValues(r Row, columns []string) map[string]string {
	values := make(map[string]string, len(columns))
	for i, name := range columns {
		if name != "" {
			values[name] = r.Cell(i)
		}
	}
	return values
}

// Values returns every headed cell of r, used to echo a rejected row back.
func (h Header) Values(r Row) map[string]string {
	values := make(map[string]string, len(h))
	for name, i := range h {
		values[name] = r.Cell(i)
	}
	return values
}

// Failures accumulates rejected rows for CollectErrors imports.
type Failures []apperrors.ImportFailure

// Add records a failed attribute of a row.
func (f *Failures) Add(row int, attribute string, values map[string]string, messages ...string) {
	*f = append(*f, apperrors.ImportFailure{Row: row, Attribute: attribute, Errors: messages, Values: values})
}

// Err returns an ImportError holding the failures, or nil when there are none.
func (f Failures) Err() error {
	if len(f) == 0 {
		return nil
	}
	return &apperrors.ImportError{Failures: f}
}

// Collector applies a Policy to row errors.
type Collector struct {
	Policy   Policy
	Failures Failures
}

// Reject handles a rejected row. Under FailFast it returns err. Under CollectErrors an
// ImportError is recorded as a failure and nil is returned so the caller moves on to
// the next row. Other errors are always returned.
func (c *Collector) Reject(row int, attribute string, values map[string]string, err error) error {
	var impErr *apperrors.ImportError
	if c.Policy == FailFast || !errors.As(err, &impErr) {
		return err
	}
	if impErr.Row != 0 {
		row = impErr.Row
	}
	if impErr.Attribute != "" {
		attribute = impErr.Attribute
	}
	msg := strings.TrimPrefix(impErr.Message, fmt.Sprintf("Row %d: ", row))
	c.Failures.Add(row, attribute, values, msg)
	return nil
}

// Halt returns the first recorded failure as an error when the policy is FailFast.
func (c *Collector) Halt() error {
	if c.Policy != FailFast || len(c.Failures) == 0 {
		return nil
	}
	f := c.Failures[0]
	return &apperrors.ImportError{
		Message:   fmt.Sprintf("Row %d: %s", f.Row, strings.Join(f.Errors, " ")),
		Row:       f.Row,
		Attribute: f.Attribute,
	}
}

// Err returns the recorded failures ordered by row, or nil when there are none.
func (c *Collector) Err() error {
	sort.SliceStable(c.Failures, func(i, j int) bool { return c.Failures[i].Row < c.Failures[j].Row })
	return c.Failures.Err()
}

// rowError builds the error of a row with an invalid attribute.
func rowError(row int, attribute, format string, args ...interface{}) error {
	return &apperrors.ImportError{
		Message:   fmt.Sprintf("Row %d: %s", row, fmt.Sprintf(format, args...)),
		Row:       row,
		Attribute: attribute,
	}
}

// ParseYear accepts "2023" and numeric cells rendered as "2023.0".
func ParseYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("year is empty")
	}
	if y, err := strconv.Atoi(raw); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not a year", raw)
	}
	return int(f), nil
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006", "2/1/2006", "01-02-06", "2006/01/02"}

// ParseDate parses the date formats found in HKI sheets, including Excel serial day
// numbers. Blank and "-" cells yield nil.
func ParseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "-" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%q is not a date", raw)
}
