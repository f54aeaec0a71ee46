package helpers

import (
	"strconv"
	"strings"
)

// ParseRupiah converts spreadsheet money cells such as "Rp. 12.500.000" or
// "Rp 1.250.000,50" into a number. Empty cells and "-" yield 0.
func ParseRupiah(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return 0, nil
	}
	s = strings.TrimPrefix(s, "Rp.")
	s = strings.TrimPrefix(s, "Rp")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// NullIfDash maps the spreadsheet "-" placeholder and blanks to nil.
func NullIfDash(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return nil
	}
	return &s
}

// EmptyIfDash maps the spreadsheet "-" placeholder to an empty string.
func EmptyIfDash(raw string) string {
	if p := NullIfDash(raw); p != nil {
		return *p
	}
	return ""
}

// DefaultIfDash returns fallback when the cell is blank or "-".
func DefaultIfDash(raw, fallback string) string {
	if p := NullIfDash(raw); p != nil {
		return *p
	}
	return fallback
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns nil for blank strings.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
