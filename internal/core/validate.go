package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateRow checks one data row against the schema using the resolved
// header map. All problems found in the row are returned together so the
// caller can report every error in a single pass; there is no fail-fast
// within a row.
//
// rowNum is the 1-based position among data rows and appears in every
// message.
func ValidateRow(cells []string, headers HeaderMap, schema Schema, rowNum int) []string {
	if isEmptyRow(cells) {
		return []string{fmt.Sprintf("row %d: empty row", rowNum)}
	}

	var errs []string

	for _, field := range schema.Fields {
		pos, ok := headers[field.Name]
		if !ok || pos >= len(cells) {
			if field.Required {
				errs = append(errs, fmt.Sprintf("row %d: field '%s' is required", rowNum, field.Name))
			}
			continue
		}

		raw := strings.TrimSpace(cells[pos])

		if raw == "" {
			if field.Required {
				errs = append(errs, fmt.Sprintf("row %d: field '%s' is required", rowNum, field.Name))
			}
			continue
		}

		if field.Type == ValueNumber {
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil || n < 0 {
				errs = append(errs, fmt.Sprintf("row %d: field '%s' must be a non-negative number", rowNum, field.Name))
			}
		}
	}

	for _, rule := range schema.Rules {
		errs = append(errs, rule(cells, headers, rowNum)...)
	}

	return errs
}

// CellValue returns the trimmed cell for a canonical field, or "" when the
// field has no column or the row is short.
func CellValue(cells []string, headers HeaderMap, field string) string {
	pos, ok := headers[field]
	if !ok || pos >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[pos])
}
