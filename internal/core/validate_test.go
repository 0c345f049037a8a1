package core

import (
	"strings"
	"testing"
)

func validateTestSchema() Schema {
	return Schema{
		Key: "widgets",
		Fields: []FieldSpec{
			{Name: "sku", Required: true},
			{Name: "name", Required: true},
			{Name: "value", Type: ValueNumber, Required: true},
			{Name: "note"},
		},
	}
}

func TestValidateRow(t *testing.T) {
	schema := validateTestSchema()
	headers := HeaderMap{"sku": 0, "name": 1, "value": 2, "note": 3}

	tests := []struct {
		name     string
		cells    []string
		wantErrs []string
	}{
		{
			name:     "valid row",
			cells:    []string{"A", "Widget", "100", ""},
			wantErrs: nil,
		},
		{
			name:     "decimal number accepted",
			cells:    []string{"A", "Widget", "99.95", ""},
			wantErrs: nil,
		},
		{
			name:     "zero accepted",
			cells:    []string{"A", "Widget", "0", ""},
			wantErrs: nil,
		},
		{
			name:     "empty row",
			cells:    []string{"", "", "", ""},
			wantErrs: []string{"row 3: empty row"},
		},
		{
			name:     "missing required value",
			cells:    []string{"A", "", "100", ""},
			wantErrs: []string{"row 3: field 'name' is required"},
		},
		{
			name:     "short row missing trailing required",
			cells:    []string{"A", "Widget"},
			wantErrs: []string{"row 3: field 'value' is required"},
		},
		{
			name:     "negative number",
			cells:    []string{"A", "Widget", "-5", ""},
			wantErrs: []string{"row 3: field 'value' must be a non-negative number"},
		},
		{
			name:     "non-numeric value",
			cells:    []string{"A", "Widget", "abc", ""},
			wantErrs: []string{"row 3: field 'value' must be a non-negative number"},
		},
		{
			name:  "all problems reported together",
			cells: []string{"", "Widget", "-1", ""},
			wantErrs: []string{
				"row 3: field 'sku' is required",
				"row 3: field 'value' must be a non-negative number",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateRow(tt.cells, headers, schema, 3)
			if len(got) != len(tt.wantErrs) {
				t.Fatalf("ValidateRow() = %v, want %v", got, tt.wantErrs)
			}
			for i, want := range tt.wantErrs {
				if got[i] != want {
					t.Errorf("error[%d] = %q, want %q", i, got[i], want)
				}
			}
		})
	}
}

func TestValidateRow_RowRules(t *testing.T) {
	schema := validateTestSchema()
	schema.Rules = []RowRule{
		func(cells []string, headers HeaderMap, rowNum int) []string {
			if strings.HasPrefix(CellValue(cells, headers, "sku"), "X") {
				return []string{"row 1: sku must not start with X"}
			}
			return nil
		},
	}
	headers := HeaderMap{"sku": 0, "name": 1, "value": 2}

	errs := ValidateRow([]string{"X1", "Widget", "10"}, headers, schema, 1)
	if len(errs) != 1 || errs[0] != "row 1: sku must not start with X" {
		t.Errorf("ValidateRow() = %v, want rule error", errs)
	}
}

func TestCellValue(t *testing.T) {
	headers := HeaderMap{"sku": 0, "name": 1}
	cells := []string{" A ", "Widget"}

	if got := CellValue(cells, headers, "sku"); got != "A" {
		t.Errorf("CellValue(sku) = %q, want %q", got, "A")
	}
	if got := CellValue(cells, headers, "missing"); got != "" {
		t.Errorf("CellValue(missing) = %q, want empty", got)
	}
	if got := CellValue([]string{"A"}, headers, "name"); got != "" {
		t.Errorf("CellValue(short row) = %q, want empty", got)
	}
}
