package core

import (
	"fmt"
	"strconv"
)

// MapRow converts a row that already passed ValidateRow into a canonical
// Record. Optional fields without a matched column take their declared
// default. MapRow never fails on malformed data; that responsibility lies
// upstream. It returns an error only when the header map is missing a
// required field, which is a programming-contract violation rather than a
// recoverable input problem.
func MapRow(cells []string, headers HeaderMap, schema Schema) (Record, error) {
	rec := make(Record, len(schema.Fields))

	for _, field := range schema.Fields {
		raw := CellValue(cells, headers, field.Name)
		if raw == "" {
			if _, ok := headers[field.Name]; !ok && field.Required {
				return nil, fmt.Errorf("header map missing required field %q", field.Name)
			}
			raw = field.Default
		}

		switch field.Type {
		case ValueNumber:
			n, _ := strconv.ParseFloat(raw, 64)
			rec[field.Name] = n
		default:
			rec[field.Name] = raw
		}
	}

	return rec, nil
}

// WirePayload converts canonical records to the shape the remote service
// expects, applying per-field wire-name overrides.
func WirePayload(records []Record, schema Schema) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, rec := range records {
		m := make(map[string]any, len(schema.Fields))
		for _, field := range schema.Fields {
			if v, ok := rec[field.Name]; ok {
				m[field.Wire()] = v
			}
		}
		out[i] = m
	}
	return out
}
