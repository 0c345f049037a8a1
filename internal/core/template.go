package core

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Template builds a downloadable example file for an entity: the canonical
// header row plus one fully-populated example row. Live data from the
// system of record is preferred; any failure falls back to the schema's
// static example. Template never hard-fails except for an unknown entity.
func (s *Service) Template(ctx context.Context, entityKey string) (string, error) {
	schema, ok := Get(entityKey)
	if !ok {
		return "", fmt.Errorf("unknown entity: %s", entityKey)
	}

	header := strings.Join(schema.FieldNames(), string(Delimiter))
	row := staticExampleRow(schema)

	if s.remote != nil && schema.SamplePath != "" {
		samples, err := s.remote.Sample(ctx, schema.SamplePath, schema.SampleKey, s.sampleLimit)
		if err != nil || len(samples) == 0 {
			slog.Debug("template falling back to static example", "entity", entityKey, "error", err)
		} else {
			row = exampleRowFromSample(samples[0], schema)
		}
	}

	return header + "\n" + row, nil
}

// staticExampleRow renders the schema's declared example values.
func staticExampleRow(schema Schema) string {
	cells := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		cells[i] = quoteCell(f.Example)
	}
	return strings.Join(cells, string(Delimiter))
}

// exampleRowFromSample fills each column from a live record, falling back
// per field to the static example so the row is always fully populated.
func exampleRowFromSample(sample map[string]any, schema Schema) string {
	cells := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		v, ok := sample[f.Wire()]
		if !ok {
			v, ok = sample[f.Name]
		}
		cell := formatValue(v)
		if !ok || cell == "" {
			cell = f.Example
		}
		cells[i] = quoteCell(cell)
	}
	return strings.Join(cells, string(Delimiter))
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// quoteCell wraps values containing the delimiter so the template survives
// a round trip through Tokenize.
func quoteCell(s string) string {
	if strings.ContainsRune(s, Delimiter) || strings.Contains(s, "\"") {
		return `"` + strings.ReplaceAll(s, `"`, "") + `"`
	}
	return s
}
