package core

import (
	"fmt"
	"strings"
)

// HeaderResolution is the outcome of matching a header row against a schema.
// Map is usable only when Errors is empty.
type HeaderResolution struct {
	Map      HeaderMap
	Errors   []string
	Warnings []string
}

// ResolveHeaders normalizes every header cell and maps it to a canonical
// field. For each field the canonical name is tried first, then the declared
// variations, in order; the first matching header wins and is removed from
// further consideration so one header never satisfies two fields.
//
// Missing required fields and duplicate headers are reported as aggregated
// errors rather than raised. Headers that match no field produce a warning
// only.
func ResolveHeaders(headerRow []string, schema Schema) HeaderResolution {
	res := HeaderResolution{Map: make(HeaderMap, len(schema.Fields))}

	normalized := make([]string, len(headerRow))
	for i, h := range headerRow {
		normalized[i] = NormalizeHeader(h, schema.ExtraRunes)
	}

	// Duplicate headers are file-fatal: the column mapping would be ambiguous.
	seen := make(map[string]bool, len(normalized))
	var dups []string
	flagged := make(map[string]bool)
	for _, n := range normalized {
		if n == "" {
			continue
		}
		if seen[n] && !flagged[n] {
			dups = append(dups, n)
			flagged[n] = true
		}
		seen[n] = true
	}

	used := make(map[int]bool, len(normalized))
	var missing []string

	for _, field := range schema.Fields {
		candidates := make([]string, 0, 1+len(field.Variations))
		candidates = append(candidates, NormalizeHeader(field.Name, schema.ExtraRunes))
		for _, v := range field.Variations {
			candidates = append(candidates, NormalizeHeader(v, schema.ExtraRunes))
		}

		idx := -1
	match:
		for _, cand := range candidates {
			for i, n := range normalized {
				if n == cand && !used[i] {
					idx = i
					break match
				}
			}
		}

		if idx >= 0 {
			res.Map[field.Name] = idx
			used[idx] = true
		} else if field.Required {
			missing = append(missing, field.Name)
		}
	}

	if len(missing) > 0 {
		res.Errors = append(res.Errors,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}
	if len(dups) > 0 {
		res.Errors = append(res.Errors,
			fmt.Sprintf("duplicate headers found: %s", strings.Join(dups, ", ")))
	}

	var unknown []string
	for i, n := range normalized {
		if !used[i] && n != "" {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("unrecognized columns ignored: %s", strings.Join(unknown, ", ")))
	}

	return res
}
