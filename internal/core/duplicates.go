package core

import "strings"

// FindDuplicates evaluates every uniqueness key of the schema independently
// over the mapped records, case-insensitively and whitespace-trimmed.
//
// rows holds the 1-based source data-row number for each record. The record
// list may be sparse relative to the file (rows that failed validation are
// absent), so group messages must use source positions, not slice indexes.
// A nil rows falls back to slice positions.
//
// A group is created only when a second occurrence of a value appears; the
// group's row list then contains the first-seen row followed by every later
// colliding row, so error messages can name all involved rows. Records with
// an empty key value never collide.
func FindDuplicates(records []Record, rows []int, schema Schema) map[string][]DuplicateGroup {
	result := make(map[string][]DuplicateGroup)

	for _, field := range schema.Fields {
		if !field.UniqueKey {
			continue
		}

		firstSeen := make(map[string]int)  // normalized value -> first row
		groupIdx := make(map[string]int)   // normalized value -> index in groups
		var groups []DuplicateGroup

		for i, rec := range records {
			rowNum := i + 1
			if rows != nil {
				rowNum = rows[i]
			}

			v, _ := rec[field.Name].(string)
			key := strings.ToLower(strings.TrimSpace(v))
			if key == "" {
				continue
			}

			first, ok := firstSeen[key]
			if !ok {
				firstSeen[key] = rowNum
				continue
			}

			gi, ok := groupIdx[key]
			if !ok {
				groups = append(groups, DuplicateGroup{Value: key, Rows: []int{first}})
				gi = len(groups) - 1
				groupIdx[key] = gi
			}
			groups[gi].Rows = append(groups[gi].Rows, rowNum)
		}

		if len(groups) > 0 {
			result[field.Name] = groups
		}
	}

	return result
}
