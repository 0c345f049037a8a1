package core

import (
	"errors"
	"strings"
)

// Delimiter is the cell separator for uploaded files and generated templates.
const Delimiter = ','

// ErrEmptyInput is returned by Tokenize when the input has no data rows
// after blank lines are dropped.
var ErrEmptyInput = errors.New("file must contain at least one data row")

// Tokenize splits raw file text into rows and cells. Rows consisting only of
// whitespace are dropped. Within a row, cells are split on the delimiter
// except inside a quoted span; quote characters are stripped from the cell
// value and every cell is trimmed.
//
// The first returned row is the header row. Tokenize fails with
// ErrEmptyInput when fewer than two non-blank rows remain.
func Tokenize(text string) ([][]string, error) {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitLine(line))
	}

	if len(rows) < 2 {
		return nil, ErrEmptyInput
	}
	return rows, nil
}

// splitLine splits one line on the delimiter, honoring double quotes as a
// toggle. Quotes themselves are not emitted.
func splitLine(line string) []string {
	var (
		cells    []string
		current  strings.Builder
		inQuotes bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == Delimiter && !inQuotes:
			cells = append(cells, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	cells = append(cells, strings.TrimSpace(current.String()))

	return cells
}

// isEmptyRow reports whether every cell is blank.
func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
