package core

// pipeline.go holds the per-file state machine:
//
//	Parsing -> LocalValidating -> RemoteValidating -> Reconciled
//
// with two failure exits: LocallyInvalid (terminal) and
// RemoteUnavailable -> LocalOnly (degraded terminal). The contract is
// file-granular: either every row that passed local checks flows on, or
// none do.

import (
	"context"
	"fmt"
	"strings"

	"github.com/andesmarket/bulkimport/internal/remote"
)

// localUnverifiedWarning annotates results that never reached the system of
// record.
const localUnverifiedWarning = "could not reach the validation service; records were validated only locally"

// run executes the pipeline for one file.
func (s *Service) run(ctx context.Context, schema Schema, text string) Result {
	// Parsing
	rows, err := Tokenize(text)
	if err != nil {
		return Result{
			Valid:    false,
			State:    StateLocallyInvalid,
			Errors:   []string{err.Error()},
			Warnings: []string{},
		}
	}

	// Header resolution is file-fatal on error: without a usable column
	// mapping, per-row reporting would be noise.
	res := ResolveHeaders(rows[0], schema)
	warnings := append([]string{}, res.Warnings...)
	if len(res.Errors) > 0 {
		return Result{
			Valid:    false,
			State:    StateLocallyInvalid,
			Errors:   res.Errors,
			Warnings: warnings,
		}
	}

	// Local validation: accumulate every row error before reporting.
	// rowNums carries each mapped record's source data-row number; records
	// is sparse relative to the file once rows fail validation.
	var (
		errs    []string
		records []Record
		rowNums []int
	)
	for i, cells := range rows[1:] {
		rowNum := i + 1

		rowErrs := ValidateRow(cells, res.Map, schema, rowNum)
		if len(rowErrs) > 0 {
			errs = append(errs, rowErrs...)
			continue
		}

		rec, mapErr := MapRow(cells, res.Map, schema)
		if mapErr != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", rowNum, mapErr))
			continue
		}
		records = append(records, rec)
		rowNums = append(rowNums, rowNum)
	}

	// Duplicates are always a file-level error: reject, don't silently
	// drop later occurrences.
	errs = append(errs, duplicateErrors(records, rowNums, schema)...)

	if len(errs) > 0 {
		return Result{
			Valid:    false,
			State:    StateLocallyInvalid,
			Errors:   errs,
			Warnings: warnings,
		}
	}

	return s.reconcile(ctx, schema, records, warnings)
}

// reconcile submits the locally-valid candidate set to the system of
// record. Remote rejection is authoritative; transport failure degrades to
// a local-only result rather than failing.
func (s *Service) reconcile(ctx context.Context, schema Schema, records []Record, warnings []string) Result {
	if s.remote == nil {
		return Result{
			Valid:    true,
			State:    StateLocalOnly,
			Errors:   []string{},
			Warnings: append(warnings, localUnverifiedWarning),
			Records:  records,
		}
	}

	outcome := s.remote.Validate(ctx, schema.ValidatePath, WirePayload(records, schema), schema.ValidatedKey)

	switch outcome.Status {
	case remote.Unreachable:
		return Result{
			Valid:    true,
			State:    StateLocalOnly,
			Errors:   []string{},
			Warnings: append(warnings, localUnverifiedWarning),
			Records:  records,
		}

	case remote.Rejected:
		return Result{
			Valid:    false,
			State:    StateRemoteRejected,
			Errors:   append([]string{}, outcome.Errors...),
			Warnings: append(warnings, outcome.Warnings...),
		}

	default: // remote.Accepted
		final := records
		if len(outcome.Records) > 0 {
			final = make([]Record, len(outcome.Records))
			for i, m := range outcome.Records {
				final[i] = Record(m)
			}
		}
		return Result{
			Valid:    true,
			State:    StateReconciled,
			Errors:   []string{},
			Warnings: append(warnings, outcome.Warnings...),
			Records:  final,
		}
	}
}

// duplicateErrors renders one message per uniqueness-key collision, naming
// every involved source row. Keys are reported in schema field order.
func duplicateErrors(records []Record, rowNums []int, schema Schema) []string {
	groups := FindDuplicates(records, rowNums, schema)
	if len(groups) == 0 {
		return nil
	}

	var msgs []string
	for _, field := range schema.Fields {
		for _, g := range groups[field.Name] {
			msgs = append(msgs, fmt.Sprintf("duplicate %s '%s' found in rows %s",
				field.Name, g.Value, joinRows(g.Rows)))
		}
	}
	return msgs
}

func joinRows(rows []int) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = fmt.Sprintf("%d", r)
	}
	return strings.Join(parts, ", ")
}
