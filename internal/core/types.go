// Package core implements the bulk record validation and reconciliation
// pipeline. This package has no HTTP dependencies and can be driven by any
// frontend.
package core

import "time"

// ValueType is the expected data type for a schema field.
type ValueType int

const (
	ValueString ValueType = iota
	ValueNumber
)

// FieldSpec defines one column of an entity schema.
type FieldSpec struct {
	Name       string // Canonical field name
	WireName   string // Key used in remote payloads (defaults to Name)
	Type       ValueType
	Required   bool
	UniqueKey  bool     // Participates in intra-file duplicate detection
	Variations []string // Alternate header spellings accepted for this field
	Default    string   // Raw value used when an optional field has no column
	Example    string   // Value for the static template row
}

// Wire returns the key used for this field in remote payloads.
func (f FieldSpec) Wire() string {
	if f.WireName != "" {
		return f.WireName
	}
	return f.Name
}

// RowRule is a schema-specific business rule evaluated per data row after
// the generic required/type checks. It returns zero or more error messages.
type RowRule func(cells []string, headers HeaderMap, rowNum int) []string

// Schema is the canonical field set and rules for one entity type.
// Schemas are built once at startup and never mutated.
type Schema struct {
	Key   string // Registry key: "products", "sellers", ...
	Label string // Display name

	Fields []FieldSpec
	Rules  []RowRule

	// ExtraRunes are preserved verbatim during header normalization
	// (e.g. "ñ" for the Spanish-named schemas).
	ExtraRunes string

	// Remote endpoints, relative to the configured base URL.
	ValidatePath string
	InsertPath   string
	SamplePath   string

	// SampleKey is the JSON key holding records in the sample response.
	// ValidatedKey is the JSON key holding the remote's validated record
	// set ("validated_sellers" etc); "data" is always tried as a fallback.
	SampleKey    string
	ValidatedKey string
}

// FieldNames returns the canonical names in schema order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Field returns the spec for a canonical name.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// HeaderMap maps canonical field names to column positions for one file.
// Built once per file by ResolveHeaders and discarded afterwards.
type HeaderMap map[string]int

// Record is a validated, typed record conforming to a schema. Values are
// string for ValueString fields and float64 for ValueNumber fields.
type Record map[string]any

// State identifies the terminal state of a pipeline run.
type State string

const (
	StateLocallyInvalid State = "locally_invalid"
	StateRemoteRejected State = "remote_rejected"
	StateLocalOnly      State = "local_only"
	StateReconciled     State = "reconciled"
)

// Result is the outcome of validating one file. Records is populated if and
// only if Valid is true.
type Result struct {
	Valid    bool     `json:"isValid"`
	State    State    `json:"state"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Records  []Record `json:"data,omitempty"`
}

// DuplicateGroup records one uniqueness-key collision. Rows holds 1-based
// source data-row numbers in file order; the first entry is the row the
// value was first seen on, the rest are the colliding occurrences.
type DuplicateGroup struct {
	Value string
	Rows  []int
}

// InsertOutcome is the relayed result of a remote insertion. Body carries
// the remote response; non-JSON bodies are wrapped as {"raw": ..., "status": ...}.
type InsertOutcome struct {
	OK     bool           `json:"success"`
	Status int            `json:"status"`
	Body   map[string]any `json:"body,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// RunEntry describes one recorded pipeline run for the history store.
type RunEntry struct {
	ID           string    `json:"id"`
	Entity       string    `json:"entity"`
	FileName     string    `json:"fileName,omitempty"`
	Action       string    `json:"action"` // "validate" or "insert"
	State        string    `json:"state"`
	Valid        bool      `json:"isValid"`
	RecordCount  int       `json:"recordCount"`
	ErrorCount   int       `json:"errorCount"`
	WarningCount int       `json:"warningCount"`
	CreatedAt    time.Time `json:"createdAt"`
}
