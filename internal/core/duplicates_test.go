package core

import (
	"reflect"
	"testing"
)

func duplicatesTestSchema() Schema {
	return Schema{
		Fields: []FieldSpec{
			{Name: "sku", UniqueKey: true},
			{Name: "name", UniqueKey: true},
			{Name: "note"},
		},
	}
}

func TestFindDuplicates(t *testing.T) {
	schema := duplicatesTestSchema()

	tests := []struct {
		name    string
		records []Record
		want    map[string][]DuplicateGroup
	}{
		{
			name: "no duplicates",
			records: []Record{
				{"sku": "A", "name": "one"},
				{"sku": "B", "name": "two"},
			},
			want: map[string][]DuplicateGroup{},
		},
		{
			name: "group names first and later rows",
			records: []Record{
				{"sku": "A", "name": "one"},
				{"sku": "B", "name": "two"},
				{"sku": "A", "name": "three"},
			},
			want: map[string][]DuplicateGroup{
				"sku": {{Value: "a", Rows: []int{1, 3}}},
			},
		},
		{
			name: "case and whitespace insensitive",
			records: []Record{
				{"sku": "abc", "name": "one"},
				{"sku": " ABC ", "name": "two"},
			},
			want: map[string][]DuplicateGroup{
				"sku": {{Value: "abc", Rows: []int{1, 2}}},
			},
		},
		{
			name: "triple occurrence in one group",
			records: []Record{
				{"sku": "A", "name": "one"},
				{"sku": "A", "name": "two"},
				{"sku": "A", "name": "three"},
			},
			want: map[string][]DuplicateGroup{
				"sku": {{Value: "a", Rows: []int{1, 2, 3}}},
			},
		},
		{
			name: "empty values never collide",
			records: []Record{
				{"sku": "", "name": "one"},
				{"sku": "", "name": "two"},
			},
			want: map[string][]DuplicateGroup{},
		},
		{
			name: "keys evaluated independently",
			records: []Record{
				{"sku": "A", "name": "same"},
				{"sku": "B", "name": "same"},
			},
			want: map[string][]DuplicateGroup{
				"name": {{Value: "same", Rows: []int{1, 2}}},
			},
		},
		{
			name: "non-unique field ignored",
			records: []Record{
				{"sku": "A", "name": "one", "note": "x"},
				{"sku": "B", "name": "two", "note": "x"},
			},
			want: map[string][]DuplicateGroup{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindDuplicates(tt.records, nil, schema)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindDuplicates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindDuplicates_SourceRowNumbers(t *testing.T) {
	schema := duplicatesTestSchema()

	// The record list is sparse: source row 2 failed validation and was
	// never mapped, so the collision is between source rows 1 and 3.
	records := []Record{
		{"sku": "A", "name": "one"},
		{"sku": "A", "name": "three"},
	}
	rows := []int{1, 3}

	got := FindDuplicates(records, rows, schema)
	want := map[string][]DuplicateGroup{
		"sku": {{Value: "a", Rows: []int{1, 3}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindDuplicates() = %v, want %v", got, want)
	}
}
