package core

import (
	"reflect"
	"testing"
)

func TestMapRow(t *testing.T) {
	schema := Schema{
		Fields: []FieldSpec{
			{Name: "sku", Required: true},
			{Name: "value", Type: ValueNumber, Required: true},
			{Name: "origin", Default: "local"},
		},
	}

	t.Run("typed conversion", func(t *testing.T) {
		headers := HeaderMap{"sku": 0, "value": 1, "origin": 2}
		rec, err := MapRow([]string{"A", "99.5", "import"}, headers, schema)
		if err != nil {
			t.Fatalf("MapRow() error = %v", err)
		}

		want := Record{"sku": "A", "value": 99.5, "origin": "import"}
		if !reflect.DeepEqual(rec, want) {
			t.Errorf("MapRow() = %v, want %v", rec, want)
		}
	})

	t.Run("default fills unmatched optional field", func(t *testing.T) {
		headers := HeaderMap{"sku": 0, "value": 1}
		rec, err := MapRow([]string{"A", "10"}, headers, schema)
		if err != nil {
			t.Fatalf("MapRow() error = %v", err)
		}
		if rec["origin"] != "local" {
			t.Errorf("origin = %v, want default %q", rec["origin"], "local")
		}
	})

	t.Run("required field missing from header map", func(t *testing.T) {
		headers := HeaderMap{"value": 0}
		if _, err := MapRow([]string{"10"}, headers, schema); err == nil {
			t.Fatal("MapRow() succeeded without required field in header map")
		}
	})
}

func TestWirePayload(t *testing.T) {
	schema := Schema{
		Fields: []FieldSpec{
			{Name: "identificacion", WireName: "identification"},
			{Name: "telefono", WireName: "phone"},
			{Name: "nombre"},
		},
	}

	records := []Record{
		{"identificacion": "123", "telefono": "555", "nombre": "Ana"},
	}

	got := WirePayload(records, schema)
	want := []map[string]any{
		{"identification": "123", "phone": "555", "nombre": "Ana"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WirePayload() = %v, want %v", got, want)
	}
}
