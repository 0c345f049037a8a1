package core

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTemplate_StaticFallback(t *testing.T) {
	fake := &fakeRemote{
		sampleFn: func(string, string, int) ([]map[string]any, error) {
			return nil, errors.New("service down")
		},
	}
	svc := newTestService(fake)

	got, err := svc.Template(context.Background(), "catalog")
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("template has %d lines, want 2:\n%s", len(lines), got)
	}
	if lines[0] != "sku,name,value,category_name,quantity,warehouse_id" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "EX-1,Sample,100,General,10,1" {
		t.Errorf("example row = %q", lines[1])
	}
}

func TestTemplate_LiveSamplePreferred(t *testing.T) {
	fake := &fakeRemote{
		sampleFn: func(path, key string, limit int) ([]map[string]any, error) {
			if path != "catalog/available" || key != "items" {
				t.Errorf("sample called with path %q key %q", path, key)
			}
			return []map[string]any{
				{"sku": "LIVE-1", "name": "Live Product", "value": 250.0,
					"category_name": "Live", "quantity": 3.0, "warehouse_id": 2.0},
			}, nil
		},
	}
	svc := newTestService(fake)

	got, err := svc.Template(context.Background(), "catalog")
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}

	lines := strings.Split(got, "\n")
	if lines[1] != "LIVE-1,Live Product,250,Live,3,2" {
		t.Errorf("example row = %q, want live sample values", lines[1])
	}
}

func TestTemplate_SampleGapsFallBackPerField(t *testing.T) {
	fake := &fakeRemote{
		sampleFn: func(string, string, int) ([]map[string]any, error) {
			return []map[string]any{{"sku": "LIVE-1"}}, nil
		},
	}
	svc := newTestService(fake)

	got, err := svc.Template(context.Background(), "catalog")
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}

	lines := strings.Split(got, "\n")
	if lines[1] != "LIVE-1,Sample,100,General,10,1" {
		t.Errorf("example row = %q, want per-field fallback", lines[1])
	}
}

func TestTemplate_QuotesCellsWithDelimiter(t *testing.T) {
	fake := &fakeRemote{
		sampleFn: func(string, string, int) ([]map[string]any, error) {
			return []map[string]any{{"sku": "A", "name": "Big, Heavy"}}, nil
		},
	}
	svc := newTestService(fake)

	got, err := svc.Template(context.Background(), "catalog")
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}

	lines := strings.Split(got, "\n")
	if !strings.Contains(lines[1], `"Big, Heavy"`) {
		t.Errorf("example row = %q, want quoted cell", lines[1])
	}

	// The generated template must survive a round trip through the parser.
	rows, err := Tokenize(got)
	if err != nil {
		t.Fatalf("Tokenize(template) error = %v", err)
	}
	if len(rows[1]) != 6 {
		t.Errorf("round-tripped row has %d cells, want 6", len(rows[1]))
	}
}

func TestTemplate_UnknownEntity(t *testing.T) {
	svc := newTestService(&fakeRemote{})

	if _, err := svc.Template(context.Background(), "unknown"); err == nil {
		t.Fatal("Template() succeeded for unknown entity")
	}
}
