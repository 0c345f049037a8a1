package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]Schema)
	registryMu sync.RWMutex
)

// Register adds a schema to the registry. It panics on a duplicate key or a
// schema that breaks the structural invariants (duplicate canonical names,
// variation spellings shared between fields), since both are wiring mistakes
// caught at startup.
func Register(schema Schema) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[schema.Key]; exists {
		panic(fmt.Sprintf("schema already registered: %s", schema.Key))
	}
	if err := checkSchema(schema); err != nil {
		panic(fmt.Sprintf("invalid schema %s: %v", schema.Key, err))
	}

	registry[schema.Key] = schema
}

// checkSchema enforces the per-schema invariants: canonical names are
// unique and variation sets across fields are disjoint.
func checkSchema(schema Schema) error {
	names := make(map[string]bool, len(schema.Fields))
	variations := make(map[string]string)

	for _, f := range schema.Fields {
		if f.Name == "" {
			return fmt.Errorf("field with empty canonical name")
		}
		if names[f.Name] {
			return fmt.Errorf("duplicate canonical name %q", f.Name)
		}
		names[f.Name] = true

		for _, v := range f.Variations {
			norm := NormalizeHeader(v, schema.ExtraRunes)
			if owner, taken := variations[norm]; taken && owner != f.Name {
				return fmt.Errorf("variation %q claimed by both %q and %q", v, owner, f.Name)
			}
			variations[norm] = f.Name
		}
	}

	return nil
}

// Get returns a registered schema by key.
func Get(key string) (Schema, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	schema, ok := registry[key]
	return schema, ok
}

// Keys returns all registered schema keys, sorted.
func Keys() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every registered schema in key order.
func All() []Schema {
	schemas := make([]Schema, 0)
	for _, k := range Keys() {
		if s, ok := Get(k); ok {
			schemas = append(schemas, s)
		}
	}
	return schemas
}

// SchemaCount returns the number of registered schemas.
func SchemaCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
