package domain

import "sort"

// FieldSchema declares, for one feature, which request body fields may be
// supplied and which response fields may be disclosed. Schemas are keyed by
// feature, not by resource type: the same record projects differently
// depending on which feature authorized the operation.
type FieldSchema struct {
	// Input lists the field names a request body may carry.
	Input []string
	// Output lists the field names a response body may disclose.
	Output []string
}

type fieldSets struct {
	input  map[string]struct{}
	output map[string]struct{}
}

// SchemaRegistry holds the projection schemas for the process. Like the
// catalog it is populated once at startup and read-only afterwards.
//
// There is no schema inheritance: a scoped feature never falls back to an
// unscoped parent's schema. Every feature that is projected must have its
// own explicit entry; projecting an unregistered feature is a defect and
// panics. The DI container calls EnsureRegistered at boot for every feature
// the handlers project, so the defect surfaces before the first request.
type SchemaRegistry struct {
	catalog *Catalog
	schemas map[Feature]fieldSets
}

// NewSchemaRegistry creates an empty registry validating against the catalog.
func NewSchemaRegistry(catalog *Catalog) *SchemaRegistry {
	return &SchemaRegistry{
		catalog: catalog,
		schemas: make(map[Feature]fieldSets),
	}
}

// Register adds the schema for a feature. Referencing a feature outside the
// catalog or registering the same feature twice is rejected.
func (r *SchemaRegistry) Register(f Feature, schema FieldSchema) error {
	if !r.catalog.Contains(f) {
		return ErrUnknownFeature(string(f))
	}
	if _, exists := r.schemas[f]; exists {
		return ErrUnknownFeature(string(f) + " (already registered)")
	}

	sets := fieldSets{
		input:  make(map[string]struct{}, len(schema.Input)),
		output: make(map[string]struct{}, len(schema.Output)),
	}
	for _, name := range schema.Input {
		sets.input[name] = struct{}{}
	}
	for _, name := range schema.Output {
		sets.output[name] = struct{}{}
	}

	r.schemas[f] = sets
	return nil
}

// MustRegister is Register that panics on error, for init-time tables.
func (r *SchemaRegistry) MustRegister(f Feature, schema FieldSchema) {
	if err := r.Register(f, schema); err != nil {
		panic(defectf("register schema for %q: %v", string(f), err))
	}
}

// EnsureRegistered fails if any of the given features lacks a schema. The
// DI container runs this at startup for every feature handlers project.
func (r *SchemaRegistry) EnsureRegistered(features ...Feature) error {
	for _, f := range features {
		if _, ok := r.schemas[f]; !ok {
			return ErrUnknownFeature(string(f) + " (no projection schema)")
		}
	}
	return nil
}

// FilterInput returns a new object holding only the keys of raw that the
// feature's input schema allows. Disallowed keys are dropped silently:
// stripping is a security measure, not user feedback. An empty result is
// valid; required-field validation happens downstream.
func (r *SchemaRegistry) FilterInput(f Feature, raw map[string]any) map[string]any {
	return project(r.mustSets(f).input, raw)
}

// FilterOutput returns a new object holding only the keys of obj that the
// feature's output schema allows. It never adds fields, never transforms
// values, and is idempotent: re-filtering its own result is a no-op.
func (r *SchemaRegistry) FilterOutput(f Feature, obj map[string]any) map[string]any {
	return project(r.mustSets(f).output, obj)
}

// FilterOutputs applies FilterOutput to each element of a list.
func (r *SchemaRegistry) FilterOutputs(f Feature, objs []map[string]any) []map[string]any {
	allowed := r.mustSets(f).output
	out := make([]map[string]any, 0, len(objs))
	for _, obj := range objs {
		out = append(out, project(allowed, obj))
	}
	return out
}

// Schema returns the registered field lists for a feature, sorted, for
// introspection (admin tooling, tests).
func (r *SchemaRegistry) Schema(f Feature) (FieldSchema, bool) {
	sets, ok := r.schemas[f]
	if !ok {
		return FieldSchema{}, false
	}
	return FieldSchema{
		Input:  sortedKeys(sets.input),
		Output: sortedKeys(sets.output),
	}, true
}

// mustSets returns the field sets for a feature, panicking when no schema
// is registered. A normal deny is never an error; only referencing a
// feature that was never given a schema reaches this panic, and
// EnsureRegistered turns that into a startup failure.
func (r *SchemaRegistry) mustSets(f Feature) fieldSets {
	sets, ok := r.schemas[f]
	if !ok {
		panic(defectf("no projection schema registered for feature %q", string(f)))
	}
	return sets
}

func project(allowed map[string]struct{}, src map[string]any) map[string]any {
	out := make(map[string]any, len(allowed))
	for name := range allowed {
		if value, ok := src[name]; ok {
			out[name] = value
		}
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
