package executor

import "context"

// Runtime binds schema fields to the backing store. The engine drives it
// single-threaded within one request, but separate requests may run
// concurrently, each with its own Runtime instance.
//
// Contract:
//   - ResolveSource is called only for fields whose schema declaration is
//     schema.ResolveSource. It must not perform storage I/O.
//   - BatchResolve is called exactly once per execution depth with every
//     suspended field collected at that depth. It must return one result per
//     task, index-aligned with the input. Tasks are resolved in task order;
//     failures are per-element and never abort the batch.
//   - SerializeLeaf coerces scalar and enum values into JSON-safe Go values.
//     An unrecognized enum value is an error, not a default.
type Runtime interface {
	ResolveSource(ctx context.Context, objectType, field string, source any) (any, error)
	BatchResolve(ctx context.Context, tasks []ResolveTask) []ResolveResult
	SerializeLeaf(ctx context.Context, typeName string, value any) (any, error)
}

// ResolveTask is one suspended field resolution.
type ResolveTask struct {
	// ObjectType is the parent object type name; for root fields it is the
	// root operation type.
	ObjectType string
	// Field is the schema field name being resolved.
	Field string
	// Source is the parent record, nil for root fields.
	Source any
	// Args holds the coerced field arguments.
	Args map[string]any
}

// ResolveResult is the outcome of one ResolveTask.
type ResolveResult struct {
	Value any
	Error error
}
