package executor

import (
	"context"
	"sync"
)

// MockResolver resolves one field instance in tests.
type MockResolver func(ctx context.Context, source any, args map[string]any) (any, error)

// NewMockValueResolver returns a MockResolver that always yields val.
func NewMockValueResolver(val any) MockResolver {
	return func(context.Context, any, map[string]any) (any, error) { return val, nil }
}

// NewMockErrorResolver returns a MockResolver that always fails with err.
func NewMockErrorResolver(err error) MockResolver {
	return func(context.Context, any, map[string]any) (any, error) { return nil, err }
}

const (
	CallKindSync  = "sync"
	CallKindAsync = "async"
)

// Call records one resolver invocation. Async calls flushed in the same
// batch window share a BatchID; sync calls carry BatchID 0.
type Call struct {
	Kind       string
	ObjectType string
	Field      string
	Source     any
	Args       map[string]any
	BatchID    int
}

// MockRuntime implements Runtime with a resolver registry keyed by
// "ObjectType.Field" and an ordered call log, so tests can assert both the
// result tree and the batching behavior.
type MockRuntime struct {
	mu        sync.Mutex
	resolvers map[string]MockResolver
	calls     []Call
	batchSeq  int
}

// NewMockRuntime creates a MockRuntime with the provided resolvers.
func NewMockRuntime(resolvers map[string]MockResolver) *MockRuntime {
	m := &MockRuntime{resolvers: make(map[string]MockResolver)}
	for k, v := range resolvers {
		m.resolvers[k] = v
	}
	return m
}

// SetResolver registers or replaces the resolver for objectType.field.
func (m *MockRuntime) SetResolver(objectType, field string, r MockResolver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolvers[objectType+"."+field] = r
}

func (m *MockRuntime) ResolveSource(ctx context.Context, objectType, field string, source any) (any, error) {
	m.mu.Lock()
	r := m.resolvers[objectType+"."+field]
	m.calls = append(m.calls, Call{
		Kind:       CallKindSync,
		ObjectType: objectType,
		Field:      field,
		Source:     source,
		Args:       map[string]any{},
	})
	m.mu.Unlock()
	if r == nil {
		return nil, nil
	}
	return r(ctx, source, nil)
}

func (m *MockRuntime) BatchResolve(ctx context.Context, tasks []ResolveTask) []ResolveResult {
	if len(tasks) == 0 {
		return nil
	}
	m.mu.Lock()
	m.batchSeq++
	batchID := m.batchSeq
	m.mu.Unlock()

	results := make([]ResolveResult, len(tasks))
	for i, t := range tasks {
		m.mu.Lock()
		r := m.resolvers[t.ObjectType+"."+t.Field]
		m.calls = append(m.calls, Call{
			Kind:       CallKindAsync,
			ObjectType: t.ObjectType,
			Field:      t.Field,
			Source:     t.Source,
			Args:       t.Args,
			BatchID:    batchID,
		})
		m.mu.Unlock()
		if r == nil {
			continue
		}
		val, err := r(ctx, t.Source, t.Args)
		results[i] = ResolveResult{Value: val, Error: err}
	}
	return results
}

func (m *MockRuntime) SerializeLeaf(ctx context.Context, typeName string, value any) (any, error) {
	return value, nil
}

// Calls returns a copy of the recorded calls in invocation order.
func (m *MockRuntime) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// BatchCount reports how many batch windows have fired.
func (m *MockRuntime) BatchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batchSeq
}
