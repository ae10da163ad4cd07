// Package resolver implements the executor Runtime on top of the storage
// adapter and the per-request batching loaders. A Runtime instance is
// request-scoped: construct one per incoming operation so no pending loader
// state leaks between requests.
package resolver

import (
	"context"
	"fmt"

	"github.com/fernql/fernql/internal/executor"
	"github.com/fernql/fernql/internal/loader"
	"github.com/fernql/fernql/internal/model"
	"github.com/fernql/fernql/internal/store"
)

// Runtime resolves schema fields against the store. Keyed relation fields
// are routed through the batching loaders; filter scans, edge traversals and
// mutations go to the store directly.
type Runtime struct {
	store   store.Store
	loaders *loader.Loaders
}

// New creates a request-scoped Runtime with a fresh loader set.
func New(st store.Store) *Runtime {
	return &Runtime{store: st, loaders: loader.New(st)}
}

// ResolveSource projects a scalar property off the parent record. It never
// touches the store.
func (r *Runtime) ResolveSource(ctx context.Context, objectType, field string, source any) (any, error) {
	switch src := source.(type) {
	case *model.User:
		switch field {
		case "id":
			return src.ID, nil
		case "name":
			return src.Name, nil
		case "balance":
			return src.Balance, nil
		}
	case *model.Post:
		switch field {
		case "id":
			return src.ID, nil
		case "title":
			return src.Title, nil
		case "content":
			return src.Content, nil
		case "authorId":
			return src.AuthorID, nil
		}
	case *model.Profile:
		switch field {
		case "id":
			return src.ID, nil
		case "isMale":
			return src.IsMale, nil
		case "yearOfBirth":
			return src.YearOfBirth, nil
		case "userId":
			return src.UserID, nil
		case "memberTypeId":
			return src.MemberTypeID, nil
		}
	case *model.MemberType:
		switch field {
		case "id":
			return src.ID, nil
		case "discount":
			return src.Discount, nil
		case "postsLimitPerMonth":
			return src.PostsLimitPerMonth, nil
		}
	}
	return nil, fmt.Errorf("no source projection for %s.%s", objectType, field)
}

// BatchResolve closes one batch window. Phase one walks the tasks in order:
// keyed lookups enqueue into the loaders and leave a thunk behind, while
// scans, edge traversals and mutations resolve immediately. The loaders then
// flush (at most one multi-key fetch per entity type) and phase two collects
// the thunk results, index-aligned with the input.
func (r *Runtime) BatchResolve(ctx context.Context, tasks []executor.ResolveTask) []executor.ResolveResult {
	finish := make([]func() executor.ResolveResult, len(tasks))
	for i, t := range tasks {
		finish[i] = r.begin(ctx, t)
	}

	r.loaders.Flush(ctx)

	results := make([]executor.ResolveResult, len(tasks))
	for i, fn := range finish {
		results[i] = fn()
	}
	return results
}

// begin starts resolving one task and returns the function producing its
// final result after the loader flush.
func (r *Runtime) begin(ctx context.Context, t executor.ResolveTask) func() executor.ResolveResult {
	key := t.ObjectType + "." + t.Field
	switch key {
	case "Query.user":
		return deferThunk(r.loaders.Users.Load(stringArg(t.Args, "id")))
	case "Query.post":
		return deferThunk(r.loaders.Posts.Load(stringArg(t.Args, "id")))
	case "Query.profile":
		return deferThunk(r.loaders.Profiles.Load(stringArg(t.Args, "id")))
	case "Query.memberType":
		id, err := model.ParseMemberTypeID(stringArg(t.Args, "id"))
		if err != nil {
			return immediate(nil, err)
		}
		return deferThunk(r.loaders.MemberTypes.Load(id))
	case "Profile.memberType":
		profile, ok := t.Source.(*model.Profile)
		if !ok {
			return immediate(nil, fmt.Errorf("memberType requires a profile parent, got %T", t.Source))
		}
		return deferThunk(r.loaders.MemberTypes.Load(profile.MemberTypeID))
	}

	if t.ObjectType == "Mutation" {
		value, err := r.mutate(ctx, t)
		return immediate(value, err)
	}

	value, err := r.query(ctx, t)
	return immediate(value, err)
}

func immediate(value any, err error) func() executor.ResolveResult {
	return func() executor.ResolveResult { return executor.ResolveResult{Value: value, Error: err} }
}

func deferThunk[T any](thunk loader.Thunk[T]) func() executor.ResolveResult {
	return func() executor.ResolveResult {
		value, err := thunk()
		return executor.ResolveResult{Value: value, Error: err}
	}
}

// SerializeLeaf coerces scalar and enum values into JSON-safe form. An enum
// value outside the declared set is a resolution error, never a default.
func (r *Runtime) SerializeLeaf(ctx context.Context, typeName string, value any) (any, error) {
	switch typeName {
	case "UUID", "ID", "String":
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("cannot serialize %T as %s", value, typeName)
	case "Int":
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			return int(v), nil
		}
		return nil, fmt.Errorf("cannot serialize %T as Int", value)
	case "Float":
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		}
		return nil, fmt.Errorf("cannot serialize %T as Float", value)
	case "Boolean":
		if b, ok := value.(bool); ok {
			return b, nil
		}
		return nil, fmt.Errorf("cannot serialize %T as Boolean", value)
	case "MemberTypeId":
		var id model.MemberTypeID
		switch v := value.(type) {
		case model.MemberTypeID:
			id = v
		case string:
			id = model.MemberTypeID(v)
		default:
			return nil, fmt.Errorf("cannot serialize %T as MemberTypeId", value)
		}
		if !id.Valid() {
			return nil, fmt.Errorf("unknown member type %q", id)
		}
		return string(id), nil
	default:
		return nil, fmt.Errorf("unknown leaf type %s", typeName)
	}
}

func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}
