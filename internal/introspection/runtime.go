// Package introspection answers the GraphQL __schema and __type meta
// fields over the executable schema. It layers on top of the domain
// runtime: meta fields resolve against schema metadata, everything else
// is forwarded untouched.
package introspection

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/fernql/fernql/internal/executor"
	"github.com/fernql/fernql/internal/schema"
)

// Wrap returns a runtime that resolves introspection fields from sch and
// delegates all other resolution to base. Execute it against Extend(sch).
func Wrap(base executor.Runtime, sch *schema.Schema) executor.Runtime {
	return &runtime{base: base, schema: sch}
}

type runtime struct {
	base   executor.Runtime
	schema *schema.Schema
}

// enumValue adapts a plain enum value name to the __EnumValue shape.
type enumValue struct {
	name string
}

func (r *runtime) ResolveSource(ctx context.Context, objectType, field string, source any) (any, error) {
	switch src := source.(type) {
	case *schema.Schema:
		return r.resolveSchemaField(src, field), nil
	case *schema.Type:
		return r.resolveTypeField(src, field), nil
	case *schema.TypeRef:
		return r.resolveTypeRefField(src, field), nil
	case *schema.Field:
		return r.resolveFieldField(src, field), nil
	case *schema.InputValue:
		return r.resolveInputValueField(src, field), nil
	case *enumValue:
		return resolveEnumValueField(src, field), nil
	case *schema.Directive:
		return resolveDirectiveField(src, field), nil
	}
	return r.base.ResolveSource(ctx, objectType, field, source)
}

// BatchResolve answers __schema and __type tasks in place and forwards the
// rest to the base runtime in a single call, keeping its one-fetch-per-depth
// contract intact.
func (r *runtime) BatchResolve(ctx context.Context, tasks []executor.ResolveTask) []executor.ResolveResult {
	results := make([]executor.ResolveResult, len(tasks))
	forward := make([]executor.ResolveTask, 0, len(tasks))
	indexes := make([]int, 0, len(tasks))
	for i, t := range tasks {
		if t.ObjectType == r.schema.QueryType {
			switch t.Field {
			case "__schema":
				results[i] = executor.ResolveResult{Value: r.schema}
				continue
			case "__type":
				results[i] = executor.ResolveResult{Value: r.lookupType(t.Args)}
				continue
			}
		}
		forward = append(forward, t)
		indexes = append(indexes, i)
	}
	if len(forward) > 0 {
		for j, res := range r.base.BatchResolve(ctx, forward) {
			results[indexes[j]] = res
		}
	}
	return results
}

func (r *runtime) SerializeLeaf(ctx context.Context, typeName string, value any) (any, error) {
	switch typeName {
	case "__TypeKind", "__DirectiveLocation":
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("cannot serialize %T as %s", value, typeName)
	}
	return r.base.SerializeLeaf(ctx, typeName, value)
}

func (r *runtime) lookupType(args map[string]any) any {
	name, _ := args["name"].(string)
	if t := r.schema.Types[name]; t != nil {
		return t
	}
	return nil
}

func (r *runtime) resolveSchemaField(sch *schema.Schema, field string) any {
	switch field {
	case "types":
		out := make([]*schema.Type, 0, len(sch.Types))
		for _, t := range sch.Types {
			out = append(out, t)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	case "queryType":
		return typeOrNil(sch.GetQueryType())
	case "mutationType":
		return typeOrNil(sch.GetMutationType())
	case "subscriptionType":
		return nil
	case "directives":
		out := make([]*schema.Directive, 0, len(sch.Directives))
		for _, d := range sch.Directives {
			out = append(out, d)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	}
	return nil
}

func (r *runtime) resolveTypeField(t *schema.Type, field string) any {
	switch field {
	case "kind":
		return string(t.Kind)
	case "name":
		return t.Name
	case "description":
		return nullableString(t.Description)
	case "fields":
		if t.Kind != schema.TypeKindObject {
			return nil
		}
		out := make([]*schema.Field, len(t.Fields))
		copy(out, t.Fields)
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	case "interfaces":
		// No interface support in this type system; objects report an
		// empty list, everything else null per the introspection contract.
		if t.Kind == schema.TypeKindObject {
			return []*schema.Type{}
		}
		return nil
	case "enumValues":
		if t.Kind != schema.TypeKindEnum {
			return nil
		}
		out := make([]*enumValue, len(t.EnumValues))
		for i, name := range t.EnumValues {
			out[i] = &enumValue{name: name}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
		return out
	case "inputFields":
		if t.Kind != schema.TypeKindInputObject {
			return nil
		}
		out := make([]*schema.InputValue, len(t.InputFields))
		copy(out, t.InputFields)
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	}
	// possibleTypes and ofType are always null for named types.
	return nil
}

// resolveTypeRefField handles the LIST and NON_NULL wrapper nodes. Named
// references never reach here; typeValue resolves them to their definition.
func (r *runtime) resolveTypeRefField(ref *schema.TypeRef, field string) any {
	switch field {
	case "kind":
		return string(ref.Kind)
	case "ofType":
		return r.typeValue(ref.OfType)
	}
	return nil
}

func (r *runtime) resolveFieldField(f *schema.Field, field string) any {
	switch field {
	case "name":
		return f.Name
	case "args":
		out := make([]*schema.InputValue, len(f.Arguments))
		copy(out, f.Arguments)
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	case "type":
		return r.typeValue(f.Type)
	case "isDeprecated":
		return false
	}
	return nil
}

func (r *runtime) resolveInputValueField(v *schema.InputValue, field string) any {
	switch field {
	case "name":
		return v.Name
	case "type":
		return r.typeValue(v.Type)
	case "defaultValue":
		return renderDefaultValue(v.DefaultValue)
	}
	return nil
}

func resolveEnumValueField(ev *enumValue, field string) any {
	switch field {
	case "name":
		return ev.name
	case "isDeprecated":
		return false
	}
	return nil
}

func resolveDirectiveField(d *schema.Directive, field string) any {
	switch field {
	case "name":
		return d.Name
	case "locations":
		out := make([]string, len(d.Locations))
		copy(out, d.Locations)
		sort.Strings(out)
		return out
	case "args":
		out := make([]*schema.InputValue, len(d.Arguments))
		copy(out, d.Arguments)
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	}
	return nil
}

// typeValue maps a type reference to its introspection source: named
// references yield the type definition, wrappers yield the reference node.
func (r *runtime) typeValue(ref *schema.TypeRef) any {
	if ref == nil {
		return nil
	}
	if ref.Kind == schema.TypeRefKindNamed {
		if t := r.schema.Types[ref.Named]; t != nil {
			return t
		}
		return nil
	}
	return ref
}

// renderDefaultValue prints a default in GraphQL literal form, nil when the
// input value declares none.
func renderDefaultValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return strconv.Quote(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func typeOrNil(t *schema.Type) any {
	if t == nil {
		return nil
	}
	return t
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
