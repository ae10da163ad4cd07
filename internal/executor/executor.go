package executor

import (
	"context"
	"fmt"
	"reflect"

	"github.com/fernql/fernql/internal/language"
	"github.com/fernql/fernql/internal/schema"
)

// Path locates a field in the response tree: string elements are response
// names, int elements are list indices.
type Path []PathElement

type PathElement any

// Engine executes operations against one schema and one runtime. Construct
// one per request when the runtime carries request-scoped state such as
// batching loaders.
type Engine struct {
	runtime Runtime
	schema  *schema.Schema
}

// New creates an engine over the given runtime and schema.
func New(runtime Runtime, s *schema.Schema) *Engine {
	return &Engine{runtime: runtime, schema: s}
}

// executionState carries per-operation state through the resolution walk.
type executionState struct {
	runtime   Runtime
	schema    *schema.Schema
	document  *language.QueryDocument
	variables map[string]any
	ctx       context.Context

	// fields suspended at the current depth, flushed together
	pending []pendingResolve
	errors  []GraphQLError
	// response-path prefixes nullified by Non-Null propagation
	nullified map[string]struct{}
	// per-position nullability, recorded as the walk descends; consulted
	// when a Non-Null failure bubbles toward the nearest nullable ancestor
	nullable map[string]bool
}

// pendingResolve is one suspended field waiting for the current batch
// window to close.
type pendingResolve struct {
	Task      ResolveTask
	Path      Path
	FieldType *schema.TypeRef
	Fields    []*language.Field
}

// suspended marks a field slot whose value arrives after the batch flush.
type suspended struct{}

// Execute runs the named operation of the document. The caller is expected
// to have validated the document first; Execute still fails soft on unknown
// fields and coercion problems by recording located errors.
func (e *Engine) Execute(
	ctx context.Context,
	document *language.QueryDocument,
	operationName string,
	variables map[string]any,
) *Result {
	op := selectOperation(document, operationName)
	if op == nil {
		return &Result{Errors: []GraphQLError{{Message: "operation not found"}}}
	}

	coerced, err := coerceVariableValues(e.schema, op, variables)
	if err != nil {
		return &Result{Errors: []GraphQLError{{Message: err.Error()}}}
	}

	var rootType *schema.Type
	switch op.Operation {
	case language.Query:
		rootType = e.schema.GetQueryType()
	case language.Mutation:
		rootType = e.schema.GetMutationType()
	default:
		return &Result{Errors: []GraphQLError{{Message: fmt.Sprintf("unsupported operation type: %s", op.Operation)}}}
	}
	if rootType == nil {
		return &Result{Errors: []GraphQLError{{Message: fmt.Sprintf("schema has no %s type", op.Operation)}}}
	}

	state := &executionState{
		runtime:   e.runtime,
		schema:    e.schema,
		document:  document,
		variables: coerced,
		ctx:       ctx,
		errors:    []GraphQLError{},
		nullified: make(map[string]struct{}),
		nullable:  make(map[string]bool),
	}

	root := make(map[string]any)
	for k, v := range executeSelectionSet(state, rootType, op.SelectionSet, nil, Path{}) {
		root[k] = v
	}

	// Depth loop: each iteration closes one batch window.
	for len(state.pending) > 0 {
		live, results := flushPending(state)
		for i, res := range results {
			completePending(state, live[i], res, root)
		}
	}

	return &Result{Data: root, Errors: state.errors}
}

// executeSelectionSet expands one selection set. Sync fields complete in
// place; suspended fields leave a placeholder that completePending later
// overwrites through the response root.
func executeSelectionSet(state *executionState, objectType *schema.Type, selections language.SelectionSet, objectValue any, path Path) map[string]any {
	grouped := collectFields(state, objectType, selections)
	result := make(map[string]any)

	for _, cf := range grouped.ordered() {
		fieldPath := appendPath(path, cf.ResponseName)
		value := executeFieldGroup(state, objectType, objectValue, cf.Fields, fieldPath)

		if cf.Fields[0].Name == "__typename" {
			result[cf.ResponseName] = value
			continue
		}

		fieldDef := objectType.Field(cf.Fields[0].Name)
		if fieldDef == nil {
			// unknown field, error already recorded
			continue
		}

		if schema.IsNonNull(fieldDef.Type) && isNullish(value) {
			if len(path) > 0 {
				return nil
			}
			result[cf.ResponseName] = nil
			continue
		}

		if isNullish(value) {
			result[cf.ResponseName] = nil
		} else {
			result[cf.ResponseName] = value
		}
	}
	return result
}

func executeFieldGroup(state *executionState, objectType *schema.Type, objectValue any, fields []*language.Field, path Path) any {
	field := fields[0]
	if field.Name == "__typename" {
		return objectType.Name
	}

	fieldDef := objectType.Field(field.Name)
	if fieldDef == nil {
		state.addError(fmt.Sprintf("Cannot query field %q on type %q", field.Name, objectType.Name), path)
		return nil
	}
	state.nullable[pathString(path)] = !schema.IsNonNull(fieldDef.Type)

	args := coerceArgumentValues(fieldDef, field.Arguments, state, path)

	if fieldDef.Sync() {
		value, err := state.runtime.ResolveSource(state.ctx, objectType.Name, field.Name, objectValue)
		if err != nil {
			state.addError(err.Error(), path)
			return nil
		}
		return completeValue(state, fieldDef.Type, fields, value, path)
	}

	state.pending = append(state.pending, pendingResolve{
		Task: ResolveTask{
			ObjectType: objectType.Name,
			Field:      field.Name,
			Source:     objectValue,
			Args:       args,
		},
		Path:      path,
		FieldType: fieldDef.Type,
		Fields:    fields,
	})
	return suspended{}
}

// flushPending closes the current batch window: it drops work under
// nullified paths, hands the survivors to the runtime in one call, and
// returns them alongside the index-aligned results.
func flushPending(state *executionState) ([]pendingResolve, []ResolveResult) {
	live := make([]pendingResolve, 0, len(state.pending))
	for _, p := range state.pending {
		if state.underNullified(p.Path) {
			continue
		}
		live = append(live, p)
	}
	state.pending = nil

	tasks := make([]ResolveTask, len(live))
	for i, p := range live {
		tasks[i] = p.Task
	}
	return live, state.runtime.BatchResolve(state.ctx, tasks)
}

func completePending(state *executionState, p pendingResolve, res ResolveResult, root map[string]any) {
	if state.underNullified(p.Path) {
		return
	}

	if res.Error != nil {
		state.addError(res.Error.Error(), p.Path)
		if schema.IsNonNull(p.FieldType) {
			null := state.nearestNullablePath(p.Path)
			writeAtPath(root, null, nil)
			state.markNullified(null)
			return
		}
		writeAtPath(root, p.Path, nil)
		return
	}

	completed := completeValue(state, p.FieldType, p.Fields, res.Value, p.Path)
	if schema.IsNonNull(p.FieldType) && isNullish(completed) {
		null := state.nearestNullablePath(p.Path)
		writeAtPath(root, null, nil)
		state.markNullified(null)
		return
	}

	if isNullish(completed) {
		writeAtPath(root, p.Path, nil)
	} else {
		writeAtPath(root, p.Path, completed)
	}
}

func completeValue(state *executionState, fieldType *schema.TypeRef, fields []*language.Field, value any, path Path) any {
	if schema.IsNonNull(fieldType) {
		if isNullish(value) {
			if !state.hasErrorAt(path) {
				state.addError(fmt.Sprintf("Cannot return null for non-nullable field %s", pathString(path)), path)
			}
			return nil
		}
		return completeValue(state, schema.Unwrap(fieldType), fields, value, path)
	}

	if isNullish(value) {
		return nil
	}

	if schema.IsList(fieldType) {
		return completeListValue(state, fieldType, fields, value, path)
	}

	named := schema.NamedTypeOf(fieldType)
	typeObj := state.schema.Types[named]
	if typeObj == nil {
		state.addError(fmt.Sprintf("Unknown type: %s", named), path)
		return nil
	}

	switch typeObj.Kind {
	case schema.TypeKindScalar, schema.TypeKindEnum:
		serialized, err := state.runtime.SerializeLeaf(state.ctx, named, value)
		if err != nil {
			state.addError(err.Error(), path)
			return nil
		}
		return serialized
	case schema.TypeKindObject:
		return executeSelectionSet(state, typeObj, mergeSelectionSets(fields), value, path)
	default:
		state.addError(fmt.Sprintf("Cannot complete value of kind %s", typeObj.Kind), path)
		return nil
	}
}

// completeListValue completes each element at its own index so output order
// always matches the resolved list's order.
func completeListValue(state *executionState, listType *schema.TypeRef, fields []*language.Field, value any, path Path) any {
	var items []any
	if direct, ok := value.([]any); ok {
		items = direct
	} else {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice {
			state.addError(fmt.Sprintf("Expected list value, got %T", value), path)
			return nil
		}
		items = make([]any, rv.Len())
		for i := range rv.Len() {
			items[i] = rv.Index(i).Interface()
		}
	}

	inner := schema.Unwrap(listType)
	completed := make([]any, len(items))
	for i, item := range items {
		elemPath := appendPath(path, i)
		state.nullable[pathString(elemPath)] = !schema.IsNonNull(inner)
		v := completeValue(state, inner, fields, item, elemPath)
		if schema.IsNonNull(inner) && isNullish(v) {
			return nil
		}
		completed[i] = v
	}
	return completed
}

func selectOperation(document *language.QueryDocument, name string) *language.OperationDefinition {
	if name == "" && len(document.Operations) == 1 {
		return document.Operations[0]
	}
	for _, op := range document.Operations {
		if op.Name == name {
			return op
		}
	}
	return nil
}

func mergeSelectionSets(fields []*language.Field) language.SelectionSet {
	var merged language.SelectionSet
	for _, f := range fields {
		merged = append(merged, f.SelectionSet...)
	}
	return merged
}

func (s *executionState) addError(message string, path Path) {
	s.errors = append(s.errors, GraphQLError{Message: message, Path: path})
}

func (s *executionState) hasErrorAt(path Path) bool {
	for _, e := range s.errors {
		if reflect.DeepEqual(e.Path, path) {
			return true
		}
	}
	return false
}

func (s *executionState) markNullified(p Path) {
	if key := pathString(p); key != "" {
		s.nullified[key] = struct{}{}
	}
}

func (s *executionState) underNullified(p Path) bool {
	if len(s.nullified) == 0 {
		return false
	}
	var cur Path
	for _, elem := range p {
		cur = append(cur, elem)
		if _, ok := s.nullified[pathString(cur)]; ok {
			return true
		}
	}
	return false
}

// nearestNullablePath returns the longest strict prefix of p whose
// position may legally hold null. When every ancestor is Non-Null the
// top-level field absorbs the null.
func (s *executionState) nearestNullablePath(p Path) Path {
	for end := len(p) - 1; end >= 1; end-- {
		if s.nullable[pathString(p[:end])] {
			return p[:end]
		}
	}
	return topLevelFieldPath(p)
}

func topLevelFieldPath(p Path) Path {
	for _, elem := range p {
		if name, ok := elem.(string); ok {
			return Path{name}
		}
	}
	return Path{}
}

func pathString(path Path) string {
	out := ""
	for i, elem := range path {
		switch v := elem.(type) {
		case string:
			if i > 0 {
				out += "."
			}
			out += v
		case int:
			out += fmt.Sprintf("[%d]", v)
		}
	}
	return out
}

func appendPath(path Path, elem PathElement) Path {
	next := make(Path, len(path)+1)
	copy(next, path)
	next[len(path)] = elem
	return next
}

// writeAtPath writes value into the response tree, materializing maps
// along the way. Lists are created full-length during value completion
// before any element write arrives, so an out-of-range index means the
// branch was discarded and the write is dropped.
func writeAtPath(root map[string]any, path Path, value any) {
	if len(path) == 0 {
		return
	}
	if len(path) == 1 {
		if key, ok := path[0].(string); ok {
			root[key] = value
		}
		return
	}
	current := any(root)
	for _, elem := range path[:len(path)-1] {
		switch e := elem.(type) {
		case string:
			m, ok := current.(map[string]any)
			if !ok {
				return
			}
			next, exists := m[e]
			if !exists {
				next = make(map[string]any)
				m[e] = next
			}
			current = next
		case int:
			slice, ok := current.([]any)
			if !ok || e >= len(slice) {
				return
			}
			if slice[e] == nil {
				slice[e] = make(map[string]any)
			}
			current = slice[e]
		}
	}
	switch last := path[len(path)-1].(type) {
	case string:
		if m, ok := current.(map[string]any); ok {
			m[last] = value
		}
	case int:
		if slice, ok := current.([]any); ok && last < len(slice) {
			slice[last] = value
		}
	}
}

// isNullish reports true for nil interfaces and typed nils.
func isNullish(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
