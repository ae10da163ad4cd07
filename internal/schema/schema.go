// Package schema holds the executable GraphQL type system: named types,
// type references, and field declarations carrying their resolution
// strategy. The engine consumes it as static metadata; it is never mutated
// after construction.
package schema

// Schema is the complete executable schema.
type Schema struct {
	QueryType    string
	MutationType string
	Types        map[string]*Type
	Directives   map[string]*Directive
}

// New creates a schema preloaded with the builtin scalars and directives.
func New() *Schema {
	s := &Schema{
		Types:      make(map[string]*Type),
		Directives: make(map[string]*Directive),
	}
	for _, t := range builtinScalars {
		s.AddType(t)
	}
	s.AddDirective(includeDirective)
	s.AddDirective(skipDirective)
	return s
}

// SetQueryType names the root query type.
func (s *Schema) SetQueryType(name string) *Schema { s.QueryType = name; return s }

// SetMutationType names the root mutation type.
func (s *Schema) SetMutationType(name string) *Schema { s.MutationType = name; return s }

// AddType registers a named type.
func (s *Schema) AddType(t *Type) *Schema { s.Types[t.Name] = t; return s }

// AddDirective registers a directive.
func (s *Schema) AddDirective(d *Directive) *Schema { s.Directives[d.Name] = d; return s }

// GetQueryType returns the root query type, nil when absent.
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type, nil when absent.
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

// TypeKind discriminates the named type variants this schema supports.
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// Type is a named GraphQL type.
type Type struct {
	Name        string
	Kind        TypeKind
	Description string
	Fields      []*Field      // OBJECT
	EnumValues  []string      // ENUM
	InputFields []*InputValue // INPUT_OBJECT
}

// NewType creates a named type of the given kind.
func NewType(name string, kind TypeKind) *Type {
	return &Type{Name: name, Kind: kind}
}

// AddField appends a field declaration (object types only).
func (t *Type) AddField(f *Field) *Type { t.Fields = append(t.Fields, f); return t }

// AddEnumValue appends an enum value name.
func (t *Type) AddEnumValue(name string) *Type { t.EnumValues = append(t.EnumValues, name); return t }

// AddInputField appends an input field declaration (input object types only).
func (t *Type) AddInputField(v *InputValue) *Type {
	t.InputFields = append(t.InputFields, v)
	return t
}

// Field returns the declared field with the given name, nil when unknown.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ResolveKind is the closed set of per-field resolution strategies. The
// engine routes a field by its kind: source projections resolve
// synchronously, everything else suspends into the current batch window.
type ResolveKind int

const (
	// ResolveSource reads a property directly off the parent record.
	ResolveSource ResolveKind = iota
	// ResolveRoot invokes a top-level query or mutation resolver.
	ResolveRoot
	// ResolveByKey loads a relation through the batching cache, keyed by
	// the related record's identity.
	ResolveByKey
	// ResolveByFilter scans the store with a filter derived from the
	// parent record; keyed by a filter, not a primary key, so it bypasses
	// the batching cache.
	ResolveByFilter
	// ResolveByEdge traverses the user-to-user subscription edges.
	ResolveByEdge
)

// Field declares one field of an object type together with its resolution
// strategy.
type Field struct {
	Name      string
	Type      *TypeRef
	Arguments []*InputValue
	Resolve   ResolveKind
}

// NewField creates a field with the given return type and resolution kind.
func NewField(name string, typ *TypeRef, resolve ResolveKind) *Field {
	return &Field{Name: name, Type: typ, Resolve: resolve}
}

// AddArgument appends an argument declaration.
func (f *Field) AddArgument(v *InputValue) *Field {
	f.Arguments = append(f.Arguments, v)
	return f
}

// Sync reports whether the field resolves without suspending into a batch
// window.
func (f *Field) Sync() bool { return f.Resolve == ResolveSource }

// InputValue declares an argument or input object field.
type InputValue struct {
	Name         string
	Type         *TypeRef
	DefaultValue any
}

// NewInputValue creates an argument or input field declaration.
func NewInputValue(name string, typ *TypeRef) *InputValue {
	return &InputValue{Name: name, Type: typ}
}

// Directive declares an executable directive.
type Directive struct {
	Name      string
	Locations []string
	Arguments []*InputValue
}

// TypeRefKind discriminates type reference wrappers.
type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

// TypeRef references a named type, possibly wrapped in List or Non-Null.
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef
	Named  string
}

func NamedType(name string) *TypeRef { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }
func ListType(t *TypeRef) *TypeRef   { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NonNullType(t *TypeRef) *TypeRef {
	return &TypeRef{Kind: TypeRefKindNonNull, OfType: t}
}

// IsNonNull reports whether t is wrapped with Non-Null.
func IsNonNull(t *TypeRef) bool { return t != nil && t.Kind == TypeRefKindNonNull }

// IsList reports whether t is a list, looking through one Non-Null wrapper.
func IsList(t *TypeRef) bool {
	if t == nil {
		return false
	}
	if t.Kind == TypeRefKindList {
		return true
	}
	return t.Kind == TypeRefKindNonNull && t.OfType != nil && t.OfType.Kind == TypeRefKindList
}

// Unwrap removes one layer of List or Non-Null wrapping.
func Unwrap(t *TypeRef) *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

// NamedTypeOf returns the innermost named type of t.
func NamedTypeOf(t *TypeRef) string {
	for t != nil {
		if t.Named != "" {
			return t.Named
		}
		t = t.OfType
	}
	return ""
}
