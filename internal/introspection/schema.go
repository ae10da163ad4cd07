package introspection

import "github.com/fernql/fernql/internal/schema"

// Extend returns a copy of sch with the introspection meta types installed
// and the __schema and __type entry points appended to the root query type.
// The original schema is never mutated. Both entry points resolve through
// the batch path so their arguments reach the runtime like any other root
// field.
func Extend(sch *schema.Schema) *schema.Schema {
	extended := &schema.Schema{
		QueryType:    sch.QueryType,
		MutationType: sch.MutationType,
		Types:        make(map[string]*schema.Type, len(sch.Types)+8),
		Directives:   sch.Directives,
	}
	for name, t := range sch.Types {
		extended.Types[name] = t
	}
	for _, t := range metaTypes() {
		extended.AddType(t)
	}

	query := sch.GetQueryType()
	if query == nil {
		return extended
	}
	queryCopy := &schema.Type{
		Name:   query.Name,
		Kind:   query.Kind,
		Fields: make([]*schema.Field, len(query.Fields), len(query.Fields)+2),
	}
	copy(queryCopy.Fields, query.Fields)
	queryCopy.
		AddField(schema.NewField("__schema",
			schema.NonNullType(schema.NamedType("__Schema")), schema.ResolveRoot)).
		AddField(schema.NewField("__type",
			schema.NamedType("__Type"), schema.ResolveRoot).
			AddArgument(schema.NewInputValue("name",
				schema.NonNullType(schema.NamedType("String")))))
	extended.AddType(queryCopy)
	return extended
}

func metaTypes() []*schema.Type {
	str := schema.NamedType("String")
	boolean := schema.NamedType("Boolean")
	typeRef := schema.NamedType("__Type")
	nonNullType := schema.NonNullType(typeRef)
	inputValues := schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__InputValue"))))

	// includeDeprecated is accepted for client compatibility; nothing in
	// this type system carries deprecation, so every value is included.
	includeDeprecated := func() *schema.InputValue {
		v := schema.NewInputValue("includeDeprecated", boolean)
		v.DefaultValue = false
		return v
	}

	schemaType := schema.NewType("__Schema", schema.TypeKindObject).
		AddField(schema.NewField("types",
			schema.NonNullType(schema.ListType(nonNullType)), schema.ResolveSource)).
		AddField(schema.NewField("queryType", nonNullType, schema.ResolveSource)).
		AddField(schema.NewField("mutationType", typeRef, schema.ResolveSource)).
		AddField(schema.NewField("subscriptionType", typeRef, schema.ResolveSource)).
		AddField(schema.NewField("directives",
			schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__Directive")))),
			schema.ResolveSource))

	typeType := schema.NewType("__Type", schema.TypeKindObject).
		AddField(schema.NewField("kind",
			schema.NonNullType(schema.NamedType("__TypeKind")), schema.ResolveSource)).
		AddField(schema.NewField("name", str, schema.ResolveSource)).
		AddField(schema.NewField("description", str, schema.ResolveSource)).
		AddField(schema.NewField("fields",
			schema.ListType(schema.NonNullType(schema.NamedType("__Field"))), schema.ResolveSource).
			AddArgument(includeDeprecated())).
		AddField(schema.NewField("interfaces",
			schema.ListType(nonNullType), schema.ResolveSource)).
		AddField(schema.NewField("possibleTypes",
			schema.ListType(nonNullType), schema.ResolveSource)).
		AddField(schema.NewField("enumValues",
			schema.ListType(schema.NonNullType(schema.NamedType("__EnumValue"))), schema.ResolveSource).
			AddArgument(includeDeprecated())).
		AddField(schema.NewField("inputFields",
			schema.ListType(schema.NonNullType(schema.NamedType("__InputValue"))), schema.ResolveSource)).
		AddField(schema.NewField("ofType", typeRef, schema.ResolveSource))

	fieldType := schema.NewType("__Field", schema.TypeKindObject).
		AddField(schema.NewField("name", schema.NonNullType(str), schema.ResolveSource)).
		AddField(schema.NewField("description", str, schema.ResolveSource)).
		AddField(schema.NewField("args", inputValues, schema.ResolveSource)).
		AddField(schema.NewField("type", nonNullType, schema.ResolveSource)).
		AddField(schema.NewField("isDeprecated", schema.NonNullType(boolean), schema.ResolveSource)).
		AddField(schema.NewField("deprecationReason", str, schema.ResolveSource))

	inputValueType := schema.NewType("__InputValue", schema.TypeKindObject).
		AddField(schema.NewField("name", schema.NonNullType(str), schema.ResolveSource)).
		AddField(schema.NewField("description", str, schema.ResolveSource)).
		AddField(schema.NewField("type", nonNullType, schema.ResolveSource)).
		AddField(schema.NewField("defaultValue", str, schema.ResolveSource))

	enumValueType := schema.NewType("__EnumValue", schema.TypeKindObject).
		AddField(schema.NewField("name", schema.NonNullType(str), schema.ResolveSource)).
		AddField(schema.NewField("description", str, schema.ResolveSource)).
		AddField(schema.NewField("isDeprecated", schema.NonNullType(boolean), schema.ResolveSource)).
		AddField(schema.NewField("deprecationReason", str, schema.ResolveSource))

	directiveType := schema.NewType("__Directive", schema.TypeKindObject).
		AddField(schema.NewField("name", schema.NonNullType(str), schema.ResolveSource)).
		AddField(schema.NewField("description", str, schema.ResolveSource)).
		AddField(schema.NewField("locations",
			schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__DirectiveLocation")))),
			schema.ResolveSource)).
		AddField(schema.NewField("args", inputValues, schema.ResolveSource))

	typeKind := schema.NewType("__TypeKind", schema.TypeKindEnum).
		AddEnumValue("SCALAR").
		AddEnumValue("OBJECT").
		AddEnumValue("ENUM").
		AddEnumValue("INPUT_OBJECT").
		AddEnumValue("LIST").
		AddEnumValue("NON_NULL")

	directiveLocation := schema.NewType("__DirectiveLocation", schema.TypeKindEnum).
		AddEnumValue("FIELD").
		AddEnumValue("FRAGMENT_SPREAD").
		AddEnumValue("INLINE_FRAGMENT")

	return []*schema.Type{
		schemaType, typeType, fieldType, inputValueType,
		enumValueType, directiveType, typeKind, directiveLocation,
	}
}
