package schema

var builtinScalars = []*Type{
	{Name: "String", Kind: TypeKindScalar},
	{Name: "Int", Kind: TypeKindScalar},
	{Name: "Float", Kind: TypeKindScalar},
	{Name: "Boolean", Kind: TypeKindScalar},
	{Name: "ID", Kind: TypeKindScalar},
	{Name: "UUID", Kind: TypeKindScalar, Description: "A version 4 UUID rendered in canonical form."},
}

var includeDirective = &Directive{
	Name:      "include",
	Locations: []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
	Arguments: []*InputValue{
		{Name: "if", Type: NonNullType(NamedType("Boolean"))},
	},
}

var skipDirective = &Directive{
	Name:      "skip",
	Locations: []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
	Arguments: []*InputValue{
		{Name: "if", Type: NonNullType(NamedType("Boolean"))},
	},
}

// IsBuiltin reports whether name is one of the preloaded scalar types.
func IsBuiltin(name string) bool {
	for _, t := range builtinScalars {
		if t.Name == name {
			return true
		}
	}
	return false
}
