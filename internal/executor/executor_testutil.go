package executor

import (
	"testing"

	language "github.com/fernql/fernql/internal/language"
	schema "github.com/fernql/fernql/internal/schema"
)

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

// testSchema builds a small schema shared by the executor tests. Fields
// named with an "a"-prefix resolve from source; the rest suspend into
// batch windows.
func testSchema(types map[string]*schema.Type) *schema.Schema {
	s := schema.New()
	s.SetQueryType("Query")
	s.SetMutationType("Mutation")
	for _, t := range types {
		s.AddType(t)
	}
	return s
}

func objectType(name string, fields ...*schema.Field) *schema.Type {
	t := schema.NewType(name, schema.TypeKindObject)
	for _, f := range fields {
		t.AddField(f)
	}
	return t
}

func syncField(name string, typ *schema.TypeRef) *schema.Field {
	return schema.NewField(name, typ, schema.ResolveSource)
}

func asyncField(name string, typ *schema.TypeRef) *schema.Field {
	return schema.NewField(name, typ, schema.ResolveByKey)
}
