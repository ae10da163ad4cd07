package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRender_SmallSchema(t *testing.T) {
	s := New().SetQueryType("Query")
	s.AddType(NewType("Tier", TypeKindEnum).AddEnumValue("basic").AddEnumValue("business"))
	s.AddType(NewType("User", TypeKindObject).
		AddField(NewField("id", NonNullType(NamedType("UUID")), ResolveSource)).
		AddField(NewField("friends", ListType(NamedType("User")), ResolveByEdge)))
	s.AddType(NewType("Query", TypeKindObject).
		AddField(NewField("user", NamedType("User"), ResolveByKey).
			AddArgument(NewInputValue("id", NonNullType(NamedType("UUID"))))))

	want := strings.Join([]string{
		"type Query {",
		"  user(id: UUID!): User",
		"}",
		"",
		"enum Tier {",
		"  basic",
		"  business",
		"}",
		"",
		"type User {",
		"  id: UUID!",
		"  friends: [User]",
		"}",
		"",
		"schema {",
		"  query: Query",
		"}",
		"",
	}, "\n")

	if diff := cmp.Diff(want, Render(s)); diff != "" {
		t.Fatalf("SDL mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_OmitsBuiltins(t *testing.T) {
	out := Render(New())
	require.NotContains(t, out, "scalar String")
	require.NotContains(t, out, "scalar Boolean")
	// UUID carries a description but is still a preloaded builtin.
	require.NotContains(t, out, "scalar UUID")
}

func TestRender_Deterministic(t *testing.T) {
	s := New().SetQueryType("Query")
	s.AddType(NewType("B", TypeKindObject).AddField(NewField("x", NamedType("String"), ResolveSource)))
	s.AddType(NewType("A", TypeKindObject).AddField(NewField("y", NamedType("String"), ResolveSource)))
	s.AddType(NewType("Query", TypeKindObject).AddField(NewField("a", NamedType("A"), ResolveByKey)))

	first := Render(s)
	for range 5 {
		require.Equal(t, first, Render(s))
	}
	require.Less(t, strings.Index(first, "type A"), strings.Index(first, "type B"))
}

func TestTypeRefHelpers(t *testing.T) {
	nn := NonNullType(ListType(NonNullType(NamedType("User"))))
	require.True(t, IsNonNull(nn))
	require.True(t, IsList(nn))
	require.Equal(t, "User", NamedTypeOf(nn))
	require.False(t, IsNonNull(Unwrap(nn)))
}
