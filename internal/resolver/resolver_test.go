package resolver

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/fernql/fernql/internal/executor"
	"github.com/fernql/fernql/internal/language"
	"github.com/fernql/fernql/internal/model"
	"github.com/fernql/fernql/internal/store"
)

// countingStore records the key sets of every multi-key user fetch so tests
// can assert the batching behavior end to end.
type countingStore struct {
	*store.Memory
	userFetches [][]string
}

func (c *countingStore) UsersByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	c.userFetches = append(c.userFetches, append([]string(nil), ids...))
	return c.Memory.UsersByIDs(ctx, ids)
}

func execute(t *testing.T, st store.Store, query string, variables map[string]any) *executor.Result {
	t.Helper()
	doc, err := language.ParseQuery(query)
	require.NoError(t, err)
	engine := executor.New(New(st), BuildSchema())
	return engine.Execute(context.Background(), doc, "", variables)
}

func TestResolver_SiblingUserQueriesShareOneFetch(t *testing.T) {
	ctx := context.Background()
	cs := &countingStore{Memory: store.NewMemory()}
	alice, err := cs.CreateUser(ctx, model.CreateUserInput{Name: "Alice", Balance: 10})
	require.NoError(t, err)
	bob, err := cs.CreateUser(ctx, model.CreateUserInput{Name: "Bob", Balance: 20})
	require.NoError(t, err)

	res := execute(t, cs, `{
		a: user(id: "`+alice.ID+`") { name }
		b: user(id: "`+bob.ID+`") { name }
		again: user(id: "`+alice.ID+`") { name }
	}`, nil)

	require.Empty(t, res.Errors)
	want := map[string]any{
		"a":     map[string]any{"name": "Alice"},
		"b":     map[string]any{"name": "Bob"},
		"again": map[string]any{"name": "Alice"},
	}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}

	// three selections, one fetch, two distinct keys
	require.Len(t, cs.userFetches, 1)
	if diff := cmp.Diff([]string{alice.ID, bob.ID}, cs.userFetches[0]); diff != "" {
		t.Fatalf("fetched keys mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_AbsentRecordResolvesToNull(t *testing.T) {
	res := execute(t, store.NewMemory(), `{ user(id: "00000000-0000-0000-0000-000000000000") { name } }`, nil)
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"user": nil}, res.Data)
}

func TestResolver_NestedRelations(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	u, err := m.CreateUser(ctx, model.CreateUserInput{Name: "Alice", Balance: 10})
	require.NoError(t, err)
	_, err = m.CreatePost(ctx, model.CreatePostInput{AuthorID: u.ID, Title: "First", Content: "c1"})
	require.NoError(t, err)
	_, err = m.CreatePost(ctx, model.CreatePostInput{AuthorID: u.ID, Title: "Second", Content: "c2"})
	require.NoError(t, err)
	_, err = m.CreateProfile(ctx, model.CreateProfileInput{UserID: u.ID, YearOfBirth: 1990, MemberTypeID: model.MemberTypeBusiness})
	require.NoError(t, err)

	res := execute(t, m, `{
		user(id: "`+u.ID+`") {
			name
			posts { title }
			profile { memberTypeId memberType { discount postsLimitPerMonth } }
		}
	}`, nil)

	require.Empty(t, res.Errors)
	want := map[string]any{
		"user": map[string]any{
			"name": "Alice",
			"posts": []any{
				map[string]any{"title": "First"},
				map[string]any{"title": "Second"},
			},
			"profile": map[string]any{
				"memberTypeId": "business",
				"memberType": map[string]any{
					"discount":           7.5,
					"postsLimitPerMonth": 100,
				},
			},
		},
	}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_RootScans(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	_, err := m.CreateUser(ctx, model.CreateUserInput{Name: "A", Balance: 1})
	require.NoError(t, err)
	_, err = m.CreateUser(ctx, model.CreateUserInput{Name: "B", Balance: 2})
	require.NoError(t, err)

	res := execute(t, m, `{ users { name } memberTypes { id } }`, nil)

	require.Empty(t, res.Errors)
	want := map[string]any{
		"users": []any{
			map[string]any{"name": "A"},
			map[string]any{"name": "B"},
		},
		"memberTypes": []any{
			map[string]any{"id": "basic"},
			map[string]any{"id": "business"},
		},
	}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_MemberTypeEnumArgument(t *testing.T) {
	m := store.NewMemory()

	res := execute(t, m, `{ memberType(id: basic) { discount } }`, nil)
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"memberType": map[string]any{"discount": 2.5}}, res.Data)

	res = execute(t, m, `{ memberType(id: gold) { discount } }`, nil)
	require.Len(t, res.Errors, 1)
	require.Equal(t, map[string]any{"memberType": nil}, res.Data)
}

func TestResolver_CreateUserRoundtrip(t *testing.T) {
	m := store.NewMemory()

	res := execute(t, m, `mutation ($dto: CreateUserInput!) {
		createUser(dto: $dto) { id name balance }
	}`, map[string]any{
		"dto": map[string]any{"name": "Carol", "balance": 42.5},
	})

	require.Empty(t, res.Errors)
	created := res.Data.(map[string]any)["createUser"].(map[string]any)
	require.Equal(t, "Carol", created["name"])
	require.Equal(t, 42.5, created["balance"])

	id := created["id"].(string)
	res = execute(t, m, `{ user(id: "`+id+`") { name } }`, nil)
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"user": map[string]any{"name": "Carol"}}, res.Data)
}

func TestResolver_MutationsRunInDocumentOrder(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	res := execute(t, m, `mutation {
		first: createUser(dto: { name: "First", balance: 1 }) { name }
		second: createUser(dto: { name: "Second", balance: 2 }) { name }
	}`, nil)

	require.Empty(t, res.Errors)
	users, err := m.AllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "First", users[0].Name)
	require.Equal(t, "Second", users[1].Name)
}

func TestResolver_ChangeUserSurfacesStoreError(t *testing.T) {
	m := store.NewMemory()

	res := execute(t, m, `mutation {
		changeUser(id: "missing", dto: { name: "X" }) { name }
	}`, nil)

	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0].Message, "not found")
	require.Equal(t, map[string]any{"changeUser": nil}, res.Data)
}

func TestResolver_DeleteIsPermissive(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	u, err := m.CreateUser(ctx, model.CreateUserInput{Name: "Gone", Balance: 0})
	require.NoError(t, err)

	res := execute(t, m, `mutation { deleteUser(id: "`+u.ID+`") }`, nil)
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"deleteUser": true}, res.Data)

	// deleting again reports false, never an error
	res = execute(t, m, `mutation { deleteUser(id: "`+u.ID+`") }`, nil)
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"deleteUser": false}, res.Data)
}

func TestResolver_SubscriptionEdges(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	follower, err := m.CreateUser(ctx, model.CreateUserInput{Name: "Follower", Balance: 0})
	require.NoError(t, err)
	author, err := m.CreateUser(ctx, model.CreateUserInput{Name: "Author", Balance: 0})
	require.NoError(t, err)

	res := execute(t, m, `mutation {
		subscribeTo(userId: "`+follower.ID+`", authorId: "`+author.ID+`") { name }
	}`, nil)
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"subscribeTo": map[string]any{"name": "Follower"}}, res.Data)

	res = execute(t, m, `{
		user(id: "`+follower.ID+`") { userSubscribedTo { name } }
		author: user(id: "`+author.ID+`") { subscribedToUser { name } }
	}`, nil)
	require.Empty(t, res.Errors)
	want := map[string]any{
		"user":   map[string]any{"userSubscribedTo": []any{map[string]any{"name": "Author"}}},
		"author": map[string]any{"subscribedToUser": []any{map[string]any{"name": "Follower"}}},
	}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}

	// unsubscribing an edge that is not there still reports success
	res = execute(t, m, `mutation {
		unsubscribeFrom(userId: "`+author.ID+`", authorId: "`+follower.ID+`")
	}`, nil)
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]any{"unsubscribeFrom": true}, res.Data)
}

func TestResolver_CreateProfileWithEnumLiteral(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	u, err := m.CreateUser(ctx, model.CreateUserInput{Name: "U", Balance: 0})
	require.NoError(t, err)

	res := execute(t, m, `mutation {
		createProfile(dto: { isMale: true, yearOfBirth: 1985, userId: "`+u.ID+`", memberTypeId: basic }) {
			yearOfBirth
			memberType { discount }
		}
	}`, nil)

	require.Empty(t, res.Errors)
	want := map[string]any{
		"createProfile": map[string]any{
			"yearOfBirth": 1985,
			"memberType":  map[string]any{"discount": 2.5},
		},
	}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}
