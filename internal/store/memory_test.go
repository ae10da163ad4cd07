package store

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/fernql/fernql/internal/model"
)

func seedUser(t *testing.T, m *Memory, name string) *model.User {
	t.Helper()
	u, err := m.CreateUser(context.Background(), model.CreateUserInput{Name: name, Balance: 100})
	require.NoError(t, err)
	return u
}

func TestMemory_SeededMemberTypes(t *testing.T) {
	m := NewMemory()
	tiers, err := m.AllMemberTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	require.Equal(t, model.MemberTypeBasic, tiers[0].ID)
	require.Equal(t, model.MemberTypeBusiness, tiers[1].ID)

	tier, err := m.MemberTypeByID(context.Background(), model.MemberTypeBusiness)
	require.NoError(t, err)
	require.Equal(t, 7.5, tier.Discount)
}

func TestMemory_UserCRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	u := seedUser(t, m, "Alice")
	require.NotEmpty(t, u.ID)

	got, err := m.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)

	name := "Alicia"
	updated, err := m.UpdateUser(ctx, u.ID, model.ChangeUserInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Alicia", updated.Name)
	require.Equal(t, 100.0, updated.Balance)

	require.NoError(t, m.DeleteUser(ctx, u.ID))
	gone, err := m.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	// second delete fails; absence is an error at the store level
	err = m.DeleteUser(ctx, u.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_AbsentLookupsReturnNilNotError(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	u, err := m.UserByID(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, u)

	p, err := m.ProfileByUser(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestMemory_MultiKeyFetchOmitsMissing(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a := seedUser(t, m, "A")
	b := seedUser(t, m, "B")

	got, err := m.UsersByIDs(ctx, []string{a.ID, "missing", b.ID, a.ID})
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, u := range got {
		ids[i] = u.ID
	}
	if diff := cmp.Diff([]string{a.ID, b.ID, a.ID}, ids); diff != "" {
		t.Fatalf("fetched ids mismatch (-want +got):\n%s", diff)
	}
}

func TestMemory_PostLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	author := seedUser(t, m, "Author")

	_, err := m.CreatePost(ctx, model.CreatePostInput{AuthorID: "ghost", Title: "t", Content: "c"})
	require.ErrorIs(t, err, ErrNotFound)

	p, err := m.CreatePost(ctx, model.CreatePostInput{AuthorID: author.ID, Title: "Hello", Content: "World"})
	require.NoError(t, err)

	title := "Hi"
	updated, err := m.UpdatePost(ctx, p.ID, model.ChangePostInput{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Hi", updated.Title)
	require.Equal(t, "World", updated.Content)

	byAuthor, err := m.PostsByAuthor(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)

	require.NoError(t, m.DeletePost(ctx, p.ID))
	require.ErrorIs(t, m.DeletePost(ctx, p.ID), ErrNotFound)
}

func TestMemory_ProfileConstraints(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	u := seedUser(t, m, "U")

	_, err := m.CreateProfile(ctx, model.CreateProfileInput{UserID: "ghost", MemberTypeID: model.MemberTypeBasic})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = m.CreateProfile(ctx, model.CreateProfileInput{UserID: u.ID, MemberTypeID: model.MemberTypeID("gold")})
	require.ErrorIs(t, err, ErrNotFound)

	p, err := m.CreateProfile(ctx, model.CreateProfileInput{UserID: u.ID, YearOfBirth: 1990, MemberTypeID: model.MemberTypeBasic})
	require.NoError(t, err)

	// one profile per user
	_, err = m.CreateProfile(ctx, model.CreateProfileInput{UserID: u.ID, MemberTypeID: model.MemberTypeBasic})
	require.ErrorIs(t, err, ErrConflict)

	tier := model.MemberTypeBusiness
	updated, err := m.UpdateProfile(ctx, p.ID, model.ChangeProfileInput{MemberTypeID: &tier})
	require.NoError(t, err)
	require.Equal(t, model.MemberTypeBusiness, updated.MemberTypeID)
	require.Equal(t, 1990, updated.YearOfBirth)
}

func TestMemory_DeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	u := seedUser(t, m, "U")
	other := seedUser(t, m, "Other")

	_, err := m.CreatePost(ctx, model.CreatePostInput{AuthorID: u.ID, Title: "t", Content: "c"})
	require.NoError(t, err)
	_, err = m.CreateProfile(ctx, model.CreateProfileInput{UserID: u.ID, MemberTypeID: model.MemberTypeBasic})
	require.NoError(t, err)
	require.NoError(t, m.Subscribe(ctx, u.ID, other.ID))
	require.NoError(t, m.Subscribe(ctx, other.ID, u.ID))

	require.NoError(t, m.DeleteUser(ctx, u.ID))

	posts, err := m.AllPosts(ctx)
	require.NoError(t, err)
	require.Empty(t, posts)

	profiles, err := m.AllProfiles(ctx)
	require.NoError(t, err)
	require.Empty(t, profiles)

	subs, err := m.SubscriptionsOf(ctx, other.ID)
	require.NoError(t, err)
	require.Empty(t, subs)
}

func TestMemory_SubscriptionEdges(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	follower := seedUser(t, m, "Follower")
	author := seedUser(t, m, "Author")

	require.ErrorIs(t, m.Subscribe(ctx, follower.ID, "ghost"), ErrNotFound)

	require.NoError(t, m.Subscribe(ctx, follower.ID, author.ID))
	// repeated subscribe does not create a second edge
	require.NoError(t, m.Subscribe(ctx, follower.ID, author.ID))

	subs, err := m.SubscribersOf(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, follower.ID, subs[0].ID)

	following, err := m.SubscriptionsOf(ctx, follower.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	require.Equal(t, author.ID, following[0].ID)

	require.NoError(t, m.Unsubscribe(ctx, follower.ID, author.ID))
	// removing an absent edge is not an error
	require.NoError(t, m.Unsubscribe(ctx, follower.ID, author.ID))

	subs, err = m.SubscribersOf(ctx, author.ID)
	require.NoError(t, err)
	require.Empty(t, subs)
}

func TestMemory_ReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	u := seedUser(t, m, "U")

	u.Name = "mutated"
	got, err := m.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "U", got.Name)
}
