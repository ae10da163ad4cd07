package resolver

import (
	"context"
	"fmt"

	"github.com/fernql/fernql/internal/executor"
	"github.com/fernql/fernql/internal/model"
)

// query resolves the read fields that bypass the batching cache: root list
// scans, filter-keyed relations and subscription-edge traversals. Scan
// results keep the store's creation order, which is what the response lists
// preserve.
func (r *Runtime) query(ctx context.Context, t executor.ResolveTask) (any, error) {
	switch t.ObjectType + "." + t.Field {
	case "Query.users":
		return r.store.AllUsers(ctx)
	case "Query.posts":
		return r.store.AllPosts(ctx)
	case "Query.profiles":
		return r.store.AllProfiles(ctx)
	case "Query.memberTypes":
		return r.store.AllMemberTypes(ctx)
	}

	user, ok := t.Source.(*model.User)
	if !ok {
		return nil, fmt.Errorf("no resolver for %s.%s", t.ObjectType, t.Field)
	}
	switch t.Field {
	case "posts":
		return r.store.PostsByAuthor(ctx, user.ID)
	case "profile":
		return r.store.ProfileByUser(ctx, user.ID)
	case "userSubscribedTo":
		return r.store.SubscriptionsOf(ctx, user.ID)
	case "subscribedToUser":
		return r.store.SubscribersOf(ctx, user.ID)
	}
	return nil, fmt.Errorf("no resolver for %s.%s", t.ObjectType, t.Field)
}
