// Package store defines the storage adapter consumed by the resolver runtime
// and provides an in-memory reference implementation.
//
// The engine only requires the adapter to be safe for concurrent calls from
// overlapping requests. Multi-key fetches may return records in any order and
// silently omit missing keys; callers re-associate results by record identity.
package store

import (
	"context"
	"errors"

	"github.com/fernql/fernql/internal/model"
)

// ErrNotFound marks a keyed lookup or mutation target that does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict marks a store constraint violation, e.g. a second profile for
// the same user.
var ErrConflict = errors.New("constraint violation")

// Store is the storage adapter surface. All operations are atomic at
// single-record granularity; there are no engine-visible transactions.
type Store interface {
	// Multi-key fetches used by the batching loaders. Missing ids are
	// omitted from the result, not errors. Result order is unspecified.
	UsersByIDs(ctx context.Context, ids []string) ([]*model.User, error)
	PostsByIDs(ctx context.Context, ids []string) ([]*model.Post, error)
	ProfilesByIDs(ctx context.Context, ids []string) ([]*model.Profile, error)
	MemberTypesByIDs(ctx context.Context, ids []model.MemberTypeID) ([]*model.MemberType, error)

	// Single-record lookups. A missing id yields (nil, nil).
	UserByID(ctx context.Context, id string) (*model.User, error)
	PostByID(ctx context.Context, id string) (*model.Post, error)
	ProfileByID(ctx context.Context, id string) (*model.Profile, error)
	MemberTypeByID(ctx context.Context, id model.MemberTypeID) (*model.MemberType, error)

	// Filtered scans. Results preserve record creation order.
	AllUsers(ctx context.Context) ([]*model.User, error)
	AllPosts(ctx context.Context) ([]*model.Post, error)
	AllProfiles(ctx context.Context) ([]*model.Profile, error)
	AllMemberTypes(ctx context.Context) ([]*model.MemberType, error)
	PostsByAuthor(ctx context.Context, authorID string) ([]*model.Post, error)
	ProfileByUser(ctx context.Context, userID string) (*model.Profile, error)

	// Subscription graph scans. SubscribersOf returns the users subscribed
	// to the given author; SubscriptionsOf returns the authors the given
	// user subscribed to. Both preserve edge creation order.
	SubscribersOf(ctx context.Context, authorID string) ([]*model.User, error)
	SubscriptionsOf(ctx context.Context, subscriberID string) ([]*model.User, error)

	// Mutations.
	CreateUser(ctx context.Context, in model.CreateUserInput) (*model.User, error)
	UpdateUser(ctx context.Context, id string, in model.ChangeUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error

	CreatePost(ctx context.Context, in model.CreatePostInput) (*model.Post, error)
	UpdatePost(ctx context.Context, id string, in model.ChangePostInput) (*model.Post, error)
	DeletePost(ctx context.Context, id string) error

	CreateProfile(ctx context.Context, in model.CreateProfileInput) (*model.Profile, error)
	UpdateProfile(ctx context.Context, id string, in model.ChangeProfileInput) (*model.Profile, error)
	DeleteProfile(ctx context.Context, id string) error

	// Subscribe records one subscriber → author edge. Unsubscribe removes
	// all matching edges; removing an absent edge is not an error.
	Subscribe(ctx context.Context, subscriberID, authorID string) error
	Unsubscribe(ctx context.Context, subscriberID, authorID string) error
}
