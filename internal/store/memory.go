package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/fernql/fernql/internal/model"
)

// Memory is an in-memory Store. Records are kept in creation order so scans
// are deterministic. Returned records are copies; mutating them does not
// affect stored state.
type Memory struct {
	mu          sync.RWMutex
	users       []*model.User
	posts       []*model.Post
	profiles    []*model.Profile
	memberTypes []*model.MemberType
	edges       []model.SubscriptionEdge

	userIndex    map[string]int
	postIndex    map[string]int
	profileIndex map[string]int
}

// NewMemory creates an empty store seeded with the two fixed membership
// tiers.
func NewMemory() *Memory {
	return &Memory{
		memberTypes: []*model.MemberType{
			{ID: model.MemberTypeBasic, Discount: 2.5, PostsLimitPerMonth: 20},
			{ID: model.MemberTypeBusiness, Discount: 7.5, PostsLimitPerMonth: 100},
		},
		userIndex:    make(map[string]int),
		postIndex:    make(map[string]int),
		profileIndex: make(map[string]int),
	}
}

func copyUser(u *model.User) *model.User          { c := *u; return &c }
func copyPost(p *model.Post) *model.Post          { c := *p; return &c }
func copyProfile(p *model.Profile) *model.Profile { c := *p; return &c }
func copyTier(t *model.MemberType) *model.MemberType {
	c := *t
	return &c
}

func (m *Memory) UsersByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if i, ok := m.userIndex[id]; ok {
			out = append(out, copyUser(m.users[i]))
		}
	}
	return out, nil
}

func (m *Memory) PostsByIDs(ctx context.Context, ids []string) ([]*model.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if i, ok := m.postIndex[id]; ok {
			out = append(out, copyPost(m.posts[i]))
		}
	}
	return out, nil
}

func (m *Memory) ProfilesByIDs(ctx context.Context, ids []string) ([]*model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Profile, 0, len(ids))
	for _, id := range ids {
		if i, ok := m.profileIndex[id]; ok {
			out = append(out, copyProfile(m.profiles[i]))
		}
	}
	return out, nil
}

func (m *Memory) MemberTypesByIDs(ctx context.Context, ids []model.MemberTypeID) ([]*model.MemberType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.MemberType, 0, len(ids))
	for _, id := range ids {
		for _, t := range m.memberTypes {
			if t.ID == id {
				out = append(out, copyTier(t))
				break
			}
		}
	}
	return out, nil
}

func (m *Memory) UserByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i, ok := m.userIndex[id]; ok {
		return copyUser(m.users[i]), nil
	}
	return nil, nil
}

func (m *Memory) PostByID(ctx context.Context, id string) (*model.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i, ok := m.postIndex[id]; ok {
		return copyPost(m.posts[i]), nil
	}
	return nil, nil
}

func (m *Memory) ProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i, ok := m.profileIndex[id]; ok {
		return copyProfile(m.profiles[i]), nil
	}
	return nil, nil
}

func (m *Memory) MemberTypeByID(ctx context.Context, id model.MemberTypeID) (*model.MemberType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.memberTypes {
		if t.ID == id {
			return copyTier(t), nil
		}
	}
	return nil, nil
}

func (m *Memory) AllUsers(ctx context.Context) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.User, len(m.users))
	for i, u := range m.users {
		out[i] = copyUser(u)
	}
	return out, nil
}

func (m *Memory) AllPosts(ctx context.Context) ([]*model.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Post, len(m.posts))
	for i, p := range m.posts {
		out[i] = copyPost(p)
	}
	return out, nil
}

func (m *Memory) AllProfiles(ctx context.Context) ([]*model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Profile, len(m.profiles))
	for i, p := range m.profiles {
		out[i] = copyProfile(p)
	}
	return out, nil
}

func (m *Memory) AllMemberTypes(ctx context.Context) ([]*model.MemberType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.MemberType, len(m.memberTypes))
	for i, t := range m.memberTypes {
		out[i] = copyTier(t)
	}
	return out, nil
}

func (m *Memory) PostsByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Post
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			out = append(out, copyPost(p))
		}
	}
	return out, nil
}

func (m *Memory) ProfileByUser(ctx context.Context, userID string) (*model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.profiles {
		if p.UserID == userID {
			return copyProfile(p), nil
		}
	}
	return nil, nil
}

func (m *Memory) SubscribersOf(ctx context.Context, authorID string) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.User
	for _, e := range m.edges {
		if e.AuthorID != authorID {
			continue
		}
		if i, ok := m.userIndex[e.SubscriberID]; ok {
			out = append(out, copyUser(m.users[i]))
		}
	}
	return out, nil
}

func (m *Memory) SubscriptionsOf(ctx context.Context, subscriberID string) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.User
	for _, e := range m.edges {
		if e.SubscriberID != subscriberID {
			continue
		}
		if i, ok := m.userIndex[e.AuthorID]; ok {
			out = append(out, copyUser(m.users[i]))
		}
	}
	return out, nil
}

func (m *Memory) CreateUser(ctx context.Context, in model.CreateUserInput) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &model.User{ID: uuid.NewString(), Name: in.Name, Balance: in.Balance}
	m.userIndex[u.ID] = len(m.users)
	m.users = append(m.users, u)
	return copyUser(u), nil
}

func (m *Memory) UpdateUser(ctx context.Context, id string, in model.ChangeUserInput) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.userIndex[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	u := m.users[i]
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Balance != nil {
		u.Balance = *in.Balance
	}
	return copyUser(u), nil
}

// DeleteUser removes the user together with its profile, posts and
// subscription edges, mirroring relational cascade semantics.
func (m *Memory) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.userIndex[id]; !ok {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	m.users = removeAt(m.users, m.userIndex, id)
	m.posts = removeWhere(m.posts, m.postIndex, func(p *model.Post) bool { return p.AuthorID == id })
	m.profiles = removeWhere(m.profiles, m.profileIndex, func(p *model.Profile) bool { return p.UserID == id })
	edges := m.edges[:0]
	for _, e := range m.edges {
		if e.SubscriberID != id && e.AuthorID != id {
			edges = append(edges, e)
		}
	}
	m.edges = edges
	return nil
}

func (m *Memory) CreatePost(ctx context.Context, in model.CreatePostInput) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.userIndex[in.AuthorID]; !ok {
		return nil, fmt.Errorf("author %s: %w", in.AuthorID, ErrNotFound)
	}
	p := &model.Post{ID: uuid.NewString(), Title: in.Title, Content: in.Content, AuthorID: in.AuthorID}
	m.postIndex[p.ID] = len(m.posts)
	m.posts = append(m.posts, p)
	return copyPost(p), nil
}

func (m *Memory) UpdatePost(ctx context.Context, id string, in model.ChangePostInput) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.postIndex[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	p := m.posts[i]
	if in.AuthorID != nil {
		if _, ok := m.userIndex[*in.AuthorID]; !ok {
			return nil, fmt.Errorf("author %s: %w", *in.AuthorID, ErrNotFound)
		}
		p.AuthorID = *in.AuthorID
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	return copyPost(p), nil
}

func (m *Memory) DeletePost(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.postIndex[id]; !ok {
		return fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	m.posts = removeAt(m.posts, m.postIndex, id)
	return nil
}

func (m *Memory) CreateProfile(ctx context.Context, in model.CreateProfileInput) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.userIndex[in.UserID]; !ok {
		return nil, fmt.Errorf("user %s: %w", in.UserID, ErrNotFound)
	}
	if !in.MemberTypeID.Valid() {
		return nil, fmt.Errorf("member type %q: %w", in.MemberTypeID, ErrNotFound)
	}
	for _, p := range m.profiles {
		if p.UserID == in.UserID {
			return nil, fmt.Errorf("user %s already has a profile: %w", in.UserID, ErrConflict)
		}
	}
	p := &model.Profile{
		ID:           uuid.NewString(),
		IsMale:       in.IsMale,
		YearOfBirth:  in.YearOfBirth,
		UserID:       in.UserID,
		MemberTypeID: in.MemberTypeID,
	}
	m.profileIndex[p.ID] = len(m.profiles)
	m.profiles = append(m.profiles, p)
	return copyProfile(p), nil
}

func (m *Memory) UpdateProfile(ctx context.Context, id string, in model.ChangeProfileInput) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.profileIndex[id]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	p := m.profiles[i]
	if in.IsMale != nil {
		p.IsMale = *in.IsMale
	}
	if in.YearOfBirth != nil {
		p.YearOfBirth = *in.YearOfBirth
	}
	if in.MemberTypeID != nil {
		if !in.MemberTypeID.Valid() {
			return nil, fmt.Errorf("member type %q: %w", *in.MemberTypeID, ErrNotFound)
		}
		p.MemberTypeID = *in.MemberTypeID
	}
	return copyProfile(p), nil
}

func (m *Memory) DeleteProfile(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profileIndex[id]; !ok {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	m.profiles = removeAt(m.profiles, m.profileIndex, id)
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, subscriberID, authorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.userIndex[subscriberID]; !ok {
		return fmt.Errorf("subscriber %s: %w", subscriberID, ErrNotFound)
	}
	if _, ok := m.userIndex[authorID]; !ok {
		return fmt.Errorf("author %s: %w", authorID, ErrNotFound)
	}
	for _, e := range m.edges {
		if e.SubscriberID == subscriberID && e.AuthorID == authorID {
			return nil
		}
	}
	m.edges = append(m.edges, model.SubscriptionEdge{SubscriberID: subscriberID, AuthorID: authorID})
	return nil
}

func (m *Memory) Unsubscribe(ctx context.Context, subscriberID, authorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	edges := m.edges[:0]
	for _, e := range m.edges {
		if e.SubscriberID == subscriberID && e.AuthorID == authorID {
			continue
		}
		edges = append(edges, e)
	}
	m.edges = edges
	return nil
}

type record interface {
	*model.User | *model.Post | *model.Profile
}

func removeAt[T record](s []T, index map[string]int, id string) []T {
	i := index[id]
	s = append(s[:i], s[i+1:]...)
	reindex(s, index)
	return s
}

func removeWhere[T record](s []T, index map[string]int, match func(T) bool) []T {
	out := s[:0]
	for _, r := range s {
		if !match(r) {
			out = append(out, r)
		}
	}
	reindex(out, index)
	return out
}

func reindex[T record](s []T, index map[string]int) {
	clear(index)
	for i, r := range s {
		switch v := any(r).(type) {
		case *model.User:
			index[v.ID] = i
		case *model.Post:
			index[v.ID] = i
		case *model.Profile:
			index[v.ID] = i
		}
	}
}
