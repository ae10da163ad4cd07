package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/fernql/fernql/internal/eventbus"
	"github.com/fernql/fernql/internal/events"
	"github.com/fernql/fernql/internal/executor"
	"github.com/fernql/fernql/internal/model"
)

// mutate resolves one root mutation field. Mutations hit the store directly:
// they are never batched and never cached. create/change surface store
// failures as the field's error; delete and unsubscribe fold any failure,
// including "already absent", into a boolean per their permissive contract.
func (r *Runtime) mutate(ctx context.Context, t executor.ResolveTask) (any, error) {
	start := time.Now()
	value, err := r.applyMutation(ctx, t)
	eventbus.Publish(ctx, events.Mutation{Field: t.Field, Err: err, Duration: time.Since(start)})
	return value, err
}

func (r *Runtime) applyMutation(ctx context.Context, t executor.ResolveTask) (any, error) {
	switch t.Field {
	case "createUser":
		in, err := decodeCreateUser(t.Args["dto"])
		if err != nil {
			return nil, err
		}
		return r.store.CreateUser(ctx, in)
	case "changeUser":
		in, err := decodeChangeUser(t.Args["dto"])
		if err != nil {
			return nil, err
		}
		return r.store.UpdateUser(ctx, stringArg(t.Args, "id"), in)
	case "deleteUser":
		return r.store.DeleteUser(ctx, stringArg(t.Args, "id")) == nil, nil

	case "createPost":
		in, err := decodeCreatePost(t.Args["dto"])
		if err != nil {
			return nil, err
		}
		return r.store.CreatePost(ctx, in)
	case "changePost":
		in, err := decodeChangePost(t.Args["dto"])
		if err != nil {
			return nil, err
		}
		return r.store.UpdatePost(ctx, stringArg(t.Args, "id"), in)
	case "deletePost":
		return r.store.DeletePost(ctx, stringArg(t.Args, "id")) == nil, nil

	case "createProfile":
		in, err := decodeCreateProfile(t.Args["dto"])
		if err != nil {
			return nil, err
		}
		return r.store.CreateProfile(ctx, in)
	case "changeProfile":
		in, err := decodeChangeProfile(t.Args["dto"])
		if err != nil {
			return nil, err
		}
		return r.store.UpdateProfile(ctx, stringArg(t.Args, "id"), in)
	case "deleteProfile":
		return r.store.DeleteProfile(ctx, stringArg(t.Args, "id")) == nil, nil

	case "subscribeTo":
		subscriberID := stringArg(t.Args, "userId")
		if err := r.store.Subscribe(ctx, subscriberID, stringArg(t.Args, "authorId")); err != nil {
			return nil, err
		}
		return r.store.UserByID(ctx, subscriberID)
	case "unsubscribeFrom":
		err := r.store.Unsubscribe(ctx, stringArg(t.Args, "userId"), stringArg(t.Args, "authorId"))
		return err == nil, nil
	}
	return nil, fmt.Errorf("no mutation resolver for %s", t.Field)
}

// Input decoding. Argument maps arrive with AST literal types, so numeric
// fields may be int or float64 depending on how the client wrote them.

func decodeCreateUser(raw any) (model.CreateUserInput, error) {
	m, err := inputMap(raw, "CreateUserInput")
	if err != nil {
		return model.CreateUserInput{}, err
	}
	in := model.CreateUserInput{}
	if s, ok := asString(m["name"]); ok {
		in.Name = s
	} else {
		return in, fmt.Errorf("createUser: name is required")
	}
	if f, ok := asFloat(m["balance"]); ok {
		in.Balance = f
	} else {
		return in, fmt.Errorf("createUser: balance is required")
	}
	return in, nil
}

func decodeChangeUser(raw any) (model.ChangeUserInput, error) {
	m, err := inputMap(raw, "ChangeUserInput")
	if err != nil {
		return model.ChangeUserInput{}, err
	}
	in := model.ChangeUserInput{}
	if s, ok := asString(m["name"]); ok {
		in.Name = &s
	}
	if f, ok := asFloat(m["balance"]); ok {
		in.Balance = &f
	}
	return in, nil
}

func decodeCreatePost(raw any) (model.CreatePostInput, error) {
	m, err := inputMap(raw, "CreatePostInput")
	if err != nil {
		return model.CreatePostInput{}, err
	}
	in := model.CreatePostInput{}
	var ok bool
	if in.AuthorID, ok = asString(m["authorId"]); !ok {
		return in, fmt.Errorf("createPost: authorId is required")
	}
	if in.Title, ok = asString(m["title"]); !ok {
		return in, fmt.Errorf("createPost: title is required")
	}
	if in.Content, ok = asString(m["content"]); !ok {
		return in, fmt.Errorf("createPost: content is required")
	}
	return in, nil
}

func decodeChangePost(raw any) (model.ChangePostInput, error) {
	m, err := inputMap(raw, "ChangePostInput")
	if err != nil {
		return model.ChangePostInput{}, err
	}
	in := model.ChangePostInput{}
	if s, ok := asString(m["authorId"]); ok {
		in.AuthorID = &s
	}
	if s, ok := asString(m["title"]); ok {
		in.Title = &s
	}
	if s, ok := asString(m["content"]); ok {
		in.Content = &s
	}
	return in, nil
}

func decodeCreateProfile(raw any) (model.CreateProfileInput, error) {
	m, err := inputMap(raw, "CreateProfileInput")
	if err != nil {
		return model.CreateProfileInput{}, err
	}
	in := model.CreateProfileInput{}
	b, ok := m["isMale"].(bool)
	if !ok {
		return in, fmt.Errorf("createProfile: isMale is required")
	}
	in.IsMale = b
	year, ok := asInt(m["yearOfBirth"])
	if !ok {
		return in, fmt.Errorf("createProfile: yearOfBirth is required")
	}
	in.YearOfBirth = year
	if in.UserID, ok = asString(m["userId"]); !ok {
		return in, fmt.Errorf("createProfile: userId is required")
	}
	tier, ok := asString(m["memberTypeId"])
	if !ok {
		return in, fmt.Errorf("createProfile: memberTypeId is required")
	}
	id, err := model.ParseMemberTypeID(tier)
	if err != nil {
		return in, err
	}
	in.MemberTypeID = id
	return in, nil
}

func decodeChangeProfile(raw any) (model.ChangeProfileInput, error) {
	m, err := inputMap(raw, "ChangeProfileInput")
	if err != nil {
		return model.ChangeProfileInput{}, err
	}
	in := model.ChangeProfileInput{}
	if b, ok := m["isMale"].(bool); ok {
		in.IsMale = &b
	}
	if year, ok := asInt(m["yearOfBirth"]); ok {
		in.YearOfBirth = &year
	}
	if tier, ok := asString(m["memberTypeId"]); ok {
		id, err := model.ParseMemberTypeID(tier)
		if err != nil {
			return in, err
		}
		in.MemberTypeID = &id
	}
	return in, nil
}

func inputMap(raw any, typeName string) (map[string]any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected %s object, got %T", typeName, raw)
	}
	return m, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}
