// Package model declares the domain records served by the GraphQL API and the
// input payloads accepted by its mutations. Records are plain values; all
// lifecycle transitions happen through the store.
package model

import "fmt"

// MemberTypeID identifies one of the fixed membership tiers.
type MemberTypeID string

const (
	MemberTypeBasic    MemberTypeID = "basic"
	MemberTypeBusiness MemberTypeID = "business"
)

// ParseMemberTypeID validates s against the declared tiers. An unknown value
// is an error, never silently defaulted.
func ParseMemberTypeID(s string) (MemberTypeID, error) {
	switch MemberTypeID(s) {
	case MemberTypeBasic, MemberTypeBusiness:
		return MemberTypeID(s), nil
	}
	return "", fmt.Errorf("unknown member type %q", s)
}

// Valid reports whether id is one of the declared tiers.
func (id MemberTypeID) Valid() bool {
	return id == MemberTypeBasic || id == MemberTypeBusiness
}

// User owns zero-or-one Profile, zero-or-many Posts, and participates in
// directed subscription edges as subscriber and as author.
type User struct {
	ID      string
	Name    string
	Balance float64
}

// Profile belongs to exactly one User and references one MemberType.
type Profile struct {
	ID           string
	IsMale       bool
	YearOfBirth  int
	UserID       string
	MemberTypeID MemberTypeID
}

// Post belongs to exactly one User via AuthorID.
type Post struct {
	ID       string
	Title    string
	Content  string
	AuthorID string
}

// MemberType is one of the fixed membership tier records.
type MemberType struct {
	ID                 MemberTypeID
	Discount           float64
	PostsLimitPerMonth int
}

// SubscriptionEdge is a directed subscriber → author edge. It has no identity
// beyond the pair.
type SubscriptionEdge struct {
	SubscriberID string
	AuthorID     string
}

// CreateUserInput is the createUser mutation payload.
type CreateUserInput struct {
	Name    string
	Balance float64
}

// ChangeUserInput carries a partial update; nil fields are left unmodified.
type ChangeUserInput struct {
	Name    *string
	Balance *float64
}

type CreatePostInput struct {
	AuthorID string
	Title    string
	Content  string
}

type ChangePostInput struct {
	AuthorID *string
	Title    *string
	Content  *string
}

type CreateProfileInput struct {
	IsMale       bool
	YearOfBirth  int
	UserID       string
	MemberTypeID MemberTypeID
}

type ChangeProfileInput struct {
	IsMale       *bool
	YearOfBirth  *int
	MemberTypeID *MemberTypeID
}
