package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMemberTypeID(t *testing.T) {
	id, err := ParseMemberTypeID("basic")
	require.NoError(t, err)
	require.Equal(t, MemberTypeBasic, id)

	id, err = ParseMemberTypeID("business")
	require.NoError(t, err)
	require.Equal(t, MemberTypeBusiness, id)

	_, err = ParseMemberTypeID("gold")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown member type "gold"`)
}

func TestMemberTypeIDValid(t *testing.T) {
	require.True(t, MemberTypeBasic.Valid())
	require.True(t, MemberTypeBusiness.Valid())
	require.False(t, MemberTypeID("").Valid())
	require.False(t, MemberTypeID("gold").Valid())
}
