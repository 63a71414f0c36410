package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/bucketpos/pkg/api"
)

func saveMembership(t *testing.T, c *testClients, name string, maxUses *int64) int64 {
	t.Helper()
	resp, err := c.members.SaveMembership(context.Background(), connect.NewRequest(&api.SaveMembershipRequest{
		Membership: &api.Membership{Name: name, MaxUses: maxUses},
	}))
	require.NoError(t, err)
	return resp.Msg.ID
}

func TestSaveMemberUpdatesBalance(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	memberID := saveMember(t, c, "Ada", "Lovelace", 700)

	_, err := c.members.SaveMember(ctx, connect.NewRequest(&api.SaveMemberRequest{
		Member: &api.Member{ID: memberID, FirstName: "Ada", LastName: "King", BalanceCents: 999999},
	}))
	require.NoError(t, err)

	list, err := c.members.ListMembers(ctx, connect.NewRequest(&api.ListMembersRequest{}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Members, 1)
	assert.Equal(t, "King", list.Msg.Members[0].LastName)
	assert.Equal(t, int64(999999), list.Msg.Members[0].BalanceCents)

	_, err = c.members.SaveMember(ctx, connect.NewRequest(&api.SaveMemberRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestCheckInFlow(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	memberID := saveMember(t, c, "Ada", "Lovelace", 0)

	_, err := c.members.CheckIn(ctx, connect.NewRequest(&api.CheckInRequest{MemberID: memberID}))
	assertCode(t, err, connect.CodeNotFound)

	three := int64(3)
	planID := saveMembership(t, c, "3er Karte", &three)
	assigned, err := c.members.AssignMembership(ctx, connect.NewRequest(&api.AssignMembershipRequest{MemberID: memberID, MembershipID: planID}))
	require.NoError(t, err)

	checkIn, err := c.members.CheckIn(ctx, connect.NewRequest(&api.CheckInRequest{MemberID: memberID}))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", checkIn.Msg.CheckIn.MemberName)
	require.NotNil(t, checkIn.Msg.CheckIn.MemberMembershipID)
	assert.Equal(t, assigned.Msg.MemberMembershipID, *checkIn.Msg.CheckIn.MemberMembershipID)

	_, err = c.members.CheckIn(ctx, connect.NewRequest(&api.CheckInRequest{MemberID: memberID}))
	assertCode(t, err, connect.CodeAlreadyExists)

	remaining := func() int64 {
		t.Helper()
		resp, err := c.members.ListMemberMemberships(ctx, connect.NewRequest(&api.ListMemberMembershipsRequest{MemberID: memberID}))
		require.NoError(t, err)
		require.Len(t, resp.Msg.MemberMemberships, 1)
		require.NotNil(t, resp.Msg.MemberMemberships[0].RemainingUses)
		return *resp.Msg.MemberMemberships[0].RemainingUses
	}
	assert.Equal(t, int64(2), remaining())

	today, err := c.members.ListCheckInsToday(ctx, connect.NewRequest(&api.ListCheckInsTodayRequest{}))
	require.NoError(t, err)
	require.Len(t, today.Msg.CheckIns, 1)

	_, err = c.members.DeleteCheckIn(ctx, connect.NewRequest(&api.DeleteCheckInRequest{CheckInID: checkIn.Msg.CheckIn.ID}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), remaining())

	_, err = c.members.DeleteCheckIn(ctx, connect.NewRequest(&api.DeleteCheckInRequest{CheckInID: checkIn.Msg.CheckIn.ID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = c.members.DeleteMembership(ctx, connect.NewRequest(&api.DeleteMembershipRequest{MembershipID: planID}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	_, err = c.members.DeleteMemberMembership(ctx, connect.NewRequest(&api.DeleteMemberMembershipRequest{MemberMembershipID: assigned.Msg.MemberMembershipID}))
	require.NoError(t, err)
	_, err = c.members.DeleteMembership(ctx, connect.NewRequest(&api.DeleteMembershipRequest{MembershipID: planID}))
	require.NoError(t, err)
}

func TestAssignMembershipErrors(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	planID := saveMembership(t, c, "Flatrate", nil)

	_, err := c.members.AssignMembership(ctx, connect.NewRequest(&api.AssignMembershipRequest{MemberID: 9999, MembershipID: planID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = c.members.SaveMembership(ctx, connect.NewRequest(&api.SaveMembershipRequest{Membership: &api.Membership{Name: " "}}))
	assertCode(t, err, connect.CodeInvalidArgument)
}
