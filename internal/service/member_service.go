package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/internal/metrics"
	"github.com/mmynk/bucketpos/internal/storage"
	"github.com/mmynk/bucketpos/pkg/api"
)

// MemberService implements the Connect MemberService: members, membership
// plans, entitlements and daily check-ins.
type MemberService struct {
	members storage.MemberStore
	ledger  storage.LedgerStore
}

// NewMemberService creates a MemberService. Both stores are usually the
// same SQLite store.
func NewMemberService(members storage.MemberStore, ledger storage.LedgerStore) *MemberService {
	return &MemberService{members: members, ledger: ledger}
}

func (s *MemberService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	slog.Info("ListMembers request received")

	members, err := s.members.ListMembers(ctx)
	if err != nil {
		slog.Error("ListMembers failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListMembersResponse{Members: convertAll(members, memberToAPI)}), nil
}

// SaveMember inserts or updates a member. The balance is only taken on insert.
func (s *MemberService) SaveMember(ctx context.Context, req *connect.Request[api.SaveMemberRequest]) (*connect.Response[api.SaveMemberResponse], error) {
	if req.Msg.Member == nil {
		return nil, required("member")
	}
	slog.Info("SaveMember request received", "member_id", req.Msg.Member.ID)

	id, err := s.members.SaveMember(ctx, memberFromAPI(req.Msg.Member))
	if err != nil {
		slog.Error("SaveMember failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.SaveMemberResponse{ID: id}), nil
}

func (s *MemberService) DeleteMember(ctx context.Context, req *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.DeleteMemberResponse], error) {
	slog.Info("DeleteMember request received", "member_id", req.Msg.MemberID)

	if err := s.members.DeleteMember(ctx, req.Msg.MemberID); err != nil {
		slog.Error("DeleteMember failed", "member_id", req.Msg.MemberID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Member deleted", "member_id", req.Msg.MemberID)
	return connect.NewResponse(&api.DeleteMemberResponse{}), nil
}

func (s *MemberService) ListMemberships(ctx context.Context, req *connect.Request[api.ListMembershipsRequest]) (*connect.Response[api.ListMembershipsResponse], error) {
	slog.Info("ListMemberships request received")

	memberships, err := s.members.ListMemberships(ctx)
	if err != nil {
		slog.Error("ListMemberships failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListMembershipsResponse{Memberships: convertAll(memberships, membershipToAPI)}), nil
}

func (s *MemberService) SaveMembership(ctx context.Context, req *connect.Request[api.SaveMembershipRequest]) (*connect.Response[api.SaveMembershipResponse], error) {
	if req.Msg.Membership == nil {
		return nil, required("membership")
	}
	slog.Info("SaveMembership request received", "membership_id", req.Msg.Membership.ID, "name", req.Msg.Membership.Name)

	id, err := s.members.SaveMembership(ctx, membershipFromAPI(req.Msg.Membership))
	if err != nil {
		slog.Error("SaveMembership failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.SaveMembershipResponse{ID: id}), nil
}

func (s *MemberService) DeleteMembership(ctx context.Context, req *connect.Request[api.DeleteMembershipRequest]) (*connect.Response[api.DeleteMembershipResponse], error) {
	slog.Info("DeleteMembership request received", "membership_id", req.Msg.MembershipID)

	if err := s.members.DeleteMembership(ctx, req.Msg.MembershipID); err != nil {
		slog.Error("DeleteMembership failed", "membership_id", req.Msg.MembershipID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteMembershipResponse{}), nil
}

func (s *MemberService) ListMemberMemberships(ctx context.Context, req *connect.Request[api.ListMemberMembershipsRequest]) (*connect.Response[api.ListMemberMembershipsResponse], error) {
	slog.Info("ListMemberMemberships request received", "member_id", req.Msg.MemberID)

	list, err := s.ledger.ListMemberMemberships(ctx, req.Msg.MemberID)
	if err != nil {
		slog.Error("ListMemberMemberships failed", "member_id", req.Msg.MemberID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListMemberMembershipsResponse{MemberMemberships: convertAll(list, memberMembershipToAPI)}), nil
}

// AssignMembership grants a member an entitlement from a plan, starting today.
func (s *MemberService) AssignMembership(ctx context.Context, req *connect.Request[api.AssignMembershipRequest]) (*connect.Response[api.AssignMembershipResponse], error) {
	slog.Info("AssignMembership request received", "member_id", req.Msg.MemberID, "membership_id", req.Msg.MembershipID)

	id, err := s.ledger.AssignMembership(ctx, req.Msg.MemberID, req.Msg.MembershipID)
	if err != nil {
		slog.Error("AssignMembership failed", "member_id", req.Msg.MemberID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Membership assigned", "member_id", req.Msg.MemberID, "member_membership_id", id)
	return connect.NewResponse(&api.AssignMembershipResponse{MemberMembershipID: id}), nil
}

func (s *MemberService) DeleteMemberMembership(ctx context.Context, req *connect.Request[api.DeleteMemberMembershipRequest]) (*connect.Response[api.DeleteMemberMembershipResponse], error) {
	slog.Info("DeleteMemberMembership request received", "member_membership_id", req.Msg.MemberMembershipID)

	if err := s.ledger.DeleteMemberMembership(ctx, req.Msg.MemberMembershipID); err != nil {
		slog.Error("DeleteMemberMembership failed", "member_membership_id", req.Msg.MemberMembershipID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteMemberMembershipResponse{}), nil
}

// CheckIn records today's visit and consumes one use of the best entitlement.
func (s *MemberService) CheckIn(ctx context.Context, req *connect.Request[api.CheckInRequest]) (*connect.Response[api.CheckInResponse], error) {
	slog.Info("CheckIn request received", "member_id", req.Msg.MemberID)

	checkIn, err := s.ledger.CheckIn(ctx, req.Msg.MemberID)
	if err != nil {
		slog.Error("CheckIn failed", "member_id", req.Msg.MemberID, "error", err)
		return nil, toConnectError(err)
	}

	metrics.RecordCheckIn()
	slog.Info("Member checked in",
		"member_id", checkIn.MemberID,
		"check_in_id", checkIn.ID,
		"member_membership_id", checkIn.MemberMembershipID,
	)
	return connect.NewResponse(&api.CheckInResponse{CheckIn: checkInToAPI(checkIn)}), nil
}

// DeleteCheckIn reverses a check-in and gives the consumed use back.
func (s *MemberService) DeleteCheckIn(ctx context.Context, req *connect.Request[api.DeleteCheckInRequest]) (*connect.Response[api.DeleteCheckInResponse], error) {
	slog.Info("DeleteCheckIn request received", "check_in_id", req.Msg.CheckInID)

	if err := s.ledger.DeleteCheckIn(ctx, req.Msg.CheckInID); err != nil {
		slog.Error("DeleteCheckIn failed", "check_in_id", req.Msg.CheckInID, "error", err)
		return nil, toConnectError(err)
	}

	metrics.RecordCheckInReversal()
	return connect.NewResponse(&api.DeleteCheckInResponse{}), nil
}

func (s *MemberService) ListCheckInsToday(ctx context.Context, req *connect.Request[api.ListCheckInsTodayRequest]) (*connect.Response[api.ListCheckInsTodayResponse], error) {
	slog.Info("ListCheckInsToday request received")

	checkIns, err := s.ledger.ListCheckInsToday(ctx)
	if err != nil {
		slog.Error("ListCheckInsToday failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListCheckInsTodayResponse{CheckIns: convertAll(checkIns, checkInToAPI)}), nil
}
