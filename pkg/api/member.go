package api

type ListMembersRequest struct{}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

// SaveMemberRequest inserts when Member.ID is 0. BalanceCents is only
// honored on insert.
type SaveMemberRequest struct {
	Member *Member `json:"member"`
}

type SaveMemberResponse struct {
	ID int64 `json:"id"`
}

type DeleteMemberRequest struct {
	MemberID int64 `json:"memberId"`
}

type DeleteMemberResponse struct{}

type ListMembershipsRequest struct{}

type ListMembershipsResponse struct {
	Memberships []*Membership `json:"memberships"`
}

type SaveMembershipRequest struct {
	Membership *Membership `json:"membership"`
}

type SaveMembershipResponse struct {
	ID int64 `json:"id"`
}

type DeleteMembershipRequest struct {
	MembershipID int64 `json:"membershipId"`
}

type DeleteMembershipResponse struct{}

// ListMemberMembershipsRequest lists all entitlements when MemberID is 0.
type ListMemberMembershipsRequest struct {
	MemberID int64 `json:"memberId,omitempty"`
}

type ListMemberMembershipsResponse struct {
	MemberMemberships []*MemberMembership `json:"memberMemberships"`
}

type AssignMembershipRequest struct {
	MemberID     int64 `json:"memberId"`
	MembershipID int64 `json:"membershipId"`
}

type AssignMembershipResponse struct {
	MemberMembershipID int64 `json:"memberMembershipId"`
}

type DeleteMemberMembershipRequest struct {
	MemberMembershipID int64 `json:"memberMembershipId"`
}

type DeleteMemberMembershipResponse struct{}

type CheckInRequest struct {
	MemberID int64 `json:"memberId"`
}

type CheckInResponse struct {
	CheckIn *CheckIn `json:"checkIn"`
}

type DeleteCheckInRequest struct {
	CheckInID int64 `json:"checkInId"`
}

type DeleteCheckInResponse struct{}

type ListCheckInsTodayRequest struct{}

type ListCheckInsTodayResponse struct {
	CheckIns []*CheckIn `json:"checkIns"`
}
