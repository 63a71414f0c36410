package models

// MemberStatusActive is the default member status.
const MemberStatusActive = "active"

// Member is a customer with a running account balance.
// BalanceCents may be negative; it is drawn down at checkout.
type Member struct {
	ID           int64   `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	BalanceCents int64   `json:"balanceCents"`
	CreatedAt    int64   `json:"createdAt"`
	UpdatedAt    int64   `json:"updatedAt"`
}

// FullName joins first and last name.
func (m *Member) FullName() string {
	switch {
	case m.FirstName == "":
		return m.LastName
	case m.LastName == "":
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

// Membership is a plan template. A nil MaxUses means unlimited uses and a
// nil DurationDays means entitlements never expire.
type Membership struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	PriceCents   *int64  `json:"priceCents,omitempty"`
	DurationDays *int64  `json:"durationDays,omitempty"`
	MaxUses      *int64  `json:"maxUses,omitempty"`
	CreatedAt    int64   `json:"createdAt"`
	UpdatedAt    int64   `json:"updatedAt"`
}

// MemberMembership is an entitlement: one member's instance of a plan with
// its own usage and time budget.
type MemberMembership struct {
	ID             int64   `json:"id"`
	MemberID       int64   `json:"memberId"`
	MembershipID   int64   `json:"membershipId"`
	MembershipName string  `json:"membershipName"`
	RemainingUses  *int64  `json:"remainingUses,omitempty"`
	StartDate      string  `json:"startDate"`
	EndDate        *string `json:"endDate,omitempty"`
	CreatedAt      int64   `json:"createdAt"`
}

// CheckIn is one recorded visit. MemberMembershipID is cleared when the
// entitlement it drew from is deleted; the check-in survives as history.
type CheckIn struct {
	ID                 int64   `json:"id"`
	MemberID           int64   `json:"memberId"`
	MemberName         string  `json:"memberName"`
	MembershipID       *int64  `json:"membershipId,omitempty"`
	MembershipName     *string `json:"membershipName,omitempty"`
	MemberMembershipID *int64  `json:"memberMembershipId,omitempty"`
	Day                string  `json:"day"`
	CreatedAt          int64   `json:"createdAt"`
}
