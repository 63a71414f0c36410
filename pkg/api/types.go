// Package api defines the wire messages of the point-of-sale RPC services.
//
// Messages are plain structs carried by Codec as JSON. Money fields are
// integer cents, timestamps are Unix seconds, and dates are "2006-01-02".
package api

type Bucket struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	CreatedAt  int64  `json:"createdAt"`
	UpdatedAt  int64  `json:"updatedAt"`
	ItemCount  int64  `json:"itemCount"`
	TotalCents int64  `json:"totalCents"`
}

type BucketItem struct {
	ID             int64   `json:"id"`
	BucketID       int64   `json:"bucketId"`
	ProductID      int64   `json:"productId"`
	ProductName    string  `json:"productName"`
	Quantity       int64   `json:"quantity"`
	PriceCents     int64   `json:"priceCents"`
	LineTotalCents int64   `json:"lineTotalCents"`
	Accent         *string `json:"accent,omitempty"`
	Icon           *string `json:"icon,omitempty"`
	Note           *string `json:"note,omitempty"`
}

type Product struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	PriceCents      int64   `json:"priceCents"`
	Accent          *string `json:"accent,omitempty"`
	Icon            *string `json:"icon,omitempty"`
	Note            *string `json:"note,omitempty"`
	ProductTypeID   *int64  `json:"productTypeId,omitempty"`
	ProductTypeName *string `json:"productTypeName,omitempty"`
}

type ProductType struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Color     *string `json:"color,omitempty"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
}

type Transaction struct {
	ID          int64   `json:"id"`
	ProductID   *int64  `json:"productId,omitempty"`
	Quantity    int64   `json:"quantity"`
	TotalCents  int64   `json:"totalCents"`
	Description *string `json:"description,omitempty"`
	CreatedAt   int64   `json:"createdAt"`
}

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

// Membership is a plan template. Nil limits mean unlimited.
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

// MemberMembership is one member's entitlement from a plan.
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

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	RoleID      int64  `json:"roleId"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

type Settings struct {
	DBLocation    string `json:"dbLocation"`
	Language      string `json:"language"`
	Currency      string `json:"currency"`
	AutoUpdates   bool   `json:"autoUpdates"`
	EnableBackups bool   `json:"enableBackups"`
}
