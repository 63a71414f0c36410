package service

import (
	"github.com/mmynk/bucketpos/internal/models"
	"github.com/mmynk/bucketpos/pkg/api"
)

// convertAll maps a slice of domain records to wire messages.
func convertAll[M any, W any](in []*M, convert func(*M) *W) []*W {
	out := make([]*W, len(in))
	for i, m := range in {
		out[i] = convert(m)
	}
	return out
}

func bucketToAPI(b *models.Bucket) *api.Bucket {
	return &api.Bucket{
		ID:         b.ID,
		Name:       b.Name,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
		ItemCount:  b.ItemCount,
		TotalCents: b.TotalCents,
	}
}

func bucketItemToAPI(item *models.BucketItem) *api.BucketItem {
	return &api.BucketItem{
		ID:             item.ID,
		BucketID:       item.BucketID,
		ProductID:      item.ProductID,
		ProductName:    item.ProductName,
		Quantity:       item.Quantity,
		PriceCents:     item.PriceCents,
		LineTotalCents: item.LineTotalCents,
		Accent:         item.Accent,
		Icon:           item.Icon,
		Note:           item.Note,
	}
}

func productToAPI(p *models.Product) *api.Product {
	return &api.Product{
		ID:              p.ID,
		Name:            p.Name,
		PriceCents:      p.PriceCents,
		Accent:          p.Accent,
		Icon:            p.Icon,
		Note:            p.Note,
		ProductTypeID:   p.ProductTypeID,
		ProductTypeName: p.ProductTypeName,
	}
}

func productFromAPI(p *api.Product) *models.Product {
	return &models.Product{
		ID:            p.ID,
		Name:          p.Name,
		PriceCents:    p.PriceCents,
		Accent:        p.Accent,
		Icon:          p.Icon,
		Note:          p.Note,
		ProductTypeID: p.ProductTypeID,
	}
}

func productTypeToAPI(pt *models.ProductType) *api.ProductType {
	return &api.ProductType{
		ID:        pt.ID,
		Name:      pt.Name,
		Color:     pt.Color,
		CreatedAt: pt.CreatedAt,
		UpdatedAt: pt.UpdatedAt,
	}
}

func productTypeFromAPI(pt *api.ProductType) *models.ProductType {
	return &models.ProductType{ID: pt.ID, Name: pt.Name, Color: pt.Color}
}

func transactionToAPI(t *models.Transaction) *api.Transaction {
	return &api.Transaction{
		ID:          t.ID,
		ProductID:   t.ProductID,
		Quantity:    t.Quantity,
		TotalCents:  t.TotalCents,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

func memberToAPI(m *models.Member) *api.Member {
	return &api.Member{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Phone:        m.Phone,
		Status:       m.Status,
		Notes:        m.Notes,
		BalanceCents: m.BalanceCents,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func memberFromAPI(m *api.Member) *models.Member {
	return &models.Member{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Phone:        m.Phone,
		Status:       m.Status,
		Notes:        m.Notes,
		BalanceCents: m.BalanceCents,
	}
}

func membershipToAPI(m *models.Membership) *api.Membership {
	return &api.Membership{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		PriceCents:   m.PriceCents,
		DurationDays: m.DurationDays,
		MaxUses:      m.MaxUses,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func membershipFromAPI(m *api.Membership) *models.Membership {
	return &models.Membership{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		PriceCents:   m.PriceCents,
		DurationDays: m.DurationDays,
		MaxUses:      m.MaxUses,
	}
}

func memberMembershipToAPI(mm *models.MemberMembership) *api.MemberMembership {
	return &api.MemberMembership{
		ID:             mm.ID,
		MemberID:       mm.MemberID,
		MembershipID:   mm.MembershipID,
		MembershipName: mm.MembershipName,
		RemainingUses:  mm.RemainingUses,
		StartDate:      mm.StartDate,
		EndDate:        mm.EndDate,
		CreatedAt:      mm.CreatedAt,
	}
}

func checkInToAPI(c *models.CheckIn) *api.CheckIn {
	return &api.CheckIn{
		ID:                 c.ID,
		MemberID:           c.MemberID,
		MemberName:         c.MemberName,
		MembershipID:       c.MembershipID,
		MembershipName:     c.MembershipName,
		MemberMembershipID: c.MemberMembershipID,
		Day:                c.Day,
		CreatedAt:          c.CreatedAt,
	}
}

func roleToAPI(r *models.Role) *api.Role {
	return &api.Role{ID: r.ID, Name: r.Name}
}

// userToAPI never carries the password hash.
func userToAPI(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		RoleID:      u.RoleID,
		Role:        u.Role,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func userFromAPI(u *api.User, passwordHash string) *models.User {
	return &models.User{
		ID:           u.ID,
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		RoleID:       u.RoleID,
		Active:       u.Active,
		PasswordHash: passwordHash,
	}
}
