package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mmynk/bucketpos/internal/apperr"
	"github.com/mmynk/bucketpos/internal/models"
)

const memberColumns = `id, first_name, last_name, email, phone, status, notes, balance_cents, created_at, updated_at
	FROM members`

func scanMember(row interface{ Scan(...any) error }) (*models.Member, error) {
	var (
		m                   models.Member
		email, phone, notes sql.NullString
	)
	if err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &email, &phone, &m.Status, &notes,
		&m.BalanceCents, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Email = stringPtr(email)
	m.Phone = stringPtr(phone)
	m.Notes = stringPtr(notes)
	return &m, nil
}

// ListMembers returns members ordered by last name, then first name.
func (s *SQLiteStore) ListMembers(ctx context.Context) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+memberColumns+" ORDER BY last_name COLLATE NOCASE, first_name COLLATE NOCASE, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

func (s *SQLiteStore) GetMember(ctx context.Context, memberID int64) (*models.Member, error) {
	return getMember(ctx, s.db, memberID)
}

func getMember(ctx context.Context, q queryer, memberID int64) (*models.Member, error) {
	m, err := scanMember(q.QueryRowContext(ctx, "SELECT "+memberColumns+" WHERE id = ?", memberID))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("member not found: %d", memberID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

// SaveMember inserts or updates a member, including the balance. Checkout
// debits the balance separately inside its own transaction.
func (s *SQLiteStore) SaveMember(ctx context.Context, member *models.Member) (int64, error) {
	first := strings.TrimSpace(member.FirstName)
	last := strings.TrimSpace(member.LastName)
	if first == "" && last == "" {
		return 0, apperr.InvalidInput("member name is required")
	}
	status := strings.TrimSpace(member.Status)
	if status == "" {
		status = models.MemberStatusActive
	}
	now := s.now().Unix()

	if member.ID == 0 {
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO members (first_name, last_name, email, phone, status, notes, balance_cents, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, first, last, nullString(member.Email), nullString(member.Phone), status, nullString(member.Notes),
			member.BalanceCents, now, now)
		if err != nil {
			return 0, fmt.Errorf("failed to insert member: %w", err)
		}
		return res.LastInsertId()
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE members
		SET first_name = ?, last_name = ?, email = ?, phone = ?, status = ?, notes = ?, balance_cents = ?, updated_at = ?
		WHERE id = ?
	`, first, last, nullString(member.Email), nullString(member.Phone), status, nullString(member.Notes),
		member.BalanceCents, now, member.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update member: %w", err)
	}
	if err := requireAffected(res, "member", member.ID); err != nil {
		return 0, err
	}
	return member.ID, nil
}

// DeleteMember removes a member with their entitlements and check-ins.
func (s *SQLiteStore) DeleteMember(ctx context.Context, memberID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM members WHERE id = ?", memberID)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return requireAffected(res, "member", memberID)
}

// ListMemberships returns the plan templates, newest first.
func (s *SQLiteStore) ListMemberships(ctx context.Context) ([]*models.Membership, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, price_cents, duration_days, max_uses, created_at, updated_at
		FROM memberships
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*models.Membership
	for rows.Next() {
		var (
			m                        models.Membership
			description              sql.NullString
			price, duration, maxUses sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &m.Name, &description, &price, &duration, &maxUses,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		m.Description = stringPtr(description)
		m.PriceCents = int64Ptr(price)
		m.DurationDays = int64Ptr(duration)
		m.MaxUses = int64Ptr(maxUses)
		memberships = append(memberships, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}
	return memberships, nil
}

// SaveMembership inserts or updates a plan template. Changing MaxUses does
// not rewrite existing entitlements; it only caps future restores. Switching
// a plan between limited and unlimited uses is rejected while any member
// holds it.
func (s *SQLiteStore) SaveMembership(ctx context.Context, membership *models.Membership) (int64, error) {
	name := strings.TrimSpace(membership.Name)
	if name == "" {
		return 0, apperr.InvalidInput("membership name is required")
	}
	for _, f := range []struct {
		name  string
		value *int64
	}{
		{"price", membership.PriceCents},
		{"duration", membership.DurationDays},
		{"max uses", membership.MaxUses},
	} {
		if f.value != nil && *f.value < 0 {
			return 0, apperr.InvalidInput("membership %s must not be negative", f.name)
		}
	}
	now := s.now().Unix()

	if membership.ID == 0 {
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO memberships (name, description, price_cents, duration_days, max_uses, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, name, nullString(membership.Description), nullInt64(membership.PriceCents),
			nullInt64(membership.DurationDays), nullInt64(membership.MaxUses), now, now)
		if err != nil {
			return 0, fmt.Errorf("failed to insert membership: %w", err)
		}
		return res.LastInsertId()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current sql.NullInt64
	err = tx.QueryRowContext(ctx, "SELECT max_uses FROM memberships WHERE id = ?", membership.ID).Scan(&current)
	if err == sql.ErrNoRows {
		return 0, apperr.NotFound("membership not found: %d", membership.ID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get membership: %w", err)
	}
	if current.Valid != (membership.MaxUses != nil) {
		var held int64
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM member_memberships WHERE membership_id = ?", membership.ID,
		).Scan(&held); err != nil {
			return 0, fmt.Errorf("failed to count entitlements: %w", err)
		}
		if held > 0 {
			return 0, apperr.InvalidState("membership is assigned to members; cannot switch between limited and unlimited uses")
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE memberships
		SET name = ?, description = ?, price_cents = ?, duration_days = ?, max_uses = ?, updated_at = ?
		WHERE id = ?
	`, name, nullString(membership.Description), nullInt64(membership.PriceCents),
		nullInt64(membership.DurationDays), nullInt64(membership.MaxUses), now, membership.ID); err != nil {
		return 0, fmt.Errorf("failed to update membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return membership.ID, nil
}

// DeleteMembership removes a plan template that no member holds.
func (s *SQLiteStore) DeleteMembership(ctx context.Context, membershipID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM memberships WHERE id = ?", membershipID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.InvalidState("membership is assigned to members")
		}
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return requireAffected(res, "membership", membershipID)
}
