package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/bucketpos/internal/apperr"
	"github.com/mmynk/bucketpos/internal/ledger"
	"github.com/mmynk/bucketpos/internal/models"
)

// ListMemberMemberships lists entitlements with their plan names, newest
// first. A memberID of 0 lists the entitlements of all members.
func (s *SQLiteStore) ListMemberMemberships(ctx context.Context, memberID int64) ([]*models.MemberMembership, error) {
	query := `
		SELECT mm.id, mm.member_id, mm.membership_id, m.name, mm.remaining_uses,
		       mm.start_date, mm.end_date, mm.created_at
		FROM member_memberships mm
		JOIN memberships m ON m.id = mm.membership_id`
	var args []any
	if memberID != 0 {
		query += " WHERE mm.member_id = ?"
		args = append(args, memberID)
	}
	query += " ORDER BY mm.created_at DESC, mm.id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list member memberships: %w", err)
	}
	defer rows.Close()

	var entitlements []*models.MemberMembership
	for rows.Next() {
		var (
			mm        models.MemberMembership
			remaining sql.NullInt64
			endDate   sql.NullString
		)
		if err := rows.Scan(&mm.ID, &mm.MemberID, &mm.MembershipID, &mm.MembershipName, &remaining,
			&mm.StartDate, &endDate, &mm.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member membership: %w", err)
		}
		mm.RemainingUses = int64Ptr(remaining)
		mm.EndDate = stringPtr(endDate)
		entitlements = append(entitlements, &mm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate member memberships: %w", err)
	}
	return entitlements, nil
}

// AssignMembership grants a member a fresh entitlement from a plan. It
// starts today with the plan's full use budget.
func (s *SQLiteStore) AssignMembership(ctx context.Context, memberID, membershipID int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := getMember(ctx, tx, memberID); err != nil {
		return 0, err
	}

	var duration, maxUses sql.NullInt64
	err = tx.QueryRowContext(ctx,
		"SELECT duration_days, max_uses FROM memberships WHERE id = ?", membershipID,
	).Scan(&duration, &maxUses)
	if err == sql.ErrNoRows {
		return 0, apperr.NotFound("membership not found: %d", membershipID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get membership: %w", err)
	}

	now := s.now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO member_memberships (member_id, membership_id, remaining_uses, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, memberID, membershipID, maxUses, ledger.Today(now),
		nullString(ledger.EndDate(now, int64Ptr(duration))), now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to insert member membership: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get member membership id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// DeleteMemberMembership removes an entitlement. Check-ins drawn from it
// are kept with their entitlement reference cleared.
func (s *SQLiteStore) DeleteMemberMembership(ctx context.Context, memberMembershipID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM member_memberships WHERE id = ?", memberMembershipID)
	if err != nil {
		return fmt.Errorf("failed to delete member membership: %w", err)
	}
	return requireAffected(res, "member membership", memberMembershipID)
}
