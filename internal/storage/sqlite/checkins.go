package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/bucketpos/internal/apperr"
	"github.com/mmynk/bucketpos/internal/ledger"
	"github.com/mmynk/bucketpos/internal/models"
)

// CheckIn records today's visit for a member and consumes one use from the
// entitlement ledger.SelectEntitlement picks. A member checks in at most
// once per local day.
func (s *SQLiteStore) CheckIn(ctx context.Context, memberID int64) (*models.CheckIn, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	member, err := getMember(ctx, tx, memberID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := ledger.Today(now)

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM member_checkins WHERE member_id = ? AND day = ?", memberID, today,
	).Scan(&exists)
	if err == nil {
		return nil, apperr.Conflict("member already checked in today")
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check existing check-in: %w", err)
	}

	candidates, err := entitlementCandidates(ctx, tx, memberID)
	if err != nil {
		return nil, err
	}
	chosen, ok := ledger.SelectEntitlement(candidates, today)
	if !ok {
		return nil, apperr.NotFound("no active membership")
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO member_checkins (member_id, membership_id, member_membership_id, day, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, memberID, chosen.MembershipID, chosen.ID, today, now.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.KindConflict, "member already checked in today", err)
		}
		return nil, fmt.Errorf("failed to insert check-in: %w", err)
	}
	checkInID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in id: %w", err)
	}

	if chosen.RemainingUses != nil {
		if _, err := tx.ExecContext(ctx,
			"UPDATE member_memberships SET remaining_uses = ? WHERE id = ?",
			*ledger.ConsumeUse(chosen.RemainingUses), chosen.ID,
		); err != nil {
			return nil, fmt.Errorf("failed to consume membership use: %w", err)
		}
	}

	var membershipName string
	if err := tx.QueryRowContext(ctx,
		"SELECT name FROM memberships WHERE id = ?", chosen.MembershipID,
	).Scan(&membershipName); err != nil {
		return nil, fmt.Errorf("failed to get membership name: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.CheckIn{
		ID:                 checkInID,
		MemberID:           memberID,
		MemberName:         member.FullName(),
		MembershipID:       &chosen.MembershipID,
		MembershipName:     &membershipName,
		MemberMembershipID: &chosen.ID,
		Day:                today,
		CreatedAt:          now.Unix(),
	}, nil
}

// DeleteCheckIn reverses a check-in. When the entitlement it drew from
// still exists, its use is given back, capped at the plan's current maximum.
func (s *SQLiteStore) DeleteCheckIn(ctx context.Context, checkInID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var memberMembershipID sql.NullInt64
	err = tx.QueryRowContext(ctx,
		"SELECT member_membership_id FROM member_checkins WHERE id = ?", checkInID,
	).Scan(&memberMembershipID)
	if err == sql.ErrNoRows {
		return apperr.NotFound("check-in not found: %d", checkInID)
	}
	if err != nil {
		return fmt.Errorf("failed to get check-in: %w", err)
	}

	if memberMembershipID.Valid {
		if err := restoreUse(ctx, tx, memberMembershipID.Int64); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM member_checkins WHERE id = ?", checkInID); err != nil {
		return fmt.Errorf("failed to delete check-in: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListCheckInsToday returns today's check-ins, newest first.
func (s *SQLiteStore) ListCheckInsToday(ctx context.Context) ([]*models.CheckIn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.member_id, mb.first_name, mb.last_name, c.membership_id, m.name,
		       c.member_membership_id, c.day, c.created_at
		FROM member_checkins c
		JOIN members mb ON mb.id = c.member_id
		LEFT JOIN memberships m ON m.id = c.membership_id
		WHERE c.day = ?
		ORDER BY c.created_at DESC, c.id DESC
	`, s.today())
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	defer rows.Close()

	var checkIns []*models.CheckIn
	for rows.Next() {
		var (
			c                                models.CheckIn
			member                           models.Member
			membershipID, memberMembershipID sql.NullInt64
			membershipName                   sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.MemberID, &member.FirstName, &member.LastName, &membershipID,
			&membershipName, &memberMembershipID, &c.Day, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		c.MemberName = member.FullName()
		c.MembershipID = int64Ptr(membershipID)
		c.MembershipName = stringPtr(membershipName)
		c.MemberMembershipID = int64Ptr(memberMembershipID)
		checkIns = append(checkIns, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate check-ins: %w", err)
	}
	return checkIns, nil
}

func entitlementCandidates(ctx context.Context, tx *sql.Tx, memberID int64) ([]ledger.Candidate, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, membership_id, remaining_uses, end_date, created_at
		FROM member_memberships
		WHERE member_id = ?
	`, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}
	defer rows.Close()

	var candidates []ledger.Candidate
	for rows.Next() {
		var (
			c         ledger.Candidate
			remaining sql.NullInt64
			endDate   sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.MembershipID, &remaining, &endDate, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entitlement: %w", err)
		}
		c.RemainingUses = int64Ptr(remaining)
		c.EndDate = stringPtr(endDate)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entitlements: %w", err)
	}
	return candidates, nil
}

func restoreUse(ctx context.Context, tx *sql.Tx, memberMembershipID int64) error {
	var remaining, maxUses sql.NullInt64
	err := tx.QueryRowContext(ctx, `
		SELECT mm.remaining_uses, m.max_uses
		FROM member_memberships mm
		JOIN memberships m ON m.id = mm.membership_id
		WHERE mm.id = ?
	`, memberMembershipID).Scan(&remaining, &maxUses)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get entitlement: %w", err)
	}
	if !remaining.Valid {
		return nil
	}

	restored := ledger.RestoreUse(int64Ptr(remaining), int64Ptr(maxUses))
	if _, err := tx.ExecContext(ctx,
		"UPDATE member_memberships SET remaining_uses = ? WHERE id = ?", *restored, memberMembershipID,
	); err != nil {
		return fmt.Errorf("failed to restore membership use: %w", err)
	}
	return nil
}
