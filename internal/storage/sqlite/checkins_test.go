package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/bucketpos/internal/apperr"
	"github.com/mmynk/bucketpos/internal/models"
)

func createMembership(t *testing.T, store *SQLiteStore, name string, durationDays, maxUses *int64) int64 {
	t.Helper()
	id, err := store.SaveMembership(context.Background(), &models.Membership{
		Name:         name,
		DurationDays: durationDays,
		MaxUses:      maxUses,
	})
	require.NoError(t, err)
	return id
}

func entitlement(t *testing.T, store *SQLiteStore, memberID, id int64) *models.MemberMembership {
	t.Helper()
	list, err := store.ListMemberMemberships(context.Background(), memberID)
	require.NoError(t, err)
	for _, mm := range list {
		if mm.ID == id {
			return mm
		}
	}
	t.Fatalf("entitlement %d not found", id)
	return nil
}

func TestAssignMembership(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	memberID := createMember(t, store, "Ada", "Lovelace", 0)

	t.Run("copies the plan budget", func(t *testing.T) {
		planID := createMembership(t, store, "10er Karte", ptr(int64(30)), ptr(int64(10)))

		id, err := store.AssignMembership(ctx, memberID, planID)
		require.NoError(t, err)

		mm := entitlement(t, store, memberID, id)
		assert.Equal(t, "10er Karte", mm.MembershipName)
		require.NotNil(t, mm.RemainingUses)
		assert.Equal(t, int64(10), *mm.RemainingUses)
		assert.Equal(t, "2025-03-10", mm.StartDate)
		require.NotNil(t, mm.EndDate)
		assert.Equal(t, "2025-04-09", *mm.EndDate)
	})

	t.Run("open-ended unlimited plan", func(t *testing.T) {
		planID := createMembership(t, store, "Flatrate", nil, nil)

		id, err := store.AssignMembership(ctx, memberID, planID)
		require.NoError(t, err)

		mm := entitlement(t, store, memberID, id)
		assert.Nil(t, mm.RemainingUses)
		assert.Nil(t, mm.EndDate)
	})

	t.Run("missing plan or member is NotFound", func(t *testing.T) {
		planID := createMembership(t, store, "Single", nil, ptr(int64(1)))

		_, err := store.AssignMembership(ctx, memberID, 9999)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		_, err = store.AssignMembership(ctx, 9999, planID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("ListMemberMemberships with zero lists everyone", func(t *testing.T) {
		other := createMember(t, store, "Grace", "Hopper", 0)
		planID := createMembership(t, store, "Trial", nil, ptr(int64(1)))
		_, err := store.AssignMembership(ctx, other, planID)
		require.NoError(t, err)

		all, err := store.ListMemberMemberships(ctx, 0)
		require.NoError(t, err)
		mine, err := store.ListMemberMemberships(ctx, memberID)
		require.NoError(t, err)
		assert.Len(t, all, len(mine)+1)
	})
}

func TestCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("consumes one use per day", func(t *testing.T) {
		store, clock := newTestStore(t)
		memberID := createMember(t, store, "Ada", "Lovelace", 0)
		planID := createMembership(t, store, "3er Karte", nil, ptr(int64(3)))
		mmID, err := store.AssignMembership(ctx, memberID, planID)
		require.NoError(t, err)

		checkIn, err := store.CheckIn(ctx, memberID)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", checkIn.MemberName)
		assert.Equal(t, "2025-03-10", checkIn.Day)
		require.NotNil(t, checkIn.MemberMembershipID)
		assert.Equal(t, mmID, *checkIn.MemberMembershipID)
		require.NotNil(t, checkIn.MembershipName)
		assert.Equal(t, "3er Karte", *checkIn.MembershipName)
		assert.Equal(t, int64(2), *entitlement(t, store, memberID, mmID).RemainingUses)

		_, err = store.CheckIn(ctx, memberID)
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, int64(2), *entitlement(t, store, memberID, mmID).RemainingUses)
		today, err := store.ListCheckInsToday(ctx)
		require.NoError(t, err)
		assert.Len(t, today, 1)

		clock.advanceDays(1)
		_, err = store.CheckIn(ctx, memberID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), *entitlement(t, store, memberID, mmID).RemainingUses)
	})

	t.Run("prefers the expiring entitlement", func(t *testing.T) {
		store, _ := newTestStore(t)
		memberID := createMember(t, store, "Ada", "Lovelace", 0)

		unlimited := createMembership(t, store, "Flatrate", nil, nil)
		expiring := createMembership(t, store, "Monatskarte", ptr(int64(30)), ptr(int64(10)))
		_, err := store.AssignMembership(ctx, memberID, unlimited)
		require.NoError(t, err)
		expiringID, err := store.AssignMembership(ctx, memberID, expiring)
		require.NoError(t, err)

		checkIn, err := store.CheckIn(ctx, memberID)
		require.NoError(t, err)
		assert.Equal(t, expiringID, *checkIn.MemberMembershipID)
		assert.Equal(t, int64(9), *entitlement(t, store, memberID, expiringID).RemainingUses)
	})

	t.Run("unlimited entitlement stays unlimited", func(t *testing.T) {
		store, _ := newTestStore(t)
		memberID := createMember(t, store, "Ada", "Lovelace", 0)
		mmID, err := store.AssignMembership(ctx, memberID, createMembership(t, store, "Flatrate", nil, nil))
		require.NoError(t, err)

		_, err = store.CheckIn(ctx, memberID)
		require.NoError(t, err)
		assert.Nil(t, entitlement(t, store, memberID, mmID).RemainingUses)
	})

	t.Run("no usable entitlement is NotFound", func(t *testing.T) {
		store, clock := newTestStore(t)
		memberID := createMember(t, store, "Ada", "Lovelace", 0)

		_, err := store.CheckIn(ctx, memberID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		_, err = store.AssignMembership(ctx, memberID, createMembership(t, store, "Woche", ptr(int64(7)), nil))
		require.NoError(t, err)
		clock.advanceDays(8)

		_, err = store.CheckIn(ctx, memberID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.EqualError(t, err, "no active membership")
	})

	t.Run("exhausted entitlement is skipped", func(t *testing.T) {
		store, clock := newTestStore(t)
		memberID := createMember(t, store, "Ada", "Lovelace", 0)
		_, err := store.AssignMembership(ctx, memberID, createMembership(t, store, "Single", nil, ptr(int64(1))))
		require.NoError(t, err)

		_, err = store.CheckIn(ctx, memberID)
		require.NoError(t, err)

		clock.advanceDays(1)
		_, err = store.CheckIn(ctx, memberID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("missing member is NotFound", func(t *testing.T) {
		store, _ := newTestStore(t)
		_, err := store.CheckIn(ctx, 9999)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestDeleteCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("restores the consumed use", func(t *testing.T) {
		store, _ := newTestStore(t)
		memberID := createMember(t, store, "Ada", "Lovelace", 0)
		mmID, err := store.AssignMembership(ctx, memberID, createMembership(t, store, "3er Karte", nil, ptr(int64(3))))
		require.NoError(t, err)

		checkIn, err := store.CheckIn(ctx, memberID)
		require.NoError(t, err)
		require.NoError(t, store.DeleteCheckIn(ctx, checkIn.ID))
		assert.Equal(t, int64(3), *entitlement(t, store, memberID, mmID).RemainingUses)

		// The day is free again after the reversal.
		_, err = store.CheckIn(ctx, memberID)
		require.NoError(t, err)
	})

	t.Run("repeated check-in and reversal keeps the budget", func(t *testing.T) {
		store, _ := newTestStore(t)
		memberID := createMember(t, store, "Ada", "Lovelace", 0)
		mmID, err := store.AssignMembership(ctx, memberID, createMembership(t, store, "3er Karte", nil, ptr(int64(3))))
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			checkIn, err := store.CheckIn(ctx, memberID)
			require.NoError(t, err)
			assert.Equal(t, int64(2), *entitlement(t, store, memberID, mmID).RemainingUses)

			require.NoError(t, store.DeleteCheckIn(ctx, checkIn.ID))
			assert.Equal(t, int64(3), *entitlement(t, store, memberID, mmID).RemainingUses, "cycle %d", i+1)
		}

		today, err := store.ListCheckInsToday(ctx)
		require.NoError(t, err)
		assert.Empty(t, today)
	})

	t.Run("restore never exceeds the current plan cap", func(t *testing.T) {
		store, _ := newTestStore(t)
		memberID := createMember(t, store, "Ada", "Lovelace", 0)
		planID := createMembership(t, store, "3er Karte", nil, ptr(int64(3)))
		mmID, err := store.AssignMembership(ctx, memberID, planID)
		require.NoError(t, err)

		checkIn, err := store.CheckIn(ctx, memberID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), *entitlement(t, store, memberID, mmID).RemainingUses)

		_, err = store.SaveMembership(ctx, &models.Membership{ID: planID, Name: "3er Karte", MaxUses: ptr(int64(2))})
		require.NoError(t, err)

		require.NoError(t, store.DeleteCheckIn(ctx, checkIn.ID))
		assert.Equal(t, int64(2), *entitlement(t, store, memberID, mmID).RemainingUses)
	})

	t.Run("deleted entitlement leaves history", func(t *testing.T) {
		store, _ := newTestStore(t)
		memberID := createMember(t, store, "Ada", "Lovelace", 0)
		mmID, err := store.AssignMembership(ctx, memberID, createMembership(t, store, "Single", nil, ptr(int64(1))))
		require.NoError(t, err)
		checkIn, err := store.CheckIn(ctx, memberID)
		require.NoError(t, err)

		require.NoError(t, store.DeleteMemberMembership(ctx, mmID))
		assert.ErrorIs(t, store.DeleteMemberMembership(ctx, mmID), apperr.ErrNotFound)

		today, err := store.ListCheckInsToday(ctx)
		require.NoError(t, err)
		require.Len(t, today, 1)
		assert.Nil(t, today[0].MemberMembershipID)
		assert.Equal(t, "Ada Lovelace", today[0].MemberName)

		require.NoError(t, store.DeleteCheckIn(ctx, checkIn.ID))
	})

	t.Run("missing check-in is NotFound", func(t *testing.T) {
		store, _ := newTestStore(t)
		assert.ErrorIs(t, store.DeleteCheckIn(ctx, 9999), apperr.ErrNotFound)
	})

	t.Run("deleting a member cascades", func(t *testing.T) {
		store, _ := newTestStore(t)
		memberID := createMember(t, store, "Ada", "Lovelace", 0)
		_, err := store.AssignMembership(ctx, memberID, createMembership(t, store, "Flatrate", nil, nil))
		require.NoError(t, err)
		_, err = store.CheckIn(ctx, memberID)
		require.NoError(t, err)

		require.NoError(t, store.DeleteMember(ctx, memberID))

		entitlements, err := store.ListMemberMemberships(ctx, memberID)
		require.NoError(t, err)
		assert.Empty(t, entitlements)
		today, err := store.ListCheckInsToday(ctx)
		require.NoError(t, err)
		assert.Empty(t, today)
	})
}

func TestDeleteMembershipInUse(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	memberID := createMember(t, store, "Ada", "Lovelace", 0)
	planID := createMembership(t, store, "Flatrate", nil, nil)
	_, err := store.AssignMembership(ctx, memberID, planID)
	require.NoError(t, err)

	assert.ErrorIs(t, store.DeleteMembership(ctx, planID), apperr.ErrInvalidState)

	unused := createMembership(t, store, "Unused", nil, nil)
	require.NoError(t, store.DeleteMembership(ctx, unused))
	assert.ErrorIs(t, store.DeleteMembership(ctx, unused), apperr.ErrNotFound)
}

func TestSaveMembershipUsesKind(t *testing.T) {
	ctx := context.Background()

	t.Run("held plan cannot become unlimited", func(t *testing.T) {
		store, _ := newTestStore(t)
		memberID := createMember(t, store, "Ada", "Lovelace", 0)
		planID := createMembership(t, store, "3er Karte", nil, ptr(int64(3)))
		mmID, err := store.AssignMembership(ctx, memberID, planID)
		require.NoError(t, err)

		_, err = store.SaveMembership(ctx, &models.Membership{ID: planID, Name: "3er Karte"})
		assert.ErrorIs(t, err, apperr.ErrInvalidState)

		memberships, err := store.ListMemberships(ctx)
		require.NoError(t, err)
		require.Len(t, memberships, 1)
		require.NotNil(t, memberships[0].MaxUses)
		assert.Equal(t, int64(3), *memberships[0].MaxUses)
		assert.Equal(t, int64(3), *entitlement(t, store, memberID, mmID).RemainingUses)
	})

	t.Run("held plan cannot become limited", func(t *testing.T) {
		store, _ := newTestStore(t)
		memberID := createMember(t, store, "Ada", "Lovelace", 0)
		planID := createMembership(t, store, "Flatrate", nil, nil)
		_, err := store.AssignMembership(ctx, memberID, planID)
		require.NoError(t, err)

		_, err = store.SaveMembership(ctx, &models.Membership{ID: planID, Name: "Flatrate", MaxUses: ptr(int64(5))})
		assert.ErrorIs(t, err, apperr.ErrInvalidState)

		// Renaming without touching the uses kind is still fine.
		_, err = store.SaveMembership(ctx, &models.Membership{ID: planID, Name: "Flatrate Plus"})
		require.NoError(t, err)
	})

	t.Run("unheld plan may switch", func(t *testing.T) {
		store, _ := newTestStore(t)
		planID := createMembership(t, store, "Flatrate", nil, nil)

		_, err := store.SaveMembership(ctx, &models.Membership{ID: planID, Name: "10er Karte", MaxUses: ptr(int64(10))})
		require.NoError(t, err)
		_, err = store.SaveMembership(ctx, &models.Membership{ID: planID, Name: "Flatrate"})
		require.NoError(t, err)
	})

	t.Run("missing plan is NotFound", func(t *testing.T) {
		store, _ := newTestStore(t)
		_, err := store.SaveMembership(ctx, &models.Membership{ID: 9999, Name: "Ghost"})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
