package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestEndDate(t *testing.T) {
	start := time.Date(2024, time.February, 27, 10, 0, 0, 0, time.Local)

	assert.Nil(t, EndDate(start, nil))
	require.NotNil(t, EndDate(start, ptr(int64(3))))
	assert.Equal(t, "2024-03-01", *EndDate(start, ptr(int64(3))))
	assert.Equal(t, "2024-02-27", *EndDate(start, ptr(int64(0))))
}

func TestUsable(t *testing.T) {
	today := "2024-05-10"

	assert.True(t, Usable(Candidate{}, today), "unlimited and open-ended")
	assert.True(t, Usable(Candidate{RemainingUses: ptr(int64(1)), EndDate: ptr(today)}, today), "expires today")
	assert.False(t, Usable(Candidate{RemainingUses: ptr(int64(0))}, today), "used up")
	assert.False(t, Usable(Candidate{EndDate: ptr("2024-05-09")}, today), "expired yesterday")
}

func TestSelectEntitlement(t *testing.T) {
	today := "2024-05-10"

	t.Run("expiring preferred over open-ended", func(t *testing.T) {
		got, ok := SelectEntitlement([]Candidate{
			{ID: 1, CreatedAt: 100},
			{ID: 2, EndDate: ptr("2024-05-13"), CreatedAt: 200},
		}, today)
		require.True(t, ok)
		assert.Equal(t, int64(2), got.ID)
	})

	t.Run("earliest end date first", func(t *testing.T) {
		got, ok := SelectEntitlement([]Candidate{
			{ID: 1, EndDate: ptr("2024-06-01"), CreatedAt: 100},
			{ID: 2, EndDate: ptr("2024-05-20"), CreatedAt: 200},
		}, today)
		require.True(t, ok)
		assert.Equal(t, int64(2), got.ID)
	})

	t.Run("oldest grant breaks ties", func(t *testing.T) {
		got, ok := SelectEntitlement([]Candidate{
			{ID: 5, RemainingUses: ptr(int64(3)), CreatedAt: 300},
			{ID: 4, RemainingUses: ptr(int64(3)), CreatedAt: 100},
		}, today)
		require.True(t, ok)
		assert.Equal(t, int64(4), got.ID)
	})

	t.Run("skips unusable", func(t *testing.T) {
		got, ok := SelectEntitlement([]Candidate{
			{ID: 1, RemainingUses: ptr(int64(0)), EndDate: ptr("2024-05-11")},
			{ID: 2, EndDate: ptr("2024-05-01")},
			{ID: 3, RemainingUses: ptr(int64(2))},
		}, today)
		require.True(t, ok)
		assert.Equal(t, int64(3), got.ID)
	})

	t.Run("none usable", func(t *testing.T) {
		_, ok := SelectEntitlement([]Candidate{{ID: 1, RemainingUses: ptr(int64(0))}}, today)
		assert.False(t, ok)
	})
}

func TestConsumeAndRestoreUse(t *testing.T) {
	assert.Nil(t, ConsumeUse(nil))
	assert.Equal(t, int64(4), *ConsumeUse(ptr(int64(5))))
	assert.Equal(t, int64(0), *ConsumeUse(ptr(int64(0))), "never negative")

	assert.Nil(t, RestoreUse(nil, ptr(int64(10))))
	assert.Equal(t, int64(5), *RestoreUse(ptr(int64(4)), ptr(int64(10))))
	assert.Equal(t, int64(10), *RestoreUse(ptr(int64(10)), ptr(int64(10))), "capped at plan max")
	assert.Equal(t, int64(3), *RestoreUse(ptr(int64(5)), ptr(int64(3))), "lowered cap wins")
	assert.Equal(t, int64(8), *RestoreUse(ptr(int64(7)), nil), "no cap on plan")

	remaining := ptr(int64(10))
	for i := 0; i < 3; i++ {
		remaining = RestoreUse(ConsumeUse(remaining), ptr(int64(10)))
	}
	assert.Equal(t, int64(10), *remaining)
	assert.Equal(t, int64(10), *RestoreUse(RestoreUse(ConsumeUse(remaining), ptr(int64(10))), ptr(int64(10))))
}
