package ledger

import (
	"sort"
	"time"

	"github.com/mmynk/bucketpos/internal/models"
)

// Candidate is the part of an entitlement the check-in selection looks at.
type Candidate struct {
	ID            int64
	MembershipID  int64
	RemainingUses *int64
	EndDate       *string
	CreatedAt     int64
}

// Today formats now as a local calendar date.
func Today(now time.Time) string {
	return now.Format(models.DateLayout)
}

// EndDate returns start plus durationDays, or nil when the plan never expires.
func EndDate(start time.Time, durationDays *int64) *string {
	if durationDays == nil {
		return nil
	}
	end := start.AddDate(0, 0, int(*durationDays)).Format(models.DateLayout)
	return &end
}

// Usable reports whether c has uses left and has not expired as of today.
func Usable(c Candidate, today string) bool {
	if c.RemainingUses != nil && *c.RemainingUses <= 0 {
		return false
	}
	if c.EndDate != nil && *c.EndDate < today {
		return false
	}
	return true
}

// SelectEntitlement picks the entitlement a check-in should consume.
// Entitlements that expire are preferred over open-ended ones, then the
// earliest end date wins, then the oldest grant.
func SelectEntitlement(candidates []Candidate, today string) (Candidate, bool) {
	usable := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if Usable(c, today) {
			usable = append(usable, c)
		}
	}
	if len(usable) == 0 {
		return Candidate{}, false
	}

	sort.SliceStable(usable, func(i, j int) bool {
		a, b := usable[i], usable[j]
		if (a.EndDate == nil) != (b.EndDate == nil) {
			return a.EndDate != nil
		}
		if a.EndDate != nil && *a.EndDate != *b.EndDate {
			return *a.EndDate < *b.EndDate
		}
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt < b.CreatedAt
		}
		return a.ID < b.ID
	})
	return usable[0], true
}

// ConsumeUse returns the remaining uses after one check-in, floored at zero.
// Unlimited (nil) stays unlimited.
func ConsumeUse(remaining *int64) *int64 {
	if remaining == nil {
		return nil
	}
	next := *remaining - 1
	if next < 0 {
		next = 0
	}
	return &next
}

// RestoreUse returns the remaining uses after a check-in is reversed.
// The result never exceeds maxUses, so a lowered plan cap or repeated
// reversals cannot grant more than the plan allows. A nil maxUses leaves
// the increment uncapped.
func RestoreUse(remaining, maxUses *int64) *int64 {
	if remaining == nil {
		return nil
	}
	next := *remaining + 1
	if maxUses != nil && next > *maxUses {
		next = *maxUses
	}
	return &next
}
