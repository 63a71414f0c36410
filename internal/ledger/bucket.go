// Package ledger holds the pure bookkeeping rules: bucket numbering,
// settlement labels, entitlement selection and usage accounting.
// Nothing here touches storage; the SQLite store calls these inside its
// transactions.
package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// BucketNamePrefix is the prefix of auto-generated bucket names.
const BucketNamePrefix = "Bucket"

// BucketNumber extracts the first run of ASCII digits in name.
// It returns false when name has no digits or the run does not fit an int64.
func BucketNumber(name string) (int64, bool) {
	start := strings.IndexFunc(name, isDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(name) && isDigit(rune(name[end])) {
		end++
	}
	n, err := strconv.ParseInt(name[start:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextBucketName returns "Bucket {n}" for the smallest positive n not used
// by any of the given open bucket names.
func NextBucketName(openNames []string) string {
	used := make(map[int64]bool, len(openNames))
	for _, name := range openNames {
		if n, ok := BucketNumber(name); ok {
			used[n] = true
		}
	}

	candidate := int64(1)
	for used[candidate] {
		candidate++
	}
	return fmt.Sprintf("%s %d", BucketNamePrefix, candidate)
}

// ClampQuantity enforces the minimum line quantity of 1.
func ClampQuantity(quantity int64) int64 {
	if quantity < 1 {
		return 1
	}
	return quantity
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
