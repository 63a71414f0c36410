package ledger

import (
	"fmt"
	"strings"

	"github.com/mmynk/bucketpos/internal/apperr"
)

// Settlement method labels.
const (
	MethodBalance = "Balance"
	MethodCash    = "Cash"
)

// SettlementMethod picks the label recorded on a settlement transaction:
// "Balance" when the member balance is used, otherwise the caller's method,
// falling back to "Cash".
func SettlementMethod(useBalance bool, paymentMethod string) string {
	if useBalance {
		return MethodBalance
	}
	if method := strings.TrimSpace(paymentMethod); method != "" {
		return method
	}
	return MethodCash
}

// SettlementDescription is the description stored on a bucket settlement.
func SettlementDescription(bucketName, method string) string {
	return fmt.Sprintf("%s paid (%s)", bucketName, method)
}

// BalancePolicy decides whether a member with balance may be debited total.
// A non-nil error aborts the checkout.
type BalancePolicy func(balanceCents, totalCents int64) error

// AllowOverdraft is the default policy: balances may go negative.
func AllowOverdraft(int64, int64) error {
	return nil
}

// RequireFunds rejects a debit that would take the balance below zero.
func RequireFunds(balanceCents, totalCents int64) error {
	if balanceCents < totalCents {
		return apperr.InvalidState("insufficient balance")
	}
	return nil
}
