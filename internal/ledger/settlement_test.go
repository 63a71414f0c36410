package ledger

import (
	"errors"
	"testing"

	"github.com/mmynk/bucketpos/internal/apperr"
)

func TestSettlementMethod(t *testing.T) {
	tests := []struct {
		name       string
		useBalance bool
		method     string
		want       string
	}{
		{"balance wins over method", true, "Card", "Balance"},
		{"explicit method", false, "Card", "Card"},
		{"trimmed method", false, "  Card ", "Card"},
		{"default cash", false, "", "Cash"},
		{"blank is cash", false, "   ", "Cash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SettlementMethod(tt.useBalance, tt.method); got != tt.want {
				t.Errorf("SettlementMethod(%v, %q) = %q, want %q", tt.useBalance, tt.method, got, tt.want)
			}
		})
	}
}

func TestSettlementDescription(t *testing.T) {
	if got := SettlementDescription("Bucket 2", "Cash"); got != "Bucket 2 paid (Cash)" {
		t.Errorf("unexpected description %q", got)
	}
}

func TestBalancePolicies(t *testing.T) {
	if err := AllowOverdraft(100, 5000); err != nil {
		t.Errorf("AllowOverdraft returned %v", err)
	}
	if err := RequireFunds(1900, 1900); err != nil {
		t.Errorf("RequireFunds rejected exact balance: %v", err)
	}
	if err := RequireFunds(1899, 1900); !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("RequireFunds(1899, 1900) = %v, want InvalidState", err)
	}
}
