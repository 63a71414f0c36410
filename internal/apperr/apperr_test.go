package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesByKind(t *testing.T) {
	err := NotFound("bucket not found: %d", 7)

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected %v to match ErrNotFound", err)
	}
	if errors.Is(err, ErrConflict) {
		t.Fatalf("did not expect %v to match ErrConflict", err)
	}
	if err.Error() != "bucket not found: 7" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestKindOfWrapped(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"direct", InvalidState("bucket is not open"), KindInvalidState},
		{"wrapped", fmt.Errorf("checkout: %w", Conflict("already checked in")), KindConflict},
		{"plain", errors.New("disk full"), KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("constraint failed")
	err := Wrap(KindConflict, "member already checked in today", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatal("expected kind match")
	}
}
