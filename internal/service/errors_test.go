package service

import (
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/internal/apperr"
)

func TestToConnectError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want connect.Code
	}{
		{"not found", apperr.NotFound("bucket not found: %d", 3), connect.CodeNotFound},
		{"invalid state", apperr.InvalidState("bucket is empty"), connect.CodeFailedPrecondition},
		{"invalid input", apperr.InvalidInput("name is required"), connect.CodeInvalidArgument},
		{"conflict", apperr.Conflict("member already checked in today"), connect.CodeAlreadyExists},
		{"wrapped kind", fmt.Errorf("checkout: %w", apperr.InvalidState("bucket is not open")), connect.CodeFailedPrecondition},
		{"storage failure", errors.New("disk I/O error"), connect.CodeInternal},
		{"already connect", connect.NewError(connect.CodeUnauthenticated, errors.New("no token")), connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toConnectError(tt.err)
			if got.Code() != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got.Code())
			}
		})
	}

	if msg := toConnectError(apperr.InvalidState("bucket is empty")).Message(); msg != "bucket is empty" {
		t.Errorf("Expected message to pass through, got %q", msg)
	}
}
