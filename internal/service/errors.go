package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/bucketpos/internal/apperr"
)

// toConnectError maps a store or domain error onto a Connect error. The
// message is passed through unchanged.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return connect.NewError(connect.CodeNotFound, err)
	case apperr.KindInvalidState:
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case apperr.KindInvalidInput:
		return connect.NewError(connect.CodeInvalidArgument, err)
	case apperr.KindConflict:
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// required rejects a request whose payload message is missing.
func required(field string) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, apperr.InvalidInput("%s is required", field))
}
