package errors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrUnexpectedStatus   = fmt.Errorf("unexpected response status")
	ErrSessionNotOpen     = fmt.Errorf("session is not open")
	ErrProbeFailed        = fmt.Errorf("existence probe failed")
	ErrInvalidJID         = fmt.Errorf("invalid jid")
	ErrInvalidCount       = fmt.Errorf("count must be positive")
	ErrInvalidCursor      = fmt.Errorf("invalid cursor")
	ErrInvalidCommand     = fmt.Errorf("invalid command")
	ErrUnsupportedImage   = fmt.Errorf("unsupported image type")
	ErrChatNotFound       = fmt.Errorf("chat not found")
	ErrContactNotFound    = fmt.Errorf("contact not found")
	ErrMalformedResponse  = fmt.Errorf("malformed response")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
)

// MapToGRPCError translates domain errors into gRPC status errors.
// Errors already carrying a status are returned untouched.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrInvalidJID),
		errors.Is(err, ErrInvalidCount),
		errors.Is(err, ErrInvalidCursor),
		errors.Is(err, ErrInvalidCommand),
		errors.Is(err, ErrUnsupportedImage):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrChatNotFound), errors.Is(err, ErrContactNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrSessionNotOpen), errors.Is(err, ErrProbeFailed):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, ErrUnexpectedStatus), errors.Is(err, ErrMalformedResponse):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
